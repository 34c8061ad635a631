package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/supabase"
)

type FoldersHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
	logger        zerolog.Logger
}

func NewFoldersHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, logger zerolog.Logger) *FoldersHandler {
	return &FoldersHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
		logger:        logger,
	}
}

// ownedJobID parses the job_id path param and verifies the job belongs to
// the authenticated partner. Another partner's job reads as not found.
func (h *FoldersHandler) ownedJobID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := authedUserID(c)
	if !ok {
		return uuid.Nil, false
	}

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return uuid.Nil, false
	}

	if _, err := h.dbClient.GetJob(jobID, userID); err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}

	return jobID, true
}

// ListFolders godoc
// @Summary     List folders
// @Description Without query params, lists the job's root folders. "parent" lists direct children of that path; "descendants_of" lists the whole subtree beneath a path.
// @Tags        folders
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       parent query string false "Parent folder path"
// @Param       descendants_of query string false "Ancestor folder path"
// @Success     200 {object} models.FolderListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/folders [get]
func (h *FoldersHandler) ListFolders(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	jobID, ok := h.ownedJobID(c)
	if !ok {
		return
	}

	var (
		folders []models.Folder
		err     error
	)
	if ancestor := c.Query("descendants_of"); ancestor != "" {
		folders, err = h.dbClient.ListDescendantFolders(jobID, ancestor)
	} else {
		folders, err = h.dbClient.ListChildFolders(jobID, c.Query("parent"))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	folderResponses := make([]models.FolderResponse, len(folders))
	for i := range folders {
		folderResponses[i] = models.NewFolderResponse(&folders[i])
	}

	c.JSON(http.StatusOK, models.FolderListResponse{Folders: folderResponses})
}

// CreateFolder godoc
// @Summary     Create a folder
// @Description Creates a folder under the given parent path, or at the root when parent_path is empty. The parent must already exist; a sibling with the same name fails with duplicate_folder.
// @Tags        folders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       request body models.CreateFolderRequest true "Folder details"
// @Success     201 {object} models.FolderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/folders [post]
func (h *FoldersHandler) CreateFolder(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	jobID, ok := h.ownedJobID(c)
	if !ok {
		return
	}

	var req models.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	folder, err := h.dbClient.CreateFolder(jobID, req.ParentPath, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewFolderResponse(folder))
}

// UpdateFolder godoc
// @Summary     Rename a folder or toggle its visibility
// @Description Renaming sets the partner display alias only; the folder path identity and all file associations are untouched. Visibility controls whether the folder appears on the public delivery page.
// @Tags        folders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       request body models.UpdateFolderRequest true "Fields to update"
// @Success     200 {object} models.FolderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/folders [patch]
func (h *FoldersHandler) UpdateFolder(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	jobID, ok := h.ownedJobID(c)
	if !ok {
		return
	}

	var req models.UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	folder, err := h.dbClient.UpdateFolder(jobID, req.FolderPath, req.PartnerFolderName, req.IsVisible)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewFolderResponse(folder))
}

// DeleteFolder godoc
// @Summary     Delete a folder tree
// @Description Deletes the folder, every folder beneath it and all of their files in one transaction. Destructive and irreversible; the dashboard confirms with the partner before calling.
// @Tags        folders
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Param       folder_path query string true "Folder path to delete"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/folders [delete]
func (h *FoldersHandler) DeleteFolder(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	jobID, ok := h.ownedJobID(c)
	if !ok {
		return
	}

	folderPath := c.Query("folder_path")
	if folderPath == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "folder_path is required"})
		return
	}

	deletedFileNames, err := h.dbClient.DeleteFolderTree(jobID, folderPath)
	if err != nil {
		respondError(c, err)
		return
	}

	// The database delete has committed; storage cleanup is best-effort.
	if h.storageClient != nil && len(deletedFileNames) > 0 {
		go func(names []string) {
			if err := h.storageClient.DeleteObjects(names); err != nil {
				h.logger.Warn().Err(err).Str("folder_path", folderPath).Msg("storage cleanup failed after folder delete")
			}
		}(deletedFileNames)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "deleted",
		"folder_path":   folderPath,
		"files_deleted": len(deletedFileNames),
	})
}
