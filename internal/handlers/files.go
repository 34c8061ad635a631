package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/supabase"
)

type FilesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewFilesHandler(dbClient *supabase.DatabaseClient) *FilesHandler {
	return &FilesHandler{
		dbClient: dbClient,
	}
}

// RegisterFile godoc
// @Summary     Register an uploaded file
// @Description Records a file the storage collaborator has already accepted. When folder_path is set, the folder must exist on the order's job.
// @Tags        files
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.RegisterFileRequest true "File metadata"
// @Success     201 {object} models.FileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id}/files [post]
func (h *FilesHandler) RegisterFile(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	// Verify order belongs to user
	if _, err := h.dbClient.GetOrder(orderID, userID); err != nil {
		respondError(c, err)
		return
	}

	var req models.RegisterFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	file, err := h.dbClient.RegisterFile(orderID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewFileResponse(file))
}

// UpdateFileNotes godoc
// @Summary     Update file notes
// @Description Notes are the only mutable metadata on a registered file.
// @Tags        files
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       file_id path string true "File ID (UUID)"
// @Param       request body models.UpdateFileNotesRequest true "Notes"
// @Success     200 {object} models.FileResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /files/{file_id}/notes [patch]
func (h *FilesHandler) UpdateFileNotes(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file id"})
		return
	}

	var req models.UpdateFileNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	file, err := h.dbClient.UpdateFileNotes(fileID, userID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewFileResponse(file))
}

// GetFileComments godoc
// @Summary     File comment thread
// @Description Returns the file's comments ascending by creation time, plus whether any are unresolved (for thumbnail indicators).
// @Tags        comments
// @Produce     json
// @Security    Bearer
// @Param       file_id path string true "File ID (UUID)"
// @Success     200 {object} models.CommentListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /files/{file_id}/comments [get]
func (h *FilesHandler) GetFileComments(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file id"})
		return
	}

	file, err := h.dbClient.GetFile(fileID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Scope through the owning order
	if _, err := h.dbClient.GetOrder(file.OrderID, userID); err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.dbClient.GetFileComments(fileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCommentList(comments))
}

// UpdateCommentStatus godoc
// @Summary     Update a comment's status
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       comment_id path string true "Comment ID (UUID)"
// @Param       request body models.UpdateCommentStatusRequest true "New status"
// @Success     200 {object} models.CommentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /comments/{comment_id}/status [patch]
func (h *FilesHandler) UpdateCommentStatus(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid comment id"})
		return
	}

	var req models.UpdateCommentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.dbClient.UpdateCommentStatus(commentID, userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

func buildCommentList(comments []models.FileComment) models.CommentListResponse {
	commentResponses := make([]models.CommentResponse, len(comments))
	hasUnresolved := false
	for i := range comments {
		commentResponses[i] = models.NewCommentResponse(&comments[i])
		if !comments[i].IsResolved() {
			hasUnresolved = true
		}
	}
	return models.CommentListResponse{
		Comments:      commentResponses,
		HasUnresolved: hasUnresolved,
	}
}
