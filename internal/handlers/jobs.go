package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"photo-delivery-backend/internal/config"
	"photo-delivery-backend/internal/middleware"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/notifier"
	"photo-delivery-backend/internal/services"
	"photo-delivery-backend/internal/supabase"
)

type JobsHandler struct {
	cfg            *config.Config
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
	notifierClient *notifier.Client
	logger         zerolog.Logger
}

func NewJobsHandler(cfg *config.Config, dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient, notifierClient *notifier.Client, logger zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		cfg:            cfg,
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
		notifierClient: notifierClient,
		logger:         logger,
	}
}

// authedUserID pulls the partner id the auth middleware stored.
func authedUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	return userID, true
}

// CreateJob godoc
// @Summary     Create a new job
// @Description Creates a job (shoot) for the authenticated partner. The delivery token is not generated here; it appears when the first delivery email is sent.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateJobRequest true "Job details"
// @Success     201 {object} models.JobResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /jobs [post]
func (h *JobsHandler) CreateJob(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusBooked
	}

	job, err := h.dbClient.CreateJob(userID, req.Address, req.CustomerName, req.CustomerEmail, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewJobResponse(job))
}

// ListJobs godoc
// @Summary     List jobs
// @Description Returns the authenticated partner's jobs, newest first
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.JobListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /jobs [get]
func (h *JobsHandler) ListJobs(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	jobs, err := h.dbClient.ListJobs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	jobResponses := make([]models.JobResponse, len(jobs))
	for i := range jobs {
		jobResponses[i] = models.NewJobResponse(&jobs[i])
	}

	c.JSON(http.StatusOK, models.JobListResponse{Jobs: jobResponses})
}

// GetJob godoc
// @Summary     Get a job
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.JobResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id} [get]
func (h *JobsHandler) GetJob(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return
	}

	job, err := h.dbClient.GetJob(jobID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewJobResponse(job))
}

// DeleteJob godoc
// @Summary     Delete a job
// @Description Removes the job, its folder tree and its delivery link. Orders detach rather than delete; everything stored under the job's storage prefix is cleaned up best-effort after the database delete commits.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id} [delete]
func (h *JobsHandler) DeleteJob(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return
	}

	if err := h.dbClient.DeleteJob(jobID, userID); err != nil {
		respondError(c, err)
		return
	}

	// Database delete has committed; storage cleanup is best-effort.
	if h.storageClient != nil {
		go func(id uuid.UUID) {
			if err := h.storageClient.DeleteJobObjects(id); err != nil {
				h.logger.Warn().Err(err).Str("job_id", id.String()).Msg("storage cleanup failed after job delete")
			}
		}(jobID)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "deleted",
		"job_id": jobID.String(),
	})
}

// SendDelivery godoc
// @Summary     Send the delivery email
// @Description Generates the job's delivery token if it does not exist yet, marks the job delivered and asks the notification collaborator to email the client. Calling this again reuses the existing token so previously shared links stay valid.
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.DeliveryLinkResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/delivery [post]
func (h *JobsHandler) SendDelivery(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return
	}

	candidate, err := services.GenerateDeliveryToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate delivery token",
			Message: err.Error(),
		})
		return
	}

	job, err := h.dbClient.EnsureDeliveryToken(jobID, userID, candidate)
	if err != nil {
		respondError(c, err)
		return
	}

	token := job.DeliveryToken.String
	deliveryURL := h.cfg.BaseURL + "/delivery/" + token

	// Collaborator calls are fire-and-forget; their failure never fails
	// the delivery itself.
	if job.CustomerEmail.Valid {
		go h.notifierClient.SendDeliveryEmail(notifier.DeliveryEmailRequest{
			JobID:         job.ID.String(),
			CustomerName:  job.CustomerName,
			CustomerEmail: job.CustomerEmail.String,
			Address:       job.Address,
			DeliveryURL:   deliveryURL,
		})
	}
	if err := h.realtimeClient.PublishJobEvent(job.ID, "delivery_sent", supabase.DeliverySentPayload(job.ID, token)); err != nil {
		h.logger.Warn().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish delivery event")
	}

	c.JSON(http.StatusOK, models.DeliveryLinkResponse{
		JobID:         job.ID.String(),
		DeliveryToken: token,
		DeliveryURL:   deliveryURL,
		Status:        job.Status,
	})
}

// GetDeliverables godoc
// @Summary     Internal deliverable views
// @Description Returns both projections of the job's files for the dashboard: grouped by folder and grouped by order. Nothing is filtered; invisible folders and not-yet-ready files are included.
// @Tags        jobs
// @Produce     json
// @Security    Bearer
// @Param       job_id path string true "Job ID (UUID)"
// @Success     200 {object} models.DeliverablesResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /jobs/{job_id}/deliverables [get]
func (h *JobsHandler) GetDeliverables(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
		return
	}

	if _, err := h.dbClient.GetJob(jobID, userID); err != nil {
		respondError(c, err)
		return
	}

	folders, err := h.dbClient.GetJobFolders(jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	files, err := h.dbClient.GetJobFiles(jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeliverablesResponse{
		Folders: services.BuildFolderView(folders, files, false),
		Orders:  services.BuildOrderView(folders, files, false),
	})
}
