package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/notifier"
	"photo-delivery-backend/internal/services"
	"photo-delivery-backend/internal/supabase"
)

// DeliveryHandler serves the tokenized public page. There is no login on
// these routes: possession of the delivery token is the capability, and
// every lookup is scoped to the job that token resolves to.
type DeliveryHandler struct {
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
	notifierClient *notifier.Client
	logger         zerolog.Logger
}

func NewDeliveryHandler(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient, notifierClient *notifier.Client, logger zerolog.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
		notifierClient: notifierClient,
		logger:         logger,
	}
}

func (h *DeliveryHandler) resolveJob(c *gin.Context) (*models.Job, bool) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return nil, false
	}

	job, err := h.dbClient.GetJobByDeliveryToken(c.Param("token"))
	if err != nil {
		respondPublicError(c, err)
		return nil, false
	}

	return job, true
}

// GetDelivery godoc
// @Summary     Public delivery page payload
// @Description Resolves the delivery token and returns the job's deliverables: files grouped by folder and by order, per-order revision status and the job review if one exists. Invisible folders and not-yet-ready files are excluded.
// @Tags        delivery
// @Produce     json
// @Param       token path string true "Delivery token"
// @Success     200 {object} models.DeliveryResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /delivery/{token} [get]
func (h *DeliveryHandler) GetDelivery(c *gin.Context) {
	job, ok := h.resolveJob(c)
	if !ok {
		return
	}

	folders, err := h.dbClient.GetJobFolders(job.ID)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	files, err := h.dbClient.GetJobFiles(job.ID)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	orders, err := h.dbClient.GetJobOrders(job.ID)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	revisionStatus := make([]models.RevisionStatus, len(orders))
	for i := range orders {
		revisionStatus[i] = models.NewRevisionStatus(&orders[i])
	}

	response := models.DeliveryResponse{
		Job:            models.NewPublicJobResponse(job),
		CompletedFiles: services.CompletedFiles(folders, files),
		Folders:        services.BuildFolderView(folders, files, true),
		Orders:         services.BuildOrderView(folders, files, true),
		RevisionStatus: revisionStatus,
	}

	review, err := h.dbClient.GetClientReview(job.ID)
	if err != nil {
		respondPublicError(c, err)
		return
	}
	if review != nil {
		reviewResponse := models.NewReviewResponse(review)
		response.JobReview = &reviewResponse
	}

	c.JSON(http.StatusOK, response)
}

// RequestRevision godoc
// @Summary     Request a revision round
// @Description Consumes one revision round on the order and records the request atomically. Fails with revisions_exhausted when no rounds remain; rounds are never refunded.
// @Tags        delivery
// @Accept      json
// @Produce     json
// @Param       token path string true "Delivery token"
// @Param       request body models.RevisionRequestInput true "Files and feedback"
// @Success     201 {object} models.RevisionRequestResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /delivery/{token}/revisions/request [post]
func (h *DeliveryHandler) RequestRevision(c *gin.Context) {
	job, ok := h.resolveJob(c)
	if !ok {
		return
	}

	var req models.RevisionRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondPublicError(c, err)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "invalid order id"})
		return
	}

	fileIDs := make([]uuid.UUID, len(req.FileIDs))
	for i, raw := range req.FileIDs {
		fileIDs[i], err = uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: "invalid file id"})
			return
		}
	}

	// The token only grants access to its own job's orders
	orders, err := h.dbClient.GetJobOrders(job.ID)
	if err != nil {
		respondPublicError(c, err)
		return
	}
	orderOnJob := false
	for i := range orders {
		if orders[i].ID == orderID {
			orderOnJob = true
			break
		}
	}
	if !orderOnJob {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not_found", Message: "order not found"})
		return
	}

	request, order, err := h.dbClient.ConsumeRevisionRound(orderID, fileIDs, req.Comments)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	// Fire-and-forget: the round is consumed and recorded regardless of
	// what the collaborators do with the news.
	go h.notifierClient.NotifyRevisionRequested(notifier.RevisionRequestedEvent{
		OrderID:         order.ID.String(),
		JobID:           job.ID.String(),
		FileIDs:         req.FileIDs,
		Comments:        req.Comments,
		RemainingRounds: order.RemainingRevisionRounds(),
	})
	if err := h.realtimeClient.PublishOrderEvent(order.ID, "revision_requested",
		supabase.RevisionRequestedPayload(order.ID, order.RemainingRevisionRounds(), len(fileIDs))); err != nil {
		h.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish revision event")
	}

	c.JSON(http.StatusCreated, models.NewRevisionRequestResponse(request, order))
}

// ListFileComments godoc
// @Summary     File comment thread (public)
// @Tags        delivery
// @Produce     json
// @Param       token path string true "Delivery token"
// @Param       file_id path string true "File ID (UUID)"
// @Success     200 {object} models.CommentListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /delivery/{token}/files/{file_id}/comments [get]
func (h *DeliveryHandler) ListFileComments(c *gin.Context) {
	job, ok := h.resolveJob(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not_found", Message: "file not found"})
		return
	}

	if _, err := h.dbClient.GetJobFile(job.ID, fileID); err != nil {
		respondPublicError(c, err)
		return
	}

	comments, err := h.dbClient.GetFileComments(fileID)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCommentList(comments))
}

// AddFileComment godoc
// @Summary     Post a comment on a file
// @Description Appends to the file's comment thread. Threads are append-only.
// @Tags        delivery
// @Accept      json
// @Produce     json
// @Param       token path string true "Delivery token"
// @Param       file_id path string true "File ID (UUID)"
// @Param       request body models.CreateCommentRequest true "Comment"
// @Success     201 {object} models.CommentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /delivery/{token}/files/{file_id}/comments [post]
func (h *DeliveryHandler) AddFileComment(c *gin.Context) {
	job, ok := h.resolveJob(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not_found", Message: "file not found"})
		return
	}

	if _, err := h.dbClient.GetJobFile(job.ID, fileID); err != nil {
		respondPublicError(c, err)
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondPublicError(c, err)
		return
	}

	comment, err := h.dbClient.CreateFileComment(fileID, req.AuthorID, req.AuthorName, req.AuthorRole, req.Message)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	if err := h.realtimeClient.PublishJobEvent(job.ID, "comment_posted",
		supabase.CommentPostedPayload(fileID, req.AuthorRole)); err != nil {
		h.logger.Warn().Err(err).Str("file_id", fileID.String()).Msg("failed to publish comment event")
	}

	c.JSON(http.StatusCreated, models.NewCommentResponse(comment))
}

// SubmitReview godoc
// @Summary     Submit the job review
// @Description Creates or replaces the single review for the job. Resubmitting updates rating, text and timestamp; it never creates a second review.
// @Tags        delivery
// @Accept      json
// @Produce     json
// @Param       token path string true "Delivery token"
// @Param       request body models.SubmitReviewRequest true "Review"
// @Success     200 {object} models.ReviewResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /delivery/{token}/review [post]
func (h *DeliveryHandler) SubmitReview(c *gin.Context) {
	job, ok := h.resolveJob(c)
	if !ok {
		return
	}

	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondPublicError(c, err)
		return
	}

	review, err := h.dbClient.UpsertClientReview(job.ID, req.Rating, req.Review, req.SubmittedBy, req.SubmittedByEmail)
	if err != nil {
		respondPublicError(c, err)
		return
	}

	if err := h.realtimeClient.PublishJobEvent(job.ID, "review_submitted",
		supabase.ReviewSubmittedPayload(job.ID, review.Rating)); err != nil {
		h.logger.Warn().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish review event")
	}

	c.JSON(http.StatusOK, models.NewReviewResponse(review))
}
