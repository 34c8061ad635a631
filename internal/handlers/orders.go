package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"photo-delivery-backend/internal/config"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/supabase"
)

type OrdersHandler struct {
	cfg      *config.Config
	dbClient *supabase.DatabaseClient
}

func NewOrdersHandler(cfg *config.Config, dbClient *supabase.DatabaseClient) *OrdersHandler {
	return &OrdersHandler{
		cfg:      cfg,
		dbClient: dbClient,
	}
}

// CreateOrder godoc
// @Summary     Create an order
// @Description Creates an order, optionally attached to a job. When max_revision_rounds is omitted the partner's configured default applies.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateOrderRequest false "Order details"
// @Success     201 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	// Body is optional; an empty request creates a detached order with
	// the partner's defaults
	_ = c.ShouldBindJSON(&req)
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	var jobID uuid.NullUUID
	if req.JobID != "" {
		parsed, err := uuid.Parse(req.JobID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid job id"})
			return
		}
		// The job must exist and belong to this partner
		if _, err := h.dbClient.GetJob(parsed, userID); err != nil {
			respondError(c, err)
			return
		}
		jobID = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	maxRounds := 0
	if req.MaxRevisionRounds != nil {
		maxRounds = *req.MaxRevisionRounds
	} else {
		settings, err := h.dbClient.GetPartnerSettings(userID, h.cfg.DefaultRevisionRounds)
		if err != nil {
			respondError(c, err)
			return
		}
		maxRounds = settings.DefaultRevisionRounds
	}

	status := req.Status
	if status == "" {
		status = "created"
	}

	order, err := h.dbClient.CreateOrder(userID, jobID, status, maxRounds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewOrderResponse(order))
}

// GetOrder godoc
// @Summary     Get an order
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
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

	order, err := h.dbClient.GetOrder(orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// ListRevisionRequests godoc
// @Summary     Revision history
// @Description Returns the order's revision requests, oldest first.
// @Tags        revisions
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id}/revisions [get]
func (h *OrdersHandler) ListRevisionRequests(c *gin.Context) {
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

	order, err := h.dbClient.GetOrder(orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	requests, err := h.dbClient.GetOrderRevisionRequests(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	requestResponses := make([]models.RevisionRequestResponse, len(requests))
	for i := range requests {
		requestResponses[i] = models.NewRevisionRequestResponse(&requests[i], order)
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":        order.ID.String(),
		"revision_status": models.NewRevisionStatus(order),
		"requests":        requestResponses,
	})
}

// UpdateRevisionSettings godoc
// @Summary     Configure an order's revision limit
// @Description Sets max_revision_rounds for the order. Lowering it below the rounds already used is allowed; the remaining count clamps at zero.
// @Tags        revisions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.UpdateRevisionSettingsRequest true "New limit"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id}/revision-settings [patch]
func (h *OrdersHandler) UpdateRevisionSettings(c *gin.Context) {
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

	var req models.UpdateRevisionSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	order, err := h.dbClient.UpdateRevisionSettings(orderID, userID, req.MaxRevisionRounds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// GetRevisionDefaults godoc
// @Summary     Partner revision defaults
// @Tags        settings
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PartnerSettingsResponse
// @Router      /settings/revisions [get]
func (h *OrdersHandler) GetRevisionDefaults(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	settings, err := h.dbClient.GetPartnerSettings(userID, h.cfg.DefaultRevisionRounds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PartnerSettingsResponse{
		DefaultRevisionRounds: settings.DefaultRevisionRounds,
		UpdatedAt:             settings.UpdatedAt,
	})
}

// UpdateRevisionDefaults godoc
// @Summary     Set partner revision defaults
// @Description Sets the default max_revision_rounds applied to new orders. Existing orders keep their configured limit.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdatePartnerSettingsRequest true "New default"
// @Success     200 {object} models.PartnerSettingsResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /settings/revisions [put]
func (h *OrdersHandler) UpdateRevisionDefaults(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req models.UpdatePartnerSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	settings, err := h.dbClient.UpsertPartnerSettings(userID, req.DefaultRevisionRounds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PartnerSettingsResponse{
		DefaultRevisionRounds: settings.DefaultRevisionRounds,
		UpdatedAt:             settings.UpdatedAt,
	})
}
