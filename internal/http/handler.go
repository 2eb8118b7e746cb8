package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/middleware"
	"github.com/guttosm/fulfillment-console/internal/service"
)

// Handler provides HTTP handlers for the console API.
type Handler struct {
	workspaces    *service.Workspaces
	batches       service.BatchService
	confirmations service.ConfirmationService
	audit         service.LoggingService
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithConfirmationService enables GET /api/confirmations.
func WithConfirmationService(s service.ConfirmationService) HandlerOption {
	return func(h *Handler) {
		h.confirmations = s
	}
}

// WithAuditLog enables GET /api/audit.
func WithAuditLog(s service.LoggingService) HandlerOption {
	return func(h *Handler) {
		h.audit = s
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(workspaces *service.Workspaces, batches service.BatchService, opts ...HandlerOption) *Handler {
	h := &Handler{
		workspaces: workspaces,
		batches:    batches,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// workspace returns the workspace selected by the request, creating it on first use.
func (h *Handler) workspace(c *gin.Context) *service.Workspace {
	return h.workspaces.Get(middleware.GetWorkspaceID(c))
}

// audit enqueues a console action on the global async logger, when one is running.
func audit(c *gin.Context, ev middleware.AuditEvent) {
	middleware.AuditLog(middleware.GetAsyncLogger(), c, ev)
}

// ListBatches handles GET /api/batches requests.
//
// @Summary      List batches
// @Description  Returns the batches known to the fulfillment API.
// @Tags         Batches
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Batch} "Batches"
// @Failure      502 {object} dto.ErrorResponse "Fulfillment API error"
// @Failure      503 {object} dto.ErrorResponse "Fulfillment API unavailable"
// @Router       /api/batches [get]
func (h *Handler) ListBatches(c *gin.Context) {
	builder := NewResponseBuilder(c)

	batches, err := h.batches.ListBatches(c.Request.Context())
	if err != nil {
		builder.FromError(err)
		return
	}
	if batches == nil {
		batches = []model.Batch{}
	}
	builder.SuccessOK(batches)
}

// ListCouriers handles GET /api/couriers requests.
//
// @Summary      List couriers
// @Description  Returns the couriers and the services each one offers.
// @Tags         Shipping
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Courier catalog"
// @Router       /api/couriers [get]
func (h *Handler) ListCouriers(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.workspaces.Catalog().Menus())
}

// ListConfirmations handles GET /api/confirmations requests.
//
// @Summary      Confirmation history
// @Description  Returns the confirmations submitted from the calling workspace, newest first. Requires MongoDB.
// @Tags         History
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        batchId query string false "Only this batch"
// @Param        kind query string false "packages, batch_packages or shipping"
// @Param        limit query int false "Maximum entries (1-500)"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Confirmation} "Confirmations"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      503 {object} dto.ErrorResponse "History is disabled"
// @Router       /api/confirmations [get]
func (h *Handler) ListConfirmations(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.confirmations == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyHistoryDisabled, nil)
		return
	}

	var q dto.ConfirmationHistoryQuery
	if !builder.BindQuery(&q) {
		return
	}

	items, err := h.confirmations.List(c.Request.Context(), model.ConfirmationQuery{
		WorkspaceID: middleware.GetWorkspaceID(c),
		BatchID:     q.BatchID,
		Kind:        model.ConfirmationKind(q.Kind),
		Limit:       q.Limit,
	})
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	if items == nil {
		items = []model.Confirmation{}
	}
	builder.SuccessOK(items)
}

// ListAudit handles GET /api/audit requests.
//
// @Summary      Audit trail
// @Description  Returns one page of the calling workspace's audit log, newest first, with the total number of matching entries. Requires MongoDB.
// @Tags         History
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        batchId query string false "Only this batch"
// @Param        orderId query string false "Only this order"
// @Param        action query string false "Action type, e.g. scan_rejected"
// @Param        level query string false "debug, info, warn or error"
// @Param        since query string false "RFC 3339 lower bound"
// @Param        until query string false "RFC 3339 upper bound"
// @Param        limit query int false "Page size (1-500, default 50)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=model.AuditTrail} "Audit trail page"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      503 {object} dto.ErrorResponse "Audit log is disabled"
// @Router       /api/audit [get]
func (h *Handler) ListAudit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.audit == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyAuditDisabled, nil)
		return
	}

	var q dto.AuditQuery
	if !builder.BindQuery(&q) {
		return
	}
	if q.Since != nil && q.Until != nil && q.Until.Before(*q.Since) {
		builder.abort(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest,
			map[string]string{"until": "gtefield"}, nil)
		return
	}

	trail, err := service.AuditTrail(c.Request.Context(), h.audit, model.LogQueryOptions{
		WorkspaceID: middleware.GetWorkspaceID(c),
		BatchID:     q.BatchID,
		OrderID:     q.OrderID,
		ActionType:  q.Action,
		Level:       q.Level,
		StartTime:   q.Since,
		EndTime:     q.Until,
		Limit:       q.Limit,
		Skip:        q.Skip,
	})
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(trail)
}
