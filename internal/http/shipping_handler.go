package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/middleware"
	"github.com/guttosm/fulfillment-console/internal/shipping"
)

// LoadShippingBatch handles POST /api/shipping/batch/{batchId} requests.
//
// @Summary      Load batch for shipping
// @Description  Fetches the orders of a batch and starts a fresh shipping session. When every order is already shipped the view has alreadyConfirmed=true and no rows.
// @Tags         Shipping
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        batchId path string true "Batch id"
// @Success      200 {object} dto.SuccessResponse{data=service.ShippingView} "Shipping session"
// @Failure      409 {object} dto.ErrorResponse "Superseded by another batch selection"
// @Failure      502 {object} dto.ErrorResponse "Fulfillment API error"
// @Failure      503 {object} dto.ErrorResponse "Fulfillment API unavailable"
// @Router       /api/shipping/batch/{batchId} [post]
func (h *Handler) LoadShippingBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)
	batchID := c.Param("batchId")

	view, err := h.workspace(c).Shipping.Load(c.Request.Context(), batchID)
	if err != nil {
		builder.FromError(err)
		return
	}

	audit(c, middleware.AuditEvent{
		ActionType: model.ActionBatchLoaded,
		Message:    "Batch loaded for shipping",
		BatchID:    batchID,
		Fields: map[string]interface{}{
			"orders":            len(view.Rows),
			"already_confirmed": view.AlreadyConfirmed,
		},
	})
	builder.SuccessOK(view)
}

// GetShipping handles GET /api/shipping requests.
//
// @Summary      Shipping session
// @Description  Returns the shipping configuration, the service menu of the selected courier and one row per order.
// @Tags         Shipping
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Success      200 {object} dto.SuccessResponse{data=service.ShippingView} "Shipping session"
// @Failure      422 {object} dto.ErrorResponse "No batch loaded"
// @Router       /api/shipping [get]
func (h *Handler) GetShipping(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.workspace(c).Shipping.View()
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessOK(view)
}

// UpdateShippingConfig handles PUT /api/shipping/config requests.
//
// @Summary      Update shipping configuration
// @Description  Changes courier, service and general cost. Switching courier drops a service the new courier does not offer. A general cost is copied to every order. Nothing changes when any field is invalid.
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        request body dto.ShippingConfigRequest true "Configuration change"
// @Success      200 {object} dto.SuccessResponse{data=shipping.Config} "Current configuration"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      422 {object} dto.ErrorResponse "Invalid courier, service or cost"
// @Router       /api/shipping/config [put]
func (h *Handler) UpdateShippingConfig(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.ShippingConfigRequest
	if !builder.BindJSON(&req) {
		return
	}

	cfg, err := h.workspace(c).Shipping.UpdateConfig(shipping.ConfigUpdate{
		Courier:     req.Courier,
		Service:     req.Service,
		GeneralCost: req.GeneralCost,
	})
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessOK(cfg)
}

// ScanOrder handles POST /api/shipping/orders/{orderId}/scan requests.
//
// @Summary      Scan order
// @Description  Binds a scanned order id to an order row. On success the focus moves to the first tracking input. A row already confirmed ignores further scans (applied=false).
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Row the scan is meant for"
// @Param        request body dto.ScanRequest true "Scanned value"
// @Success      200 {object} dto.SuccessResponse{data=shipping.ScanResult} "Scan outcome"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      409 {object} dto.ErrorResponse "Scanned order already bound to another row"
// @Failure      422 {object} dto.ErrorResponse "Scanned order not in this batch"
// @Router       /api/shipping/orders/{orderId}/scan [post]
func (h *Handler) ScanOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.ScanRequest
	if !builder.BindJSON(&req) {
		return
	}

	orderID := c.Param("orderId")
	session := h.workspace(c).Shipping
	res, err := session.Scan(orderID, req.Value)
	if err != nil {
		if _, ok := errs.AsValidation(err); ok {
			audit(c, middleware.AuditEvent{
				ActionType: model.ActionScanRejected,
				Message:    "Scan rejected",
				BatchID:    session.BatchID(),
				OrderID:    orderID,
				Err:        err,
				Fields:     map[string]interface{}{"scanned": req.Value},
			})
		}
		builder.FromError(err)
		return
	}
	builder.SuccessOK(res)
}

// AddTracking handles POST /api/shipping/orders/{orderId}/tracking requests.
//
// @Summary      Add tracking number
// @Description  Appends a blank tracking number entry to a scanned order and returns the input to focus.
// @Tags         Shipping
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Success      201 {object} dto.SuccessResponse{data=shipping.FocusTarget} "New tracking input"
// @Failure      422 {object} dto.ErrorResponse "Order not scanned"
// @Router       /api/shipping/orders/{orderId}/tracking [post]
func (h *Handler) AddTracking(c *gin.Context) {
	builder := NewResponseBuilder(c)

	focus, err := h.workspace(c).Shipping.AddTracking(c.Param("orderId"))
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessCreated(focus)
}

// UpdateTracking handles PUT /api/shipping/orders/{orderId}/tracking/{index} requests.
//
// @Summary      Set tracking number
// @Description  Replaces one tracking number entry of a scanned order.
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Param        index path int true "Entry index"
// @Param        request body dto.TrackingRequest true "Tracking number"
// @Success      200 {object} dto.SuccessResponse{data=shipping.FormState} "Updated form"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      422 {object} dto.ErrorResponse "Order not scanned or index out of range"
// @Router       /api/shipping/orders/{orderId}/tracking/{index} [put]
func (h *Handler) UpdateTracking(c *gin.Context) {
	builder := NewResponseBuilder(c)

	index, ok := builder.PathIndex("index")
	if !ok {
		return
	}

	var req dto.TrackingRequest
	if !builder.BindJSON(&req) {
		return
	}

	orderID := c.Param("orderId")
	session := h.workspace(c).Shipping
	if err := session.UpdateTracking(orderID, index, req.Value); err != nil {
		builder.FromError(err)
		return
	}
	h.respondWithForm(builder, c, orderID)
}

// AdvanceFocus handles POST /api/shipping/orders/{orderId}/tracking/{index}/advance requests.
//
// @Summary      Advance focus
// @Description  Returns the input that follows a tracking entry: the next entry of the same order, or the scan input of the next unconfirmed order. data is null when nothing follows.
// @Tags         Shipping
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Param        index path int true "Entry index"
// @Success      200 {object} dto.SuccessResponse{data=shipping.FocusTarget} "Next input"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      422 {object} dto.ErrorResponse "Unknown order"
// @Router       /api/shipping/orders/{orderId}/tracking/{index}/advance [post]
func (h *Handler) AdvanceFocus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	index, ok := builder.PathIndex("index")
	if !ok {
		return
	}

	focus, err := h.workspace(c).Shipping.AdvanceFocus(c.Param("orderId"), index)
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessOK(focus)
}

// SetCost handles PUT /api/shipping/orders/{orderId}/cost requests.
//
// @Summary      Set order cost
// @Description  Overrides the shipping cost of one order. A blank cost unsets it.
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Param        request body dto.CostRequest true "Cost"
// @Success      200 {object} dto.SuccessResponse{data=shipping.FormState} "Updated form"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      422 {object} dto.ErrorResponse "Unknown order or invalid cost"
// @Router       /api/shipping/orders/{orderId}/cost [put]
func (h *Handler) SetCost(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CostRequest
	if !builder.BindJSON(&req) {
		return
	}

	orderID := c.Param("orderId")
	if err := h.workspace(c).Shipping.SetCost(orderID, req.Cost); err != nil {
		builder.FromError(err)
		return
	}
	h.respondWithForm(builder, c, orderID)
}

// respondWithForm answers with the current form of one order row.
func (h *Handler) respondWithForm(builder *ResponseBuilder, c *gin.Context, orderID string) {
	view, err := h.workspace(c).Shipping.View()
	if err != nil {
		builder.FromError(err)
		return
	}
	for _, row := range view.Rows {
		if row.OrderID == orderID {
			builder.SuccessOK(row.Form)
			return
		}
	}
	builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
}

// ConfirmShipping handles POST /api/shipping/confirm requests.
//
// @Summary      Confirm shipping
// @Description  Submits courier, service and tracking numbers of every order. Requires every order scanned with at least one tracking number and a selected service. On success the rows are cleared. Supports idempotency via Idempotency-Key header.
// @Tags         Shipping
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Success      200 {object} dto.SuccessResponse{data=dto.ConfirmShippingResult} "Shipping confirmed"
// @Failure      422 {object} dto.ErrorResponse "Orders not ready or no service selected"
// @Failure      502 {object} dto.ErrorResponse "Fulfillment API error"
// @Failure      503 {object} dto.ErrorResponse "Fulfillment API unavailable"
// @Router       /api/shipping/confirm [post]
func (h *Handler) ConfirmShipping(c *gin.Context) {
	builder := NewResponseBuilder(c)
	session := h.workspace(c).Shipping
	batchID := session.BatchID()

	res, err := session.Confirm(c.Request.Context())
	ev := middleware.AuditEvent{
		ActionType: model.ActionShippingConfirmed,
		Message:    "Shipping confirmation",
		BatchID:    batchID,
		Err:        err,
	}
	if res != nil {
		ev.Fields = map[string]interface{}{"updated_count": res.UpdatedCount}
	}
	audit(c, ev)
	if err != nil {
		builder.FromError(err)
		return
	}

	if res.Message == "" {
		res.Message = i18n.Localize(c, i18n.SuccessKeyShippingConfirmed)
	}
	builder.SuccessOK(res)
}
