package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/middleware"
)

// LoadPackageBatch handles POST /api/packages/batch/{batchId} requests.
//
// @Summary      Load batch for packing
// @Description  Fetches the orders of a batch and starts a fresh allocation session. Each order starts with one package holding every unit. A newer selection made while this one loads wins; the superseded request answers 409.
// @Tags         Packages
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        batchId path string true "Batch id"
// @Success      200 {object} dto.SuccessResponse{data=service.PackageView} "Package session"
// @Failure      409 {object} dto.ErrorResponse "Superseded by another batch selection"
// @Failure      502 {object} dto.ErrorResponse "Fulfillment API error"
// @Failure      503 {object} dto.ErrorResponse "Fulfillment API unavailable"
// @Router       /api/packages/batch/{batchId} [post]
func (h *Handler) LoadPackageBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)
	batchID := c.Param("batchId")

	view, err := h.workspace(c).Packages.Load(c.Request.Context(), batchID)
	if err != nil {
		builder.FromError(err)
		return
	}

	audit(c, middleware.AuditEvent{
		ActionType: model.ActionBatchLoaded,
		Message:    "Batch loaded for packing",
		BatchID:    batchID,
		Fields:     map[string]interface{}{"orders": len(view.Orders)},
	})
	builder.SuccessOK(view)
}

// GetPackages handles GET /api/packages requests.
//
// @Summary      Package session
// @Description  Returns every order of the loaded batch with its packages, remaining units and completion flags.
// @Tags         Packages
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Success      200 {object} dto.SuccessResponse{data=service.PackageView} "Package session"
// @Failure      422 {object} dto.ErrorResponse "No batch loaded"
// @Router       /api/packages [get]
func (h *Handler) GetPackages(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.workspace(c).Packages.View()
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessOK(view)
}

// AddPackage handles POST /api/packages/orders/{orderId}/packages requests.
//
// @Summary      Add package
// @Description  Appends a package to an order, seeded with the units not yet allocated to any package. Refused with package_not_allowed while every unit is still in the first package.
// @Tags         Packages
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Success      201 {object} dto.SuccessResponse{data=allocation.Package} "New package"
// @Failure      422 {object} dto.ErrorResponse "Unknown order, no batch loaded or package not allowed"
// @Router       /api/packages/orders/{orderId}/packages [post]
func (h *Handler) AddPackage(c *gin.Context) {
	builder := NewResponseBuilder(c)

	pkg, err := h.workspace(c).Packages.AddPackage(c.Param("orderId"))
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessCreated(pkg)
}

// RemoveLastPackage handles DELETE /api/packages/orders/{orderId}/packages/last requests.
//
// @Summary      Remove last package
// @Description  Removes the last package of an order. The first package is never removed; removed=false reports that case.
// @Tags         Packages
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackageRemoval} "Removal outcome"
// @Failure      422 {object} dto.ErrorResponse "Unknown order or no batch loaded"
// @Router       /api/packages/orders/{orderId}/packages/last [delete]
func (h *Handler) RemoveLastPackage(c *gin.Context) {
	builder := NewResponseBuilder(c)

	removed, err := h.workspace(c).Packages.RemovePackage(c.Param("orderId"))
	if err != nil {
		builder.FromError(err)
		return
	}
	builder.SuccessOK(dto.PackageRemoval{Removed: removed})
}

// UpdateAllocation handles PUT /api/packages/orders/{orderId}/packages/{packageId}/allocations/{sku} requests.
//
// @Summary      Set allocation
// @Description  Sets how many units of a sku go into a package. The quantity must lie between 0 and the purchased quantity.
// @Tags         Packages
// @Accept       json
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        orderId path string true "Order id"
// @Param        packageId path int true "Package id"
// @Param        sku path string true "Product sku"
// @Param        request body dto.UpdateAllocationRequest true "Quantity"
// @Success      200 {object} dto.SuccessResponse{data=service.OrderAllocationView} "Updated order"
// @Failure      400 {object} dto.ErrorResponse "Malformed request"
// @Failure      422 {object} dto.ErrorResponse "Unknown order, package or sku, or quantity out of range"
// @Router       /api/packages/orders/{orderId}/packages/{packageId}/allocations/{sku} [put]
func (h *Handler) UpdateAllocation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	packageID, ok := builder.PathIndex("packageId")
	if !ok {
		return
	}

	var req dto.UpdateAllocationRequest
	if !builder.BindJSON(&req) {
		return
	}

	orderID := c.Param("orderId")
	session := h.workspace(c).Packages
	if err := session.UpdateAllocation(orderID, packageID, c.Param("sku"), *req.Quantity); err != nil {
		builder.FromError(err)
		return
	}

	view, err := session.View()
	if err != nil {
		builder.FromError(err)
		return
	}
	for _, o := range view.Orders {
		if o.Order.OrderID == orderID {
			builder.SuccessOK(o)
			return
		}
	}
	builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
}

// ConfirmOrderPackages handles POST /api/packages/orders/{orderId}/confirm requests.
//
// @Summary      Confirm order packages
// @Description  Submits the packages of one fully allocated order. Supports idempotency via Idempotency-Key header.
// @Tags         Packages
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        orderId path string true "Order id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackageConfirmation} "Packages confirmed"
// @Failure      422 {object} dto.ErrorResponse "Order not fully allocated"
// @Failure      502 {object} dto.ErrorResponse "Fulfillment API error"
// @Failure      503 {object} dto.ErrorResponse "Fulfillment API unavailable"
// @Router       /api/packages/orders/{orderId}/confirm [post]
func (h *Handler) ConfirmOrderPackages(c *gin.Context) {
	builder := NewResponseBuilder(c)
	orderID := c.Param("orderId")
	session := h.workspace(c).Packages

	res, err := session.ConfirmOrder(c.Request.Context(), orderID)
	audit(c, middleware.AuditEvent{
		ActionType: model.ActionPackagesConfirmed,
		Message:    "Order packages confirmation",
		BatchID:    session.BatchID(),
		OrderID:    orderID,
		Err:        err,
	})
	if err != nil {
		builder.FromError(err)
		return
	}

	builder.SuccessOK(dto.PackageConfirmation{
		Message: i18n.Localize(c, i18n.SuccessKeyPackagesConfirmed),
		Result:  res,
	})
}

// ConfirmAllPackages handles POST /api/packages/confirm requests.
//
// @Summary      Confirm batch packages
// @Description  Submits the packages of every order in one request. Rejected when any order is not fully allocated; details.orders lists them. Supports idempotency via Idempotency-Key header.
// @Tags         Packages
// @Produce      json
// @Param        X-Workspace-ID header string false "Operator workspace"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackageConfirmation} "Packages confirmed"
// @Failure      422 {object} dto.ErrorResponse "Some orders not fully allocated"
// @Failure      502 {object} dto.ErrorResponse "Fulfillment API error"
// @Failure      503 {object} dto.ErrorResponse "Fulfillment API unavailable"
// @Router       /api/packages/confirm [post]
func (h *Handler) ConfirmAllPackages(c *gin.Context) {
	builder := NewResponseBuilder(c)
	session := h.workspace(c).Packages

	res, err := session.ConfirmAll(c.Request.Context())
	audit(c, middleware.AuditEvent{
		ActionType: model.ActionBatchPackagesConfirmed,
		Message:    "Batch packages confirmation",
		BatchID:    session.BatchID(),
		Err:        err,
	})
	if err != nil {
		builder.FromError(err)
		return
	}

	builder.SuccessOK(dto.PackageConfirmation{
		Message: i18n.Localize(c, i18n.SuccessKeyPackagesConfirmed),
		Result:  res,
	})
}
