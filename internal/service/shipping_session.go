package service

import (
	"context"
	"sync"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/metrics"
	"github.com/guttosm/fulfillment-console/internal/shipping"
)

// ShippingRowView is one order row of the shipping screen.
//
// @Description Shipping row of one order
type ShippingRowView struct {
	OrderID              string             `json:"orderId" example:"ORD-123"`
	OrderReferenceNumber string             `json:"orderReferenceNumber" example:"112-5550123-7"`
	Platform             model.Platform     `json:"platform" example:"EBAY"`
	Form                 shipping.FormState `json:"form"`
	Ready                bool               `json:"ready" example:"false"`
}

// ShippingView is the shipping screen of a workspace.
//
// @Description Shipping session view
type ShippingView struct {
	BatchID          string                `json:"batchId" example:"b-2025-01-28"`
	AlreadyConfirmed bool                  `json:"alreadyConfirmed" example:"false"`
	Config           shipping.Config       `json:"config"`
	Services         []model.ServiceOption `json:"services"`
	Rows             []ShippingRowView     `json:"rows"`
	AllReady         bool                  `json:"allReady" example:"false"`
	TotalCost        string                `json:"totalCost" example:"12.50"`
}

// ShippingSession owns the shipping batch of one workspace.
type ShippingSession struct {
	workspaceID string
	api         FulfillmentAPI
	catalog     *shipping.Catalog
	coordinator *shipping.Coordinator
	recorder    ConfirmationRecorder
	fetch       fetchGuard

	mu    sync.Mutex
	batch *shipping.Batch
}

// NewShippingSession creates an empty shipping session. A nil catalog means the default menus.
func NewShippingSession(workspaceID string, api FulfillmentAPI, catalog *shipping.Catalog, recorder ConfirmationRecorder) *ShippingSession {
	if catalog == nil {
		catalog = shipping.DefaultCatalog()
	}
	return &ShippingSession{
		workspaceID: workspaceID,
		api:         api,
		catalog:     catalog,
		coordinator: shipping.NewCoordinator(api),
		recorder:    recorder,
	}
}

// Load fetches the orders of batchID and replaces the session's batch.
// When every order is already shipped the view reports AlreadyConfirmed and has no rows.
func (s *ShippingSession) Load(ctx context.Context, batchID string) (*ShippingView, error) {
	fetchCtx, gen := s.fetch.begin(ctx)
	orders, err := s.api.FetchOrders(fetchCtx, batchID)

	var view *ShippingView
	current := s.fetch.finish(gen, func() {
		if err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.batch = shipping.NewBatch(batchID, orders, s.catalog)
		view = s.viewLocked()
	})
	if !current {
		return nil, ErrStaleBatch
	}
	if err != nil {
		return nil, err
	}

	l := logger.For("shipping")
	l.Info().
		Str("workspace_id", s.workspaceID).
		Str("batch_id", batchID).
		Int("orders", len(orders)).
		Bool("already_confirmed", view.AlreadyConfirmed).
		Msg("Batch loaded for shipping")
	return view, nil
}

// View returns the current shipping screen.
func (s *ShippingSession) View() (*ShippingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch == nil {
		return nil, errBatchNotLoaded()
	}
	return s.viewLocked(), nil
}

func (s *ShippingSession) viewLocked() *ShippingView {
	b := s.batch
	forms := b.Forms()
	view := &ShippingView{
		BatchID:          b.ID(),
		AlreadyConfirmed: b.AlreadyConfirmed(),
		Config:           b.Config(),
		Services:         s.catalog.Services(b.Config().Courier),
		Rows:             make([]ShippingRowView, 0, len(forms)),
		AllReady:         b.AllOrdersReady(),
		TotalCost:        shipping.TotalCost(forms).StringFixed(2),
	}
	for i, o := range b.Orders() {
		view.Rows = append(view.Rows, ShippingRowView{
			OrderID:              o.OrderID,
			OrderReferenceNumber: o.OrderReferenceNumber,
			Platform:             o.Metadata.Platform,
			Form:                 forms[i],
			Ready:                forms[i].IsReady(),
		})
	}
	return view
}

// BatchID returns the loaded batch id, or "" when none is loaded.
func (s *ShippingSession) BatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch == nil {
		return ""
	}
	return s.batch.ID()
}

func (s *ShippingSession) loaded() (*shipping.Batch, error) {
	if s.batch == nil {
		return nil, errBatchNotLoaded()
	}
	return s.batch, nil
}

// Scan binds a scanned value to the target order row.
func (s *ShippingSession) Scan(orderID, value string) (shipping.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return shipping.ScanResult{}, err
	}
	res, err := b.Scan(orderID, value)
	if ve, ok := errs.AsValidation(err); ok {
		metrics.RecordScanRejection(ve.Code)
		l := logger.For("shipping")
		l.Warn().
			Str("workspace_id", s.workspaceID).
			Str("batch_id", b.ID()).
			Str("order_id", orderID).
			Str("scanned", value).
			Str("reason", ve.Code).
			Msg("Scan rejected")
	}
	return res, err
}

// AddTracking appends a blank tracking entry to a scanned order.
func (s *ShippingSession) AddTracking(orderID string) (*shipping.FocusTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return b.AddTracking(orderID)
}

// UpdateTracking replaces one tracking entry of a scanned order.
func (s *ShippingSession) UpdateTracking(orderID string, index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return err
	}
	return b.UpdateTracking(orderID, index, value)
}

// AdvanceFocus returns the input that follows tracking entry index of an order.
func (s *ShippingSession) AdvanceFocus(orderID string, index int) (*shipping.FocusTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return b.AdvanceFocus(orderID, index)
}

// SetCost overrides the cost of one order.
func (s *ShippingSession) SetCost(orderID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return err
	}
	return b.SetCost(orderID, value)
}

// UpdateConfig changes courier, service and general cost. Nothing changes when any field is invalid.
func (s *ShippingSession) UpdateConfig(u shipping.ConfigUpdate) (shipping.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return shipping.Config{}, err
	}
	if err := b.ApplyConfig(u); err != nil {
		return shipping.Config{}, err
	}
	return b.Config(), nil
}

// Confirm submits the shipping confirmation of the whole batch. On success the
// rows are cleared; the courier selection stays for the next batch.
func (s *ShippingSession) Confirm(ctx context.Context) (*dto.ConfirmShippingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return nil, err
	}

	orders := b.Orders()
	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.OrderID)
	}
	cfg := b.Config()
	total := shipping.TotalCost(b.Forms()).StringFixed(2)

	res, err := s.coordinator.ConfirmShipping(ctx, b)
	kind := string(model.ConfirmationShipping)
	if _, ok := errs.AsValidation(err); ok {
		metrics.RecordConfirmation(kind, "rejected")
		return nil, err
	}

	c := &model.Confirmation{
		Kind:        model.ConfirmationShipping,
		WorkspaceID: s.workspaceID,
		BatchID:     b.ID(),
		OrderIDs:    orderIDs,
		Courier:     string(cfg.Courier),
		Service:     cfg.Service,
		TotalCost:   total,
		Success:     err == nil,
	}
	l := logger.For("shipping")
	if err != nil {
		metrics.RecordConfirmation(kind, "failed")
		c.Error = err.Error()
		recordConfirmation(ctx, s.recorder, c)
		l.Error().
			Err(err).
			Str("workspace_id", s.workspaceID).
			Str("batch_id", b.ID()).
			Msg("Shipping confirmation failed")
		return nil, err
	}

	metrics.RecordConfirmation(kind, "success")
	c.Message = res.Message
	c.UpdatedCount = res.UpdatedCount
	recordConfirmation(ctx, s.recorder, c)
	l.Info().
		Str("workspace_id", s.workspaceID).
		Str("batch_id", b.ID()).
		Str("courier", c.Courier).
		Str("service", c.Service).
		Int("updated_count", res.UpdatedCount).
		Msg("Shipping confirmed")
	return res, nil
}
