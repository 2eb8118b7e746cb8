package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/guttosm/fulfillment-console/internal/allocation"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/metrics"
)

// OrderAllocationView is the allocation state of one order.
//
// @Description Allocation state of one order
type OrderAllocationView struct {
	Order         model.Order          `json:"order"`
	Packages      []allocation.Package `json:"packages"`
	Remaining     map[string]int       `json:"remaining"`
	Complete      bool                 `json:"complete" example:"true"`
	CanAddPackage bool                 `json:"canAddPackage" example:"false"`
}

// PackageView is the package screen of a workspace.
//
// @Description Package session view
type PackageView struct {
	BatchID     string                `json:"batchId" example:"b-2025-01-28"`
	Orders      []OrderAllocationView `json:"orders"`
	AllComplete bool                  `json:"allComplete" example:"false"`
}

// PackageSession owns the allocation batch of one workspace.
// Every operation is serialised; a confirmation holds the session until the
// fulfillment API answers.
type PackageSession struct {
	workspaceID string
	api         FulfillmentAPI
	coordinator *allocation.Coordinator
	recorder    ConfirmationRecorder
	fetch       fetchGuard

	mu    sync.Mutex
	batch *allocation.Batch
}

// NewPackageSession creates an empty package session. recorder may be nil.
func NewPackageSession(workspaceID string, api FulfillmentAPI, recorder ConfirmationRecorder) *PackageSession {
	return &PackageSession{
		workspaceID: workspaceID,
		api:         api,
		coordinator: allocation.NewCoordinator(api),
		recorder:    recorder,
	}
}

// Load fetches the orders of batchID and replaces the session's batch.
// A load superseded by a newer one returns ErrStaleBatch and changes nothing.
func (s *PackageSession) Load(ctx context.Context, batchID string) (*PackageView, error) {
	fetchCtx, gen := s.fetch.begin(ctx)
	orders, err := s.api.FetchOrders(fetchCtx, batchID)

	var view *PackageView
	current := s.fetch.finish(gen, func() {
		if err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.batch = allocation.NewBatch(batchID, orders)
		view = s.viewLocked()
	})
	if !current {
		return nil, ErrStaleBatch
	}
	if err != nil {
		return nil, err
	}

	l := logger.For("packages")
	l.Info().
		Str("workspace_id", s.workspaceID).
		Str("batch_id", batchID).
		Int("orders", len(orders)).
		Msg("Batch loaded for packing")
	return view, nil
}

// View returns the current package screen.
func (s *PackageSession) View() (*PackageView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch == nil {
		return nil, errBatchNotLoaded()
	}
	return s.viewLocked(), nil
}

func (s *PackageSession) viewLocked() *PackageView {
	view := &PackageView{
		BatchID:     s.batch.ID(),
		Orders:      make([]OrderAllocationView, 0, s.batch.Len()),
		AllComplete: s.batch.AllComplete(),
	}
	for _, o := range s.batch.Orders() {
		st, _ := s.batch.State(o.OrderID)
		view.Orders = append(view.Orders, OrderAllocationView{
			Order:         o,
			Packages:      st.Packages(),
			Remaining:     st.Remaining(),
			Complete:      st.IsComplete(),
			CanAddPackage: st.CanAddPackage(),
		})
	}
	return view
}

// BatchID returns the loaded batch id, or "" when none is loaded.
func (s *PackageSession) BatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch == nil {
		return ""
	}
	return s.batch.ID()
}

func (s *PackageSession) loaded() (*allocation.Batch, error) {
	if s.batch == nil {
		return nil, errBatchNotLoaded()
	}
	return s.batch, nil
}

// AddPackage appends a package seeded with the order's remainder. It is
// refused while the order cannot be split further (State.CanAddPackage).
func (s *PackageSession) AddPackage(orderID string) (allocation.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return allocation.Package{}, err
	}
	st, err := b.State(orderID)
	if err != nil {
		return allocation.Package{}, err
	}
	if !st.CanAddPackage() {
		return allocation.Package{}, errs.NewOrderValidationError(errs.CodePackageNotAllowed, orderID,
			"take units out of the first package before adding another")
	}
	return b.AddPackage(orderID)
}

// RemovePackage removes the last package of an order. It reports false when
// only the first package is left.
func (s *PackageSession) RemovePackage(orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return false, err
	}
	return b.RemovePackage(orderID)
}

// UpdateAllocation sets the quantity of sku in a package. Quantities outside
// [0, quantityPurchased] are refused here, before the engine sees them.
func (s *PackageSession) UpdateAllocation(orderID string, packageID int, sku string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return err
	}
	st, err := b.State(orderID)
	if err != nil {
		return err
	}
	if p, ok := st.Order().Product(sku); ok && (quantity < 0 || quantity > p.QuantityPurchased) {
		return errs.NewOrderValidationError(errs.CodeQuantityOutOfRange, orderID,
			fmt.Sprintf("quantity of %s must be between 0 and %d", sku, p.QuantityPurchased))
	}
	return b.UpdateAllocation(orderID, packageID, sku, quantity)
}

// ConfirmOrder submits the packages of one order. Local state is kept on success.
func (s *PackageSession) ConfirmOrder(ctx context.Context, orderID string) (dto.ConfirmationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return nil, err
	}
	res, err := s.coordinator.ConfirmOrder(ctx, b, orderID)
	s.record(ctx, model.ConfirmationPackages, b.ID(), []string{orderID}, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmAll submits every order of the batch in one request.
func (s *PackageSession) ConfirmAll(ctx context.Context) (dto.ConfirmationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loaded()
	if err != nil {
		return nil, err
	}
	res, err := s.coordinator.ConfirmAll(ctx, b)
	orderIDs := make([]string, 0, b.Len())
	for _, o := range b.Orders() {
		orderIDs = append(orderIDs, o.OrderID)
	}
	s.record(ctx, model.ConfirmationBatchPackages, b.ID(), orderIDs, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// record updates metrics and history for a confirmation attempt. Validation
// failures never reached the API and are only counted.
func (s *PackageSession) record(ctx context.Context, kind model.ConfirmationKind, batchID string, orderIDs []string, err error) {
	l := logger.For("packages")
	if _, ok := errs.AsValidation(err); ok {
		metrics.RecordConfirmation(string(kind), "rejected")
		return
	}

	c := &model.Confirmation{
		Kind:        kind,
		WorkspaceID: s.workspaceID,
		BatchID:     batchID,
		OrderIDs:    orderIDs,
		Success:     err == nil,
	}
	if err != nil {
		metrics.RecordConfirmation(string(kind), "failed")
		c.Error = err.Error()
		l.Error().
			Err(err).
			Str("workspace_id", s.workspaceID).
			Str("batch_id", batchID).
			Strs("order_ids", orderIDs).
			Msg("Package confirmation failed")
	} else {
		metrics.RecordConfirmation(string(kind), "success")
		l.Info().
			Str("workspace_id", s.workspaceID).
			Str("batch_id", batchID).
			Strs("order_ids", orderIDs).
			Msg("Packages confirmed")
	}
	recordConfirmation(ctx, s.recorder, c)
}
