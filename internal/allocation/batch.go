package allocation

import (
	"fmt"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
)

// Batch holds the allocation state of every order of a loaded batch.
type Batch struct {
	id     string
	orders []model.Order
	states map[string]*State
}

// NewBatch initializes one State per order, keeping the fetch order.
func NewBatch(id string, orders []model.Order) *Batch {
	b := &Batch{
		id:     id,
		orders: make([]model.Order, len(orders)),
		states: make(map[string]*State, len(orders)),
	}
	copy(b.orders, orders)
	for _, o := range orders {
		b.states[o.OrderID] = Initialize(o)
	}
	return b
}

// ID returns the batch identifier.
func (b *Batch) ID() string {
	return b.id
}

// Orders returns the orders in fetch order.
func (b *Batch) Orders() []model.Order {
	out := make([]model.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Len returns the number of orders.
func (b *Batch) Len() int {
	return len(b.orders)
}

// State returns the allocation state of an order.
func (b *Batch) State(orderID string) (*State, error) {
	st, ok := b.states[orderID]
	if !ok {
		return nil, errs.NewOrderValidationError(errs.CodeOrderNotFound, orderID,
			fmt.Sprintf("order %q is not part of batch %q", orderID, b.id))
	}
	return st, nil
}

// AddPackage adds a package to an order.
func (b *Batch) AddPackage(orderID string) (Package, error) {
	st, err := b.State(orderID)
	if err != nil {
		return Package{}, err
	}
	return st.AddPackage(), nil
}

// RemovePackage removes the last package of an order.
func (b *Batch) RemovePackage(orderID string) (bool, error) {
	st, err := b.State(orderID)
	if err != nil {
		return false, err
	}
	return st.RemovePackage(), nil
}

// UpdateAllocation sets a quantity on one package of an order.
func (b *Batch) UpdateAllocation(orderID string, packageID int, sku string, quantity int) error {
	st, err := b.State(orderID)
	if err != nil {
		return err
	}
	return st.UpdateAllocation(packageID, sku, quantity)
}

// Incomplete returns the ids of orders that are not fully allocated, in fetch order.
func (b *Batch) Incomplete() []string {
	var ids []string
	for _, o := range b.orders {
		if !b.states[o.OrderID].IsComplete() {
			ids = append(ids, o.OrderID)
		}
	}
	return ids
}

// AllComplete reports whether every order is fully allocated.
func (b *Batch) AllComplete() bool {
	return len(b.Incomplete()) == 0
}

func (b *Batch) orderRequest(orderID string) (dto.ConfirmPackagesRequest, error) {
	st, err := b.State(orderID)
	if err != nil {
		return dto.ConfirmPackagesRequest{}, err
	}
	if !st.IsComplete() {
		return dto.ConfirmPackagesRequest{}, errs.NewOrderValidationError(errs.CodeAllocationIncomplete, orderID,
			fmt.Sprintf("order %q still has unallocated units", orderID))
	}
	return dto.ConfirmPackagesRequest{Packages: st.Payload()}, nil
}

func (b *Batch) batchRequest() (dto.ConfirmBatchPackagesRequest, error) {
	if missing := b.Incomplete(); len(missing) > 0 {
		return dto.ConfirmBatchPackagesRequest{}, errs.NewValidationError(errs.CodeAllocationIncomplete,
			fmt.Sprintf("%d order(s) still have unallocated units", len(missing))).WithDetails(missing...)
	}
	req := dto.ConfirmBatchPackagesRequest{Orders: make([]dto.OrderPackages, 0, len(b.orders))}
	for _, o := range b.orders {
		req.Orders = append(req.Orders, dto.OrderPackages{
			OrderID:  o.OrderID,
			Packages: b.states[o.OrderID].Payload(),
		})
	}
	return req, nil
}
