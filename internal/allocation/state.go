// Package allocation splits an order's purchased quantities across packages.
//
// A State owns the package list of one order. The list is never empty and
// package 1 is permanent. For every sku the sum of allocations across packages
// is bounded by the purchased quantity; the order is complete when the sum is
// exactly the purchased quantity for every sku.
//
// The engine stores the values it is given. Keeping quantities inside
// [0, quantityPurchased] is left to the caller presenting the inputs, so a
// State may temporarily hold an over- or under-allocation; both show up as a
// non-zero remainder and keep the order incomplete.
package allocation

import (
	"fmt"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
)

// Package is a physical shipping unit holding part of an order.
//
// @Description Package with its sku allocations
type Package struct {
	ID          int            `json:"id" example:"1"`
	Allocations map[string]int `json:"allocations"`
}

func (p Package) clone() Package {
	alloc := make(map[string]int, len(p.Allocations))
	for k, v := range p.Allocations {
		alloc[k] = v
	}
	return Package{ID: p.ID, Allocations: alloc}
}

// State is the package list of a single order.
type State struct {
	order    model.Order
	packages []Package
}

// Initialize puts every purchased unit into package 1.
func Initialize(order model.Order) *State {
	full := make(map[string]int, len(order.Products))
	for _, p := range order.Products {
		full[p.SKU] = p.QuantityPurchased
	}
	return &State{
		order:    order,
		packages: []Package{{ID: 1, Allocations: full}},
	}
}

// Order returns the order this state belongs to.
func (s *State) Order() model.Order {
	return s.order
}

// Packages returns a copy of the package list.
func (s *State) Packages() []Package {
	out := make([]Package, len(s.packages))
	for i, p := range s.packages {
		out[i] = p.clone()
	}
	return out
}

// PackageCount returns the number of packages.
func (s *State) PackageCount() int {
	return len(s.packages)
}

// Remaining returns, per sku, the purchased quantity minus what all packages allocate.
func (s *State) Remaining() map[string]int {
	remaining := make(map[string]int, len(s.order.Products))
	for _, p := range s.order.Products {
		allocated := 0
		for _, pkg := range s.packages {
			allocated += pkg.Allocations[p.SKU]
		}
		remaining[p.SKU] = p.QuantityPurchased - allocated
	}
	return remaining
}

// IsComplete reports whether every sku is fully allocated.
func (s *State) IsComplete() bool {
	for _, r := range s.Remaining() {
		if r != 0 {
			return false
		}
	}
	return true
}

// CanAddPackage reports whether splitting into another package is offered.
// Only the first package is inspected: a sku must have been taken out of it.
func (s *State) CanAddPackage() bool {
	if s.IsComplete() || len(s.packages) == 0 {
		return false
	}
	first := s.packages[0]
	for _, p := range s.order.Products {
		if first.Allocations[p.SKU] < p.QuantityPurchased {
			return true
		}
	}
	return false
}

// AddPackage appends a package seeded with the current remainder and returns it.
func (s *State) AddPackage() Package {
	nextID := 0
	for _, p := range s.packages {
		if p.ID > nextID {
			nextID = p.ID
		}
	}
	pkg := Package{ID: nextID + 1, Allocations: s.Remaining()}
	s.packages = append(s.packages, pkg)
	return pkg.clone()
}

// RemovePackage drops the last package. Package 1 is never removed; the
// returned flag is false when there was nothing to remove.
func (s *State) RemovePackage() bool {
	if len(s.packages) <= 1 {
		return false
	}
	s.packages = s.packages[:len(s.packages)-1]
	return true
}

// UpdateAllocation sets the quantity of sku in the addressed package, replacing any prior value.
func (s *State) UpdateAllocation(packageID int, sku string, quantity int) error {
	if _, ok := s.order.Product(sku); !ok {
		return errs.NewOrderValidationError(errs.CodeSKUNotFound, s.order.OrderID,
			fmt.Sprintf("sku %q is not part of the order", sku))
	}
	for i := range s.packages {
		if s.packages[i].ID == packageID {
			s.packages[i].Allocations[sku] = quantity
			return nil
		}
	}
	return errs.NewOrderValidationError(errs.CodePackageNotFound, s.order.OrderID,
		fmt.Sprintf("package %d does not exist", packageID))
}

// Payload maps the packages to the fulfillment API wire shape.
// Every sku present in an allocation map is sent, zero quantities included,
// following the order's product sequence.
func (s *State) Payload() []dto.PackagePayload {
	out := make([]dto.PackagePayload, 0, len(s.packages))
	for _, pkg := range s.packages {
		lines := make([]dto.PackageProduct, 0, len(pkg.Allocations))
		for _, p := range s.order.Products {
			if q, ok := pkg.Allocations[p.SKU]; ok {
				lines = append(lines, dto.PackageProduct{SKU: p.SKU, Quantity: q})
			}
		}
		out = append(out, dto.PackagePayload{Products: lines})
	}
	return out
}
