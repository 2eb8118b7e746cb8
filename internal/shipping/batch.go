package shipping

import (
	"fmt"
	"strings"

	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
)

// Config is the batch-wide shipping selection.
//
// @Description Batch shipping configuration
type Config struct {
	Courier     model.Courier `json:"courier" example:"USPS"`
	Service     string        `json:"service" example:"first-class"`
	GeneralCost string        `json:"generalCost" example:"5.00"`
}

// ScanResult tells whether a scan changed the form and where input goes next.
type ScanResult struct {
	Applied bool         `json:"applied"`
	Focus   *FocusTarget `json:"focus,omitempty"`
}

// Batch owns the shipping forms of a loaded batch.
type Batch struct {
	id               string
	orders           []model.Order
	forms            map[string]*FormState
	config           Config
	catalog          *Catalog
	alreadyConfirmed bool
}

// NewBatch prepares the shipping forms of a batch. When every fetched order is
// already shipped the batch starts empty and reports AlreadyConfirmed.
func NewBatch(id string, orders []model.Order, catalog *Catalog) *Batch {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	courier, service := catalog.defaults()
	b := &Batch{
		id:      id,
		forms:   make(map[string]*FormState),
		config:  Config{Courier: courier, Service: service},
		catalog: catalog,
	}
	if model.AllShipped(orders) {
		b.alreadyConfirmed = true
		return b
	}
	b.orders = append([]model.Order(nil), orders...)
	for _, o := range orders {
		b.forms[o.OrderID] = &FormState{}
	}
	return b
}

// ID returns the batch identifier.
func (b *Batch) ID() string {
	return b.id
}

// Orders returns the pending orders in fetch order.
func (b *Batch) Orders() []model.Order {
	return append([]model.Order(nil), b.orders...)
}

// AlreadyConfirmed reports whether the batch was fully shipped when loaded.
func (b *Batch) AlreadyConfirmed() bool {
	return b.alreadyConfirmed
}

// Config returns the batch-wide shipping selection.
func (b *Batch) Config() Config {
	return b.config
}

// Catalog returns the courier catalog the batch validates against.
func (b *Batch) Catalog() *Catalog {
	return b.catalog
}

// Form returns a copy of an order's form.
func (b *Batch) Form(orderID string) (FormState, error) {
	f, err := b.form(orderID)
	if err != nil {
		return FormState{}, err
	}
	return f.clone(), nil
}

// Forms returns copies of every form in fetch order.
func (b *Batch) Forms() []FormState {
	out := make([]FormState, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, b.forms[o.OrderID].clone())
	}
	return out
}

func (b *Batch) form(orderID string) (*FormState, error) {
	f, ok := b.forms[orderID]
	if !ok {
		return nil, errs.NewOrderValidationError(errs.CodeOrderNotFound, orderID,
			fmt.Sprintf("order %q is not part of batch %q", orderID, b.id))
	}
	return f, nil
}

func (b *Batch) order(orderID string) (model.Order, bool) {
	for _, o := range b.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return model.Order{}, false
}

// Scan binds a scanned order id to the target row.
//
// The value must identify an order of the batch and must not already be bound
// to another row. Scanning a row that is already confirmed is ignored.
func (b *Batch) Scan(targetOrderID, value string) (ScanResult, error) {
	form, err := b.form(targetOrderID)
	if err != nil {
		return ScanResult{}, err
	}
	value = strings.TrimSpace(value)

	matched, ok := b.order(value)
	if !ok {
		return ScanResult{}, errs.NewOrderValidationError(errs.CodeOrderNotFound, targetOrderID,
			fmt.Sprintf("order %q not found in this batch", value))
	}
	for id, f := range b.forms {
		if id != targetOrderID && f.ScannedOrderID == value {
			return ScanResult{}, errs.NewOrderValidationError(errs.CodeAlreadyScanned, targetOrderID,
				fmt.Sprintf("order %q has already been scanned", value))
		}
	}
	if form.Confirmed {
		return ScanResult{Applied: false}, nil
	}

	cost := form.Cost
	if b.config.GeneralCost != "" {
		cost = b.config.GeneralCost
	}
	*form = FormState{
		ScannedOrderID:       value,
		OrderReferenceNumber: matched.OrderReferenceNumber,
		TrackingNumbers:      []string{""},
		Cost:                 cost,
		Confirmed:            true,
	}
	return ScanResult{
		Applied: true,
		Focus:   &FocusTarget{Kind: FocusTracking, OrderID: targetOrderID, Index: 0},
	}, nil
}

func (b *Batch) scannedForm(orderID string) (*FormState, error) {
	form, err := b.form(orderID)
	if err != nil {
		return nil, err
	}
	if !form.Confirmed {
		return nil, errs.NewOrderValidationError(errs.CodeOrderNotScanned, orderID,
			fmt.Sprintf("order %q has not been scanned yet", orderID))
	}
	return form, nil
}

// AddTracking appends an empty tracking entry and points focus at it.
func (b *Batch) AddTracking(orderID string) (*FocusTarget, error) {
	form, err := b.scannedForm(orderID)
	if err != nil {
		return nil, err
	}
	form.TrackingNumbers = append(form.TrackingNumbers, "")
	return &FocusTarget{Kind: FocusTracking, OrderID: orderID, Index: len(form.TrackingNumbers) - 1}, nil
}

// UpdateTracking replaces the tracking entry at index.
func (b *Batch) UpdateTracking(orderID string, index int, value string) error {
	form, err := b.scannedForm(orderID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(form.TrackingNumbers) {
		return errs.NewOrderValidationError(errs.CodeTrackingIndexOutOfRange, orderID,
			fmt.Sprintf("tracking index %d is out of range", index))
	}
	form.TrackingNumbers[index] = value
	return nil
}

// AdvanceFocus returns where input goes after Enter on a tracking entry:
// the next entry of the same order, else the next order's scan input.
// A nil target means there is nothing left to focus.
func (b *Batch) AdvanceFocus(orderID string, index int) (*FocusTarget, error) {
	form, err := b.form(orderID)
	if err != nil {
		return nil, err
	}
	if index+1 < len(form.TrackingNumbers) {
		return &FocusTarget{Kind: FocusTracking, OrderID: orderID, Index: index + 1}, nil
	}
	for i, o := range b.orders {
		if o.OrderID == orderID && i+1 < len(b.orders) {
			return &FocusTarget{Kind: FocusScan, OrderID: b.orders[i+1].OrderID}, nil
		}
	}
	return nil, nil
}

// SetCost overrides the cost of one order. Blank unsets it.
func (b *Batch) SetCost(orderID, value string) error {
	form, err := b.form(orderID)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if !ValidCost(value) {
		return errs.NewOrderValidationError(errs.CodeInvalidCost, orderID,
			fmt.Sprintf("cost %q is not a valid amount", value))
	}
	form.Cost = value
	return nil
}

// SetGeneralCost stores the batch cost and copies it into every order,
// replacing costs set per order.
func (b *Batch) SetGeneralCost(value string) error {
	value = strings.TrimSpace(value)
	if !ValidCost(value) {
		return errs.NewValidationError(errs.CodeInvalidCost,
			fmt.Sprintf("cost %q is not a valid amount", value))
	}
	b.config.GeneralCost = value
	for _, f := range b.forms {
		f.Cost = value
	}
	return nil
}

// SetCourier switches courier. The service is kept only when the new courier offers it.
func (b *Batch) SetCourier(value string) error {
	c, ok := model.ParseCourier(value)
	if !ok || !b.catalog.HasCourier(c) {
		return errs.NewValidationError(errs.CodeInvalidCourier,
			fmt.Sprintf("courier %q is not supported", value))
	}
	b.config.Courier = c
	if !b.catalog.HasService(c, b.config.Service) {
		b.config.Service = ""
	}
	return nil
}

// SetService selects a service from the current courier's menu.
func (b *Batch) SetService(code string) error {
	code = strings.TrimSpace(code)
	if !b.catalog.HasService(b.config.Courier, code) {
		return errs.NewValidationError(errs.CodeInvalidService,
			fmt.Sprintf("service %q is not offered by %s", code, b.config.Courier))
	}
	b.config.Service = code
	return nil
}

// ConfigUpdate carries the fields of a configuration change; nil fields are left alone.
type ConfigUpdate struct {
	Courier     *string `json:"courier,omitempty"`
	Service     *string `json:"service,omitempty"`
	GeneralCost *string `json:"generalCost,omitempty"`
}

// ApplyConfig validates every field of u before changing anything, then applies
// courier, service and general cost in that order.
func (b *Batch) ApplyConfig(u ConfigUpdate) error {
	courier := b.config.Courier
	if u.Courier != nil {
		c, ok := model.ParseCourier(*u.Courier)
		if !ok || !b.catalog.HasCourier(c) {
			return errs.NewValidationError(errs.CodeInvalidCourier,
				fmt.Sprintf("courier %q is not supported", *u.Courier))
		}
		courier = c
	}
	if u.Service != nil && !b.catalog.HasService(courier, strings.TrimSpace(*u.Service)) {
		return errs.NewValidationError(errs.CodeInvalidService,
			fmt.Sprintf("service %q is not offered by %s", *u.Service, courier))
	}
	if u.GeneralCost != nil && !ValidCost(*u.GeneralCost) {
		return errs.NewValidationError(errs.CodeInvalidCost,
			fmt.Sprintf("cost %q is not a valid amount", *u.GeneralCost))
	}

	if u.Courier != nil {
		_ = b.SetCourier(*u.Courier)
	}
	if u.Service != nil {
		_ = b.SetService(*u.Service)
	}
	if u.GeneralCost != nil {
		_ = b.SetGeneralCost(*u.GeneralCost)
	}
	return nil
}

// NotReady returns the ids of orders whose tracking numbers are incomplete.
func (b *Batch) NotReady() []string {
	var ids []string
	for _, o := range b.orders {
		if !b.forms[o.OrderID].IsReady() {
			ids = append(ids, o.OrderID)
		}
	}
	return ids
}

// AllOrdersReady reports whether there is at least one order and every one is ready.
func (b *Batch) AllOrdersReady() bool {
	return len(b.orders) > 0 && len(b.NotReady()) == 0
}

func (b *Batch) request() (dto.ConfirmShippingRequest, error) {
	if !b.AllOrdersReady() {
		return dto.ConfirmShippingRequest{}, errs.NewValidationError(errs.CodeTrackingNotReady,
			"every order needs at least one tracking number and no blank entries").WithDetails(b.NotReady()...)
	}
	if b.config.Service == "" {
		return dto.ConfirmShippingRequest{}, errs.NewValidationError(errs.CodeServiceRequired,
			"select a service before confirming")
	}
	req := dto.ConfirmShippingRequest{
		Courier:           string(b.config.Courier),
		Service:           b.config.Service,
		OrderConfirmation: make([]dto.OrderConfirmation, 0, len(b.orders)),
	}
	for _, o := range b.orders {
		f := b.forms[o.OrderID]
		req.OrderConfirmation = append(req.OrderConfirmation, dto.OrderConfirmation{
			OrderID:         o.OrderID,
			TrackingNumbers: append([]string(nil), f.TrackingNumbers...),
			Cost:            f.Cost,
		})
	}
	return req, nil
}

// Reset discards the orders and forms. The courier selection is kept.
func (b *Batch) Reset() {
	b.orders = nil
	b.forms = make(map[string]*FormState)
}
