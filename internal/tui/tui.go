// Package tui is the terminal scan console. It drives the shipping flow of one
// workspace: pick a batch, scan each order, enter tracking numbers and confirm.
//
// The model follows bubbletea's update/view loop. Blocking calls to the
// fulfillment API run as commands and come back as messages.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guttosm/fulfillment-console/internal/domain/dto"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/guttosm/fulfillment-console/internal/i18n"
	"github.com/guttosm/fulfillment-console/internal/service"
	"github.com/guttosm/fulfillment-console/internal/shipping"
)

// BatchLister lists the batches an operator can pick.
type BatchLister interface {
	ListBatches(ctx context.Context) ([]model.Batch, error)
}

// Session is the shipping session the console drives. *service.ShippingSession satisfies it.
type Session interface {
	Load(ctx context.Context, batchID string) (*service.ShippingView, error)
	View() (*service.ShippingView, error)
	Scan(orderID, value string) (shipping.ScanResult, error)
	AddTracking(orderID string) (*shipping.FocusTarget, error)
	UpdateTracking(orderID string, index int, value string) error
	AdvanceFocus(orderID string, index int) (*shipping.FocusTarget, error)
	UpdateConfig(u shipping.ConfigUpdate) (shipping.Config, error)
	Confirm(ctx context.Context) (*dto.ConfirmShippingResult, error)
}

type screen int

const (
	screenBatches screen = iota
	screenShipping
)

type batchesMsg struct {
	batches []model.Batch
	err     error
}

type loadedMsg struct {
	view *service.ShippingView
	err  error
}

type confirmedMsg struct {
	result *dto.ConfirmShippingResult
	err    error
}

// batchItem implements list.DefaultItem for the batch picker.
type batchItem struct {
	batch model.Batch
}

func (i batchItem) Title() string {
	if i.batch.Name != "" {
		return i.batch.Name
	}
	return i.batch.ID
}

func (i batchItem) Description() string {
	platforms := make([]string, 0, len(i.batch.Platforms))
	for _, p := range i.batch.Platforms {
		platforms = append(platforms, string(p))
	}
	desc := fmt.Sprintf("%s · %d orders", i.batch.ID, i.batch.OrderCount)
	if len(platforms) > 0 {
		desc += " · " + strings.Join(platforms, ", ")
	}
	return desc
}

func (i batchItem) FilterValue() string { return i.batch.ID + " " + i.batch.Name }

// Model is the console state.
type Model struct {
	ctx     context.Context
	batches BatchLister
	session Session
	locale  string

	screen  screen
	picker  list.Model
	input   textinput.Model
	spinner spinner.Model
	busy    bool

	view   *service.ShippingView
	focus  *shipping.FocusTarget
	status string
	err    error

	width  int
	height int
}

// Option customizes the console model.
type Option func(*Model)

// WithLocale sets the locale of validation messages. Unknown locales fall back to English.
func WithLocale(locale string) Option {
	return func(m *Model) {
		m.locale = i18n.Normalize(locale)
	}
}

// New creates the console model. ctx bounds every call to the fulfillment API.
func New(ctx context.Context, batches BatchLister, session Session, opts ...Option) Model {
	picker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Batches"
	picker.SetShowHelp(false)

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		batches: batches,
		session: session,
		locale:  i18n.DefaultLocale,
		screen:  screenBatches,
		picker:  picker,
		input:   input,
		spinner: sp,
		busy:    true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init fetches the batch list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchBatches())
}

func (m Model) fetchBatches() tea.Cmd {
	return func() tea.Msg {
		batches, err := m.batches.ListBatches(m.ctx)
		return batchesMsg{batches: batches, err: err}
	}
}

func (m Model) loadBatch(batchID string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.session.Load(m.ctx, batchID)
		return loadedMsg{view: view, err: err}
	}
}

func (m Model) confirm() tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.Confirm(m.ctx)
		return confirmedMsg{result: res, err: err}
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.picker.SetSize(msg.Width, max(msg.Height-4, 5))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case batchesMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.batches))
		for _, b := range msg.batches {
			items = append(items, batchItem{batch: b})
		}
		return m, m.picker.SetItems(items)

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.screen = screenShipping
		m.view = msg.view
		if msg.view.AlreadyConfirmed {
			m.status = fmt.Sprintf("Batch %s is already confirmed", msg.view.BatchID)
			m.focus = nil
			return m, nil
		}
		m.status = ""
		cmd := m.setFocus(m.nextScanTarget(-1))
		return m, cmd

	case confirmedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		message := msg.result.Message
		if message == "" {
			message = i18n.GetTranslator().Translate(i18n.SuccessKeyShippingConfirmed, m.locale)
		}
		m.status = fmt.Sprintf("%s (%d updated)", message, msg.result.UpdatedCount)
		m.screen = screenBatches
		m.view = nil
		m.focus = nil
		m.busy = true
		return m, m.fetchBatches()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.screen == screenBatches {
			return m.updateBatches(msg)
		}
		return m.updateShipping(msg)
	}

	return m, nil
}

func (m Model) updateBatches(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			m.busy = true
			m.err = nil
			return m, m.fetchBatches()
		case "enter":
			item, ok := m.picker.SelectedItem().(batchItem)
			if !ok {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.loadBatch(item.batch.ID)
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) updateShipping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenBatches
		m.input.Blur()
		m.err = nil
		return m, nil
	case "ctrl+s":
		m.busy = true
		m.err = nil
		return m, m.confirm()
	case "ctrl+t":
		if m.focus == nil {
			return m, nil
		}
		target, err := m.session.AddTracking(m.focus.OrderID)
		return m.after(target, err)
	case "ctrl+k":
		return m.cycleCourier()
	case "tab":
		current := -1
		if m.focus != nil {
			current = m.rowIndex(m.focus.OrderID)
		}
		cmd := m.setFocus(m.nextScanTarget(current))
		return m, cmd
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the focused input: a scan or a tracking number.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.focus == nil {
		return m, nil
	}
	value := m.input.Value()
	switch m.focus.Kind {
	case shipping.FocusScan:
		res, err := m.session.Scan(m.focus.OrderID, value)
		if err == nil && !res.Applied {
			m.status = fmt.Sprintf("Order %s is already confirmed", m.focus.OrderID)
		}
		return m.after(res.Focus, err)
	case shipping.FocusTracking:
		if err := m.session.UpdateTracking(m.focus.OrderID, m.focus.Index, value); err != nil {
			return m.after(nil, err)
		}
		target, err := m.session.AdvanceFocus(m.focus.OrderID, m.focus.Index)
		return m.after(target, err)
	}
	return m, nil
}

// cycleCourier switches to the next courier of the catalog.
func (m Model) cycleCourier() (tea.Model, tea.Cmd) {
	if m.view == nil {
		return m, nil
	}
	next := model.Couriers[0]
	for i, c := range model.Couriers {
		if c == m.view.Config.Courier {
			next = model.Couriers[(i+1)%len(model.Couriers)]
			break
		}
	}
	courier := string(next)
	_, err := m.session.UpdateConfig(shipping.ConfigUpdate{Courier: &courier})
	return m.after(m.focus, err)
}

// after refreshes the view and moves focus once a session call returned.
func (m Model) after(target *shipping.FocusTarget, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	if view, verr := m.session.View(); verr == nil {
		m.view = view
	}
	if target == nil {
		return m, nil
	}
	cmd := m.setFocus(target)
	return m, cmd
}

func (m *Model) setFocus(target *shipping.FocusTarget) tea.Cmd {
	m.focus = target
	m.input.Reset()
	if target == nil {
		m.input.Blur()
		return nil
	}
	switch target.Kind {
	case shipping.FocusScan:
		m.input.Placeholder = "scan order " + target.OrderID
	case shipping.FocusTracking:
		m.input.Placeholder = fmt.Sprintf("tracking #%d for %s", target.Index+1, target.OrderID)
		if row := m.row(target.OrderID); row != nil && target.Index < len(row.Form.TrackingNumbers) {
			m.input.SetValue(row.Form.TrackingNumbers[target.Index])
		}
	}
	return m.input.Focus()
}

// nextScanTarget returns the scan input of the first unconfirmed order after row from.
func (m Model) nextScanTarget(from int) *shipping.FocusTarget {
	if m.view == nil || len(m.view.Rows) == 0 {
		return nil
	}
	n := len(m.view.Rows)
	for step := 1; step <= n; step++ {
		i := (from + step + n) % n
		if !m.view.Rows[i].Form.Confirmed {
			return &shipping.FocusTarget{Kind: shipping.FocusScan, OrderID: m.view.Rows[i].OrderID}
		}
	}
	return nil
}

func (m Model) rowIndex(orderID string) int {
	if m.view == nil {
		return -1
	}
	for i, r := range m.view.Rows {
		if r.OrderID == orderID {
			return i
		}
	}
	return -1
}

func (m Model) row(orderID string) *service.ShippingRowView {
	if i := m.rowIndex(orderID); i >= 0 {
		return &m.view.Rows[i]
	}
	return nil
}

// errorText renders err the way the web console shows it.
func (m Model) errorText(err error) string {
	if ve, ok := errs.AsValidation(err); ok {
		return i18n.GetTranslator().Translate(i18n.ValidationKey(ve.Code), m.locale)
	}
	if te, ok := errs.AsTransport(err); ok {
		return te.UserMessage()
	}
	return err.Error()
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	switch m.screen {
	case screenBatches:
		b.WriteString(m.picker.View())
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter: load · r: refresh · /: filter · q: quit"))
	case screenShipping:
		b.WriteString(m.shippingView())
	}

	if m.busy {
		b.WriteString("\n" + m.spinner.View() + " working…")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.errorText(m.err)))
	}
	return b.String()
}

func (m Model) shippingView() string {
	if m.view == nil {
		return ""
	}
	v := m.view
	var b strings.Builder

	cfg := v.Config
	svc := cfg.Service
	if svc == "" {
		svc = "(none)"
	}
	b.WriteString(titleStyle.Render("Batch " + v.BatchID))
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s / %s · general cost %q · total %s", cfg.Courier, svc, cfg.GeneralCost, v.TotalCost)))
	b.WriteString("\n\n")

	for _, r := range v.Rows {
		state := pendingStyle.Render("pending")
		switch {
		case r.Ready:
			state = readyStyle.Render("ready")
		case r.Form.Confirmed:
			state = pendingStyle.Render("scanned")
		}
		line := fmt.Sprintf("%-14s %-8s %-10s tracking: %s  cost: %s",
			r.OrderID, r.Platform, state, strings.Join(r.Form.TrackingNumbers, ", "), r.Form.Cost)

		if m.focus != nil && m.focus.OrderID == r.OrderID {
			b.WriteString(focusedRowStyle.Render(line))
			b.WriteString("\n")
			b.WriteString(rowStyle.Render(m.input.View()))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	ready := pendingStyle.Render("not ready")
	if v.AllReady {
		ready = readyStyle.Render("ready to confirm")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, ready, "  ",
		hintStyle.Render("enter: submit · tab: next order · ctrl+t: add tracking · ctrl+k: courier · ctrl+s: confirm · esc: batches")))
	return b.String()
}
