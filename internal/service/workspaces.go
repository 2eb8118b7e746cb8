package service

import (
	"sort"
	"sync"
	"time"

	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/guttosm/fulfillment-console/internal/metrics"
	"github.com/guttosm/fulfillment-console/internal/shipping"
)

// Workspace is the state of one operator console: a package session and a
// shipping session that load batches independently.
type Workspace struct {
	ID       string
	Packages *PackageSession
	Shipping *ShippingSession

	mu       sync.Mutex
	lastSeen time.Time
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

// LastSeen returns when the workspace was last used.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Workspaces is the registry of live workspaces keyed by workspace id.
type Workspaces struct {
	api      FulfillmentAPI
	catalog  *shipping.Catalog
	recorder ConfirmationRecorder
	now      func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewWorkspaces creates an empty registry. recorder may be nil.
func NewWorkspaces(api FulfillmentAPI, catalog *shipping.Catalog, recorder ConfirmationRecorder) *Workspaces {
	if catalog == nil {
		catalog = shipping.DefaultCatalog()
	}
	return &Workspaces{
		api:      api,
		catalog:  catalog,
		recorder: recorder,
		now:      time.Now,
		items:    make(map[string]*Workspace),
	}
}

// Catalog returns the courier catalog shared by every workspace.
func (r *Workspaces) Catalog() *shipping.Catalog {
	return r.catalog
}

// Get returns the workspace with the given id, creating it on first use.
func (r *Workspaces) Get(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if ws, ok := r.items[id]; ok {
		ws.touch(now)
		return ws
	}
	ws := &Workspace{
		ID:       id,
		Packages: NewPackageSession(id, r.api, r.recorder),
		Shipping: NewShippingSession(id, r.api, r.catalog, r.recorder),
		lastSeen: now,
	}
	r.items[id] = ws
	metrics.SetActiveWorkspaces(len(r.items))
	return ws
}

// Lookup returns an existing workspace without creating or touching it.
func (r *Workspaces) Lookup(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.items[id]
	return ws, ok
}

// Len returns the number of live workspaces.
func (r *Workspaces) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Remove drops a workspace. It reports whether the workspace existed.
func (r *Workspaces) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	metrics.SetActiveWorkspaces(len(r.items))
	return true
}

// Reap removes workspaces unused for longer than idle and returns their ids, sorted.
func (r *Workspaces) Reap(idle time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	var reaped []string
	for id, ws := range r.items {
		if ws.LastSeen().Before(cutoff) {
			delete(r.items, id)
			reaped = append(reaped, id)
		}
	}
	sort.Strings(reaped)
	metrics.SetActiveWorkspaces(len(r.items))

	if len(reaped) > 0 {
		l := logger.For("workspaces")
		l.Info().
			Strs("workspace_ids", reaped).
			Int("remaining", len(r.items)).
			Msg("Idle workspaces reaped")
	}
	return reaped
}
