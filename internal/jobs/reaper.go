// Package jobs runs scheduled background work for the console using
// github.com/robfig/cron/v3.
package jobs

import (
	"fmt"
	"time"

	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"github.com/guttosm/fulfillment-console/internal/logger"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// WorkspaceReaper removes workspaces idle for longer than a duration.
type WorkspaceReaper interface {
	Reap(idle time.Duration) []string
}

// EntrySink receives audit entries. *middleware.AsyncLogger satisfies it.
type EntrySink interface {
	Log(entry *model.LogEntry) bool
}

// ReaperJob periodically drops idle workspaces so abandoned sessions do not
// pile up in memory.
type ReaperJob struct {
	workspaces WorkspaceReaper
	idle       time.Duration
	schedule   string
	sink       func() EntrySink
	cron       *cron.Cron
	log        zerolog.Logger
}

// ReaperOption configures a ReaperJob.
type ReaperOption func(*ReaperJob)

// WithEntrySink audits every expired workspace to the sink returned by fn.
// fn is evaluated on each run so a sink started later is still picked up.
func WithEntrySink(fn func() EntrySink) ReaperOption {
	return func(j *ReaperJob) {
		j.sink = fn
	}
}

// NewReaperJob creates a job that reaps workspaces idle for longer than idle,
// on the given cron schedule ("@every 10m", "*/5 * * * *", ...).
func NewReaperJob(workspaces WorkspaceReaper, idle time.Duration, schedule string, opts ...ReaperOption) *ReaperJob {
	j := &ReaperJob{
		workspaces: workspaces,
		idle:       idle,
		schedule:   schedule,
		cron:       cron.New(),
		log:        logger.For("workspace_reaper"),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Start registers the job and starts the scheduler.
func (j *ReaperJob) Start() error {
	if j.idle <= 0 {
		return fmt.Errorf("workspace idle ttl must be positive, got %s", j.idle)
	}
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce() }); err != nil {
		return fmt.Errorf("schedule workspace reaper %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.log.Info().
		Str("schedule", j.schedule).
		Dur("idle_ttl", j.idle).
		Msg("Workspace reaper started")
	return nil
}

// Stop stops the scheduler and waits for a running reap to finish.
func (j *ReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info().Msg("Workspace reaper stopped")
}

// RunOnce reaps idle workspaces immediately and returns their ids.
func (j *ReaperJob) RunOnce() []string {
	reaped := j.workspaces.Reap(j.idle)
	if len(reaped) == 0 || j.sink == nil {
		return reaped
	}

	sink := j.sink()
	if sink == nil {
		return reaped
	}
	now := time.Now()
	for _, id := range reaped {
		entry := &model.LogEntry{
			Timestamp:   now,
			Level:       "info",
			Message:     "Idle workspace expired",
			WorkspaceID: id,
			ActionType:  model.ActionWorkspaceExpired,
		}
		sink.Log(entry.WithField("idle_ttl", j.idle.String()))
	}
	return reaped
}
