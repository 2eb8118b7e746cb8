package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/domain/model"
)

// AuditEvent describes a console action worth keeping in the audit log.
type AuditEvent struct {
	ActionType string
	Message    string
	BatchID    string
	OrderID    string
	Err        error
	Fields     map[string]interface{}
}

// AuditLog enqueues ev on the async logger together with the request and
// workspace identity. It reports whether the entry was enqueued; a nil logger
// or a full buffer drops it.
func AuditLog(al *AsyncLogger, c *gin.Context, ev AuditEvent) bool {
	if al == nil {
		return false
	}

	entry := &model.LogEntry{
		Timestamp:   time.Now(),
		Level:       "info",
		Message:     ev.Message,
		RequestID:   GetRequestID(c),
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		IP:          c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		WorkspaceID: GetWorkspaceID(c),
		BatchID:     ev.BatchID,
		OrderID:     ev.OrderID,
		ActionType:  ev.ActionType,
	}
	if len(ev.Fields) > 0 {
		entry.WithFields(ev.Fields)
	}
	if ev.Err != nil {
		entry.Level = "error"
		entry.Error = ev.Err.Error()
	}

	return al.Log(entry)
}
