package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action types recorded by the console.
const (
	ActionRequest                = "request"
	ActionBatchLoaded            = "batch_loaded"
	ActionPackagesConfirmed      = "packages_confirmed"
	ActionBatchPackagesConfirmed = "batch_packages_confirmed"
	ActionShippingConfirmed      = "shipping_confirmed"
	ActionScanRejected           = "scan_rejected"
	ActionWorkspaceExpired       = "workspace_expired"
)

// LogEntry is an audit log entry.
// Context-specific data goes into Fields.
type LogEntry struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
	Level       string                 `bson:"level" json:"level"`
	Message     string                 `bson:"message" json:"message"`
	RequestID   string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method      string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path        string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode  int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration    int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP          string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent   string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error       string                 `bson:"error,omitempty" json:"error,omitempty"`
	WorkspaceID string                 `bson:"workspace_id,omitempty" json:"workspace_id,omitempty"`
	BatchID     string                 `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
	OrderID     string                 `bson:"order_id,omitempty" json:"order_id,omitempty"`
	ActionType  string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields      map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the log entry's Fields map.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields adds multiple fields to the log entry's Fields map.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions filters the audit trail.
type LogQueryOptions struct {
	RequestID   string
	Level       string
	WorkspaceID string
	BatchID     string
	OrderID     string
	ActionType  string
	StartTime   *time.Time
	EndTime     *time.Time
	Limit       int
	Skip        int
}

// AuditTrail is one page of audit entries, newest first.
type AuditTrail struct {
	Entries []LogEntry `json:"entries"`
	Total   int64      `json:"total"`
	Limit   int        `json:"limit"`
	Skip    int        `json:"skip"`
}
