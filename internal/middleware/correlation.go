// Package middleware provides HTTP middleware components for the fulfillment console.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	// RequestIDHeader carries the id of one HTTP request.
	RequestIDHeader = "X-Request-ID"
	// WorkspaceIDHeader selects the operator workspace of a request.
	WorkspaceIDHeader = "X-Workspace-ID"

	// RequestIDKey is the context key for the request ID.
	RequestIDKey ContextKey = "request_id"
	// WorkspaceIDKey is the context key for the workspace ID.
	WorkspaceIDKey ContextKey = "workspace_id"

	maxCorrelationIDLength = 128
)

// validCorrelationID accepts ids a browser console or scanner station could
// reasonably send: 1 to 128 characters of [A-Za-z0-9._:-].
func validCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '.', ch == '_', ch == ':', ch == '-':
		default:
			return false
		}
	}
	return true
}

// correlationID takes the id from header, or generates a UUID when it is
// missing or malformed, stores it under key and echoes it in the response.
func correlationID(header string, key ContextKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if !validCorrelationID(id) {
			id = uuid.New().String()
		}

		c.Set(string(key), id)
		c.Header(header, id)
		c.Next()
	}
}

// RequestID ensures each request has an id in X-Request-ID.
func RequestID() gin.HandlerFunc {
	return correlationID(RequestIDHeader, RequestIDKey)
}

// WorkspaceID resolves the operator workspace of each request from X-Workspace-ID.
// A request without one starts a new workspace; the client keeps the echoed id.
func WorkspaceID() gin.HandlerFunc {
	return correlationID(WorkspaceIDHeader, WorkspaceIDKey)
}

func contextString(c *gin.Context, key ContextKey) string {
	if v, exists := c.Get(string(key)); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	return contextString(c, RequestIDKey)
}

// GetWorkspaceID retrieves the workspace ID from the gin context.
func GetWorkspaceID(c *gin.Context) string {
	return contextString(c, WorkspaceIDKey)
}
