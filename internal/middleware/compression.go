package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are polled by probes and scrapers that gain nothing from gzip.
var uncompressedPaths = []string{"/health", "/healthz", "/readyz", "/metrics"}

// Compression gzips responses for clients that accept it. Batch views with
// many orders are the large payloads; probe and metrics endpoints are skipped.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
