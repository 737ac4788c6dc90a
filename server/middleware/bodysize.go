package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultMaxBodySize = 1 * 1024 * 1024 // 1MB

// BodySizeLimit returns a Gin middleware that restricts the request body to
// the given size string (e.g. "1MB", "512KB").
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := parseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}

// parseSize converts a human-readable size like "10MB" into bytes, falling
// back to def when the string does not parse.
func parseSize(s string, def int64) int64 {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return def
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1 << 30
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1 << 20
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1 << 10
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n * multiplier
}
