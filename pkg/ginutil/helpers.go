package ginutil

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentwheels/rental-admin/pkg/i18n"
)

// TrimmedQuery returns a query parameter with surrounding whitespace removed
func TrimmedQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

// TrimmedParam returns a path parameter with surrounding whitespace removed
func TrimmedParam(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Param(key))
}

// RequestID returns the request id set by the request logger, or ""
func RequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// T translates key into the locale of the request's Accept-Language header
func T(c *gin.Context, key string, args ...interface{}) string {
	locale := i18n.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	return i18n.Default().T(locale, key, args...)
}
