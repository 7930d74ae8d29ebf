package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentwheels/rental-admin/internal/common"
	"github.com/rentwheels/rental-admin/pkg/ginutil"
)

// AdminLevel is the minimum member level allowed to manage content entries
const AdminLevel = 10

// RequireAdmin checks that the authenticated user has admin level
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserLevel(c) < AdminLevel {
			common.ErrorResponse(c, http.StatusForbidden, ginutil.T(c, "error.forbidden"), common.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
