package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentwheels/rental-admin/internal/common"
	"github.com/rentwheels/rental-admin/pkg/ginutil"
	"github.com/rentwheels/rental-admin/pkg/jwt"
)

// gin context keys populated by JWTAuth
const (
	ctxUserID   = "userID"
	ctxNickname = "nickname"
	ctxLevel    = "level"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization 헤더 확인
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, ginutil.T(c, "error.unauthorized"), nil)
			c.Abort()
			return
		}

		// 2. Bearer 토큰 파싱
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, ginutil.T(c, "error.token_invalid"), nil)
			c.Abort()
			return
		}

		// 3. 토큰 검증
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, ginutil.T(c, "error.token_expired"), err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, ginutil.T(c, "error.token_invalid"), err)
			}
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxNickname, claims.Nickname)
		c.Set(ctxLevel, claims.Level)

		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserLevel extracts user level from context
func GetUserLevel(c *gin.Context) int {
	return c.GetInt(ctxLevel)
}

// GetNickname extracts nickname from context
func GetNickname(c *gin.Context) string {
	return c.GetString(ctxNickname)
}
