package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/21f1006580/quiz-master/config"
	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
)

// RequireAuth validates the bearer token and stores the caller's identity on
// the gin context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or malformed authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token claims"})
			return
		}
		isAdmin, _ := claims["is_admin"].(bool)

		ctx.Set(ContextUserID, uint(userID))
		ctx.Set(ContextIsAdmin, isAdmin)
		ctx.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !ctx.GetBool(ContextIsAdmin) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user's id from the context.
func UserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
