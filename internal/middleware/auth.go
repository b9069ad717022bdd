package middleware

import (
	"net/http"
	"strings"
	"time"

	"fichaje_backend/internal/auth"
	"fichaje_backend/internal/logger"
	"fichaje_backend/internal/repositories"
	"fichaje_backend/pkg/apperrors"
	"fichaje_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and loads the caller. Tokens
// issued before the user's last password change are rejected, so a password
// reset invalidates every session issued before it.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header missing or invalid")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			abortUnauthorized(c, "Invalid request context")
			return
		}

		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if user.PasswordChangedAt != nil && claims.IssuedAt != nil {
			// JWT iat carries whole seconds, compare at that precision.
			cutoff := user.PasswordChangedAt.Truncate(time.Second)
			if claims.IssuedAt.Time.Before(cutoff) {
				abortUnauthorized(c, "Token no longer valid, please log in again")
				return
			}
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", user.ID)
		c.Set("email", user.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: apperrors.NewUnauthorizedError(message),
	})
}
