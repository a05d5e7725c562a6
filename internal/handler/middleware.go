package handler

import (
	"net/http"
	"strings"

	"genstory-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDContextKey = "user_id"

// AuthMiddleware проверяет bearer-токен и кладет user_id в контекст запроса.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.users.VerifyAccessToken(parts[1])
		if err != nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(userIDContextKey, claims.UserID)
		c.Next()
	}
}

// userIDFromContext возвращает идентификатор аутентифицированного пользователя.
// Работает только после AuthMiddleware.
func userIDFromContext(c *gin.Context) (int64, bool) {
	raw, exists := c.Get(userIDContextKey)
	if !exists {
		zap.L().Error("User ID missing in request context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    models.ErrCodeTokenInvalid,
			Message: "Unauthorized",
		})
		return 0, false
	}
	userID, ok := raw.(int64)
	if !ok {
		zap.L().Error("Invalid user ID type in request context", zap.Any("user_id", raw))
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    models.ErrCodeTokenInvalid,
			Message: "Unauthorized",
		})
		return 0, false
	}
	return userID, true
}
