package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamebook-hub/internal/auth"
	"gamebook-hub/internal/models"
)

// Ключи контекста Gin, под которыми middleware сохраняет данные токена.
const (
	PlayerIDContextKey = "player_id"
	RolesContextKey    = "roles"
)

// RoleAuthor — роль, дающая доступ к авторским эндпоинтам.
const RoleAuthor = "author"

// AuthMiddleware создает middleware для проверки JWT access токена.
// Проверяет подпись, срок действия, извлекает player_id и при необходимости
// требует наличия одной из ролей.
func AuthMiddleware(verifier *auth.JWTVerifier, logger *zap.Logger, requiredRoles ...string) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Authorization header missing", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing token"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			log.Warn("Malformed Authorization header", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "malformed token header"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, models.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
			return
		}

		if len(requiredRoles) > 0 {
			allowed := false
			for _, role := range requiredRoles {
				if claims.HasRole(role) {
					allowed = true
					break
				}
			}
			if !allowed {
				log.Warn("User does not have required role",
					zap.Stringer("playerID", claims.PlayerID),
					zap.Strings("userRoles", claims.Roles),
					zap.Strings("requiredRoles", requiredRoles))
				c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "insufficient permissions"})
				return
			}
		}

		c.Set(PlayerIDContextKey, claims.PlayerID)
		c.Set(RolesContextKey, claims.Roles)
		c.Next()
	}
}

// PlayerIDFromContext извлекает идентификатор игрока, сохраненный AuthMiddleware.
func PlayerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(PlayerIDContextKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
