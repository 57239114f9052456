package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamebook-hub/internal/auth"
	"gamebook-hub/internal/middleware"
	"gamebook-hub/internal/service"
)

// Handler объединяет HTTP-обработчики сервиса и их зависимости.
type Handler struct {
	catalog   service.CatalogService
	play      service.PlayService
	importer  service.ImportService
	authoring service.AuthoringService
	verifier  *auth.JWTVerifier
	logger    *zap.Logger
}

// NewHandler создает обработчик со всеми зависимостями.
func NewHandler(
	catalog service.CatalogService,
	play service.PlayService,
	importer service.ImportService,
	authoring service.AuthoringService,
	verifier *auth.JWTVerifier,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		play:      play,
		importer:  importer,
		authoring: authoring,
		verifier:  verifier,
		logger:    logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует маршруты сервиса.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/gamebooks", h.listGamebooks)
	}

	play := api.Group("/gamebooks/:slug")
	play.Use(middleware.AuthMiddleware(h.verifier, h.logger))
	{
		play.GET("/play", h.playGamebook)
		play.POST("/choose", h.chooseOption)
		play.POST("/restart", h.restartPlaythrough)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(h.verifier, h.logger, middleware.RoleAuthor))
	{
		admin.POST("/gamebooks/import", h.importGamebook)
		admin.PUT("/gamebooks/:slug/attributes", h.replaceAttributes)
	}
}
