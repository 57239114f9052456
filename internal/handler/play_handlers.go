package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamebook-hub/internal/middleware"
	"gamebook-hub/internal/models"
)

type chooseRequest struct {
	ChoiceID uuid.UUID `json:"choiceId" binding:"required"`
}

// listGamebooks отдает каталог опубликованных книг.
func (h *Handler) listGamebooks(c *gin.Context) {
	books, err := h.catalog.ListPublished(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// playGamebook возвращает текущее состояние прохождения, создавая его при
// первом обращении.
func (h *Handler) playGamebook(c *gin.Context) {
	playerID, ok := middleware.PlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "player not authenticated"})
		return
	}

	view, err := h.play.Play(c.Request.Context(), playerID, c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// chooseOption применяет выбор игрока к текущему узлу.
func (h *Handler) chooseOption(c *gin.Context) {
	playerID, ok := middleware.PlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "player not authenticated"})
		return
	}

	var req chooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: choiceId is required"})
		return
	}

	result, err := h.play.Choose(c.Request.Context(), playerID, c.Param("slug"), req.ChoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.Applied {
		choicesAppliedTotal.WithLabelValues("applied").Inc()
		if result.EndingReached {
			endingsReachedTotal.Inc()
		}
	} else {
		choicesAppliedTotal.WithLabelValues("rejected").Inc()
		h.logger.Debug("Choice rejected by requirements",
			zap.Stringer("playerID", playerID),
			zap.Stringer("choiceID", req.ChoiceID))
	}
	c.JSON(http.StatusOK, result)
}

// restartPlaythrough сбрасывает прохождение на стартовый узел.
func (h *Handler) restartPlaythrough(c *gin.Context) {
	playerID, ok := middleware.PlayerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "player not authenticated"})
		return
	}

	view, err := h.play.Restart(c.Request.Context(), playerID, c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	playthroughsRestartedTotal.Inc()
	c.JSON(http.StatusOK, view)
}
