package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// respondError транслирует ошибку сервисного слоя в HTTP-ответ.
// Ошибки валидации возвращаются списком с указанием полей.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
		return
	}

	switch {
	case errors.Is(err, models.ErrGamebookNotFound),
		errors.Is(err, models.ErrNodeNotFound),
		errors.Is(err, models.ErrPlaythroughNotFound),
		errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrChoiceNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrCurrentNodeMissing),
		errors.Is(err, models.ErrDanglingChoiceTarget):
		// Граф и сохранение разошлись. Клиент может восстановиться рестартом.
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrBadRequest):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Unhandled service error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}
