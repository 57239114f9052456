package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamebook-hub/internal/models"
)

// importGamebook принимает документ графа книги и атомарно записывает его.
// По умолчанию ?overwrite=true: существующий граф заменяется целиком.
// При overwrite=false узлы добавляются к уже существующим.
func (h *Handler) importGamebook(c *gin.Context) {
	var doc models.GamebookImport
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid import document: " + err.Error()})
		return
	}

	overwrite, err := strconv.ParseBool(c.DefaultQuery("overwrite", "true"))
	if err != nil {
		overwrite = true
	}
	gb, err := h.importer.Import(c.Request.Context(), &doc, overwrite)
	if err != nil {
		h.respondError(c, err)
		return
	}
	importsTotal.Inc()
	c.JSON(http.StatusOK, gb)
}

// replaceAttributes заменяет схему характеристик книги.
func (h *Handler) replaceAttributes(c *gin.Context) {
	var defs []models.AttributeDefinition
	if err := c.ShouldBindJSON(&defs); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid attribute list: " + err.Error()})
		return
	}

	normalized, err := h.authoring.ReplaceAttributeSchema(c.Request.Context(), c.Param("slug"), defs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, normalized)
}
