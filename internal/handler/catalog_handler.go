package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haneulsoft/timetable-backend/internal/response"
	"github.com/haneulsoft/timetable-backend/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetSummary godoc
// GET /api/v1/catalog/summary
func (h *CatalogHandler) GetSummary(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"year":      h.catalogService.Year(),
		"term_code": h.catalogService.TermCode(),
		"total":     h.catalogService.Size(),
	})
}

// ListSections godoc
// GET /api/v1/catalog/sections?q=
// An empty query returns the full catalog in canonical order; otherwise
// the ranked result. Both are capped at the display limit.
func (h *CatalogHandler) ListSections(c *gin.Context) {
	result := h.catalogService.Search(c.Query("q"))

	response.Success(c, http.StatusOK, gin.H{
		"sections": result.Sections,
		"total":    result.Total,
		"shown":    result.Shown,
		"overflow": result.Overflow,
	})
}

// GetSection godoc
// GET /api/v1/catalog/sections/:section_id
func (h *CatalogHandler) GetSection(c *gin.Context) {
	section, ok := h.catalogService.Get(c.Param("section_id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownSection)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"section": section})
}
