package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/haneulsoft/timetable-backend/internal/response"
	"github.com/haneulsoft/timetable-backend/internal/service"
	"github.com/haneulsoft/timetable-backend/internal/validator"
)

type PlannerHandler struct {
	plannerService *service.PlannerService
}

func NewPlannerHandler(plannerService *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// ListSections godoc
// GET /api/v1/planners/:planner_id/sections?q=&hints=true
// Ranked catalog view for one planner. With hints enabled each surfaced
// section reports whether adding it would overlap the current selection.
func (h *PlannerHandler) ListSections(c *gin.Context) {
	hints := c.Query("hints") == "true"

	result, err := h.plannerService.SearchWithHints(
		c.Request.Context(), c.Param("planner_id"), c.Query("q"), hints)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"sections": result.Sections,
		"total":    result.Total,
		"shown":    result.Shown,
		"overflow": result.Overflow,
	})
}

// GetSelection godoc
// GET /api/v1/planners/:planner_id/selection
func (h *PlannerHandler) GetSelection(c *gin.Context) {
	selected, conflicts, err := h.plannerService.SelectedSections(
		c.Request.Context(), c.Param("planner_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	conflictIDs := make([]string, 0, len(conflicts))
	for _, section := range selected {
		if conflicts[section.ID] {
			conflictIDs = append(conflictIDs, section.ID)
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"sections":     selected,
		"conflict_ids": conflictIDs,
	})
}

// AddSelection godoc
// POST /api/v1/planners/:planner_id/selection
func (h *PlannerHandler) AddSelection(c *gin.Context) {
	var req model.AddSelectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.plannerService.Apply(c.Request.Context(), c.Param("planner_id"), service.Command{
		Type:      service.CommandAdd,
		SectionID: req.SectionID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownSection) {
			response.Fail(c, http.StatusNotFound, response.ErrUnknownSection)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "section added"})
}

// RemoveSelection godoc
// DELETE /api/v1/planners/:planner_id/selection/:section_id
// Removing an id that is not selected is a successful no-op.
func (h *PlannerHandler) RemoveSelection(c *gin.Context) {
	err := h.plannerService.Apply(c.Request.Context(), c.Param("planner_id"), service.Command{
		Type:      service.CommandRemove,
		SectionID: c.Param("section_id"),
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "section removed"})
}

// ResetSelection godoc
// DELETE /api/v1/planners/:planner_id/selection
// Idempotent: resetting an empty selection succeeds.
func (h *PlannerHandler) ResetSelection(c *gin.Context) {
	err := h.plannerService.Apply(c.Request.Context(), c.Param("planner_id"), service.Command{
		Type: service.CommandReset,
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "selection cleared"})
}

// GetSchedule godoc
// GET /api/v1/planners/:planner_id/schedule
func (h *PlannerHandler) GetSchedule(c *gin.Context) {
	view, err := h.plannerService.Schedule(c.Request.Context(), c.Param("planner_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedule": view})
}
