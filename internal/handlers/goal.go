package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/dto"
	apierrors "github.com/habithive/habithive-api/internal/errors"
	"github.com/habithive/habithive-api/internal/middleware"
	"github.com/habithive/habithive-api/internal/services"
)

// GoalHandler coordinates goal HTTP handlers.
type GoalHandler struct {
	goalService *services.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal creates a new goal
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateGoalRequest struct {
		Title        string  `json:"title" binding:"required"`
		Description  string  `json:"description"`
		TargetDate   string  `json:"target_date" binding:"required"`
		TargetValue  int     `json:"target_value"`
		CurrentValue int     `json:"current_value"`
		HabitID      *uint64 `json:"habit_id"`
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	goal, err := h.goalService.CreateGoal(services.CreateGoalInput{
		OwnerID:      userID,
		Title:        req.Title,
		Description:  req.Description,
		TargetDate:   req.TargetDate,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		HabitID:      req.HabitID,
	})
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalDTO(*goal))
}

// ListGoals returns the current user's goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	goals, err := h.goalService.ListGoals(userID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": dto.ToGoalDTOs(goals),
	})
}

// UpdateProgress updates a goal's current value
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID, goalID, ok := goalRequestIDs(c)
	if !ok {
		return
	}

	type UpdateProgressRequest struct {
		CurrentValue int `json:"current_value"`
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	goal, err := h.goalService.UpdateProgress(goalID, userID, req.CurrentValue)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*goal))
}

// DeleteGoal removes a goal
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, goalID, ok := goalRequestIDs(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(goalID, userID); err != nil {
		respondGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goal deleted successfully",
	})
}

func goalRequestIDs(c *gin.Context) (userID, goalID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	goalID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid goal ID")
		return 0, 0, false
	}

	return userID, goalID, true
}

func respondGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGoalNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrGoalForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrGoalTitleRequired),
		errors.Is(err, services.ErrGoalTargetRequired),
		errors.Is(err, services.ErrInvalidTargetDate):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.ServiceUnavailable(c, "")
	}
}
