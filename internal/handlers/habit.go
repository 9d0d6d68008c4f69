package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/dto"
	apierrors "github.com/habithive/habithive-api/internal/errors"
	"github.com/habithive/habithive-api/internal/middleware"
	"github.com/habithive/habithive-api/internal/models"
	"github.com/habithive/habithive-api/internal/services"
	"github.com/habithive/habithive-api/internal/streak"
	"github.com/habithive/habithive-api/internal/utils"
)

// HabitHandler coordinates habit HTTP handlers.
type HabitHandler struct {
	habitService *services.HabitService
}

// NewHabitHandler creates a new HabitHandler
func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// ListHabits returns the current user's active habits
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	category := c.Query("category")

	habits, total, err := h.habitService.ListHabits(userID, category, params.Page, params.Limit)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitListResponse(habits, params, total))
}

// CreateHabit creates a new habit
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateHabitRequest struct {
		Name                string               `json:"name" binding:"required"`
		Description         string               `json:"description"`
		Category            string               `json:"category"`
		Frequency           models.FrequencyKind `json:"frequency"`
		CustomValue         *int                 `json:"custom_value"`
		CustomUnit          *models.CustomUnit   `json:"custom_unit"`
		Privacy             models.Privacy       `json:"privacy"`
		ReminderEnabled     bool                 `json:"reminder_enabled"`
		ReminderTime        string               `json:"reminder_time"`
		ReminderDays        string               `json:"reminder_days"`
		CompletionThreshold int                  `json:"completion_threshold"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.CreateHabit(services.CreateHabitInput{
		OwnerID:             userID,
		Name:                req.Name,
		Description:         req.Description,
		Category:            req.Category,
		Frequency:           req.Frequency,
		CustomValue:         req.CustomValue,
		CustomUnit:          req.CustomUnit,
		Privacy:             req.Privacy,
		ReminderEnabled:     req.ReminderEnabled,
		ReminderTime:        req.ReminderTime,
		ReminderDays:        req.ReminderDays,
		CompletionThreshold: req.CompletionThreshold,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHabitDTO(*habit))
}

// GetHabit returns a habit loaded by RequireHabitAccess
func (h *HabitHandler) GetHabit(c *gin.Context) {
	habit, ok := middleware.GetHabit(c)
	if !ok {
		apierrors.InternalError(c, "Habit not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(habit))
}

// UpdateHabit applies a partial update to a habit
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, habitID, ok := habitRequestIDs(c)
	if !ok {
		return
	}

	type UpdateHabitRequest struct {
		Name                *string               `json:"name"`
		Description         *string               `json:"description"`
		Category            *string               `json:"category"`
		Frequency           *models.FrequencyKind `json:"frequency"`
		CustomValue         *int                  `json:"custom_value"`
		CustomUnit          *models.CustomUnit    `json:"custom_unit"`
		Privacy             *models.Privacy       `json:"privacy"`
		ReminderEnabled     *bool                 `json:"reminder_enabled"`
		ReminderTime        *string               `json:"reminder_time"`
		ReminderDays        *string               `json:"reminder_days"`
		CompletionThreshold *int                  `json:"completion_threshold"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.UpdateHabit(habitID, userID, services.UpdateHabitInput{
		Name:                req.Name,
		Description:         req.Description,
		Category:            req.Category,
		Frequency:           req.Frequency,
		CustomValue:         req.CustomValue,
		CustomUnit:          req.CustomUnit,
		Privacy:             req.Privacy,
		ReminderEnabled:     req.ReminderEnabled,
		ReminderTime:        req.ReminderTime,
		ReminderDays:        req.ReminderDays,
		CompletionThreshold: req.CompletionThreshold,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit))
}

// ArchiveHabit soft-deletes a habit
func (h *HabitHandler) ArchiveHabit(c *gin.Context) {
	userID, habitID, ok := habitRequestIDs(c)
	if !ok {
		return
	}

	if err := h.habitService.ArchiveHabit(habitID, userID); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit archived successfully",
	})
}

// PurgeHabit hard-deletes a habit and its completion history
func (h *HabitHandler) PurgeHabit(c *gin.Context) {
	userID, habitID, ok := habitRequestIDs(c)
	if !ok {
		return
	}

	if err := h.habitService.PurgeHabit(habitID, userID); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted permanently",
	})
}

// MarkComplete records a completion for the reference day
func (h *HabitHandler) MarkComplete(c *gin.Context) {
	userID, habitID, ok := habitRequestIDs(c)
	if !ok {
		return
	}

	today, ok := referenceDay(c)
	if !ok {
		return
	}

	result, err := h.habitService.MarkComplete(habitID, userID, today)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"new_streak": result.NewStreak,
		"status":     result.Status,
	})
}

// Reopen discards the habit's completion history and restarts it
func (h *HabitHandler) Reopen(c *gin.Context) {
	userID, habitID, ok := habitRequestIDs(c)
	if !ok {
		return
	}

	result, err := h.habitService.Reopen(habitID, userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"new_streak": result.NewStreak,
	})
}

// WeeklyProgress returns the weekly progress snapshot for a habit
func (h *HabitHandler) WeeklyProgress(c *gin.Context) {
	userID, habitID, ok := habitRequestIDs(c)
	if !ok {
		return
	}

	today, ok := referenceDay(c)
	if !ok {
		return
	}

	progress, err := h.habitService.WeeklyProgress(habitID, userID, today)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProgressDTO(progress))
}

// ResetAll reopens every habit the current user owns
func (h *HabitHandler) ResetAll(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	count, err := h.habitService.ResetAllForOwner(userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reset_count": count,
	})
}

// Dashboard returns progress snapshots for every active habit
func (h *HabitHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	today, ok := referenceDay(c)
	if !ok {
		return
	}

	habits, _, err := h.habitService.ListHabits(userID, "", 0, 0)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	items := make([]dto.DashboardItemDTO, 0, len(habits))
	for _, habit := range habits {
		progress, err := h.habitService.WeeklyProgress(habit.ID, userID, today)
		if err != nil {
			respondHabitError(c, err)
			return
		}
		items = append(items, dto.DashboardItemDTO{
			Habit:    dto.ToHabitListDTO(habit),
			Progress: toProgressDTO(progress),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": items,
	})
}

// habitRequestIDs pulls the authenticated user and the :id path parameter
func habitRequestIDs(c *gin.Context) (userID, habitID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return 0, 0, false
	}

	return userID, habitID, true
}

// referenceDay resolves the reference "today": an optional ?date=YYYY-MM-DD
// override, otherwise the current UTC day. Malformed dates are rejected
// before any persistence call.
func referenceDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return streak.Today(time.Now()), true
	}

	day, err := streak.ParseDate(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

func toProgressDTO(p *services.Progress) dto.ProgressDTO {
	return dto.ProgressDTO{
		WeeklyCount:    p.WeeklyCount,
		StreakCurrent:  p.CurrentStreak,
		StreakLongest:  p.LongestStreak,
		CompletedToday: p.CompletedToday,
		Status:         p.Status,
	}
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrHabitForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrHabitNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrHabitNameRequired),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrInvalidCustomValue),
		errors.Is(err, services.ErrInvalidPrivacy),
		errors.Is(err, services.ErrInvalidThreshold):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.ServiceUnavailable(c, "")
	}
}
