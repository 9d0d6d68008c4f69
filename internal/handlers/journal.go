package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/dto"
	apierrors "github.com/habithive/habithive-api/internal/errors"
	"github.com/habithive/habithive-api/internal/middleware"
	"github.com/habithive/habithive-api/internal/services"
	"github.com/habithive/habithive-api/internal/utils"
)

// JournalHandler coordinates journal HTTP handlers.
type JournalHandler struct {
	journalService *services.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *services.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// CreateEntry creates a new journal entry
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateEntryRequest struct {
		Text    string  `json:"text" binding:"required"`
		Mood    string  `json:"mood"`
		HabitID *uint64 `json:"habit_id"`
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.journalService.CreateEntry(services.CreateEntryInput{
		OwnerID: userID,
		Text:    req.Text,
		Mood:    req.Mood,
		HabitID: req.HabitID,
	})
	if err != nil {
		respondJournalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryDTO(*entry))
}

// ListEntries returns the current user's journal entries, newest first
func (h *JournalHandler) ListEntries(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	entries, total, err := h.journalService.ListEntries(userID, params.Page, params.Limit)
	if err != nil {
		respondJournalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalListResponse(entries, params, total))
}

func respondJournalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJournalTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrHabitForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.ServiceUnavailable(c, "")
	}
}
