package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/constants"
	"github.com/habithive/habithive-api/internal/database"
	apierrors "github.com/habithive/habithive-api/internal/errors"
	"github.com/habithive/habithive-api/internal/models"
)

// RequireHabitAccess checks that the habit exists and belongs to the
// current user. A habit owned by someone else is a 403, not a 404: the
// presentation contract distinguishes the two.
func RequireHabitAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		habitIDStr := c.Param("id")
		habitID, err := strconv.ParseUint(habitIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid habit ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var habit models.Habit
		if err := database.GetDB().First(&habit, habitID).Error; err != nil {
			apierrors.NotFound(c, "Habit not found")
			c.Abort()
			return
		}

		if habit.OwnerID != userID {
			apierrors.Forbidden(c, "Habit does not belong to this user")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyHabit, habit)
		c.Next()
	}
}

// GetHabit retrieves the habit loaded by RequireHabitAccess
func GetHabit(c *gin.Context) (models.Habit, bool) {
	value, exists := c.Get(constants.ContextKeyHabit)
	if !exists {
		return models.Habit{}, false
	}
	habit, ok := value.(models.Habit)
	return habit, ok
}
