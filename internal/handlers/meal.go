package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habithive/habithive-api/internal/mealplans"
)

// MealHandler serves the static meal plan catalog.
type MealHandler struct{}

// NewMealHandler creates a new MealHandler
func NewMealHandler() *MealHandler {
	return &MealHandler{}
}

// ListMealPlans returns the meal plan catalog, optionally filtered by category
func (h *MealHandler) ListMealPlans(c *gin.Context) {
	category := c.Query("category")

	var plans []mealplans.MealPlan
	if category != "" {
		plans = mealplans.ByCategory(category)
	} else {
		plans = mealplans.Catalog()
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plans": plans,
	})
}
