// Package mealplans holds the static curated meal plan catalog. Plans are
// read-only content shipped with the app, not user data.
package mealplans

import "strings"

type Meal struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

type MealPlan struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Meals       []Meal `json:"meals"`
}

var catalog = []MealPlan{
	{
		ID:          1,
		Name:        "Balanced Week",
		Category:    "general",
		Description: "A simple rotation of balanced meals for steady energy.",
		Meals: []Meal{
			{Name: "Oatmeal with berries", Calories: 350},
			{Name: "Grilled chicken salad", Calories: 520},
			{Name: "Salmon with rice and greens", Calories: 640},
		},
	},
	{
		ID:          2,
		Name:        "High Protein",
		Category:    "fitness",
		Description: "Protein-forward meals to pair with strength training habits.",
		Meals: []Meal{
			{Name: "Greek yogurt with granola", Calories: 380},
			{Name: "Turkey and quinoa bowl", Calories: 560},
			{Name: "Steak with sweet potato", Calories: 700},
		},
	},
	{
		ID:          3,
		Name:        "Plant Based",
		Category:    "vegetarian",
		Description: "Meat-free days without the planning overhead.",
		Meals: []Meal{
			{Name: "Tofu scramble", Calories: 320},
			{Name: "Lentil soup with bread", Calories: 480},
			{Name: "Chickpea curry with rice", Calories: 610},
		},
	},
	{
		ID:          4,
		Name:        "Light & Quick",
		Category:    "general",
		Description: "Low-effort meals for busy weeks.",
		Meals: []Meal{
			{Name: "Smoothie bowl", Calories: 300},
			{Name: "Caprese sandwich", Calories: 450},
			{Name: "Veggie stir fry", Calories: 520},
		},
	},
}

// Catalog returns every meal plan.
func Catalog() []MealPlan {
	out := make([]MealPlan, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory filters the catalog by category, case-insensitively. An empty
// category returns everything.
func ByCategory(category string) []MealPlan {
	if category == "" {
		return Catalog()
	}
	var out []MealPlan
	for _, p := range catalog {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}
