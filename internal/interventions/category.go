package interventions

import "slices"

// Category groups interventions by kind.
type Category string

// Intervention categories.
const (
	CategoryNutrition  Category = "nutrition"
	CategoryExercise   Category = "exercise"
	CategorySleep      Category = "sleep"
	CategorySupplement Category = "supplement"
	CategoryMedical    Category = "medical"
)

var categories = []Category{
	CategoryNutrition,
	CategoryExercise,
	CategorySleep,
	CategorySupplement,
	CategoryMedical,
}

// Categories returns the valid intervention categories.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory validates s as a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(categories, c) {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ParseLevel validates n as an evidence level.
func ParseLevel(n int) (int, error) {
	if n < 1 || n > 4 {
		return 0, ErrInvalidLevel
	}
	return n, nil
}
