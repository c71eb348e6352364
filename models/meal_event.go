package models

const (
	MealCreated = "meal.created"
	MealUpdated = "meal.updated"
	MealDeleted = "meal.deleted"
)

// MealEvent is pushed to every websocket open for the owning session.
type MealEvent struct {
	Kind   string `json:"kind"`
	MealID string `json:"meal_id"`
	Meal   *Meal  `json:"meal,omitempty"`
}
