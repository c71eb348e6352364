package models

// Metrics summarizes a session's meal history.
//
// MaxSequenceOnDiet is the most recently closed streak in storage order, not
// necessarily the longest one. It is nil when no streak was closed.
type Metrics struct {
	Total             int64 `json:"total"`
	TotalDietMeals    int64 `json:"totalDietMeals"`
	TotalNonDietMeals int64 `json:"totalNonDietMeals"`
	MaxSequenceOnDiet *int  `json:"maxSequenceOnDiet,omitempty"`
}
