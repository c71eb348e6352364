package services

import (
	"context"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"
)

type MetricsService struct {
	meals *MealService
}

func NewMetricsService(meals *MealService) *MetricsService {
	return &MetricsService{meals: meals}
}

func (s *MetricsService) SessionMetrics(ctx context.Context, sessionID string) (models.Metrics, error) {
	meals, err := s.meals.ListBySession(ctx, sessionID)
	if err != nil {
		return models.Metrics{}, err
	}
	return Summarize(meals), nil
}

// Summarize counts the meals and reports the diet streak.
//
// The scan closes a streak on every off-diet meal and on the last meal,
// whatever its flag; only diet meals that are not last increment the
// counter. Of the closed streaks the most recent one is reported, so
// MaxSequenceOnDiet is not a true maximum: [3, 1] reports 1.
func Summarize(meals []models.Meal) models.Metrics {
	var out models.Metrics
	var streaks []int
	counter := 0

	for i, m := range meals {
		out.Total++
		if m.IsOnDiet {
			out.TotalDietMeals++
		} else {
			out.TotalNonDietMeals++
		}

		if !m.IsOnDiet || i == len(meals)-1 {
			if counter > 0 {
				streaks = append(streaks, counter)
				counter = 0
			}
		} else {
			counter++
		}
	}

	reverse(streaks)
	if len(streaks) > 0 {
		v := streaks[0]
		out.MaxSequenceOnDiet = &v
	}
	return out
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
