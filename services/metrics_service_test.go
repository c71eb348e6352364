package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"
)

const (
	on  = true
	off = false
)

func mealsWith(flags ...bool) []models.Meal {
	out := make([]models.Meal, len(flags))
	for i, f := range flags {
		out[i] = models.Meal{Name: "meal", IsOnDiet: f}
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		meals    []models.Meal
		total    int64
		diet     int64
		nonDiet  int64
		sequence *int
	}{
		{name: "empty", meals: nil},
		{name: "closed by off-diet then lone trailing diet", meals: mealsWith(on, on, off, on), total: 4, diet: 3, nonDiet: 1, sequence: intPtr(2)},
		{name: "single diet meal records nothing", meals: mealsWith(on), total: 1, diet: 1},
		{name: "only off-diet", meals: mealsWith(off, off), total: 2, nonDiet: 2},
		{name: "trailing diet meal is not counted", meals: mealsWith(on, on), total: 2, diet: 2, sequence: intPtr(1)},
		{name: "leading off-diet then trailing run", meals: mealsWith(off, on, on, on), total: 4, diet: 3, nonDiet: 1, sequence: intPtr(2)},
		{name: "run closed by final off-diet", meals: mealsWith(on, on, off), total: 3, diet: 2, nonDiet: 1, sequence: intPtr(2)},
		{name: "reports last streak not longest", meals: mealsWith(on, on, on, off, on, on), total: 6, diet: 5, nonDiet: 1, sequence: intPtr(1)},
		{name: "later longer streak wins", meals: mealsWith(on, off, on, on, off), total: 5, diet: 3, nonDiet: 2, sequence: intPtr(2)},
		{name: "streak before several off-diet meals", meals: mealsWith(on, on, on, off, off), total: 5, diet: 3, nonDiet: 2, sequence: intPtr(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.meals)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.diet, got.TotalDietMeals)
			assert.Equal(t, tt.nonDiet, got.TotalNonDietMeals)
			assert.Equal(t, tt.sequence, got.MaxSequenceOnDiet)
		})
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	meals := mealsWith(on, off, on)
	meals[0].ID, meals[1].ID, meals[2].ID = "a", "b", "c"

	Summarize(meals)

	assert.Equal(t, []string{"a", "b", "c"}, []string{meals[0].ID, meals[1].ID, meals[2].ID})
}

func TestMetricsService_SessionMetrics(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	svc := NewMetricsService(meals)
	ctx := context.Background()

	for _, f := range []bool{on, on, off, on} {
		require.NoError(t, meals.Create(ctx, &models.Meal{
			Name: "m", Description: "d", DateTime: "2024-01-01T12:00:00.000Z", IsOnDiet: f, SessionID: "s1",
		}))
	}
	require.NoError(t, meals.Create(ctx, &models.Meal{
		Name: "other", Description: "d", DateTime: "2024-01-01T12:00:00.000Z", IsOnDiet: off, SessionID: "s2",
	}))

	got, err := svc.SessionMetrics(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Total)
	assert.Equal(t, int64(3), got.TotalDietMeals)
	assert.Equal(t, int64(1), got.TotalNonDietMeals)
	require.NotNil(t, got.MaxSequenceOnDiet)
	assert.Equal(t, 2, *got.MaxSequenceOnDiet)

	empty, err := svc.SessionMetrics(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Nil(t, empty.MaxSequenceOnDiet)
}
