package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/config"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"
)

// newTestDB opens a migrated sqlite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "meals.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newMeal(session, name string, onDiet bool) *models.Meal {
	return &models.Meal{
		Name:        name,
		Description: name + " description",
		DateTime:    "2024-03-10T12:30:00.000Z",
		IsOnDiet:    onDiet,
		SessionID:   session,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestMealService_CreateAssignsID(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	a := newMeal("s1", "breakfast", true)
	b := newMeal("s1", "lunch", false)
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestMealService_CreateRequiresSession(t *testing.T) {
	svc := NewMealService(newTestDB(t))

	err := svc.Create(context.Background(), newMeal("", "orphan", true))
	assert.Error(t, err)
}

func TestMealService_ListBySession(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, svc.Create(ctx, newMeal("s1", name, true)))
	}
	require.NoError(t, svc.Create(ctx, newMeal("s2", "foreign", false)))

	meals, err := svc.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, meals, 3)

	names := []string{meals[0].Name, meals[1].Name, meals[2].Name}
	assert.Equal(t, []string{"first", "second", "third"}, names)
	for _, m := range meals {
		assert.Equal(t, "s1", m.SessionID)
	}

	none, err := svc.ListBySession(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMealService_GetByID(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	m := newMeal("s1", "dinner", false)
	require.NoError(t, svc.Create(ctx, m))

	got, err := svc.GetByID(ctx, "s1", m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "dinner", got.Name)
	assert.Equal(t, "2024-03-10T12:30:00.000Z", got.DateTime)
	assert.False(t, got.IsOnDiet)

	other, err := svc.GetByID(ctx, "s2", m.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	missing, err := svc.GetByID(ctx, "s1", "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMealService_UpdateOnlySuppliedFields(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	m := newMeal("s1", "snack", true)
	require.NoError(t, svc.Create(ctx, m))

	found, err := svc.UpdateByID(ctx, "s1", m.ID, models.MealUpdate{Name: strPtr("apple")})
	require.NoError(t, err)
	assert.True(t, found)

	got, err := svc.GetByID(ctx, "s1", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "apple", got.Name)
	assert.Equal(t, m.Description, got.Description)
	assert.Equal(t, m.DateTime, got.DateTime)
	assert.True(t, got.IsOnDiet)
}

func TestMealService_UpdateCanClearDietFlag(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	m := newMeal("s1", "snack", true)
	require.NoError(t, svc.Create(ctx, m))

	_, err := svc.UpdateByID(ctx, "s1", m.ID, models.MealUpdate{IsOnDiet: boolPtr(false)})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "s1", m.ID)
	require.NoError(t, err)
	assert.False(t, got.IsOnDiet)
}

func TestMealService_UpdateForeignOrMissingIsNoop(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	m := newMeal("owner", "snack", true)
	require.NoError(t, svc.Create(ctx, m))

	found, err := svc.UpdateByID(ctx, "intruder", m.ID, models.MealUpdate{Name: strPtr("hijacked")})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = svc.UpdateByID(ctx, "owner", "missing", models.MealUpdate{Name: strPtr("ghost")})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = svc.UpdateByID(ctx, "owner", m.ID, models.MealUpdate{})
	require.NoError(t, err)
	assert.False(t, found)

	got, err := svc.GetByID(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "snack", got.Name)
}

func TestMealService_DeleteByID(t *testing.T) {
	svc := NewMealService(newTestDB(t))
	ctx := context.Background()

	m := newMeal("owner", "snack", true)
	require.NoError(t, svc.Create(ctx, m))

	found, err := svc.DeleteByID(ctx, "intruder", m.ID)
	require.NoError(t, err)
	assert.False(t, found)

	still, err := svc.GetByID(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	found, err = svc.DeleteByID(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.True(t, found)

	gone, err := svc.GetByID(ctx, "owner", m.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMealService_StorageErrorsPropagate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.ListBySession(context.Background(), "s1")
	assert.Error(t, err)
}
