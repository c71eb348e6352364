// services/meal_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"

	"gorm.io/gorm"
)

// MealService is the meal repository. Every query except Create is scoped by
// the owning session id.
type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// Create inserts the meal; the id is assigned by the model hook.
func (s *MealService) Create(ctx context.Context, meal *models.Meal) error {
	if meal.SessionID == "" {
		return errors.New("meal without session id")
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}
	return nil
}

// UpdateByID writes the supplied fields of the meal matching both id and
// session. A mismatch updates nothing and is not an error; the bool reports
// whether a row matched.
func (s *MealService) UpdateByID(ctx context.Context, sessionID, id string, upd models.MealUpdate) (bool, error) {
	cols := upd.Columns()
	if len(cols) == 0 {
		return false, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ? AND session_id = ?", id, sessionID).
		Updates(cols)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update meal %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByID removes the meal matching both id and session, if any.
func (s *MealService) DeleteByID(ctx context.Context, sessionID, id string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&models.Meal{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete meal %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListBySession returns the session's meals in storage order.
func (s *MealService) ListBySession(ctx context.Context, sessionID string) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// GetByID returns nil, nil when the session owns no meal with that id.
func (s *MealService) GetByID(ctx context.Context, sessionID, id string) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal %s: %w", id, err)
	}
	return &meal, nil
}
