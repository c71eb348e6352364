package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One recorded eating event, owned by an anonymous session.
type Meal struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	DateTime    string    `gorm:"column:date_time;not null" json:"date_time"` // canonical ISO-8601, UTC
	IsOnDiet    bool      `gorm:"column:is_on_diet;not null" json:"is_on_diet"`
	CreatedAt   time.Time `json:"created_at"`
	SessionID   string    `gorm:"column:session_id;type:varchar(36);index;not null" json:"session_id"`
}

func (Meal) TableName() string {
	return "meals"
}

// BeforeCreate assigns the id; callers never choose it.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MealUpdate carries the fields a caller supplied; nil means "leave as is".
type MealUpdate struct {
	Name        *string
	Description *string
	DateTime    *string
	IsOnDiet    *bool
}

// Columns returns the supplied fields keyed by column name.
func (u MealUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.DateTime != nil {
		cols["date_time"] = *u.DateTime
	}
	if u.IsOnDiet != nil {
		cols["is_on_diet"] = *u.IsOnDiet
	}
	return cols
}
