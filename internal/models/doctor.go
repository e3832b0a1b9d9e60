package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor defines the structure for doctor users, the only authenticated principal.
type Doctor struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Username  string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	return assignID(&d.ID)
}

// assignID fills an empty primary key with a time-ordered UUID so that
// (created_at, id) sorts records in insertion order.
func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	u, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = u.String()
	return nil
}
