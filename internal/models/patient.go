package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient defines the structure for patient records. Phone is the natural key.
type Patient struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Phone       string    `json:"phone" gorm:"type:varchar(32);uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	CreatedByID string    `json:"-" gorm:"type:varchar(36);index;not null"`
	CreatedBy   *Doctor   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	Reports     []Report  `json:"reports,omitempty" gorm:"many2many:patient_reports"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Patient) BeforeCreate(*gorm.DB) error {
	return assignID(&p.ID)
}

// PatientReport is one entry of a patient's append-only report list.
type PatientReport struct {
	PatientID string    `gorm:"type:varchar(36);primaryKey"`
	ReportID  string    `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
}
