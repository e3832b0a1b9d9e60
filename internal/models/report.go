package models

import (
	"time"

	"gorm.io/gorm"
)

// StatusLabels maps a report status code to its label. The index is the code.
var StatusLabels = [...]string{
	"Negative",
	"Travelled - Quarantine",
	"Symptoms - Quarantine",
	"Positive - Admit",
}

// ValidStatusCode reports whether code is one of the four known status codes.
func ValidStatusCode(code int) bool {
	return code == 0 || code == 1 || code == 2 || code == 3
}

// StatusLabel returns the label for code. Callers must check ValidStatusCode first.
func StatusLabel(code int) string {
	return StatusLabels[code]
}

// Report is an immutable status observation filed by a doctor for a patient.
type Report struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	StatusCode  int       `json:"statusCode" gorm:"index;not null"`
	Status      string    `json:"status" gorm:"not null"`
	CreatedByID string    `json:"-" gorm:"type:varchar(36);index;not null"`
	CreatedBy   *Doctor   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	PatientID   string    `json:"-" gorm:"type:varchar(36);index;not null"`
	Patient     *Patient  `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

func (r *Report) BeforeCreate(*gorm.DB) error {
	return assignID(&r.ID)
}
