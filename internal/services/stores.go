package services

import (
	"context"

	"hospital-api/internal/models"
)

// DoctorStore is the credential store used by AuthService.
type DoctorStore interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindByUsername(ctx context.Context, username string) (*models.Doctor, error)
}

// PatientStore is the patient half of the record store.
type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByPhone(ctx context.Context, phone string) (*models.Patient, error)
	ReportIDs(ctx context.Context, patientID string) ([]string, error)
}

// ReportStore is the report half of the record store.
type ReportStore interface {
	CreateLinked(ctx context.Context, report *models.Report) error
	Link(ctx context.Context, patientID, reportID string) error
	ListByPatient(ctx context.Context, patientID string) ([]models.Report, error)
	ListByStatus(ctx context.Context, statusCode int) ([]models.Report, error)
	ListUnlinked(ctx context.Context) ([]models.Report, error)
}

// PasswordHasher is the one-way hash capability used for doctor passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens that carry a doctor id.
type TokenIssuer interface {
	Sign(doctorID string) (string, error)
	Verify(token string) (string, error)
}
