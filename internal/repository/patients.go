package repository

import (
	"context"

	"hospital-api/internal/models"

	"gorm.io/gorm"
)

// PatientRepository stores patients keyed by phone number.
type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return translate(r.db.WithContext(ctx).Omit("CreatedBy", "Reports").Create(patient).Error)
}

// FindByPhone returns the patient with its registering doctor loaded.
func (r *PatientRepository) FindByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("phone = ?", phone).
		First(&patient).Error
	if err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

// ReportIDs returns the ids on the patient's report list in append order.
func (r *PatientRepository) ReportIDs(ctx context.Context, patientID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.PatientReport{}).
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Order("report_id ASC").
		Pluck("report_id", &ids).Error
	return ids, translate(err)
}
