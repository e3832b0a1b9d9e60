package repository

import (
	"context"

	"hospital-api/internal/models"

	"gorm.io/gorm"
)

// ReportRepository stores reports and the patient report lists that link them.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CreateLinked inserts the report and appends it to its patient's report
// list inside one transaction.
func (r *ReportRepository) CreateLinked(ctx context.Context, report *models.Report) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("CreatedBy", "Patient").Create(report).Error; err != nil {
			return err
		}
		return link(tx, report.PatientID, report.ID)
	})
	return translate(err)
}

// Link appends reportID to the patient's report list.
func (r *ReportRepository) Link(ctx context.Context, patientID, reportID string) error {
	return translate(link(r.db.WithContext(ctx), patientID, reportID))
}

func link(tx *gorm.DB, patientID, reportID string) error {
	return tx.Create(&models.PatientReport{PatientID: patientID, ReportID: reportID}).Error
}

// ListByPatient returns the patient's reports oldest first, with the filing
// doctor loaded. Reports are found through their patient back-reference, so
// a report missing from the patient's list is still returned.
func (r *ReportRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&reports).Error
	return reports, translate(err)
}

// ListByStatus returns every report with the given status code in store order.
func (r *ReportRepository) ListByStatus(ctx context.Context, statusCode int) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Patient").
		Where("status_code = ?", statusCode).
		Find(&reports).Error
	return reports, translate(err)
}

// ListUnlinked returns reports that are absent from their patient's report list.
func (r *ReportRepository) ListUnlinked(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("NOT EXISTS (?)",
			r.db.Model(&models.PatientReport{}).
				Select("1").
				Where("patient_reports.report_id = reports.id AND patient_reports.patient_id = reports.patient_id"),
		).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, translate(err)
}
