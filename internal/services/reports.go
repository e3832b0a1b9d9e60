package services

import (
	"context"
	"fmt"
	"time"

	"hospital-api/internal/apperrors"
	"hospital-api/internal/models"
)

const msgInvalidStatusCode = "Invalid status code"

type DoctorName struct {
	Name string `json:"name"`
}

type PatientSummary struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ReportEntry is a report as listed under its patient.
type ReportEntry struct {
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	CreatedBy DoctorName `json:"createdBy"`
}

type PatientReports struct {
	Patient PatientSummary `json:"patient"`
	Reports []ReportEntry  `json:"reports"`
}

// StatusReportEntry is a report as listed by status, with its patient embedded.
type StatusReportEntry struct {
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	CreatedBy DoctorName     `json:"createdBy"`
	Patient   PatientSummary `json:"patient"`
}

type StatusReports struct {
	ReportStatus string              `json:"report_status"`
	Reports      []StatusReportEntry `json:"data"`
}

// ReportLedger files status reports and answers report queries.
type ReportLedger struct {
	reports  ReportStore
	registry *PatientRegistry
}

func NewReportLedger(reports ReportStore, registry *PatientRegistry) *ReportLedger {
	return &ReportLedger{reports: reports, registry: registry}
}

// CreateReport files a report with statusCode for the patient registered under
// phone and appends it to the patient's report list.
func (l *ReportLedger) CreateReport(ctx context.Context, phone string, statusCode int, actor *models.Doctor) error {
	patient, err := l.registry.ResolveByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if !models.ValidStatusCode(statusCode) {
		return apperrors.Validation(msgInvalidStatusCode)
	}

	report := &models.Report{
		StatusCode:  statusCode,
		Status:      models.StatusLabel(statusCode),
		CreatedByID: actor.ID,
		PatientID:   patient.ID,
	}
	if err := l.reports.CreateLinked(ctx, report); err != nil {
		return apperrors.Internal(fmt.Errorf("create report: %w", err))
	}
	return nil
}

// ListForPatient returns the patient's reports ordered by creation time.
func (l *ReportLedger) ListForPatient(ctx context.Context, phone string) (PatientReports, error) {
	patient, err := l.registry.ResolveByPhone(ctx, phone)
	if err != nil {
		return PatientReports{}, err
	}

	reports, err := l.reports.ListByPatient(ctx, patient.ID)
	if err != nil {
		return PatientReports{}, apperrors.Internal(fmt.Errorf("list reports: %w", err))
	}

	out := PatientReports{
		Patient: PatientSummary{Name: patient.Name, Phone: patient.Phone},
		Reports: make([]ReportEntry, 0, len(reports)),
	}
	for _, r := range reports {
		out.Reports = append(out.Reports, ReportEntry{
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			CreatedBy: doctorName(r.CreatedBy),
		})
	}
	return out, nil
}

// FilterByStatus returns every report with statusCode across all patients.
// Results come back in store order.
func (l *ReportLedger) FilterByStatus(ctx context.Context, statusCode int) (StatusReports, error) {
	if !models.ValidStatusCode(statusCode) {
		return StatusReports{}, apperrors.Validation(msgInvalidStatusCode)
	}

	reports, err := l.reports.ListByStatus(ctx, statusCode)
	if err != nil {
		return StatusReports{}, apperrors.Internal(fmt.Errorf("list reports by status: %w", err))
	}

	out := StatusReports{
		ReportStatus: models.StatusLabel(statusCode),
		Reports:      make([]StatusReportEntry, 0, len(reports)),
	}
	for _, r := range reports {
		entry := StatusReportEntry{
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			CreatedBy: doctorName(r.CreatedBy),
		}
		if r.Patient != nil {
			entry.Patient = PatientSummary{Name: r.Patient.Name, Phone: r.Patient.Phone}
		}
		out.Reports = append(out.Reports, entry)
	}
	return out, nil
}

// UnlinkedReport identifies a report missing from its patient's report list.
type UnlinkedReport struct {
	ReportID     string    `json:"reportId"`
	PatientID    string    `json:"patientId"`
	PatientPhone string    `json:"patientPhone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UnlinkedReports finds reports whose patient back-reference is not matched
// by an entry on that patient's report list.
func (l *ReportLedger) UnlinkedReports(ctx context.Context) ([]UnlinkedReport, error) {
	reports, err := l.reports.ListUnlinked(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list unlinked reports: %w", err))
	}
	out := make([]UnlinkedReport, 0, len(reports))
	for _, r := range reports {
		u := UnlinkedReport{ReportID: r.ID, PatientID: r.PatientID, CreatedAt: r.CreatedAt}
		if r.Patient != nil {
			u.PatientPhone = r.Patient.Phone
		}
		out = append(out, u)
	}
	return out, nil
}

// RepairLinks appends every unlinked report to its patient's report list and
// returns the reports it fixed.
func (l *ReportLedger) RepairLinks(ctx context.Context) ([]UnlinkedReport, error) {
	unlinked, err := l.UnlinkedReports(ctx)
	if err != nil {
		return nil, err
	}
	for i, u := range unlinked {
		if err := l.reports.Link(ctx, u.PatientID, u.ReportID); err != nil {
			return unlinked[:i], apperrors.Internal(fmt.Errorf("link report %s: %w", u.ReportID, err))
		}
	}
	return unlinked, nil
}

func doctorName(d *models.Doctor) DoctorName {
	if d == nil {
		return DoctorName{}
	}
	return DoctorName{Name: d.Name}
}
