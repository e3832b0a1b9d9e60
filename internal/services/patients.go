package services

import (
	"context"
	"errors"
	"fmt"

	"hospital-api/internal/apperrors"
	"hospital-api/internal/models"
	"hospital-api/internal/repository"
)

const msgPatientNotRegistered = "Patient not registered"

type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeExists
)

// PatientView is what callers see of a registered patient. CreatedBy is the
// name of the doctor who first registered the patient.
type PatientView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedBy string `json:"createdBy"`
}

// PatientRegistry registers patients by phone number and resolves them.
type PatientRegistry struct {
	patients PatientStore
}

func NewPatientRegistry(patients PatientStore) *PatientRegistry {
	return &PatientRegistry{patients: patients}
}

// RegisterOrFetch returns the patient registered under phone, creating it on
// first sight. An existing record is returned untouched even when name
// differs from what is stored.
func (r *PatientRegistry) RegisterOrFetch(ctx context.Context, phone, name string, actor *models.Doctor) (PatientView, Outcome, error) {
	existing, err := r.patients.FindByPhone(ctx, phone)
	if err == nil {
		return viewOf(existing), OutcomeExists, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return PatientView{}, 0, apperrors.Internal(fmt.Errorf("find patient: %w", err))
	}

	patient := &models.Patient{
		Phone:       phone,
		Name:        name,
		CreatedByID: actor.ID,
	}
	if err := r.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent registration of the same phone.
			existing, ferr := r.patients.FindByPhone(ctx, phone)
			if ferr != nil {
				return PatientView{}, 0, apperrors.Internal(fmt.Errorf("reload patient: %w", ferr))
			}
			return viewOf(existing), OutcomeExists, nil
		}
		return PatientView{}, 0, apperrors.Internal(fmt.Errorf("create patient: %w", err))
	}
	patient.CreatedBy = actor
	return viewOf(patient), OutcomeCreated, nil
}

// ResolveByPhone looks a patient up by phone number.
func (r *PatientRegistry) ResolveByPhone(ctx context.Context, phone string) (*models.Patient, error) {
	patient, err := r.patients.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(msgPatientNotRegistered)
		}
		return nil, apperrors.Internal(fmt.Errorf("find patient: %w", err))
	}
	return patient, nil
}

// ReportIDs returns the ids on the patient's report list.
func (r *PatientRegistry) ReportIDs(ctx context.Context, patient *models.Patient) ([]string, error) {
	ids, err := r.patients.ReportIDs(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list patient reports: %w", err))
	}
	return ids, nil
}

func viewOf(p *models.Patient) PatientView {
	v := PatientView{ID: p.ID, Name: p.Name, Phone: p.Phone}
	if p.CreatedBy != nil {
		v.CreatedBy = p.CreatedBy.Name
	}
	return v
}
