package services

import (
	"context"
	"testing"

	"hospital-api/internal/database/dbtest"
	"hospital-api/internal/models"
	"hospital-api/internal/repository"
	"hospital-api/internal/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	auth     *AuthService
	registry *PatientRegistry
	ledger   *ReportLedger
	doctors  *repository.DoctorRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	doctors := repository.NewDoctorRepository(db)
	registry := NewPatientRegistry(repository.NewPatientRepository(db))
	return &fixture{
		db:       db,
		doctors:  doctors,
		auth:     NewAuthService(doctors, BcryptHasher{Cost: bcrypt.MinCost}, utils.NewTokenSigner("test-secret", 0)),
		registry: registry,
		ledger:   NewReportLedger(repository.NewReportRepository(db), registry),
	}
}

// doctor registers a doctor and returns the stored record.
func (f *fixture) doctor(t *testing.T, username, name string) *models.Doctor {
	t.Helper()
	ctx := context.Background()
	_, err := f.auth.Register(ctx, RegisterDoctorInput{
		Email:    username + "@abc.com",
		Username: username,
		Name:     name,
		Password: "1234",
	})
	require.NoError(t, err)

	d, err := f.doctors.FindByUsername(ctx, username)
	require.NoError(t, err)
	return d
}
