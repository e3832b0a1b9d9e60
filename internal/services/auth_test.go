package services

import (
	"context"
	"testing"

	"hospital-api/internal/apperrors"
	"hospital-api/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	summary, err := f.auth.Register(ctx, RegisterDoctorInput{
		Email: "johndoe@abc.com", Username: "john_doe", Name: "John Doe", Password: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, DoctorSummary{Email: "johndoe@abc.com", Name: "John Doe", Username: "john_doe"}, summary)

	stored, err := f.doctors.FindByUsername(ctx, "john_doe")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.NotEqual(t, "1234", stored.Password)
	assert.True(t, utils.CheckPassword("1234", stored.Password))
}

func TestRegisterDoctorConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.doctor(t, "john_doe", "John Doe")

	tests := []struct {
		name    string
		in      RegisterDoctorInput
		message string
	}{
		{
			name:    "same email and username reports email first",
			in:      RegisterDoctorInput{Email: "john_doe@abc.com", Username: "john_doe", Name: "Other", Password: "x"},
			message: "Email already exists",
		},
		{
			name:    "same email",
			in:      RegisterDoctorInput{Email: "john_doe@abc.com", Username: "someone_else", Name: "Other", Password: "x"},
			message: "Email already exists",
		},
		{
			name:    "same username",
			in:      RegisterDoctorInput{Email: "new@abc.com", Username: "john_doe", Name: "Other", Password: "x"},
			message: "Username already exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
			assert.Equal(t, tt.message, apperrors.MessageOf(err))
		})
	}

	after, err := f.doctors.FindByUsername(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, first.ID, after.ID)
	assert.Equal(t, first.Name, after.Name)
	assert.Equal(t, first.Password, after.Password)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.doctor(t, "john_doe", "John Doe")

	_, unknownErr := f.auth.Login(ctx, "john_doe_new", "1234")
	_, wrongPwErr := f.auth.Login(ctx, "john_doe", "123456")

	require.Error(t, unknownErr)
	require.Error(t, wrongPwErr)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(unknownErr))
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(wrongPwErr))
	assert.Equal(t, "Incorrect username or password", apperrors.MessageOf(unknownErr))
	assert.Equal(t, apperrors.MessageOf(unknownErr), apperrors.MessageOf(wrongPwErr))
}

func TestLoginAndVerifyToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.doctor(t, "john_doe", "John Doe")

	token, err := f.auth.Login(ctx, "john_doe", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := f.auth.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, d.ID, resolved.ID)
	assert.Equal(t, "John Doe", resolved.Name)
}

func TestVerifyTokenFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.doctor(t, "john_doe", "John Doe")

	forged, err := utils.NewTokenSigner("wrong-secret", 0).Sign("anything")
	require.NoError(t, err)
	unknownDoctor, err := utils.NewTokenSigner("test-secret", 0).Sign("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":          "",
		"malformed":      "not.a.token",
		"bad signature":  forged,
		"unknown doctor": unknownDoctor,
	} {
		t.Run(name, func(t *testing.T) {
			doctor, err := f.auth.VerifyToken(ctx, token)
			assert.Nil(t, doctor)
			assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
		})
	}
}
