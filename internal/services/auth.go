package services

import (
	"context"
	"errors"
	"fmt"

	"hospital-api/internal/apperrors"
	"hospital-api/internal/models"
	"hospital-api/internal/repository"
	"hospital-api/internal/utils"
)

const (
	msgEmailExists    = "Email already exists"
	msgUsernameExists = "Username already exists"
	msgBadCredentials = "Incorrect username or password"
	msgUnauthorized   = "Unauthorized"
)

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	return utils.HashPassword(password, h.Cost)
}

func (h BcryptHasher) Verify(password, hash string) bool {
	return utils.CheckPassword(password, hash)
}

type RegisterDoctorInput struct {
	Email    string
	Username string
	Name     string
	Password string
}

// DoctorSummary is the public view of a doctor. The password hash never leaves the service.
type DoctorSummary struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// AuthService registers doctors, checks their credentials and resolves bearer tokens.
type AuthService struct {
	doctors DoctorStore
	hasher  PasswordHasher
	tokens  TokenIssuer
}

func NewAuthService(doctors DoctorStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{doctors: doctors, hasher: hasher, tokens: tokens}
}

// Register creates a doctor. Email uniqueness is checked before username.
func (s *AuthService) Register(ctx context.Context, in RegisterDoctorInput) (DoctorSummary, error) {
	if err := s.ensureFree(ctx, s.doctors.FindByEmail, in.Email, msgEmailExists); err != nil {
		return DoctorSummary{}, err
	}
	if err := s.ensureFree(ctx, s.doctors.FindByUsername, in.Username, msgUsernameExists); err != nil {
		return DoctorSummary{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return DoctorSummary{}, apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}

	doctor := &models.Doctor{
		Email:    in.Email,
		Username: in.Username,
		Name:     in.Name,
		Password: hash,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return DoctorSummary{}, s.raceConflict(ctx, in)
		}
		return DoctorSummary{}, apperrors.Internal(fmt.Errorf("create doctor: %w", err))
	}

	return DoctorSummary{Email: doctor.Email, Name: doctor.Name, Username: doctor.Username}, nil
}

func (s *AuthService) ensureFree(ctx context.Context, find func(context.Context, string) (*models.Doctor, error), value, msg string) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return apperrors.Conflict(msg)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return apperrors.Internal(err)
	}
}

// raceConflict names the field that a concurrent registration claimed first.
func (s *AuthService) raceConflict(ctx context.Context, in RegisterDoctorInput) error {
	if _, err := s.doctors.FindByEmail(ctx, in.Email); err == nil {
		return apperrors.Conflict(msgEmailExists)
	}
	return apperrors.Conflict(msgUsernameExists)
}

// Login checks the credentials and returns a signed bearer token. Unknown
// usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	doctor, err := s.doctors.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.Auth(msgBadCredentials)
		}
		return "", apperrors.Internal(fmt.Errorf("find doctor: %w", err))
	}
	if !s.hasher.Verify(password, doctor.Password) {
		return "", apperrors.Auth(msgBadCredentials)
	}

	token, err := s.tokens.Sign(doctor.ID)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return token, nil
}

// VerifyToken validates the token signature and resolves the doctor it names.
// Every failure, including store errors, is reported as unauthorized.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*models.Doctor, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindAuth, Message: msgUnauthorized, Err: err}
	}
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		return nil, &apperrors.Error{Kind: apperrors.KindAuth, Message: msgUnauthorized, Err: err}
	}
	return doctor, nil
}
