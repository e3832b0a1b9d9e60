package repository

import (
	"context"

	"hospital-api/internal/models"

	"gorm.io/gorm"
)

// DoctorRepository is the credential store backed by gorm.
type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Create(doctor).Error)
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findBy(ctx, "id = ?", id)
}

func (r *DoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.findBy(ctx, "email = ?", email)
}

func (r *DoctorRepository) FindByUsername(ctx context.Context, username string) (*models.Doctor, error) {
	return r.findBy(ctx, "username = ?", username)
}

func (r *DoctorRepository) findBy(ctx context.Context, query string, arg interface{}) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).Where(query, arg).First(&doctor).Error; err != nil {
		return nil, translate(err)
	}
	return &doctor, nil
}
