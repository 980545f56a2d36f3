package clinic

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrObservationNotFound = errors.New("observation not found")
)

// Repository owns persistence for patients and observations. Each call is a
// single-statement transaction; the store provides the only atomicity
// guarantee the service relies on.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Patient{}, &Observation{})
}

func (r *Repository) CreatePatient(ctx context.Context, p *Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetPatient(ctx context.Context, id uint) (*Patient, error) {
	var p Patient
	result := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &p, nil
}

// CreateObservation persists an observation with a server-assigned creation
// timestamp. Callers must have resolved the patient reference already.
func (r *Repository) CreateObservation(ctx context.Context, o *Observation) error {
	o.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *Repository) GetObservation(ctx context.Context, id uint) (*Observation, error) {
	var o Observation
	result := r.db.WithContext(ctx).First(&o, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrObservationNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &o, nil
}

// Reset irreversibly deletes every observation, then every patient.
// Observations go first so the foreign key holds even without cascade
// support in the underlying store.
func (r *Repository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Observation{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&Patient{}).Error
	})
}

func (r *Repository) CountPatients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Patient{}).Count(&n).Error
	return n, err
}

func (r *Repository) CountObservations(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Observation{}).Count(&n).Error
	return n, err
}
