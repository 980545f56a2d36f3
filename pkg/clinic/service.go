package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var errNameRequired = errors.New("name is required")

// Service ties the validator and repository together. For observations the
// checks run cheapest-first: role tag, then payload shape, then patient
// existence, then the insert. An observation is never written for a patient
// that does not exist.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ValidationError{reason: errNameRequired}
	}

	patient := &Patient{
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		Contact:       req.Contact,
		Address:       req.Address,
		Occupation:    req.Occupation,
		MaritalStatus: req.MaritalStatus,
	}
	if err := s.repo.CreatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("persisting patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uint) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) CreateObservation(ctx context.Context, req CreateObservationRequest) (*Observation, error) {
	data, err := NormalizeObservationData(req.Role, req.Data)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetPatient(ctx, req.PatientID); err != nil {
		return nil, err
	}

	obs := &Observation{
		PatientID: req.PatientID,
		Role:      req.Role,
		Data:      data,
	}
	if err := s.repo.CreateObservation(ctx, obs); err != nil {
		return nil, fmt.Errorf("persisting observation: %w", err)
	}
	return obs, nil
}

func (s *Service) GetObservation(ctx context.Context, id uint) (*Observation, error) {
	return s.repo.GetObservation(ctx, id)
}

func (s *Service) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}
