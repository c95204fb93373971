package doctor

import (
	"context"
	"fmt"

	"github.com/finddoctor/scheduling-api/internal/model"
	"github.com/finddoctor/scheduling-api/internal/repository"
)

// Service is the doctor registry: the canonical record of schedulable
// professionals.
type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

// Register creates a doctor. The professional code is globally unique;
// registering a duplicate fails with a Conflict error and leaves the
// existing record untouched.
func (s *Service) Register(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		ProfessionalCode:  req.ProfessionalCode,
		Name:              req.Name,
		Specialty:         req.Specialty,
		LicenseNumber:     req.LicenseNumber,
		EstablishmentID:   req.EstablishmentID,
		EstablishmentName: req.EstablishmentName,
		Email:             req.Email,
		Phone:             req.Phone,
		IsActive:          true,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to register doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	filters.Pagination.Normalize()

	doctors, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// Remove deletes the doctor together with every availability window and
// appointment it owns. The cascade is irreversible.
func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
