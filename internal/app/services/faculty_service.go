package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unicampus/internal/app/models"
	"github.com/yigit/unicampus/internal/app/repositories"
	"github.com/yigit/unicampus/internal/pkg/apperrors"
	"github.com/yigit/unicampus/internal/pkg/cache"
	"github.com/yigit/unicampus/internal/pkg/validation"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	AddFaculty(ctx context.Context, faculty *models.Faculty) (models.MutationResult, error)
	GetFaculties(ctx context.Context) ([]*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) (models.MutationResult, error)
	DeleteFaculty(ctx context.Context, id int64) (models.MutationResult, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo *repositories.FacultyRepository
	cache       cache.ListCache
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository, listCache cache.ListCache) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
		cache:       listCache,
	}
}

// validateFaculty normalizes and validates faculty data before database operations
func (s *facultyServiceImpl) validateFaculty(faculty *models.Faculty) error {
	if faculty == nil {
		return fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}

	faculty.Name = strings.TrimSpace(faculty.Name)
	faculty.Description = strings.TrimSpace(faculty.Description)

	if err := validation.Struct(faculty); err != nil {
		return invalidInput("faculty", err)
	}
	return nil
}

// AddFaculty creates a new faculty
func (s *facultyServiceImpl) AddFaculty(ctx context.Context, faculty *models.Faculty) (models.MutationResult, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return models.MutationResult{}, err
	}

	res, err := s.facultyRepo.AddFaculty(ctx, faculty)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error creating faculty: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}

// GetFaculties retrieves all faculties
func (s *facultyServiceImpl) GetFaculties(ctx context.Context) ([]*models.Faculty, error) {
	faculties, err := cachedList(ctx, s.cache, cache.KeyFaculties, s.facultyRepo.GetFaculties)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	if id <= 0 {
		return nil, invalidID("faculty")
	}

	faculty, err := s.facultyRepo.GetFacultyByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	return faculty, nil
}

// UpdateFaculty replaces the name and description of a faculty
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, faculty *models.Faculty) (models.MutationResult, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return models.MutationResult{}, err
	}
	if faculty.ID <= 0 {
		return models.MutationResult{}, invalidID("faculty")
	}

	res, err := s.facultyRepo.UpdateFaculty(ctx, faculty)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error updating faculty: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}

// DeleteFaculty deletes a faculty by ID. Faculties that still own promotions are
// kept and the foreign key error is returned.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) (models.MutationResult, error) {
	if id <= 0 {
		return models.MutationResult{}, invalidID("faculty")
	}

	res, err := s.facultyRepo.DeleteFaculty(ctx, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error deleting faculty: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}
