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

// StudentService defines the interface for student-related operations
type StudentService interface {
	AddStudent(ctx context.Context, student *models.Student) (models.MutationResult, error)
	GetStudents(ctx context.Context) ([]*models.Student, error)
	GetStudentsByPromotion(ctx context.Context, promotionID int64) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	CountStudents(ctx context.Context) (int64, error)
	UpdateStudent(ctx context.Context, student *models.Student) (models.MutationResult, error)
	DeleteStudent(ctx context.Context, id int64) (models.MutationResult, error)
}

type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	cache       cache.ListCache
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, listCache cache.ListCache) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		cache:       listCache,
	}
}

// normalizeStudent trims every text field and lower-cases the email
func normalizeStudent(student *models.Student) {
	student.RegistrationNumber = strings.TrimSpace(student.RegistrationNumber)
	student.FirstName = strings.TrimSpace(student.FirstName)
	student.LastName = strings.TrimSpace(student.LastName)
	student.Email = strings.ToLower(strings.TrimSpace(student.Email))
	student.PhoneNumber = strings.TrimSpace(student.PhoneNumber)
	student.Address = strings.TrimSpace(student.Address)
	if student.DateOfBirth != nil {
		dob := strings.TrimSpace(*student.DateOfBirth)
		if dob == "" {
			student.DateOfBirth = nil
		} else {
			student.DateOfBirth = &dob
		}
	}
}

func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	normalizeStudent(student)
	if err := validation.Struct(student); err != nil {
		return invalidInput("student", err)
	}
	return nil
}

// AddStudent registers a student in an existing promotion
func (s *studentServiceImpl) AddStudent(ctx context.Context, student *models.Student) (models.MutationResult, error) {
	if err := s.validateStudent(student); err != nil {
		return models.MutationResult{}, err
	}

	res, err := s.studentRepo.AddStudent(ctx, student)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error creating student: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}

// GetStudents retrieves all students with promotion and faculty names
func (s *studentServiceImpl) GetStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := cachedList(ctx, s.cache, cache.KeyStudents, s.studentRepo.GetStudents)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentsByPromotion retrieves the students of one promotion
func (s *studentServiceImpl) GetStudentsByPromotion(ctx context.Context, promotionID int64) ([]*models.Student, error) {
	if promotionID <= 0 {
		return nil, invalidID("promotion")
	}

	load := func(ctx context.Context) ([]*models.Student, error) {
		return s.studentRepo.GetStudentsByPromotion(ctx, promotionID)
	}
	students, err := cachedList(ctx, s.cache, cache.StudentsByPromotionKey(promotionID), load)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students of promotion %d: %w", promotionID, err)
	}
	return students, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, invalidID("student")
	}

	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// UpdateStudent replaces the editable fields of a student
// CountStudents returns the number of registered students
func (s *studentServiceImpl) CountStudents(ctx context.Context) (int64, error) {
	return s.studentRepo.CountStudents(ctx)
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) (models.MutationResult, error) {
	if err := s.validateStudent(student); err != nil {
		return models.MutationResult{}, err
	}
	if student.ID <= 0 {
		return models.MutationResult{}, invalidID("student")
	}

	res, err := s.studentRepo.UpdateStudent(ctx, student)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error updating student: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}

// DeleteStudent deletes a student by ID
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) (models.MutationResult, error) {
	if id <= 0 {
		return models.MutationResult{}, invalidID("student")
	}

	res, err := s.studentRepo.DeleteStudent(ctx, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error deleting student: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}
