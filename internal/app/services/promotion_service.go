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

// PromotionService defines the interface for promotion-related operations
type PromotionService interface {
	AddPromotion(ctx context.Context, promotion *models.Promotion) (models.MutationResult, error)
	GetPromotions(ctx context.Context) ([]*models.Promotion, error)
	GetPromotionsByFaculty(ctx context.Context, facultyID int64) ([]*models.Promotion, error)
	GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, promotion *models.Promotion) (models.MutationResult, error)
	DeletePromotion(ctx context.Context, id int64) (models.MutationResult, error)
}

type promotionServiceImpl struct {
	promotionRepo *repositories.PromotionRepository
	cache         cache.ListCache
}

// NewPromotionService creates a new promotion service instance
func NewPromotionService(promotionRepo *repositories.PromotionRepository, listCache cache.ListCache) PromotionService {
	return &promotionServiceImpl{
		promotionRepo: promotionRepo,
		cache:         listCache,
	}
}

func (s *promotionServiceImpl) validatePromotion(promotion *models.Promotion) error {
	if promotion == nil {
		return fmt.Errorf("%w: promotion is nil", apperrors.ErrValidationFailed)
	}

	promotion.Name = strings.TrimSpace(promotion.Name)
	promotion.AcademicYear = strings.TrimSpace(promotion.AcademicYear)

	if err := validation.Struct(promotion); err != nil {
		return invalidInput("promotion", err)
	}
	return nil
}

// AddPromotion creates a promotion inside an existing faculty
func (s *promotionServiceImpl) AddPromotion(ctx context.Context, promotion *models.Promotion) (models.MutationResult, error) {
	if err := s.validatePromotion(promotion); err != nil {
		return models.MutationResult{}, err
	}

	res, err := s.promotionRepo.AddPromotion(ctx, promotion)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error creating promotion: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}

// GetPromotions retrieves all promotions with their faculty name
func (s *promotionServiceImpl) GetPromotions(ctx context.Context) ([]*models.Promotion, error) {
	promotions, err := cachedList(ctx, s.cache, cache.KeyPromotions, s.promotionRepo.GetPromotions)
	if err != nil {
		return nil, fmt.Errorf("error retrieving promotions: %w", err)
	}
	return promotions, nil
}

// GetPromotionsByFaculty retrieves the promotions of one faculty
func (s *promotionServiceImpl) GetPromotionsByFaculty(ctx context.Context, facultyID int64) ([]*models.Promotion, error) {
	if facultyID <= 0 {
		return nil, invalidID("faculty")
	}

	load := func(ctx context.Context) ([]*models.Promotion, error) {
		return s.promotionRepo.GetPromotionsByFaculty(ctx, facultyID)
	}
	promotions, err := cachedList(ctx, s.cache, cache.PromotionsByFacultyKey(facultyID), load)
	if err != nil {
		return nil, fmt.Errorf("error retrieving promotions of faculty %d: %w", facultyID, err)
	}
	return promotions, nil
}

// GetPromotionByID retrieves a promotion by ID
func (s *promotionServiceImpl) GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error) {
	if id <= 0 {
		return nil, invalidID("promotion")
	}

	promotion, err := s.promotionRepo.GetPromotionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("error retrieving promotion: %w", err)
	}
	return promotion, nil
}

// UpdatePromotion replaces the editable fields of a promotion
func (s *promotionServiceImpl) UpdatePromotion(ctx context.Context, promotion *models.Promotion) (models.MutationResult, error) {
	if err := s.validatePromotion(promotion); err != nil {
		return models.MutationResult{}, err
	}
	if promotion.ID <= 0 {
		return models.MutationResult{}, invalidID("promotion")
	}

	res, err := s.promotionRepo.UpdatePromotion(ctx, promotion)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error updating promotion: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}

// DeletePromotion deletes a promotion by ID
func (s *promotionServiceImpl) DeletePromotion(ctx context.Context, id int64) (models.MutationResult, error) {
	if id <= 0 {
		return models.MutationResult{}, invalidID("promotion")
	}

	res, err := s.promotionRepo.DeletePromotion(ctx, id)
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error deleting promotion: %w", err)
	}
	invalidate(ctx, s.cache, res.Changes)
	return res, nil
}
