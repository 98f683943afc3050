package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unicampus/internal/app/repositories"
	"github.com/yigit/unicampus/internal/pkg/apperrors"
	"github.com/yigit/unicampus/internal/pkg/cache"
	"github.com/yigit/unicampus/internal/pkg/logger"
	"github.com/yigit/unicampus/internal/pkg/validation"
)

// Services defined in this package:
// - FacultyService: faculty registry operations
// - PromotionService: promotion registry operations
// - StudentService: student registry operations
// - DirectoryService: searchable, grouped student listing
// - ExportService: XLSX roster export
type Services struct {
	FacultyService   FacultyService
	PromotionService PromotionService
	StudentService   StudentService
	DirectoryService DirectoryService
	ExportService    ExportService
}

// NewServices wires every service over the shared repositories and list cache.
// A nil cache disables caching.
func NewServices(repos *repositories.Repositories, listCache cache.ListCache) *Services {
	if listCache == nil {
		listCache = cache.Noop{}
	}
	return &Services{
		FacultyService:   NewFacultyService(repos.FacultyRepository, listCache),
		PromotionService: NewPromotionService(repos.PromotionRepository, listCache),
		StudentService:   NewStudentService(repos.StudentRepository, listCache),
		DirectoryService: NewDirectoryService(repos.StudentRepository),
		ExportService:    NewExportService(repos.StudentRepository),
	}
}

// invalidInput converts validator output into an apperrors validation error
func invalidInput(entity string, err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(fieldErrs, "invalid %s", entity)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
}

func invalidID(entity string) error {
	return apperrors.NewValidationError(
		validation.Errors{{Field: "id", Message: "id must be a positive integer"}},
		"invalid %s ID", entity,
	)
}

// cachedList serves a list read from the cache, loading and storing it on a miss.
// The generation is read before loading so a write committed meanwhile
// leaves the stored list unreachable. Cache failures only cost the lookup.
func cachedList[T any](ctx context.Context, c cache.ListCache, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	gen, err := c.Generation(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("List cache unavailable")
		return load(ctx)
	}

	var items []T
	hit, err := c.Get(ctx, gen, key, &items)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("List cache read failed")
	}
	if hit {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, gen, key, items); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("List cache write failed")
	}
	return items, nil
}

// invalidate drops cached lists after a write that changed rows
func invalidate(ctx context.Context, c cache.ListCache, changes int64) {
	if changes == 0 {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("List cache invalidation failed")
	}
}
