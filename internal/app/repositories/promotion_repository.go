package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/unicampus/internal/app/models"
	"github.com/yigit/unicampus/internal/db"
	"github.com/yigit/unicampus/internal/pkg/helpers"
	"github.com/yigit/unicampus/internal/pkg/logger"
)

// PromotionRepository handles promotion database operations
type PromotionRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewPromotionRepository creates a new PromotionRepository
func NewPromotionRepository(database *db.DB) *PromotionRepository {
	return &PromotionRepository{
		db: database.SQL,
		sb: database.Builder(),
	}
}

// selectPromotions is the joined read carrying the owning faculty's name
func (r *PromotionRepository) selectPromotions() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.name", "p.faculty_id", "p.academic_year", "p.created_at",
		"f.name AS faculty_name",
	).
		From("promotions p").
		Join("faculties f ON p.faculty_id = f.id")
}

func scanPromotion(row rowScanner) (*models.Promotion, error) {
	var (
		promotion models.Promotion
		createdAt helpers.NullTime
	)
	err := row.Scan(
		&promotion.ID,
		&promotion.Name,
		&promotion.FacultyID,
		&promotion.AcademicYear,
		&createdAt,
		&promotion.FacultyName,
	)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		promotion.CreatedAt = &createdAt.Time
	}
	return &promotion, nil
}

// AddPromotion inserts a new promotion. An unknown faculty_id fails with the
// engine's foreign-key error.
func (r *PromotionRepository) AddPromotion(ctx context.Context, promotion *models.Promotion) (models.MutationResult, error) {
	query, args, err := r.sb.Insert("promotions").
		Columns("name", "faculty_id", "academic_year").
		Values(promotion.Name, promotion.FacultyID, promotion.AcademicYear).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add promotion SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build add promotion query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("facultyID", promotion.FacultyID).Msg("Error executing add promotion query")
		return models.MutationResult{}, fmt.Errorf("error adding promotion: %w", err)
	}

	return models.MutationResult{ID: id, Changes: 1}, nil
}

// GetPromotions retrieves all promotions with their faculty name
func (r *PromotionRepository) GetPromotions(ctx context.Context) ([]*models.Promotion, error) {
	return r.list(ctx, r.selectPromotions())
}

// GetPromotionsByFaculty retrieves the promotions of one faculty
func (r *PromotionRepository) GetPromotionsByFaculty(ctx context.Context, facultyID int64) ([]*models.Promotion, error) {
	return r.list(ctx, r.selectPromotions().Where(squirrel.Eq{"p.faculty_id": facultyID}))
}

func (r *PromotionRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Promotion, error) {
	query, args, err := builder.OrderBy("p.id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get promotions SQL")
		return nil, fmt.Errorf("failed to build get promotions query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get promotions query")
		return nil, fmt.Errorf("error querying promotions: %w", err)
	}
	defer rows.Close()

	promotions := []*models.Promotion{}
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning promotion row")
			return nil, fmt.Errorf("error scanning promotion row: %w", err)
		}
		promotions = append(promotions, promotion)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating promotion rows")
		return nil, fmt.Errorf("error iterating promotion rows: %w", err)
	}

	return promotions, nil
}

// GetPromotionByID retrieves a promotion by ID
func (r *PromotionRepository) GetPromotionByID(ctx context.Context, id int64) (*models.Promotion, error) {
	query, args, err := r.selectPromotions().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get promotion by ID SQL")
		return nil, fmt.Errorf("failed to build get promotion query: %w", err)
	}

	promotion, err := scanPromotion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("promotionID", id).Msg("Error scanning promotion row")
		return nil, fmt.Errorf("error getting promotion by ID: %w", err)
	}

	return promotion, nil
}

// UpdatePromotion replaces the editable fields of a promotion. A missing id changes nothing.
func (r *PromotionRepository) UpdatePromotion(ctx context.Context, promotion *models.Promotion) (models.MutationResult, error) {
	query, args, err := r.sb.Update("promotions").
		SetMap(map[string]interface{}{
			"name":          promotion.Name,
			"faculty_id":    promotion.FacultyID,
			"academic_year": promotion.AcademicYear,
		}).
		Where(squirrel.Eq{"id": promotion.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update promotion SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build update promotion query: %w", err)
	}

	return r.exec(ctx, query, args, promotion.ID, "update")
}

// DeletePromotion removes a promotion. Students still referencing it make the
// statement fail with a foreign-key violation.
func (r *PromotionRepository) DeletePromotion(ctx context.Context, id int64) (models.MutationResult, error) {
	query, args, err := r.sb.Delete("promotions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete promotion SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build delete promotion query: %w", err)
	}

	return r.exec(ctx, query, args, id, "delete")
}

func (r *PromotionRepository) exec(ctx context.Context, query string, args []interface{}, id int64, op string) (models.MutationResult, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("promotionID", id).Msgf("Error executing %s promotion query", op)
		return models.MutationResult{}, fmt.Errorf("error executing %s promotion: %w", op, err)
	}

	changes, err := result.RowsAffected()
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error reading affected rows: %w", err)
	}
	return models.MutationResult{Changes: changes}, nil
}
