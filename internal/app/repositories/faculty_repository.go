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

var facultyColumns = []string{"f.id", "f.name", "f.description", "f.created_at"}

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(database *db.DB) *FacultyRepository {
	return &FacultyRepository{
		db: database.SQL,
		sb: database.Builder(),
	}
}

func scanFaculty(row rowScanner) (*models.Faculty, error) {
	var (
		faculty     models.Faculty
		description sql.NullString
		createdAt   helpers.NullTime
	)
	if err := row.Scan(&faculty.ID, &faculty.Name, &description, &createdAt); err != nil {
		return nil, err
	}
	faculty.Description = description.String
	if createdAt.Valid {
		faculty.CreatedAt = &createdAt.Time
	}
	return &faculty, nil
}

// AddFaculty inserts a new faculty
func (r *FacultyRepository) AddFaculty(ctx context.Context, faculty *models.Faculty) (models.MutationResult, error) {
	query, args, err := r.sb.Insert("faculties").
		Columns("name", "description").
		Values(faculty.Name, helpers.GetContentNullString(faculty.Description)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add faculty SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build add faculty query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing add faculty query")
		return models.MutationResult{}, fmt.Errorf("error adding faculty: %w", err)
	}

	return models.MutationResult{ID: id, Changes: 1}, nil
}

// GetFaculties retrieves all faculties in storage order
func (r *FacultyRepository) GetFaculties(ctx context.Context) ([]*models.Faculty, error) {
	query, args, err := r.sb.Select(facultyColumns...).
		From("faculties f").
		OrderBy("f.id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculties SQL")
		return nil, fmt.Errorf("failed to build get faculties query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, faculty)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculties, nil
}

// GetFacultyByID retrieves a faculty by ID
func (r *FacultyRepository) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	query, args, err := r.sb.Select(facultyColumns...).
		From("faculties f").
		Where(squirrel.Eq{"f.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}

	return faculty, nil
}

// UpdateFaculty replaces the editable fields of a faculty. A missing id changes nothing.
func (r *FacultyRepository) UpdateFaculty(ctx context.Context, faculty *models.Faculty) (models.MutationResult, error) {
	query, args, err := r.sb.Update("faculties").
		SetMap(map[string]interface{}{
			"name":        faculty.Name,
			"description": helpers.GetContentNullString(faculty.Description),
		}).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build update faculty query: %w", err)
	}

	return r.exec(ctx, query, args, faculty.ID, "update")
}

// DeleteFaculty removes a faculty. Promotions still referencing it make the
// statement fail with a foreign-key violation.
func (r *FacultyRepository) DeleteFaculty(ctx context.Context, id int64) (models.MutationResult, error) {
	query, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete faculty SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	return r.exec(ctx, query, args, id, "delete")
}

func (r *FacultyRepository) exec(ctx context.Context, query string, args []interface{}, id int64, op string) (models.MutationResult, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msgf("Error executing %s faculty query", op)
		return models.MutationResult{}, fmt.Errorf("error executing %s faculty: %w", op, err)
	}

	changes, err := result.RowsAffected()
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error reading affected rows: %w", err)
	}
	return models.MutationResult{Changes: changes}, nil
}
