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

// StudentRepository handles student database operations
type StudentRepository struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.DB) *StudentRepository {
	return &StudentRepository{
		db: database.SQL,
		sb: database.Builder(),
	}
}

// selectStudents is the joined read carrying promotion and faculty names
func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.registration_number", "s.first_name", "s.last_name", "s.email",
		"s.promotion_id", "s.phone_number", "s.date_of_birth", "s.address", "s.created_at",
		"p.name AS promotion_name", "f.name AS faculty_name",
	).
		From("students s").
		Join("promotions p ON s.promotion_id = p.id").
		Join("faculties f ON p.faculty_id = f.id")
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		student     models.Student
		phoneNumber sql.NullString
		dateOfBirth helpers.NullDate
		address     sql.NullString
		createdAt   helpers.NullTime
	)
	err := row.Scan(
		&student.ID,
		&student.RegistrationNumber,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.PromotionID,
		&phoneNumber,
		&dateOfBirth,
		&address,
		&createdAt,
		&student.PromotionName,
		&student.FacultyName,
	)
	if err != nil {
		return nil, err
	}
	student.PhoneNumber = phoneNumber.String
	student.DateOfBirth = dateOfBirth.Ptr()
	student.Address = address.String
	if createdAt.Valid {
		student.CreatedAt = &createdAt.Time
	}
	return &student, nil
}

// editableColumns maps the columns an add or update writes
func editableColumns(student *models.Student) map[string]interface{} {
	return map[string]interface{}{
		"registration_number": student.RegistrationNumber,
		"first_name":          student.FirstName,
		"last_name":           student.LastName,
		"email":               student.Email,
		"promotion_id":        student.PromotionID,
		"phone_number":        helpers.GetContentNullString(student.PhoneNumber),
		"date_of_birth":       helpers.GetNullString(student.DateOfBirth),
		"address":             helpers.GetContentNullString(student.Address),
	}
}

// AddStudent inserts a new student. A duplicate registration number or email,
// or an unknown promotion, fails with the engine's constraint error and adds no row.
func (r *StudentRepository) AddStudent(ctx context.Context, student *models.Student) (models.MutationResult, error) {
	query, args, err := r.sb.Insert("students").
		SetMap(editableColumns(student)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add student SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build add student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("registrationNumber", student.RegistrationNumber).Msg("Error executing add student query")
		return models.MutationResult{}, fmt.Errorf("error adding student: %w", err)
	}

	return models.MutationResult{ID: id, Changes: 1}, nil
}

// GetStudents retrieves all students with promotion and faculty names
func (r *StudentRepository) GetStudents(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents())
}

// GetStudentsByPromotion retrieves the students of one promotion
func (r *StudentRepository) GetStudentsByPromotion(ctx context.Context, promotionID int64) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents().Where(squirrel.Eq{"s.promotion_id": promotionID}))
}

func (r *StudentRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Student, error) {
	query, args, err := builder.OrderBy("s.id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get students SQL")
		return nil, fmt.Errorf("failed to build get students query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// CountStudents returns the number of stored students
func (r *StudentRepository) CountStudents(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// UpdateStudent replaces the editable fields of a student. A missing id changes nothing.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) (models.MutationResult, error) {
	query, args, err := r.sb.Update("students").
		SetMap(editableColumns(student)).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build update student query: %w", err)
	}

	return r.exec(ctx, query, args, student.ID, "update")
}

// DeleteStudent removes a student. A missing id changes nothing.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) (models.MutationResult, error) {
	query, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return models.MutationResult{}, fmt.Errorf("failed to build delete student query: %w", err)
	}

	return r.exec(ctx, query, args, id, "delete")
}

func (r *StudentRepository) exec(ctx context.Context, query string, args []interface{}, id int64, op string) (models.MutationResult, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msgf("Error executing %s student query", op)
		return models.MutationResult{}, fmt.Errorf("error executing %s student: %w", op, err)
	}

	changes, err := result.RowsAffected()
	if err != nil {
		return models.MutationResult{}, fmt.Errorf("error reading affected rows: %w", err)
	}
	return models.MutationResult{Changes: changes}, nil
}
