package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unicampus/internal/app/migrations"
	"github.com/yigit/unicampus/internal/app/models"
	"github.com/yigit/unicampus/internal/db"
	"github.com/yigit/unicampus/internal/pkg/dberrors"
)

func setup(t *testing.T) *Repositories {
	t.Helper()
	ctx := context.Background()
	database, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "university.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.NewMigrator(database).Migrate(ctx))
	return NewRepositories(database)
}

func addFaculty(t *testing.T, repos *Repositories, name, description string) int64 {
	t.Helper()
	res, err := repos.FacultyRepository.AddFaculty(context.Background(), &models.Faculty{Name: name, Description: description})
	require.NoError(t, err)
	return res.ID
}

func addPromotion(t *testing.T, repos *Repositories, name string, facultyID int64, year string) int64 {
	t.Helper()
	res, err := repos.PromotionRepository.AddPromotion(context.Background(), &models.Promotion{
		Name: name, FacultyID: facultyID, AcademicYear: year,
	})
	require.NoError(t, err)
	return res.ID
}

func newStudent(reg, email string, promotionID int64) *models.Student {
	return &models.Student{
		RegistrationNumber: reg,
		FirstName:          "A",
		LastName:           "B",
		Email:              email,
		PhoneNumber:        "12345678",
		PromotionID:        promotionID,
	}
}

func TestEngineeringScenario(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	faculty, err := repos.FacultyRepository.AddFaculty(ctx, &models.Faculty{Name: "Engineering", Description: "Eng dept"})
	require.NoError(t, err)
	assert.Equal(t, models.MutationResult{ID: 1, Changes: 1}, faculty)

	promotion, err := repos.PromotionRepository.AddPromotion(ctx, &models.Promotion{
		Name: "2024 Batch", FacultyID: 1, AcademicYear: "2023-2024",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), promotion.ID)

	_, err = repos.StudentRepository.AddStudent(ctx, newStudent("R001", "a@b.com", 1))
	require.NoError(t, err)

	students, err := repos.StudentRepository.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Engineering", students[0].FacultyName)
	assert.Equal(t, "2024 Batch", students[0].PromotionName)

	// Same email again
	_, err = repos.StudentRepository.AddStudent(ctx, newStudent("R002", "a@b.com", 1))
	require.Error(t, err)
	assert.True(t, dberrors.IsDuplicateConstraintError(err, "students", "email"))

	count, err := repos.StudentRepository.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFacultyRoundTrip(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	id := addFaculty(t, repos, "Sciences", "")

	got, err := repos.FacultyRepository.GetFacultyByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Sciences", got.Name)
	assert.Empty(t, got.Description)
	assert.NotNil(t, got.CreatedAt)

	res, err := repos.FacultyRepository.UpdateFaculty(ctx, &models.Faculty{ID: id, Name: "Exact Sciences", Description: "Maths & physics"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Changes)

	got, err = repos.FacultyRepository.GetFacultyByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Exact Sciences", got.Name)
	assert.Equal(t, "Maths & physics", got.Description)

	all, err := repos.FacultyRepository.GetFaculties(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPromotionRoundTripAndByFaculty(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()

	eng := addFaculty(t, repos, "Engineering", "")
	med := addFaculty(t, repos, "Medicine", "")
	first := addPromotion(t, repos, "L1", eng, "2023-2024")
	addPromotion(t, repos, "L2", eng, "2024-2025")
	addPromotion(t, repos, "Doc 1", med, "2024-2025")

	got, err := repos.PromotionRepository.GetPromotionByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "L1", got.Name)
	assert.Equal(t, eng, got.FacultyID)
	assert.Equal(t, "2023-2024", got.AcademicYear)
	assert.Equal(t, "Engineering", got.FacultyName)

	byFaculty, err := repos.PromotionRepository.GetPromotionsByFaculty(ctx, eng)
	require.NoError(t, err)
	assert.Len(t, byFaculty, 2)

	all, err := repos.PromotionRepository.GetPromotions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAddPromotionUnknownFacultyFails(t *testing.T) {
	repos := setup(t)

	_, err := repos.PromotionRepository.AddPromotion(context.Background(), &models.Promotion{
		Name: "Ghost", FacultyID: 404, AcademicYear: "2023-2024",
	})
	require.Error(t, err)
	assert.True(t, dberrors.IsForeignKeyViolation(err))

	all, err := repos.PromotionRepository.GetPromotions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStudentRoundTrip(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()
	promotionID := addPromotion(t, repos, "2024 Batch", addFaculty(t, repos, "Engineering", ""), "2023-2024")

	dob := "2001-05-17"
	in := &models.Student{
		RegistrationNumber: "R010",
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Email:              "ada@uni.edu",
		PromotionID:        promotionID,
		PhoneNumber:        "+243 81234567",
		DateOfBirth:        &dob,
		Address:            "12 Main St",
	}
	res, err := repos.StudentRepository.AddStudent(ctx, in)
	require.NoError(t, err)

	got, err := repos.StudentRepository.GetStudentByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, in.RegistrationNumber, got.RegistrationNumber)
	assert.Equal(t, in.FirstName, got.FirstName)
	assert.Equal(t, in.LastName, got.LastName)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.PromotionID, got.PromotionID)
	assert.Equal(t, in.PhoneNumber, got.PhoneNumber)
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, dob, *got.DateOfBirth)
	assert.Equal(t, in.Address, got.Address)

	byPromotion, err := repos.StudentRepository.GetStudentsByPromotion(ctx, promotionID)
	require.NoError(t, err)
	assert.Len(t, byPromotion, 1)
}

func TestDuplicateRegistrationNumberFails(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()
	promotionID := addPromotion(t, repos, "P", addFaculty(t, repos, "F", ""), "2023-2024")

	_, err := repos.StudentRepository.AddStudent(ctx, newStudent("R001", "one@b.com", promotionID))
	require.NoError(t, err)

	_, err = repos.StudentRepository.AddStudent(ctx, newStudent("R001", "two@b.com", promotionID))
	require.Error(t, err)
	assert.True(t, dberrors.IsDuplicateConstraintError(err, "students", "registration_number"))

	count, err := repos.StudentRepository.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMissingIDChangesNothing(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()
	facultyID := addFaculty(t, repos, "Engineering", "Eng dept")
	promotionID := addPromotion(t, repos, "P", facultyID, "2023-2024")
	res, err := repos.StudentRepository.AddStudent(ctx, newStudent("R001", "a@b.com", promotionID))
	require.NoError(t, err)
	studentID := res.ID

	fres, err := repos.FacultyRepository.UpdateFaculty(ctx, &models.Faculty{ID: 999, Name: "Nope"})
	require.NoError(t, err)
	assert.Zero(t, fres.Changes)

	pres, err := repos.PromotionRepository.UpdatePromotion(ctx, &models.Promotion{ID: 999, Name: "Nope", FacultyID: facultyID, AcademicYear: "2024-2025"})
	require.NoError(t, err)
	assert.Zero(t, pres.Changes)

	missing := newStudent("R999", "z@b.com", promotionID)
	missing.ID = 999
	sres, err := repos.StudentRepository.UpdateStudent(ctx, missing)
	require.NoError(t, err)
	assert.Zero(t, sres.Changes)

	faculty, err := repos.FacultyRepository.GetFacultyByID(ctx, facultyID)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", faculty.Name)
	student, err := repos.StudentRepository.GetStudentByID(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, "R001", student.RegistrationNumber)
}

func TestDeleteThenGetIsAbsent(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()
	facultyID := addFaculty(t, repos, "F", "")
	promotionID := addPromotion(t, repos, "P", facultyID, "2023-2024")
	res, err := repos.StudentRepository.AddStudent(ctx, newStudent("R001", "a@b.com", promotionID))
	require.NoError(t, err)

	del, err := repos.StudentRepository.DeleteStudent(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.Changes)
	_, err = repos.StudentRepository.GetStudentByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	del, err = repos.PromotionRepository.DeletePromotion(ctx, promotionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.Changes)
	_, err = repos.PromotionRepository.GetPromotionByID(ctx, promotionID)
	assert.ErrorIs(t, err, ErrNotFound)

	del, err = repos.FacultyRepository.DeleteFaculty(ctx, facultyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.Changes)
	_, err = repos.FacultyRepository.GetFacultyByID(ctx, facultyID)
	assert.ErrorIs(t, err, ErrNotFound)

	del, err = repos.FacultyRepository.DeleteFaculty(ctx, facultyID)
	require.NoError(t, err)
	assert.Zero(t, del.Changes)
}

func TestDeleteParentWithDependentsIsRestricted(t *testing.T) {
	repos := setup(t)
	ctx := context.Background()
	facultyID := addFaculty(t, repos, "F", "")
	promotionID := addPromotion(t, repos, "P", facultyID, "2023-2024")
	_, err := repos.StudentRepository.AddStudent(ctx, newStudent("R001", "a@b.com", promotionID))
	require.NoError(t, err)

	_, err = repos.FacultyRepository.DeleteFaculty(ctx, facultyID)
	require.Error(t, err)
	assert.True(t, dberrors.IsForeignKeyViolation(err))

	_, err = repos.PromotionRepository.DeletePromotion(ctx, promotionID)
	require.Error(t, err)
	assert.True(t, dberrors.IsForeignKeyViolation(err))

	_, err = repos.PromotionRepository.GetPromotionByID(ctx, promotionID)
	assert.NoError(t, err)
}
