package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unicampus/internal/app/migrations"
	"github.com/yigit/unicampus/internal/app/repositories"
	"github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/db"
)

func TestCreateDefaultDataOnce(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "university.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.NewMigrator(database).Migrate(ctx))

	repos := repositories.NewRepositories(database)
	svc := services.NewServices(repos, nil)

	summary, err := CreateDefaultData(ctx, svc, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Summary{Faculties: 2, Promotions: 3, Students: 4}, summary)

	students, err := svc.StudentService.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 4)
	assert.Equal(t, "R001", students[0].RegistrationNumber)
	assert.Equal(t, "Engineering", students[0].FacultyName)
	assert.Equal(t, "2024 Batch", students[0].PromotionName)

	again, err := CreateDefaultData(ctx, svc, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, again)

	count, err := repos.StudentRepository.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
