package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/unicampus/internal/app/controllers"
	"github.com/yigit/unicampus/internal/app/migrations"
	"github.com/yigit/unicampus/internal/app/repositories"
	"github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/db"
	"github.com/yigit/unicampus/internal/middleware"
	"github.com/yigit/unicampus/internal/pkg/export"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Field   string          `json:"field"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type mutation struct {
	ID      int64 `json:"id"`
	Changes int64 `json:"changes"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	database, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "university.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.NewMigrator(database).Migrate(ctx))

	svc := services.NewServices(repositories.NewRepositories(database), nil)
	router := gin.New()
	router.Use(middleware.RequestID())
	SetupRouter(router,
		controllers.NewFacultyController(svc.FacultyService, svc.PromotionService),
		controllers.NewPromotionController(svc.PromotionService, svc.StudentService),
		controllers.NewStudentController(svc.StudentService, svc.DirectoryService, svc.ExportService),
		controllers.NewHealthController(database, database.Driver),
	)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decode(t *testing.T, raw json.RawMessage, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dest))
}

func TestEngineeringScenarioOverHTTP(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/faculties", gin.H{"name": "Engineering", "description": "Eng dept"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var m mutation
	decode(t, env.Data, &m)
	assert.Equal(t, mutation{ID: 1, Changes: 1}, m)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/promotions", gin.H{"name": "2024 Batch", "faculty_id": 1, "academic_year": "2023-2024"})
	require.Equal(t, http.StatusCreated, rec.Code)

	student := gin.H{
		"registration_number": "R001", "first_name": "A", "last_name": "B",
		"email": "a@b.com", "promotion_id": 1, "phone_number": "12345678",
	}
	rec, _ = do(t, router, http.MethodPost, "/api/v1/students", student)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []struct {
		FacultyName   string `json:"faculty_name"`
		PromotionName string `json:"promotion_name"`
	}
	decode(t, env.Data, &students)
	require.Len(t, students, 1)
	assert.Equal(t, "Engineering", students[0].FacultyName)
	assert.Equal(t, "2024 Batch", students[0].PromotionName)

	student["registration_number"] = "R002"
	rec, env = do(t, router, http.MethodPost, "/api/v1/students", student)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "email", env.Error.Field)
}

func TestValidationAndNotFound(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/faculties", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), `"field":"name"`)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/faculties/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/students/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "student not found", env.Error.Message)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/faculties", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestUpdateAndDeleteMissingIDReportZeroChanges(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, http.MethodPut, "/api/v1/faculties/99", gin.H{"name": "Ghost"})
	require.Equal(t, http.StatusOK, rec.Code)
	var m mutation
	decode(t, env.Data, &m)
	assert.Zero(t, m.Changes)

	rec, env = do(t, router, http.MethodDelete, "/api/v1/students/99", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, env.Data, &m)
	assert.Zero(t, m.Changes)
}

func TestForeignKeyStatuses(t *testing.T) {
	router := newRouter(t)

	rec, _ := do(t, router, http.MethodPost, "/api/v1/promotions", gin.H{"name": "Ghost", "faculty_id": 5, "academic_year": "2023-2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	do(t, router, http.MethodPost, "/api/v1/faculties", gin.H{"name": "Engineering"})
	do(t, router, http.MethodPost, "/api/v1/promotions", gin.H{"name": "P", "faculty_id": 1, "academic_year": "2023-2024"})

	rec, env := do(t, router, http.MethodDelete, "/api/v1/faculties/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "RES_004", env.Error.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/faculties/1/promotions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var promotions []map[string]interface{}
	decode(t, env.Data, &promotions)
	assert.Len(t, promotions, 1)
}

func TestDirectoryExportAndHealth(t *testing.T) {
	router := newRouter(t)
	do(t, router, http.MethodPost, "/api/v1/faculties", gin.H{"name": "Engineering"})
	do(t, router, http.MethodPost, "/api/v1/promotions", gin.H{"name": "P", "faculty_id": 1, "academic_year": "2023-2024"})
	do(t, router, http.MethodPost, "/api/v1/students", gin.H{
		"registration_number": "R001", "first_name": "Ada", "last_name": "Lovelace",
		"email": "ada@uni.edu", "promotion_id": 1,
	})

	rec, env := do(t, router, http.MethodGet, "/api/v1/students/directory?q=ada", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sections []services.DirectorySection
	decode(t, env.Data, &sections)
	require.Len(t, sections, 1)
	assert.Equal(t, "A", sections[0].Key)

	rec, env = do(t, router, http.MethodGet, "/api/v1/promotions/1/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []map[string]interface{}
	decode(t, env.Data, &students)
	assert.Len(t, students, 1)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/students/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rec, env = do(t, router, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}
