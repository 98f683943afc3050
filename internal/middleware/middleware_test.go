package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/yigit/unicampus/internal/pkg/apperrors"
)

func serveError(method string, err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.Handle(method, "/x", func(c *gin.Context) { HandleAPIError(c, err) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, "/x", nil))
	return rec
}

func TestHandleAPIErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		method string
		err    error
		status int
		body   string
	}{
		{"validation", http.MethodPost, apperrors.NewValidationError([]string{"bad"}, "invalid faculty"), http.StatusBadRequest, `"VAL_001"`},
		{"not found", http.MethodGet, fmt.Errorf("wrapped: %w", apperrors.ErrPromotionNotFound), http.StatusNotFound, "promotion not found"},
		{"bad request", http.MethodPost, apperrors.NewBadRequestError("Invalid request format").WithDetails("EOF"), http.StatusBadRequest, `"VAL_002"`},
		{"conflict", http.MethodPost, apperrors.NewConflictError("taken"), http.StatusConflict, "taken"},
		{"conflict with code", http.MethodPost, apperrors.NewConflictError("busy").WithCode("RES_004"), http.StatusConflict, `"RES_004"`},
		{"unique", http.MethodPost, &pgconn.PgError{Code: "23505", ConstraintName: "students_registration_number_key"}, http.StatusConflict, `"field":"registration_number"`},
		{"fk on write", http.MethodPost, &pgconn.PgError{Code: "23503"}, http.StatusUnprocessableEntity, `"RES_003"`},
		{"fk on delete", http.MethodDelete, &pgconn.PgError{Code: "23503"}, http.StatusConflict, `"RES_004"`},
		{"check", http.MethodPut, &pgconn.PgError{Code: "23514"}, http.StatusUnprocessableEntity, "Constraint violation"},
		{"engine", http.MethodGet, fmt.Errorf("error listing students: %w", &pgconn.PgError{Code: "42P01"}), http.StatusInternalServerError, `"SRV_002"`},
		{"other", http.MethodGet, errors.New("disk on fire"), http.StatusInternalServerError, `"SRV_001"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveError(tc.method, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestDatabaseErrorIsCritical(t *testing.T) {
	rec := serveError(http.MethodGet, &pgconn.PgError{Code: "57P01"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"severity":"CRITICAL"`)

	rec = serveError(http.MethodGet, errors.New("disk on fire"))
	assert.Contains(t, rec.Body.String(), `"severity":"ERROR"`)
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/items", func(c *gin.Context) {
		var body struct {
			Name string `json:"name"`
		}
		if BindJSON(c, &body) {
			c.JSON(http.StatusOK, body)
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"VAL_002"`)
	assert.Contains(t, rec.Body.String(), "Invalid request format")
}

func TestRequestIDIsEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, rec.Body.String(), 36)
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if ok {
			c.JSON(http.StatusOK, gin.H{"id": id})
		}
	})

	for path, status := range map[string]int{
		"/items/12":  http.StatusOK,
		"/items/0":   http.StatusBadRequest,
		"/items/-3":  http.StatusBadRequest,
		"/items/abc": http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, rec.Code, path)
		if status == http.StatusBadRequest {
			assert.Contains(t, rec.Body.String(), `"field":"id"`, path)
		}
	}
}
