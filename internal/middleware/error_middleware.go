package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicampus/internal/app/models/dto"
	"github.com/yigit/unicampus/internal/pkg/apperrors"
	"github.com/yigit/unicampus/internal/pkg/dberrors"
	"github.com/yigit/unicampus/internal/pkg/logger"
)

// tables searched when naming the column behind a unique violation
var uniqueTables = []string{"students", "promotions", "faculties"}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	err = conflictFromEngine(c, err)

	var customErr *apperrors.CustomError
	errors.As(err, &customErr)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if customErr != nil && customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
		abort(c, http.StatusBadRequest, detail)
	case errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(codeOr(customErr, dto.ErrorCodeInvalidRequest), messageOr(customErr, "Bad request"))
		if customErr != nil && customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
		abort(c, http.StatusBadRequest, detail)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abort(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOr(customErr, "Resource not found")))
	case errors.Is(err, apperrors.ErrConflict):
		abort(c, http.StatusConflict, dto.NewErrorDetail(codeOr(customErr, dto.ErrorCodeResourceAlreadyExists), messageOr(customErr, "Conflict")))
	case dberrors.IsUniqueViolation(err):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
		if column := violatedColumn(err); column != "" {
			detail = detail.WithField(column)
			detail.Message = column + " already exists"
		}
		abort(c, http.StatusConflict, detail)
	case dberrors.IsForeignKeyViolation(err):
		abort(c, http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Referenced resource does not exist"))
	case dberrors.IsConstraintViolation(err):
		abort(c, http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Constraint violation"))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestID", GetRequestID(c)).
			Msg("Unhandled API error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		if dberrors.IsEngineError(err) {
			detail = dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database error").
				WithSeverity(dto.ErrorSeverityCritical)
		}
		if gin.Mode() != gin.ReleaseMode {
			detail = detail.WithDebugInfo("%v", err)
		}
		abort(c, http.StatusInternalServerError, detail)
	}
}

// conflictFromEngine reports a DELETE blocked by dependent rows as a conflict.
// On writes the same engine error means the referenced parent does not exist.
func conflictFromEngine(c *gin.Context, err error) error {
	if c.Request.Method != http.MethodDelete || !dberrors.IsForeignKeyViolation(err) {
		return err
	}
	return apperrors.NewConflictError("Resource is still referenced").
		WithCode(string(dto.ErrorCodeResourceInUse))
}

func abort(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func codeOr(customErr *apperrors.CustomError, fallback dto.ErrorCode) dto.ErrorCode {
	if customErr != nil && customErr.Code != "" {
		return dto.ErrorCode(customErr.Code)
	}
	return fallback
}

func messageOr(customErr *apperrors.CustomError, fallback string) string {
	if customErr != nil && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}

func violatedColumn(err error) string {
	for _, table := range uniqueTables {
		if column := dberrors.ViolatedColumn(err, table); column != "" {
			return column
		}
	}
	return ""
}
