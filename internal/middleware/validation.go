package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicampus/internal/pkg/apperrors"
	"github.com/yigit/unicampus/internal/pkg/validation"
)

// BindJSON decodes the request body into obj. On failure it writes a 400
// response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, apperrors.NewBadRequestError("Invalid request format").WithDetails(err.Error()))
		return false
	}
	return true
}

// ParseIDParam reads a positive integer path parameter. On failure it writes
// a 400 response and returns false.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		HandleAPIError(c, apperrors.NewValidationError(
			validation.Errors{{Field: name, Message: name + " must be a positive integer"}},
			"invalid %s", name,
		))
		return 0, false
	}
	return id, true
}
