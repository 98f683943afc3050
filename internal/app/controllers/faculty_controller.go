package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicampus/internal/app/models/dto"
	"github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/middleware"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService   services.FacultyService
	promotionService services.PromotionService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService, promotionService services.PromotionService) *FacultyController {
	return &FacultyController{
		facultyService:   facultyService,
		promotionService: promotionService,
	}
}

// AddFaculty handles faculty creation
// @Summary Create a new faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=dto.MutationResponse} "Faculty created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 409 {object} dto.APIResponse "Faculty conflicts with an existing one"
// @Router /faculties [post]
func (c *FacultyController) AddFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.facultyService.AddFaculty(ctx.Request.Context(), req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewMutationResponse(res)))
}

// GetFaculties retrieves all faculties
// @Summary Get all faculties
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty}
// @Router /faculties [get]
func (c *FacultyController) GetFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.GetFaculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculties))
}

// GetFacultyByID retrieves a faculty by ID
// @Summary Get faculty details
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Faculty}
// @Failure 404 {object} dto.APIResponse "Faculty not found"
// @Router /faculties/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty))
}

// GetFacultyPromotions lists the promotions of a faculty
// @Summary Get promotions of a faculty
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Promotion}
// @Router /faculties/{id}/promotions [get]
func (c *FacultyController) GetFacultyPromotions(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	promotions, err := c.promotionService.GetPromotionsByFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(promotions))
}

// UpdateFaculty replaces a faculty. A missing id answers 200 with zero changes.
// @Summary Update a faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 200 {object} dto.APIResponse{data=dto.MutationResponse}
// @Router /faculties/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.facultyService.UpdateFaculty(ctx.Request.Context(), req.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMutationResponse(res)))
}

// DeleteFaculty deletes a faculty
// @Summary Delete a faculty
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MutationResponse}
// @Failure 409 {object} dto.APIResponse "Faculty still owns promotions"
// @Router /faculties/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	res, err := c.facultyService.DeleteFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMutationResponse(res)))
}
