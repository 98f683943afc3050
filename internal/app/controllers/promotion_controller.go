package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicampus/internal/app/models/dto"
	"github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/middleware"
)

// PromotionController handles promotion-related operations
type PromotionController struct {
	promotionService services.PromotionService
	studentService   services.StudentService
}

// NewPromotionController creates a new PromotionController
func NewPromotionController(promotionService services.PromotionService, studentService services.StudentService) *PromotionController {
	return &PromotionController{
		promotionService: promotionService,
		studentService:   studentService,
	}
}

// AddPromotion creates a promotion
// @Summary Create a promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Param request body dto.PromotionRequest true "Promotion information"
// @Success 201 {object} dto.APIResponse{data=dto.MutationResponse}
// @Failure 422 {object} dto.APIResponse "Faculty does not exist"
// @Router /promotions [post]
func (c *PromotionController) AddPromotion(ctx *gin.Context) {
	var req dto.PromotionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.promotionService.AddPromotion(ctx.Request.Context(), req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewMutationResponse(res)))
}

// GetPromotions lists every promotion with its faculty name
// @Summary Get all promotions
// @Tags promotions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Promotion}
// @Router /promotions [get]
func (c *PromotionController) GetPromotions(ctx *gin.Context) {
	promotions, err := c.promotionService.GetPromotions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(promotions))
}

// GetPromotionByID retrieves a promotion
// @Summary Get promotion details
// @Tags promotions
// @Produce json
// @Param id path int true "Promotion ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Promotion}
// @Failure 404 {object} dto.APIResponse "Promotion not found"
// @Router /promotions/{id} [get]
func (c *PromotionController) GetPromotionByID(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	promotion, err := c.promotionService.GetPromotionByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(promotion))
}

// GetPromotionStudents lists the students of a promotion
// @Summary Get students of a promotion
// @Tags promotions
// @Produce json
// @Param id path int true "Promotion ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /promotions/{id}/students [get]
func (c *PromotionController) GetPromotionStudents(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	students, err := c.studentService.GetStudentsByPromotion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// UpdatePromotion replaces a promotion
// @Summary Update a promotion
// @Tags promotions
// @Accept json
// @Produce json
// @Param id path int true "Promotion ID" Format(int64) minimum(1)
// @Param request body dto.PromotionRequest true "Promotion information"
// @Success 200 {object} dto.APIResponse{data=dto.MutationResponse}
// @Router /promotions/{id} [put]
func (c *PromotionController) UpdatePromotion(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.PromotionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.promotionService.UpdatePromotion(ctx.Request.Context(), req.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMutationResponse(res)))
}

// DeletePromotion deletes a promotion
// @Summary Delete a promotion
// @Tags promotions
// @Produce json
// @Param id path int true "Promotion ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MutationResponse}
// @Failure 409 {object} dto.APIResponse "Promotion still has students"
// @Router /promotions/{id} [delete]
func (c *PromotionController) DeletePromotion(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	res, err := c.promotionService.DeletePromotion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMutationResponse(res)))
}
