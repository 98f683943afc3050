package dto

import "github.com/yigit/unicampus/internal/app/models"

// PromotionRequest carries the editable fields of a promotion
type PromotionRequest struct {
	Name         string `json:"name" example:"2024 Batch"`
	FacultyID    int64  `json:"faculty_id" example:"1"`
	AcademicYear string `json:"academic_year" example:"2023-2024"`
}

// ToModel builds the promotion to store. id is 0 for an add.
func (r PromotionRequest) ToModel(id int64) *models.Promotion {
	return &models.Promotion{
		ID:           id,
		Name:         r.Name,
		FacultyID:    r.FacultyID,
		AcademicYear: r.AcademicYear,
	}
}
