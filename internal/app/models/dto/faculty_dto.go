package dto

import "github.com/yigit/unicampus/internal/app/models"

// FacultyRequest carries the editable fields of a faculty
type FacultyRequest struct {
	Name        string `json:"name" example:"Engineering"`
	Description string `json:"description" example:"Eng dept"`
}

// ToModel builds the faculty to store. id is 0 for an add.
func (r FacultyRequest) ToModel(id int64) *models.Faculty {
	return &models.Faculty{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
	}
}
