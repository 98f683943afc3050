package dto

import "github.com/yigit/unicampus/internal/app/models"

// StudentRequest carries the editable fields of a student
type StudentRequest struct {
	RegistrationNumber string  `json:"registration_number" example:"R001"`
	FirstName          string  `json:"first_name" example:"Ada"`
	LastName           string  `json:"last_name" example:"Lovelace"`
	Email              string  `json:"email" example:"ada@uni.edu"`
	PromotionID        int64   `json:"promotion_id" example:"1"`
	PhoneNumber        string  `json:"phone_number" example:"+243 812345678"`
	DateOfBirth        *string `json:"date_of_birth" example:"2001-05-17"`
	Address            string  `json:"address" example:"12 Main St"`
}

// ToModel builds the student to store. id is 0 for an add.
func (r StudentRequest) ToModel(id int64) *models.Student {
	return &models.Student{
		ID:                 id,
		RegistrationNumber: r.RegistrationNumber,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Email:              r.Email,
		PromotionID:        r.PromotionID,
		PhoneNumber:        r.PhoneNumber,
		DateOfBirth:        r.DateOfBirth,
		Address:            r.Address,
	}
}
