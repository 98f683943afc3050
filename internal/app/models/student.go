package models

import "time"

// Student belongs to exactly one promotion and is unique by registration number and email
type Student struct {
	ID                 int64      `json:"id" db:"id" example:"1"`
	RegistrationNumber string     `json:"registration_number" db:"registration_number" validate:"required,max=20" example:"R001"`
	FirstName          string     `json:"first_name" db:"first_name" validate:"required,max=50" example:"Ada"`
	LastName           string     `json:"last_name" db:"last_name" validate:"required,max=50" example:"Lovelace"`
	Email              string     `json:"email" db:"email" validate:"required,max=100,student_email" example:"ada@uni.edu"`
	PromotionID        int64      `json:"promotion_id" db:"promotion_id" validate:"required,gt=0" example:"1"`
	PhoneNumber        string     `json:"phone_number,omitempty" db:"phone_number" validate:"omitempty,max=15,phone" example:"+243 812345678"`
	DateOfBirth        *string    `json:"date_of_birth,omitempty" db:"date_of_birth" validate:"omitempty,datetime=2006-01-02" example:"2001-05-17"`
	Address            string     `json:"address,omitempty" db:"address" example:"12 Avenue de l'Université"`
	CreatedAt          *time.Time `json:"created_at,omitempty" db:"created_at"`

	// Populated by joined reads
	PromotionName string `json:"promotion_name,omitempty" db:"promotion_name" example:"2024 Batch"`
	FacultyName   string `json:"faculty_name,omitempty" db:"faculty_name" example:"Engineering"`
}

// FullName returns "First Last".
func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	if s.FirstName == "" {
		return s.LastName
	}
	return s.FirstName + " " + s.LastName
}
