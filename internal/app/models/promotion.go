package models

import "time"

// Promotion is a cohort of students inside one faculty
type Promotion struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Name         string     `json:"name" db:"name" validate:"required,max=100" example:"2024 Batch"`
	FacultyID    int64      `json:"faculty_id" db:"faculty_id" validate:"required,gt=0" example:"1"`
	AcademicYear string     `json:"academic_year" db:"academic_year" validate:"required,max=9,academic_year" example:"2023-2024"`
	CreatedAt    *time.Time `json:"created_at,omitempty" db:"created_at"`

	// Populated by joined reads
	FacultyName string `json:"faculty_name,omitempty" db:"faculty_name" example:"Engineering"`
}
