package models

import "time"

// Faculty is the top-level organizational unit owning promotions
type Faculty struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" validate:"required,max=100" example:"Engineering"`
	Description string     `json:"description,omitempty" db:"description" example:"Eng dept"`
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
}
