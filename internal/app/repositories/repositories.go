package repositories

import (
	"errors"

	"github.com/yigit/unicampus/internal/db"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repositories holds all the repository instances
type Repositories struct {
	FacultyRepository   *FacultyRepository
	PromotionRepository *PromotionRepository
	StudentRepository   *StudentRepository
}

// NewRepositories initializes all repositories over one shared storage client
func NewRepositories(database *db.DB) *Repositories {
	return &Repositories{
		FacultyRepository:   NewFacultyRepository(database),
		PromotionRepository: NewPromotionRepository(database),
		StudentRepository:   NewStudentRepository(database),
	}
}
