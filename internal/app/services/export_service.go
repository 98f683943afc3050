package services

import (
	"context"
	"fmt"
	"io"

	"github.com/yigit/unicampus/internal/app/repositories"
	"github.com/yigit/unicampus/internal/pkg/export"
	"github.com/yigit/unicampus/internal/pkg/logger"
)

// ExportService writes student rosters
type ExportService interface {
	// Students writes every student as an XLSX workbook and returns how many rows were written
	Students(ctx context.Context, w io.Writer) (int, error)
}

type exportServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewExportService creates a new export service instance
func NewExportService(studentRepo *repositories.StudentRepository) ExportService {
	return &exportServiceImpl{studentRepo: studentRepo}
}

func (s *exportServiceImpl) Students(ctx context.Context, w io.Writer) (int, error) {
	students, err := s.studentRepo.GetStudents(ctx)
	if err != nil {
		return 0, fmt.Errorf("error loading students for export: %w", err)
	}

	if err := export.WriteRoster(w, students); err != nil {
		logger.Error().Err(err).Int("students", len(students)).Msg("Error writing student roster")
		return 0, fmt.Errorf("error writing student roster: %w", err)
	}
	return len(students), nil
}
