package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/unicampus/internal/app/models"
	appServices "github.com/yigit/unicampus/internal/app/services"
)

// Summary counts the rows CreateDefaultData added
type Summary struct {
	Faculties  int
	Promotions int
	Students   int
}

type defaultPromotion struct {
	promotion appModels.Promotion
	students  []appModels.Student
}

type defaultFaculty struct {
	faculty    appModels.Faculty
	promotions []defaultPromotion
}

func dob(s string) *string { return &s }

var defaults = []defaultFaculty{
	{
		faculty: appModels.Faculty{Name: "Engineering", Description: "Eng dept"},
		promotions: []defaultPromotion{
			{
				promotion: appModels.Promotion{Name: "2024 Batch", AcademicYear: "2023-2024"},
				students: []appModels.Student{
					{RegistrationNumber: "R001", FirstName: "Ada", LastName: "Lovelace", Email: "ada.lovelace@uni.edu", PhoneNumber: "+243 812345678", DateOfBirth: dob("2001-12-10")},
					{RegistrationNumber: "R002", FirstName: "Alan", LastName: "Turing", Email: "alan.turing@uni.edu", DateOfBirth: dob("2002-06-23")},
				},
			},
			{
				promotion: appModels.Promotion{Name: "2025 Batch", AcademicYear: "2024-2025"},
				students: []appModels.Student{
					{RegistrationNumber: "R101", FirstName: "Grace", LastName: "Hopper", Email: "grace.hopper@uni.edu"},
				},
			},
		},
	},
	{
		faculty: appModels.Faculty{Name: "Science", Description: "Mathematics, physics and chemistry"},
		promotions: []defaultPromotion{
			{
				promotion: appModels.Promotion{Name: "L1 Sciences", AcademicYear: "2024-2025"},
				students: []appModels.Student{
					{RegistrationNumber: "S001", FirstName: "Marie", LastName: "Curie", Email: "marie.curie@uni.edu", Address: "5 Rue Pierre et Marie Curie"},
				},
			},
		},
	},
}

// CreateDefaultData adds a small Engineering / Science registry when no faculty
// exists yet. Individual failures are logged and joined so the rest still loads.
func CreateDefaultData(ctx context.Context, svc *appServices.Services, lgr zerolog.Logger) (Summary, error) {
	var summary Summary

	existing, err := svc.FacultyService.GetFaculties(ctx)
	if err != nil {
		return summary, fmt.Errorf("checking existing faculties: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("faculties", len(existing)).Msg("Registry already has data, skipping default data")
		return summary, nil
	}

	lgr.Info().Msg("Creating default data (Faculties/Promotions/Students)...")
	var finalErr error // collect errors without stopping the process

	for _, df := range defaults {
		faculty := df.faculty
		res, err := svc.FacultyService.AddFaculty(ctx, &faculty)
		if err != nil {
			lgr.Error().Err(err).Str("faculty", faculty.Name).Msg("Error creating default faculty")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		summary.Faculties++

		for _, dp := range df.promotions {
			promotion := dp.promotion
			promotion.FacultyID = res.ID
			pres, err := svc.PromotionService.AddPromotion(ctx, &promotion)
			if err != nil {
				lgr.Error().Err(err).Str("promotion", promotion.Name).Msg("Error creating default promotion")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			summary.Promotions++

			for _, st := range dp.students {
				student := st
				student.PromotionID = pres.ID
				if _, err := svc.StudentService.AddStudent(ctx, &student); err != nil {
					lgr.Error().Err(err).Str("registrationNumber", student.RegistrationNumber).Msg("Error creating default student")
					finalErr = errors.Join(finalErr, err)
					continue
				}
				summary.Students++
			}
		}
	}

	lgr.Info().
		Int("faculties", summary.Faculties).
		Int("promotions", summary.Promotions).
		Int("students", summary.Students).
		Msg("Default data created")
	return summary, finalErr
}
