package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yigit/unicampus/internal/app/models"
)

// SheetName is the worksheet holding the roster
const SheetName = "Students"

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RosterHeaders lists the roster columns in order
var RosterHeaders = []string{
	"Registration Number", "First Name", "Last Name", "Email", "Phone Number",
	"Date of Birth", "Address", "Promotion", "Faculty",
}

func rosterRow(s *models.Student) []interface{} {
	dob := ""
	if s.DateOfBirth != nil {
		dob = *s.DateOfBirth
	}
	return []interface{}{
		s.RegistrationNumber, s.FirstName, s.LastName, s.Email, s.PhoneNumber,
		dob, s.Address, s.PromotionName, s.FacultyName,
	}
}

// WriteRoster writes the students as an XLSX workbook to w.
func WriteRoster(w io.Writer, students []*models.Student) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &RosterHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rosterRow(s)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
