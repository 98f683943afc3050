package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yigit/unicampus/internal/app/models"
	"github.com/yigit/unicampus/internal/app/repositories"
)

// otherSection collects names that do not start with a letter
const otherSection = "#"

// DirectorySection is one letter of the student directory
type DirectorySection struct {
	Key      string            `json:"key" example:"A"`
	Students []*models.Student `json:"students"`
}

// DirectoryService defines the searchable student directory
type DirectoryService interface {
	Students(ctx context.Context, query string) ([]DirectorySection, error)
}

type directoryServiceImpl struct {
	studentRepo *repositories.StudentRepository
	lang        language.Tag
}

// NewDirectoryService creates a directory sorted with English collation rules
func NewDirectoryService(studentRepo *repositories.StudentRepository) DirectoryService {
	return &directoryServiceImpl{
		studentRepo: studentRepo,
		lang:        language.English,
	}
}

// Students returns the students matching query, sorted by full name and grouped
// by the first letter of that name. An empty query matches everyone.
func (s *directoryServiceImpl) Students(ctx context.Context, query string) ([]DirectorySection, error) {
	students, err := s.studentRepo.GetStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading student directory: %w", err)
	}

	matched := filterStudents(students, query)

	// collators keep internal buffers and are not safe for concurrent use
	c := collate.New(s.lang, collate.IgnoreCase)
	sort.SliceStable(matched, func(i, j int) bool {
		return c.CompareString(matched[i].FullName(), matched[j].FullName()) < 0
	})

	return groupStudents(matched, c), nil
}

// filterStudents keeps students whose name, registration number or phone number
// contains the query, ignoring case
func filterStudents(students []*models.Student, query string) []*models.Student {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return students
	}

	matched := make([]*models.Student, 0, len(students))
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.FullName()), q) ||
			strings.Contains(strings.ToLower(st.RegistrationNumber), q) ||
			strings.Contains(st.PhoneNumber, q) {
			matched = append(matched, st)
		}
	}
	return matched
}

func sectionKey(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(r) {
		return otherSection
	}
	return string(unicode.ToUpper(r))
}

// groupStudents splits sorted students into sections ordered by key under c,
// with the non-letter section last
func groupStudents(students []*models.Student, c *collate.Collator) []DirectorySection {
	sections := []DirectorySection{}
	index := map[string]int{}
	var other *DirectorySection

	for _, st := range students {
		key := sectionKey(st.FullName())
		if key == otherSection {
			if other == nil {
				other = &DirectorySection{Key: otherSection}
			}
			other.Students = append(other.Students, st)
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(sections)
			index[key] = i
			sections = append(sections, DirectorySection{Key: key})
		}
		sections[i].Students = append(sections[i].Students, st)
	}

	// "Émile" can sort before "Eve", so first appearance is not key order
	sort.SliceStable(sections, func(i, j int) bool {
		return c.CompareString(sections[i].Key, sections[j].Key) < 0
	})

	if other != nil {
		sections = append(sections, *other)
	}
	return sections
}
