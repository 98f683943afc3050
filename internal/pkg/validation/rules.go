package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validation rule patterns
var (
	// EmailPattern accepts anything shaped like local@domain.tld
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// PhonePattern is an optional leading + then at least 8 digits, spaces or dashes
	PhonePattern = `^\+?[\d\s-]{8,}$`

	// AcademicYearPattern is "YYYY-YYYY"
	AcademicYearPattern = `^(\d{4})-(\d{4})$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email        *regexp.Regexp
	Phone        *regexp.Regexp
	AcademicYear *regexp.Regexp
}{
	Email:        regexp.MustCompile(EmailPattern),
	Phone:        regexp.MustCompile(PhonePattern),
	AcademicYear: regexp.MustCompile(AcademicYearPattern),
}

// custom tags and their messages
var customTags = map[string]string{
	"student_email": "{0} must be a valid email address",
	"phone":         "{0} must be a valid phone number",
	"academic_year": "{0} must look like 2023-2024 with consecutive years",
}

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names instead of Go struct names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("student_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return IsValidAcademicYear(fl.Field().String())
	})

	for tag, text := range customTags {
		registerTranslation(tag, text)
	}
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// IsValidEmail reports whether the trimmed value looks like an email address.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.TrimSpace(email))
}

// IsValidPhone reports whether the trimmed value looks like a phone number.
func IsValidPhone(phone string) bool {
	return CompiledPatterns.Phone.MatchString(strings.TrimSpace(phone))
}

// IsValidAcademicYear accepts "YYYY-YYYY" where the second year follows the first.
func IsValidAcademicYear(year string) bool {
	m := CompiledPatterns.AcademicYear.FindStringSubmatch(strings.TrimSpace(year))
	if m == nil {
		return false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return end == start+1
}

// FieldError is one failed rule on one field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by Struct when validation fails
type Errors []FieldError

func (e Errors) Error() string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, "; ")
}

// Struct validates a tagged struct and returns Errors ordered by field name,
// or nil when every rule passes.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fe.Translate(translator)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
