package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/hilthontt/personnel/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{3}[)]?[-\s\.]?[0-9]{3}[-\s\.]?[0-9]{4,6}$`)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts the ISO-8601 forms clients send for dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be a valid ISO-8601 date")
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is returned by Struct when one or more fields fail.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

type StructValidator struct {
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
}

var defaultValidator = &StructValidator{}

// Struct validates obj against its `validate` tags using the shared
// validator.
func Struct(obj any) error {
	return defaultValidator.Struct(obj)
}

func (v *StructValidator) Struct(obj any) error {
	v.lazyinit()

	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.translator),
		}
	}
	return out
}

func (v *StructValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())
		v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		departments := mapset.NewSet(domain.Departments...)
		_ = v.validate.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			return departments.Contains(fl.Field().String())
		})
		_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		_ = v.validate.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})

		en := en.New()
		uni := ut.New(en, en)
		v.translator, _ = uni.GetTranslator("en")

		_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)

		v.registerCustomTranslations()
	})
}

func (v *StructValidator) registerCustomTranslations() {
	v.addTranslation("required", "{0} is required")
	v.addTranslation("email", "Please provide a valid email address")
	v.addTranslation("phone", "Please provide a valid phone number")
	v.addTranslation("department", "Invalid department")
	v.addTranslation("iso8601", "Please provide a valid date")
	v.addTranslation("oneof", "{0} must be one of {1}")
	v.addTranslation("gte", "{0} must be a positive number")
	v.addTranslation("min", "{0} must be at least {1} characters")
	v.addTranslation("max", "{0} cannot exceed {1} characters")
}

func (v *StructValidator) addTranslation(tag, text string) {
	_ = v.validate.RegisterTranslation(tag, v.translator, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, fe.Field(), fe.Param())
		return t
	})
}
