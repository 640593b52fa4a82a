package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/go-playground/validator/v10"
)

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, _, err := parseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// validateStruct прогоняет теги validate и переводит ошибки в ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: describeTag(fe)})
	}
	return newValidationError(fields...)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid uuid"
	case "datetime":
		return "must be a date in format " + fe.Param()
	case "clock":
		return "must be a time in format HH:MM (hour <= 23, minute <= 59)"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

// parseClock разбирает "HH:MM": час не больше 23, минуты не больше 59.
func parseClock(s string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return hour, minute, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// formatClock собирает "HH:MM" из разобранных часа и минут.
func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// squadNumberLess сравнивает номера игроков как числа; нечисловые и пустые уходят в конец.
func squadNumberLess(a, b *string) bool {
	ai, aok := squadNumber(a)
	bi, bok := squadNumber(b)
	switch {
	case aok && bok:
		return ai < bi
	case aok != bok:
		return aok
	default:
		return derefString(a) < derefString(b)
	}
}

func squadNumber(s *string) (int, bool) {
	if s == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	return n, err == nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimmedPtr возвращает nil для пустой после TrimSpace строки.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
