package common

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidationRule checks one string field and describes the failure.
type ValidationRule func(field, value string) error

// Validator collects per-field failures across one request.
type Validator struct {
	problems []string
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field applies each rule to one value, collecting every failure.
func (v *Validator) Field(field, value string, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(field, value); err != nil {
			v.problems = append(v.problems, err.Error())
		}
	}
	return v
}

// Err reports all collected failures wrapped in ErrValidation, so callers
// can map the whole class with errors.Is.
func (v *Validator) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(v.problems, "; "))
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLength(limit int) ValidationRule {
	return func(field, value string) error {
		if utf8.RuneCountInString(value) > limit {
			return fmt.Errorf("%s must be at most %d characters", field, limit)
		}
		return nil
	}
}

func UUIDField(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%s must be a valid UUID", field)
	}
	return nil
}

// OneOf accepts any of the listed values, case-insensitively. An empty
// value passes; combine with Required when the field is mandatory.
func OneOf(allowed ...string) ValidationRule {
	return func(field, value string) error {
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return nil
			}
		}
		return fmt.Errorf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	}
}
