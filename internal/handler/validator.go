package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FitQuest_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("action_kind", validateActionKind)
	_ = v.RegisterValidation("quest_type", validateQuestType)
	_ = v.RegisterValidation("quest_metric", validateQuestMetric)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "action_kind":
			errs[field] = "Unknown action kind"
		case "quest_type":
			errs[field] = "Unknown quest type"
		case "quest_metric":
			errs[field] = "Unknown quest metric"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateActionKind(fl validator.FieldLevel) bool {
	return domain.ValidActionKind(domain.ActionKind(fl.Field().String()))
}

func validateQuestType(fl validator.FieldLevel) bool {
	return domain.ValidQuestType(domain.QuestType(strings.ToLower(fl.Field().String())))
}

// empty metric is allowed; nutrition quests infer one
func validateQuestMetric(fl validator.FieldLevel) bool {
	return domain.ValidQuestMetric(domain.QuestMetric(fl.Field().String()))
}
