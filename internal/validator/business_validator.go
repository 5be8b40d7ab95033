package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/wellness-service/internal/models"
)

// Report periods accepted by analytics and export endpoints.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// PeriodDays maps a report period to its window length in days.
var PeriodDays = map[string]int{
	PeriodWeekly:  7,
	PeriodMonthly: 30,
}

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidatePeriod normalizes a report period query value. An empty value
// defaults to weekly; anything else must be a known period.
func (bv *BusinessValidator) ValidatePeriod(period string) (string, ValidationErrors) {
	if period == "" {
		return PeriodWeekly, nil
	}
	if _, ok := PeriodDays[period]; !ok {
		return "", ValidationErrors{{
			Field:   "period",
			Message: "must be weekly or monthly",
			Value:   period,
			Rule:    "report_period",
		}}
	}
	return period, nil
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Mood must be one of the known mood keys
	bv.validate.RegisterValidation("mood_value", func(fl validator.FieldLevel) bool {
		return models.IsValidMood(models.Mood(fl.Field().String()))
	})

	// Stress and energy ratings (1-5)
	bv.validate.RegisterValidation("wellness_scale", func(fl validator.FieldLevel) bool {
		v := fl.Field().Int()
		return v >= 1 && v <= 5
	})

	// Roles are exactly student or parent
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := models.UserRole(fl.Field().String())
		return role == models.RoleStudent || role == models.RoleParent
	})

	// Interface language codes
	bv.validate.RegisterValidation("supported_language", func(fl validator.FieldLevel) bool {
		return models.IsSupportedLanguage(fl.Field().String())
	})

	// Report period (weekly or monthly)
	bv.validate.RegisterValidation("report_period", func(fl validator.FieldLevel) bool {
		_, ok := PeriodDays[fl.Field().String()]
		return ok
	})
}
