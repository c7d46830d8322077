package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/career-service/internal/models"
)

// BusinessValidator holds the domain rules that go beyond struct tags.
type BusinessValidator struct {
	validate *validator.Validate
}

func newBusinessValidator(validate *validator.Validate) *BusinessValidator {
	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	bv.validate.RegisterValidation("doubt_status", func(fl validator.FieldLevel) bool {
		return models.DoubtStatus(fl.Field().String()).IsValid()
	})

	bv.validate.RegisterValidation("message_sender", func(fl validator.FieldLevel) bool {
		return models.MessageSender(fl.Field().String()).IsValid()
	})
}

// ValidateOwnership rejects access to a doubt owned by someone else.
func (bv *BusinessValidator) ValidateOwnership(doubt *models.Doubt, userID uint) ValidationErrors {
	if doubt.IsOwnedBy(userID) {
		return nil
	}
	return ValidationErrors{{
		Field:   "user_id",
		Message: "does not own this doubt",
		Value:   userID,
		Rule:    "ownership",
	}}
}

// StatusFilter returns the status to filter on, or nil when the value is not a known status.
func (bv *BusinessValidator) StatusFilter(status string) *models.DoubtStatus {
	if err := bv.validate.Var(status, "doubt_status"); err != nil {
		return nil
	}
	s := models.DoubtStatus(status)
	return &s
}

// NormalizeNotes trims resolution notes and maps blank notes to nil.
func (bv *BusinessValidator) NormalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
