package service

import (
	"regexp"
	"strings"

	"accounts-api/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateAccountRequest checks the field constraints on an account payload.
// Returns a *models.ValidationError describing the first violation.
func ValidateAccountRequest(req *models.AccountRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &models.ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(req.Surname) == "" {
		return &models.ValidationError{Field: "surname", Message: "surname is required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return &models.ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailPattern.MatchString(req.Email) {
		return &models.ValidationError{Field: "email", Message: "email must be valid"}
	}
	if req.BirthDate != nil && !req.BirthDate.InPast() {
		return &models.ValidationError{Field: "birth_date", Message: "birth date must be in the past"}
	}
	if req.Active == nil {
		return &models.ValidationError{Field: "active", Message: "active status is required"}
	}

	return nil
}

// ValidateInstrumentRequest checks the field constraints on an instrument payload.
func ValidateInstrumentRequest(req *models.InstrumentRequest) error {
	if strings.TrimSpace(req.Number) == "" {
		return &models.ValidationError{Field: "number", Message: "card number is required"}
	}
	if strings.TrimSpace(req.Holder) == "" {
		return &models.ValidationError{Field: "holder", Message: "card holder is required"}
	}
	if req.ExpirationDate == nil {
		return &models.ValidationError{Field: "expiration_date", Message: "expiration date is required"}
	}
	if req.Active == nil {
		return &models.ValidationError{Field: "active", Message: "active status is required"}
	}

	return nil
}

// validationError wraps a field violation into the service error taxonomy
func validationError(err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}
