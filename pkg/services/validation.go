// Package services implements the business rules of the data layer on top of
// the repositories: role enforcement, cascade deletes, status history, dense
// checklist ordering, and derived statistics.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct-tag validation on an input DTO and converts the
// first violation into an invalid-input error.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		field := strings.ToLower(violations[0].Field())
		return apperrors.InvalidInput(field, fmt.Sprintf("%s is missing or invalid", field))
	}
	return apperrors.Validation("invalid input", err)
}
