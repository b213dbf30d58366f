package service

import (
	"strings"
	"time"

	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// minYear is the earliest year accepted for birth and operation dates
const minYear = 1900

func validateYear(t time.Time, field string) error {
	year := t.Year()
	if year < minYear || year > time.Now().Year() {
		return apperror.NewValidationError(field + " year must be between 1900 and the current year")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
