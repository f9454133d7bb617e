package utils

import (
	"errors"
	"fmt"
	"regexp"
)

// MaxTrendCountries bounds how many series one trends request may ask for.
const MaxTrendCountries = 10

// The World Bank has no data before 1960; the upper bound just rejects junk.
const (
	MinYear = 1960
	MaxYear = 2100
)

var (
	// Country names: letters, digits, spaces and common punctuation
	// ("Côte d'Ivoire", "Korea, Rep." is passed pre-split so commas are out).
	validCountryNamePattern = regexp.MustCompile(`^[\p{L}0-9 .'()&-]+$`)

	// ISO3 codes
	validISO3Pattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// ValidateYear validates that a year is within the plausible data range.
func ValidateYear(year int64) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return nil
}

// ValidateYearRange validates an inclusive year range.
func ValidateYearRange(yearStart, yearEnd int64) error {
	if err := ValidateYear(yearStart); err != nil {
		return err
	}
	if err := ValidateYear(yearEnd); err != nil {
		return err
	}
	if yearStart > yearEnd {
		return errors.New("start year must not be after end year")
	}
	return nil
}

// ValidateCountryName validates that a country name is safe and within
// reasonable limits.
func ValidateCountryName(name string) error {
	if name == "" {
		return errors.New("country name cannot be empty")
	}
	if len(name) > 100 {
		return errors.New("country name too long (max 100 characters)")
	}
	if !validCountryNamePattern.MatchString(name) {
		return errors.New("country name contains invalid characters")
	}
	return nil
}

// ValidateISO3 validates a three-letter country code.
func ValidateISO3(code string) error {
	if !validISO3Pattern.MatchString(code) {
		return errors.New("country code must be three letters")
	}
	return nil
}
