package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(1960))
	assert.NoError(t, ValidateYear(2023))
	assert.Error(t, ValidateYear(1800))
	assert.Error(t, ValidateYear(3000))
}

func TestValidateYearRange(t *testing.T) {
	assert.NoError(t, ValidateYearRange(2010, 2020))
	assert.NoError(t, ValidateYearRange(2020, 2020))
	assert.Error(t, ValidateYearRange(2020, 2010))
	assert.Error(t, ValidateYearRange(1200, 2020))
}

func TestValidateCountryName(t *testing.T) {
	assert.NoError(t, ValidateCountryName("United States"))
	assert.NoError(t, ValidateCountryName("Côte d'Ivoire"))
	assert.NoError(t, ValidateCountryName("Congo (Brazzaville)"))
	assert.Error(t, ValidateCountryName(""))
	assert.Error(t, ValidateCountryName("<script>"))
	assert.Error(t, ValidateCountryName("a; DROP TABLE observations"))
}

func TestValidateISO3(t *testing.T) {
	assert.NoError(t, ValidateISO3("USA"))
	assert.NoError(t, ValidateISO3("fra"))
	assert.Error(t, ValidateISO3("US"))
	assert.Error(t, ValidateISO3("US1"))
	assert.Error(t, ValidateISO3(""))
}
