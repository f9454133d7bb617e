package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseIntParam retrieves an int64 value from the provided URL query
// parameters. If the key is absent it returns the default; an invalid value
// records a field error.
func ParseIntParam(params url.Values, key string, defaultValue int64, fieldErrors map[string][]string) (int64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return defaultValue, fieldErrors
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return defaultValue, fieldErrors
	}
	return n, fieldErrors
}

// ParseYearParam parses a year query parameter and validates its range.
func ParseYearParam(params url.Values, key string, defaultValue int64, fieldErrors map[string][]string) (int64, map[string][]string) {
	year, fieldErrors := ParseIntParam(params, key, defaultValue, fieldErrors)
	if params.Get(key) != "" {
		if err := ValidateYear(year); err != nil {
			fieldErrors[key] = append(fieldErrors[key], err.Error())
		}
	}
	return year, fieldErrors
}

// ParseCountryListParam splits a comma-separated list of country names,
// trimming whitespace and dropping empty entries. An empty parameter yields
// an empty list, which downstream renders as an empty result rather than an
// error.
func ParseCountryListParam(params url.Values, key string, fieldErrors map[string][]string) ([]string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	raw := params.Get(key)
	if raw == "" {
		return nil, fieldErrors
	}

	parts := strings.Split(raw, ",")
	countries := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if err := ValidateCountryName(name); err != nil {
			fieldErrors[key] = append(fieldErrors[key], err.Error())
			continue
		}
		countries = append(countries, name)
	}

	if len(countries) > MaxTrendCountries {
		fieldErrors[key] = append(fieldErrors[key],
			fmt.Sprintf("too many countries (max %d)", MaxTrendCountries))
		countries = countries[:MaxTrendCountries]
	}

	return countries, fieldErrors
}
