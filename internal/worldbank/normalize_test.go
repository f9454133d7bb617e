package worldbank

import (
	"testing"

	"fertdash.agstats.org/fertdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawObservation(iso3, date string, value *float64) RawObservation {
	obs := RawObservation{CountryISO3: iso3, Date: date, Value: value}
	obs.Country.ID = iso3
	return obs
}

func rawCountry(iso3, iso2, name, region string) RawCountry {
	country := RawCountry{ID: iso3, ISO2Code: iso2, Name: name}
	country.Region.Value = region
	return country
}

func value(f float64) *float64 {
	return &f
}

func TestNormalizeCountriesDropsAggregates(t *testing.T) {
	countries := NormalizeCountries([]RawCountry{
		rawCountry("USA", "US", "United States", "North America"),
		rawCountry("WLD", "1W", "World", "Aggregates"),
		rawCountry("XXX", "XX", "No Region", ""),
	})

	require.Len(t, countries, 1)
	assert.Equal(t, "USA", countries[0].ISO3)
	assert.Equal(t, "North America", countries[0].Region)
}

func TestNormalizeObservationsLastSeenWins(t *testing.T) {
	countries := []fertdb.Country{
		{ISO3: "USA", Name: "United States", Region: "North America"},
		{ISO3: "FRA", Name: "France", Region: "Europe & Central Asia"},
	}

	observations := NormalizeObservations([]RawObservation{
		rawObservation("USA", "2019", value(120.5)),
		rawObservation("USA", "2019", value(130.0)),
		rawObservation("FRA", "2019", value(95.0)),
	}, countries)

	require.Len(t, observations, 2)
	assert.Equal(t, "FRA", observations[0].ISO3)
	assert.Equal(t, "USA", observations[1].ISO3)
	assert.EqualValues(t, 130.0, observations[1].KgPerHa.Float64)
}

func TestNormalizeObservationsPreservesAbsentValues(t *testing.T) {
	countries := []fertdb.Country{{ISO3: "FRA", Name: "France", Region: "Europe & Central Asia"}}

	observations := NormalizeObservations([]RawObservation{
		rawObservation("FRA", "2020", nil),
	}, countries)

	require.Len(t, observations, 1)
	assert.False(t, observations[0].KgPerHa.Valid)
	assert.Zero(t, observations[0].KgPerHa.Float64)
}

func TestNormalizeObservationsDropsUnknownCountriesAndBadYears(t *testing.T) {
	countries := []fertdb.Country{{ISO3: "USA", Name: "United States", Region: "North America"}}

	observations := NormalizeObservations([]RawObservation{
		rawObservation("WLD", "2020", value(140)), // aggregate, not in master list
		rawObservation("USA", "not-a-year", value(100)),
		rawObservation("USA", "2020", value(150)),
	}, countries)

	require.Len(t, observations, 1)
	assert.EqualValues(t, 2020, observations[0].Year)
	assert.EqualValues(t, 150, observations[0].KgPerHa.Float64)
}

func TestNormalizeObservationsFallsBackToCountryID(t *testing.T) {
	countries := []fertdb.Country{{ISO3: "USA", Name: "United States", Region: "North America"}}

	obs := RawObservation{Date: "2020", Value: value(150)}
	obs.Country.ID = "USA"

	observations := NormalizeObservations([]RawObservation{obs}, countries)
	require.Len(t, observations, 1)
	assert.Equal(t, "USA", observations[0].ISO3)
}
