package worldbank

import (
	"sort"
	"strconv"

	"fertdash.agstats.org/fertdb"
)

// aggregateRegion marks the API's pseudo-countries (income groups, world
// totals). They carry this region value and are excluded from the panel.
const aggregateRegion = "Aggregates"

type panelKey struct {
	iso3 string
	year int64
}

// NormalizeCountries flattens the raw country list, dropping aggregate
// pseudo-countries and rows without an ISO3 code.
func NormalizeCountries(raw []RawCountry) []fertdb.Country {
	var countries []fertdb.Country
	for _, rec := range raw {
		if rec.ID == "" {
			continue
		}
		if rec.Region.Value == "" || rec.Region.Value == aggregateRegion {
			continue
		}
		countries = append(countries, fertdb.Country{
			ISO3:   rec.ID,
			ISO2:   rec.ISO2Code,
			Name:   rec.Name,
			Region: rec.Region.Value,
		})
	}
	return countries
}

// NormalizeObservations flattens raw indicator records into panel
// observations. Rows for unknown countries (aggregates) or with unparseable
// years are dropped; missing values are preserved as NULL rather than
// coerced to zero. Duplicate (country, year) pairs resolve last-seen-wins.
func NormalizeObservations(raw []RawObservation, countries []fertdb.Country) []fertdb.Observation {
	known := make(map[string]bool, len(countries))
	for _, country := range countries {
		known[country.ISO3] = true
	}

	byKey := make(map[panelKey]fertdb.Observation, len(raw))
	for _, rec := range raw {
		iso3 := rec.CountryISO3
		if iso3 == "" {
			iso3 = rec.Country.ID
		}
		if !known[iso3] {
			continue
		}

		year, err := strconv.ParseInt(rec.Date, 10, 64)
		if err != nil {
			continue
		}

		byKey[panelKey{iso3: iso3, year: year}] = fertdb.Observation{
			ISO3:    iso3,
			Year:    year,
			KgPerHa: fertdb.ToNullFloat64(rec.Value),
		}
	}

	observations := make([]fertdb.Observation, 0, len(byKey))
	for _, obs := range byKey {
		observations = append(observations, obs)
	}
	sort.Slice(observations, func(i, j int) bool {
		if observations[i].ISO3 != observations[j].ISO3 {
			return observations[i].ISO3 < observations[j].ISO3
		}
		return observations[i].Year < observations[j].Year
	})

	return observations
}
