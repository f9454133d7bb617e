package fertdb

import "database/sql"

// Country is one row of the country master table
type Country struct {
	ISO3   string // iso3
	ISO2   string // iso2
	Name   string // name
	Region string // region
}

// Observation is one (country, year) cell of the fertilizer panel. An
// invalid KgPerHa means the World Bank reported no value for that year;
// it is stored as NULL, never coerced to zero.
type Observation struct {
	ISO3    string          // iso3
	Year    int64           // year
	KgPerHa sql.NullFloat64 // kg_per_ha
}

// RankedConsumer is one row of the overview ranking
type RankedConsumer struct {
	ISO3    string
	Name    string
	Region  string
	KgPerHa float64
}

// TrendPoint is one (country, year, value) observation in a trend query
type TrendPoint struct {
	Name    string
	Year    int64
	KgPerHa float64
}

// ChangeRow holds the consumption change for one country between two years.
// Rows only exist for countries with a non-null, non-zero start value and a
// non-null end value.
type ChangeRow struct {
	ISO3           string
	Name           string
	Region         string
	StartKgPerHa   float64
	EndKgPerHa     float64
	AbsoluteChange float64
	PercentChange  float64
}

// PanelRow is one country in a single-year snapshot. KgPerHa is invalid for
// countries with no data in that year.
type PanelRow struct {
	ISO3    string
	Name    string
	Region  string
	KgPerHa sql.NullFloat64
}

// MapRow is one observation in the time-slider dataset
type MapRow struct {
	ISO3    string
	Name    string
	Region  string
	Year    int64
	KgPerHa float64
}

// Summary describes the loaded dataset as a whole
type Summary struct {
	Observations int64
	FirstYear    int64
	LastYear     int64
	Countries    int64
	Regions      int64
	AvgKgPerHa   float64
	PeakKgPerHa  float64
}
