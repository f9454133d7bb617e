package models

import "fertdash.agstats.org/fertdb"

// RankingEntry is one row of the overview ranking table
type RankingEntry struct {
	Rank        int     `json:"rank"`
	CountryCode string  `json:"countryCode"`
	CountryName string  `json:"countryName"`
	Region      string  `json:"region"`
	KgPerHa     float64 `json:"kgPerHa"`
}

// NewRankingList converts ranked consumers into view entries, assigning
// ranks by position.
func NewRankingList(consumers []fertdb.RankedConsumer) []RankingEntry {
	entries := make([]RankingEntry, 0, len(consumers))
	for i, consumer := range consumers {
		entries = append(entries, RankingEntry{
			Rank:        i + 1,
			CountryCode: consumer.ISO3,
			CountryName: consumer.Name,
			Region:      consumer.Region,
			KgPerHa:     consumer.KgPerHa,
		})
	}
	return entries
}

// TrendPoint is one (year, value) pair in a country's series
type TrendPoint struct {
	Year    int64   `json:"year"`
	KgPerHa float64 `json:"kgPerHa"`
}

// TrendSeries is the ordered consumption series for one country. Points is
// empty (not null) for countries with no data in range.
type TrendSeries struct {
	CountryName string       `json:"countryName"`
	Points      []TrendPoint `json:"points"`
}

// NewTrendSeriesList groups trend points into one series per requested
// country, preserving the request order. Countries with no data yield an
// empty series rather than being dropped.
func NewTrendSeriesList(requested []string, points []fertdb.TrendPoint) []TrendSeries {
	byCountry := make(map[string]*TrendSeries, len(requested))
	series := make([]TrendSeries, 0, len(requested))

	for _, name := range requested {
		if _, ok := byCountry[name]; ok {
			continue // duplicate request entry
		}
		series = append(series, TrendSeries{CountryName: name, Points: []TrendPoint{}})
		byCountry[name] = &series[len(series)-1]
	}

	for _, point := range points {
		if s, ok := byCountry[point.Name]; ok {
			s.Points = append(s.Points, TrendPoint{Year: point.Year, KgPerHa: point.KgPerHa})
		}
	}

	return series
}

// ChangeEntry is one row of the consumption change table
type ChangeEntry struct {
	CountryCode    string  `json:"countryCode"`
	CountryName    string  `json:"countryName"`
	Region         string  `json:"region"`
	StartKgPerHa   float64 `json:"startKgPerHa"`
	EndKgPerHa     float64 `json:"endKgPerHa"`
	AbsoluteChange float64 `json:"absoluteChange"`
	PercentChange  float64 `json:"percentChange"`
}

// NewChangeList converts change rows into view entries.
func NewChangeList(rows []fertdb.ChangeRow) []ChangeEntry {
	entries := make([]ChangeEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ChangeEntry{
			CountryCode:    row.ISO3,
			CountryName:    row.Name,
			Region:         row.Region,
			StartKgPerHa:   row.StartKgPerHa,
			EndKgPerHa:     row.EndKgPerHa,
			AbsoluteChange: row.AbsoluteChange,
			PercentChange:  row.PercentChange,
		})
	}
	return entries
}

// PanelEntry is one country in a single-year snapshot. KgPerHa is null in
// JSON when the country has no data for the year; it is never zero-filled.
type PanelEntry struct {
	CountryCode string   `json:"countryCode"`
	CountryName string   `json:"countryName"`
	Region      string   `json:"region"`
	Year        int64    `json:"year"`
	KgPerHa     *float64 `json:"kgPerHa"`
	HasData     bool     `json:"hasData"`
}

// NewPanelList converts panel rows into view entries.
func NewPanelList(rows []fertdb.PanelRow, year int64) []PanelEntry {
	entries := make([]PanelEntry, 0, len(rows))
	for _, row := range rows {
		entry := PanelEntry{
			CountryCode: row.ISO3,
			CountryName: row.Name,
			Region:      row.Region,
			Year:        year,
			HasData:     row.KgPerHa.Valid,
		}
		if row.KgPerHa.Valid {
			v := row.KgPerHa.Float64
			entry.KgPerHa = &v
		}
		entries = append(entries, entry)
	}
	return entries
}

// MapObservation is one frame entry for the choropleth time slider
type MapObservation struct {
	CountryCode string  `json:"countryCode"`
	CountryName string  `json:"countryName"`
	Region      string  `json:"region"`
	Year        int64   `json:"year"`
	KgPerHa     float64 `json:"kgPerHa"`
}

// NewMapObservationList converts map rows into view entries.
func NewMapObservationList(rows []fertdb.MapRow) []MapObservation {
	entries := make([]MapObservation, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, MapObservation{
			CountryCode: row.ISO3,
			CountryName: row.Name,
			Region:      row.Region,
			Year:        row.Year,
			KgPerHa:     row.KgPerHa,
		})
	}
	return entries
}

// SummaryModel describes the loaded dataset for the dashboard status panel
type SummaryModel struct {
	Observations int64   `json:"observations"`
	FirstYear    int64   `json:"firstYear"`
	LastYear     int64   `json:"lastYear"`
	Countries    int64   `json:"countries"`
	Regions      int64   `json:"regions"`
	AvgKgPerHa   float64 `json:"avgKgPerHa"`
	PeakKgPerHa  float64 `json:"peakKgPerHa"`
	LastLoaded   string  `json:"lastLoaded"`
}

// NewSummaryModel converts a dataset summary into its view model.
func NewSummaryModel(summary fertdb.Summary, lastLoaded string) SummaryModel {
	return SummaryModel{
		Observations: summary.Observations,
		FirstYear:    summary.FirstYear,
		LastYear:     summary.LastYear,
		Countries:    summary.Countries,
		Regions:      summary.Regions,
		AvgKgPerHa:   summary.AvgKgPerHa,
		PeakKgPerHa:  summary.PeakKgPerHa,
		LastLoaded:   lastLoaded,
	}
}
