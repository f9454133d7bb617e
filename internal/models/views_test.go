package models

import (
	"encoding/json"
	"testing"

	"fertdash.agstats.org/fertdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRankingListAssignsRanks(t *testing.T) {
	entries := NewRankingList([]fertdb.RankedConsumer{
		{ISO3: "NZL", Name: "New Zealand", Region: "East Asia & Pacific", KgPerHa: 500},
		{ISO3: "CHN", Name: "China", Region: "East Asia & Pacific", KgPerHa: 350},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "NZL", entries[0].CountryCode)
}

func TestNewTrendSeriesListGroupsByCountry(t *testing.T) {
	series := NewTrendSeriesList(
		[]string{"China", "India"},
		[]fertdb.TrendPoint{
			{Name: "China", Year: 2019, KgPerHa: 350},
			{Name: "China", Year: 2020, KgPerHa: 360},
			{Name: "India", Year: 2020, KgPerHa: 190},
		},
	)

	require.Len(t, series, 2)
	assert.Equal(t, "China", series[0].CountryName)
	require.Len(t, series[0].Points, 2)
	assert.EqualValues(t, 2019, series[0].Points[0].Year)
	require.Len(t, series[1].Points, 1)
}

func TestNewTrendSeriesListEmptySeriesForMissingCountry(t *testing.T) {
	series := NewTrendSeriesList([]string{"Atlantis"}, nil)

	require.Len(t, series, 1)
	assert.Equal(t, "Atlantis", series[0].CountryName)
	assert.NotNil(t, series[0].Points)
	assert.Empty(t, series[0].Points)
}

func TestNewTrendSeriesListDeduplicatesRequest(t *testing.T) {
	series := NewTrendSeriesList([]string{"China", "China"}, nil)
	assert.Len(t, series, 1)
}

func TestNewPanelListPreservesAbsentValues(t *testing.T) {
	entries := NewPanelList([]fertdb.PanelRow{
		{ISO3: "USA", Name: "United States", Region: "North America",
			KgPerHa: fertdb.ToNullFloat64(floatPtr(150))},
		{ISO3: "TCD", Name: "Chad", Region: "Sub-Saharan Africa",
			KgPerHa: fertdb.ToNullFloat64(nil)},
	}, 2020)

	require.Len(t, entries, 2)
	assert.True(t, entries[0].HasData)
	require.NotNil(t, entries[0].KgPerHa)
	assert.EqualValues(t, 150, *entries[0].KgPerHa)

	assert.False(t, entries[1].HasData)
	assert.Nil(t, entries[1].KgPerHa)

	// The absent value serializes as null, never as zero.
	raw, err := json.Marshal(entries[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kgPerHa":null`)
}

func floatPtr(f float64) *float64 {
	return &f
}
