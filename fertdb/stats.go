package fertdb

import "context"

// QuerySummary describes the loaded dataset: how many observations and
// countries, the year span, and the average/peak consumption. Absent values
// are excluded from every figure.
func (c *Client) QuerySummary(ctx context.Context) (Summary, error) {
	var summary Summary

	err := c.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(MIN(year), 0),
			COALESCE(MAX(year), 0),
			COUNT(DISTINCT iso3),
			COALESCE(AVG(kg_per_ha), 0),
			COALESCE(MAX(kg_per_ha), 0)
		FROM observations
		WHERE kg_per_ha IS NOT NULL`).Scan(
		&summary.Observations,
		&summary.FirstYear,
		&summary.LastYear,
		&summary.Countries,
		&summary.AvgKgPerHa,
		&summary.PeakKgPerHa,
	)
	if err != nil {
		return Summary{}, err
	}

	err = c.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT region) FROM countries WHERE region <> ''`,
	).Scan(&summary.Regions)
	if err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// LatestYear returns the most recent year with at least one non-null
// observation, or 0 when the panel is empty.
func (c *Client) LatestYear(ctx context.Context) (int64, error) {
	var year int64
	err := c.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(year), 0)
		FROM observations
		WHERE kg_per_ha IS NOT NULL`).Scan(&year)
	return year, err
}
