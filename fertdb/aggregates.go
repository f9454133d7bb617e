package fertdb

import (
	"context"
	"strings"
)

// QueryTopConsumers retrieves the highest-consuming countries for a year,
// descending by value with ties broken by country name. Countries without a
// value for the year never appear. Region may be empty to include all regions.
func (c *Client) QueryTopConsumers(ctx context.Context, year int64, region string, limit int64) ([]RankedConsumer, error) {
	query := `
		SELECT c.iso3, c.name, c.region, o.kg_per_ha
		FROM observations o
		JOIN countries c ON c.iso3 = o.iso3
		WHERE o.year = ? AND o.kg_per_ha IS NOT NULL`
	args := []interface{}{year}

	if region != "" {
		query += ` AND c.region = ?`
		args = append(args, region)
	}

	query += `
		ORDER BY o.kg_per_ha DESC, c.name ASC
		LIMIT ?`
	args = append(args, limit)

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var consumers []RankedConsumer
	for rows.Next() {
		var consumer RankedConsumer
		err := rows.Scan(&consumer.ISO3, &consumer.Name, &consumer.Region, &consumer.KgPerHa)
		if err != nil {
			return nil, err
		}
		consumers = append(consumers, consumer)
	}

	return consumers, rows.Err()
}

// QueryTrends retrieves the (year, value) sequences for the named countries
// within the year range, ordered by country then year. Countries with no
// data in range simply contribute no rows. An empty country list returns no
// rows rather than an error.
func (c *Client) QueryTrends(ctx context.Context, countries []string, yearStart, yearEnd int64) ([]TrendPoint, error) {
	if len(countries) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(countries))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(countries)+2)
	for _, name := range countries {
		args = append(args, name)
	}
	args = append(args, yearStart, yearEnd)

	rows, err := c.DB.QueryContext(ctx, `
		SELECT c.name, o.year, o.kg_per_ha
		FROM observations o
		JOIN countries c ON c.iso3 = o.iso3
		WHERE c.name IN (`+placeholders+`)
			AND o.year BETWEEN ? AND ?
			AND o.kg_per_ha IS NOT NULL
		ORDER BY c.name, o.year`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var points []TrendPoint
	for rows.Next() {
		var point TrendPoint
		err := rows.Scan(&point.Name, &point.Year, &point.KgPerHa)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, rows.Err()
}

// QueryChange computes consumption change between two years for every country
// with a value at both endpoints, ordered by absolute change descending.
// Countries missing either endpoint are excluded by the inner joins, and a
// zero start value excludes the row since the percent change is undefined.
func (c *Client) QueryChange(ctx context.Context, yearStart, yearEnd int64) ([]ChangeRow, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT
			c.iso3,
			c.name,
			c.region,
			s.kg_per_ha AS start_kg_per_ha,
			e.kg_per_ha AS end_kg_per_ha,
			e.kg_per_ha - s.kg_per_ha AS absolute_change,
			ROUND((e.kg_per_ha - s.kg_per_ha) / s.kg_per_ha * 100, 1) AS percent_change
		FROM countries c
		JOIN observations s ON s.iso3 = c.iso3 AND s.year = ? AND s.kg_per_ha IS NOT NULL
		JOIN observations e ON e.iso3 = c.iso3 AND e.year = ? AND e.kg_per_ha IS NOT NULL
		WHERE s.kg_per_ha <> 0
		ORDER BY absolute_change DESC, c.name ASC`, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var changes []ChangeRow
	for rows.Next() {
		var change ChangeRow
		err := rows.Scan(&change.ISO3, &change.Name, &change.Region,
			&change.StartKgPerHa, &change.EndKgPerHa,
			&change.AbsoluteChange, &change.PercentChange,
		)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	return changes, rows.Err()
}

// QueryPanel retrieves the full per-country snapshot for one year. Countries
// with no observation that year are included with a NULL value so the map
// can shade them as "no data".
func (c *Client) QueryPanel(ctx context.Context, year int64) ([]PanelRow, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT c.iso3, c.name, c.region, o.kg_per_ha
		FROM countries c
		LEFT JOIN observations o ON o.iso3 = c.iso3 AND o.year = ?
		ORDER BY c.name`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var panel []PanelRow
	for rows.Next() {
		var row PanelRow
		err := rows.Scan(&row.ISO3, &row.Name, &row.Region, &row.KgPerHa)
		if err != nil {
			return nil, err
		}
		panel = append(panel, row)
	}

	return panel, rows.Err()
}

// QueryMapData retrieves every non-null observation from sinceYear onward,
// ordered by year then value descending, for the choropleth time slider.
func (c *Client) QueryMapData(ctx context.Context, sinceYear int64) ([]MapRow, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT c.iso3, c.name, c.region, o.year, o.kg_per_ha
		FROM observations o
		JOIN countries c ON c.iso3 = o.iso3
		WHERE o.year >= ? AND o.kg_per_ha IS NOT NULL
		ORDER BY o.year, o.kg_per_ha DESC`, sinceYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var mapRows []MapRow
	for rows.Next() {
		var row MapRow
		err := rows.Scan(&row.ISO3, &row.Name, &row.Region, &row.Year, &row.KgPerHa)
		if err != nil {
			return nil, err
		}
		mapRows = append(mapRows, row)
	}

	return mapRows, rows.Err()
}
