package fertdb

import "context"

// QueryCountries retrieves the country master list ordered by name.
func (c *Client) QueryCountries(ctx context.Context) ([]Country, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT iso3, iso2, name, region
		FROM countries
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var countries []Country
	for rows.Next() {
		var country Country
		err := rows.Scan(&country.ISO3, &country.ISO2, &country.Name, &country.Region)
		if err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}

	return countries, rows.Err()
}

// QueryCountryNames retrieves the distinct country names that actually carry
// observations, for populating the trend selector.
func (c *Client) QueryCountryNames(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT DISTINCT c.name
		FROM countries c
		JOIN observations o ON o.iso3 = c.iso3
		WHERE o.kg_per_ha IS NOT NULL
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// QueryRegions retrieves the distinct regions in the country master list.
func (c *Client) QueryRegions(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT DISTINCT region
		FROM countries
		WHERE region <> ''
		ORDER BY region`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var regions []string
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	return regions, rows.Err()
}
