package fertdb

import (
	"context"
	"database/sql"
	"fmt"
)

// ReplaceAll swaps the stored panel for a freshly fetched one. The delete and
// bulk insert run in a single transaction so a failed load leaves the
// previous panel intact. INSERT OR REPLACE on the (iso3, year) primary key
// means a duplicate observation overwrites the earlier one: last seen wins.
func (c *Client) ReplaceAll(ctx context.Context, countries []Country, observations []Observation) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM observations;`); err != nil {
		return fmt.Errorf("error clearing observations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM countries;`); err != nil {
		return fmt.Errorf("error clearing countries: %w", err)
	}

	if err := insertCountries(ctx, tx, countries); err != nil {
		return err
	}
	if err := insertObservations(ctx, tx, observations); err != nil {
		return err
	}

	return tx.Commit()
}

func insertCountries(ctx context.Context, tx *sql.Tx, countries []Country) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO countries (iso3, iso2, name, region)
		VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close() // nolint:errcheck

	for _, country := range countries {
		_, err := stmt.ExecContext(ctx, country.ISO3, country.ISO2, country.Name, country.Region)
		if err != nil {
			return fmt.Errorf("error inserting country %s: %w", country.ISO3, err)
		}
	}
	return nil
}

func insertObservations(ctx context.Context, tx *sql.Tx, observations []Observation) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO observations (iso3, year, kg_per_ha)
		VALUES (?, ?, ?);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close() // nolint:errcheck

	for _, obs := range observations {
		_, err := stmt.ExecContext(ctx, obs.ISO3, obs.Year, obs.KgPerHa)
		if err != nil {
			return fmt.Errorf("error inserting observation %s/%d: %w", obs.ISO3, obs.Year, err)
		}
	}
	return nil
}

// ToNullFloat64 converts an optional value to sql.NullFloat64. A nil pointer
// maps to NULL.
func ToNullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
