package export

import (
	"fmt"
	"io"

	"fertdash.agstats.org/internal/models"
	"github.com/xuri/excelize/v2"
)

const panelSheet = "Panel"

// WritePanelWorkbook writes a single-year panel snapshot as an xlsx
// workbook. Countries without data keep an empty value cell; the status
// column distinguishes them from genuine zeros.
func WritePanelWorkbook(w io.Writer, entries []models.PanelEntry, year int64) error {
	f := excelize.NewFile()
	defer f.Close() // nolint:errcheck

	index, err := f.NewSheet(panelSheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("error removing default sheet: %w", err)
	}

	headers := []string{"Country Code", "Country", "Region", "Year", "Fertilizer (kg/ha)", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(panelSheet, cell, header); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	for rowIdx, entry := range entries {
		status := "no data"
		values := []interface{}{entry.CountryCode, entry.CountryName, entry.Region, year, nil, status}
		if entry.HasData {
			values[4] = *entry.KgPerHa
			values[5] = "ok"
		}

		for colIdx, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(panelSheet, cell, value); err != nil {
				return fmt.Errorf("error writing row %d: %w", rowIdx+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
