package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"port-inspection-analytics/internal/dataset"
	"port-inspection-analytics/models"
)

// ExportCSV renders the filtered rows as CSV with the same columns as the
// dashboard table. The Date column is emitted only when the source workbook
// had one. Scores use the shortest round-trippable representation so a
// re-parse of the file reproduces the exported values exactly.
func ExportCSV(records []models.AuthorityRecord, hasDate bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{dataset.ColAuthority, dataset.ColPhrase, dataset.ColScore}
	if hasDate {
		header = []string{dataset.ColAuthority, dataset.ColDate, dataset.ColPhrase, dataset.ColScore}
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{rec.Authority, rec.Phrase, strconv.FormatFloat(rec.Score, 'g', -1, 64)}
		if hasDate {
			date := ""
			if !rec.Date.IsZero() {
				date = rec.Date.Format("2006-01-02")
			}
			row = []string{rec.Authority, date, rec.Phrase, strconv.FormatFloat(rec.Score, 'g', -1, 64)}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename names the download after the selected authority and the
// current date, e.g. port_inspection_data_Tokyo_MOU_20260828.csv.
func ExportFilename(authority string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, authority)
	return fmt.Sprintf("port_inspection_data_%s_%s.csv", safe, now.Format("20060102"))
}
