package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"port-inspection-analytics/models"
)

func TestExportCSVRoundTrip(t *testing.T) {
	records := []models.AuthorityRecord{
		{Authority: "Tokyo MoU", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Phrase: "fire safety equipment", Score: 0.82},
		{Authority: "Tokyo MoU", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Phrase: "life saving, appliances", Score: 0.61},
	}

	data, err := ExportCSV(records, true)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("expected %d rows incl. header, got %d", len(records)+1, len(rows))
	}

	header := rows[0]
	if header[0] != "Authority" || header[1] != "Date" || header[2] != "Phrase" || header[3] != "TF-IDF Score" {
		t.Fatalf("unexpected header: %v", header)
	}

	for i, rec := range records {
		row := rows[i+1]
		if row[0] != rec.Authority {
			t.Fatalf("row %d authority = %q, want %q", i, row[0], rec.Authority)
		}
		if row[1] != rec.Date.Format("2006-01-02") {
			t.Fatalf("row %d date = %q, want %q", i, row[1], rec.Date.Format("2006-01-02"))
		}
		if row[2] != rec.Phrase {
			t.Fatalf("row %d phrase = %q, want %q", i, row[2], rec.Phrase)
		}
		score, err := strconv.ParseFloat(row[3], 64)
		if err != nil || score != rec.Score {
			t.Fatalf("row %d score = %q, want %v", i, row[3], rec.Score)
		}
	}
}

func TestExportCSVWithoutDateColumn(t *testing.T) {
	records := []models.AuthorityRecord{
		{Authority: "Paris MoU", Phrase: "engine room cleanliness", Score: 0.47},
	}

	data, err := ExportCSV(records, false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(rows[0]) != 3 {
		t.Fatalf("expected 3 columns without Date, got %v", rows[0])
	}
}

func TestExportCSVEmptySubset(t *testing.T) {
	data, err := ExportCSV(nil, true)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)

	got := ExportFilename("Tokyo MoU", now)
	want := "port_inspection_data_Tokyo_MoU_20260828.csv"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}

	got = ExportFilename("Paris/MoU (EU)", now)
	want = "port_inspection_data_Paris_MoU__EU__20260828.csv"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}
