// Package dataset reads the two source workbooks into in-memory tables and
// memoizes the result per file path. A load happens at most once per path for
// the lifetime of the process unless the cache is explicitly invalidated.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"port-inspection-analytics/internal/config"
	"port-inspection-analytics/internal/logger"
	"port-inspection-analytics/internal/telemetry"
	"port-inspection-analytics/models"

	gocache "github.com/patrickmn/go-cache"
	"github.com/xuri/excelize/v2"
)

// Required authority workbook columns. Date is optional; its absence disables
// the date-range filter downstream.
const (
	ColAuthority  = "Authority"
	ColDate       = "Date"
	ColPhrase     = "Phrase"
	ColScore      = "TF-IDF Score"
	ColVesselName = "Vessel Name"
	ColDeficiency = "Nature of deficiency"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1-2-06",
	time.RFC3339,
}

// MissingColumnError reports a required column absent from a workbook header.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("workbook %s is missing required column %q", e.Path, e.Column)
}

// AuthorityTable is the parsed authority workbook. HasDate records whether the
// optional Date column was present.
type AuthorityTable struct {
	Records []models.AuthorityRecord
	HasDate bool
}

// Store is the memoizing loader for both workbooks. Results are cached keyed
// by path with no expiration; Invalidate flushes everything.
type Store struct {
	authorityPath string
	shipPath      string
	cache         *gocache.Cache
	metrics       *telemetry.Metrics
}

// NewStore creates a Store for the configured workbook paths. metrics may be
// nil (tests, tracing disabled).
func NewStore(cfg *config.Config, metrics *telemetry.Metrics) *Store {
	return &Store{
		authorityPath: cfg.AuthorityDataPath,
		shipPath:      cfg.ShipDataPath,
		cache:         gocache.New(gocache.NoExpiration, 0),
		metrics:       metrics,
	}
}

// Authority returns the memoized authority table, loading it on first use.
func (s *Store) Authority() (*AuthorityTable, error) {
	if cached, found := s.cache.Get(s.authorityPath); found {
		if s.metrics != nil {
			s.metrics.RecordDatasetLoad("authority", true)
		}
		return cached.(*AuthorityTable), nil
	}

	table, err := loadAuthorityWorkbook(s.authorityPath)
	if err != nil {
		logger.Error("Failed to load authority data", "path", s.authorityPath, "error", err)
		return nil, err
	}

	s.cache.Set(s.authorityPath, table, gocache.NoExpiration)
	if s.metrics != nil {
		s.metrics.RecordDatasetLoad("authority", false)
	}
	logger.Info("Authority data loaded", "path", s.authorityPath, "rows", len(table.Records), "has_date", table.HasDate)
	return table, nil
}

// Ships returns the memoized ship deficiency records, loading on first use.
func (s *Store) Ships() ([]models.ShipDeficiencyRecord, error) {
	if cached, found := s.cache.Get(s.shipPath); found {
		if s.metrics != nil {
			s.metrics.RecordDatasetLoad("ship", true)
		}
		return cached.([]models.ShipDeficiencyRecord), nil
	}

	records, err := loadShipWorkbook(s.shipPath)
	if err != nil {
		logger.Error("Failed to load ship data", "path", s.shipPath, "error", err)
		return nil, err
	}

	s.cache.Set(s.shipPath, records, gocache.NoExpiration)
	if s.metrics != nil {
		s.metrics.RecordDatasetLoad("ship", false)
	}
	logger.Info("Ship data loaded", "path", s.shipPath, "rows", len(records))
	return records, nil
}

// Invalidate flushes the memoized tables so the next access re-reads the files.
func (s *Store) Invalidate() {
	s.cache.Flush()
	logger.Info("Dataset cache invalidated")
}

func loadAuthorityWorkbook(path string) (*AuthorityTable, error) {
	rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &AuthorityTable{}, nil
	}

	cols := indexHeader(rows[0])
	for _, required := range []string{ColAuthority, ColPhrase, ColScore} {
		if _, ok := cols[required]; !ok {
			return nil, &MissingColumnError{Path: path, Column: required}
		}
	}
	dateIdx, hasDate := cols[ColDate]

	table := &AuthorityTable{HasDate: hasDate}
	for i, row := range rows[1:] {
		authority := cell(row, cols[ColAuthority])
		phrase := cell(row, cols[ColPhrase])
		if authority == "" && phrase == "" {
			continue
		}

		score, err := strconv.ParseFloat(cell(row, cols[ColScore]), 64)
		if err != nil {
			logger.Warn("Unparseable score cell, using 0", "path", path, "row", i+2, "value", cell(row, cols[ColScore]))
			score = 0
		}

		rec := models.AuthorityRecord{
			Authority: authority,
			Phrase:    phrase,
			Score:     score,
		}
		if hasDate {
			rec.Date = parseDate(cell(row, dateIdx))
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

func loadShipWorkbook(path string) ([]models.ShipDeficiencyRecord, error) {
	rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := indexHeader(rows[0])
	for _, required := range []string{ColVesselName, ColDeficiency} {
		if _, ok := cols[required]; !ok {
			return nil, &MissingColumnError{Path: path, Column: required}
		}
	}

	var records []models.ShipDeficiencyRecord
	for _, row := range rows[1:] {
		vessel := cell(row, cols[ColVesselName])
		deficiency := cell(row, cols[ColDeficiency])
		if vessel == "" && deficiency == "" {
			continue
		}
		records = append(records, models.ShipDeficiencyRecord{
			VesselName: vessel,
			Deficiency: deficiency,
		})
	}

	return records, nil
}

func readFirstSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
