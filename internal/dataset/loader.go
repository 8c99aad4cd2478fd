package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"crimelens/internal/errors"
)

// dateLayouts are tried in order when parsing the occurrence date. The LA
// open-data portal exports "01/02/2006 12:00:00 AM"; the ISO forms cover
// re-exported extracts.
var dateLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"01/02/2006",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Loader fetches and normalizes the incident dataset.
type Loader struct {
	logger *slog.Logger
	client *http.Client
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	// No client timeout: the single bulk download is allowed to take as
	// long as the transport permits.
	return &Loader{logger: logger, client: &http.Client{}}
}

// Fetch downloads the dataset CSV from url and returns the parsed table.
func (l *Loader) Fetch(ctx context.Context, url string) (*Table, error) {
	l.logger.InfoContext(ctx, "downloading incident dataset", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError("failed to build dataset request", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("dataset download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNetworkError(
			fmt.Sprintf("dataset endpoint returned status %d", resp.StatusCode), nil)
	}

	return l.Read(ctx, resp.Body)
}

// LoadFile reads the dataset from a local CSV file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Table, error) {
	l.logger.InfoContext(ctx, "loading incident dataset from file", slog.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open dataset file", err)
	}
	defer file.Close()

	return l.Read(ctx, file)
}

// Read parses CSV text into the incident table. The header row determines
// the Schema; every data row becomes an Incident with malformed values
// coerced to missing.
func (l *Loader) Read(ctx context.Context, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows become missing values, not errors

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV header", err)
	}

	cols := findColumnIndices(header)
	schema := cols.schema()

	table := &Table{Schema: schema}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read CSV row", err)
		}

		incident := parseRow(row, cols)
		incident.deriveCalendarFields()
		table.Incidents = append(table.Incidents, incident)
	}

	l.logger.InfoContext(ctx, "incident table loaded",
		slog.Int("records", len(table.Incidents)),
		slog.Bool("has_time", schema.HasTime),
		slog.Bool("has_coordinates", schema.HasCoordinates))

	return table, nil
}

// parseRow converts one CSV row into an Incident using the column map.
func parseRow(row []string, cols columnIndices) Incident {
	incident := Incident{
		ReportNumber:  field(row, cols.reportNumber),
		AreaName:      field(row, cols.areaName),
		CrimeDesc:     field(row, cols.crimeDesc),
		VictimSex:     field(row, cols.victimSex),
		VictimDescent: field(row, cols.victimDesc),
		Hour:          MissingHour,
		VictimAge:     MissingAge,
	}

	// Occurrence date with fallback to the reported date.
	if raw := field(row, cols.dateOcc); raw != "" {
		incident.Date = parseDate(raw)
	}
	if incident.Date.IsZero() && cols.dateOcc < 0 {
		incident.Date = parseDate(field(row, cols.dateRptd))
	}

	if cols.timeOcc >= 0 {
		incident.Hour = ParseHour(field(row, cols.timeOcc))
	}
	if cols.victimAge >= 0 {
		incident.VictimAge = parseAge(field(row, cols.victimAge))
	}
	if cols.lat >= 0 && cols.lon >= 0 {
		incident.Lat = parseCoordinate(field(row, cols.lat))
		incident.Lon = parseCoordinate(field(row, cols.lon))
	}

	return incident
}

// field returns the trimmed cell at idx, or "" when the column is absent
// or the row is too short.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate tries the known layouts; unparseable values become the zero time.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseHour derives the hour-of-day from a military time code: the value is
// zero-padded to four characters, truncated to its last four, and the first
// two digits are the hour. Anything that does not yield an hour in 0–23 is
// missing.
func ParseHour(raw string) int {
	if raw == "" {
		return MissingHour
	}
	for len(raw) < 4 {
		raw = "0" + raw
	}
	raw = raw[len(raw)-4:]

	hour, err := strconv.Atoi(raw[:2])
	if err != nil || hour < 0 || hour > 23 {
		return MissingHour
	}
	return hour
}

// parseAge coerces the victim age to an integer; the source mixes integer
// and float renderings.
func parseAge(raw string) int {
	if raw == "" {
		return MissingAge
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) {
		return MissingAge
	}
	return int(value)
}

func parseCoordinate(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
