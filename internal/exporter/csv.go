package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"crimelens/internal/errors"
	"crimelens/internal/stats"
)

// FileMonthlyCounts is the CSV artifact name.
const FileMonthlyCounts = "monthly_counts.csv"

// writeCSV writes headers and records to path, creating parent directories.
// A UTF-8 BOM is prepended so Excel opens the file with the right encoding.
func writeCSV(path string, headers []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create export directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create csv file", err).
			WithContext("file", path)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return errors.NewStorageError("failed to write BOM", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(headers); err != nil {
		return errors.NewStorageError("failed to write csv headers", err)
	}
	for i, record := range records {
		if err := w.Write(record); err != nil {
			return errors.NewStorageError(
				fmt.Sprintf("failed to write csv record %d", i), err)
		}
	}
	w.Flush()
	return w.Error()
}

// monthlyCountRecords builds the monthly_counts.csv rows: one row per
// calendar period with its count and 12-period rolling mean.
func monthlyCountRecords(monthly []stats.PeriodCount) [][]string {
	counts := make([]float64, len(monthly))
	for i, pc := range monthly {
		counts[i] = float64(pc.Count)
	}
	rolling := stats.RollingMean(counts, 12)

	records := make([][]string, len(monthly))
	for i, pc := range monthly {
		records[i] = []string{
			pc.Period,
			strconv.Itoa(pc.Count),
			strconv.FormatFloat(rolling[i], 'f', 2, 64),
		}
	}
	return records
}
