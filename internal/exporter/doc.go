// Package exporter writes tabular artifacts derived from the incident
// table: a monthly counts CSV and an Excel workbook with one sheet per
// aggregate. Export is optional; the caller decides whether to run it.
package exporter
