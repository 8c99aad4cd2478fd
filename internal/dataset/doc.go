// Package dataset loads the public crime-incident CSV and normalizes it into
// the in-memory incident table used by the rest of the pipeline.
//
// # Data Flow
//
//	CSV (URL or file) → header normalization → Schema detection → Incident rows → calendar derivation
//
// The loader is deliberately forgiving about values and strict about nothing:
// malformed dates, time codes, ages and coordinates become missing values,
// while absent columns are recorded on the Schema so downstream statistics
// and charts can skip themselves explicitly.
package dataset
