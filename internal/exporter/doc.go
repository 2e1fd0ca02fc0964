// Package exporter writes the cleaned tables produced by the auelect tools.
//
// CSVWriter writes a header and records to a CSV file, optionally prefixed with
// a UTF-8 BOM for Excel. WriteXLSX writes the same rows to a workbook beside it.
// FormatFloat and FormatInt render numbers the way the output files expect.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(logger)
//	err := w.WriteSimpleCSV("data/turnout_by_state.csv", headers, records, false)
//	err = exporter.WriteXLSX(exporter.XLSXPath(path), "turnout", headers, records)
package exporter
