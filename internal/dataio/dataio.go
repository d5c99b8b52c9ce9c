// Package dataio reads and writes the tabular test-data files the suites
// consume: CSV, JSON, plain text, XML, and Excel workbooks.
package dataio

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/probelab/uiharness/internal/errs"
)

// ReadCSV loads a CSV file including its header row.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, "open csv", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "parse csv", err)
	}
	return rows, nil
}

// WriteCSV writes rows to path, creating or truncating it.
func WriteCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.Internal, "create csv", err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return errs.Wrap(errs.Internal, "write csv", err)
	}
	return f.Close()
}

// AppendCSVRow appends one record to an existing CSV file.
func AppendCSVRow(path string, row []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.Wrap(errs.NotFound, "open csv for append", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return errs.Wrap(errs.Internal, "append csv row", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errs.Wrap(errs.Internal, "flush csv", err)
	}
	return f.Close()
}

// DeleteCSVRows rewrites the file keeping only rows for which keep returns
// true. The header row (index 0) is always kept. Returns how many rows were
// dropped.
func DeleteCSVRows(path string, keep func(row []string) bool) (int, error) {
	rows, err := ReadCSV(path)
	if err != nil {
		return 0, err
	}
	kept := rows[:0]
	dropped := 0
	for i, row := range rows {
		if i == 0 || keep(row) {
			kept = append(kept, row)
			continue
		}
		dropped++
	}
	if dropped == 0 {
		return 0, nil
	}
	return dropped, WriteCSV(path, kept)
}

// ReadCSVMaps loads a CSV file as one map per data row, keyed by the header
// row.
func ReadCSVMaps(path string) ([]map[string]string, error) {
	rows, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// UpdateCSVRows rewrites every data row for which match returns true using
// update. The header row is never touched. Returns how many rows changed.
func UpdateCSVRows(path string, match func(row []string) bool, update func(row []string) []string) (int, error) {
	rows, err := ReadCSV(path)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := 1; i < len(rows); i++ {
		if match(rows[i]) {
			rows[i] = update(rows[i])
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, WriteCSV(path, rows)
}

// Remove deletes a test-data file. Missing files are not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.Internal, "remove file", err)
	}
	return nil
}

// ReadJSON decodes a JSON file into out.
func ReadJSON(path string, out any) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.NotFound, "read json", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errs.Wrap(errs.Internal, "parse json", err)
	}
	return nil
}

// WriteJSON encodes v into path with two-space indentation.
func WriteJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.Wrap(errs.Internal, "encode json", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return errs.Wrap(errs.Internal, "write json", err)
	}
	return nil
}

// ReadLines loads a text file as trimmed, non-empty lines.
func ReadLines(path string) ([]string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, "read text file", err)
	}
	var lines []string
	for _, line := range strings.Split(string(payload), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// AppendLine adds one line to a text file, creating it if needed.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.Wrap(errs.Internal, "open text file", err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return errs.Wrap(errs.Internal, "append line", err)
	}
	return f.Close()
}

// ReadXML decodes an XML file into out.
func ReadXML(path string, out any) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.NotFound, "read xml", err)
	}
	if err := xml.Unmarshal(payload, out); err != nil {
		return errs.Wrap(errs.Internal, "parse xml", err)
	}
	return nil
}

// WriteXML encodes v into path with a standard XML header.
func WriteXML(path string, v any) error {
	payload, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.Wrap(errs.Internal, "encode xml", err)
	}
	payload = append([]byte(xml.Header), payload...)
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return errs.Wrap(errs.Internal, "write xml", err)
	}
	return nil
}

// ReadSheet loads all rows of one worksheet from an Excel workbook.
func ReadSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, "open workbook", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, "read sheet "+sheet, err)
	}
	return rows, nil
}

// WriteSheet writes rows into one worksheet of a new workbook at path.
func WriteSheet(path, sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return errs.Wrap(errs.Internal, "create sheet "+sheet, err)
	}
	f.SetActiveSheet(index)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errs.Wrap(errs.Internal, "cell name", err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errs.Wrap(errs.Internal, "write sheet row", err)
		}
	}
	if sheet != "Sheet1" {
		// drop the default sheet so the workbook holds only ours
		_ = f.DeleteSheet("Sheet1")
	}
	if err := f.SaveAs(path); err != nil {
		return errs.Wrap(errs.Internal, "save workbook", err)
	}
	return nil
}

// UpdateCell sets a single cell in an existing workbook.
func UpdateCell(path, sheet, cell string, value any) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return errs.Wrap(errs.NotFound, "open workbook", err)
	}
	defer f.Close()
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return errs.Wrap(errs.Internal, "set cell "+cell, err)
	}
	if err := f.Save(); err != nil {
		return errs.Wrap(errs.Internal, "save workbook", err)
	}
	return nil
}
