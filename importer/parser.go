package importer

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row maps a header to the raw cell value under it. Cells keep whatever the
// spreadsheet engine produced: strings, but also numbers or dates rendered
// as strings by excelize.
type Row map[string]string

// Table is the parsed form of an uploaded file.
type Table struct {
	Headers []string
	Rows    []Row
}

// ParseError marks a file that could not be read as tabular data. It is
// fatal to the whole import job, unlike per-row validation failures.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "cannot parse import file: " + e.Reason
}

// ParseFile reads a CSV or XLSX upload into a Table. The format is picked by
// the file name extension, falling back to content sniffing for files
// uploaded without one.
func ParseFile(filename string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	if isXLSX(filename, data) {
		return parseXLSX(data)
	}
	return parseCSV(data)
}

// XLSX files are zip archives, so the magic bytes are PK.
func isXLSX(filename string, data []byte) bool {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		return true
	}
	return len(data) >= 2 && data[0] == 'P' && data[1] == 'K'
}

func parseCSV(data []byte) (*Table, error) {
	// Spreadsheet exports are frequently UTF-8 with a BOM.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	return tableFromRecords(records)
}

// sniffDelimiter picks between comma and semicolon by counting occurrences
// on the first line. Hebrew locale Excel exports CSV with semicolons.
func sniffDelimiter(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func parseXLSX(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	return tableFromRecords(records)
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, &ParseError{Reason: "file has no data rows"}
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := Row{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &ParseError{Reason: "file has no data rows"}
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// DisplayIndex converts a zero-based row position into the row number the
// user sees in their spreadsheet (header is row 1).
func DisplayIndex(position int) int {
	return position + 2
}
