package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yildizm/go-logparser"
)

// LoadOptions tune the file loaders.
type LoadOptions struct {
	// Sheet selects the spreadsheet sheet; empty means the first one.
	Sheet string
	// LogFormat is auto, json, logfmt or text.
	LogFormat string
	// MaxRows truncates the table; 0 means no limit.
	MaxRows int
}

// Formats lists the file extensions Load understands.
func Formats() []string {
	return []string{".csv", ".tsv", ".json", ".jsonl", ".ndjson", ".xlsx", ".log"}
}

// Load reads a dataset file, picking the loader by extension.
func Load(path string, opts LoadOptions) (*Frame, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		f, err := ReadXLSX(path, opts.Sheet)
		if err != nil {
			return nil, err
		}
		return f.Head(opts.MaxRows), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	var f *Frame
	switch ext {
	case ".csv":
		f, err = ReadCSV(file, ',')
	case ".tsv":
		f, err = ReadCSV(file, '\t')
	case ".json":
		f, err = ReadJSON(file)
	case ".jsonl", ".ndjson":
		f, err = ReadJSONL(file)
	case ".log":
		f, err = ReadLog(file, opts.LogFormat)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (supported: %s)", ext, strings.Join(Formats(), ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return f.Head(opts.MaxRows), nil
}

// ReadCSV reads delimited text whose first record is the header.
func ReadCSV(r io.Reader, comma rune) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return NewFrame(records[0], records[1:])
}

// ReadJSON reads a JSON array of objects.
func ReadJSON(r io.Reader) (*Frame, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("expected an array of objects: %w", err)
	}
	return fromRecords(records)
}

// ReadJSONL reads one JSON object per line. Blank lines are skipped.
func ReadJSONL(r io.Reader) (*Frame, error) {
	var records []map[string]any
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX reads one sheet of a workbook. The first row is the header.
func ReadXLSX(path, sheet string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return NewFrame(rows[0], rows[1:])
}

// logColumns are always present in a log table, before any parsed fields.
var logColumns = []string{"timestamp", "level", "message"}

// ReadLog parses a log file into rows of timestamp, level and message plus
// one column per structured field seen in any entry.
func ReadLog(r io.Reader, format string) (*Frame, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var p logparser.Parser
	switch strings.ToLower(format) {
	case "", "auto":
		p = logparser.New()
	case "json":
		p = logparser.NewWithFormat(logparser.FormatJSON)
	case "logfmt":
		p = logparser.NewWithFormat(logparser.FormatLogfmt)
	case "text":
		p = logparser.NewWithFormat(logparser.FormatText)
	default:
		return nil, fmt.Errorf("unknown log format %s. Available formats: auto, json, logfmt, text", format)
	}

	entries, err := p.ParseString(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse logs: %w", err)
	}

	seen := map[string]bool{"timestamp": true, "level": true, "message": true}
	var fields []string
	for _, e := range entries {
		for k := range e.Fields {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	sort.Strings(fields)
	columns := append(append([]string(nil), logColumns...), fields...)

	rows := make([][]string, len(entries))
	for i, e := range entries {
		row := make([]string, 0, len(columns))
		ts := ""
		if !e.Timestamp.IsZero() {
			ts = e.Timestamp.Format(time.RFC3339)
		}
		row = append(row, ts, e.Level, e.Message)
		for _, k := range fields {
			row = append(row, formatCell(e.Fields[k]))
		}
		rows[i] = row
	}
	return NewFrame(columns, rows)
}
