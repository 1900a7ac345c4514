package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Load errors surfaced to the user. The session is never torn down on a
// load failure; it simply awaits a new upload.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("empty file")
)

// LoadFile parses an uploaded file into a Table, dispatching on the file
// extension. Only .csv and .xlsx are accepted.
func LoadFile(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return LoadCSV(filename, r)
	case ".xlsx":
		return LoadXLSX(filename, r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(filename))
	}
}

// LoadCSV reads a CSV file. The payload is decoded as UTF-8 first and
// falls back to Latin-1 when the bytes are not valid UTF-8.
func LoadCSV(filename string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
	}
	// Strip a UTF-8 BOM so it does not end up in the first header name.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, parseRecord(rec, len(header)))
	}

	return NewTable(filepath.Base(filename), cleanHeader(header), rows), nil
}

// LoadXLSX reads the first sheet of an xlsx workbook. The first row is
// the header, as with CSV.
func LoadXLSX(filename string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, parseRecord(rec, len(header)))
	}
	return NewTable(filepath.Base(filename), cleanHeader(header), rows), nil
}

func parseRecord(rec []string, ncol int) Row {
	row := make(Row, ncol)
	for i := range row {
		if i < len(rec) {
			row[i] = ParseValue(rec[i])
		} else {
			row[i] = Missing()
		}
	}
	return row
}

// cleanHeader trims header names and gives unnamed or colliding columns a
// positional fallback so the name->index map stays unambiguous.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		for seen[name] {
			name += "_" + strconv.Itoa(i+1)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
