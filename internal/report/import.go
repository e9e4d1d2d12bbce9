package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type, want .csv or .xlsx")
	ErrEmptyFile       = errors.New("file has no rows")
	ErrTooManyRows     = errors.New("too many rows")
)

// Entry is one OEL row read from an uploaded file. Line is the 1-based row
// number in the file.
type Entry struct {
	Line     int
	Name     string
	Passband string
}

var (
	nameHeaders     = []string{"name", "oel", "oel name"}
	passbandHeaders = []string{"passband", "ranges", "range"}
)

// ReadEntries reads OEL rows from a CSV or XLSX file. The first row is a
// header; the name and passband columns are located by header text and
// default to the first two columns. maxRows <= 0 means no limit.
func ReadEntries(r io.Reader, filename string, maxRows int) ([]Entry, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readExcel(r)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	if maxRows > 0 && len(rows)-1 > maxRows {
		return nil, errors.Wrapf(ErrTooManyRows, "%d rows, limit %d", len(rows)-1, maxRows)
	}

	nameCol, passCol := locateColumns(rows[0])
	out := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		out = append(out, Entry{
			Line:     i + 2,
			Name:     cell(row, nameCol),
			Passband: cell(row, passCol),
		})
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read CSV")
	}
	return rows, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return rows, nil
}

func locateColumns(header []string) (nameCol, passCol int) {
	nameCol, passCol = -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case nameCol < 0 && contains(nameHeaders, h):
			nameCol = i
		case passCol < 0 && contains(passbandHeaders, h):
			passCol = i
		}
	}
	if nameCol < 0 {
		nameCol = 0
	}
	if passCol < 0 {
		passCol = 1
	}
	return nameCol, passCol
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// String describes where e came from, for skip messages.
func (e Entry) String() string {
	return fmt.Sprintf("line %d (%q)", e.Line, e.Name)
}
