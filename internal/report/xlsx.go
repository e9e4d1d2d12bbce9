package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"oelmerger/internal/oel"
)

// Column width bounds, in characters.
const (
	minColWidth = 12
	maxColWidth = 48
)

// ContentType is the MIME type of WriteWorkbook output.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename is the download name for an export made at t.
func Filename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, t.Format("20060102_150405"))
}

// WriteWorkbook writes m as an xlsx workbook to w.
func WriteWorkbook(w io.Writer, m *oel.Matrix, o Options) error {
	f, err := Workbook(m, o)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// Workbook builds the export workbook: a wrapped, frozen header row, one row
// per interval, status cells filled with the free or used colour.
func Workbook(m *oel.Matrix, o Options) (*excelize.File, error) {
	free, err := fillColor(o.FreeColor)
	if err != nil {
		return nil, err
	}
	used, err := fillColor(o.UsedColor)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := fillWorkbook(f, m, o.SheetName, free, used); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, m *oel.Matrix, sheet, free, used string) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "name sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true}})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	freeStyle, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{free}}})
	if err != nil {
		return errors.Wrap(err, "free style")
	}
	usedStyle, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{used}}})
	if err != nil {
		return errors.Wrap(err, "used style")
	}

	table := Table(m)
	lastCol, err := excelize.ColumnNumberToName(len(table[0]))
	if err != nil {
		return errors.Wrap(err, "last column")
	}

	for r, row := range table {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = v
		}
		anchor, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return errors.Wrap(err, "row anchor")
		}
		if err := f.SetSheetRow(sheet, anchor, &cells); err != nil {
			return errors.Wrapf(err, "write row %d", r+1)
		}
		if r == 0 {
			if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
				return errors.Wrap(err, "style header")
			}
			continue
		}
		for c := FreqColumns; c < len(row); c++ {
			style := usedStyle
			if row[c] == string(oel.Free) {
				style = freeStyle
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.Wrap(err, "status cell")
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return errors.Wrapf(err, "style %s", cell)
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}

	for c, width := range columnWidths(table) {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return errors.Wrap(err, "column name")
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return errors.Wrapf(err, "width of %s", name)
		}
	}
	return nil
}

// columnWidths sizes each column to its longest cell plus padding, between
// minColWidth+2 and maxColWidth.
func columnWidths(table [][]string) []float64 {
	longest := make([]int, len(table[0]))
	for i := range longest {
		longest[i] = minColWidth
	}
	for _, row := range table {
		for c, v := range row {
			if n := len([]rune(v)); n > longest[c] {
				longest[c] = n
			}
		}
	}
	out := make([]float64, len(longest))
	for i, n := range longest {
		out[i] = float64(min(n+2, maxColWidth))
	}
	return out
}

func fillColor(s string) (string, error) {
	hex, err := ParseColor(s)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimPrefix(hex, "#")), nil
}
