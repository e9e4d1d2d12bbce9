// Package report turns a status matrix into the artefacts users look at:
// the spreadsheet export, the interval chart, and the table both are built
// from. It also reads OEL lists back from CSV and XLSX uploads.
package report

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1"

	"oelmerger/internal/oel"
)

// Column headers of the frequency columns.
const (
	HeaderLowerEdge = "Edge Freq (THz)"
	HeaderCenter    = "Central Freq (THz)"
	HeaderUpperEdge = "Edge Freq (THz)"
)

// FreqColumns is the number of leading frequency columns in a table row.
const FreqColumns = 3

// Options control how reports look.
type Options struct {
	SheetName  string
	FreeColor  string
	UsedColor  string
	AssetsHost string
}

// DefaultOptions matches the colours of the original spreadsheet export.
func DefaultOptions() Options {
	return Options{
		SheetName: "oel_merged",
		FreeColor: "#92D050",
		UsedColor: "#FF0000",
	}
}

// ParseColor validates a "#rgb" or "#rrggbb" colour and returns it as
// lower case "#rrggbb".
func ParseColor(s string) (string, error) {
	hex, err := colors.ParseHEX(strings.TrimSpace(s))
	if err != nil {
		return "", errors.Wrapf(err, "invalid colour %q", s)
	}
	return hex.ToRGB().ToHEX().String(), nil
}

// Header returns the table header for m.
func Header(m *oel.Matrix) []string {
	out := make([]string, 0, FreqColumns+m.Columns())
	out = append(out, HeaderLowerEdge, HeaderCenter, HeaderUpperEdge)
	out = append(out, m.Names...)
	return append(out, oel.SummaryName)
}

// Row returns interval i of m as table cells: lower edge, centre, upper
// edge, one status per OEL, then the summary.
func Row(m *oel.Matrix, i int) []string {
	out := make([]string, 0, FreqColumns+m.Columns())
	out = append(out, m.Edges[i].String(), m.Center(i).String(), m.Upper(i).String())
	for _, st := range m.Rows[i] {
		out = append(out, string(st))
	}
	return append(out, string(m.SummaryStatus(i)))
}

// Table is Header followed by every Row.
func Table(m *oel.Matrix) [][]string {
	out := make([][]string, 0, len(m.Edges)+1)
	out = append(out, Header(m))
	for i := range m.Edges {
		out = append(out, Row(m, i))
	}
	return out
}
