package oel

import (
	"github.com/pkg/errors"

	"oelmerger/internal/grid"
)

// Operations accepted by Calculate, in display order.
var Operations = []string{
	"free_count",
	"used_count",
	"free_percent",
	"free_ghz",
	"longest_free_ghz",
	"free_blocks",
}

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrUnsupportedOp = errors.New("unsupported operation")
	ErrNoIntervals   = errors.New("no intervals")
)

// Block is a run of consecutive free intervals from Lower to Upper.
type Block struct {
	Lower grid.Freq
	Upper grid.Freq
}

// Width is the bandwidth of the block.
func (b Block) Width() grid.Freq { return b.Upper - b.Lower }

// FreeBlocks returns the contiguous free spans of column col.
func FreeBlocks(m *Matrix, col int) []Block {
	var (
		out  []Block
		open bool
	)
	for i, st := range m.Column(col) {
		if st != Free {
			open = false
			continue
		}
		if open {
			out[len(out)-1].Upper = m.Upper(i)
			continue
		}
		out = append(out, Block{Lower: m.Edges[i], Upper: m.Upper(i)})
		open = true
	}
	return out
}

// Calculate evaluates op over column col of m. col is an OEL index or
// m.SummaryColumn().
func Calculate(m *Matrix, col int, op string) (float64, error) {
	statuses := m.Column(col)
	if statuses == nil {
		return 0, errors.Wrapf(ErrUnknownColumn, "column %d", col)
	}
	if len(statuses) == 0 {
		return 0, ErrNoIntervals
	}

	free := 0
	for _, st := range statuses {
		if st == Free {
			free++
		}
	}

	switch op {
	case "free_count":
		return float64(free), nil
	case "used_count":
		return float64(len(statuses) - free), nil
	case "free_percent":
		return 100 * float64(free) / float64(len(statuses)), nil
	case "free_ghz":
		return float64(free) * m.Grid.Step().GHz(), nil
	case "longest_free_ghz":
		var longest grid.Freq
		for _, b := range FreeBlocks(m, col) {
			if b.Width() > longest {
				longest = b.Width()
			}
		}
		return longest.GHz(), nil
	case "free_blocks":
		return float64(len(FreeBlocks(m, col))), nil
	default:
		return 0, errors.Wrap(ErrUnsupportedOp, op)
	}
}
