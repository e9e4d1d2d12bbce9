// types.go
package main

import "oelmerger/internal/passband"

type Flash struct {
	OK  bool
	Msg string
}

type OELView struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Ranges   string             `json:"ranges"`
	Points   int                `json:"points"`
	Segments []passband.Segment `json:"segments"`
	Ignored  []string           `json:"ignored,omitempty"`
}

type PageData struct {
	OELs       []OELView
	Header     []string
	Rows       [][]string
	Intervals  int
	StepGHz    float64
	FreeCount  int
	Columns    []ColumnOption
	Operations []string
	Flash      *Flash
}

type ColumnOption struct {
	Index int
	Name  string
}

type CalculationResult struct {
	Col   string
	Value float64
}

type ResultPage struct {
	Operation string
	Results   []CalculationResult
	Timestamp string
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type IntervalView struct {
	Lower    string   `json:"lower"`
	Center   string   `json:"center"`
	Upper    string   `json:"upper"`
	Statuses []string `json:"statuses"`
	Summary  bool     `json:"summary"`
}

type MatrixView struct {
	StepTHz   string         `json:"step_thz"`
	OELs      []string       `json:"oels"`
	Intervals []IntervalView `json:"intervals"`
}

type ParseView struct {
	Segments []passband.Segment `json:"segments"`
	Points   []string           `json:"points"`
}
