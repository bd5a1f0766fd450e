package prsparser

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/carbocation/prscalc"
)

type PRSParser struct {
	CSVReaderSettings *csv.Reader
	Layout            Layout

	colSNP   int
	colScore int
}

func New(layout string) (*PRSParser, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l)
}

func NewWithLayout(layout Layout) (*PRSParser, error) {
	if layout.ColSNP == "" || layout.ColScore == "" {
		return nil, fmt.Errorf("Layout must name both a SNP column and a score column, got %+v", layout)
	}
	if layout.Comment != 0 && layout.Comment == layout.Delimiter {
		return nil, fmt.Errorf("Layout comment and delimiter must differ, both were %q", layout.Delimiter)
	}

	n := &PRSParser{colSNP: -1, colScore: -1}
	n.Layout = layout
	n.CSVReaderSettings = &csv.Reader{}
	n.CSVReaderSettings.Comma = layout.Delimiter
	n.CSVReaderSettings.Comment = layout.Comment
	n.CSVReaderSettings.LazyQuotes = true
	n.CSVReaderSettings.FieldsPerRecord = -1

	return n, nil
}

// ParseHeader locates the layout's columns. It must succeed before ParseRow
// is used.
func (prsp *PRSParser) ParseHeader(header []string) error {
	cols, err := prscalc.RequireColumns(header, prsp.Layout.ColSNP, prsp.Layout.ColScore)
	if err != nil {
		return err
	}
	prsp.colSNP, prsp.colScore = cols[0], cols[1]

	return nil
}

// ParseRow returns ErrMissingField when either field is absent and a
// CoercionError when the effect value is not a finite number. row is the
// 1-based line number used for reporting.
func (prsp *PRSParser) ParseRow(row int, fields []string) (PRS, error) {
	p := PRS{}
	if prsp.colSNP < 0 {
		return p, fmt.Errorf("ParseRow called before ParseHeader")
	}

	snp, ok := prscalc.Field(fields, prsp.colSNP)
	if !ok {
		return p, ErrMissingField
	}
	raw, ok := prscalc.Field(fields, prsp.colScore)
	if !ok {
		return p, ErrMissingField
	}
	p.SNP = snp

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return p, CoercionError{Row: row, SNP: snp, Value: raw}
	}
	p.Score = score

	return p, nil
}
