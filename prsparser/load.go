package prsparser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/prscalc"
)

// LoadReport summarizes what happened to the rows of a reference table.
type LoadReport struct {
	Rows          int
	Loaded        int
	MissingFields int
	Overwritten   int
	Coerced       []CoercionError
}

// LoadEffectSizeTable reads a delimited reference table with a header row.
// Rows missing either field, or whose effect value is not numeric, are
// dropped. When an identifier repeats, the later row's weight replaces the
// earlier one.
//
// On failure the returned table is empty but non-nil and the error is a
// *prscalc.LoadError.
func LoadEffectSizeTable(r io.Reader, layout Layout, source string) (EffectSizeTable, LoadReport, error) {
	table, report, err := loadEffectSizeTable(r, layout)
	if err != nil {
		return EffectSizeTable{}, LoadReport{}, &prscalc.LoadError{Source: source, Err: err}
	}

	return table, report, nil
}

func loadEffectSizeTable(r io.Reader, layout Layout) (EffectSizeTable, LoadReport, error) {
	report := LoadReport{}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, report, pfx.Err(err)
	}

	if layout.Delimiter == 0 {
		layout.Delimiter = prscalc.DetermineDelimiter(data)
	}

	parser, err := NewWithLayout(layout)
	if err != nil {
		return nil, report, pfx.Err(err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = parser.CSVReaderSettings.Comma
	reader.Comment = parser.CSVReaderSettings.Comment
	reader.LazyQuotes = parser.CSVReaderSettings.LazyQuotes
	reader.FieldsPerRecord = parser.CSVReaderSettings.FieldsPerRecord

	header, err := reader.Read()
	if err == io.EOF {
		return nil, report, pfx.Err(fmt.Errorf("No header row"))
	} else if err != nil {
		return nil, report, pfx.Err(err)
	}
	if err := parser.ParseHeader(header); err != nil {
		return nil, report, err
	}

	table := make(EffectSizeTable)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, report, pfx.Err(err)
		}
		report.Rows++

		line, _ := reader.FieldPos(0)
		p, err := parser.ParseRow(line, fields)
		var coerceErr CoercionError
		switch {
		case errors.Is(err, ErrMissingField):
			report.MissingFields++
			continue
		case errors.As(err, &coerceErr):
			report.Coerced = append(report.Coerced, coerceErr)
			continue
		case err != nil:
			return nil, report, err
		}

		if _, exists := table[p.SNP]; exists {
			report.Overwritten++
		}
		table[p.SNP] = p.Score
	}
	report.Loaded = len(table)

	return table, report, nil
}

// LoadEffectSizeTableFile opens path (local, http(s) or gs://, optionally
// compressed) and loads it with LoadEffectSizeTable.
func LoadEffectSizeTableFile(ctx context.Context, path string, layout Layout, client *storage.Client) (EffectSizeTable, LoadReport, error) {
	rc, err := prscalc.Open(ctx, path, client)
	if err != nil {
		return EffectSizeTable{}, LoadReport{}, &prscalc.LoadError{Source: path, Err: err}
	}
	defer rc.Close()

	return LoadEffectSizeTable(rc, layout, path)
}
