package snplist

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/prscalc"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

type Format int

const (
	FormatDelimited Format = iota
	FormatXLSX
	FormatXLS
)

// DetectFormat chooses a parser from the file extension. Anything that is
// not an Excel workbook is treated as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	}

	return FormatDelimited
}

// Load reads a variant list from a local path, an http(s) URL or a gs://
// object. Workbooks are read as stored; delimited text may be compressed.
// Any failure is returned as a *prscalc.LoadError and no records are
// returned.
func Load(ctx context.Context, path string, cols Columns, client *storage.Client) ([]VariantRecord, error) {
	format := DetectFormat(path)

	data, err := prscalc.ReadAll(ctx, path, client, format == FormatDelimited)
	if err != nil {
		return nil, &prscalc.LoadError{Source: path, Err: err}
	}

	records, err := Parse(data, format, cols)
	if err != nil {
		return nil, &prscalc.LoadError{Source: path, Err: err}
	}

	return records, nil
}

// Parse converts the raw contents of a variant list into records.
func Parse(data []byte, format Format, cols Columns) ([]VariantRecord, error) {
	var (
		grid [][]string
		err  error
	)

	switch format {
	case FormatXLSX:
		grid, err = readXLSX(data)
	case FormatXLS:
		grid, err = readXLS(data)
	default:
		grid, err = readDelimited(data)
	}
	if err != nil {
		return nil, err
	}

	return FromGrid(grid, cols)
}

// FromGrid treats the first row of grid as the header. A data row becomes a
// record if and only if both required cells are present. Row order is
// preserved.
func FromGrid(grid [][]string, cols Columns) ([]VariantRecord, error) {
	if len(grid) == 0 {
		return nil, pfx.Err(fmt.Errorf("No header row"))
	}

	idx, err := prscalc.RequireColumns(grid[0], cols.RSID, cols.Genotype)
	if err != nil {
		return nil, err
	}

	out := make([]VariantRecord, 0, len(grid)-1)
	for i, row := range grid[1:] {
		rsid, ok := prscalc.Field(row, idx[0])
		if !ok {
			continue
		}
		genotype, ok := prscalc.Field(row, idx[1])
		if !ok {
			continue
		}

		out = append(out, VariantRecord{
			RSID:     rsid,
			Genotype: genotype,
			Row:      i + 2,
		})
	}

	return out, nil
}

func readDelimited(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = prscalc.DetermineDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	return grid, nil
}

// readXLSX returns the rows of the first sheet in the workbook.
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, pfx.Err(fmt.Errorf("Workbook has no sheets"))
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, pfx.Err(err)
	}

	return grid, nil
}

// maxXLSCols is the BIFF8 column limit. Rows that only exist because a cell
// referenced them carry no ROW record, so their width is unknown.
const maxXLSCols = 256

// readXLS returns the rows of the first sheet in a legacy BIFF workbook.
func readXLS(data []byte) ([][]string, error) {
	spreadsheet, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}
	if spreadsheet == nil {
		return nil, pfx.Err(fmt.Errorf("No Workbook stream found"))
	}
	if spreadsheet.NumSheets() < 1 {
		return nil, pfx.Err(fmt.Errorf("Workbook has no sheets"))
	}

	sheet := spreadsheet.GetSheet(0)
	if sheet == nil {
		return nil, pfx.Err(fmt.Errorf("Sheet 0 was nil"))
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := xlsRow(sheet, rowID)
		if row == nil {
			// Keep row numbering aligned with the sheet
			grid = append(grid, nil)
			continue
		}

		// LastCol is one past the final cell
		lastCol := row.LastCol()
		if lastCol <= 0 {
			lastCol = maxXLSCols
		}

		cells := make([]string, 0, lastCol)
		for colID := 0; colID < lastCol; colID++ {
			cells = append(cells, row.Col(colID))
		}
		grid = append(grid, trimTrailingEmpty(cells))
	}

	return grid, nil
}

// xlsRow returns nil for rows with no record and no cells. The xls package
// dereferences the missing row and panics in that case.
func xlsRow(sheet *xls.WorkSheet, rowID int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(rowID)
}

func trimTrailingEmpty(cells []string) []string {
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}

	return cells
}
