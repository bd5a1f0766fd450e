package scorer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/prscalc"
	"github.com/gocarina/gocsv"
)

// DosageMapping converts a genotype call into the number of risk-allele
// copies it carries. It encodes an assumption about how genotypes are
// written, so it is data supplied by the caller rather than a constant.
type DosageMapping map[string]int

// DefaultDosageMapping returns a fresh copy of the AA/AB/BB convention:
// homozygous reference carries 0 copies, heterozygous 1, homozygous variant 2.
func DefaultDosageMapping() DosageMapping {
	return DosageMapping{
		"AA": 0,
		"AB": 1,
		"BB": 2,
	}
}

func (d DosageMapping) Dosage(genotype string) (int, bool) {
	dosage, exists := d[genotype]
	return dosage, exists
}

// Validate requires at least one genotype, and every dosage to be 0, 1 or 2.
func (d DosageMapping) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("Dosage mapping is empty")
	}
	for genotype, dosage := range d {
		if dosage < 0 || dosage > 2 {
			return fmt.Errorf("Genotype %q has dosage %d; dosages must be 0, 1 or 2", genotype, dosage)
		}
	}

	return nil
}

type dosageRow struct {
	Genotype string `csv:"genotype"`
	Dosage   int    `csv:"dosage"`
}

// LoadDosageMapping reads a tab-delimited file with "genotype" and "dosage"
// columns. A genotype listed twice is an error.
func LoadDosageMapping(r io.Reader) (DosageMapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	header, err := newDosageReader(data).Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("Dosage mapping header: %v", err))
	}
	if _, err := prscalc.RequireColumns(header, "genotype", "dosage"); err != nil {
		return nil, pfx.Err(err)
	}

	rows := []*dosageRow{}
	if err := gocsv.UnmarshalCSV(newDosageReader(data), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(DosageMapping, len(rows))
	for _, row := range rows {
		genotype := strings.TrimSpace(row.Genotype)
		if genotype == "" {
			return nil, pfx.Err(fmt.Errorf("Dosage mapping contains an empty genotype"))
		}
		if _, exists := out[genotype]; exists {
			return nil, pfx.Err(fmt.Errorf("Genotype %q is listed more than once", genotype))
		}
		out[genotype] = row.Dosage
	}

	if err := out.Validate(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

func newDosageReader(data []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'
	reader.Comment = '#'

	return reader
}

// LoadDosageMappingFile opens path and reads it with LoadDosageMapping. Any
// failure is returned as a *prscalc.LoadError.
func LoadDosageMappingFile(ctx context.Context, path string, client *storage.Client) (DosageMapping, error) {
	rc, err := prscalc.Open(ctx, path, client)
	if err != nil {
		return nil, &prscalc.LoadError{Source: path, Err: err}
	}
	defer rc.Close()

	out, err := LoadDosageMapping(rc)
	if err != nil {
		return nil, &prscalc.LoadError{Source: path, Err: err}
	}

	return out, nil
}
