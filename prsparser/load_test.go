package prsparser

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/prscalc"
)

func load(t *testing.T, layout string, input string) (EffectSizeTable, LoadReport) {
	t.Helper()

	table, report, err := LoadEffectSizeTable(strings.NewReader(input), Layouts[layout], "test")
	if err != nil {
		t.Fatal(err)
	}

	return table, report
}

func TestLoadGWASCatalog(t *testing.T) {
	input := "DATE\tSNPS\tOR or BETA\n" +
		"2019\trs1\t0.5\n" +
		"2019\trs2\t-2.0\n" +
		"2019\trs3\tnot_a_number\n" +
		"2019\t\t1.5\n" +
		"2019\trs4\t\n" +
		"2019\trs5\tNA\n" +
		"2019\trs6\n"

	table, report := load(t, "GWASCATALOG", input)

	expected := EffectSizeTable{"rs1": 0.5, "rs2": -2.0}
	if len(table) != len(expected) {
		t.Fatalf("got %v, expected %v", table, expected)
	}
	for k, v := range expected {
		if got, exists := table.Lookup(k); !exists || got != v {
			t.Errorf("%s: got %v (%v), expected %v", k, got, exists, v)
		}
	}

	if _, exists := table.Lookup("rs3"); exists {
		t.Error("rs3 has a non-numeric effect value and must be dropped")
	}

	if report.Rows != 7 || report.Loaded != 2 || report.MissingFields != 4 || report.Overwritten != 0 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(report.Coerced) != 1 || report.Coerced[0].SNP != "rs3" || report.Coerced[0].Row != 4 {
		t.Errorf("unexpected coercion errors %+v", report.Coerced)
	}
}

func TestLoadDuplicateLastWriteWins(t *testing.T) {
	input := "SNPS\tOR or BETA\n" +
		"rs1\t0.5\n" +
		"rs2\t1.0\n" +
		"rs1\t3.25\n" +
		"rs1\tbogus\n"

	table, report := load(t, "GWASCATALOG", input)

	if w, _ := table.Lookup("rs1"); w != 3.25 {
		t.Errorf("rs1: got %v, expected the later weight 3.25", w)
	}
	if table.Len() != 2 {
		t.Errorf("got %d entries, expected 2", table.Len())
	}
	if report.Overwritten != 1 {
		t.Errorf("got %d overwrites, expected 1", report.Overwritten)
	}
}

func TestLoadPGSCatalogComments(t *testing.T) {
	input := "###PGS CATALOG SCORING FILE\n" +
		"#pgs_id=PGS000001\n" +
		"rsID\tchr_name\teffect_allele\teffect_weight\n" +
		"rs10\t1\tA\t0.25\n" +
		"rs11\t2\tC\t-0.75\n"

	table, _ := load(t, "PGSCATALOG", input)
	if table["rs10"] != 0.25 || table["rs11"] != -0.75 || table.Len() != 2 {
		t.Errorf("unexpected table %v", table)
	}
}

func TestLoadHashHeaderWithoutComment(t *testing.T) {
	input := "#CHROM\tID\tBETA\n1\trs1\t0.5\n2\trs2\t-1.5\n"

	for _, v := range []struct {
		Comment  rune
		Expected int
	}{
		{0, 2},
		{'#', -1},
	} {
		layout := Layout{Delimiter: '\t', Comment: v.Comment, ColSNP: "ID", ColScore: "BETA"}
		table, _, err := LoadEffectSizeTable(strings.NewReader(input), layout, "test")
		if v.Expected < 0 {
			var mce prscalc.MissingColumnError
			if !errors.As(err, &mce) {
				t.Errorf("comment %q: expected a missing column, got %v", v.Comment, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("comment %q: %v", v.Comment, err)
			continue
		}
		if table.Len() != v.Expected || table["rs2"] != -1.5 {
			t.Errorf("comment %q: unexpected table %v", v.Comment, table)
		}
	}
}

func TestLoadDetectsDelimiter(t *testing.T) {
	layout := Layout{ColSNP: "snp", ColScore: "beta"}
	table, _, err := LoadEffectSizeTable(strings.NewReader("snp,beta\nrs1,2\nrs2,3\n"), layout, "test")
	if err != nil {
		t.Fatal(err)
	}
	if table["rs1"] != 2 || table["rs2"] != 3 {
		t.Errorf("unexpected table %v", table)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	table, _, err := LoadEffectSizeTable(strings.NewReader("SNPS\tBETA\nrs1\t0.5\n"), Layouts["GWASCATALOG"], "gwas_data.tsv")

	var le *prscalc.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a LoadError, got %v", err)
	}
	if le.Source != "gwas_data.tsv" {
		t.Errorf("got source %q", le.Source)
	}
	var mce prscalc.MissingColumnError
	if !errors.As(err, &mce) || mce.Column != "OR or BETA" {
		t.Errorf("expected the missing column to be named, got %v", err)
	}
	if table == nil || table.Len() != 0 {
		t.Errorf("expected an empty, non-nil table, got %v", table)
	}
}

func TestLoadEmptyInput(t *testing.T) {
	table, _, err := LoadEffectSizeTable(strings.NewReader(""), Layouts["GWASCATALOG"], "empty")
	var le *prscalc.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a LoadError, got %v", err)
	}
	if table == nil || table.Len() != 0 {
		t.Errorf("expected an empty, non-nil table, got %v", table)
	}
}

func TestLoadFileMissing(t *testing.T) {
	table, _, err := LoadEffectSizeTableFile(context.Background(), filepath.Join(t.TempDir(), "gwas_data.tsv"), Layouts["GWASCATALOG"], nil)
	var le *prscalc.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a LoadError, got %v", err)
	}
	if table == nil || table.Len() != 0 {
		t.Errorf("expected an empty, non-nil table, got %v", table)
	}
}

func TestLoadFileGzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gwas_data.tsv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := gzip.NewWriter(f)
	w.Write([]byte("SNPS\tOR or BETA\nrs1\t0.5\n"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	table, report, err := LoadEffectSizeTableFile(context.Background(), path, Layouts["GWASCATALOG"], nil)
	if err != nil {
		t.Fatal(err)
	}
	if table["rs1"] != 0.5 || report.Loaded != 1 {
		t.Errorf("unexpected table %v / report %+v", table, report)
	}
}
