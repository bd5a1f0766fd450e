package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"cloud.google.com/go/storage"
	"github.com/carbocation/prscalc"
	_ "github.com/carbocation/prscalc/compileinfoprint"
	"github.com/carbocation/prscalc/prsparser"
	"github.com/carbocation/prscalc/session"
	"github.com/carbocation/prscalc/snplist"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		referencePath  string
		layout         string
		snpColumn      string
		scoreColumn    string
		delimiter      string
		comment        string
		snpPath        string
		rsidColumn     string
		genotypeColumn string
		dosagePath     string
		verbose        bool
	)
	flag.StringVar(&referencePath, "reference", "gwas_data.tsv", "Path to the reference association table (tab-delimited, optionally compressed). May be a gs:// or http(s):// path.")
	flag.StringVar(&layout, "layout", prsparser.DefaultLayout, fmt.Sprint("Layout of the reference table. Currently, options include: ", prsparser.LayoutNames()))
	flag.StringVar(&snpColumn, "snp-column", "", "Optional: name of the variant identifier column in the reference table. Requires --score-column and overrides --layout.")
	flag.StringVar(&scoreColumn, "score-column", "", "Optional: name of the effect size column in the reference table. Requires --snp-column and overrides --layout.")
	flag.StringVar(&delimiter, "delimiter", "tab", "Delimiter of the reference table when using --snp-column: 'tab', 'detect', or a single character.")
	flag.StringVar(&comment, "comment", "", "Optional: single character marking comment lines in the reference table when using --snp-column. By default no line is treated as a comment.")
	flag.StringVar(&snpPath, "snps", "", "Path to your variant list (.xlsx, .xls, or delimited text). May be a gs:// or http(s):// path.")
	flag.StringVar(&rsidColumn, "rsid-column", snplist.DefaultColumns.RSID, "Name of the variant identifier column in your variant list.")
	flag.StringVar(&genotypeColumn, "genotype-column", snplist.DefaultColumns.Genotype, "Name of the genotype column in your variant list.")
	flag.StringVar(&dosagePath, "dosage-map", "", "Optional: tab-delimited file with 'genotype' and 'dosage' columns replacing the default AA=0, AB=1, BB=2 mapping.")
	flag.BoolVar(&verbose, "verbose", false, "Print every variant that did not contribute to the score.")
	flag.Parse()

	cfg := session.Config{
		ReferencePath: referencePath,
		DosagePath:    dosagePath,
		Columns: snplist.Columns{
			RSID:     rsidColumn,
			Genotype: genotypeColumn,
		},
	}

	if snpColumn != "" || scoreColumn != "" {
		if snpColumn == "" || scoreColumn == "" {
			flag.PrintDefaults()
			log.Fatalln("--snp-column and --score-column must be provided together")
		}

		l, err := customLayout(snpColumn, scoreColumn, delimiter, comment)
		if err != nil {
			flag.PrintDefaults()
			log.Fatalln(err)
		}
		cfg.Layout = l

		log.Println("Using custom layout:")
		fmt.Fprintf(os.Stderr, "%+v\n", cfg.Layout)
	} else {
		l, exists := prsparser.Layouts[layout]
		if !exists {
			flag.PrintDefaults()
			log.Fatalf("Layout %s is not found. Valid layout names include: %s\n", layout, prsparser.LayoutNames())
		}
		cfg.Layout = l
	}

	ctx := context.Background()

	if prscalc.NeedsStorageClient(referencePath, snpPath, dosagePath) {
		client, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
		cfg.Client = client
	}

	// A reference that fails to load leaves the table empty; every variant
	// will then be reported as skipped.
	sess, err := session.Open(ctx, cfg)
	if err != nil {
		log.Println("Continuing after load error:", err)
	}

	if snpPath != "" {
		n, err := sess.LoadVariantList(ctx, snpPath)
		if err != nil {
			log.Println(err)
		} else {
			log.Println("SNP data loaded successfully:", n, "usable rows")
		}
	}
	log.Println(sess.Status())

	outcome, err := sess.Calculate()
	if err != nil {
		fmt.Fprintln(STDOUT, outcome.Text)
		return
	}

	if verbose {
		for _, d := range outcome.Diagnostics {
			log.Println(d)
		}
	}
	log.Printf("%d of %d variants contributed to the score; %d were skipped\n", outcome.NIncremented, len(sess.Variants()), len(outcome.Diagnostics))

	fmt.Fprintln(STDOUT, outcome.Text)
}

// customLayout builds a reference layout from the --snp-column family of
// flags.
func customLayout(snpColumn, scoreColumn, delimiter, comment string) (prsparser.Layout, error) {
	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return prsparser.Layout{}, err
	}

	c, err := parseComment(comment)
	if err != nil {
		return prsparser.Layout{}, err
	}
	if c != 0 && c == delim {
		return prsparser.Layout{}, fmt.Errorf("--delimiter and --comment cannot both be %q", c)
	}

	return prsparser.Layout{
		Delimiter: delim,
		Comment:   c,
		ColSNP:    snpColumn,
		ColScore:  scoreColumn,
	}, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "detect":
		return 0, nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--delimiter must be 'tab', 'detect', or a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)

	return r, nil
}

// parseComment returns 0, meaning no comment lines, for an empty flag.
func parseComment(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--comment must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '\t' || r == '\n' || r == '\r' || r == '"' {
		return 0, fmt.Errorf("--comment cannot be %q", r)
	}

	return r, nil
}
