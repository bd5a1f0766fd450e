package prsparser

import (
	"sort"
	"strings"
)

// Layout names the two columns of a reference association table that carry
// the variant identifier and its effect size. A zero Delimiter means the
// delimiter is sniffed from the data.
type Layout struct {
	Delimiter rune
	Comment   rune
	ColSNP    string
	ColScore  string
}

var Layouts = map[string]Layout{
	// NHGRI-EBI GWAS Catalog association downloads
	"GWASCATALOG": {
		Delimiter: '\t',
		ColSNP:    "SNPS",
		ColScore:  "OR or BETA",
	},
	// PGS Catalog harmonized scoring files, which carry a block of '#'
	// metadata lines before the header
	"PGSCATALOG": {
		Delimiter: '\t',
		Comment:   '#',
		ColSNP:    "rsID",
		ColScore:  "effect_weight",
	},
}

const DefaultLayout = "GWASCATALOG"

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
