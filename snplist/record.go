package snplist

// VariantRecord is one usable row of a user's variant list. Row is the
// 1-based row number in the source, with the header as row 1.
type VariantRecord struct {
	RSID     string
	Genotype string
	Row      int
}

// Columns names the header cells that hold the identifier and the genotype.
type Columns struct {
	RSID     string
	Genotype string
}

var DefaultColumns = Columns{
	RSID:     "rsID",
	Genotype: "Genotype",
}
