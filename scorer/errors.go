package scorer

import "fmt"

type Reason int

const (
	ReasonUnknownVariant Reason = iota
	ReasonUnknownGenotype
	ReasonUnknownVariantAndGenotype
	ReasonNonFinite
)

func (r Reason) String() string {
	switch r {
	case ReasonUnknownVariant:
		return "variant not in reference"
	case ReasonUnknownGenotype:
		return "genotype not recognized"
	case ReasonUnknownVariantAndGenotype:
		return "variant not in reference and genotype not recognized"
	case ReasonNonFinite:
		return "contribution is not a finite number"
	}

	return "unknown"
}

// RowSkipped describes a variant record that did not contribute to the score.
type RowSkipped struct {
	Row      int
	RSID     string
	Genotype string
	Reason   Reason
}

func (e RowSkipped) Error() string {
	return fmt.Sprintf("Row %d: missing data for rsID: %s or genotype: %s (%s)", e.Row, e.RSID, e.Genotype, e.Reason)
}
