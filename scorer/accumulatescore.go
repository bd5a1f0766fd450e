package scorer

import (
	"math"

	"github.com/carbocation/prscalc/snplist"
)

// Weights is satisfied by prsparser.EffectSizeTable.
type Weights interface {
	Lookup(snp string) (float64, bool)
}

type Result struct {
	Score        float64
	NIncremented int
	Diagnostics  []RowSkipped
}

// AccumulateScore sums dosage*weight over every record whose identifier is in
// weights and whose genotype is in dosages. Records that cannot be scored are
// skipped and reported in order; they never abort the pass. The result
// depends only on the arguments.
func AccumulateScore(weights Weights, records []snplist.VariantRecord, dosages DosageMapping) Result {
	res := Result{}

	for _, rec := range records {
		weight, haveWeight := weights.Lookup(rec.RSID)
		dosage, haveDosage := dosages.Dosage(rec.Genotype)

		if !haveWeight || !haveDosage {
			res.Diagnostics = append(res.Diagnostics, RowSkipped{
				Row:      rec.Row,
				RSID:     rec.RSID,
				Genotype: rec.Genotype,
				Reason:   skipReason(haveWeight, haveDosage),
			})
			continue
		}

		contribution := float64(dosage) * weight
		if math.IsNaN(contribution) || math.IsInf(contribution, 0) {
			res.Diagnostics = append(res.Diagnostics, RowSkipped{
				Row:      rec.Row,
				RSID:     rec.RSID,
				Genotype: rec.Genotype,
				Reason:   ReasonNonFinite,
			})
			continue
		}

		res.Score += contribution
		res.NIncremented++
	}

	return res
}

func skipReason(haveWeight, haveDosage bool) Reason {
	switch {
	case !haveWeight && !haveDosage:
		return ReasonUnknownVariantAndGenotype
	case !haveWeight:
		return ReasonUnknownVariant
	}

	return ReasonUnknownGenotype
}
