package prsparser

// PRS is one usable row of a reference association table.
type PRS struct {
	SNP   string
	Score float64
}

// EffectSizeTable maps a variant identifier to its effect-size weight. It is
// built once and never mutated afterwards, so it may be shared freely.
type EffectSizeTable map[string]float64

func (t EffectSizeTable) Lookup(snp string) (float64, bool) {
	w, exists := t[snp]
	return w, exists
}

func (t EffectSizeTable) Len() int {
	return len(t)
}
