// Package session holds the state of one interactive scoring session: the
// reference weights, loaded once, and the most recently loaded variant list.
// A Session is not safe for concurrent use, but its EffectSizeTable may be
// shared with other sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/prscalc/prsparser"
	"github.com/carbocation/prscalc/risk"
	"github.com/carbocation/prscalc/scorer"
	"github.com/carbocation/prscalc/snplist"
)

// ErrNoVariants is returned by Calculate when no variant list has been
// loaded, or the loaded list has no usable rows.
var ErrNoVariants = errors.New("Please load your SNP file.")

type Config struct {
	ReferencePath string
	Layout        prsparser.Layout

	// DosagePath is optional; the default AA/AB/BB mapping is used when empty.
	DosagePath string

	Columns snplist.Columns
	Client  *storage.Client
}

type Session struct {
	Weights prsparser.EffectSizeTable
	Dosages scorer.DosageMapping
	Columns snplist.Columns

	client        *storage.Client
	variants      []snplist.VariantRecord
	variantSource string
	lastLoadErr   error
}

// Outcome is the product of one Calculate call.
type Outcome struct {
	scorer.Result
	Tier risk.Tier
	Text string
}

// New builds a session around an already-loaded table.
func New(weights prsparser.EffectSizeTable, dosages scorer.DosageMapping, cols snplist.Columns, client *storage.Client) *Session {
	if weights == nil {
		weights = prsparser.EffectSizeTable{}
	}
	if dosages == nil {
		dosages = scorer.DefaultDosageMapping()
	}

	return &Session{
		Weights: weights,
		Dosages: dosages,
		Columns: cols,
		client:  client,
	}
}

// Open loads the reference table and dosage mapping described by cfg. Neither
// failure prevents the session from being created: a reference that cannot be
// loaded leaves the table empty, and a dosage file that cannot be loaded
// leaves the default mapping in place. Any such failure is logged and
// returned alongside the usable session.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	var errs []error

	layout := cfg.Layout
	if layout.ColSNP == "" && layout.ColScore == "" {
		layout = prsparser.Layouts[prsparser.DefaultLayout]
	}

	weights, report, err := prsparser.LoadEffectSizeTableFile(ctx, cfg.ReferencePath, layout, cfg.Client)
	if err != nil {
		log.Println(err)
		errs = append(errs, err)
	} else {
		log.Printf("Loaded %d variants from %s (%d rows; %d missing fields; %d non-numeric; %d overwritten by later duplicates)\n",
			report.Loaded, cfg.ReferencePath, report.Rows, report.MissingFields, len(report.Coerced), report.Overwritten)
	}

	dosages := scorer.DefaultDosageMapping()
	if cfg.DosagePath != "" {
		d, err := scorer.LoadDosageMappingFile(ctx, cfg.DosagePath, cfg.Client)
		if err != nil {
			log.Println("Keeping the default dosage mapping:", err)
			errs = append(errs, err)
		} else {
			dosages = d
		}
	}

	cols := cfg.Columns
	if cols.RSID == "" {
		cols.RSID = snplist.DefaultColumns.RSID
	}
	if cols.Genotype == "" {
		cols.Genotype = snplist.DefaultColumns.Genotype
	}

	return New(weights, dosages, cols, cfg.Client), joinErrors(errs)
}

// LoadVariantList replaces the current variant list with the one at path. On
// failure the previous list is kept.
func (s *Session) LoadVariantList(ctx context.Context, path string) (int, error) {
	records, err := snplist.Load(ctx, path, s.Columns, s.client)
	if err != nil {
		s.lastLoadErr = err
		return 0, err
	}

	s.variants = records
	s.variantSource = path
	s.lastLoadErr = nil

	return len(records), nil
}

// Variants returns the current variant list. Callers must not modify it.
func (s *Session) Variants() []snplist.VariantRecord {
	return s.variants
}

// Status describes the variant list in the form shown to the user.
func (s *Session) Status() string {
	switch {
	case s.lastLoadErr != nil:
		return "Error loading SNP file."
	case s.variantSource == "":
		return "SNP List: Not loaded yet"
	}

	return fmt.Sprintf("SNP List: %s", s.variantSource)
}

// Calculate scores the current variant list. It returns ErrNoVariants when
// there is nothing to score.
func (s *Session) Calculate() (Outcome, error) {
	if len(s.variants) == 0 {
		return Outcome{Text: ErrNoVariants.Error()}, ErrNoVariants
	}

	res := scorer.AccumulateScore(s.Weights, s.variants, s.Dosages)
	tier := risk.Classify(res.Score)

	return Outcome{
		Result: res,
		Tier:   tier,
		Text:   risk.Format(res.Score),
	}, nil
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	return openErrors(errs)
}

// openErrors reports every failure seen by Open. Each one stays reachable
// through errors.Is and errors.As.
type openErrors []error

func (e openErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "; ")
}

func (e openErrors) Is(target error) bool {
	for _, err := range e {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func (e openErrors) As(target interface{}) bool {
	for _, err := range e {
		if errors.As(err, target) {
			return true
		}
	}

	return false
}
