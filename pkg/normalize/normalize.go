// Package normalize canonicalizes free-text manufacturer names.
package normalize

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/similarity"
)

// DefaultThreshold is the minimum partial-ratio similarity for an alias match.
const DefaultThreshold = 85.0

// Alias maps one lower-case manufacturer spelling to its canonical name.
type Alias struct {
	Alias     string `yaml:"alias"     json:"alias"`
	Canonical string `yaml:"canonical" json:"canonical"`
}

// DefaultAliases returns the built-in alias table. Order is significant:
// when several aliases match equally well the earliest one wins.
func DefaultAliases() []Alias {
	return []Alias{
		{Alias: "thermo fisher", Canonical: "Thermo Fisher Scientific"},
		{Alias: "thermo", Canonical: "Thermo Fisher Scientific"},
		{Alias: "fisher scientific", Canonical: "Thermo Fisher Scientific"},
		{Alias: "fisher", Canonical: "Thermo Fisher Scientific"},
		{Alias: "vwr", Canonical: "Avantor"},
		{Alias: "avantor", Canonical: "Avantor"},
		{Alias: "milliporesigma", Canonical: "MilliporeSigma"},
		{Alias: "sigma-aldrich", Canonical: "MilliporeSigma"},
		{Alias: "sigma", Canonical: "MilliporeSigma"},
		{Alias: "corning", Canonical: "Corning"},
		{Alias: "falcon", Canonical: "Corning"},
		{Alias: "costar", Canonical: "Corning"},
		{Alias: "eppendorf", Canonical: "Eppendorf"},
		{Alias: "greiner", Canonical: "Greiner Bio-One"},
		{Alias: "usa scientific", Canonical: "USA Scientific"},
		{Alias: "nest", Canonical: "NEST Scientific"},
		{Alias: "qiagen", Canonical: "QIAGEN"},
		{Alias: "neb", Canonical: "NEB"},
		{Alias: "new england biolabs", Canonical: "NEB"},
		{Alias: "promega", Canonical: "Promega"},
		{Alias: "tci", Canonical: "TCI"},
		{Alias: "bd", Canonical: "BD Biosciences"},
		{Alias: "becton dickinson", Canonical: "BD Biosciences"},
		{Alias: "cytiva", Canonical: "Cytiva"},
		{Alias: "ge healthcare", Canonical: "Cytiva"},
	}
}

// Normalizer resolves manufacturer spellings against an alias table.
// It is safe for concurrent use; the table is copied at construction.
type Normalizer struct {
	aliases   []Alias
	threshold float64
	log       *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithThreshold overrides the minimum similarity (0-100) for a match.
func WithThreshold(t float64) Option {
	return func(n *Normalizer) {
		n.threshold = t
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		n.log = l
	}
}

// New creates a Normalizer over the given alias table. A nil table uses
// DefaultAliases.
func New(aliases []Alias, opts ...Option) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	n := &Normalizer{
		aliases:   make([]Alias, 0, len(aliases)),
		threshold: DefaultThreshold,
		log:       slog.Default(),
	}
	for _, a := range aliases {
		n.aliases = append(n.aliases, Alias{
			Alias:     clean(a.Alias),
			Canonical: a.Canonical,
		})
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the canonical manufacturer name for raw, or the trimmed
// input when no alias is close enough. Empty input returns "".
func (n *Normalizer) Normalize(raw string) string {
	name, _ := n.Resolve(raw)
	return name
}

// Resolve is Normalize that also reports whether an alias matched.
func (n *Normalizer) Resolve(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	text := clean(trimmed)
	if strings.TrimSpace(text) == "" {
		return trimmed, false
	}

	bestIdx, bestScore := -1, -1.0
	for i, a := range n.aliases {
		s := similarity.PartialRatio(text, a.Alias)
		if s > bestScore {
			bestIdx, bestScore = i, s
		}
	}

	if bestIdx >= 0 && bestScore >= n.threshold {
		canonical := n.aliases[bestIdx].Canonical
		n.log.Debug("normalized manufacturer",
			"raw", raw,
			"canonical", canonical,
			"score", bestScore,
		)
		return canonical, true
	}

	return trimmed, false
}

// Equal reports whether a and b resolve to the same canonical manufacturer.
// Two empty names are never equal.
func (n *Normalizer) Equal(a, b string) bool {
	na, nb := n.Normalize(a), n.Normalize(b)
	return na != "" && na == nb
}

// clean lower-cases s and drops everything except letters and spaces.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return unicode.ToLower(r)
		case r == ' ':
			return r
		default:
			return -1
		}
	}, strings.ToLower(s))
}
