package score

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/similarity"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Strategy names.
const (
	StrategyStructured = "structured"
	StrategyPage       = "page"
	StrategyAuto       = "auto"
)

// titleLimit is the number of characters of each title compared.
const titleLimit = 120

// ErrInvalidWeights is returned when a weight set cannot produce scores in [0,1].
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Weights defines the relative importance of each match signal. Signals a
// strategy does not use should be zero.
type Weights struct {
	PartNumber   float64 `yaml:"part_number"  json:"part_number"`
	Manufacturer float64 `yaml:"manufacturer" json:"manufacturer"`
	Title        float64 `yaml:"title"        json:"title"`
	Pack         float64 `yaml:"pack"         json:"pack"`
	Description  float64 `yaml:"description"  json:"description"`
	Price        float64 `yaml:"price"        json:"price"`
}

// StructuredWeights returns the default weights for item-to-item matching.
func StructuredWeights() Weights {
	return Weights{
		PartNumber:   0.50,
		Manufacturer: 0.20,
		Title:        0.20,
		Pack:         0.10,
	}
}

// PageWeights returns the default weights for matching a single web page.
func PageWeights() Weights {
	return Weights{
		Title:        0.40,
		Manufacturer: 0.30,
		Description:  0.20,
		Price:        0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.PartNumber + w.Manufacturer + w.Title + w.Pack + w.Description + w.Price
}

// IsZero reports whether no weight is set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Validate checks that weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"part_number":  w.PartNumber,
		"manufacturer": w.Manufacturer,
		"title":        w.Title,
		"pack":         w.Pack,
		"description":  w.Description,
		"price":        w.Price,
	} {
		if v < 0 {
			return fmt.Errorf("%s weight %.2f: %w (must be >= 0)", name, v, ErrInvalidWeights)
		}
	}
	if math.Abs(w.Sum()-1) > 1e-6 {
		return fmt.Errorf("weights sum to %.4f: %w (must be 1.0)", w.Sum(), ErrInvalidWeights)
	}
	return nil
}

// Strategy scores one observation against an item's extracted attributes.
type Strategy interface {
	Name() string
	Score(item domain.ExtractedAttributes, obs domain.SourceObservation) domain.MatchBreakdown
}

// Structured scores catalogue-style observations that carry part numbers
// and pack sizes.
type Structured struct {
	weights    Weights
	normalizer *normalize.Normalizer
}

// NewStructured creates the item-to-item strategy.
func NewStructured(n *normalize.Normalizer, w Weights) *Structured {
	return &Structured{weights: w, normalizer: n}
}

// Name returns the strategy name.
func (*Structured) Name() string { return StrategyStructured }

// Score computes the weighted match score.
func (s *Structured) Score(
	item domain.ExtractedAttributes,
	obs domain.SourceObservation,
) domain.MatchBreakdown {
	b := domain.MatchBreakdown{Strategy: StrategyStructured}

	if item.PartNumber != "" && obs.PartNumber != "" &&
		strings.EqualFold(item.PartNumber, obs.PartNumber) {
		b.PartNumber = s.weights.PartNumber
	}

	if item.Manufacturer != "" && obs.Manufacturer != "" &&
		s.normalizer.Equal(item.Manufacturer, obs.Manufacturer) {
		b.Manufacturer = s.weights.Manufacturer
	}

	b.Title = s.weights.Title * titleSimilarity(item.RawName, obs.Title)

	if item.PackQuantity > 0 && item.PackQuantity == obs.PackQuantity {
		b.Pack = s.weights.Pack
	}

	b.Total = clamp(b.PartNumber + b.Manufacturer + b.Title + b.Pack)
	return b
}

// Page scores free-form web page observations that rarely carry
// structured identifiers.
type Page struct {
	weights    Weights
	normalizer *normalize.Normalizer
}

// NewPage creates the single-page strategy.
func NewPage(n *normalize.Normalizer, w Weights) *Page {
	return &Page{weights: w, normalizer: n}
}

// Name returns the strategy name.
func (*Page) Name() string { return StrategyPage }

// Score computes the weighted match score.
func (p *Page) Score(
	item domain.ExtractedAttributes,
	obs domain.SourceObservation,
) domain.MatchBreakdown {
	b := domain.MatchBreakdown{Strategy: StrategyPage}

	b.Title = p.weights.Title * titleSimilarity(item.RawName, obs.Title)

	if p.manufacturerMatches(item.Manufacturer, obs.Manufacturer) {
		b.Manufacturer = p.weights.Manufacturer
	}

	if descriptionMentions(obs.Description, item.RawName) {
		b.Description = p.weights.Description
	}

	if obs.HasPrice() {
		b.Price = p.weights.Price
	}

	b.Total = clamp(b.Title + b.Manufacturer + b.Description + b.Price)
	return b
}

func (p *Page) manufacturerMatches(item, obs string) bool {
	item, obs = strings.TrimSpace(item), strings.TrimSpace(obs)
	if item == "" || obs == "" {
		return false
	}
	if p.normalizer.Equal(item, obs) {
		return true
	}
	li, lo := strings.ToLower(item), strings.ToLower(obs)
	return strings.Contains(lo, li) || strings.Contains(li, lo)
}

// Auto picks the structured strategy when the item has a part number and
// the page strategy otherwise.
type Auto struct {
	structured Strategy
	page       Strategy
}

// NewAuto creates a strategy that dispatches on the item's attributes.
func NewAuto(structured, page Strategy) *Auto {
	return &Auto{structured: structured, page: page}
}

// Name returns the strategy name.
func (*Auto) Name() string { return StrategyAuto }

// For returns the strategy used for item.
func (a *Auto) For(item domain.ExtractedAttributes) Strategy {
	if item.PartNumber != "" {
		return a.structured
	}
	return a.page
}

// Score delegates to the strategy chosen for item.
func (a *Auto) Score(
	item domain.ExtractedAttributes,
	obs domain.SourceObservation,
) domain.MatchBreakdown {
	return a.For(item).Score(item, obs)
}

// NewStrategy builds a strategy by name.
func NewStrategy(name string, n *normalize.Normalizer, structured, page Weights) (Strategy, error) {
	switch name {
	case StrategyStructured:
		return NewStructured(n, structured), nil
	case StrategyPage:
		return NewPage(n, page), nil
	case StrategyAuto, "":
		return NewAuto(NewStructured(n, structured), NewPage(n, page)), nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}

func titleSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return similarity.TokenSortRatio(
		similarity.Truncate(a, titleLimit),
		similarity.Truncate(b, titleLimit),
	) / 100
}

// descriptionMentions reports whether description contains any word of
// name longer than three characters.
func descriptionMentions(description, name string) bool {
	if description == "" || name == "" {
		return false
	}
	desc := strings.ToLower(description)
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if len([]rune(w)) > 3 && strings.Contains(desc, w) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
