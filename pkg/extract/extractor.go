// Package extract derives structured product attributes from free-text
// inventory item names.
package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// partNumberPatterns is the ordered part-number cascade. Capture group 1 of
// each pattern holds the candidate. Earlier patterns take priority.
var partNumberPatterns = []*regexp.Regexp{
	// Catalog/ref/SKU/PN/part/model-prefixed tokens.
	regexp.MustCompile(`(?i)(?:cat[.:]?\s*#?\s*|ref\s*#?\s*|sku\s*#?\s*|pn\s*#?\s*|part\s*#?\s*|model\s*#?\s*)?([A-Za-z0-9][A-Za-z0-9\-_/.]{2,})`),
	// Catalog/item/product-prefixed tokens.
	regexp.MustCompile(`(?i)(?:catalog\s*#?\s*|item\s*#?\s*|product\s*#?\s*)?([A-Za-z0-9][A-Za-z0-9\-_/.]{2,})`),
	// Brand style LETTERS+DIGITS.
	regexp.MustCompile(`(?i)([A-Z]{2,}\d{3,})`),
	// DIGITS+LETTERS.
	regexp.MustCompile(`(?i)(\d{4,}[A-Z]+)`),
}

// noiseCutoff removes everything from the first packaging word onward so
// those words are never read as part numbers.
var noiseCutoff = regexp.MustCompile(
	`(?i)\b(pack|case|cs|ea|each|pk|bx|rl|bag|sterile|non-sterile|box|tube|flask|dish)\b.*`,
)

var packQuantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:pack|case|box|bx|cs|pk)\s*of\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*(?:pack|case|box|bx|cs|pk)`),
	regexp.MustCompile(`(\d+)\s*(?:ea|each|pieces?|units?)`),
}

type unitKeywords struct {
	unit     domain.UnitType
	keywords []string
}

// unitVocabulary is checked in order; the first unit with any keyword
// present in the text wins.
var unitVocabulary = []unitKeywords{
	{domain.UnitTips, []string{"tip", "tips", "pipette tip"}},
	{domain.UnitTubes, []string{"tube", "tubes", "test tube", "centrifuge tube"}},
	{domain.UnitFlasks, []string{"flask", "flasks", "culture flask", "erlenmeyer"}},
	{domain.UnitDishes, []string{"dish", "dishes", "petri dish", "culture dish"}},
	{domain.UnitPlates, []string{"plate", "plates", "microplate", "well plate"}},
	{domain.UnitSyringes, []string{"syringe", "syringes"}},
	{domain.UnitBottles, []string{"bottle", "bottles", "reagent bottle"}},
	{domain.UnitBeakers, []string{"beaker", "beakers"}},
	{domain.UnitPipettes, []string{"pipette", "pipettes"}},
}

// Extractor parses raw item names into ExtractedAttributes. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	normalizer *normalize.Normalizer
	log        *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

// New creates an Extractor. The normalizer canonicalizes manufacturer hints;
// nil uses the default alias table.
func New(n *normalize.Normalizer, opts ...Option) *Extractor {
	if n == nil {
		n = normalize.New(nil)
	}
	e := &Extractor{
		normalizer: n,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalizer returns the manufacturer normalizer used by the extractor.
func (e *Extractor) Normalizer() *normalize.Normalizer {
	return e.normalizer
}

// Extract parses raw text only. It never fails; missing signals are left
// empty and condition defaults to unknown.
func (e *Extractor) Extract(raw string) domain.ExtractedAttributes {
	return e.ExtractItem(domain.ItemDescriptor{RawName: raw})
}

// ExtractItem parses an inventory item, canonicalizing its manufacturer hint
// and preferring an explicit condition column over text detection.
func (e *Extractor) ExtractItem(item domain.ItemDescriptor) domain.ExtractedAttributes {
	attrs := domain.ExtractedAttributes{
		RawName:      item.RawName,
		Manufacturer: e.normalizer.Normalize(item.ManufacturerHint),
		PartNumber:   PartNumber(item.RawName),
		PackQuantity: PackQuantity(item.RawName),
		UnitType:     Unit(item.RawName),
		Barcode:      strings.TrimSpace(item.Barcode),
	}

	attrs.Condition = NormalizeCondition(item.Condition)
	if attrs.Condition == domain.ConditionUnknown {
		attrs.Condition = DetectCondition(item.RawName)
	}

	attrs.ProductKey = ProductKey(attrs.Manufacturer, attrs.PartNumber, attrs.PackQuantity, item.RawName)

	e.log.Debug("extracted attributes",
		"raw_name", item.RawName,
		"manufacturer", attrs.Manufacturer,
		"part_number", attrs.PartNumber,
		"pack_quantity", attrs.PackQuantity,
		"unit_type", attrs.UnitType,
		"condition", attrs.Condition,
		"product_key", attrs.ProductKey,
	)

	return attrs
}

// PartNumber returns the first manufacturer part number found in text, or "".
func PartNumber(text string) string {
	clean := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	clean = noiseCutoff.ReplaceAllString(clean, "")
	if clean == "" {
		return ""
	}

	for _, re := range partNumberPatterns {
		for _, m := range re.FindAllStringSubmatch(clean, -1) {
			candidate := strings.ToUpper(strings.Trim(m[1], " .,:;()[]{}"))
			if plausiblePartNumber(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func plausiblePartNumber(s string) bool {
	if len(s) < 3 || strings.HasSuffix(s, ".") || strings.HasSuffix(s, ",") {
		return false
	}
	return !allRunes(s, unicode.IsDigit) && !allRunes(s, unicode.IsLetter)
}

func allRunes(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !pred(r) }) < 0
}

// PackQuantity returns the pack size stated in text, or 0 when absent.
func PackQuantity(text string) int {
	lower := strings.ToLower(text)
	for _, re := range packQuantityPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return n
	}
	return 0
}

// Unit returns the packaging unit mentioned in text, or "" when absent.
func Unit(text string) domain.UnitType {
	lower := strings.ToLower(text)
	for _, u := range unitVocabulary {
		if containsAny(lower, u.keywords) {
			return u.unit
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
