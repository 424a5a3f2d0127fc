package extract

import (
	"strings"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// conditionMap maps explicit inventory condition values to domain conditions.
var conditionMap = map[string]domain.Condition{
	// normalized enum values (identity mappings)
	"new":     domain.ConditionNew,
	"used":    domain.ConditionUsed,
	"expired": domain.ConditionExpired,
	"damaged": domain.ConditionDamaged,
	"unknown": domain.ConditionUnknown,
	// spreadsheet / inventory variants
	"brand new":      domain.ConditionNew,
	"factory sealed": domain.ConditionNew,
	"sealed":         domain.ConditionNew,
	"unopened":       domain.ConditionNew,
	"like new":       domain.ConditionUsed,
	"open box":       domain.ConditionUsed,
	"opened":         domain.ConditionUsed,
	"pre-owned":      domain.ConditionUsed,
	"refurbished":    domain.ConditionUsed,
	"out of date":    domain.ConditionExpired,
	"outdated":       domain.ConditionExpired,
	"past expiry":    domain.ConditionExpired,
	"broken":         domain.ConditionDamaged,
	"for parts":      domain.ConditionDamaged,
	"not working":    domain.ConditionDamaged,
}

type conditionKeywords struct {
	condition domain.Condition
	keywords  []string
}

// conditionVocabulary is checked in order; the first condition with any
// keyword present in the text wins.
var conditionVocabulary = []conditionKeywords{
	{domain.ConditionNew, []string{"new", "sealed", "unopened", "fresh"}},
	{domain.ConditionUsed, []string{"used", "opened", "second hand", "pre-owned"}},
	{domain.ConditionExpired, []string{"expired", "outdated", "past date", "exp"}},
	{domain.ConditionDamaged, []string{"damaged", "broken", "cracked", "defective"}},
}

// NormalizeCondition maps an explicit condition value to a domain.Condition.
// Values not in the known set fall back to keyword detection. Returns
// ConditionUnknown if nothing matches.
func NormalizeCondition(raw string) domain.Condition {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return domain.ConditionUnknown
	}

	if c, ok := conditionMap[normalized]; ok {
		return c
	}

	return DetectCondition(normalized)
}

// DetectCondition scans free text for condition keywords.
func DetectCondition(text string) domain.Condition {
	lower := strings.ToLower(text)
	for _, c := range conditionVocabulary {
		if containsAny(lower, c.keywords) {
			return c.condition
		}
	}
	return domain.ConditionUnknown
}
