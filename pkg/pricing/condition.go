package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Multipliers is the condition-to-multiplier table. Expired items are priced
// differently depending on whether they are reagents.
type Multipliers struct {
	New              float64 `yaml:"new"               json:"new"`
	Used             float64 `yaml:"used"              json:"used"`
	Damaged          float64 `yaml:"damaged"           json:"damaged"`
	Unknown          float64 `yaml:"unknown"           json:"unknown"`
	ExpiredReagent   float64 `yaml:"expired_reagent"   json:"expired_reagent"`
	ExpiredEquipment float64 `yaml:"expired_equipment" json:"expired_equipment"`
}

// DefaultMultipliers returns the standard resale multipliers.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		New:              0.70,
		Used:             0.40,
		Damaged:          0.20,
		Unknown:          0.50,
		ExpiredReagent:   0.05,
		ExpiredEquipment: 0.25,
	}
}

// Validate checks that every multiplier is positive and at most 1.
func (m Multipliers) Validate() error {
	var errs []error
	for name, v := range map[string]float64{
		"new":               m.New,
		"used":              m.Used,
		"damaged":           m.Damaged,
		"unknown":           m.Unknown,
		"expired_reagent":   m.ExpiredReagent,
		"expired_equipment": m.ExpiredEquipment,
	} {
		if v <= 0 || v > 1 {
			errs = append(errs, fmt.Errorf("condition multiplier %s = %.2f: must be in (0, 1]", name, v))
		}
	}
	return errors.Join(errs...)
}

// ConditionPricer applies condition multipliers to base prices.
type ConditionPricer struct {
	m Multipliers
}

// NewConditionPricer creates a ConditionPricer over the given table.
func NewConditionPricer(m Multipliers) *ConditionPricer {
	return &ConditionPricer{m: m}
}

// Multiplier returns the factor for a condition. Unrecognized conditions
// use the unknown multiplier.
func (p *ConditionPricer) Multiplier(c domain.Condition, isReagent bool) float64 {
	switch c {
	case domain.ConditionNew:
		return p.m.New
	case domain.ConditionUsed:
		return p.m.Used
	case domain.ConditionDamaged:
		return p.m.Damaged
	case domain.ConditionExpired:
		if isReagent {
			return p.m.ExpiredReagent
		}
		return p.m.ExpiredEquipment
	default:
		return p.m.Unknown
	}
}

// Apply returns base scaled by the condition multiplier, rounded to cents,
// along with the multiplier used.
func (p *ConditionPricer) Apply(
	base decimal.Decimal,
	c domain.Condition,
	isReagent bool,
) (decimal.Decimal, float64) {
	m := p.Multiplier(c, isReagent)
	return base.Mul(decimal.NewFromFloat(m)).Round(2), m
}
