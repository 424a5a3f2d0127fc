// Package domain defines the core business types for the price matcher.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condition represents the normalized physical condition of an inventory item.
type Condition string

// Condition constants.
const (
	ConditionNew     Condition = "new"
	ConditionUsed    Condition = "used"
	ConditionExpired Condition = "expired"
	ConditionDamaged Condition = "damaged"
	ConditionUnknown Condition = "unknown"
)

// Valid reports whether c is one of the known condition values.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionExpired, ConditionDamaged, ConditionUnknown:
		return true
	default:
		return false
	}
}

// UnitType is the packaging unit of a lab consumable.
type UnitType string

// Unit type constants. An empty UnitType means no unit was recognized.
const (
	UnitTips     UnitType = "tips"
	UnitTubes    UnitType = "tubes"
	UnitFlasks   UnitType = "flasks"
	UnitDishes   UnitType = "dishes"
	UnitPlates   UnitType = "plates"
	UnitSyringes UnitType = "syringes"
	UnitBottles  UnitType = "bottles"
	UnitBeakers  UnitType = "beakers"
	UnitPipettes UnitType = "pipettes"
)

// PriceProfile selects the plausible price range used during aggregation.
type PriceProfile string

// Price profile constants.
const (
	ProfileConsumer     PriceProfile = "consumer"
	ProfileLabEquipment PriceProfile = "lab_equipment"
)

// Bounds for a single observed price. Observations priced outside this
// range never enter the engine.
var (
	ObservationPriceMin = decimal.RequireFromString("0.01")
	ObservationPriceMax = decimal.RequireFromString("50000")
)

// ItemDescriptor is the raw inventory record handed to the pipeline.
// Empty strings mean the field is absent.
type ItemDescriptor struct {
	RawName          string `json:"raw_name"                    db:"raw_name"`
	ManufacturerHint string `json:"manufacturer_hint,omitempty" db:"manufacturer_hint"`
	Barcode          string `json:"barcode,omitempty"           db:"barcode"`
	// Condition is an explicit condition column value, if the inventory has one.
	Condition string `json:"condition,omitempty"  db:"condition"`
	IsReagent bool   `json:"is_reagent,omitempty" db:"is_reagent"`
}

// ExtractedAttributes is the structured identity derived from an item name.
type ExtractedAttributes struct {
	RawName      string    `json:"raw_name"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	PartNumber   string    `json:"part_number,omitempty"`
	PackQuantity int       `json:"pack_quantity,omitempty"`
	UnitType     UnitType  `json:"unit_type,omitempty"`
	Condition    Condition `json:"condition"`
	ProductKey   string    `json:"product_key"`
	Barcode      string    `json:"barcode,omitempty"`
}

// SourceObservation is one candidate offer returned by a price source.
type SourceObservation struct {
	SourceID     string           `json:"source_id"`
	Title        string           `json:"title"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Manufacturer string           `json:"manufacturer,omitempty"`
	PartNumber   string           `json:"part_number,omitempty"`
	PackQuantity int              `json:"pack_quantity,omitempty"`
	URL          string           `json:"url,omitempty"`
	Description  string           `json:"description,omitempty"`
}

// HasPrice reports whether the observation carries a price.
func (o *SourceObservation) HasPrice() bool {
	return o.Price != nil
}

// MatchBreakdown holds the per-signal contributions of a match score.
type MatchBreakdown struct {
	Strategy     string  `json:"strategy"`
	PartNumber   float64 `json:"part_number"`
	Manufacturer float64 `json:"manufacturer"`
	Title        float64 `json:"title"`
	Pack         float64 `json:"pack"`
	Description  float64 `json:"description"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
}

// MatchCandidate pairs an observation with its match score.
type MatchCandidate struct {
	Observation SourceObservation `json:"observation"`
	Score       float64           `json:"score"`
	Breakdown   MatchBreakdown    `json:"breakdown"`
}

// AggregatedPrice is the reconciled price across several observations.
type AggregatedPrice struct {
	Value               decimal.Decimal `json:"value"`
	ContributingSources int             `json:"contributing_sources"`
	RejectedOutliers    int             `json:"rejected_outliers"`
}

// Mode selects how the pipeline turns observations into a base price.
type Mode string

// Pipeline mode constants.
const (
	ModeBestMatch Mode = "best_match"
	ModeAggregate Mode = "aggregate"
)

// Outcome is the terminal state of one pipeline run.
type Outcome string

// Outcome constants.
const (
	OutcomePriced  Outcome = "priced"
	OutcomeNoMatch Outcome = "no_match"
	OutcomeNoPrice Outcome = "no_price"
)

// PricingResult is the final output of the pipeline for one item.
type PricingResult struct {
	ID            string          `json:"id"                       db:"id"`
	ProductKey    string          `json:"product_key"              db:"product_key"`
	RawName       string          `json:"raw_name"                 db:"raw_name"`
	Manufacturer  string          `json:"manufacturer,omitempty"   db:"manufacturer"`
	PartNumber    string          `json:"part_number,omitempty"    db:"part_number"`
	Mode          Mode            `json:"mode"                     db:"mode"`
	Outcome       Outcome         `json:"outcome"                  db:"outcome"`
	BasePrice     decimal.Decimal `json:"base_price"               db:"base_price"`
	Condition     Condition       `json:"condition"                db:"condition"`
	Multiplier    float64         `json:"multiplier"               db:"multiplier"`
	FinalPrice    decimal.Decimal `json:"final_price"              db:"final_price"`
	Confidence    float64         `json:"confidence"               db:"confidence"`
	Sources       int             `json:"sources"                  db:"sources"`
	Rejected      int             `json:"rejected_outliers"        db:"rejected_outliers"`
	MatchedTitle  string          `json:"matched_title,omitempty"  db:"matched_title"`
	MatchedSource string          `json:"matched_source,omitempty" db:"matched_source"`
	PricedAt      time.Time       `json:"priced_at"                db:"priced_at"`
}

// Stage names the states an item passes through while being priced.
type Stage string

// Pipeline stages.
const (
	StageStart      Stage = "start"
	StageExtracted  Stage = "extracted"
	StageNormalized Stage = "normalized"
	StageSearched   Stage = "searched"
	StageScored     Stage = "scored"
	StageAggregated Stage = "aggregated"
	StagePriced     Stage = "priced"
	StageDone       Stage = "done"
)
