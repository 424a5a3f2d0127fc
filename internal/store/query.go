package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByPricedAt   = "priced_at"
	orderByConfidence = "confidence"
	orderByFinalPrice = "final_price"

	defaultOrderBy = orderByPricedAt
)

// ResultQuery defines optional filters for result listings.
type ResultQuery struct {
	ProductKey    *string
	Outcome       *string
	Conditions    []string
	MinConfidence *float64
	Limit         int // default 50
	Offset        int
	OrderBy       string // "priced_at", "confidence", "final_price"
}

// EffectiveLimit returns the page size the query will use.
func (q *ResultQuery) EffectiveLimit() int {
	switch {
	case q.Limit <= 0:
		return defaultLimit
	case q.Limit > maxLimit:
		return maxLimit
	default:
		return q.Limit
	}
}

// dialect captures the SQL differences between the backends.
type dialect struct {
	placeholder func(n int) string
	orderBy     map[string]string
}

var postgresDialect = dialect{
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	orderBy: map[string]string{
		orderByPricedAt:   "priced_at DESC",
		orderByConfidence: "confidence DESC, priced_at DESC",
		orderByFinalPrice: "final_price DESC, priced_at DESC",
	},
}

// SQLite keeps prices as TEXT, so numeric ordering needs a cast.
var sqliteDialect = dialect{
	placeholder: func(int) string { return "?" },
	orderBy: map[string]string{
		orderByPricedAt:   "priced_at DESC",
		orderByConfidence: "confidence DESC, priced_at DESC",
		orderByFinalPrice: "CAST(final_price AS REAL) DESC, priced_at DESC",
	},
}

const resultColumns = `id, product_key, raw_name, manufacturer, part_number,
	mode, outcome, base_price, item_condition, multiplier, final_price,
	confidence, sources, rejected_outliers, matched_title, matched_source, priced_at`

const (
	baseResultsSelect  = "SELECT " + resultColumns + " FROM pricing_results"
	countResultsSelect = "SELECT COUNT(*) FROM pricing_results"
)

// ToSQL builds the Postgres data and count statements for the query along
// with their positional parameters.
func (q *ResultQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	return q.toSQL(postgresDialect)
}

func (q *ResultQuery) toSQL(d dialect) (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	next := func(v any) string {
		args = append(args, v)
		p := d.placeholder(paramIdx)
		paramIdx++
		return p
	}

	if q.ProductKey != nil {
		conditions = append(conditions, "product_key = "+next(*q.ProductKey))
	}

	if q.Outcome != nil {
		conditions = append(conditions, "outcome = "+next(*q.Outcome))
	}

	if len(q.Conditions) > 0 {
		placeholders := make([]string, len(q.Conditions))
		for i, c := range q.Conditions {
			placeholders[i] = next(c)
		}
		conditions = append(conditions, fmt.Sprintf(
			"item_condition IN (%s)", strings.Join(placeholders, ", "),
		))
	}

	if q.MinConfidence != nil {
		conditions = append(conditions, "confidence >= "+next(*q.MinConfidence))
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := d.orderBy[defaultOrderBy]
	if col, ok := d.orderBy[q.OrderBy]; ok {
		orderClause = col
	}

	limit := q.EffectiveLimit()
	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseResultsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countResultsSelect + whereClause

	return dataSQL, countSQL, args
}
