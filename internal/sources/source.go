// Package sources queries external price sources and collects their
// observations for the pricing pipeline.
package sources

import (
	"context"
	"slices"
	"strings"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// Source is one independently queried price source.
type Source interface {
	ID() string
	Query(ctx context.Context, query, identifier string) ([]domain.SourceObservation, error)
}

// StaticSource returns a fixed set of observations regardless of the query.
type StaticSource struct {
	id           string
	observations []domain.SourceObservation
	err          error
}

// NewStatic creates a source that always returns obs. Observations
// without a SourceID are attributed to id.
func NewStatic(id string, obs ...domain.SourceObservation) *StaticSource {
	return &StaticSource{id: id, observations: obs}
}

// NewFailing creates a source whose every query fails with err.
func NewFailing(id string, err error) *StaticSource {
	return &StaticSource{id: id, err: err}
}

// ID implements Source.
func (s *StaticSource) ID() string { return s.id }

// Query implements Source.
func (s *StaticSource) Query(
	ctx context.Context,
	_, _ string,
) ([]domain.SourceObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	out := slices.Clone(s.observations)
	for i := range out {
		if out[i].SourceID == "" {
			out[i].SourceID = s.id
		}
	}
	return out, nil
}

// BuildQuery derives the free-text query and the exact identifier sent to
// every source. The canonical manufacturer is prepended to the raw name when
// the name does not already mention it. The identifier is the barcode when
// present, otherwise the part number.
func BuildQuery(attrs domain.ExtractedAttributes) (query, identifier string) {
	query = strings.TrimSpace(attrs.RawName)
	if m := attrs.Manufacturer; m != "" &&
		!strings.Contains(strings.ToLower(query), strings.ToLower(m)) {
		query = strings.TrimSpace(m + " " + query)
	}

	identifier = attrs.Barcode
	if identifier == "" {
		identifier = attrs.PartNumber
	}
	return query, identifier
}
