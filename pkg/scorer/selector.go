package score

import (
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// DefaultThreshold is the minimum score for a confident match.
const DefaultThreshold = 0.3

// epsilon absorbs float summation error at the threshold boundary.
const epsilon = 1e-12

// Selector picks the best-scoring observation above a confidence threshold.
type Selector struct {
	strategy  Strategy
	threshold float64
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithThreshold overrides the minimum match score.
func WithThreshold(t float64) SelectorOption {
	return func(s *Selector) {
		s.threshold = t
	}
}

// NewSelector creates a Selector scoring with strategy.
func NewSelector(strategy Strategy, opts ...SelectorOption) *Selector {
	s := &Selector{
		strategy:  strategy,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the configured minimum score.
func (s *Selector) Threshold() float64 {
	return s.threshold
}

// Accepts reports whether score clears the threshold.
func (s *Selector) Accepts(score float64) bool {
	return score >= s.threshold-epsilon
}

// ScoreAll scores every observation, preserving input order.
func (s *Selector) ScoreAll(
	item domain.ExtractedAttributes,
	obs []domain.SourceObservation,
) []domain.MatchCandidate {
	out := make([]domain.MatchCandidate, 0, len(obs))
	for _, o := range obs {
		b := s.strategy.Score(item, o)
		out = append(out, domain.MatchCandidate{
			Observation: o,
			Score:       b.Total,
			Breakdown:   b,
		})
	}
	return out
}

// Select returns the highest-scoring observation, the earliest one on ties,
// if it clears the threshold. The boolean is false for no confident match.
func (s *Selector) Select(
	item domain.ExtractedAttributes,
	obs []domain.SourceObservation,
) (*domain.MatchCandidate, bool) {
	best := Best(s.ScoreAll(item, obs))
	if best == nil || !s.Accepts(best.Score) {
		return nil, false
	}
	return best, true
}

// Best returns the strict maximum of candidates, or nil when empty.
func Best(candidates []domain.MatchCandidate) *domain.MatchCandidate {
	var best *domain.MatchCandidate
	for i := range candidates {
		if best == nil || candidates[i].Score > best.Score {
			best = &candidates[i]
		}
	}
	return best
}
