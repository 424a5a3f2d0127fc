// Package score implements match scoring of price-source observations
// against extracted item attributes, and confident best-match selection.
package score
