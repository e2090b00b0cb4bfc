// Package numeric provides the rounding rules applied to share counts and
// per-share prices throughout a round computation.
package numeric

import (
	"math"

	"github.com/iwvelando/captable/pkg/constants"
	"github.com/shopspring/decimal"
)

// Policy describes how share counts and per-share prices are rounded.
// RoundSharesDown takes precedence over RoundShares when both are set.
type Policy struct {
	RoundShares     bool `json:"roundShares"`
	RoundSharesDown bool `json:"roundSharesDown"`
	PricePlaces     int  `json:"pricePlaces"`
}

// DefaultPolicy returns the policy used when a configuration does not
// specify one: round shares to the nearest integer, prices to 8 places.
func DefaultPolicy() Policy {
	return Policy{
		RoundShares: true,
		PricePlaces: constants.DefaultPricePlaces,
	}
}

// RoundShareCount applies the share rounding rules to a raw share count.
func (p Policy) RoundShareCount(x float64) float64 {
	if p.RoundSharesDown {
		return math.Floor(x)
	}
	if p.RoundShares {
		return math.Round(x)
	}
	return x
}

// RoundPriceUp rounds a per-share price up (toward positive infinity) to the
// given number of decimal places. Rounding up rather than to nearest keeps a
// note's price from landing infinitesimally under its true value, which would
// otherwise overstate the converted share count. A negative places value is
// a no-op.
func RoundPriceUp(x float64, places int) float64 {
	if places < 0 {
		return x
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).RoundCeil(int32(places)).InexactFloat64()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsPositive checks if a value is strictly positive
func IsPositive(val float64) bool {
	return val > 0
}
