// Package captable defines the data structures for an early-stage financing
// round: existing holdings, convertible notes, priced-round investments, and
// the ownership tables produced from them.
package captable

import (
	"strings"

	"github.com/iwvelando/captable/pkg/constants"
	"github.com/iwvelando/captable/pkg/numeric"
)

// ConversionStyle identifies how a note's valuation cap translates into a
// conversion price.
type ConversionStyle string

const (
	// StylePreMoney divides the cap by the pre-money share count.
	StylePreMoney ConversionStyle = "pre-money"

	// StylePreMoneyDefault is the placeholder style for rows that have not
	// been filled in yet. Cap resolution skips these when scanning for an
	// inherited cap.
	StylePreMoneyDefault ConversionStyle = "pre-money-default"

	// StylePostMoney divides the cap by the post-money share count.
	StylePostMoney ConversionStyle = "post-money"

	// StyleMFN inherits the lowest cap among later notes in the list.
	StyleMFN ConversionStyle = "mfn"

	// StyleMFNPostMoney is the post-money variant of the MFN clause.
	StyleMFNPostMoney ConversionStyle = "mfn-post-money"
)

// ParseStyle maps a configuration string onto a ConversionStyle. Unknown or
// empty values fall back to the pre-money-default placeholder.
func ParseStyle(value string) ConversionStyle {
	switch ConversionStyle(strings.ToLower(strings.TrimSpace(value))) {
	case StylePreMoney:
		return StylePreMoney
	case StylePostMoney:
		return StylePostMoney
	case StyleMFN:
		return StyleMFN
	case StyleMFNPostMoney:
		return StyleMFNPostMoney
	default:
		return StylePreMoneyDefault
	}
}

// Holding is an existing block of common stock, including the unallocated
// option pool when its category matches constants.OptionPoolCategory.
type Holding struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Shares   float64 `json:"shares"`
}

// IsOptionPool reports whether the holding represents unallocated options.
func (h Holding) IsOptionPool() bool {
	return strings.EqualFold(strings.TrimSpace(h.Category), constants.OptionPoolCategory)
}

// Note is a SAFE-style convertible instrument. A zero Cap means uncapped;
// Discount is a fraction in [0, 1).
type Note struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Investment float64         `json:"investment"`
	Cap        float64         `json:"cap"`
	Discount   float64         `json:"discount"`
	Style      ConversionStyle `json:"style"`
	Tags       []string        `json:"tags,omitempty"`
}

// HasTag reports whether the note's side-letter tag set contains tag,
// case-insensitively.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// Series is a priced-round investment.
type Series struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Investment float64 `json:"investment"`
}

// Deal is the immutable input snapshot for one full computation. The engine
// never mutates a Deal; callers own the row slices and replace the Deal
// wholesale between recomputations.
type Deal struct {
	Holdings          []Holding      `json:"holdings"`
	Notes             []Note         `json:"notes"`
	Series            []Series       `json:"series"`
	PreMoneyValuation float64        `json:"preMoneyValuation"`
	TargetOptionPct   float64        `json:"targetOptionPct"`
	Policy            numeric.Policy `json:"policy"`
}

// SplitHoldings separates holdings into common stock and the unallocated
// option pool, returning the common share total and the unused option total.
func SplitHoldings(holdings []Holding) (commonShares, unusedOptions float64) {
	for _, h := range holdings {
		if h.IsOptionPool() {
			unusedOptions += h.Shares
		} else {
			commonShares += h.Shares
		}
	}
	return commonShares, unusedOptions
}

// TotalNoteInvestment sums the invested amounts across notes.
func TotalNoteInvestment(notes []Note) float64 {
	total := 0.0
	for _, n := range notes {
		total += n.Investment
	}
	return total
}

// TotalSeriesInvestment sums the invested amounts across series investors.
func TotalSeriesInvestment(series []Series) float64 {
	total := 0.0
	for _, s := range series {
		total += s.Investment
	}
	return total
}
