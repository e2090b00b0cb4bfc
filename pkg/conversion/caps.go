// Package conversion implements the core note-conversion math: resolving
// effective valuation caps for MFN notes, pricing individual notes against a
// round's price per share, and the fixed-point solver that reconciles the
// circular dependency between total shares, price, and the option pool.
package conversion

import (
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/constants"
)

// IsMFN reports whether a note carries a most-favored-nation clause, either
// through its conversion style or through an "mfn" side-letter tag.
func IsMFN(note captable.Note) bool {
	if note.Style == captable.StyleMFN || note.Style == captable.StyleMFNPostMoney {
		return true
	}
	return note.HasTag(constants.MFNTag)
}

// ResolveCap returns the effective valuation cap for the note at index i.
// Non-MFN notes keep their stated cap. An MFN note inherits the lowest
// positive cap among notes strictly after it in the list; other MFN notes
// and placeholder rows are skipped during the scan.
//
// The scan is forward-only, so the result depends on list ordering rather
// than being a symmetric function of the whole note set. A true MFN clause
// arguably means the global lowest cap; the forward scan is kept as the
// defined behavior.
func ResolveCap(i int, notes []captable.Note, fallbackPreMoney float64) float64 {
	note := notes[i]
	if !IsMFN(note) {
		return note.Cap
	}

	inherited := 0.0
	for j := i + 1; j < len(notes); j++ {
		sibling := notes[j]
		if IsMFN(sibling) || sibling.Style == captable.StylePreMoneyDefault {
			continue
		}
		if sibling.Cap > 0 && (inherited == 0 || sibling.Cap < inherited) {
			inherited = sibling.Cap
		}
	}

	base := note.Cap
	switch {
	case base > 0 && inherited > 0:
		if inherited < base {
			base = inherited
		}
	case inherited > 0:
		base = inherited
	case base == 0:
		if fallbackPreMoney > 0 {
			base = fallbackPreMoney
		}
	}

	// With no cap anywhere, an MFN note with a discount still implies an
	// effective cap: the fallback valuation reduced by the discount.
	if base > 0 && note.Discount > 0 && note.Cap == 0 && inherited == 0 {
		base = base * (1 - note.Discount)
	}

	return base
}

// PopulateCaps resolves the effective cap of every note and returns fresh
// copies; the caller-owned input slice is never altered.
func PopulateCaps(notes []captable.Note, preMoneyValuation float64) []captable.Note {
	if len(notes) == 0 {
		return nil
	}

	resolved := make([]captable.Note, len(notes))
	for i, note := range notes {
		copied := note
		copied.Tags = append([]string(nil), note.Tags...)
		copied.Cap = ResolveCap(i, notes, preMoneyValuation)
		resolved[i] = copied
	}
	return resolved
}
