package captable

// Validation messages for structurally invalid notes.
const (
	// MsgInvestmentExceedsCap flags a note whose investment meets or exceeds
	// its nonzero cap, which implies a zero or negative share price.
	MsgInvestmentExceedsCap = "investment cannot equal or exceed the valuation cap"

	// MsgDiscountTooLarge flags a discount of 100% or more, which yields a
	// non-positive conversion price.
	MsgDiscountTooLarge = "a discount of 100% or more yields a non-positive conversion price"
)

// ValidateNotes detects structurally invalid notes before any conversion
// math runs. It returns a map of note id to message; a non-empty result
// blocks the priced-round computation but not the pre-round estimate, which
// carries its own error branches.
func ValidateNotes(notes []Note) map[string]string {
	problems := make(map[string]string)
	for _, note := range notes {
		if msg := validateNote(note); msg != "" {
			problems[note.ID] = msg
		}
	}
	return problems
}

func validateNote(note Note) string {
	if note.Cap != 0 && note.Investment >= note.Cap {
		return MsgInvestmentExceedsCap
	}
	if note.Discount >= 1 {
		return MsgDiscountTooLarge
	}
	return ""
}
