package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/numeric"
)

func dealFixture() captable.Deal {
	return captable.Deal{
		Holdings: []captable.Holding{
			{ID: "h1", Name: "Founders", Category: "Founder", Shares: 8000000},
			{ID: "h2", Name: "Pool", Category: "Option pool", Shares: 2000000},
		},
		Series: []captable.Series{
			{ID: "s1", Name: "Series A", Investment: 2000000},
		},
		PreMoneyValuation: 10000000,
		Policy:            numeric.DefaultPolicy(),
	}
}

func TestComputeWithoutNotes(t *testing.T) {
	report := Compute(nil, dealFixture())

	if len(report.NoteErrors) != 0 {
		t.Errorf("unexpected note errors: %v", report.NoteErrors)
	}
	if report.PostRound == nil || report.Conversion == nil {
		t.Fatalf("priced round missing: postRound=%v conversion=%v", report.PostRound, report.Conversion)
	}

	if sum := report.PreRound.OwnershipSum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("pre-round ownership sum = %v, expected 1.0", sum)
	}
	if sum := report.PostRound.OwnershipSum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("post-round ownership sum = %v, expected 1.0", sum)
	}
	if !report.Conversion.Converged {
		t.Errorf("solver did not converge")
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	deal := dealFixture()
	deal.Notes = []captable.Note{
		{ID: "n1", Name: "SAFE", Investment: 250000, Cap: 5000000, Style: captable.StylePostMoney},
		{ID: "n2", Name: "MFN SAFE", Investment: 100000, Style: captable.StyleMFN},
	}

	first := Compute(nil, deal)
	second := Compute(nil, deal)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different reports")
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	deal := dealFixture()
	deal.Notes = []captable.Note{
		{ID: "n1", Name: "MFN SAFE", Investment: 100000, Style: captable.StyleMFN},
		{ID: "n2", Name: "Capped SAFE", Investment: 250000, Cap: 5000000, Style: captable.StylePostMoney},
	}

	Compute(nil, deal)

	if deal.Notes[0].Cap != 0 {
		t.Errorf("input MFN note cap mutated to %v", deal.Notes[0].Cap)
	}
}

func TestComputeInvalidNoteBlocksPricedRound(t *testing.T) {
	deal := dealFixture()
	deal.Notes = []captable.Note{
		{ID: "n1", Name: "Broken SAFE", Investment: 5000000, Cap: 5000000, Style: captable.StylePostMoney},
	}

	report := Compute(nil, deal)

	if len(report.NoteErrors) != 1 {
		t.Fatalf("NoteErrors = %v, expected one entry", report.NoteErrors)
	}
	if report.NoteErrors["n1"] != captable.MsgInvestmentExceedsCap {
		t.Errorf("note error = %q", report.NoteErrors["n1"])
	}
	if report.PostRound != nil || report.Conversion != nil {
		t.Errorf("priced round computed despite invalid notes")
	}
	if report.PreRound.Status != captable.TableError {
		t.Errorf("pre-round status = %q, expected error", report.PreRound.Status)
	}
}

func TestComputeMissingValuation(t *testing.T) {
	tests := []struct {
		name      string
		notes     []captable.Note
		expectMsg bool
	}{
		{
			"No notes: silently skipped",
			nil,
			false,
		},
		{
			"Capped note: no message needed",
			[]captable.Note{{ID: "n1", Investment: 100000, Cap: 5000000, Style: captable.StylePostMoney}},
			false,
		},
		{
			"Discounted note: no message needed",
			[]captable.Note{{ID: "n1", Investment: 100000, Discount: 0.2, Style: captable.StylePostMoney}},
			false,
		},
		{
			"Bare note needs a valuation",
			[]captable.Note{{ID: "n1", Investment: 100000, Style: captable.StylePostMoney}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := dealFixture()
			deal.PreMoneyValuation = 0
			deal.Notes = tt.notes

			report := Compute(nil, deal)

			if report.PostRound != nil || report.Conversion != nil {
				t.Errorf("priced round computed without a valuation")
			}
			if tt.expectMsg && report.InputRequirement != MsgValuationRequired {
				t.Errorf("InputRequirement = %q, expected %q", report.InputRequirement, MsgValuationRequired)
			}
			if !tt.expectMsg && report.InputRequirement != "" {
				t.Errorf("unexpected InputRequirement %q", report.InputRequirement)
			}
		})
	}
}

func TestComputeMFNResolutionFlowsThrough(t *testing.T) {
	deal := dealFixture()
	deal.Notes = []captable.Note{
		{ID: "a", Name: "First", Investment: 100000, Cap: 5000000, Style: captable.StylePostMoney},
		{ID: "b", Name: "MFN", Investment: 100000, Style: captable.StyleMFN},
		{ID: "c", Name: "Cheapest", Investment: 100000, Cap: 3000000, Style: captable.StylePostMoney},
	}

	report := Compute(nil, deal)
	if report.PostRound == nil {
		t.Fatalf("priced round missing")
	}

	// The MFN note inherits the 3M cap, so it must convert at the same
	// price as the note that set it.
	var mfnPrice, cheapestPrice float64
	for _, row := range report.PostRound.Rows {
		switch row.ID {
		case "b":
			mfnPrice = row.Price
		case "c":
			cheapestPrice = row.Price
		}
	}
	if mfnPrice == 0 || mfnPrice != cheapestPrice {
		t.Errorf("MFN price = %v, expected to match cheapest cap price %v", mfnPrice, cheapestPrice)
	}
}
