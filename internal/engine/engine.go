// Package engine orchestrates one full round computation: note validation,
// cap resolution, the pre-round estimate, and the priced-round solve with
// its ownership table.
package engine

import (
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/conversion"
	"github.com/iwvelando/captable/pkg/rounds"
	"go.uber.org/zap"
)

// MsgValuationRequired is surfaced when the pre-money valuation is missing
// but a note exists that cannot convert without one.
const MsgValuationRequired = "a pre-money valuation is required to convert a note with neither a cap nor a discount"

// Report is the immutable output of one computation. PostRound and
// Conversion are nil when the priced round was blocked or skipped.
type Report struct {
	PreRound         captable.Table     `json:"preRound"`
	PostRound        *captable.Table    `json:"postRound,omitempty"`
	Conversion       *conversion.Result `json:"conversion,omitempty"`
	NoteErrors       map[string]string  `json:"noteErrors,omitempty"`
	InputRequirement string             `json:"inputRequirement,omitempty"`
}

// Compute runs the full pipeline over an input snapshot. The deal is treated
// as read-only; every structure in the returned Report is freshly built.
func Compute(logger *zap.Logger, deal captable.Deal) Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := Report{
		NoteErrors: captable.ValidateNotes(deal.Notes),
	}

	resolved := conversion.PopulateCaps(deal.Notes, deal.PreMoneyValuation)
	report.PreRound = rounds.PreRound(deal.Holdings, resolved, deal.Policy)

	if len(report.NoteErrors) > 0 {
		logger.Debug("skipping priced round due to invalid notes",
			zap.String("op", "engine.Compute"),
			zap.Int("invalidNotes", len(report.NoteErrors)),
		)
		return report
	}

	if deal.PreMoneyValuation <= 0 {
		if noteRequiresValuation(resolved) {
			report.InputRequirement = MsgValuationRequired
		}
		logger.Debug("skipping priced round without a pre-money valuation",
			zap.String("op", "engine.Compute"),
		)
		return report
	}

	commonShares, unusedOptions := captable.SplitHoldings(deal.Holdings)
	solver := conversion.NewSolver(logger, conversion.Settings{Policy: deal.Policy})
	result := solver.Solve(conversion.Problem{
		Notes:             resolved,
		Series:            deal.Series,
		PreMoneyValuation: deal.PreMoneyValuation,
		TargetOptionPct:   deal.TargetOptionPct,
		CommonShares:      commonShares,
		UnusedOptions:     unusedOptions,
	})

	table := rounds.PostRound(deal.Holdings, resolved, deal.Series, result, deal.Policy)
	report.Conversion = &result
	report.PostRound = &table

	return report
}

// noteRequiresValuation reports whether an invested note has neither a
// resolved cap nor a discount, leaving nothing to price it against.
func noteRequiresValuation(notes []captable.Note) bool {
	for _, note := range notes {
		if note.Investment > 0 && note.Cap == 0 && note.Discount == 0 {
			return true
		}
	}
	return false
}
