package conversion

import (
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/constants"
	"github.com/iwvelando/captable/pkg/numeric"
	"go.uber.org/zap"
)

// Settings bounds the fixed-point loop and carries the rounding policy.
type Settings struct {
	MaxIterations int            `json:"maxIterations"`
	Policy        numeric.Policy `json:"policy"`
}

// DefaultSettings returns the iteration cap and rounding policy used when
// the caller does not supply settings.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations: constants.DefaultMaxIterations,
		Policy:        numeric.DefaultPolicy(),
	}
}

// Problem is one priced-round computation: resolved notes, series
// investments, the round terms, and the existing share base.
type Problem struct {
	Notes             []captable.Note
	Series            []captable.Series
	PreMoneyValuation float64
	TargetOptionPct   float64
	CommonShares      float64
	UnusedOptions     float64
}

// Result is the converged state of one solver run. It is built fresh on
// every call and never mutated afterward. Converged is false when the loop
// exhausted its iteration budget; the values then reflect the last computed
// state rather than a fixed point.
type Result struct {
	PreMoneyShares      float64   `json:"preMoneyShares"`
	PostMoneyShares     float64   `json:"postMoneyShares"`
	PricePerShare       float64   `json:"pricePerShare"`
	OptionsPoolSize     float64   `json:"optionsPoolSize"`
	OptionsPoolIncrease float64   `json:"optionsPoolIncrease"`
	TotalShares         float64   `json:"totalShares"`
	NewInvestorShares   float64   `json:"newInvestorShares"`
	NotePrices          []float64 `json:"notePrices,omitempty"`
	ConvertedNoteShares float64   `json:"convertedNoteShares"`
	TotalOptions        float64   `json:"totalOptions"`
	TotalInvested       float64   `json:"totalInvested"`
	Converged           bool      `json:"converged"`
	Iterations          int       `json:"iterations"`
}

// Solver runs the fixed-point iteration that reconciles option-pool size,
// total share count, and price per share.
type Solver struct {
	logger   *zap.Logger
	settings Settings
}

// NewSolver creates a solver with the given logger and settings. A nil
// logger falls back to a no-op logger; a non-positive iteration cap falls
// back to the default.
func NewSolver(logger *zap.Logger, settings Settings) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxIterations <= 0 {
		settings.MaxIterations = constants.DefaultMaxIterations
	}
	return &Solver{logger: logger, settings: settings}
}

// iteration holds the intermediate values of one pass over the circular
// dependency at a fixed total share count.
type iteration struct {
	optionsPool     float64
	increase        float64
	pricePerShare   float64
	seriesShares    float64
	preMoneyShares  float64
	postMoneyShares float64
	noteShares      float64
	newTotal        float64
}

// Solve iterates until the total share count stabilizes or the iteration
// budget runs out, then recomputes the full result at the stabilized total.
func (s *Solver) Solve(p Problem) Result {
	policy := s.settings.Policy
	total := p.CommonShares + p.UnusedOptions
	converged := false
	iterations := 0

	for i := 1; i <= s.settings.MaxIterations; i++ {
		iterations = i
		step := s.step(p, total)
		if step.newTotal == total {
			converged = true
			break
		}
		total = step.newTotal
	}

	final := s.step(p, total)

	prices := make([]float64, len(p.Notes))
	for i, note := range p.Notes {
		prices[i] = numeric.RoundPriceUp(
			ConversionPrice(note, final.preMoneyShares, final.postMoneyShares, final.pricePerShare),
			policy.PricePlaces,
		)
	}

	result := Result{
		PreMoneyShares:      final.preMoneyShares,
		PostMoneyShares:     final.postMoneyShares,
		PricePerShare:       final.pricePerShare,
		OptionsPoolSize:     final.optionsPool,
		OptionsPoolIncrease: final.increase,
		TotalShares:         final.newTotal,
		NewInvestorShares:   final.seriesShares,
		NotePrices:          prices,
		ConvertedNoteShares: final.noteShares,
		TotalOptions:        final.optionsPool,
		TotalInvested:       captable.TotalSeriesInvestment(p.Series) + captable.TotalNoteInvestment(p.Notes),
		Converged:           converged,
		Iterations:          iterations,
	}

	s.logger.Debug("priced round solved",
		zap.String("op", "conversion.Solve"),
		zap.Float64("pricePerShare", result.PricePerShare),
		zap.Float64("totalShares", result.TotalShares),
		zap.Int("iterations", result.Iterations),
		zap.Bool("converged", result.Converged),
	)

	return result
}

// step computes one pass of the circular dependency at a fixed total.
func (s *Solver) step(p Problem, totalShares float64) iteration {
	policy := s.settings.Policy
	var it iteration

	it.optionsPool = policy.RoundShareCount(totalShares * p.TargetOptionPct)
	if it.optionsPool < p.UnusedOptions {
		it.optionsPool = p.UnusedOptions
	}
	it.increase = it.optionsPool - p.UnusedOptions

	if totalShares > 0 {
		raw := (p.PreMoneyValuation + captable.TotalSeriesInvestment(p.Series)) / totalShares
		it.pricePerShare = numeric.RoundPriceUp(raw, policy.PricePlaces)
	}

	if it.pricePerShare > 0 {
		for _, inv := range p.Series {
			it.seriesShares += policy.RoundShareCount(inv.Investment / it.pricePerShare)
		}
	}

	it.preMoneyShares = p.CommonShares + p.UnusedOptions + it.increase
	it.postMoneyShares = totalShares - it.seriesShares - it.increase
	it.noteShares = SumConvertedShares(p.Notes, it.pricePerShare, it.preMoneyShares, it.postMoneyShares, policy)
	it.newTotal = it.seriesShares + p.CommonShares + it.optionsPool + it.noteShares

	return it
}
