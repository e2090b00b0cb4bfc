package config

import (
	"fmt"

	"github.com/iwvelando/captable/pkg/captable"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings are advisory; structurally invalid notes are
// detected separately by the engine and block the priced-round computation.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Company.Holdings) == 0 {
		warnings = append(warnings, "No holdings configured - ownership tables will be empty")
	}

	for _, h := range conf.Company.Holdings {
		if h.Shares < 0 {
			warnings = append(warnings, fmt.Sprintf("Holding '%s' has a negative share count (%v)", h.Name, h.Shares))
		}
	}

	for _, n := range conf.Notes {
		if n.Investment <= 0 {
			warnings = append(warnings, fmt.Sprintf("Note '%s' has a non-positive investment (%v)", n.Name, n.Investment))
		}
		if n.Cap < 0 {
			warnings = append(warnings, fmt.Sprintf("Note '%s' has a negative valuation cap (%v)", n.Name, n.Cap))
		}
		if n.Discount < 0 || n.Discount >= 1 {
			warnings = append(warnings, fmt.Sprintf("Note '%s' has a discount outside [0, 1) (%v)", n.Name, n.Discount))
		}
		if n.Style != "" && n.Style != string(captable.StylePreMoneyDefault) && captable.ParseStyle(n.Style) == captable.StylePreMoneyDefault {
			warnings = append(warnings, fmt.Sprintf("Note '%s' has an unrecognized conversion style '%s' - treating as pre-money", n.Name, n.Style))
		}
	}

	for _, s := range conf.Series {
		if s.Investment <= 0 {
			warnings = append(warnings, fmt.Sprintf("Series investment '%s' has a non-positive amount (%v)", s.Name, s.Investment))
		}
	}

	if conf.Round.TargetOptionPct < 0 || conf.Round.TargetOptionPct >= 1 {
		if conf.Round.TargetOptionPct != 0 {
			warnings = append(warnings, fmt.Sprintf("Target option pool percentage %v is outside [0, 1)", conf.Round.TargetOptionPct))
		}
	}

	if conf.Round.PreMoneyValuation <= 0 {
		warnings = append(warnings, "Pre-money valuation is not set - the priced round will be skipped")
	}

	return warnings
}
