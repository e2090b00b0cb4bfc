// Package rounds builds the pre-round and post-round ownership tables from
// resolved notes and, for the post-round table, a converged solver result.
package rounds

import (
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/numeric"
)

// Table-level reasons for non-computable pre-round estimates.
const (
	// ReasonInvalidNotes marks a pre-round table zeroed out by structurally
	// invalid notes.
	ReasonInvalidNotes = "cap table cannot be estimated while a note's investment meets or exceeds its cap"

	// ReasonNoCaps marks a pre-round table that cannot be modeled because
	// every note is uncapped.
	ReasonNoCaps = "at least one valuation cap is required to estimate note ownership"

	// ReasonNotesExceedCompany marks an estimate whose post-money note
	// fractions claim the entire company.
	ReasonNotesExceedCompany = "notes claim 100% or more of the company"
)

// PreRound estimates ownership immediately after note conversion but before
// the priced round. Notes must already carry resolved caps. The estimate
// branches on the note-set state: no notes yields a pro-rata table, an
// invalid note yields an error table, an all-uncapped set yields a
// to-be-determined table, and otherwise the note caps stand in for a
// valuation to solve the implied total in closed form.
func PreRound(holdings []captable.Holding, notes []captable.Note, policy numeric.Policy) captable.Table {
	existingShares := 0.0
	for _, h := range holdings {
		existingShares += h.Shares
	}

	if len(notes) == 0 {
		return proRataTable(holdings, existingShares)
	}

	maxCap := 0.0
	for _, note := range notes {
		if note.Cap != 0 && note.Cap <= note.Investment {
			return zeroedTable(holdings, notes, captable.TableError, ReasonInvalidNotes)
		}
		if note.Cap > maxCap {
			maxCap = note.Cap
		}
	}
	if maxCap == 0 {
		return zeroedTable(holdings, notes, captable.TableTBD, ReasonNoCaps)
	}

	return estimateTable(holdings, notes, existingShares, maxCap, policy)
}

// proRataTable spreads ownership across holdings by share count alone.
func proRataTable(holdings []captable.Holding, existingShares float64) captable.Table {
	table := captable.Table{Status: captable.TableOK}
	for _, h := range holdings {
		ownership := 0.0
		if existingShares > 0 {
			ownership = h.Shares / existingShares
		}
		table.Rows = append(table.Rows, captable.Row{
			Kind:      captable.RowCommon,
			ID:        h.ID,
			Name:      h.Name,
			Category:  h.Category,
			Shares:    h.Shares,
			Ownership: ownership,
		})
	}
	table.Rows = append(table.Rows, captable.Row{
		Kind:      captable.RowTotal,
		Name:      "Total",
		Shares:    existingShares,
		Ownership: 1,
	})
	return table
}

// zeroedTable keeps the row shape but zeroes every ownership figure, tagging
// notes with a per-note reason where one applies.
func zeroedTable(holdings []captable.Holding, notes []captable.Note, status captable.TableStatus, reason string) captable.Table {
	table := captable.Table{Status: status, Reason: reason}
	for _, h := range holdings {
		table.Rows = append(table.Rows, captable.Row{
			Kind:     captable.RowCommon,
			ID:       h.ID,
			Name:     h.Name,
			Category: h.Category,
			Shares:   h.Shares,
			Reason:   reason,
		})
	}
	for _, note := range notes {
		noteReason := reason
		if status == captable.TableError {
			if note.Cap != 0 && note.Cap <= note.Investment {
				noteReason = captable.MsgInvestmentExceedsCap
			} else {
				noteReason = ""
			}
		}
		table.Rows = append(table.Rows, captable.Row{
			Kind:     captable.RowNote,
			ID:       note.ID,
			Name:     note.Name,
			Invested: note.Investment,
			Reason:   noteReason,
		})
	}
	return table
}

// estimateTable values each note off its own cap, or the largest cap in the
// set when it has none, and solves the one remaining unknown (the implied
// total share count) in closed form.
func estimateTable(holdings []captable.Holding, notes []captable.Note, existingShares, proxyCap float64, policy numeric.Policy) captable.Table {
	type noteEstimate struct {
		note      captable.Note
		preStyle  bool
		shares    float64
		ownership float64
	}

	estimates := make([]noteEstimate, 0, len(notes))
	preMoneySum := existingShares
	postPctSum := 0.0

	for _, note := range notes {
		capOrProxy := note.Cap
		if capOrProxy == 0 {
			capOrProxy = proxyCap
		}

		est := noteEstimate{note: note}
		switch note.Style {
		case captable.StylePreMoney, captable.StylePreMoneyDefault:
			est.preStyle = true
			est.shares = policy.RoundShareCount((note.Investment / capOrProxy) * existingShares)
			preMoneySum += est.shares
		default:
			est.ownership = note.Investment / capOrProxy
			postPctSum += est.ownership
		}
		estimates = append(estimates, est)
	}

	if postPctSum >= 1 {
		return zeroedTable(holdings, notes, captable.TableError, ReasonNotesExceedCompany)
	}

	impliedTotal := policy.RoundShareCount(preMoneySum / (1 - postPctSum))

	table := captable.Table{Status: captable.TableOK}
	for _, h := range holdings {
		ownership := 0.0
		if impliedTotal > 0 {
			ownership = h.Shares / impliedTotal
		}
		table.Rows = append(table.Rows, captable.Row{
			Kind:      captable.RowCommon,
			ID:        h.ID,
			Name:      h.Name,
			Category:  h.Category,
			Shares:    h.Shares,
			Ownership: ownership,
		})
	}
	for _, est := range estimates {
		row := captable.Row{
			Kind:     captable.RowNote,
			ID:       est.note.ID,
			Name:     est.note.Name,
			Invested: est.note.Investment,
		}
		if est.preStyle {
			row.Shares = est.shares
			if impliedTotal > 0 {
				row.Ownership = est.shares / impliedTotal
			}
		} else {
			row.Ownership = est.ownership
			row.Shares = policy.RoundShareCount(est.ownership * impliedTotal)
		}
		table.Rows = append(table.Rows, row)
	}
	table.Rows = append(table.Rows, captable.Row{
		Kind:      captable.RowTotal,
		Name:      "Total",
		Shares:    impliedTotal,
		Invested:  captable.TotalNoteInvestment(notes),
		Ownership: 1,
	})
	return table
}
