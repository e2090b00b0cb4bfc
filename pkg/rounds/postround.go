package rounds

import (
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/constants"
	"github.com/iwvelando/captable/pkg/conversion"
	"github.com/iwvelando/captable/pkg/numeric"
)

// PostRound assembles the final ownership table from a converged solver
// result. Option-pool holdings are folded into the refreshed pool row rather
// than listed alongside common stock; every other holding keeps its shares.
// Notes convert at their entry in the result's parallel price list.
func PostRound(holdings []captable.Holding, notes []captable.Note, series []captable.Series, result conversion.Result, policy numeric.Policy) captable.Table {
	total := result.TotalShares
	table := captable.Table{Status: captable.TableOK}

	ownership := func(shares float64) float64 {
		if total > 0 {
			return shares / total
		}
		return 0
	}

	for _, h := range holdings {
		if h.IsOptionPool() {
			continue
		}
		table.Rows = append(table.Rows, captable.Row{
			Kind:      captable.RowCommon,
			ID:        h.ID,
			Name:      h.Name,
			Category:  h.Category,
			Shares:    h.Shares,
			Ownership: ownership(h.Shares),
		})
	}

	for i, note := range notes {
		var price float64
		if i < len(result.NotePrices) {
			price = result.NotePrices[i]
		}
		shares := 0.0
		if price > 0 {
			shares = policy.RoundShareCount(note.Investment / price)
		}
		table.Rows = append(table.Rows, captable.Row{
			Kind:      captable.RowNote,
			ID:        note.ID,
			Name:      note.Name,
			Shares:    shares,
			Ownership: ownership(shares),
			Invested:  note.Investment,
			Price:     price,
			MFN:       conversion.IsMFN(note),
		})
	}

	for _, inv := range series {
		shares := 0.0
		if result.PricePerShare > 0 {
			shares = policy.RoundShareCount(inv.Investment / result.PricePerShare)
		}
		table.Rows = append(table.Rows, captable.Row{
			Kind:      captable.RowSeries,
			ID:        inv.ID,
			Name:      inv.Name,
			Shares:    shares,
			Ownership: ownership(shares),
			Invested:  inv.Investment,
			Price:     result.PricePerShare,
		})
	}

	table.Rows = append(table.Rows, captable.Row{
		Kind:      captable.RowOptionPoolRefresh,
		Name:      constants.OptionPoolCategory,
		Shares:    result.TotalOptions,
		Ownership: ownership(result.TotalOptions),
	})

	table.Rows = append(table.Rows, captable.Row{
		Kind:      captable.RowTotal,
		Name:      "Total",
		Shares:    total,
		Invested:  result.TotalInvested,
		Ownership: 1,
	})

	return table
}
