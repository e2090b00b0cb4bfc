package conversion

import (
	"github.com/iwvelando/captable/pkg/captable"
	"github.com/iwvelando/captable/pkg/numeric"
)

// ConversionPrice computes a single note's effective conversion price given
// the round's price per share and the share counts the cap divides into. An
// uncapped note prices purely off its discount. A capped note receives the
// more favorable (lower) of the discounted price and the cap price.
func ConversionPrice(note captable.Note, preMoneyShares, postMoneyShares, pricePerShare float64) float64 {
	discountPrice := pricePerShare * (1 - note.Discount)
	if note.Cap == 0 {
		return discountPrice
	}

	var capPrice float64
	if note.Style == captable.StylePreMoney || note.Style == captable.StylePreMoneyDefault {
		if preMoneyShares > 0 {
			capPrice = note.Cap / preMoneyShares
		}
	} else {
		if postMoneyShares > 0 {
			capPrice = note.Cap / postMoneyShares
		}
	}
	if capPrice <= 0 {
		return discountPrice
	}

	if capPrice < discountPrice {
		return capPrice
	}
	return discountPrice
}

// SumConvertedShares totals the share count every note converts into at the
// given price context. Each note's price is rounded up to the policy's
// precision before dividing, and each resulting share count is rounded per
// policy before summing.
func SumConvertedShares(notes []captable.Note, pricePerShare, preMoneyShares, postMoneyShares float64, policy numeric.Policy) float64 {
	total := 0.0
	for _, note := range notes {
		price := numeric.RoundPriceUp(ConversionPrice(note, preMoneyShares, postMoneyShares, pricePerShare), policy.PricePlaces)
		if price <= 0 {
			continue
		}
		total += policy.RoundShareCount(note.Investment / price)
	}
	return total
}
