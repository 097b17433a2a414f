package domain

import "github.com/shopspring/decimal"

// Canonical Nisab masses in grams. These are religious definitions
// (20 mithqal of gold, 200 dirham of silver), not configuration.
var (
	NisabGoldGrams   = decimal.RequireFromString("87.48")
	NisabSilverGrams = decimal.RequireFromString("612.36")
)

// ObligationRate is the zakat rate applied to wealth above the threshold.
var ObligationRate = decimal.RequireFromString("0.025")

// GramsPerTroyOunce converts price-feed troy-ounce quotes to per-gram prices.
var GramsPerTroyOunce = decimal.RequireFromString("31.1034768")

// NisabMass returns the threshold mass for a basis.
func NisabMass(basis ThresholdBasis) decimal.Decimal {
	if basis == ThresholdBasisSilver {
		return NisabSilverGrams
	}
	return NisabGoldGrams
}

// Obligation computes 2.5% of the wealth in excess of the locked threshold,
// rounded to 2 decimal places. Wealth at or below the threshold owes nothing.
func Obligation(wealth, threshold decimal.Decimal) decimal.Decimal {
	excess := wealth.Sub(threshold)
	if excess.Sign() <= 0 {
		return decimal.Zero
	}
	return excess.Mul(ObligationRate).Round(2)
}
