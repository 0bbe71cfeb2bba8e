package rentabilitaet

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// Deliberately simplified German small-business tax model: an effective rate
// clamped to 25–35% for typical sole-proprietor income. This is a product
// decision, not a progressive-tariff calculator.
var (
	kleinunternehmerGrenze = decimal.NewFromInt(22000)
	steuersatzMin          = decimal.NewFromInt(25)
	steuersatzMax          = decimal.NewFromInt(35)
	steuersatzBasisGewinn  = decimal.NewFromInt(30000)
	steuersatzSpanneGewinn = decimal.NewFromInt(70000)
)

// effektiverSteuersatz returns the effective tax rate in percent.
// Zero for losses, and zero when the Kleinunternehmer regime is selected and
// annual revenue stays below the €22,000 threshold. Above that the rate
// scales linearly from 25% at €30,000 profit to 35% at €100,000.
func effektiverSteuersatz(ergebnisVorSteuern, jahresumsatz decimal.Decimal, kleinunternehmer bool) decimal.Decimal {
	if !ergebnisVorSteuern.IsPositive() {
		return decimal.Zero
	}
	if kleinunternehmer && jahresumsatz.LessThan(kleinunternehmerGrenze) {
		return decimal.Zero
	}

	anteil := ergebnisVorSteuern.Sub(steuersatzBasisGewinn).
		Mul(decimal.NewFromInt(10)).
		DivRound(steuersatzSpanneGewinn, 16)
	satz := steuersatzMin.Add(anteil)
	if satz.LessThan(steuersatzMin) {
		return steuersatzMin
	}
	if satz.GreaterThan(steuersatzMax) {
		return steuersatzMax
	}
	return satz
}

// cagrPercent is the compound annual growth rate from year 1 to year 3.
// The fractional root goes through float64; the figure is advisory (growth
// plausibility check), never part of a documented money amount.
func cagrPercent(jahr1, jahr3 decimal.Decimal) decimal.Decimal {
	if !jahr1.IsPositive() || !jahr3.IsPositive() {
		return decimal.Zero
	}
	verhaeltnis, _ := jahr3.DivRound(jahr1, 16).Float64()
	cagr := (math.Sqrt(verhaeltnis) - 1) * 100
	return money.Round2(decimal.NewFromFloat(cagr))
}
