package domain

import (
	"github.com/shopspring/decimal"
)

// Umsatzplanung is the externally supplied revenue plan: a monthly series of
// planned (earned) revenue covering up to 36 months. The coaching layer owns
// its generation; here it is a read-only input.
type Umsatzplanung struct {
	Monatlich []decimal.Decimal

	// ZahlungszielTage is the average payment term granted to customers.
	// German B2B default is 30 days; 0 means cash business.
	ZahlungszielTage int
}

// Validate ensures the revenue series is well formed
func (u *Umsatzplanung) Validate() error {
	for _, umsatz := range u.Monatlich {
		if umsatz.IsNegative() {
			return NewValidationError("umsatzplanung.monatlich", "revenue must not be negative")
		}
	}
	if u.ZahlungszielTage < 0 {
		return NewValidationError("umsatzplanung.zahlungszielTage", "payment term must not be negative")
	}
	return nil
}

// Monat returns planned revenue for the 1-based month m. Months past the end
// of the series carry the last planned value forward, so a 12-month plan can
// still drive a 36-month projection.
func (u *Umsatzplanung) Monat(m int) decimal.Decimal {
	if len(u.Monatlich) == 0 || m < 1 {
		return decimal.Zero
	}
	if m > len(u.Monatlich) {
		return u.Monatlich[len(u.Monatlich)-1]
	}
	return u.Monatlich[m-1]
}

// Kostenplanung is the externally supplied cost structure
type Kostenplanung struct {
	FixkostenMonatlich      decimal.Decimal
	MaterialaufwandPercent  decimal.Decimal // % of revenue
	SonstigeVariablePercent decimal.Decimal // % of revenue, non-material
}

// VariableKostenPercent is the combined variable cost share of revenue
func (k *Kostenplanung) VariableKostenPercent() decimal.Decimal {
	return k.MaterialaufwandPercent.Add(k.SonstigeVariablePercent)
}

// Validate ensures costs are non-negative and the combined variable cost
// percentage stays below 100 (a plan at or above 100% can never break even)
func (k *Kostenplanung) Validate() error {
	if k.FixkostenMonatlich.IsNegative() {
		return NewValidationError("kostenplanung.fixkostenMonatlich", "amount must not be negative")
	}
	if k.MaterialaufwandPercent.IsNegative() || k.SonstigeVariablePercent.IsNegative() {
		return NewValidationError("kostenplanung.variableKosten", "percentage must not be negative")
	}
	if k.VariableKostenPercent().GreaterThan(decimal.NewFromInt(99)) {
		return NewValidationError("kostenplanung.variableKosten", "combined variable cost percentage must be at most 99")
	}
	return nil
}
