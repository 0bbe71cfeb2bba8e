package domain

import (
	"github.com/shopspring/decimal"
)

// Gruendungskosten are the one-off founding costs of the business
type Gruendungskosten struct {
	Notar           decimal.Decimal
	Handelsregister decimal.Decimal
	Beratung        decimal.Decimal
	Marketing       decimal.Decimal
	Sonstige        decimal.Decimal
}

// Validate ensures no founding cost position is negative
func (g *Gruendungskosten) Validate() error {
	positions := map[string]decimal.Decimal{
		"notar":           g.Notar,
		"handelsregister": g.Handelsregister,
		"beratung":        g.Beratung,
		"marketing":       g.Marketing,
		"sonstige":        g.Sonstige,
	}
	for field, betrag := range positions {
		if betrag.IsNegative() {
			return NewValidationError("gruendungskosten."+field, "amount must not be negative")
		}
	}
	return nil
}

// Investition is a single planned investment position
type Investition struct {
	Name               string
	Kategorie          string
	Betrag             decimal.Decimal
	NutzungsdauerJahre int // 0 = not depreciated / not specified
}

// Validate ensures the investment position is well formed
func (i *Investition) Validate() error {
	if i.Name == "" {
		return NewValidationError("investition.name", "name is required")
	}
	if i.Betrag.IsNegative() {
		return NewValidationError("investition.betrag", "amount must not be negative")
	}
	if i.NutzungsdauerJahre < 0 {
		return NewValidationError("investition.nutzungsdauer", "useful life must not be negative")
	}
	return nil
}

// Anlaufkosten describe the ramp-up phase: how many months of operating costs
// must be pre-financed, plus a safety reserve on top.
type Anlaufkosten struct {
	Monate           int
	MonatlicheKosten decimal.Decimal
	ReservePercent   decimal.Decimal
}

// Validate ensures the ramp-up inputs are inside their domain
func (a *Anlaufkosten) Validate() error {
	if a.Monate < 0 {
		return NewValidationError("anlaufkosten.monate", "months must not be negative")
	}
	if a.MonatlicheKosten.IsNegative() {
		return NewValidationError("anlaufkosten.monatlicheKosten", "amount must not be negative")
	}
	if a.ReservePercent.IsNegative() {
		return NewValidationError("anlaufkosten.reservePercent", "reserve percentage must not be negative")
	}
	return nil
}

// Kapitalbedarf aggregates the three capital requirement blocks.
// The total is never stored; it is recomputed on every read.
type Kapitalbedarf struct {
	Gruendungskosten Gruendungskosten
	Investitionen    []Investition
	Anlaufkosten     Anlaufkosten
}

// Validate validates every child aggregate
func (k *Kapitalbedarf) Validate() error {
	if err := k.Gruendungskosten.Validate(); err != nil {
		return err
	}
	for idx := range k.Investitionen {
		if err := k.Investitionen[idx].Validate(); err != nil {
			return err
		}
	}
	return k.Anlaufkosten.Validate()
}
