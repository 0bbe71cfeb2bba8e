package domain

import (
	"github.com/shopspring/decimal"
)

// Privatentnahme itemizes the founder's monthly private living costs.
// The monthly and annual totals are derived on read.
type Privatentnahme struct {
	Miete               decimal.Decimal
	Nebenkosten         decimal.Decimal
	Lebensmittel        decimal.Decimal
	Krankenversicherung decimal.Decimal
	Altersvorsorge      decimal.Decimal
	Versicherungen      decimal.Decimal
	Mobilitaet          decimal.Decimal
	Kommunikation       decimal.Decimal
	Freizeit            decimal.Decimal
	Ruecklagen          decimal.Decimal
	Sonstige            decimal.Decimal
}

// Kategorien returns the itemized positions keyed by field name.
// Housing is Miete + Nebenkosten; savings are Altersvorsorge + Ruecklagen.
func (p *Privatentnahme) Kategorien() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"miete":               p.Miete,
		"nebenkosten":         p.Nebenkosten,
		"lebensmittel":        p.Lebensmittel,
		"krankenversicherung": p.Krankenversicherung,
		"altersvorsorge":      p.Altersvorsorge,
		"versicherungen":      p.Versicherungen,
		"mobilitaet":          p.Mobilitaet,
		"kommunikation":       p.Kommunikation,
		"freizeit":            p.Freizeit,
		"ruecklagen":          p.Ruecklagen,
		"sonstige":            p.Sonstige,
	}
}

// Validate ensures no category is negative
func (p *Privatentnahme) Validate() error {
	for field, betrag := range p.Kategorien() {
		if betrag.IsNegative() {
			return NewValidationError("privatentnahme."+field, "amount must not be negative")
		}
	}
	return nil
}
