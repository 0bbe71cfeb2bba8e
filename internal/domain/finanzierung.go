package domain

import (
	"github.com/shopspring/decimal"
)

// QuellenTyp classifies a financing source
type QuellenTyp string

const (
	QuellenTypEigenkapital       QuellenTyp = "eigenkapital"
	QuellenTypGruendungszuschuss QuellenTyp = "gruendungszuschuss"
	QuellenTypBankkredit         QuellenTyp = "bankkredit"
	QuellenTypFoerderdarlehen    QuellenTyp = "foerderdarlehen"
	QuellenTypPrivatdarlehen     QuellenTyp = "privatdarlehen"
	QuellenTypSonstige           QuellenTyp = "sonstige"
)

// Equity-like sources: own capital plus non-repayable subsidies.
// Everything else counts as debt for the ratio calculation.
func (t QuellenTyp) IsEigenkapital() bool {
	return t == QuellenTypEigenkapital || t == QuellenTypGruendungszuschuss
}

// QuellenStatus tracks how firm a financing source is
type QuellenStatus string

const (
	QuellenStatusGesichert QuellenStatus = "gesichert"
	QuellenStatusBeantragt QuellenStatus = "beantragt"
	QuellenStatusGeplant   QuellenStatus = "geplant"
)

// Finanzierungsquelle is a single financing source in the plan
type Finanzierungsquelle struct {
	Typ         QuellenTyp
	Bezeichnung string
	Betrag      decimal.Decimal
	Status      QuellenStatus
}

// Validate ensures the financing source is well formed
func (f *Finanzierungsquelle) Validate() error {
	switch f.Typ {
	case QuellenTypEigenkapital, QuellenTypGruendungszuschuss, QuellenTypBankkredit,
		QuellenTypFoerderdarlehen, QuellenTypPrivatdarlehen, QuellenTypSonstige:
	default:
		return NewValidationError("finanzierungsquelle.typ", "unknown source type")
	}
	switch f.Status {
	case QuellenStatusGesichert, QuellenStatusBeantragt, QuellenStatusGeplant:
	default:
		return NewValidationError("finanzierungsquelle.status", "unknown source status")
	}
	if f.Betrag.IsNegative() {
		return NewValidationError("finanzierungsquelle.betrag", "amount must not be negative")
	}
	return nil
}

// Darlehenskondition holds the repayment terms of a loan-type source, used to
// derive annuity payments and the monthly Tilgung outflow in the liquidity plan.
type Darlehenskondition struct {
	Bezeichnung    string
	Betrag         decimal.Decimal
	ZinsPercent    decimal.Decimal // nominal annual interest rate
	LaufzeitMonate int
}

// Validate ensures the loan terms are inside their domain
func (d *Darlehenskondition) Validate() error {
	if d.Betrag.IsNegative() {
		return NewValidationError("darlehen.betrag", "amount must not be negative")
	}
	if d.ZinsPercent.IsNegative() {
		return NewValidationError("darlehen.zinsPercent", "interest rate must not be negative")
	}
	if d.LaufzeitMonate < 0 {
		return NewValidationError("darlehen.laufzeitMonate", "term must not be negative")
	}
	return nil
}

// Finanzierung aggregates the financing side of the plan.
// Totals, ratios and the gap are derived on read, never stored.
type Finanzierung struct {
	Quellen  []Finanzierungsquelle
	Darlehen []Darlehenskondition

	// Gründungszuschuss inputs: the founder's ALG I monthly entitlement and
	// the two subsidy phases in months.
	ALG1Monatlich  decimal.Decimal
	GZPhase1Monate int
	GZPhase2Monate int
}

// Validate validates all sources and loan terms
func (f *Finanzierung) Validate() error {
	for idx := range f.Quellen {
		if err := f.Quellen[idx].Validate(); err != nil {
			return err
		}
	}
	for idx := range f.Darlehen {
		if err := f.Darlehen[idx].Validate(); err != nil {
			return err
		}
	}
	if f.ALG1Monatlich.IsNegative() {
		return NewValidationError("finanzierung.alg1Monatlich", "amount must not be negative")
	}
	if f.GZPhase1Monate < 0 || f.GZPhase2Monate < 0 {
		return NewValidationError("finanzierung.gzPhasen", "phase months must not be negative")
	}
	return nil
}
