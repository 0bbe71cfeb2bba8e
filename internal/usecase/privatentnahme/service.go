package privatentnahme

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/benchmark"
	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// Sustainability grades how much room the withdrawal budget leaves
type Sustainability string

const (
	SustainabilityComfortable Sustainability = "comfortable"
	SustainabilityTight       Sustainability = "tight"
	SustainabilityCritical    Sustainability = "critical"
)

// SpendingAnalysis is the advisory breakdown of the withdrawal budget
type SpendingAnalysis struct {
	HousingRatio   decimal.Decimal // percent of total
	SavingsRate    decimal.Decimal // percent of total
	Sustainability Sustainability
	Empfehlungen   []string
}

// Service calculates the founder's private withdrawal (Privatentnahme) block
type Service struct {
	Money *money.Context
}

// NewService creates a new Privatentnahme Service instance
func NewService(moneyCtx *money.Context) *Service {
	return &Service{Money: moneyCtx}
}

// SumMonthly sums all monthly withdrawal categories
func (s *Service) SumMonthly(entnahme domain.Privatentnahme) (decimal.Decimal, error) {
	if err := entnahme.Validate(); err != nil {
		return decimal.Zero, err
	}
	summe := decimal.Zero
	for _, betrag := range entnahme.Kategorien() {
		summe = summe.Add(betrag)
	}
	return money.Round2(summe), nil
}

// ToAnnual projects a monthly withdrawal to a full year
func (s *Service) ToAnnual(monatlich decimal.Decimal) decimal.Decimal {
	return money.Round2(monatlich.Mul(decimal.NewFromInt(12)))
}

// AdjustForRegion scales baseline living costs to the founder's city.
// Housing categories (Miete, Nebenkosten) take the full regional factor;
// every other category is scaled by the milder non-housing factor. The
// adjustment is a pure function applied before any aggregation.
func (s *Service) AdjustForRegion(basis domain.Privatentnahme, stadt string) domain.Privatentnahme {
	profil := benchmark.Stadt(stadt)

	wohnen := func(d decimal.Decimal) decimal.Decimal { return money.Round2(d.Mul(profil.Wohnen)) }
	sonstige := func(d decimal.Decimal) decimal.Decimal { return money.Round2(d.Mul(profil.Sonstige)) }

	return domain.Privatentnahme{
		Miete:               wohnen(basis.Miete),
		Nebenkosten:         wohnen(basis.Nebenkosten),
		Lebensmittel:        sonstige(basis.Lebensmittel),
		Krankenversicherung: sonstige(basis.Krankenversicherung),
		Altersvorsorge:      sonstige(basis.Altersvorsorge),
		Versicherungen:      sonstige(basis.Versicherungen),
		Mobilitaet:          sonstige(basis.Mobilitaet),
		Kommunikation:       sonstige(basis.Kommunikation),
		Freizeit:            sonstige(basis.Freizeit),
		Ruecklagen:          sonstige(basis.Ruecklagen),
		Sonstige:            sonstige(basis.Sonstige),
	}
}

// AnalyzeSpendingPattern derives the housing ratio, savings rate and a
// sustainability grade.
// Logic:
//   - housingRatio  = (Miete + Nebenkosten) / total × 100
//   - savingsRate   = (Altersvorsorge + Ruecklagen) / total × 100
//   - housing > 50% ⇒ critical, > 40% ⇒ tight, otherwise comfortable
func (s *Service) AnalyzeSpendingPattern(entnahme domain.Privatentnahme) (*SpendingAnalysis, error) {
	total, err := s.SumMonthly(entnahme)
	if err != nil {
		return nil, err
	}
	if total.IsZero() {
		return nil, domain.NewValidationError("privatentnahme", "monthly withdrawal must be greater than zero")
	}

	hundert := decimal.NewFromInt(100)
	wohnkosten := entnahme.Miete.Add(entnahme.Nebenkosten)
	sparen := entnahme.Altersvorsorge.Add(entnahme.Ruecklagen)

	housingRatio, err := s.Money.Div(wohnkosten.Mul(hundert), total)
	if err != nil {
		return nil, err
	}
	savingsRate, err := s.Money.Div(sparen.Mul(hundert), total)
	if err != nil {
		return nil, err
	}

	analysis := &SpendingAnalysis{
		HousingRatio:   money.Round2(housingRatio),
		SavingsRate:    money.Round2(savingsRate),
		Sustainability: SustainabilityComfortable,
	}

	switch {
	case analysis.HousingRatio.GreaterThan(decimal.NewFromInt(50)):
		analysis.Sustainability = SustainabilityCritical
		analysis.Empfehlungen = append(analysis.Empfehlungen,
			"Wohnkosten übersteigen die Hälfte der Entnahme; günstigeren Wohnraum oder Untervermietung prüfen")
	case analysis.HousingRatio.GreaterThan(decimal.NewFromInt(40)):
		analysis.Sustainability = SustainabilityTight
		analysis.Empfehlungen = append(analysis.Empfehlungen,
			"Wohnkostenanteil über 40% lässt wenig Spielraum für schwache Monate")
	}

	if analysis.SavingsRate.LessThan(decimal.NewFromInt(5)) {
		analysis.Empfehlungen = append(analysis.Empfehlungen,
			"Weniger als 5% Rücklagen und Altersvorsorge; Sparquote nach der Anlaufphase erhöhen")
	}
	return analysis, nil
}

// Validate flags a withdrawal budget below the regional subsistence floor.
// The BA rejects plans whose founders cannot live from the planned withdrawal,
// so this surfaces as a warning the holistic validator escalates.
func (s *Service) Validate(entnahme domain.Privatentnahme, stadt string) ([]domain.Finding, error) {
	total, err := s.SumMonthly(entnahme)
	if err != nil {
		return nil, err
	}

	profil := benchmark.Stadt(stadt)
	if total.LessThan(profil.Existenzminimum) {
		return []domain.Finding{{
			Kind: domain.FindingWarning,
			Code: domain.CodePrivatUnterExistenzminimum,
			Message: fmt.Sprintf("Monatliche Privatentnahme von %s liegt unter dem regionalen Existenzminimum von %s",
				money.FormatEUR(total), money.FormatEUR(profil.Existenzminimum)),
		}}, nil
	}
	return nil, nil
}
