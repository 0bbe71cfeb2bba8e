package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/benchmark"
	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// Result is the break-even analysis of the plan
type Result struct {
	BreakEvenUmsatzMonatlich decimal.Decimal
	BreakEvenUmsatzJaehrlich decimal.Decimal
	DeckungsbeitragPercent   decimal.Decimal
	// BreakEvenMonat is the first month whose planned revenue meets the
	// break-even revenue; 0 means not reached within the supplied series.
	BreakEvenMonat        int
	IsReachableIn36Months bool
	Warnings              []domain.Finding
}

// Scenario is one perturbed input in the sensitivity analysis
type Scenario struct {
	Parameter                string // "fixkosten" or "variableKosten"
	DeltaPercent             decimal.Decimal
	BreakEvenUmsatzMonatlich decimal.Decimal
	Verschiebung             decimal.Decimal // shift vs the base break-even revenue
}

// Service calculates the break-even point of the plan
type Service struct {
	Money *money.Context
}

// NewService creates a new BreakEven Service instance
func NewService(moneyCtx *money.Context) *Service {
	return &Service{Money: moneyCtx}
}

var (
	hundert = decimal.NewFromInt(100)
	zwoelf  = decimal.NewFromInt(12)
)

// ComputeBreakEven derives the break-even revenue:
//
//	breakEvenMonthly = fixedCosts / (1 − variableCostPct/100)
//	deckungsbeitrag% = 100 − variableCostPct
//
// If a monthly revenue series is supplied, the break-even month is the first
// month whose point-in-month planned revenue meets or exceeds the break-even
// revenue (not the cumulative crossing).
func (s *Service) ComputeBreakEven(fixkostenMonatlich, variableKostenPct decimal.Decimal, umsatzreihe []decimal.Decimal) (*Result, error) {
	if err := money.CheckNonNegative("fixkostenMonatlich", fixkostenMonatlich); err != nil {
		return nil, err
	}
	if err := money.CheckPercentRange("variableKostenPct", variableKostenPct, decimal.Zero, decimal.NewFromInt(99)); err != nil {
		return nil, err
	}

	deckungsbeitrag := hundert.Sub(variableKostenPct)
	monatlich, err := s.Money.Div(fixkostenMonatlich.Mul(hundert), deckungsbeitrag)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BreakEvenUmsatzMonatlich: money.Round2(monatlich),
		BreakEvenUmsatzJaehrlich: money.Round2(monatlich.Mul(zwoelf)),
		DeckungsbeitragPercent:   deckungsbeitrag,
	}

	if len(umsatzreihe) == 0 {
		return result, nil
	}

	for idx, umsatz := range umsatzreihe {
		if umsatz.IsNegative() {
			return nil, domain.NewValidationError("umsatzreihe", "revenue must not be negative")
		}
		if result.BreakEvenMonat == 0 && umsatz.GreaterThanOrEqual(result.BreakEvenUmsatzMonatlich) {
			result.BreakEvenMonat = idx + 1
		}
	}

	result.IsReachableIn36Months = result.BreakEvenMonat > 0 && result.BreakEvenMonat <= 36
	if !result.IsReachableIn36Months {
		result.Warnings = append(result.Warnings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeBreakEvenNichtErreicht,
			Message: fmt.Sprintf("Der geplante Umsatz erreicht die Gewinnschwelle von %s monatlich nicht innerhalb von 36 Monaten",
				money.FormatEUR(result.BreakEvenUmsatzMonatlich)),
		})
	}
	return result, nil
}

// SensitivityAnalysis perturbs each input by ±deltaPercent and reports how the
// break-even revenue shifts. Variable-cost scenarios that would leave the
// valid [0, 99] range are skipped.
func (s *Service) SensitivityAnalysis(fixkostenMonatlich, variableKostenPct, deltaPercent decimal.Decimal) ([]Scenario, error) {
	basis, err := s.ComputeBreakEven(fixkostenMonatlich, variableKostenPct, nil)
	if err != nil {
		return nil, err
	}
	if err := money.CheckNonNegative("deltaPercent", deltaPercent); err != nil {
		return nil, err
	}

	deltas := []decimal.Decimal{deltaPercent, deltaPercent.Neg()}
	scenarios := make([]Scenario, 0, 4)

	for _, delta := range deltas {
		faktor := hundert.Add(delta).Shift(-2)

		fixiert, err := s.ComputeBreakEven(fixkostenMonatlich.Mul(faktor), variableKostenPct, nil)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, Scenario{
			Parameter:                "fixkosten",
			DeltaPercent:             delta,
			BreakEvenUmsatzMonatlich: fixiert.BreakEvenUmsatzMonatlich,
			Verschiebung:             fixiert.BreakEvenUmsatzMonatlich.Sub(basis.BreakEvenUmsatzMonatlich),
		})

		variiert := variableKostenPct.Mul(faktor)
		if variiert.IsNegative() || variiert.GreaterThan(decimal.NewFromInt(99)) {
			continue
		}
		variabel, err := s.ComputeBreakEven(fixkostenMonatlich, variiert, nil)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, Scenario{
			Parameter:                "variableKosten",
			DeltaPercent:             delta,
			BreakEvenUmsatzMonatlich: variabel.BreakEvenUmsatzMonatlich,
			Verschiebung:             variabel.BreakEvenUmsatzMonatlich.Sub(basis.BreakEvenUmsatzMonatlich),
		})
	}
	return scenarios, nil
}

// ValidateRealism compares the break-even analysis against the industry
// benchmark band. Advisory only.
func (s *Service) ValidateRealism(result *Result, branche string) []domain.Finding {
	profil, ok := benchmark.Branche(branche)
	if !ok {
		return nil
	}

	var findings []domain.Finding
	if result.DeckungsbeitragPercent.GreaterThan(profil.RohertragsmargeMax) {
		findings = append(findings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeBreakEvenUnrealistisch,
			Message: fmt.Sprintf("Deckungsbeitrag von %s%% liegt über dem Branchenüblichen Maximum von %s%% (%s)",
				result.DeckungsbeitragPercent.StringFixed(2), profil.RohertragsmargeMax.StringFixed(2), profil.Name),
		})
	}
	if result.BreakEvenMonat > 2*profil.BreakEvenMonatTypisch {
		findings = append(findings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeBreakEvenUnrealistisch,
			Message: fmt.Sprintf("Gewinnschwelle erst in Monat %d; branchentypisch sind rund %d Monate (%s)",
				result.BreakEvenMonat, profil.BreakEvenMonatTypisch, profil.Name),
		})
	}
	return findings
}
