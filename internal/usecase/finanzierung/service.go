package finanzierung

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// Ratios is the equity/debt structure of the financing plan
type Ratios struct {
	Eigenkapital      decimal.Decimal
	Fremdkapital      decimal.Decimal
	EigenkapitalQuote decimal.Decimal // percent
	FremdkapitalQuote decimal.Decimal // percent
}

// Gruendungszuschuss is the two-phase BA start-up subsidy schedule
type Gruendungszuschuss struct {
	Phase1Monatlich decimal.Decimal
	Phase1Gesamt    decimal.Decimal
	Phase2Monatlich decimal.Decimal
	Phase2Gesamt    decimal.Decimal
	Gesamt          decimal.Decimal
}

// RiskLevel grades the financing structure
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment is the advisory financing risk rating
type RiskAssessment struct {
	Level        RiskLevel
	Faktoren     []string
	Empfehlungen []string
}

// Phase 2 of the Gründungszuschuss pays only the social security flat amount
var gzPauschale = decimal.NewFromInt(300)

// Service calculates the financing structure (Finanzierung) block
type Service struct {
	Money *money.Context
}

// NewService creates a new Finanzierung Service instance
func NewService(moneyCtx *money.Context) *Service {
	return &Service{Money: moneyCtx}
}

// SumFinancing sums all financing sources
func (s *Service) SumFinancing(quellen []domain.Finanzierungsquelle) (decimal.Decimal, error) {
	summe := decimal.Zero
	for idx := range quellen {
		if err := quellen[idx].Validate(); err != nil {
			return decimal.Zero, err
		}
		summe = summe.Add(quellen[idx].Betrag)
	}
	return money.Round2(summe), nil
}

// ComputeRatios derives the equity/debt split and quotas.
// Non-repayable subsidies (Gründungszuschuss) count as equity.
// An empty plan yields zero quotas rather than a division error.
func (s *Service) ComputeRatios(quellen []domain.Finanzierungsquelle) (*Ratios, error) {
	eigen := decimal.Zero
	fremd := decimal.Zero
	for idx := range quellen {
		if err := quellen[idx].Validate(); err != nil {
			return nil, err
		}
		if quellen[idx].Typ.IsEigenkapital() {
			eigen = eigen.Add(quellen[idx].Betrag)
		} else {
			fremd = fremd.Add(quellen[idx].Betrag)
		}
	}

	gesamt := eigen.Add(fremd)
	ratios := &Ratios{
		Eigenkapital: money.Round2(eigen),
		Fremdkapital: money.Round2(fremd),
	}
	if gesamt.IsZero() {
		ratios.EigenkapitalQuote = decimal.Zero
		ratios.FremdkapitalQuote = decimal.Zero
		return ratios, nil
	}

	hundert := decimal.NewFromInt(100)
	eigenQuote, err := s.Money.Div(eigen.Mul(hundert), gesamt)
	if err != nil {
		return nil, err
	}
	fremdQuote, err := s.Money.Div(fremd.Mul(hundert), gesamt)
	if err != nil {
		return nil, err
	}
	ratios.EigenkapitalQuote = money.Round2(eigenQuote)
	ratios.FremdkapitalQuote = money.Round2(fremdQuote)
	return ratios, nil
}

// ComputeGap returns kapitalbedarf − finanzierung, signed:
// positive = shortfall, negative = surplus.
func (s *Service) ComputeGap(kapitalbedarf, finanzierung decimal.Decimal) decimal.Decimal {
	return money.Round2(kapitalbedarf.Sub(finanzierung))
}

// ComputeGruendungszuschuss derives the two-phase subsidy schedule:
// phase 1 pays the ALG I entitlement plus the €300 flat amount, phase 2 only
// the flat amount.
func (s *Service) ComputeGruendungszuschuss(alg1Monatlich decimal.Decimal, phase1Monate, phase2Monate int) (*Gruendungszuschuss, error) {
	if err := money.CheckNonNegative("alg1Monatlich", alg1Monatlich); err != nil {
		return nil, err
	}
	if phase1Monate < 0 || phase2Monate < 0 {
		return nil, domain.NewValidationError("gzPhasen", "phase months must not be negative")
	}

	phase1Monatlich := alg1Monatlich.Add(gzPauschale)
	phase1Gesamt := phase1Monatlich.Mul(decimal.NewFromInt(int64(phase1Monate)))
	phase2Gesamt := gzPauschale.Mul(decimal.NewFromInt(int64(phase2Monate)))
	return &Gruendungszuschuss{
		Phase1Monatlich: money.Round2(phase1Monatlich),
		Phase1Gesamt:    money.Round2(phase1Gesamt),
		Phase2Monatlich: gzPauschale,
		Phase2Gesamt:    money.Round2(phase2Gesamt),
		Gesamt:          money.Round2(phase1Gesamt.Add(phase2Gesamt)),
	}, nil
}

// AssessFinancingRisk grades the financing structure.
// Logic:
//   - equity quota < 20% is a risk factor, < 10% a severe one
//   - an unresolved gap is a risk factor; a gap above 20% of the capital
//     requirement is a severe one
//   - no severe factor: low/medium depending on factor count;
//     one severe: high; both severe: critical
func (s *Service) AssessFinancingRisk(ratios *Ratios, gap, kapitalbedarf decimal.Decimal) *RiskAssessment {
	assessment := &RiskAssessment{Level: RiskLow}
	severe := 0

	zwanzig := decimal.NewFromInt(20)
	zehn := decimal.NewFromInt(10)

	if ratios.EigenkapitalQuote.LessThan(zwanzig) {
		assessment.Faktoren = append(assessment.Faktoren,
			fmt.Sprintf("Eigenkapitalquote von %s%% liegt unter 20%%", ratios.EigenkapitalQuote.StringFixed(2)))
		assessment.Empfehlungen = append(assessment.Empfehlungen,
			"Eigenkapitalanteil erhöhen oder nicht rückzahlbare Zuschüsse prüfen")
		if ratios.EigenkapitalQuote.LessThan(zehn) {
			severe++
		}
	}

	if gap.IsPositive() {
		assessment.Faktoren = append(assessment.Faktoren,
			fmt.Sprintf("Finanzierungslücke von %s ist nicht gedeckt", money.FormatEUR(gap)))
		assessment.Empfehlungen = append(assessment.Empfehlungen,
			"Zusätzliche Finanzierungsquellen sichern oder Kapitalbedarf reduzieren")
		// a gap above a fifth of the capital requirement rarely closes late in planning
		if kapitalbedarf.IsPositive() && gap.Mul(decimal.NewFromInt(5)).GreaterThan(kapitalbedarf) {
			severe++
		}
	}

	switch {
	case severe >= 2:
		assessment.Level = RiskCritical
	case severe == 1:
		assessment.Level = RiskHigh
	case len(assessment.Faktoren) > 1:
		assessment.Level = RiskHigh
	case len(assessment.Faktoren) == 1:
		assessment.Level = RiskMedium
	}
	return assessment
}

// ValidateFinanzierung runs the BA compliance rules of this stage.
// An unresolved financing gap is a blocker; low equity and merely planned
// (not yet secured) sources are warnings.
func (s *Service) ValidateFinanzierung(kapitalbedarf decimal.Decimal, quellen []domain.Finanzierungsquelle) (*domain.ComplianceReport, error) {
	report := &domain.ComplianceReport{}

	gesamt, err := s.SumFinancing(quellen)
	if err != nil {
		return nil, err
	}
	ratios, err := s.ComputeRatios(quellen)
	if err != nil {
		return nil, err
	}

	gap := s.ComputeGap(kapitalbedarf, gesamt)
	if gap.IsPositive() {
		report.AddBlocker(domain.CodeFinanzierungsluecke,
			fmt.Sprintf("Der Kapitalbedarf von %s ist nur zu %s gedeckt; es fehlen %s",
				money.FormatEUR(kapitalbedarf), money.FormatEUR(gesamt), money.FormatEUR(gap)),
			"Finanzierung erhöhen oder Kapitalbedarf senken, bis keine Lücke mehr besteht")
	}

	if gesamt.IsPositive() && ratios.EigenkapitalQuote.LessThan(decimal.NewFromInt(20)) {
		report.AddWarning(domain.CodeEigenkapitalNiedrig,
			fmt.Sprintf("Eigenkapitalquote von %s%% liegt unter den von Banken erwarteten 20%%",
				ratios.EigenkapitalQuote.StringFixed(2)))
	}

	for idx := range quellen {
		if quellen[idx].Status == domain.QuellenStatusGeplant && quellen[idx].Betrag.IsPositive() {
			report.AddWarning(domain.CodeFinanzierungUngesichert,
				fmt.Sprintf("Finanzierungsquelle %q über %s ist bisher nur geplant",
					quellen[idx].Bezeichnung, money.FormatEUR(quellen[idx].Betrag)))
		}
	}

	report.ReadyForNextModule = !report.HasBlockers()
	return report, nil
}
