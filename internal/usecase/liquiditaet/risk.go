package liquiditaet

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// AnalyzeLiquidityRisks derives the advisory risk figures from a simulation:
// minimum and average cash, the volatility of the monthly net change and the
// recommended reserve of three average monthly outflows.
func (s *Service) AnalyzeLiquidityRisks(result *Result) (*RiskAnalysis, error) {
	if len(result.Monate) == 0 {
		return nil, domain.NewValidationError("result", "simulation has no months")
	}

	auszahlungen := decimal.Zero
	for idx := range result.Monate {
		auszahlungen = auszahlungen.Add(result.Monate[idx].Auszahlungen())
	}
	durchschnittAusgaben, err := s.Money.Div(auszahlungen, decimal.NewFromInt(int64(len(result.Monate))))
	if err != nil {
		return nil, err
	}

	return &RiskAnalysis{
		Minimum:               result.MinimumLiquiditaet,
		MinimumMonat:          result.MinimumMonat,
		Durchschnitt:          result.DurchschnittLiquiditaet,
		VolatilitaetMonatlich: volatilitaet(result.Monate),
		RecommendedReserve:    money.Round2(durchschnittAusgaben.Mul(decimal.NewFromInt(3))),
	}, nil
}

// CalculateDaysOfCash returns cash / monthlyBurn × 30, capped at the 999
// sentinel when the burn rate is not positive.
func (s *Service) CalculateDaysOfCash(cash, monthlyBurn decimal.Decimal) decimal.Decimal {
	if !monthlyBurn.IsPositive() {
		return daysOfCashCap
	}
	tage, err := s.Money.Div(cash.Mul(decimal.NewFromInt(30)), monthlyBurn)
	if err != nil {
		return daysOfCashCap
	}
	tage = money.Round2(tage)
	if tage.GreaterThan(daysOfCashCap) {
		return daysOfCashCap
	}
	return tage
}

// ValidateLiquidityForBA runs the hard BA rule of this stage: any month with
// a negative closing balance is an automatic blocker, regardless of the
// deficit size, with a mandatory action item. A plan that stays positive but
// dips below one average month of outflows gets an advisory warning.
func (s *Service) ValidateLiquidityForBA(result *Result) (*Validation, error) {
	report := &domain.ComplianceReport{}
	validation := &Validation{Report: report}

	for idx := range result.Monate {
		if result.Monate[idx].Endbestand.IsNegative() {
			validation.HasNegativeLiquidity = true
			report.AddBlocker(domain.CodeLiquiditaetNegativ,
				fmt.Sprintf("Negativer Kontostand von %s in Monat %d; Tiefpunkt %s in Monat %d",
					money.FormatEUR(result.Monate[idx].Endbestand), result.Monate[idx].Monat,
					money.FormatEUR(result.MinimumLiquiditaet), result.MinimumMonat),
				"Finanzierung erhöhen oder Auszahlungen senken, bis jeder Monat einen positiven Kontostand ausweist")
			break
		}
	}

	if !validation.HasNegativeLiquidity {
		risiko, err := s.AnalyzeLiquidityRisks(result)
		if err != nil {
			return nil, err
		}
		reserveMonat, err := s.Money.Div(risiko.RecommendedReserve, decimal.NewFromInt(3))
		if err != nil {
			return nil, err
		}
		if result.MinimumLiquiditaet.LessThan(reserveMonat) {
			report.AddWarning(domain.CodeLiquiditaetKnapp,
				fmt.Sprintf("Liquiditätstief von %s in Monat %d liegt unter einer Monatsausgabe von %s",
					money.FormatEUR(result.MinimumLiquiditaet), result.MinimumMonat, money.FormatEUR(money.Round2(reserveMonat))))
		}
	}

	report.ReadyForNextModule = !report.HasBlockers()
	return validation, nil
}

// volatilitaet is the standard deviation of the monthly net cash change.
// The square root goes through float64; the figure is advisory and never a
// documented money amount.
func volatilitaet(monate []MonthState) decimal.Decimal {
	if len(monate) < 2 {
		return decimal.Zero
	}
	deltas := make([]float64, len(monate))
	mittel := 0.0
	for idx := range monate {
		delta, _ := monate[idx].Endbestand.Sub(monate[idx].Anfangsbestand).Float64()
		deltas[idx] = delta
		mittel += delta
	}
	mittel /= float64(len(deltas))

	varianz := 0.0
	for _, delta := range deltas {
		varianz += (delta - mittel) * (delta - mittel)
	}
	varianz /= float64(len(deltas))
	return money.Round2(decimal.NewFromFloat(math.Sqrt(varianz)))
}
