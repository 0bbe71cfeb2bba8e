package finanzierung

import (
	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// LoanPayment is the annuity result for a single loan
type LoanPayment struct {
	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPayments  decimal.Decimal
}

// TilgungsRate is one row of the amortization schedule
type TilgungsRate struct {
	Monat      int
	Rate       decimal.Decimal
	Zins       decimal.Decimal
	Tilgung    decimal.Decimal
	Restschuld decimal.Decimal
}

// ComputeLoanPayment derives the annuity for a loan via
//
//	M = P·r(1+r)^n / ((1+r)^n − 1), r = annualRate/12/100
//
// and must match standard amortization tables to the cent.
// A zero interest rate degenerates to straight principal repayment.
func (s *Service) ComputeLoanPayment(principal, annualRatePct decimal.Decimal, termMonths int) (*LoanPayment, error) {
	if err := money.CheckNonNegative("principal", principal); err != nil {
		return nil, err
	}
	if err := money.CheckNonNegative("annualRatePct", annualRatePct); err != nil {
		return nil, err
	}
	if termMonths <= 0 {
		return nil, domain.NewValidationError("termMonths", "term must be at least one month")
	}

	n := decimal.NewFromInt(int64(termMonths))

	if annualRatePct.IsZero() {
		monthly, err := s.Money.Div(principal, n)
		if err != nil {
			return nil, err
		}
		monthly = money.Round2(monthly)
		total := monthly.Mul(n)
		return &LoanPayment{
			MonthlyPayment: monthly,
			TotalInterest:  money.Round2(total.Sub(principal)),
			TotalPayments:  money.Round2(total),
		}, nil
	}

	r, err := s.Money.Div(annualRatePct, decimal.NewFromInt(1200))
	if err != nil {
		return nil, err
	}
	factor := powInt(decimal.NewFromInt(1).Add(r), termMonths)

	monthly, err := s.Money.Div(principal.Mul(r).Mul(factor), factor.Sub(decimal.NewFromInt(1)))
	if err != nil {
		return nil, err
	}
	monthly = money.Round2(monthly)

	total := monthly.Mul(n)
	return &LoanPayment{
		MonthlyPayment: monthly,
		TotalInterest:  money.Round2(total.Sub(principal)),
		TotalPayments:  money.Round2(total),
	}, nil
}

// BuildTilgungsplan expands a loan into its month-by-month amortization
// schedule. Interest per month is rounded to the cent; the final installment
// absorbs the rounding drift so the remaining balance ends at exactly zero.
func (s *Service) BuildTilgungsplan(principal, annualRatePct decimal.Decimal, termMonths int) ([]TilgungsRate, error) {
	payment, err := s.ComputeLoanPayment(principal, annualRatePct, termMonths)
	if err != nil {
		return nil, err
	}
	if principal.IsZero() {
		return nil, nil
	}

	r, err := s.Money.Div(annualRatePct, decimal.NewFromInt(1200))
	if err != nil {
		return nil, err
	}

	plan := make([]TilgungsRate, 0, termMonths)
	restschuld := principal
	for monat := 1; monat <= termMonths; monat++ {
		zins := money.Round2(restschuld.Mul(r))
		tilgung := payment.MonthlyPayment.Sub(zins)
		rate := payment.MonthlyPayment
		if monat == termMonths {
			// final installment clears the remaining balance exactly
			tilgung = restschuld
			rate = zins.Add(tilgung)
		}
		restschuld = restschuld.Sub(tilgung)
		plan = append(plan, TilgungsRate{
			Monat:      monat,
			Rate:       money.Round2(rate),
			Zins:       zins,
			Tilgung:    money.Round2(tilgung),
			Restschuld: money.Round2(restschuld),
		})
	}
	return plan, nil
}

// MonatlicheTilgungsrate sums the annuities of all loans in the plan, used as
// the monthly Tilgung outflow in the liquidity simulation.
func (s *Service) MonatlicheTilgungsrate(darlehen []domain.Darlehenskondition) (decimal.Decimal, error) {
	rate := decimal.Zero
	for idx := range darlehen {
		if err := darlehen[idx].Validate(); err != nil {
			return decimal.Zero, err
		}
		if darlehen[idx].Betrag.IsZero() || darlehen[idx].LaufzeitMonate == 0 {
			continue
		}
		payment, err := s.ComputeLoanPayment(darlehen[idx].Betrag, darlehen[idx].ZinsPercent, darlehen[idx].LaufzeitMonate)
		if err != nil {
			return decimal.Zero, err
		}
		rate = rate.Add(payment.MonthlyPayment)
	}
	return rate, nil
}

// powInt raises base to a non-negative integer power by squaring.
// Operands stay exact; only the callers' final division rounds.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for exp > 0 {
		if exp%2 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp /= 2
	}
	return result
}
