package breakeven

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newService() *Service {
	return NewService(money.NewContext())
}

func TestComputeBreakEven(t *testing.T) {
	service := newService()

	// 4500 / (1 − 0.40) = 7500
	result, err := service.ComputeBreakEven(dec("4500"), dec("40"), nil)

	require.NoError(t, err)
	assert.True(t, result.BreakEvenUmsatzMonatlich.Equal(dec("7500")), "monthly %s", result.BreakEvenUmsatzMonatlich)
	assert.True(t, result.BreakEvenUmsatzJaehrlich.Equal(dec("90000")))
	assert.True(t, result.DeckungsbeitragPercent.Equal(dec("60")))
	assert.Equal(t, 0, result.BreakEvenMonat)
}

func TestComputeBreakEven_RepeatingDivision(t *testing.T) {
	service := newService()

	// 1000 / (1 − 1/3) would drift on binary floats; must round to the cent
	result, err := service.ComputeBreakEven(dec("1000"), dec("33.3333333333333333"), nil)

	require.NoError(t, err)
	assert.True(t, result.BreakEvenUmsatzMonatlich.Equal(dec("1500.00")), "monthly %s", result.BreakEvenUmsatzMonatlich)
}

func TestComputeBreakEven_MonthDetection(t *testing.T) {
	service := newService()

	umsatz := []decimal.Decimal{dec("4000"), dec("6000"), dec("7500"), dec("9000")}
	result, err := service.ComputeBreakEven(dec("4500"), dec("40"), umsatz)

	require.NoError(t, err)
	// point-in-month rule: first month whose own revenue meets 7500
	assert.Equal(t, 3, result.BreakEvenMonat)
	assert.True(t, result.IsReachableIn36Months)
	assert.Empty(t, result.Warnings)
}

func TestComputeBreakEven_NeverReached(t *testing.T) {
	service := newService()

	umsatz := []decimal.Decimal{dec("4000"), dec("5000"), dec("6000")}
	result, err := service.ComputeBreakEven(dec("4500"), dec("40"), umsatz)

	require.NoError(t, err)
	assert.Equal(t, 0, result.BreakEvenMonat)
	assert.False(t, result.IsReachableIn36Months)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.CodeBreakEvenNichtErreicht, result.Warnings[0].Code)
}

func TestComputeBreakEven_InvalidVariableCostShare(t *testing.T) {
	service := newService()

	for _, pct := range []string{"-1", "99.5", "100"} {
		_, err := service.ComputeBreakEven(dec("4500"), dec(pct), nil)
		require.Error(t, err, "pct %s", pct)
		assert.True(t, domain.IsValidationError(err))
	}
}

func TestComputeBreakEven_NegativeRevenue(t *testing.T) {
	service := newService()

	_, err := service.ComputeBreakEven(dec("4500"), dec("40"), []decimal.Decimal{dec("-100")})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestSensitivityAnalysis(t *testing.T) {
	service := newService()

	scenarios, err := service.SensitivityAnalysis(dec("4500"), dec("40"), dec("10"))

	require.NoError(t, err)
	require.Len(t, scenarios, 4)

	// +10% fixed costs: 4950 / 0.6 = 8250, a shift of +750
	assert.Equal(t, "fixkosten", scenarios[0].Parameter)
	assert.True(t, scenarios[0].BreakEvenUmsatzMonatlich.Equal(dec("8250")))
	assert.True(t, scenarios[0].Verschiebung.Equal(dec("750")))

	// +10% variable costs: 4500 / (1 − 0.44) = 8035.71
	assert.Equal(t, "variableKosten", scenarios[1].Parameter)
	assert.True(t, scenarios[1].BreakEvenUmsatzMonatlich.Equal(dec("8035.71")), "got %s", scenarios[1].BreakEvenUmsatzMonatlich)

	// −10% fixed costs shifts the other way
	assert.True(t, scenarios[2].Verschiebung.Equal(dec("-750")))
}

func TestSensitivityAnalysis_SkipsOutOfRangeVariableScenario(t *testing.T) {
	service := newService()

	// +10% on 95% variable costs would exceed 99% and must be skipped
	scenarios, err := service.SensitivityAnalysis(dec("4500"), dec("95"), dec("10"))

	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	for _, sc := range scenarios {
		if sc.Parameter == "variableKosten" {
			assert.True(t, sc.DeltaPercent.IsNegative())
		}
	}
}

func TestValidateRealism(t *testing.T) {
	service := newService()

	// Handwerk: margin band up to 75%, typical break-even around month 12
	result := &Result{
		DeckungsbeitragPercent: dec("85"),
		BreakEvenMonat:         30,
	}

	findings := service.ValidateRealism(result, "Handwerk")

	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, domain.FindingWarning, f.Kind)
		assert.Equal(t, domain.CodeBreakEvenUnrealistisch, f.Code)
	}
}

func TestValidateRealism_WithinBand(t *testing.T) {
	service := newService()

	result := &Result{
		DeckungsbeitragPercent: dec("60"),
		BreakEvenMonat:         10,
	}

	assert.Empty(t, service.ValidateRealism(result, "Handwerk"))
}

func TestValidateRealism_UnknownIndustry(t *testing.T) {
	service := newService()

	result := &Result{DeckungsbeitragPercent: dec("99"), BreakEvenMonat: 60}
	assert.Nil(t, service.ValidateRealism(result, "Raumfahrt"))
}
