package liquiditaet

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

// tightInput is a plan that stays barely positive: €40,000 financing in
// month 1 against €30,000 one-off spend, 30-day payment terms and a
// €372.86 loan annuity.
func tightInput() Input {
	return Input{
		EinmaligeAusgaben: dec("30000"),
		Finanzierung: domain.Finanzierung{
			Quellen: []domain.Finanzierungsquelle{
				{Typ: domain.QuellenTypEigenkapital, Bezeichnung: "Ersparnisse", Betrag: dec("20000"), Status: domain.QuellenStatusGesichert},
				{Typ: domain.QuellenTypBankkredit, Bezeichnung: "Hausbank", Betrag: dec("20000"), Status: domain.QuellenStatusGesichert},
			},
			Darlehen: []domain.Darlehenskondition{
				{Bezeichnung: "Hausbank", Betrag: dec("20000"), ZinsPercent: dec("4.5"), LaufzeitMonate: 60},
			},
		},
		PrivatentnahmeMonatlich: dec("2000"),
		Umsatzplanung: domain.Umsatzplanung{
			Monatlich:        []decimal.Decimal{dec("10000")},
			ZahlungszielTage: 30,
		},
		Kostenplanung: domain.Kostenplanung{
			FixkostenMonatlich:      dec("3000"),
			MaterialaufwandPercent:  dec("30"),
			SonstigeVariablePercent: dec("10"),
		},
	}
}

func TestComputeLiquiditaet_ChainsMonthByMonth(t *testing.T) {
	service := newService()

	result, err := service.ComputeLiquiditaet(tightInput())

	require.NoError(t, err)
	require.Len(t, result.Monate, 12)

	for idx, monat := range result.Monate {
		expected := monat.Anfangsbestand.Add(monat.Einzahlungen()).Sub(monat.Auszahlungen())
		assert.True(t, monat.Endbestand.Equal(expected), "month %d balance broken", monat.Monat)
		if idx > 0 {
			assert.True(t, monat.Anfangsbestand.Equal(result.Monate[idx-1].Endbestand),
				"month %d does not open with month %d closing balance", monat.Monat, monat.Monat-1)
		}
	}
	assert.True(t, result.Monate[0].Anfangsbestand.IsZero())
}

func TestComputeLiquiditaet_PaymentTermShiftsCollection(t *testing.T) {
	service := newService()

	result, err := service.ComputeLiquiditaet(tightInput())

	require.NoError(t, err)
	// 30-day terms: nothing collected in month 1, month 1 revenue lands in month 2
	assert.True(t, result.Monate[0].EinzahlungenUmsatz.IsZero())
	assert.True(t, result.Monate[1].EinzahlungenUmsatz.Equal(dec("10000")))

	// month 1 still pays the variable share of its earned revenue
	assert.True(t, result.Monate[0].AuszahlungenBetrieb.Equal(dec("7000")))
}

func TestComputeLiquiditaet_TightButPositive(t *testing.T) {
	service := newService()

	result, err := service.ComputeLiquiditaet(tightInput())

	require.NoError(t, err)
	// month 1: 40,000 in, 30,000 + 7,000 + 372.86 + 2,000 out
	assert.True(t, result.Monate[0].Endbestand.Equal(dec("627.14")), "month 1 %s", result.Monate[0].Endbestand)
	assert.True(t, result.MinimumLiquiditaet.Equal(dec("627.14")))
	assert.Equal(t, 1, result.MinimumMonat)
	assert.False(t, result.HatNegativeLiquiditaet)

	// every later month nets +627.14
	assert.True(t, result.Monate[11].Endbestand.Equal(dec("7525.68")), "month 12 %s", result.Monate[11].Endbestand)
	assert.True(t, result.DurchschnittLiquiditaet.Equal(dec("4076.41")), "avg %s", result.DurchschnittLiquiditaet)
}

func TestComputeLiquiditaet_NegativeBalance(t *testing.T) {
	service := newService()

	input := tightInput()
	input.EinmaligeAusgaben = dec("45000")

	result, err := service.ComputeLiquiditaet(input)

	require.NoError(t, err)
	assert.True(t, result.HatNegativeLiquiditaet)
	assert.True(t, result.Monate[0].Endbestand.Equal(dec("-14372.86")))
	assert.Equal(t, 1, result.MinimumMonat)
}

func TestComputeLiquiditaet_GruendungszuschussDisbursesMonthly(t *testing.T) {
	service := newService()

	input := tightInput()
	input.Finanzierung.Quellen = append(input.Finanzierung.Quellen, domain.Finanzierungsquelle{
		Typ: domain.QuellenTypGruendungszuschuss, Bezeichnung: "BA", Betrag: dec("11700"), Status: domain.QuellenStatusBeantragt,
	})
	input.Finanzierung.ALG1Monatlich = dec("1200")
	input.Finanzierung.GZPhase1Monate = 6
	input.Finanzierung.GZPhase2Monate = 9

	result, err := service.ComputeLiquiditaet(input)

	require.NoError(t, err)
	// the subsidy never lands as a month-1 lump: 40,000 + phase 1 rate
	assert.True(t, result.Monate[0].EinzahlungenSonstige.Equal(dec("41500")), "month 1 %s", result.Monate[0].EinzahlungenSonstige)
	assert.True(t, result.Monate[5].EinzahlungenSonstige.Equal(dec("1500")))
	// phase 2 pays the €300 flat rate from month 7 on
	assert.True(t, result.Monate[6].EinzahlungenSonstige.Equal(dec("300")))
	assert.True(t, result.Monate[11].EinzahlungenSonstige.Equal(dec("300")))
}

func TestComputeLiquiditaet_RejectsNegativeInputs(t *testing.T) {
	service := newService()

	input := tightInput()
	input.PrivatentnahmeMonatlich = dec("-1")

	_, err := service.ComputeLiquiditaet(input)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestApplySeasonalAdjustments(t *testing.T) {
	service := newService()

	serie := make([]decimal.Decimal, 12)
	for idx := range serie {
		serie[idx] = dec("10000")
	}

	angepasst := service.ApplySeasonalAdjustments(serie, "Handwerk")

	// Handwerk quarters: 0.8 / 1.2 / 1.1 / 0.9
	assert.True(t, angepasst[0].Equal(dec("8000")))
	assert.True(t, angepasst[3].Equal(dec("12000")))
	assert.True(t, angepasst[6].Equal(dec("11000")))
	assert.True(t, angepasst[9].Equal(dec("9000")))

	// yearly total stays the same, the profile only redistributes
	summe := decimal.Zero
	for _, wert := range angepasst {
		summe = summe.Add(wert)
	}
	assert.True(t, summe.Equal(dec("120000")))
}

func TestApplySeasonalAdjustments_UnknownIndustry(t *testing.T) {
	service := newService()

	serie := []decimal.Decimal{dec("10000"), dec("10000")}
	angepasst := service.ApplySeasonalAdjustments(serie, "Raumfahrt")

	for idx := range serie {
		assert.True(t, angepasst[idx].Equal(serie[idx]))
	}
}

func TestZahlungszielOffset(t *testing.T) {
	assert.Equal(t, 0, zahlungszielOffset(0))
	assert.Equal(t, 0, zahlungszielOffset(14))
	assert.Equal(t, 1, zahlungszielOffset(15))
	assert.Equal(t, 1, zahlungszielOffset(30))
	assert.Equal(t, 1, zahlungszielOffset(44))
	assert.Equal(t, 2, zahlungszielOffset(45))
	assert.Equal(t, 2, zahlungszielOffset(90))
}

func TestAnalyzeLiquidityRisks(t *testing.T) {
	service := newService()

	result, err := service.ComputeLiquiditaet(tightInput())
	require.NoError(t, err)

	risiko, err := service.AnalyzeLiquidityRisks(result)

	require.NoError(t, err)
	assert.True(t, risiko.Minimum.Equal(dec("627.14")))
	assert.Equal(t, 1, risiko.MinimumMonat)
	// average monthly outflow 11,872.86 × 3
	assert.True(t, risiko.RecommendedReserve.Equal(dec("35618.58")), "reserve %s", risiko.RecommendedReserve)
	// constant net change per month: zero volatility
	assert.True(t, risiko.VolatilitaetMonatlich.IsZero(), "volatility %s", risiko.VolatilitaetMonatlich)
}

func TestAnalyzeLiquidityRisks_EmptySimulation(t *testing.T) {
	service := newService()

	_, err := service.AnalyzeLiquidityRisks(&Result{})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestCalculateDaysOfCash(t *testing.T) {
	service := newService()

	assert.True(t, service.CalculateDaysOfCash(dec("10000"), dec("5000")).Equal(dec("60")))
	assert.True(t, service.CalculateDaysOfCash(dec("10000"), decimal.Zero).Equal(dec("999")))
	assert.True(t, service.CalculateDaysOfCash(dec("1000000"), dec("1000")).Equal(dec("999")))
}

func TestValidateLiquidityForBA_NegativeMonthIsBlocker(t *testing.T) {
	service := newService()

	input := tightInput()
	input.EinmaligeAusgaben = dec("45000")
	result, err := service.ComputeLiquiditaet(input)
	require.NoError(t, err)

	validation, err := service.ValidateLiquidityForBA(result)

	require.NoError(t, err)
	assert.True(t, validation.HasNegativeLiquidity)
	require.Len(t, validation.Report.Blockers(), 1)
	blocker := validation.Report.Blockers()[0]
	assert.Equal(t, domain.CodeLiquiditaetNegativ, blocker.Code)
	assert.NotEmpty(t, blocker.Handlungsempfehlung)
	assert.False(t, validation.Report.ReadyForNextModule)
}

func TestValidateLiquidityForBA_TightMinimumIsWarning(t *testing.T) {
	service := newService()

	result, err := service.ComputeLiquiditaet(tightInput())
	require.NoError(t, err)

	validation, err := service.ValidateLiquidityForBA(result)

	require.NoError(t, err)
	assert.False(t, validation.HasNegativeLiquidity)
	assert.Empty(t, validation.Report.Blockers())
	require.Len(t, validation.Report.Warnings(), 1)
	assert.Equal(t, domain.CodeLiquiditaetKnapp, validation.Report.Warnings()[0].Code)
	assert.True(t, validation.Report.ReadyForNextModule)
}

func TestValidateLiquidityForBA_ComfortableBuffer(t *testing.T) {
	service := newService()

	input := Input{
		EinmaligeAusgaben: dec("10000"),
		Finanzierung: domain.Finanzierung{
			Quellen: []domain.Finanzierungsquelle{
				{Typ: domain.QuellenTypEigenkapital, Bezeichnung: "Ersparnisse", Betrag: dec("50000"), Status: domain.QuellenStatusGesichert},
			},
		},
		PrivatentnahmeMonatlich: dec("2000"),
		Umsatzplanung: domain.Umsatzplanung{
			Monatlich: []decimal.Decimal{dec("10000")},
		},
		Kostenplanung: domain.Kostenplanung{
			FixkostenMonatlich:      dec("3000"),
			MaterialaufwandPercent:  dec("30"),
			SonstigeVariablePercent: dec("10"),
		},
	}
	result, err := service.ComputeLiquiditaet(input)
	require.NoError(t, err)

	validation, err := service.ValidateLiquidityForBA(result)

	require.NoError(t, err)
	assert.Empty(t, validation.Report.Findings)
	assert.True(t, validation.Report.ReadyForNextModule)
}
