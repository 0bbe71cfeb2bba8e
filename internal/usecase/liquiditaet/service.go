package liquiditaet

import (
	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/benchmark"
	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/finanzierung"
)

// MonthState is the cash position of one simulated month
type MonthState struct {
	Monat                     int
	Anfangsbestand            decimal.Decimal
	EinzahlungenUmsatz        decimal.Decimal
	EinzahlungenSonstige      decimal.Decimal
	AuszahlungenBetrieb       decimal.Decimal
	AuszahlungenInvestitionen decimal.Decimal
	AuszahlungenTilgung       decimal.Decimal
	AuszahlungenPrivat        decimal.Decimal
	Endbestand                decimal.Decimal
}

// Einzahlungen is the month's total inflow
func (m *MonthState) Einzahlungen() decimal.Decimal {
	return m.EinzahlungenUmsatz.Add(m.EinzahlungenSonstige)
}

// Auszahlungen is the month's total outflow
func (m *MonthState) Auszahlungen() decimal.Decimal {
	return m.AuszahlungenBetrieb.
		Add(m.AuszahlungenInvestitionen).
		Add(m.AuszahlungenTilgung).
		Add(m.AuszahlungenPrivat)
}

// Result is the 12-month liquidity simulation
type Result struct {
	Monate                  []MonthState
	MinimumLiquiditaet      decimal.Decimal
	MinimumMonat            int
	HatNegativeLiquiditaet  bool
	DurchschnittLiquiditaet decimal.Decimal
}

// Input bundles the five upstream aggregates the simulation reads.
// Liquidität holds no state of its own: recompute on every change.
type Input struct {
	// EinmaligeAusgaben are the founding costs plus investments, paid in
	// month 1 (ramp-up costs flow through the operating outflows instead)
	EinmaligeAusgaben       decimal.Decimal
	Finanzierung            domain.Finanzierung
	PrivatentnahmeMonatlich decimal.Decimal
	Umsatzplanung           domain.Umsatzplanung
	Kostenplanung           domain.Kostenplanung
	Branche                 string
}

// Validation is the BA compliance result of this stage
type Validation struct {
	HasNegativeLiquidity bool
	Report               *domain.ComplianceReport
}

// RiskAnalysis are the advisory liquidity risk figures
type RiskAnalysis struct {
	Minimum               decimal.Decimal
	MinimumMonat          int
	Durchschnitt          decimal.Decimal
	VolatilitaetMonatlich decimal.Decimal
	// RecommendedReserve is three times the average monthly total outflow
	RecommendedReserve decimal.Decimal
}

const simulationMonate = 12

// daysOfCashCap is the sentinel for a non-positive burn rate
var daysOfCashCap = decimal.NewFromInt(999)

// Service simulates the first-year liquidity (Liquidität) of the plan
type Service struct {
	Money *money.Context
	fin   *finanzierung.Service
}

// NewService creates a new Liquiditaet Service instance
func NewService(moneyCtx *money.Context) *Service {
	return &Service{Money: moneyCtx, fin: finanzierung.NewService(moneyCtx)}
}

// ComputeLiquiditaet runs the 12-month cash simulation.
// Logic per month m:
//  1. Revenue is earned seasonally adjusted, but collected only after the
//     payment-term offset, so the first months may show zero collected
//     revenue despite earned revenue.
//  2. Financing disburses per schedule: equity, loans and other sources in
//     month 1, the Gründungszuschuss monthly per its two phases.
//  3. Operating outflows are fixed costs plus the variable share of the
//     month's earned (undelayed) revenue; one-off founding costs and
//     investments leave in month 1; loan annuities and the private
//     withdrawal leave monthly.
//  4. endbestand[m] = anfangsbestand[m] + inflows[m] − outflows[m] and
//     anfangsbestand[m+1] = endbestand[m], starting from zero cash.
func (s *Service) ComputeLiquiditaet(input Input) (*Result, error) {
	if err := input.Finanzierung.Validate(); err != nil {
		return nil, err
	}
	if err := input.Umsatzplanung.Validate(); err != nil {
		return nil, err
	}
	if err := input.Kostenplanung.Validate(); err != nil {
		return nil, err
	}
	if err := money.CheckNonNegative("einmaligeAusgaben", input.EinmaligeAusgaben); err != nil {
		return nil, err
	}
	if err := money.CheckNonNegative("privatentnahmeMonatlich", input.PrivatentnahmeMonatlich); err != nil {
		return nil, err
	}

	// earned revenue per month, seasonally adjusted before delay-shifting
	verdient := make([]decimal.Decimal, simulationMonate)
	for m := 1; m <= simulationMonate; m++ {
		verdient[m-1] = input.Umsatzplanung.Monat(m)
	}
	verdient = s.ApplySeasonalAdjustments(verdient, input.Branche)

	offset := zahlungszielOffset(input.Umsatzplanung.ZahlungszielTage)

	sonstige, err := s.finanzierungsZufluesse(input.Finanzierung)
	if err != nil {
		return nil, err
	}
	tilgung, err := s.fin.MonatlicheTilgungsrate(input.Finanzierung.Darlehen)
	if err != nil {
		return nil, err
	}

	result := &Result{Monate: make([]MonthState, simulationMonate)}
	bestand := decimal.Zero
	summe := decimal.Zero
	for m := 1; m <= simulationMonate; m++ {
		state := MonthState{Monat: m, Anfangsbestand: bestand}

		if m-offset >= 1 {
			state.EinzahlungenUmsatz = verdient[m-offset-1]
		}
		state.EinzahlungenSonstige = sonstige[m-1]

		variabel := s.Money.Pct(verdient[m-1], input.Kostenplanung.VariableKostenPercent())
		state.AuszahlungenBetrieb = money.Round2(input.Kostenplanung.FixkostenMonatlich.Add(variabel))
		if m == 1 {
			state.AuszahlungenInvestitionen = input.EinmaligeAusgaben
		}
		state.AuszahlungenTilgung = money.Round2(tilgung)
		state.AuszahlungenPrivat = input.PrivatentnahmeMonatlich

		bestand = money.Round2(bestand.Add(state.Einzahlungen()).Sub(state.Auszahlungen()))
		state.Endbestand = bestand
		result.Monate[m-1] = state

		summe = summe.Add(bestand)
		if m == 1 || bestand.LessThan(result.MinimumLiquiditaet) {
			result.MinimumLiquiditaet = bestand
			result.MinimumMonat = m
		}
	}

	result.HatNegativeLiquiditaet = result.MinimumLiquiditaet.IsNegative()
	durchschnitt, err := s.Money.Div(summe, decimal.NewFromInt(simulationMonate))
	if err != nil {
		return nil, err
	}
	result.DurchschnittLiquiditaet = money.Round2(durchschnitt)
	return result, nil
}

// ApplySeasonalAdjustments multiplies the series by the industry's quarterly
// factor table. Unknown industries pass through unchanged.
func (s *Service) ApplySeasonalAdjustments(serie []decimal.Decimal, branche string) []decimal.Decimal {
	profil, ok := benchmark.Branche(branche)
	if !ok {
		return serie
	}
	angepasst := make([]decimal.Decimal, len(serie))
	for idx, wert := range serie {
		angepasst[idx] = money.Round2(wert.Mul(profil.Saisonfaktor(idx + 1)))
	}
	return angepasst
}

// finanzierungsZufluesse builds the monthly financing inflow schedule:
// all non-subsidy sources disburse in month 1, the Gründungszuschuss monthly
// over its two phases.
func (s *Service) finanzierungsZufluesse(fin domain.Finanzierung) ([]decimal.Decimal, error) {
	zufluesse := make([]decimal.Decimal, simulationMonate)
	for i := range zufluesse {
		zufluesse[i] = decimal.Zero
	}

	for idx := range fin.Quellen {
		if fin.Quellen[idx].Typ == domain.QuellenTypGruendungszuschuss {
			continue
		}
		zufluesse[0] = zufluesse[0].Add(fin.Quellen[idx].Betrag)
	}

	gz, err := s.fin.ComputeGruendungszuschuss(fin.ALG1Monatlich, fin.GZPhase1Monate, fin.GZPhase2Monate)
	if err != nil {
		return nil, err
	}
	for m := 1; m <= simulationMonate; m++ {
		switch {
		case m <= fin.GZPhase1Monate:
			zufluesse[m-1] = zufluesse[m-1].Add(gz.Phase1Monatlich)
		case m <= fin.GZPhase1Monate+fin.GZPhase2Monate:
			zufluesse[m-1] = zufluesse[m-1].Add(gz.Phase2Monatlich)
		}
	}
	return zufluesse, nil
}

// zahlungszielOffset maps the payment term to whole months of delay.
// German B2B default of 30 days shifts collection one month; 45 days and
// above two months; near-cash terms collect in the month of invoicing.
func zahlungszielOffset(tage int) int {
	switch {
	case tage >= 45:
		return 2
	case tage >= 15:
		return 1
	default:
		return 0
	}
}
