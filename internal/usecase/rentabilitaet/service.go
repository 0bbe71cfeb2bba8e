package rentabilitaet

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/benchmark"
	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// Jahr is one projected year of the simplified income statement
type Jahr struct {
	Umsatz                 decimal.Decimal
	Materialaufwand        decimal.Decimal
	Rohertrag              decimal.Decimal
	RohertragsmargePercent decimal.Decimal
	Fixkosten              decimal.Decimal
	SonstigeVariable       decimal.Decimal
	ErgebnisVorSteuern     decimal.Decimal
	Steuern                decimal.Decimal
	Jahresueberschuss      decimal.Decimal
	UmsatzrenditePercent   decimal.Decimal
}

// Result is the 3-year profitability projection
type Result struct {
	Jahr1 Jahr
	Jahr2 Jahr
	Jahr3 Jahr
	// BreakEvenMonat is the first of the 36 projected months whose planned
	// revenue reaches the break-even revenue; 0 = never
	BreakEvenMonat  int
	BreakEvenUmsatz decimal.Decimal
}

// Jahre returns the three projected years in order
func (r *Result) Jahre() []Jahr {
	return []Jahr{r.Jahr1, r.Jahr2, r.Jahr3}
}

// MargenTrend classifies how the net margin develops over the three years
type MargenTrend string

const (
	TrendImproving MargenTrend = "improving"
	TrendStable    MargenTrend = "stable"
	TrendDeclining MargenTrend = "declining"
)

// Metrics are derived profitability figures
type Metrics struct {
	WachstumJahr2Percent decimal.Decimal
	WachstumJahr3Percent decimal.Decimal
	CAGRPercent          decimal.Decimal
	MargenTrend          MargenTrend
}

// Service projects the 3-year profitability (Rentabilität) of the plan
type Service struct {
	Money *money.Context
}

// NewService creates a new Rentabilitaet Service instance
func NewService(moneyCtx *money.Context) *Service {
	return &Service{Money: moneyCtx}
}

var (
	hundert = decimal.NewFromInt(100)
	zwei    = decimal.NewFromInt(2)
)

// ComputeRentabilitaet projects three years from the revenue plan and cost
// structure. Per year:
//
//	rohertrag          = umsatz − materialaufwand
//	ergebnisVorSteuern = rohertrag − fixkosten − sonstige variable Kosten
//	jahresueberschuss  = ergebnisVorSteuern − steuern
//
// Taxes follow the simplified small-business schedule in tax.go.
func (s *Service) ComputeRentabilitaet(umsatz domain.Umsatzplanung, kosten domain.Kostenplanung, kleinunternehmer bool) (*Result, error) {
	if err := umsatz.Validate(); err != nil {
		return nil, err
	}
	if err := kosten.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}
	jahre := make([]Jahr, 3)
	for y := 0; y < 3; y++ {
		jahresumsatz := decimal.Zero
		for m := 12*y + 1; m <= 12*(y+1); m++ {
			jahresumsatz = jahresumsatz.Add(umsatz.Monat(m))
		}
		jahr, err := s.computeJahr(jahresumsatz, kosten, kleinunternehmer)
		if err != nil {
			return nil, err
		}
		jahre[y] = jahr
	}
	result.Jahr1, result.Jahr2, result.Jahr3 = jahre[0], jahre[1], jahre[2]

	// break-even revenue from the combined cost structure, matched against
	// the point-in-month planned revenue
	deckungsbeitrag := hundert.Sub(kosten.VariableKostenPercent())
	beUmsatz, err := s.Money.Div(kosten.FixkostenMonatlich.Mul(hundert), deckungsbeitrag)
	if err != nil {
		return nil, err
	}
	result.BreakEvenUmsatz = money.Round2(beUmsatz)
	for m := 1; m <= 36; m++ {
		if umsatz.Monat(m).GreaterThanOrEqual(result.BreakEvenUmsatz) {
			result.BreakEvenMonat = m
			break
		}
	}
	return result, nil
}

func (s *Service) computeJahr(jahresumsatz decimal.Decimal, kosten domain.Kostenplanung, kleinunternehmer bool) (Jahr, error) {
	material := s.Money.Pct(jahresumsatz, kosten.MaterialaufwandPercent)
	rohertrag := jahresumsatz.Sub(material)
	fixkosten := kosten.FixkostenMonatlich.Mul(decimal.NewFromInt(12))
	sonstigeVariable := s.Money.Pct(jahresumsatz, kosten.SonstigeVariablePercent)
	ergebnisVorSteuern := rohertrag.Sub(fixkosten).Sub(sonstigeVariable)

	steuersatz := effektiverSteuersatz(ergebnisVorSteuern, jahresumsatz, kleinunternehmer)
	steuern := money.Round2(s.Money.Pct(ergebnisVorSteuern, steuersatz))
	jahresueberschuss := ergebnisVorSteuern.Sub(steuern)

	jahr := Jahr{
		Umsatz:             money.Round2(jahresumsatz),
		Materialaufwand:    money.Round2(material),
		Rohertrag:          money.Round2(rohertrag),
		Fixkosten:          money.Round2(fixkosten),
		SonstigeVariable:   money.Round2(sonstigeVariable),
		ErgebnisVorSteuern: money.Round2(ergebnisVorSteuern),
		Steuern:            steuern,
		Jahresueberschuss:  money.Round2(jahresueberschuss),
	}

	if jahresumsatz.IsPositive() {
		marge, err := s.Money.Div(rohertrag.Mul(hundert), jahresumsatz)
		if err != nil {
			return Jahr{}, err
		}
		rendite, err := s.Money.Div(jahresueberschuss.Mul(hundert), jahresumsatz)
		if err != nil {
			return Jahr{}, err
		}
		jahr.RohertragsmargePercent = money.Round2(marge)
		jahr.UmsatzrenditePercent = money.Round2(rendite)
	}
	return jahr, nil
}

// ComputeProfitabilityMetrics derives YoY growth, CAGR and the margin trend.
// The trend compares year 3 net margin against year 1 with a ±2pp threshold.
func (s *Service) ComputeProfitabilityMetrics(result *Result) (*Metrics, error) {
	metrics := &Metrics{MargenTrend: TrendStable}

	wachstum2, err := s.wachstum(result.Jahr1.Umsatz, result.Jahr2.Umsatz)
	if err != nil {
		return nil, err
	}
	wachstum3, err := s.wachstum(result.Jahr2.Umsatz, result.Jahr3.Umsatz)
	if err != nil {
		return nil, err
	}
	metrics.WachstumJahr2Percent = wachstum2
	metrics.WachstumJahr3Percent = wachstum3
	metrics.CAGRPercent = cagrPercent(result.Jahr1.Umsatz, result.Jahr3.Umsatz)

	margenDelta := result.Jahr3.UmsatzrenditePercent.Sub(result.Jahr1.UmsatzrenditePercent)
	switch {
	case margenDelta.GreaterThan(zwei):
		metrics.MargenTrend = TrendImproving
	case margenDelta.LessThan(zwei.Neg()):
		metrics.MargenTrend = TrendDeclining
	}
	return metrics, nil
}

func (s *Service) wachstum(von, nach decimal.Decimal) (decimal.Decimal, error) {
	if von.IsZero() {
		return decimal.Zero, nil
	}
	w, err := s.Money.Div(nach.Sub(von).Mul(hundert), von)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round2(w), nil
}

// CompareWithIndustryBenchmarks checks the year-3 margins against the fixed
// industry benchmark band. Advisory only; unknown industries pass silently.
func (s *Service) CompareWithIndustryBenchmarks(result *Result, branche string) []domain.Finding {
	profil, ok := benchmark.Branche(branche)
	if !ok {
		return nil
	}

	var findings []domain.Finding
	marge := result.Jahr3.RohertragsmargePercent
	if marge.GreaterThan(profil.RohertragsmargeMax) || marge.LessThan(profil.RohertragsmargeMin) {
		findings = append(findings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeRentMargeAusserhalbBranche,
			Message: fmt.Sprintf("Rohertragsmarge von %s%% liegt außerhalb des Branchenbands %s%%–%s%% (%s)",
				marge.StringFixed(2), profil.RohertragsmargeMin.StringFixed(2),
				profil.RohertragsmargeMax.StringFixed(2), profil.Name),
		})
	}
	rendite := result.Jahr3.UmsatzrenditePercent
	if rendite.GreaterThan(profil.UmsatzrenditeMax) {
		findings = append(findings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeRentMargeAusserhalbBranche,
			Message: fmt.Sprintf("Umsatzrendite von %s%% liegt über dem Branchenüblichen Maximum von %s%% (%s)",
				rendite.StringFixed(2), profil.UmsatzrenditeMax.StringFixed(2), profil.Name),
		})
	}
	return findings
}

// ValidateProfitabilityForBA runs the BA compliance rules of this stage.
// Blockers: break-even later than month 36 (or never), or a year whose net
// profit cannot cover the founder's annual private withdrawal.
// Warning: revenue CAGR above 100%.
func (s *Service) ValidateProfitabilityForBA(result *Result, jaehrlichePrivatentnahme decimal.Decimal) *domain.ComplianceReport {
	report := &domain.ComplianceReport{}

	if result.BreakEvenMonat == 0 || result.BreakEvenMonat > 36 {
		report.AddBlocker(domain.CodeRentBreakEvenSpaet,
			"Die Gewinnschwelle wird nicht innerhalb von 36 Monaten erreicht",
			"Umsatzplanung erhöhen oder Kostenstruktur senken, bis die Gewinnschwelle vor Monat 36 liegt")
	}

	for idx, jahr := range result.Jahre() {
		if jahr.Jahresueberschuss.LessThan(jaehrlichePrivatentnahme) {
			report.AddBlocker(domain.CodeRentPrivatentnahmeNichtGedeckt,
				fmt.Sprintf("Jahresüberschuss von %s in Jahr %d deckt die jährliche Privatentnahme von %s nicht",
					money.FormatEUR(jahr.Jahresueberschuss), idx+1, money.FormatEUR(jaehrlichePrivatentnahme)),
				"Privatentnahme senken oder Ertragslage verbessern, bis der Überschuss die Entnahme trägt")
		}
	}

	if metrics, err := s.ComputeProfitabilityMetrics(result); err == nil {
		if metrics.CAGRPercent.GreaterThan(hundert) {
			report.AddWarning(domain.CodeRentWachstumUnrealistisch,
				fmt.Sprintf("Durchschnittliches Umsatzwachstum von %s%% pro Jahr wird die BA als unrealistisch einstufen",
					metrics.CAGRPercent.StringFixed(2)))
		}
	}

	report.ReadyForNextModule = !report.HasBlockers()
	return report
}
