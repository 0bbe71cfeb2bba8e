package kapitalbedarf

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/benchmark"
	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// AnlaufkostenErgebnis is the derived ramp-up cost block
type AnlaufkostenErgebnis struct {
	LaufendeKosten decimal.Decimal
	Reserve        decimal.Decimal
	Summe          decimal.Decimal
}

// Ergebnis is the full capital requirement result
type Ergebnis struct {
	Gruendungskosten    decimal.Decimal
	Investitionen       decimal.Decimal
	Anlaufkosten        AnlaufkostenErgebnis
	Gesamtkapitalbedarf decimal.Decimal
}

// Service calculates the capital requirement (Kapitalbedarf) block
type Service struct {
	Money *money.Context
}

// NewService creates a new Kapitalbedarf Service instance
func NewService(moneyCtx *money.Context) *Service {
	return &Service{Money: moneyCtx}
}

// SumGruendungskosten sums the one-off founding cost positions.
// All positions must be non-negative; the sum is exact and order-independent.
func (s *Service) SumGruendungskosten(g domain.Gruendungskosten) (decimal.Decimal, error) {
	if err := g.Validate(); err != nil {
		return decimal.Zero, err
	}
	summe := g.Notar.
		Add(g.Handelsregister).
		Add(g.Beratung).
		Add(g.Marketing).
		Add(g.Sonstige)
	return money.Round2(summe), nil
}

// SumInvestitionen sums all planned investment positions
func (s *Service) SumInvestitionen(investitionen []domain.Investition) (decimal.Decimal, error) {
	summe := decimal.Zero
	for idx := range investitionen {
		if err := investitionen[idx].Validate(); err != nil {
			return decimal.Zero, err
		}
		summe = summe.Add(investitionen[idx].Betrag)
	}
	return money.Round2(summe), nil
}

// ComputeAnlaufkosten derives the ramp-up cost block:
//
//	laufendeKosten = monate × monatlicheKosten
//	reserve        = laufendeKosten × reservePercent / 100
//	summe          = laufendeKosten + reserve
func (s *Service) ComputeAnlaufkosten(monate int, monatlicheKosten, reservePercent decimal.Decimal) (AnlaufkostenErgebnis, error) {
	a := domain.Anlaufkosten{Monate: monate, MonatlicheKosten: monatlicheKosten, ReservePercent: reservePercent}
	if err := a.Validate(); err != nil {
		return AnlaufkostenErgebnis{}, err
	}

	laufendeKosten := monatlicheKosten.Mul(decimal.NewFromInt(int64(monate)))
	reserve := s.Money.Pct(laufendeKosten, reservePercent)
	return AnlaufkostenErgebnis{
		LaufendeKosten: money.Round2(laufendeKosten),
		Reserve:        money.Round2(reserve),
		Summe:          money.Round2(laufendeKosten.Add(reserve)),
	}, nil
}

// ComputeGesamtkapitalbedarf recomputes the full capital requirement from the
// current snapshot. Nothing is cached: whenever a child block changes, the
// caller simply calls this again.
func (s *Service) ComputeGesamtkapitalbedarf(kb domain.Kapitalbedarf) (*Ergebnis, error) {
	gruendung, err := s.SumGruendungskosten(kb.Gruendungskosten)
	if err != nil {
		return nil, err
	}
	invest, err := s.SumInvestitionen(kb.Investitionen)
	if err != nil {
		return nil, err
	}
	anlauf, err := s.ComputeAnlaufkosten(kb.Anlaufkosten.Monate, kb.Anlaufkosten.MonatlicheKosten, kb.Anlaufkosten.ReservePercent)
	if err != nil {
		return nil, err
	}

	return &Ergebnis{
		Gruendungskosten:    gruendung,
		Investitionen:       invest,
		Anlaufkosten:        anlauf,
		Gesamtkapitalbedarf: money.Round2(gruendung.Add(invest).Add(anlauf.Summe)),
	}, nil
}

// ValidateGruendungskosten checks founding costs against the realistic band
// for the chosen legal form. Advisory only: findings are warnings, never
// blockers, and an unknown legal form passes without findings.
func (s *Service) ValidateGruendungskosten(summe decimal.Decimal, rechtsform string) (bool, []domain.Finding) {
	profil, ok := benchmark.Rechtsform(rechtsform)
	if !ok {
		return true, nil
	}

	var findings []domain.Finding
	if summe.LessThan(profil.GruendungskostenMin) {
		findings = append(findings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeGruendungskostenBand,
			Message: fmt.Sprintf("Gründungskosten von %s liegen unter dem üblichen Rahmen von %s für die Rechtsform %s",
				money.FormatEUR(summe), money.FormatEUR(profil.GruendungskostenMin), rechtsform),
		})
	}
	if summe.GreaterThan(profil.GruendungskostenMax) {
		findings = append(findings, domain.Finding{
			Kind: domain.FindingWarning,
			Code: domain.CodeGruendungskostenBand,
			Message: fmt.Sprintf("Gründungskosten von %s liegen über dem üblichen Rahmen von %s für die Rechtsform %s",
				money.FormatEUR(summe), money.FormatEUR(profil.GruendungskostenMax), rechtsform),
		})
	}
	return len(findings) == 0, findings
}
