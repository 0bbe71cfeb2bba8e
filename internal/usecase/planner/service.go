package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/breakeven"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/compliance"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/finanzierung"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/kapitalbedarf"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/liquiditaet"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/privatentnahme"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/rentabilitaet"
)

// PlanResult is the full recomputation output of one snapshot. Stages whose
// input phases have not been supplied yet stay nil.
type PlanResult struct {
	Snapshot domain.WorkshopSnapshot

	Kapitalbedarf *kapitalbedarf.Ergebnis

	Gesamtfinanzierung  decimal.Decimal
	Ratios              *finanzierung.Ratios
	Finanzierungsluecke decimal.Decimal
	Gruendungszuschuss  *finanzierung.Gruendungszuschuss
	Finanzierungsrisiko *finanzierung.RiskAssessment

	PrivatentnahmeMonatlich decimal.Decimal
	PrivatentnahmeJaehrlich decimal.Decimal

	BreakEven     *breakeven.Result
	Rentabilitaet *rentabilitaet.Result
	Liquiditaet   *liquiditaet.Result

	Compliance *domain.ComplianceReport
}

// Service orchestrates the workshop pipeline: it merges each conversation
// phase's partial input into the accumulated snapshot and reruns every
// calculator in dependency order. All calculators are pure, so re-opening an
// earlier phase is just another merge followed by a full recomputation.
type Service struct {
	Repo domain.SnapshotRepository

	Kapitalbedarf  *kapitalbedarf.Service
	Finanzierung   *finanzierung.Service
	Privatentnahme *privatentnahme.Service
	BreakEven      *breakeven.Service
	Rentabilitaet  *rentabilitaet.Service
	Liquiditaet    *liquiditaet.Service
	Validator      *compliance.Validator
}

// NewService creates a new planner Service instance wiring all calculators
// onto the shared decimal context.
func NewService(repo domain.SnapshotRepository, moneyCtx *money.Context) *Service {
	return &Service{
		Repo:           repo,
		Kapitalbedarf:  kapitalbedarf.NewService(moneyCtx),
		Finanzierung:   finanzierung.NewService(moneyCtx),
		Privatentnahme: privatentnahme.NewService(moneyCtx),
		BreakEven:      breakeven.NewService(moneyCtx),
		Rentabilitaet:  rentabilitaet.NewService(moneyCtx),
		Liquiditaet:    liquiditaet.NewService(moneyCtx),
		Validator:      compliance.NewValidator(),
	}
}

// ApplyUpdate merges one phase's partial input into the workshop's snapshot,
// persists the merged snapshot and recomputes the full pipeline.
// A merge that would produce an invalid snapshot is rejected without saving.
func (s *Service) ApplyUpdate(ctx context.Context, workshopID uuid.UUID, update domain.SnapshotUpdate) (*PlanResult, error) {
	existing, err := s.Repo.GetByWorkshopID(ctx, workshopID)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		existing = &domain.WorkshopSnapshot{ID: workshopID}
	}

	merged := domain.MergeSnapshot(*existing, update)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Save(ctx, &merged); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return s.Recompute(merged)
}

// Recompute runs every calculator on the snapshot in dependency order and
// folds all stage validations into the holistic compliance report.
// Identical snapshots always yield identical results.
func (s *Service) Recompute(snapshot domain.WorkshopSnapshot) (*PlanResult, error) {
	result := &PlanResult{Snapshot: snapshot}
	holistic := compliance.Input{}

	// 1. Kapitalbedarf
	kb, err := s.Kapitalbedarf.ComputeGesamtkapitalbedarf(snapshot.Kapitalbedarf)
	if err != nil {
		return nil, err
	}
	if kb.Gesamtkapitalbedarf.IsPositive() {
		result.Kapitalbedarf = kb
		holistic.Kapitalbedarf = kb
		_, findings := s.Kapitalbedarf.ValidateGruendungskosten(kb.Gruendungskosten, snapshot.Rechtsform)
		holistic.KapitalbedarfFindings = findings
	}

	// 2. Finanzierung (depends on Kapitalbedarf)
	if len(snapshot.Finanzierung.Quellen) > 0 {
		if err := s.computeFinanzierung(snapshot, result, &holistic); err != nil {
			return nil, err
		}
	}

	// 3. Privatentnahme
	privatMonatlich, err := s.Privatentnahme.SumMonthly(snapshot.Privatentnahme)
	if err != nil {
		return nil, err
	}
	if privatMonatlich.IsPositive() {
		result.PrivatentnahmeMonatlich = privatMonatlich
		result.PrivatentnahmeJaehrlich = s.Privatentnahme.ToAnnual(privatMonatlich)
		findings, err := s.Privatentnahme.Validate(snapshot.Privatentnahme, snapshot.Stadt)
		if err != nil {
			return nil, err
		}
		holistic.Privatentnahme = &privatMonatlich
		holistic.PrivatentnahmeFindings = findings
	}

	// 4. Break-Even and Rentabilität (depend on Umsatz- and Kostenplanung)
	if len(snapshot.Umsatzplanung.Monatlich) > 0 {
		be, err := s.BreakEven.ComputeBreakEven(
			snapshot.Kostenplanung.FixkostenMonatlich,
			snapshot.Kostenplanung.VariableKostenPercent(),
			snapshot.Umsatzplanung.Monatlich)
		if err != nil {
			return nil, err
		}
		be.Warnings = append(be.Warnings, s.BreakEven.ValidateRealism(be, snapshot.Branche)...)
		result.BreakEven = be
		holistic.BreakEven = be

		rent, err := s.Rentabilitaet.ComputeRentabilitaet(snapshot.Umsatzplanung, snapshot.Kostenplanung, snapshot.Kleinunternehmer)
		if err != nil {
			return nil, err
		}
		result.Rentabilitaet = rent
		holistic.Rentabilitaet = s.Rentabilitaet.ValidateProfitabilityForBA(rent, result.PrivatentnahmeJaehrlich)
		holistic.RentabilitaetBenchmarks = s.Rentabilitaet.CompareWithIndustryBenchmarks(rent, snapshot.Branche)
	}

	// 5. Liquidität (depends on everything above)
	if result.Kapitalbedarf != nil && len(snapshot.Finanzierung.Quellen) > 0 && len(snapshot.Umsatzplanung.Monatlich) > 0 {
		liq, err := s.Liquiditaet.ComputeLiquiditaet(liquiditaet.Input{
			EinmaligeAusgaben:       result.Kapitalbedarf.Gruendungskosten.Add(result.Kapitalbedarf.Investitionen),
			Finanzierung:            snapshot.Finanzierung,
			PrivatentnahmeMonatlich: result.PrivatentnahmeMonatlich,
			Umsatzplanung:           snapshot.Umsatzplanung,
			Kostenplanung:           snapshot.Kostenplanung,
			Branche:                 snapshot.Branche,
		})
		if err != nil {
			return nil, err
		}
		result.Liquiditaet = liq
		validation, err := s.Liquiditaet.ValidateLiquidityForBA(liq)
		if err != nil {
			return nil, err
		}
		holistic.Liquiditaet = validation
	}

	result.Compliance = s.Validator.BuildReport(holistic)
	return result, nil
}

func (s *Service) computeFinanzierung(snapshot domain.WorkshopSnapshot, result *PlanResult, holistic *compliance.Input) error {
	gesamt, err := s.Finanzierung.SumFinancing(snapshot.Finanzierung.Quellen)
	if err != nil {
		return err
	}
	ratios, err := s.Finanzierung.ComputeRatios(snapshot.Finanzierung.Quellen)
	if err != nil {
		return err
	}

	kapitalbedarfSumme := decimal.Zero
	if result.Kapitalbedarf != nil {
		kapitalbedarfSumme = result.Kapitalbedarf.Gesamtkapitalbedarf
	}
	gap := s.Finanzierung.ComputeGap(kapitalbedarfSumme, gesamt)

	gz, err := s.Finanzierung.ComputeGruendungszuschuss(
		snapshot.Finanzierung.ALG1Monatlich,
		snapshot.Finanzierung.GZPhase1Monate,
		snapshot.Finanzierung.GZPhase2Monate)
	if err != nil {
		return err
	}

	report, err := s.Finanzierung.ValidateFinanzierung(kapitalbedarfSumme, snapshot.Finanzierung.Quellen)
	if err != nil {
		return err
	}

	result.Gesamtfinanzierung = gesamt
	result.Ratios = ratios
	result.Finanzierungsluecke = gap
	result.Gruendungszuschuss = gz
	result.Finanzierungsrisiko = s.Finanzierung.AssessFinancingRisk(ratios, gap, kapitalbedarfSumme)
	holistic.Finanzierung = report
	return nil
}
