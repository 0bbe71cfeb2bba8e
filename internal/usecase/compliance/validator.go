package compliance

import (
	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/breakeven"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/kapitalbedarf"
	"github.com/gruenderwerk/businessplan-backend/internal/usecase/liquiditaet"
)

// Input collects the per-stage results for the holistic report. A nil stage
// means the conversation has not supplied that phase's input yet.
type Input struct {
	Kapitalbedarf           *kapitalbedarf.Ergebnis
	KapitalbedarfFindings   []domain.Finding
	Finanzierung            *domain.ComplianceReport
	Privatentnahme          *decimal.Decimal // monthly withdrawal total
	PrivatentnahmeFindings  []domain.Finding
	BreakEven               *breakeven.Result
	Rentabilitaet           *domain.ComplianceReport
	RentabilitaetBenchmarks []domain.Finding
	Liquiditaet             *liquiditaet.Validation
}

// Validator builds the holistic compliance report across all stages
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// BuildReport folds every stage's findings into one report. The plan is
// ready for export only when every stage has run and none produced a
// blocker; missing stages surface as incomplete-input warnings so the
// coaching layer knows which phase to steer back to.
func (v *Validator) BuildReport(input Input) *domain.ComplianceReport {
	report := &domain.ComplianceReport{}
	complete := true

	if input.Kapitalbedarf == nil {
		complete = false
		report.AddWarning(domain.CodeEingabeUnvollstaendig, "Kapitalbedarf ist noch nicht vollständig erfasst")
	}
	report.Findings = append(report.Findings, input.KapitalbedarfFindings...)

	if input.Finanzierung == nil {
		complete = false
		report.AddWarning(domain.CodeEingabeUnvollstaendig, "Finanzierung ist noch nicht vollständig erfasst")
	} else {
		report.Merge(*input.Finanzierung)
	}

	if input.Privatentnahme == nil {
		complete = false
		report.AddWarning(domain.CodeEingabeUnvollstaendig, "Privatentnahme ist noch nicht erfasst")
	}
	report.Findings = append(report.Findings, input.PrivatentnahmeFindings...)

	if input.BreakEven == nil {
		complete = false
		report.AddWarning(domain.CodeEingabeUnvollstaendig, "Umsatz- und Kostenplanung für die Break-Even-Analyse fehlen")
	} else {
		report.Findings = append(report.Findings, input.BreakEven.Warnings...)
	}

	if input.Rentabilitaet == nil {
		complete = false
		report.AddWarning(domain.CodeEingabeUnvollstaendig, "Rentabilitätsvorschau ist noch nicht berechnet")
	} else {
		report.Merge(*input.Rentabilitaet)
	}
	report.Findings = append(report.Findings, input.RentabilitaetBenchmarks...)

	if input.Liquiditaet == nil {
		complete = false
		report.AddWarning(domain.CodeEingabeUnvollstaendig, "Liquiditätsplanung ist noch nicht berechnet")
	} else {
		report.Merge(*input.Liquiditaet.Report)
	}

	report.ReadyForNextModule = complete && !report.HasBlockers()
	return report
}
