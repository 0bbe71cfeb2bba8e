package domain

// FindingKind separates hard BA blockers from advisory warnings
type FindingKind string

const (
	FindingBlocker FindingKind = "BLOCKER"
	FindingWarning FindingKind = "WARNING"
)

// Stable finding codes. The coaching layer keys its narration off these, so
// they are part of the contract and must not be renamed.
const (
	CodeFinanzierungsluecke            = "FIN_LUECKE"
	CodeEigenkapitalNiedrig            = "FIN_EIGENKAPITAL_NIEDRIG"
	CodeFinanzierungUngesichert        = "FIN_QUELLE_UNGESICHERT"
	CodeGruendungskostenBand           = "KAP_KOSTEN_UNREALISTISCH"
	CodePrivatUnterExistenzminimum     = "PRIV_UNTER_EXISTENZMINIMUM"
	CodePrivatWohnkostenHoch           = "PRIV_WOHNKOSTEN_HOCH"
	CodeBreakEvenNichtErreicht         = "BE_NICHT_IN_36_MONATEN"
	CodeBreakEvenUnrealistisch         = "BE_UNREALISTISCH"
	CodeRentBreakEvenSpaet             = "RENT_BREAK_EVEN_SPAET"
	CodeRentPrivatentnahmeNichtGedeckt = "RENT_PRIVATENTNAHME_NICHT_GEDECKT"
	CodeRentWachstumUnrealistisch      = "RENT_WACHSTUM_UNREALISTISCH"
	CodeRentMargeAusserhalbBranche     = "RENT_MARGE_AUSSERHALB_BRANCHE"
	CodeLiquiditaetNegativ             = "LIQ_NEGATIVER_BESTAND"
	CodeLiquiditaetKnapp               = "LIQ_RESERVE_KNAPP"
	CodeEingabeUnvollstaendig          = "EINGABE_UNVOLLSTAENDIG"
)

// Finding is one compliance rule result. Blockers stop BA approval and are
// returned as data, never as errors, so the user can revise inputs.
type Finding struct {
	Kind    FindingKind
	Code    string
	Message string
	// Handlungsempfehlung is the mandatory action item for blockers
	Handlungsempfehlung string
}

// ComplianceReport collects all findings of a stage (or of the whole plan)
type ComplianceReport struct {
	Findings           []Finding
	ReadyForNextModule bool
}

// Blockers returns only the blocking findings
func (r *ComplianceReport) Blockers() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == FindingBlocker {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns only the advisory findings
func (r *ComplianceReport) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == FindingWarning {
			out = append(out, f)
		}
	}
	return out
}

// AddBlocker appends a blocking finding with its mandatory action item
func (r *ComplianceReport) AddBlocker(code, message, handlungsempfehlung string) {
	r.Findings = append(r.Findings, Finding{
		Kind:                FindingBlocker,
		Code:                code,
		Message:             message,
		Handlungsempfehlung: handlungsempfehlung,
	})
}

// AddWarning appends an advisory finding
func (r *ComplianceReport) AddWarning(code, message string) {
	r.Findings = append(r.Findings, Finding{
		Kind:    FindingWarning,
		Code:    code,
		Message: message,
	})
}

// Merge appends another report's findings into this one
func (r *ComplianceReport) Merge(other ComplianceReport) {
	r.Findings = append(r.Findings, other.Findings...)
}

// HasBlockers reports whether any blocking finding is present
func (r *ComplianceReport) HasBlockers() bool {
	for _, f := range r.Findings {
		if f.Kind == FindingBlocker {
			return true
		}
	}
	return false
}
