package domain

import (
	"github.com/shopspring/decimal"
)

// Deep-partial merge of conversation-phase updates into the accumulated
// snapshot. Per-field policy:
//   - scalar: update wins if present (nil pointer = leave unchanged)
//   - list:   replace wholesale (revenue series, investments and financing
//     sources are ordered plans; a nil slice leaves the existing plan, a
//     non-nil empty slice clears it)
//
// All merge functions are pure: they return a new value and never mutate
// their inputs.

// SnapshotUpdate is one phase's partial input
type SnapshotUpdate struct {
	Branche          *string
	Rechtsform       *string
	Stadt            *string
	Kleinunternehmer *bool

	Kapitalbedarf  *KapitalbedarfUpdate
	Finanzierung   *FinanzierungUpdate
	Privatentnahme *PrivatentnahmeUpdate
	Umsatzplanung  *UmsatzplanungUpdate
	Kostenplanung  *KostenplanungUpdate
}

// GruendungskostenUpdate carries partial founding cost positions
type GruendungskostenUpdate struct {
	Notar           *decimal.Decimal
	Handelsregister *decimal.Decimal
	Beratung        *decimal.Decimal
	Marketing       *decimal.Decimal
	Sonstige        *decimal.Decimal
}

// AnlaufkostenUpdate carries partial ramp-up inputs
type AnlaufkostenUpdate struct {
	Monate           *int
	MonatlicheKosten *decimal.Decimal
	ReservePercent   *decimal.Decimal
}

// KapitalbedarfUpdate carries partial capital requirement input
type KapitalbedarfUpdate struct {
	Gruendungskosten *GruendungskostenUpdate
	Investitionen    []Investition
	Anlaufkosten     *AnlaufkostenUpdate
}

// FinanzierungUpdate carries partial financing input
type FinanzierungUpdate struct {
	Quellen        []Finanzierungsquelle
	Darlehen       []Darlehenskondition
	ALG1Monatlich  *decimal.Decimal
	GZPhase1Monate *int
	GZPhase2Monate *int
}

// PrivatentnahmeUpdate carries partial private withdrawal positions
type PrivatentnahmeUpdate struct {
	Miete               *decimal.Decimal
	Nebenkosten         *decimal.Decimal
	Lebensmittel        *decimal.Decimal
	Krankenversicherung *decimal.Decimal
	Altersvorsorge      *decimal.Decimal
	Versicherungen      *decimal.Decimal
	Mobilitaet          *decimal.Decimal
	Kommunikation       *decimal.Decimal
	Freizeit            *decimal.Decimal
	Ruecklagen          *decimal.Decimal
	Sonstige            *decimal.Decimal
}

// UmsatzplanungUpdate carries a replacement revenue series
type UmsatzplanungUpdate struct {
	Monatlich        []decimal.Decimal
	ZahlungszielTage *int
}

// KostenplanungUpdate carries partial cost structure input
type KostenplanungUpdate struct {
	FixkostenMonatlich      *decimal.Decimal
	MaterialaufwandPercent  *decimal.Decimal
	SonstigeVariablePercent *decimal.Decimal
}

// MergeSnapshot merges one phase update into the accumulated snapshot
func MergeSnapshot(existing WorkshopSnapshot, update SnapshotUpdate) WorkshopSnapshot {
	merged := existing
	merged.Branche = mergeString(existing.Branche, update.Branche)
	merged.Rechtsform = mergeString(existing.Rechtsform, update.Rechtsform)
	merged.Stadt = mergeString(existing.Stadt, update.Stadt)
	merged.Kleinunternehmer = mergeBool(existing.Kleinunternehmer, update.Kleinunternehmer)

	if update.Kapitalbedarf != nil {
		merged.Kapitalbedarf = MergeKapitalbedarf(existing.Kapitalbedarf, *update.Kapitalbedarf)
	}
	if update.Finanzierung != nil {
		merged.Finanzierung = MergeFinanzierung(existing.Finanzierung, *update.Finanzierung)
	}
	if update.Privatentnahme != nil {
		merged.Privatentnahme = MergePrivatentnahme(existing.Privatentnahme, *update.Privatentnahme)
	}
	if update.Umsatzplanung != nil {
		merged.Umsatzplanung = MergeUmsatzplanung(existing.Umsatzplanung, *update.Umsatzplanung)
	}
	if update.Kostenplanung != nil {
		merged.Kostenplanung = MergeKostenplanung(existing.Kostenplanung, *update.Kostenplanung)
	}
	return merged
}

// MergeKapitalbedarf merges a partial capital requirement update
func MergeKapitalbedarf(existing Kapitalbedarf, update KapitalbedarfUpdate) Kapitalbedarf {
	merged := existing
	merged.Investitionen = copyList(existing.Investitionen)
	if update.Gruendungskosten != nil {
		g := &merged.Gruendungskosten
		u := update.Gruendungskosten
		g.Notar = mergeDecimal(g.Notar, u.Notar)
		g.Handelsregister = mergeDecimal(g.Handelsregister, u.Handelsregister)
		g.Beratung = mergeDecimal(g.Beratung, u.Beratung)
		g.Marketing = mergeDecimal(g.Marketing, u.Marketing)
		g.Sonstige = mergeDecimal(g.Sonstige, u.Sonstige)
	}
	if update.Investitionen != nil {
		merged.Investitionen = copyList(update.Investitionen)
	}
	if update.Anlaufkosten != nil {
		a := &merged.Anlaufkosten
		u := update.Anlaufkosten
		a.Monate = mergeInt(a.Monate, u.Monate)
		a.MonatlicheKosten = mergeDecimal(a.MonatlicheKosten, u.MonatlicheKosten)
		a.ReservePercent = mergeDecimal(a.ReservePercent, u.ReservePercent)
	}
	return merged
}

// MergeFinanzierung merges a partial financing update
func MergeFinanzierung(existing Finanzierung, update FinanzierungUpdate) Finanzierung {
	merged := existing
	merged.Quellen = copyList(existing.Quellen)
	merged.Darlehen = copyList(existing.Darlehen)
	if update.Quellen != nil {
		merged.Quellen = copyList(update.Quellen)
	}
	if update.Darlehen != nil {
		merged.Darlehen = copyList(update.Darlehen)
	}
	merged.ALG1Monatlich = mergeDecimal(existing.ALG1Monatlich, update.ALG1Monatlich)
	merged.GZPhase1Monate = mergeInt(existing.GZPhase1Monate, update.GZPhase1Monate)
	merged.GZPhase2Monate = mergeInt(existing.GZPhase2Monate, update.GZPhase2Monate)
	return merged
}

// MergePrivatentnahme merges partial private withdrawal positions
func MergePrivatentnahme(existing Privatentnahme, update PrivatentnahmeUpdate) Privatentnahme {
	merged := existing
	merged.Miete = mergeDecimal(existing.Miete, update.Miete)
	merged.Nebenkosten = mergeDecimal(existing.Nebenkosten, update.Nebenkosten)
	merged.Lebensmittel = mergeDecimal(existing.Lebensmittel, update.Lebensmittel)
	merged.Krankenversicherung = mergeDecimal(existing.Krankenversicherung, update.Krankenversicherung)
	merged.Altersvorsorge = mergeDecimal(existing.Altersvorsorge, update.Altersvorsorge)
	merged.Versicherungen = mergeDecimal(existing.Versicherungen, update.Versicherungen)
	merged.Mobilitaet = mergeDecimal(existing.Mobilitaet, update.Mobilitaet)
	merged.Kommunikation = mergeDecimal(existing.Kommunikation, update.Kommunikation)
	merged.Freizeit = mergeDecimal(existing.Freizeit, update.Freizeit)
	merged.Ruecklagen = mergeDecimal(existing.Ruecklagen, update.Ruecklagen)
	merged.Sonstige = mergeDecimal(existing.Sonstige, update.Sonstige)
	return merged
}

// MergeUmsatzplanung merges a revenue plan update
func MergeUmsatzplanung(existing Umsatzplanung, update UmsatzplanungUpdate) Umsatzplanung {
	merged := existing
	merged.Monatlich = copyList(existing.Monatlich)
	if update.Monatlich != nil {
		merged.Monatlich = copyList(update.Monatlich)
	}
	merged.ZahlungszielTage = mergeInt(existing.ZahlungszielTage, update.ZahlungszielTage)
	return merged
}

// MergeKostenplanung merges a partial cost structure update
func MergeKostenplanung(existing Kostenplanung, update KostenplanungUpdate) Kostenplanung {
	merged := existing
	merged.FixkostenMonatlich = mergeDecimal(existing.FixkostenMonatlich, update.FixkostenMonatlich)
	merged.MaterialaufwandPercent = mergeDecimal(existing.MaterialaufwandPercent, update.MaterialaufwandPercent)
	merged.SonstigeVariablePercent = mergeDecimal(existing.SonstigeVariablePercent, update.SonstigeVariablePercent)
	return merged
}

func mergeDecimal(existing decimal.Decimal, update *decimal.Decimal) decimal.Decimal {
	if update != nil {
		return *update
	}
	return existing
}

func mergeInt(existing int, update *int) int {
	if update != nil {
		return *update
	}
	return existing
}

func mergeString(existing string, update *string) string {
	if update != nil {
		return *update
	}
	return existing
}

func mergeBool(existing bool, update *bool) bool {
	if update != nil {
		return *update
	}
	return existing
}

func copyList[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
