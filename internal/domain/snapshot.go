package domain

import (
	"github.com/google/uuid"
)

// WorkshopSnapshot is the accumulated structured input of one workshop module
// instance. The coaching layer supplies partial updates after each
// conversation phase; every calculator runs on the full snapshot, so
// re-opening an earlier phase automatically reruns everything downstream.
type WorkshopSnapshot struct {
	ID uuid.UUID

	// Profile answers from the opening phase
	Branche          string
	Rechtsform       string
	Stadt            string
	Kleinunternehmer bool

	Kapitalbedarf  Kapitalbedarf
	Finanzierung   Finanzierung
	Privatentnahme Privatentnahme
	Umsatzplanung  Umsatzplanung
	Kostenplanung  Kostenplanung
}

// Validate validates every populated aggregate
func (s *WorkshopSnapshot) Validate() error {
	if err := s.Kapitalbedarf.Validate(); err != nil {
		return err
	}
	if err := s.Finanzierung.Validate(); err != nil {
		return err
	}
	if err := s.Privatentnahme.Validate(); err != nil {
		return err
	}
	if err := s.Umsatzplanung.Validate(); err != nil {
		return err
	}
	return s.Kostenplanung.Validate()
}
