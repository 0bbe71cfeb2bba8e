package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a workshop yet
var ErrSnapshotNotFound = errors.New("workshop snapshot not found")

// SnapshotRepository defines the interface for snapshot accumulation between
// conversation phases. Durability is not part of this contract; the shipped
// implementation is in-memory and long-term persistence remains the caller's
// responsibility.
type SnapshotRepository interface {
	// GetByWorkshopID retrieves the accumulated snapshot for a workshop.
	// Returns ErrSnapshotNotFound if no phase has supplied input yet.
	GetByWorkshopID(ctx context.Context, workshopID uuid.UUID) (*WorkshopSnapshot, error)

	// Save stores the merged snapshot, replacing any previous version
	Save(ctx context.Context, snapshot *WorkshopSnapshot) error
}
