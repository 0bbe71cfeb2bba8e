package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository in memory.
// Good for one workshop session process; durability stays with the caller.
type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]domain.WorkshopSnapshot
}

// NewSnapshotRepository creates a new in-memory snapshot repository
func NewSnapshotRepository() domain.SnapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[uuid.UUID]domain.WorkshopSnapshot),
	}
}

// GetByWorkshopID retrieves the accumulated snapshot for a workshop
func (r *snapshotRepository) GetByWorkshopID(ctx context.Context, workshopID uuid.UUID) (*domain.WorkshopSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[workshopID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	copied := copySnapshot(snapshot)
	return &copied, nil
}

// Save stores the merged snapshot, replacing any previous version
func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.WorkshopSnapshot) error {
	if snapshot == nil {
		return domain.NewValidationError("snapshot", "snapshot is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshot.ID] = copySnapshot(*snapshot)
	return nil
}

// copySnapshot detaches the stored value from caller-held slices, so a
// stored snapshot can never be mutated behind the repository's back.
func copySnapshot(s domain.WorkshopSnapshot) domain.WorkshopSnapshot {
	copied := s
	copied.Kapitalbedarf.Investitionen = append([]domain.Investition(nil), s.Kapitalbedarf.Investitionen...)
	copied.Finanzierung.Quellen = append([]domain.Finanzierungsquelle(nil), s.Finanzierung.Quellen...)
	copied.Finanzierung.Darlehen = append([]domain.Darlehenskondition(nil), s.Finanzierung.Darlehen...)
	copied.Umsatzplanung.Monatlich = append([]decimal.Decimal(nil), s.Umsatzplanung.Monatlich...)
	return copied
}
