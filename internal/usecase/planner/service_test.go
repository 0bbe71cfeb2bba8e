package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
	"github.com/gruenderwerk/businessplan-backend/internal/money"
)

// MockSnapshotRepository is a mock implementation of SnapshotRepository for testing
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) GetByWorkshopID(ctx context.Context, workshopID uuid.UUID) (*domain.WorkshopSnapshot, error) {
	args := m.Called(ctx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkshopSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *domain.WorkshopSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ptr[T any](v T) *T {
	return &v
}

// fullSnapshot is a workshop with every phase supplied and a healthy plan
func fullSnapshot(id uuid.UUID) domain.WorkshopSnapshot {
	return domain.WorkshopSnapshot{
		ID:         id,
		Branche:    "handwerk",
		Rechtsform: "einzelunternehmen",
		Stadt:      "dresden",
		Kapitalbedarf: domain.Kapitalbedarf{
			Gruendungskosten: domain.Gruendungskosten{
				Beratung:  dec("2000"),
				Marketing: dec("1500"),
			},
			Investitionen: []domain.Investition{
				{Name: "Werkstattausstattung", Kategorie: "maschinen", Betrag: dec("24000"), NutzungsdauerJahre: 8},
			},
			Anlaufkosten: domain.Anlaufkosten{
				Monate:           6,
				MonatlicheKosten: dec("3000"),
				ReservePercent:   dec("10"),
			},
		},
		Finanzierung: domain.Finanzierung{
			Quellen: []domain.Finanzierungsquelle{
				{Typ: domain.QuellenTypEigenkapital, Bezeichnung: "Ersparnisse", Betrag: dec("25000"), Status: domain.QuellenStatusGesichert},
				{Typ: domain.QuellenTypBankkredit, Bezeichnung: "Hausbank", Betrag: dec("20000"), Status: domain.QuellenStatusGesichert},
			},
			Darlehen: []domain.Darlehenskondition{
				{Bezeichnung: "Hausbank", Betrag: dec("20000"), ZinsPercent: dec("4.5"), LaufzeitMonate: 60},
			},
		},
		Privatentnahme: domain.Privatentnahme{
			Miete:               dec("700"),
			Nebenkosten:         dec("200"),
			Lebensmittel:        dec("400"),
			Krankenversicherung: dec("450"),
			Versicherungen:      dec("100"),
			Mobilitaet:          dec("150"),
		},
		Umsatzplanung: domain.Umsatzplanung{
			Monatlich: []decimal.Decimal{dec("15000")},
		},
		Kostenplanung: domain.Kostenplanung{
			FixkostenMonatlich:      dec("3000"),
			MaterialaufwandPercent:  dec("30"),
			SonstigeVariablePercent: dec("10"),
		},
	}
}

func TestApplyUpdate_NewWorkshop(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSnapshotRepository)
	service := NewService(mockRepo, money.NewContext())
	workshopID := uuid.New()

	mockRepo.On("GetByWorkshopID", ctx, workshopID).Return(nil, domain.ErrSnapshotNotFound)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*domain.WorkshopSnapshot")).Return(nil)

	update := domain.SnapshotUpdate{
		Rechtsform: ptr("einzelunternehmen"),
		Kapitalbedarf: &domain.KapitalbedarfUpdate{
			Gruendungskosten: &domain.GruendungskostenUpdate{
				Beratung:  ptr(dec("2000")),
				Marketing: ptr(dec("1500")),
			},
		},
	}

	result, err := service.ApplyUpdate(ctx, workshopID, update)

	require.NoError(t, err)
	require.NotNil(t, result.Kapitalbedarf)
	assert.True(t, result.Kapitalbedarf.Gesamtkapitalbedarf.Equal(dec("3500")))
	assert.Equal(t, workshopID, result.Snapshot.ID)

	// only one phase supplied: the holistic report flags the missing ones
	assert.False(t, result.Compliance.ReadyForNextModule)
	assert.False(t, result.Compliance.HasBlockers())
	mockRepo.AssertExpectations(t)
}

func TestApplyUpdate_MergesIntoExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSnapshotRepository)
	service := NewService(mockRepo, money.NewContext())
	workshopID := uuid.New()

	existing := fullSnapshot(workshopID)
	mockRepo.On("GetByWorkshopID", ctx, workshopID).Return(&existing, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*domain.WorkshopSnapshot")).Return(nil)

	// re-open the cost phase with a higher fixed cost block
	update := domain.SnapshotUpdate{
		Kostenplanung: &domain.KostenplanungUpdate{
			FixkostenMonatlich: ptr(dec("4500")),
		},
	}

	result, err := service.ApplyUpdate(ctx, workshopID, update)

	require.NoError(t, err)
	assert.True(t, result.Snapshot.Kostenplanung.FixkostenMonatlich.Equal(dec("4500")))
	// untouched phases survive the merge
	assert.True(t, result.Snapshot.Kostenplanung.MaterialaufwandPercent.Equal(dec("30")))
	assert.Len(t, result.Snapshot.Finanzierung.Quellen, 2)
	// downstream stages reflect the new cost structure: 4500 / 0.60 = 7500
	require.NotNil(t, result.BreakEven)
	assert.True(t, result.BreakEven.BreakEvenUmsatzMonatlich.Equal(dec("7500")))
	mockRepo.AssertExpectations(t)
}

func TestApplyUpdate_InvalidMergeIsNotSaved(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSnapshotRepository)
	service := NewService(mockRepo, money.NewContext())
	workshopID := uuid.New()

	mockRepo.On("GetByWorkshopID", ctx, workshopID).Return(nil, domain.ErrSnapshotNotFound)

	update := domain.SnapshotUpdate{
		Privatentnahme: &domain.PrivatentnahmeUpdate{
			Miete: ptr(dec("-800")),
		},
	}

	_, err := service.ApplyUpdate(ctx, workshopID, update)

	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestApplyUpdate_RepositoryLoadError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSnapshotRepository)
	service := NewService(mockRepo, money.NewContext())
	workshopID := uuid.New()

	mockRepo.On("GetByWorkshopID", ctx, workshopID).Return(nil, errors.New("connection reset"))

	_, err := service.ApplyUpdate(ctx, workshopID, domain.SnapshotUpdate{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load snapshot")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestApplyUpdate_RepositorySaveError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSnapshotRepository)
	service := NewService(mockRepo, money.NewContext())
	workshopID := uuid.New()

	mockRepo.On("GetByWorkshopID", ctx, workshopID).Return(nil, domain.ErrSnapshotNotFound)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*domain.WorkshopSnapshot")).Return(errors.New("disk full"))

	_, err := service.ApplyUpdate(ctx, workshopID, domain.SnapshotUpdate{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save snapshot")
}

func TestRecompute_FullPipeline(t *testing.T) {
	service := NewService(new(MockSnapshotRepository), money.NewContext())
	snapshot := fullSnapshot(uuid.New())

	result, err := service.Recompute(snapshot)

	require.NoError(t, err)
	require.NotNil(t, result.Kapitalbedarf)
	// 3,500 founding + 24,000 investment + 6×3,000 + 10% reserve
	assert.True(t, result.Kapitalbedarf.Gesamtkapitalbedarf.Equal(dec("47300")), "kb %s", result.Kapitalbedarf.Gesamtkapitalbedarf)

	assert.True(t, result.Gesamtfinanzierung.Equal(dec("45000")))
	require.NotNil(t, result.Ratios)
	assert.True(t, result.Finanzierungsluecke.Equal(dec("2300")))

	assert.True(t, result.PrivatentnahmeMonatlich.Equal(dec("2000")))
	assert.True(t, result.PrivatentnahmeJaehrlich.Equal(dec("24000")))

	require.NotNil(t, result.BreakEven)
	require.NotNil(t, result.Rentabilitaet)
	require.NotNil(t, result.Liquiditaet)
	require.NotNil(t, result.Compliance)

	// the uncovered €2,300 gap must surface as a financing blocker
	assert.True(t, result.Compliance.HasBlockers())
	assert.False(t, result.Compliance.ReadyForNextModule)
}

func TestRecompute_MissingPrivatentnahmeIsNotReady(t *testing.T) {
	service := NewService(new(MockSnapshotRepository), money.NewContext())
	snapshot := fullSnapshot(uuid.New())
	snapshot.Privatentnahme = domain.Privatentnahme{}
	// close the financing gap so only the withdrawal phase is missing
	snapshot.Finanzierung.Quellen[0].Betrag = dec("27300")

	result, err := service.Recompute(snapshot)

	require.NoError(t, err)
	assert.False(t, result.Compliance.HasBlockers())

	// a zero withdrawal must never pass as a complete, ready plan
	assert.False(t, result.Compliance.ReadyForNextModule)
	var unvollstaendig []domain.Finding
	for _, warnung := range result.Compliance.Warnings() {
		if warnung.Code == domain.CodeEingabeUnvollstaendig {
			unvollstaendig = append(unvollstaendig, warnung)
		}
	}
	require.Len(t, unvollstaendig, 1)
	assert.Contains(t, unvollstaendig[0].Message, "Privatentnahme")
}

func TestRecompute_SkipsStagesWithoutInput(t *testing.T) {
	service := NewService(new(MockSnapshotRepository), money.NewContext())

	result, err := service.Recompute(domain.WorkshopSnapshot{ID: uuid.New()})

	require.NoError(t, err)
	assert.Nil(t, result.Kapitalbedarf)
	assert.Nil(t, result.BreakEven)
	assert.Nil(t, result.Rentabilitaet)
	assert.Nil(t, result.Liquiditaet)
	assert.False(t, result.Compliance.ReadyForNextModule)
}

func TestRecompute_IsDeterministic(t *testing.T) {
	service := NewService(new(MockSnapshotRepository), money.NewContext())
	snapshot := fullSnapshot(uuid.New())

	first, err := service.Recompute(snapshot)
	require.NoError(t, err)
	second, err := service.Recompute(snapshot)
	require.NoError(t, err)

	assert.True(t, first.Kapitalbedarf.Gesamtkapitalbedarf.Equal(second.Kapitalbedarf.Gesamtkapitalbedarf))
	assert.True(t, first.Liquiditaet.MinimumLiquiditaet.Equal(second.Liquiditaet.MinimumLiquiditaet))
	assert.Equal(t, len(first.Compliance.Findings), len(second.Compliance.Findings))
}
