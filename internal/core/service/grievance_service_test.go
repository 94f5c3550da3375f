package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

var testEpoch = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newTestGrievanceService(store ports.SessionStore, idem ports.IdempotencyStore) *GrievanceService {
	svc := NewGrievanceService(store, idem, zerolog.Nop())
	clock := stepClock(testEpoch, time.Millisecond)
	svc.now = clock
	svc.ids = NewIDGenerator(clock)
	return svc
}

func shimlaDraft() domain.GrievanceDraft {
	return domain.GrievanceDraft{
		District:    "Shimla",
		Location:    "Ward 2",
		Category:    "Water Supply",
		Subject:     "No water",
		Description: "...",
	}
}

func TestGrievanceService_Create_ShimlaScenario(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, nil)
	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()

	rec, err := svc.Create(ctx, citizen, ports.CreateGrievanceInput{Draft: shimlaDraft()})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusUnderReview, rec.Status)
	assert.Regexp(t, `^HPG-\d+$`, rec.ID)
	assert.Equal(t, rec.DateFiled, rec.LastUpdated)
	assert.NotNil(t, rec.AttachedFileNames)
	assert.NotNil(t, rec.Replies)

	want := []domain.TimelineEntry{
		{Label: "Submitted", Date: rec.DateFiled, Status: domain.MarkerCompleted},
		{Label: "Assigned to Department", Date: rec.DateFiled, Status: domain.MarkerCompleted},
		{Label: "Under Review", Date: rec.DateFiled, Status: domain.MarkerCurrent},
	}
	if diff := cmp.Diff(want, rec.Timeline); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}

	list, err := svc.List(ctx, citizen)
	require.NoError(t, err)
	require.Len(t, list, 1)
	if diff := cmp.Diff(*rec, list[0]); diff != "" {
		t.Fatalf("stored record mismatch (-want +got):\n%s", diff)
	}
}

func TestGrievanceService_Create_NOrderedAndUnique(t *testing.T) {
	store := newStubSessionStore()
	svc := NewGrievanceService(store, nil, zerolog.Nop())
	// frozen clock: every id comes from the monotonic fallback
	frozen := func() time.Time { return testEpoch }
	svc.now = frozen
	svc.ids = NewIDGenerator(frozen)

	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()

	const n = 25
	created := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rec, err := svc.Create(ctx, citizen, ports.CreateGrievanceInput{Draft: shimlaDraft()})
		require.NoError(t, err)
		created = append(created, rec.ID)
	}

	list, err := svc.List(ctx, citizen)
	require.NoError(t, err)
	require.Len(t, list, n)

	seen := make(map[string]struct{}, n)
	for i, r := range list {
		assert.Equal(t, created[n-1-i], r.ID, "most recent first")
		_, dup := seen[r.ID]
		assert.False(t, dup, "duplicate id %s", r.ID)
		seen[r.ID] = struct{}{}
	}
}

func TestGrievanceService_ListsArePartitionedByMobile(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.NewCitizen("9876543210"), ports.CreateGrievanceInput{Draft: shimlaDraft()})
	require.NoError(t, err)

	other, err := svc.List(ctx, domain.NewCitizen("9123456780"))
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestGrievanceService_Create_Idempotent(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, newStubIdempotencyStore())
	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()
	in := ports.CreateGrievanceInput{Draft: shimlaDraft(), IdempotencyKey: "k-1"}

	first, err := svc.Create(ctx, citizen, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, citizen, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	list, _ := svc.List(ctx, citizen)
	assert.Len(t, list, 1)
}

func TestGrievanceService_Create_StoreError(t *testing.T) {
	store := newStubSessionStore()
	store.updateErr = ports.ErrConflict
	svc := newTestGrievanceService(store, nil)

	_, err := svc.Create(context.Background(), domain.NewCitizen("9876543210"), ports.CreateGrievanceInput{Draft: shimlaDraft()})
	assert.True(t, errors.Is(err, ports.ErrConflict))
}

func TestGrievanceService_Get(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, nil)
	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()

	rec, err := svc.Create(ctx, citizen, ports.CreateGrievanceInput{Draft: shimlaDraft()})
	require.NoError(t, err)

	got, err := svc.Get(ctx, citizen, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = svc.Get(ctx, citizen, "HPG-0")
	assert.ErrorIs(t, err, domain.ErrGrievanceNotFound)

	_, err = svc.Get(ctx, domain.NewCitizen("9123456780"), rec.ID)
	assert.ErrorIs(t, err, domain.ErrGrievanceNotFound)
}

func TestGrievanceService_AppendReply(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, nil)
	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()

	rec, err := svc.Create(ctx, citizen, ports.CreateGrievanceInput{Draft: shimlaDraft()})
	require.NoError(t, err)

	updated, err := svc.AppendReply(ctx, citizen, rec.ID, "Any update?")
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.Equal(t, "Any update?", updated.Replies[0].Message)
	assert.Equal(t, domain.CitizenDisplayName, updated.Replies[0].Author)
	assert.False(t, updated.LastUpdated.Before(rec.LastUpdated))
	assert.Equal(t, updated.LastUpdated, updated.Replies[0].Date)

	stored, err := svc.Get(ctx, citizen, rec.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(*updated, *stored); diff != "" {
		t.Fatalf("stored record mismatch (-want +got):\n%s", diff)
	}
}

func TestGrievanceService_AppendReply_WhitespaceIsNoop(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, nil)
	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()

	rec, err := svc.Create(ctx, citizen, ports.CreateGrievanceInput{Draft: shimlaDraft()})
	require.NoError(t, err)

	for _, msg := range []string{"", "   ", "\n\t "} {
		got, err := svc.AppendReply(ctx, citizen, rec.ID, msg)
		require.NoError(t, err)
		assert.Empty(t, got.Replies)
		assert.Equal(t, rec.LastUpdated, got.LastUpdated)
	}
}

func TestGrievanceService_AppendReply_UnknownID(t *testing.T) {
	svc := newTestGrievanceService(newStubSessionStore(), nil)
	_, err := svc.AppendReply(context.Background(), domain.NewCitizen("9876543210"), "HPG-1", "hello")
	assert.ErrorIs(t, err, domain.ErrGrievanceNotFound)
}

func TestGrievanceService_AppendReply_ClockSkewKeepsLastUpdatedMonotone(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestGrievanceService(store, nil)
	citizen := domain.NewCitizen("9876543210")
	ctx := context.Background()

	rec, err := svc.Create(ctx, citizen, ports.CreateGrievanceInput{Draft: shimlaDraft()})
	require.NoError(t, err)

	svc.now = func() time.Time { return testEpoch.Add(-time.Hour) }
	updated, err := svc.AppendReply(ctx, citizen, rec.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, rec.LastUpdated, updated.LastUpdated)
}

func TestIDGenerator_SkipsExistingIDs(t *testing.T) {
	frozen := func() time.Time { return testEpoch }
	gen := NewIDGenerator(frozen)
	n := testEpoch.UnixMilli()

	existing := []domain.GrievanceRecord{{ID: formatID(n)}, {ID: formatID(n + 1)}}
	assert.Equal(t, formatID(n+2), gen.Next(existing))
	assert.Equal(t, formatID(n+3), gen.Next(nil))
}
