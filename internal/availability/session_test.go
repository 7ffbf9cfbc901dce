package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovil/hall-booking/internal/model"
)

func newTestSession(t *testing.T, mode SurfaceMode, horizon int) (*Session, *fakeStore, *Index, *testClock) {
	t.Helper()
	clock := newTestClock(time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC))
	store := newFakeStore(clock.Now)
	index := NewIndex()
	resolver := NewResolver(store, index, 15*time.Minute, clock.Now)
	surface := Surface{Name: "test", HorizonMonths: horizon, Mode: mode}
	return NewSession(surface, index, resolver, store, clock.Now), store, index, clock
}

func TestSelectDateRejectsOutOfWindow(t *testing.T) {
	session, store, _, _ := newTestSession(t, ModeHold, 2)
	ctx := context.Background()

	// Yesterday and anything past the horizon end are rejected before
	// any transition is attempted.
	_, err := session.SelectDate(ctx, 1, "2025-01-14", model.CategoryWedding, "Wedding")
	assert.ErrorIs(t, err, ErrOutOfWindow)
	_, err = session.SelectDate(ctx, 1, "2025-04-01", model.CategoryWedding, "Wedding")
	assert.ErrorIs(t, err, ErrOutOfWindow)

	rec, err := store.GetRecord(ctx, 1, "2025-04-01")
	require.NoError(t, err)
	assert.Nil(t, rec, "no record may be written for an out-of-window selection")
}

func TestSelectDateWindowBoundsAreInclusive(t *testing.T) {
	session, _, _, _ := newTestSession(t, ModeHold, 2)
	ctx := context.Background()

	// Today itself and the last day of the horizon month both select.
	_, err := session.SelectDate(ctx, 1, "2025-01-15", model.CategoryWedding, "Wedding")
	assert.NoError(t, err)
	_, err = session.SelectDate(ctx, 1, "2025-03-31", model.CategoryWedding, "Wedding")
	assert.NoError(t, err)
}

func TestSelectDateRejectsKnownUnavailable(t *testing.T) {
	session, _, index, _ := newTestSession(t, ModeHold, 2)
	ctx := context.Background()

	index.Set(1, "2025-02-01", model.DateStatus{State: model.StateBooked, Category: model.CategoryWedding, Reason: "Iyer wedding"})

	_, err := session.SelectDate(ctx, 1, "2025-02-01", model.CategoryReception, "Reception")
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, model.StateBooked, unavailable.State)
	assert.Equal(t, "Iyer wedding", unavailable.Reason)
}

func TestSelectDateStaleIndexSurfacesRetryableConflict(t *testing.T) {
	session, store, index, _ := newTestSession(t, ModeBook, 2)
	ctx := context.Background()

	// Durable state says booked, but the local index has not caught up:
	// the classic read-render-click-submit race.
	require.NoError(t, store.PutRecord(ctx, model.AvailabilityRecord{
		HallID: 1,
		Date:   "2025-02-10",
		Status: model.DateStatus{State: model.StateBooked, Category: model.CategoryWedding, Reason: "Wedding"},
	}))
	require.True(t, index.StatusOf(1, "2025-02-10").IsAvailable(), "precondition: index is stale")

	_, err := session.SelectDate(ctx, 1, "2025-02-10", model.CategoryReception, "Reception")
	assert.ErrorIs(t, err, ErrStaleConflict)

	// Losing the race forces a refresh, so the retry sees reality.
	assert.Equal(t, model.StateBooked, index.StatusOf(1, "2025-02-10").State)
}

func TestSelectDateSuccessRefreshesIndex(t *testing.T) {
	tests := []struct {
		name      string
		mode      SurfaceMode
		wantState string
	}{
		{name: "hold surface", mode: ModeHold, wantState: model.StateHeld},
		{name: "book surface", mode: ModeBook, wantState: model.StateBooked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, _, index, _ := newTestSession(t, tt.mode, 2)

			rec, err := session.SelectDate(context.Background(), 1, "2025-02-05", model.CategoryWedding, "Wedding")
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, rec.Status.State)
			assert.Equal(t, tt.wantState, index.StatusOf(1, "2025-02-05").State)
		})
	}
}

func TestSelectDateHoldSurfaceReturnsToken(t *testing.T) {
	session, _, _, clock := newTestSession(t, ModeHold, 2)

	rec, err := session.SelectDate(context.Background(), 1, "2025-02-05", model.CategoryWedding, "Wedding")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.HoldToken)
	require.NotNil(t, rec.HoldExpiresAt)
	assert.Equal(t, clock.Now().Add(15*time.Minute), *rec.HoldExpiresAt)
}

func TestSelectDateMapsStoreOutage(t *testing.T) {
	session, store, _, _ := newTestSession(t, ModeBook, 2)

	store.setDown(true)

	_, err := session.SelectDate(context.Background(), 1, "2025-02-05", model.CategoryWedding, "Wedding")
	assert.ErrorIs(t, err, ErrRepositoryUnavailable)
	assert.NotErrorIs(t, err, ErrStaleConflict, "an outage must not read as a conflict")
}

func TestSelectDateWindowMovesWithToday(t *testing.T) {
	session, _, _, clock := newTestSession(t, ModeHold, 0)
	ctx := context.Background()

	// Horizon 0: only the rest of January is selectable.
	_, err := session.SelectDate(ctx, 1, "2025-02-01", model.CategoryWedding, "Wedding")
	require.ErrorIs(t, err, ErrOutOfWindow)

	// The same session after a month rollover recomputes its bounds
	// from the current today - nothing is cached.
	clock.Advance(20 * 24 * time.Hour) // Feb 4th
	_, err = session.SelectDate(ctx, 1, "2025-02-28", model.CategoryWedding, "Wedding")
	assert.NoError(t, err)
	_, err = session.SelectDate(ctx, 1, "2025-01-20", model.CategoryWedding, "Wedding")
	assert.ErrorIs(t, err, ErrOutOfWindow, "a date that fell behind today is no longer selectable")
}
