package availability

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kovil/hall-booking/internal/model"
)

func held(reason string) model.DateStatus {
	return model.DateStatus{State: model.StateHeld, Category: model.CategoryWedding, Reason: reason}
}

func booked(reason string) model.DateStatus {
	return model.DateStatus{State: model.StateBooked, Category: model.CategoryWedding, Reason: reason}
}

func TestIndexDefaultsToAvailable(t *testing.T) {
	ix := NewIndex()

	st := ix.StatusOf(3, "2025-06-10")
	assert.Equal(t, model.StateAvailable, st.State)
	assert.True(t, st.IsAvailable())
	assert.Empty(t, ix.AllForHall(3))
}

func TestIndexRefreshReplacesSnapshot(t *testing.T) {
	ix := NewIndex()
	ix.Refresh([]model.AvailabilityRecord{
		{HallID: 1, Date: "2025-06-10", Status: booked("Wedding")},
		{HallID: 1, Date: "2025-06-11", Status: held("Reception")},
		{HallID: 2, Date: "2025-06-10", Status: held("Upanayana")},
	})

	assert.Equal(t, booked("Wedding"), ix.StatusOf(1, "2025-06-10"))
	assert.Len(t, ix.AllForHall(1), 2)

	// A refresh with a smaller record set must drop the old entries
	// entirely, not merge.
	ix.Refresh([]model.AvailabilityRecord{
		{HallID: 2, Date: "2025-06-10", Status: held("Upanayana")},
	})
	assert.True(t, ix.StatusOf(1, "2025-06-10").IsAvailable())
	assert.Empty(t, ix.AllForHall(1))
	assert.Len(t, ix.AllForHall(2), 1)
}

func TestIndexAllForHallReturnsCopy(t *testing.T) {
	ix := NewIndex()
	ix.Refresh([]model.AvailabilityRecord{
		{HallID: 1, Date: "2025-06-10", Status: booked("Wedding")},
	})

	m := ix.AllForHall(1)
	m["2025-06-10"] = model.Available()
	m["2025-06-11"] = booked("tamper")

	assert.Equal(t, booked("Wedding"), ix.StatusOf(1, "2025-06-10"))
	assert.True(t, ix.StatusOf(1, "2025-06-11").IsAvailable())
}

func TestIndexSetPointUpdate(t *testing.T) {
	ix := NewIndex()

	ix.Set(1, "2025-06-10", held("Wedding"))
	assert.Equal(t, held("Wedding"), ix.StatusOf(1, "2025-06-10"))

	// Setting an available status removes the entry, matching the
	// open-world default for absent keys.
	ix.Set(1, "2025-06-10", model.Available())
	assert.True(t, ix.StatusOf(1, "2025-06-10").IsAvailable())
	assert.Empty(t, ix.AllForHall(1))
}

func TestIndexConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	ix := NewIndex()

	// Two alternating snapshots; each pairs both dates with the same
	// reason, so a reader observing mixed reasons would prove a torn
	// refresh.
	snapshot := func(reason string) []model.AvailabilityRecord {
		return []model.AvailabilityRecord{
			{HallID: 1, Date: "2025-06-10", Status: booked(reason)},
			{HallID: 1, Date: "2025-06-11", Status: booked(reason)},
		}
	}
	ix.Refresh(snapshot("a"))

	done := make(chan struct{})
	writerStopped := make(chan struct{})
	go func() {
		defer close(writerStopped)
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				ix.Refresh(snapshot(fmt.Sprintf("gen-%d", i)))
			}
		}
	}()

	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for i := 0; i < 2000; i++ {
				all := ix.AllForHall(1)
				assert.Len(t, all, 2)
				assert.Equal(t, all["2025-06-10"].Reason, all["2025-06-11"].Reason,
					"reader observed a torn snapshot")
			}
		}()
	}

	readers.Wait()
	close(done)
	<-writerStopped
}
