package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kovil/hall-booking/internal/model"
)

func TestNormalizeRecordExpiresLapsedHolds(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name      string
		rec       model.AvailabilityRecord
		wantState string
		wantToken string
	}{
		{
			name: "live hold passes through",
			rec: model.AvailabilityRecord{
				Status:        model.DateStatus{State: model.StateHeld, Reason: "Wedding"},
				HoldToken:     "tok",
				HoldExpiresAt: &future,
			},
			wantState: model.StateHeld,
			wantToken: "tok",
		},
		{
			name: "lapsed hold reads available",
			rec: model.AvailabilityRecord{
				Status:        model.DateStatus{State: model.StateHeld, Reason: "Wedding"},
				HoldToken:     "tok",
				HoldExpiresAt: &past,
			},
			wantState: model.StateAvailable,
		},
		{
			name: "hold expiring exactly now reads available",
			rec: model.AvailabilityRecord{
				Status:        model.DateStatus{State: model.StateHeld, Reason: "Wedding"},
				HoldToken:     "tok",
				HoldExpiresAt: &now,
			},
			wantState: model.StateAvailable,
		},
		{
			name: "held row without expiry reads available",
			rec: model.AvailabilityRecord{
				Status:    model.DateStatus{State: model.StateHeld, Reason: "Wedding"},
				HoldToken: "tok",
			},
			wantState: model.StateAvailable,
		},
		{
			name: "booked row is never expired",
			rec: model.AvailabilityRecord{
				Status: model.DateStatus{State: model.StateBooked, Reason: "Wedding"},
			},
			wantState: model.StateBooked,
		},
		{
			name:      "available row passes through",
			rec:       model.AvailabilityRecord{Status: model.Available()},
			wantState: model.StateAvailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeRecord(tt.rec, now)
			assert.Equal(t, tt.wantState, got.Status.State)
			assert.Equal(t, tt.wantToken, got.HoldToken)
			if tt.wantState == model.StateAvailable {
				assert.Nil(t, got.HoldExpiresAt)
				assert.Empty(t, got.Status.Reason, "an expired hold must not leak its reason")
			}
		})
	}
}
