// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a hall booking is confirmed.
// It carries enough information for downstream consumers to log, notify
// the temple office, or feed analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	HallID      uint64 `json:"hall_id"`
	HallName    string `json:"hall_name"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Reason      string `json:"reason,omitempty"`
	ConfirmedAt string `json:"confirmed_at"`
}
