// Package queue defines message payloads exchanged over the message broker.
package queue

// Booking event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// BookingEvent is published whenever a booking is created or moved to a
// different room. It carries enough for downstream consumers to log or
// notify without querying the primary database.
type BookingEvent struct {
	Action     string `json:"action"` // "created" or "updated"
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	OccurredAt string `json:"occurred_at"` // RFC 3339, UTC
}
