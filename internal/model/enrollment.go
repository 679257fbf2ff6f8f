package model

import "time"

// Enrollment is a user's registration record for the event. Holding an
// enrollment is the prerequisite for buying a ticket, which in turn
// gates hotel-room booking.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – the user this enrollment belongs to (one per user).
//  CreatedAt – timestamp of creation.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	CreatedAt time.Time // enrollments.created_at
}
