package model

import "time"

// Ticket payment statuses stored in tickets.status.
const (
	TicketStatusReserved = "RESERVED" // ticket created but not yet paid
	TicketStatusPaid     = "PAID"     // payment confirmed
)

// TicketType categorizes event participation. The two boolean flags
// decide whether a ticket can ever lead to a hotel booking: remote
// tickets and tickets without hotel accommodation are never eligible.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – human readable label (e.g. "Presential + Hotel").
//  PriceCents    – ticket price in cents.
//  IsRemote      – true when the participation is online only.
//  IncludesHotel – true when the ticket covers hotel accommodation.
type TicketType struct {
	ID            uint64 // ticket_types.id
	Name          string // ticket_types.name
	PriceCents    uint32 // ticket_types.price_cents
	IsRemote      bool   // ticket_types.is_remote
	IncludesHotel bool   // ticket_types.includes_hotel
}

// Ticket is the proof of event participation. Each ticket belongs to
// exactly one enrollment and references a ticket type. The Type field
// is populated by the repository when the ticket is loaded with a join.
//
// Fields:
//  ID           – primary key identifier.
//  EnrollmentID – enrollment this ticket was issued for.
//  TicketTypeID – reference into ticket_types.
//  Status       – payment status (RESERVED or PAID).
//  Type         – joined ticket type record.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Ticket struct {
	ID           uint64     // tickets.id
	EnrollmentID uint64     // tickets.enrollment_id
	TicketTypeID uint64     // tickets.ticket_type_id
	Status       string     // tickets.status
	Type         TicketType // joined from ticket_types
	CreatedAt    time.Time  // tickets.created_at
	UpdatedAt    time.Time  // tickets.updated_at
}
