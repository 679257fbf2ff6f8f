package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhotel/booking-api/internal/model"
)

// ErrTicketNotFound is returned when an enrollment has no ticket yet.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo provides read access to tickets and their types. Ticket
// creation and payment processing belong to another part of the event
// backend; the booking workflow only inspects the resulting state.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FindByEnrollment returns the ticket issued for the given enrollment
// together with its joined ticket type. ErrTicketNotFound is returned
// when the enrollment has no ticket.
func (r *TicketRepo) FindByEnrollment(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
	const q = `SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status, t.created_at, t.updated_at,
	                  tt.id, tt.name, tt.price_cents, tt.is_remote, tt.includes_hotel
	           FROM tickets t
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.enrollment_id = ? LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &t.TicketTypeID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.Type.ID, &t.Type.Name, &t.Type.PriceCents, &t.Type.IsRemote, &t.Type.IncludesHotel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Ticket{}, ErrTicketNotFound
		}
		return model.Ticket{}, err
	}
	return t, nil
}
