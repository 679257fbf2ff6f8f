package service

import (
	"context"
	"errors"

	"github.com/eventhotel/booking-api/internal/model"
	"github.com/eventhotel/booking-api/internal/repository"
)

// Collaborator lookups the workflow depends on. The concrete
// repositories satisfy these; tests substitute their own.

// EnrollmentStore looks up a user's enrollment.
type EnrollmentStore interface {
	FindByUser(ctx context.Context, userID uint64) (model.Enrollment, error)
}

// TicketStore looks up the ticket (with type) issued for an enrollment.
type TicketStore interface {
	FindByEnrollment(ctx context.Context, enrollmentID uint64) (model.Ticket, error)
}

// RoomStore looks up a room together with its current booking count.
type RoomStore interface {
	FindRoomByID(ctx context.Context, roomID uint64) (repository.RoomOccupancy, error)
}

// BookingStore reads and writes the user's booking.
type BookingStore interface {
	FirstByUser(ctx context.Context, userID uint64) (repository.BookingDetail, error)
	Create(ctx context.Context, userID, roomID uint64) (uint64, error)
	UpdateRoom(ctx context.Context, bookingID, roomID uint64) error
}

// BookingService orchestrates the booking workflow. It owns no state of
// its own; every read and write goes through the injected stores.
type BookingService struct {
	enrollments EnrollmentStore
	tickets     TicketStore
	rooms       RoomStore
	bookings    BookingStore
}

// NewBookingService wires a BookingService with its collaborators.
func NewBookingService(enrollments EnrollmentStore, tickets TicketStore, rooms RoomStore, bookings BookingStore) *BookingService {
	return &BookingService{
		enrollments: enrollments,
		tickets:     tickets,
		rooms:       rooms,
		bookings:    bookings,
	}
}

// GetBooking returns the user's booking with its room. Absence of a
// booking is reported as ErrForbidden, not ErrNotFound; existing
// clients depend on the 403.
func (s *BookingService) GetBooking(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
	booking, err := s.bookings.FirstByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return repository.BookingDetail{}, ErrForbidden
		}
		return repository.BookingDetail{}, err
	}
	return booking, nil
}

// CreateBooking books a room for the user after checking, in order:
// enrollment exists, ticket exists, ticket is eligible (paid, not
// remote, includes hotel), room exists, room has free capacity. The
// first failing check wins. It returns the new booking id.
//
// The capacity check and the insert are not atomic; two concurrent
// requests can both pass the check before either write lands.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	enrollment, err := s.enrollments.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	ticket, err := s.tickets.FindByEnrollment(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if ticket.Status == model.TicketStatusReserved || ticket.Type.IsRemote || !ticket.Type.IncludesHotel {
		return 0, ErrForbidden
	}

	if err := s.checkRoom(ctx, roomID); err != nil {
		return 0, err
	}

	return s.bookings.Create(ctx, userID, roomID)
}

// UpdateBooking moves the user's existing booking to another room. The
// booking must belong to the user and match the supplied id; ticket
// eligibility is not re-validated, it was established at creation time.
// The (unchanged) booking id is returned.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error) {
	booking, err := s.bookings.FirstByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return 0, ErrForbidden
		}
		return 0, err
	}
	if booking.ID != bookingID {
		return 0, ErrForbidden
	}

	if err := s.checkRoom(ctx, roomID); err != nil {
		return 0, err
	}

	if err := s.bookings.UpdateRoom(ctx, bookingID, roomID); err != nil {
		return 0, err
	}
	return bookingID, nil
}

// checkRoom verifies the room exists and still has free capacity.
// Capacity is a hard ceiling: a room with count == capacity is full.
func (s *BookingService) checkRoom(ctx context.Context, roomID uint64) error {
	room, err := s.rooms.FindRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrNotFound
		}
		return err
	}
	if room.BookingCount >= room.Capacity {
		return ErrForbidden
	}
	return nil
}
