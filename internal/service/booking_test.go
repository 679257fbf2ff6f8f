package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhotel/booking-api/internal/model"
	"github.com/eventhotel/booking-api/internal/repository"
)

// Func-field mocks for the workflow collaborators.

type mockEnrollments struct {
	FindByUserFunc func(ctx context.Context, userID uint64) (model.Enrollment, error)
}

func (m *mockEnrollments) FindByUser(ctx context.Context, userID uint64) (model.Enrollment, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return model.Enrollment{}, repository.ErrEnrollmentNotFound
}

type mockTickets struct {
	FindByEnrollmentFunc func(ctx context.Context, enrollmentID uint64) (model.Ticket, error)
}

func (m *mockTickets) FindByEnrollment(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
	if m.FindByEnrollmentFunc != nil {
		return m.FindByEnrollmentFunc(ctx, enrollmentID)
	}
	return model.Ticket{}, repository.ErrTicketNotFound
}

type mockRooms struct {
	FindRoomByIDFunc func(ctx context.Context, roomID uint64) (repository.RoomOccupancy, error)
}

func (m *mockRooms) FindRoomByID(ctx context.Context, roomID uint64) (repository.RoomOccupancy, error) {
	if m.FindRoomByIDFunc != nil {
		return m.FindRoomByIDFunc(ctx, roomID)
	}
	return repository.RoomOccupancy{}, repository.ErrRoomNotFound
}

type mockBookings struct {
	FirstByUserFunc func(ctx context.Context, userID uint64) (repository.BookingDetail, error)
	CreateFunc      func(ctx context.Context, userID, roomID uint64) (uint64, error)
	UpdateRoomFunc  func(ctx context.Context, bookingID, roomID uint64) error
}

func (m *mockBookings) FirstByUser(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
	if m.FirstByUserFunc != nil {
		return m.FirstByUserFunc(ctx, userID)
	}
	return repository.BookingDetail{}, repository.ErrBookingNotFound
}

func (m *mockBookings) Create(ctx context.Context, userID, roomID uint64) (uint64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, roomID)
	}
	return 0, errors.New("unexpected Create call")
}

func (m *mockBookings) UpdateRoom(ctx context.Context, bookingID, roomID uint64) error {
	if m.UpdateRoomFunc != nil {
		return m.UpdateRoomFunc(ctx, bookingID, roomID)
	}
	return errors.New("unexpected UpdateRoom call")
}

// Fixture helpers.

func enrolled(id uint64) *mockEnrollments {
	return &mockEnrollments{
		FindByUserFunc: func(ctx context.Context, userID uint64) (model.Enrollment, error) {
			return model.Enrollment{ID: id, UserID: userID}, nil
		},
	}
}

func ticketWith(status string, isRemote, includesHotel bool) *mockTickets {
	return &mockTickets{
		FindByEnrollmentFunc: func(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
			return model.Ticket{
				ID:           7,
				EnrollmentID: enrollmentID,
				Status:       status,
				Type:         model.TicketType{ID: 3, IsRemote: isRemote, IncludesHotel: includesHotel},
			}, nil
		},
	}
}

func eligibleTicket() *mockTickets {
	return ticketWith(model.TicketStatusPaid, false, true)
}

func roomWith(capacity, bookingCount uint32) *mockRooms {
	return &mockRooms{
		FindRoomByIDFunc: func(ctx context.Context, roomID uint64) (repository.RoomOccupancy, error) {
			return repository.RoomOccupancy{
				ID:           roomID,
				HotelID:      1,
				Name:         "101",
				Capacity:     capacity,
				BookingCount: bookingCount,
			}, nil
		},
	}
}

func TestGetBooking_NoBookingIsForbidden(t *testing.T) {
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, &mockRooms{}, &mockBookings{})

	_, err := svc.GetBooking(context.Background(), 42)

	require.ErrorIs(t, err, ErrForbidden)
}

func TestGetBooking_ReturnsBookingWithRoom(t *testing.T) {
	bookings := &mockBookings{
		FirstByUserFunc: func(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
			return repository.BookingDetail{
				ID:   9,
				Room: repository.BookedRoom{ID: 4, HotelID: 2, Name: "305", Capacity: 3},
			}, nil
		},
	}
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, &mockRooms{}, bookings)

	booking, err := svc.GetBooking(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, uint64(9), booking.ID)
	assert.Equal(t, uint64(4), booking.Room.ID)
}

func TestGetBooking_StorageErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	bookings := &mockBookings{
		FirstByUserFunc: func(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
			return repository.BookingDetail{}, boom
		},
	}
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, &mockRooms{}, bookings)

	_, err := svc.GetBooking(context.Background(), 42)

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestCreateBooking_NoEnrollmentIsNotFound(t *testing.T) {
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, &mockRooms{}, &mockBookings{})

	_, err := svc.CreateBooking(context.Background(), 42, 1)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBooking_NoTicketIsNotFound(t *testing.T) {
	svc := NewBookingService(enrolled(5), &mockTickets{}, &mockRooms{}, &mockBookings{})

	_, err := svc.CreateBooking(context.Background(), 42, 1)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBooking_TicketEligibility(t *testing.T) {
	cases := []struct {
		name          string
		status        string
		isRemote      bool
		includesHotel bool
	}{
		{"reserved ticket", model.TicketStatusReserved, false, true},
		{"remote ticket", model.TicketStatusPaid, true, true},
		{"remote ticket with hotel flag unset", model.TicketStatusPaid, true, false},
		{"no hotel included", model.TicketStatusPaid, false, false},
		{"reserved and remote", model.TicketStatusReserved, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewBookingService(
				enrolled(5),
				ticketWith(tc.status, tc.isRemote, tc.includesHotel),
				roomWith(3, 0),
				&mockBookings{},
			)

			_, err := svc.CreateBooking(context.Background(), 42, 1)

			require.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestCreateBooking_RoomMissingIsNotFound(t *testing.T) {
	svc := NewBookingService(enrolled(5), eligibleTicket(), &mockRooms{}, &mockBookings{})

	_, err := svc.CreateBooking(context.Background(), 42, 99)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBooking_FullRoomIsForbidden(t *testing.T) {
	svc := NewBookingService(enrolled(5), eligibleTicket(), roomWith(3, 3), &mockBookings{})

	_, err := svc.CreateBooking(context.Background(), 42, 1)

	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateBooking_LastFreeSlotSucceeds(t *testing.T) {
	bookings := &mockBookings{
		CreateFunc: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
			return 11, nil
		},
	}
	svc := NewBookingService(enrolled(5), eligibleTicket(), roomWith(3, 2), bookings)

	id, err := svc.CreateBooking(context.Background(), 42, 1)

	require.NoError(t, err)
	assert.Equal(t, uint64(11), id)
}

func TestCreateBooking_EmptyRoomSucceeds(t *testing.T) {
	var gotUser, gotRoom uint64
	bookings := &mockBookings{
		CreateFunc: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
			gotUser, gotRoom = userID, roomID
			return 21, nil
		},
	}
	svc := NewBookingService(enrolled(5), eligibleTicket(), roomWith(3, 0), bookings)

	id, err := svc.CreateBooking(context.Background(), 42, 8)

	require.NoError(t, err)
	assert.Equal(t, uint64(21), id)
	assert.Equal(t, uint64(42), gotUser)
	assert.Equal(t, uint64(8), gotRoom)
}

func TestCreateBooking_ChecksStopAtFirstFailure(t *testing.T) {
	// Enrollment lookup fails; no later collaborator may be touched.
	tickets := &mockTickets{
		FindByEnrollmentFunc: func(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
			t.Fatal("ticket lookup must not run without an enrollment")
			return model.Ticket{}, nil
		},
	}
	rooms := &mockRooms{
		FindRoomByIDFunc: func(ctx context.Context, roomID uint64) (repository.RoomOccupancy, error) {
			t.Fatal("room lookup must not run without an enrollment")
			return repository.RoomOccupancy{}, nil
		},
	}
	svc := NewBookingService(&mockEnrollments{}, tickets, rooms, &mockBookings{})

	_, err := svc.CreateBooking(context.Background(), 42, 1)

	require.ErrorIs(t, err, ErrNotFound)
}

func existingBooking(id, roomID uint64) *mockBookings {
	return &mockBookings{
		FirstByUserFunc: func(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
			return repository.BookingDetail{
				ID:   id,
				Room: repository.BookedRoom{ID: roomID, HotelID: 1, Name: "101", Capacity: 2},
			}, nil
		},
		UpdateRoomFunc: func(ctx context.Context, bookingID, roomID uint64) error {
			return nil
		},
	}
}

func TestUpdateBooking_NoBookingIsForbidden(t *testing.T) {
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, roomWith(3, 0), &mockBookings{})

	_, err := svc.UpdateBooking(context.Background(), 42, 1, 9)

	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBooking_IDMismatchIsForbidden(t *testing.T) {
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, roomWith(3, 0), existingBooking(9, 1))

	_, err := svc.UpdateBooking(context.Background(), 42, 1, 10)

	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBooking_RoomMissingIsNotFound(t *testing.T) {
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, &mockRooms{}, existingBooking(9, 1))

	_, err := svc.UpdateBooking(context.Background(), 42, 99, 9)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBooking_FullTargetRoomIsForbidden(t *testing.T) {
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, roomWith(2, 2), existingBooking(9, 1))

	_, err := svc.UpdateBooking(context.Background(), 42, 5, 9)

	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBooking_MoveSucceedsAndKeepsID(t *testing.T) {
	var movedTo uint64
	bookings := existingBooking(9, 1)
	bookings.UpdateRoomFunc = func(ctx context.Context, bookingID, roomID uint64) error {
		movedTo = roomID
		return nil
	}
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, roomWith(3, 1), bookings)

	id, err := svc.UpdateBooking(context.Background(), 42, 5, 9)

	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
	assert.Equal(t, uint64(5), movedTo)
}

func TestUpdateBooking_SameRoomIsIdempotent(t *testing.T) {
	// Moving to the room the booking already references succeeds as long
	// as the capacity check passes with the booking's own occupancy.
	svc := NewBookingService(&mockEnrollments{}, &mockTickets{}, roomWith(2, 1), existingBooking(9, 1))

	id, err := svc.UpdateBooking(context.Background(), 42, 1, 9)

	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
}

func TestUpdateBooking_DoesNotRevalidateTicket(t *testing.T) {
	// An ineligible ticket must not block a move; eligibility was
	// established when the booking was created.
	svc := NewBookingService(
		enrolled(5),
		ticketWith(model.TicketStatusReserved, true, false),
		roomWith(3, 0),
		existingBooking(9, 1),
	)

	id, err := svc.UpdateBooking(context.Background(), 42, 2, 9)

	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
}
