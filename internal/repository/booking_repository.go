package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrBookingNotFound is returned when a user holds no booking.
var ErrBookingNotFound = errors.New("booking not found")

// BookedRoom is the joined room returned on the booking read path.
type BookedRoom struct {
	ID       uint64 `json:"id"`
	HotelID  uint64 `json:"hotelId"`
	Name     string `json:"name"`
	Capacity uint32 `json:"capacity"`
}

// BookingDetail is a booking together with its joined room, the shape
// returned to clients on the read path.
type BookingDetail struct {
	ID   uint64     `json:"id"`
	Room BookedRoom `json:"room"`
}

// BookingRepo provides the read/write access the workflow needs on the
// bookings table: fetch the user's booking, create one, move one to a
// different room. Bookings are never deleted here.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// FirstByUser returns the user's booking with its room. Only the first
// booking is considered; the data model treats one live booking per
// user as the norm. ErrBookingNotFound is returned when none exists.
func (r *BookingRepo) FirstByUser(ctx context.Context, userID uint64) (BookingDetail, error) {
	const q = `SELECT b.id, rm.id, rm.hotel_id, rm.name, rm.capacity
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.id
	           LIMIT 1`
	var d BookingDetail
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&d.ID, &d.Room.ID, &d.Room.HotelID, &d.Room.Name, &d.Room.Capacity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingDetail{}, ErrBookingNotFound
		}
		return BookingDetail{}, err
	}
	return d, nil
}

// Create inserts a booking for the user on the given room and returns
// the generated booking id.
func (r *BookingRepo) Create(ctx context.Context, userID, roomID uint64) (uint64, error) {
	const q = `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, userID, roomID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateRoom points an existing booking at a different room. The
// booking id itself never changes.
func (r *BookingRepo) UpdateRoom(ctx context.Context, bookingID, roomID uint64) error {
	const q = `UPDATE bookings SET room_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, roomID, bookingID)
	return err
}
