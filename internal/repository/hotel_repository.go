package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhotel/booking-api/internal/model"
)

// Sentinel errors for hotel and room lookups.
var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
)

// RoomOccupancy is a room together with the number of bookings that
// currently reference it. The count is computed at read time; there is
// no occupancy counter column to keep in sync.
type RoomOccupancy struct {
	ID           uint64 `json:"id"`
	HotelID      uint64 `json:"hotelId"`
	Name         string `json:"name"`
	Capacity     uint32 `json:"capacity"`
	BookingCount uint32 `json:"bookingCount"`
}

// HotelRepo provides read access to hotels and their rooms.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the given DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// ListHotels returns all hotels ordered by id.
func (r *HotelRepo) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT id, name, image_url FROM hotels ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.ImageURL); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// GetHotel returns a single hotel by id. ErrHotelNotFound is returned
// when no such hotel exists.
func (r *HotelRepo) GetHotel(ctx context.Context, hotelID uint64) (model.Hotel, error) {
	const q = `SELECT id, name, image_url FROM hotels WHERE id = ? LIMIT 1`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, hotelID).Scan(&h.ID, &h.Name, &h.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Hotel{}, ErrHotelNotFound
		}
		return model.Hotel{}, err
	}
	return h, nil
}

// ListRoomsByHotel returns every room of a hotel with its current
// booking count. Rooms without bookings appear with a zero count.
func (r *HotelRepo) ListRoomsByHotel(ctx context.Context, hotelID uint64) ([]RoomOccupancy, error) {
	const q = `SELECT r.id, r.hotel_id, r.name, r.capacity, COUNT(b.id)
	           FROM rooms r
	           LEFT JOIN bookings b ON b.room_id = r.id
	           WHERE r.hotel_id = ?
	           GROUP BY r.id, r.hotel_id, r.name, r.capacity
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RoomOccupancy, 0)
	for rows.Next() {
		var ro RoomOccupancy
		if err := rows.Scan(&ro.ID, &ro.HotelID, &ro.Name, &ro.Capacity, &ro.BookingCount); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	return out, rows.Err()
}

// FindRoomByID returns a room and its current booking count. The count
// and the capacity together decide whether the room can accept another
// booking. ErrRoomNotFound is returned when no such room exists.
func (r *HotelRepo) FindRoomByID(ctx context.Context, roomID uint64) (RoomOccupancy, error) {
	const q = `SELECT r.id, r.hotel_id, r.name, r.capacity, COUNT(b.id)
	           FROM rooms r
	           LEFT JOIN bookings b ON b.room_id = r.id
	           WHERE r.id = ?
	           GROUP BY r.id, r.hotel_id, r.name, r.capacity`
	var ro RoomOccupancy
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(
		&ro.ID, &ro.HotelID, &ro.Name, &ro.Capacity, &ro.BookingCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RoomOccupancy{}, ErrRoomNotFound
		}
		return RoomOccupancy{}, err
	}
	return ro, nil
}
