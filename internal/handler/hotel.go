package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventhotel/booking-api/internal/repository"
)

// HotelHandler serves the hotel browse endpoints participants use to
// pick a room before booking.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

// NewHotelHandler constructs a HotelHandler with the hotel repository.
func NewHotelHandler(hotels *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: hotels}
}

// ListHotels handles GET /hotels and returns all hotels.
func (h *HotelHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Hotels.ListHotels(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotels"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": hotels})
}

// GetHotelRooms handles GET /hotels/:hotelId. It returns the hotel with
// its rooms and each room's current booking count, so clients can show
// remaining capacity.
func (h *HotelHandler) GetHotelRooms(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()

	hotel, err := h.Hotels.GetHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotel"})
	}

	rooms, err := h.Hotels.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"hotel": hotel,
		"rooms": rooms,
	})
}
