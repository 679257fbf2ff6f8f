package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventhotel/booking-api/internal/queue"
	"github.com/eventhotel/booking-api/internal/repository"
	"github.com/eventhotel/booking-api/internal/service"
)

// bookingWorkflow is the slice of the booking service this handler
// needs; tests substitute a stub.
type bookingWorkflow interface {
	GetBooking(ctx context.Context, userID uint64) (repository.BookingDetail, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error)
	UpdateBooking(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error)
}

// BookingHandler exposes the booking workflow over HTTP. All routes sit
// behind the JWT middleware, which guarantees a user_id in context.
type BookingHandler struct {
	Workflow bookingWorkflow

	// publishFn defaults to queue.PublishBookingEvent; tests swap it.
	publishFn func(ctx context.Context, ev queue.BookingEvent) error
}

// NewBookingHandler constructs a BookingHandler around the workflow.
func NewBookingHandler(workflow *service.BookingService) *BookingHandler {
	return &BookingHandler{Workflow: workflow}
}

type bookingBody struct {
	RoomID uint64 `json:"roomId"`
}

type bookingIDResp struct {
	BookingID uint64 `json:"bookingId"`
}

// GetBooking handles GET /booking. It returns the user's booking with
// its room, 403 when the user has none, and 403 for any unclassified
// failure; only a missing referenced entity yields 404.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	booking, err := h.Workflow.GetBooking(c.Request().Context(), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /booking. The body carries the target
// roomId; on success the new booking id is returned.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookingBody
	if err := c.Bind(&body); err != nil || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}

	bookingID, err := h.Workflow.CreateBooking(c.Request().Context(), userID, body.RoomID)
	if err != nil {
		return bookingError(c, err)
	}

	h.publish(c, queue.ActionCreated, bookingID, userID, body.RoomID)
	return c.JSON(http.StatusOK, bookingIDResp{BookingID: bookingID})
}

// UpdateBooking handles PUT /booking/:bookingId. It moves the user's
// booking to the room named in the body; the booking id never changes.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body bookingBody
	if err := c.Bind(&body); err != nil || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}

	id, err := h.Workflow.UpdateBooking(c.Request().Context(), userID, body.RoomID, bookingID)
	if err != nil {
		return bookingError(c, err)
	}

	h.publish(c, queue.ActionUpdated, id, userID, body.RoomID)
	return c.JSON(http.StatusOK, bookingIDResp{BookingID: id})
}

// publish fires a booking event without blocking the response. Publish
// failures are logged inside the queue package and ignored here.
//
// Echo recycles contexts through a sync.Pool once the handler returns,
// so everything needed from c must be read before the goroutine starts;
// the goroutine itself must never touch c.
func (h *BookingHandler) publish(c echo.Context, action string, bookingID, userID, roomID uint64) {
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  bookingID,
		UserID:     userID,
		RoomID:     roomID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	ctx := context.WithoutCancel(c.Request().Context())
	fn := h.publishFn
	if fn == nil {
		fn = queue.PublishBookingEvent
	}
	go func() {
		_ = fn(ctx, ev)
	}()
}

// bookingError translates workflow failures to status codes: NotFound
// becomes 404, Forbidden 403, and anything else collapses to 403 as
// well. Existing clients of this surface rely on the 403 default.
func bookingError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": service.ErrNotFound.Error()})
	}
	if errors.Is(err, service.ErrForbidden) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": service.ErrForbidden.Error()})
	}
	return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot process booking"})
}
