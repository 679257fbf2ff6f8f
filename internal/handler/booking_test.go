package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhotel/booking-api/internal/queue"
	"github.com/eventhotel/booking-api/internal/repository"
	"github.com/eventhotel/booking-api/internal/service"
)

// stubWorkflow satisfies bookingWorkflow with canned behavior.
type stubWorkflow struct {
	GetBookingFunc    func(ctx context.Context, userID uint64) (repository.BookingDetail, error)
	CreateBookingFunc func(ctx context.Context, userID, roomID uint64) (uint64, error)
	UpdateBookingFunc func(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error)
}

func (s *stubWorkflow) GetBooking(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
	return s.GetBookingFunc(ctx, userID)
}

func (s *stubWorkflow) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	return s.CreateBookingFunc(ctx, userID, roomID)
}

func (s *stubWorkflow) UpdateBooking(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error) {
	return s.UpdateBookingFunc(ctx, userID, roomID, bookingID)
}

func newBookingContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(42)) // what the JWT middleware would inject
	return c, rec
}

func TestGetBooking_OK(t *testing.T) {
	h := &BookingHandler{Workflow: &stubWorkflow{
		GetBookingFunc: func(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
			assert.Equal(t, uint64(42), userID)
			return repository.BookingDetail{
				ID:   9,
				Room: repository.BookedRoom{ID: 4, HotelID: 2, Name: "305", Capacity: 3},
			}, nil
		},
	}}
	c, rec := newBookingContext(t, http.MethodGet, "/booking", "")

	require.NoError(t, h.GetBooking(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)
	assert.Contains(t, rec.Body.String(), `"305"`)
}

func TestGetBooking_NoBookingIs403(t *testing.T) {
	h := &BookingHandler{Workflow: &stubWorkflow{
		GetBookingFunc: func(ctx context.Context, userID uint64) (repository.BookingDetail, error) {
			return repository.BookingDetail{}, service.ErrForbidden
		},
	}}
	c, rec := newBookingContext(t, http.MethodGet, "/booking", "")

	require.NoError(t, h.GetBooking(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetBooking_MissingIdentityIs401(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no user_id set

	h := &BookingHandler{Workflow: &stubWorkflow{}}
	require.NoError(t, h.GetBooking(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBooking_OK(t *testing.T) {
	h := &BookingHandler{Workflow: &stubWorkflow{
		CreateBookingFunc: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
			assert.Equal(t, uint64(42), userID)
			assert.Equal(t, uint64(7), roomID)
			return 11, nil
		},
	}}
	c, rec := newBookingContext(t, http.MethodPost, "/booking", `{"roomId":7}`)

	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookingId":11}`, rec.Body.String())
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"unclassified", errors.New("connection reset"), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &BookingHandler{Workflow: &stubWorkflow{
				CreateBookingFunc: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
					return 0, tc.err
				},
			}}
			c, rec := newBookingContext(t, http.MethodPost, "/booking", `{"roomId":7}`)

			require.NoError(t, h.CreateBooking(c))

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCreateBooking_MissingRoomIDIs400(t *testing.T) {
	called := false
	h := &BookingHandler{Workflow: &stubWorkflow{
		CreateBookingFunc: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
			called = true
			return 0, nil
		},
	}}
	c, rec := newBookingContext(t, http.MethodPost, "/booking", `{}`)

	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestUpdateBooking_OK(t *testing.T) {
	h := &BookingHandler{Workflow: &stubWorkflow{
		UpdateBookingFunc: func(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error) {
			assert.Equal(t, uint64(42), userID)
			assert.Equal(t, uint64(5), roomID)
			assert.Equal(t, uint64(9), bookingID)
			return 9, nil
		},
	}}
	c, rec := newBookingContext(t, http.MethodPut, "/booking/9", `{"roomId":5}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("9")

	require.NoError(t, h.UpdateBooking(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookingId":9}`, rec.Body.String())
}

func TestUpdateBooking_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"wrong booking id", service.ErrForbidden, http.StatusForbidden},
		{"room missing", service.ErrNotFound, http.StatusNotFound},
		{"unclassified", errors.New("timeout"), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &BookingHandler{Workflow: &stubWorkflow{
				UpdateBookingFunc: func(ctx context.Context, userID, roomID, bookingID uint64) (uint64, error) {
					return 0, tc.err
				},
			}}
			c, rec := newBookingContext(t, http.MethodPut, "/booking/9", `{"roomId":5}`)
			c.SetParamNames("bookingId")
			c.SetParamValues("9")

			require.NoError(t, h.UpdateBooking(c))

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

type ctxKey string

func TestCreateBooking_EventPublishOutlivesPooledContext(t *testing.T) {
	// Echo recycles contexts once a handler returns, so the publish
	// goroutine must capture everything it needs up front. Reset the
	// context to another request after the handler returns and verify
	// the published event still carries the original request's context.
	type published struct {
		ctx context.Context
		ev  queue.BookingEvent
	}
	got := make(chan published, 1)

	h := &BookingHandler{
		Workflow: &stubWorkflow{
			CreateBookingFunc: func(ctx context.Context, userID, roomID uint64) (uint64, error) {
				return 11, nil
			},
		},
		publishFn: func(ctx context.Context, ev queue.BookingEvent) error {
			got <- published{ctx: ctx, ev: ev}
			return nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(`{"roomId":7}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	key := ctxKey("request-tag")
	req = req.WithContext(context.WithValue(req.Context(), key, "original"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(42))

	require.NoError(t, h.CreateBooking(c))

	// Simulate the pool handing the context to an unrelated request.
	c.Reset(httptest.NewRequest(http.MethodGet, "/other", nil), httptest.NewRecorder())

	select {
	case p := <-got:
		assert.Equal(t, "original", p.ctx.Value(key))
		assert.NoError(t, p.ctx.Err())
		assert.Equal(t, queue.ActionCreated, p.ev.Action)
		assert.Equal(t, uint64(11), p.ev.BookingID)
		assert.Equal(t, uint64(42), p.ev.UserID)
		assert.Equal(t, uint64(7), p.ev.RoomID)
	case <-time.After(2 * time.Second):
		t.Fatal("booking event was never published")
	}
}

func TestUpdateBooking_BadBookingIDIs400(t *testing.T) {
	h := &BookingHandler{Workflow: &stubWorkflow{}}
	c, rec := newBookingContext(t, http.MethodPut, "/booking/abc", `{"roomId":5}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("abc")

	require.NoError(t, h.UpdateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
