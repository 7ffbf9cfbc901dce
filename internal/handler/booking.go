package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kovil/hall-booking/internal/availability"
	"github.com/kovil/hall-booking/internal/model"
	"github.com/kovil/hall-booking/internal/queue"
	"github.com/kovil/hall-booking/internal/repository"
	queue_publisher "github.com/kovil/hall-booking/internal/service"
)

// BookingHandler drives the booking mutations: placing a hold,
// confirming a booking, releasing a hold and cancelling a booking.
// Hold and direct-confirm selections run through a BookingSession so
// the window policy and the local index are consulted before any
// transition; confirm-with-token and the two reversals talk to the
// resolver, which is the sole writer-of-record.
type BookingHandler struct {
	Hold     *availability.Session // overview surface, ModeHold
	Book     *availability.Session // detail surface, ModeBook
	Resolver *availability.Resolver
	HallRepo *repository.HallRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must
// be non-nil.
func NewBookingHandler(hold, book *availability.Session, resolver *availability.Resolver, hallRepo *repository.HallRepo) *BookingHandler {
	if hold == nil || book == nil || resolver == nil || hallRepo == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Hold: hold, Book: book, Resolver: resolver, HallRepo: hallRepo}
}

// bookingRequest is the JSON body shared by hold and confirm.
type bookingRequest struct {
	Category  string `json:"category"`
	Reason    string `json:"reason"`
	HoldToken string `json:"hold_token"`
}

// parseKey validates the :id and :date path parameters, checking the
// hall exists and canonicalising the date.  When ok is false the
// response has already been written and the handler must return nil.
func (h *BookingHandler) parseKey(c echo.Context) (hallID uint64, date string, ok bool) {
	hallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hallID == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
		return 0, "", false
	}
	d, err := time.ParseInLocation(model.DateLayout, c.Param("date"), time.UTC)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		return 0, "", false
	}
	if _, err := h.HallRepo.GetByID(c.Request().Context(), hallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall"})
		}
		return 0, "", false
	}
	return hallID, d.Format(model.DateLayout), true
}

// writeBookingError maps the core's error taxonomy onto HTTP statuses.
// Conflicts (409) are deliberately distinct from backend failures (503)
// so clients can tell "someone else took this date" from "the backend
// is down" and react differently.
func writeBookingError(c echo.Context, err error) error {
	var unavailable *availability.UnavailableError
	switch {
	case errors.Is(err, availability.ErrOutOfWindow):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date outside booking window"})
	case errors.As(err, &unavailable):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  "date unavailable",
			"state":  unavailable.State,
			"reason": unavailable.Reason,
		})
	case errors.Is(err, availability.ErrStaleConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "date was taken concurrently",
			"retryable": true,
		})
	case errors.Is(err, availability.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting state for this date"})
	case errors.Is(err, availability.ErrNotBooked):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking on this date"})
	case errors.Is(err, availability.ErrRepositoryUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "availability store unreachable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
	}
}

// HoldDate handles POST /v1/halls/:id/dates/:date/hold.  It places a
// time-limited hold through the overview session and returns the hold
// token the client must present to confirm or release.
func (h *BookingHandler) HoldDate(c echo.Context) error {
	hallID, date, ok := h.parseKey(c)
	if !ok {
		return nil
	}
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	rec, err := h.Hold.SelectDate(c.Request().Context(), hallID, date, model.ParseCategory(body.Category), body.Reason)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"hall_id":    hallID,
		"date":       date,
		"hold_token": rec.HoldToken,
		"expires_at": rec.HoldExpiresAt.Format(time.RFC3339),
	})
}

// ConfirmDate handles POST /v1/halls/:id/dates/:date/confirm.  With a
// hold_token in the body it finalises an existing hold; without one it
// books directly through the detail session (window and index are
// checked first).  A confirmed booking is announced on the message
// queue; publish failures never fail the request.
func (h *BookingHandler) ConfirmDate(c echo.Context) error {
	hallID, date, ok := h.parseKey(c)
	if !ok {
		return nil
	}
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cat := model.ParseCategory(body.Category)

	var (
		rec *model.AvailabilityRecord
		err error
	)
	if body.HoldToken != "" {
		rec, err = h.Resolver.ConfirmBooking(c.Request().Context(), hallID, date, cat, body.Reason, body.HoldToken)
		if err == nil {
			h.Book.RefreshIndex(c.Request().Context())
		}
	} else {
		rec, err = h.Book.SelectDate(c.Request().Context(), hallID, date, cat, body.Reason)
	}
	if err != nil {
		return writeBookingError(c, err)
	}

	// Announce the booking; the record is already durable so a broker
	// outage only costs the office log line.
	go func(ev queue.BookingConfirmedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
	}(h.confirmedEvent(c, hallID, rec))

	return c.JSON(http.StatusCreated, echo.Map{
		"hall_id": hallID,
		"date":    date,
		"status":  rec.Status,
	})
}

// confirmedEvent assembles the queue payload, tolerating a failed hall
// name lookup.
func (h *BookingHandler) confirmedEvent(c echo.Context, hallID uint64, rec *model.AvailabilityRecord) queue.BookingConfirmedEvent {
	hallName := ""
	if hall, err := h.HallRepo.GetByID(c.Request().Context(), hallID); err == nil {
		hallName = hall.Name
	}
	return queue.BookingConfirmedEvent{
		HallID:      hallID,
		HallName:    hallName,
		Date:        rec.Date,
		Category:    string(rec.Status.Category),
		Reason:      rec.Status.Reason,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// ReleaseHold handles DELETE /v1/halls/:id/dates/:date/hold.  The hold
// token arrives as a query parameter or JSON body.  Releasing an
// already-available date succeeds as a no-op so clients can retry
// safely.
func (h *BookingHandler) ReleaseHold(c echo.Context) error {
	hallID, date, ok := h.parseKey(c)
	if !ok {
		return nil
	}
	token := c.QueryParam("hold_token")
	if token == "" {
		var body bookingRequest
		if err := c.Bind(&body); err == nil {
			token = body.HoldToken
		}
	}
	if err := h.Resolver.Release(c.Request().Context(), hallID, date, token); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hall_id": hallID, "date": date, "released": true})
}

// CancelBooking handles DELETE /v1/halls/:id/dates/:date/booking.  It
// reverts a booked date to available.  A date without a booking yields
// 404 rather than a silent success.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	hallID, date, ok := h.parseKey(c)
	if !ok {
		return nil
	}
	if err := h.Resolver.Cancel(c.Request().Context(), hallID, date); err != nil {
		return writeBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
