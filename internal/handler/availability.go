package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kovil/hall-booking/internal/availability"
	"github.com/kovil/hall-booking/internal/calendar"
	"github.com/kovil/hall-booking/internal/model"
	"github.com/kovil/hall-booking/internal/repository"
)

// AvailabilityHandler serves the read side of the booking flow: raw
// availability records, per-hall status maps and the month-by-month
// calendar view a booking surface renders.  Reads come from the
// in-memory index except for the full dump, which goes straight to the
// store so operators always see durable state.
type AvailabilityHandler struct {
	Index    *availability.Index
	Store    availability.Store
	HallRepo *repository.HallRepo
	Surfaces map[string]availability.Surface
	Now      func() time.Time
}

// NewAvailabilityHandler constructs an AvailabilityHandler.  surfaces
// maps the surface query value ("detail", "overview") to its
// configuration; now may be nil for the wall clock.
func NewAvailabilityHandler(index *availability.Index, store availability.Store, hallRepo *repository.HallRepo, surfaces map[string]availability.Surface, now func() time.Time) *AvailabilityHandler {
	if index == nil || store == nil || hallRepo == nil {
		panic("nil dependency passed to NewAvailabilityHandler")
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityHandler{Index: index, Store: store, HallRepo: hallRepo, Surfaces: surfaces, Now: now}
}

// surfaceFrom resolves the ?surface= query parameter, defaulting to the
// detail surface.  Unknown names fall back to detail rather than
// erroring so stale links keep working.
func (h *AvailabilityHandler) surfaceFrom(c echo.Context) availability.Surface {
	if s, ok := h.Surfaces[c.QueryParam("surface")]; ok {
		return s
	}
	return h.Surfaces["detail"]
}

// ListAvailability handles GET /v1/availability.  It returns every
// stored availability record, normalised (expired holds read as
// available).
func (h *AvailabilityHandler) ListAvailability(c echo.Context) error {
	records, err := h.Store.ListRecords(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "availability store unreachable"})
	}
	items := make([]echo.Map, 0, len(records))
	for _, rec := range records {
		items = append(items, echo.Map{
			"hall_id": rec.HallID,
			"date":    rec.Date,
			"status":  rec.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// HallAvailability handles GET /v1/halls/:id/availability.  It returns
// the projected date→status map for one hall together with the bounds
// of the requesting surface's booking window.  Dates missing from the
// map are available.
func (h *AvailabilityHandler) HallAvailability(c echo.Context) error {
	hallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	if _, err := h.HallRepo.GetByID(c.Request().Context(), hallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall"})
	}
	surface := h.surfaceFrom(c)
	today := h.Now()
	return c.JSON(http.StatusOK, echo.Map{
		"hall_id":      hallID,
		"surface":      surface.Name,
		"window_start": today.UTC().Format(model.DateLayout),
		"window_end":   calendar.WindowEnd(today, surface.HorizonMonths),
		"dates":        h.Index.AllForHall(hallID),
	})
}

// calendarDay is one rendered day of the month view.
type calendarDay struct {
	Date       string `json:"date"`
	State      string `json:"state"`
	Reason     string `json:"reason,omitempty"`
	Selectable bool   `json:"selectable"`
}

// HallCalendar handles GET /v1/halls/:id/calendar?month=&year=&surface=.
// It renders one month of days with status and selectability plus the
// clamped previous/next cursors.  The requested month is itself clamped
// into the surface's window, so navigating past either bound is a
// no-op.
func (h *AvailabilityHandler) HallCalendar(c echo.Context) error {
	hallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	if _, err := h.HallRepo.GetByID(c.Request().Context(), hallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall"})
	}
	surface := h.surfaceFrom(c)
	today := h.Now()

	cursor := calendar.CursorFor(today)
	if mStr, yStr := c.QueryParam("month"), c.QueryParam("year"); mStr != "" && yStr != "" {
		m, errM := strconv.Atoi(mStr)
		y, errY := strconv.Atoi(yStr)
		if errM != nil || errY != nil || m < 1 || m > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month or year"})
		}
		cursor = calendar.Cursor{Month: time.Month(m), Year: y}
	}
	cursor = cursor.Clamp(today, surface.HorizonMonths)

	statuses := h.Index.AllForHall(hallID)
	days := make([]calendarDay, 0, cursor.DaysInMonth())
	for d, first := 0, cursor.FirstDay(); d < cursor.DaysInMonth(); d++ {
		date := first.AddDate(0, 0, d).Format(model.DateLayout)
		st, ok := statuses[date]
		if !ok {
			st = model.Available()
		}
		days = append(days, calendarDay{
			Date:       date,
			State:      st.State,
			Reason:     st.Reason,
			Selectable: st.IsAvailable() && calendar.Contains(today, surface.HorizonMonths, date),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hall_id":    hallID,
		"surface":    surface.Name,
		"month":      int(cursor.Month),
		"year":       cursor.Year,
		"days":       days,
		"prev":       cursor.Prev(today, surface.HorizonMonths),
		"next":       cursor.Next(today, surface.HorizonMonths),
		"window_end": calendar.WindowEnd(today, surface.HorizonMonths),
	})
}
