package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kovil/hall-booking/internal/repository"
)

// HallHandler exposes the read-only hall directory: name, description
// and carousel images for each bookable hall.  Hall management happens
// in an external tool; these endpoints only pair availability data with
// display information.
type HallHandler struct {
	HallRepo *repository.HallRepo
}

// NewHallHandler constructs a HallHandler.  The repository must be
// non-nil.
func NewHallHandler(hallRepo *repository.HallRepo) *HallHandler {
	if hallRepo == nil {
		panic("nil repository passed to NewHallHandler")
	}
	return &HallHandler{HallRepo: hallRepo}
}

// ListHalls handles GET /v1/halls.  It returns every active hall with
// its ordered images.
func (h *HallHandler) ListHalls(c echo.Context) error {
	halls, err := h.HallRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load halls"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// GetHall handles GET /v1/halls/:id.  It returns one hall or 404 when
// no active hall matches.
func (h *HallHandler) GetHall(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	hall, err := h.HallRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": hall})
}
