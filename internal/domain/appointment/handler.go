package appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careslot/careslot/internal/platform/auth"
	"github.com/careslot/careslot/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.Book, auth.RequireRole(auth.RolePatient))
	api.GET("/appointments", h.List)
	api.GET("/appointments/:id", h.Get)
	api.POST("/appointments/:id/payment", h.AttestPayment, auth.RequireRole(auth.RolePatient))
	api.POST("/appointments/:id/cancel", h.Cancel)
	api.POST("/appointments/:id/complete", h.Complete, auth.RequireRole(auth.RoleDoctor, auth.RoleAdmin))
	api.DELETE("/appointments/:id", h.Delete)

	api.POST("/maintenance/auto-complete", h.AutoComplete, auth.RequireRole(auth.RoleAdmin))
	api.POST("/maintenance/purge", h.Purge, auth.RequireRole(auth.RoleAdmin))
	api.GET("/dashboard", h.Dashboard, auth.RequireRole(auth.RoleAdmin))
}

// httpError maps the booking core's sentinel errors onto stable status codes.
// Conflict-class failures (slot taken, bad transition, doctor off duty) all
// surface as 409 so clients can retry with fresh state.
func httpError(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrDoctorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	case errors.Is(err, ErrDoctorUnavailable):
		return echo.NewHTTPError(http.StatusConflict, "doctor is not accepting appointments")
	case errors.Is(err, ErrSlotTaken):
		return echo.NewHTTPError(http.StatusConflict, "slot is already booked")
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, "appointment is not in a state that allows this")
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "not your appointment")
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}

func (h *Handler) Book(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor, _ := auth.ActorFromContext(c.Request().Context())
	req.PatientID = actor.ID

	a, err := h.svc.Book(c.Request().Context(), req)
	if err != nil {
		return httpError(err, "failed to book appointment")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor, _ := auth.ActorFromContext(c.Request().Context())

	a, err := h.svc.Get(c.Request().Context(), id, actor)
	if err != nil {
		return httpError(err, "failed to load appointment")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	actor, _ := auth.ActorFromContext(c.Request().Context())

	var filter ListFilter
	if raw := c.QueryParam("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		filter.PatientID = &id
	}
	if raw := c.QueryParam("doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
		}
		filter.DoctorID = &id
	}

	items, total, err := h.svc.List(c.Request().Context(), actor, filter, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err, "failed to list appointments")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) AttestPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var input PaymentInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor, _ := auth.ActorFromContext(c.Request().Context())

	a, err := h.svc.AttestPayment(c.Request().Context(), id, actor, input)
	if err != nil {
		return httpError(err, "failed to record payment")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor, _ := auth.ActorFromContext(c.Request().Context())

	a, err := h.svc.Cancel(c.Request().Context(), id, actor)
	if err != nil {
		return httpError(err, "failed to cancel appointment")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor, _ := auth.ActorFromContext(c.Request().Context())

	a, err := h.svc.Complete(c.Request().Context(), id, actor)
	if err != nil {
		return httpError(err, "failed to complete appointment")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	actor, _ := auth.ActorFromContext(c.Request().Context())

	if err := h.svc.Delete(c.Request().Context(), id, actor); err != nil {
		return httpError(err, "failed to delete appointment")
	}
	return c.NoContent(http.StatusNoContent)
}

type sweepResult struct {
	Affected int64 `json:"affected"`
}

func (h *Handler) AutoComplete(c echo.Context) error {
	n, err := h.svc.AutoComplete(c.Request().Context())
	if err != nil {
		return httpError(err, "failed to auto-complete appointments")
	}
	return c.JSON(http.StatusOK, sweepResult{Affected: n})
}

type purgeRequest struct {
	RetentionDays int `json:"retention_days"`
}

func (h *Handler) Purge(c echo.Context) error {
	req := purgeRequest{RetentionDays: h.svc.retentionDefault()}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	n, err := h.svc.PurgeOld(c.Request().Context(), req.RetentionDays)
	if err != nil {
		return httpError(err, "failed to purge appointments")
	}
	return c.JSON(http.StatusOK, sweepResult{Affected: n})
}

func (h *Handler) Dashboard(c echo.Context) error {
	stats, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return httpError(err, "failed to load dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}
