package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	windowDays int
}

func NewHandler(windowDays int) *Handler {
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}
	return &Handler{windowDays: windowDays}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/catalog/days", h.ListDays)
	api.GET("/catalog/times", h.ListTimes)
}

func (h *Handler) ListDays(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"days": Days(h.windowDays),
	})
}

func (h *Handler) ListTimes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"times": Times(),
	})
}
