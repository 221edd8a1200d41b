package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalink/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "doctor", "receptionist"))
	read.GET("/catalog", h.List)

	write := api.Group("", auth.RequireRole("admin"))
	write.PUT("/catalog/:id", h.Set)
	write.DELETE("/catalog/:id", h.Remove)
}

func (h *Handler) List(c echo.Context) error {
	cat, err := h.svc.Catalog(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cat.List())
}

func (h *Handler) Set(c echo.Context) error {
	var d TreatmentDefinition
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = TreatmentID(c.Param("id"))
	if err := h.svc.SetDefinition(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Remove(c echo.Context) error {
	if err := h.svc.RemoveDefinition(c.Request().Context(), TreatmentID(c.Param("id"))); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
