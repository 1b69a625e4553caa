package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type ThemeServicer interface {
	GetTheme(context.Context) (*service.Theme, error)
	UpdateTheme(context.Context, *store.Account, service.Theme) (*service.Theme, error)
	ResetTheme(context.Context, *store.Account) (*service.Theme, error)
	Presets() []service.ThemePreset
}

func SetupThemeRoutes(g *echo.Group, themeService ThemeServicer) {
	h := NewThemeHandler(themeService)
	g.GET("/theme", h.GetTheme)
	g.GET("/theme/presets", h.GetPresets)
	g.PUT("/theme", h.PutTheme, IsAuthenticated)
	g.DELETE("/theme", h.DeleteTheme, IsAuthenticated)
}

type ThemeHandler struct {
	themeService ThemeServicer
}

func NewThemeHandler(themeService ThemeServicer) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

func (h *ThemeHandler) GetTheme(c echo.Context) error {
	t, err := h.themeService.GetTheme(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *ThemeHandler) GetPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.themeService.Presets())
}

func (h *ThemeHandler) PutTheme(c echo.Context) error {
	t := new(service.Theme)
	if err := c.Bind(t); err != nil {
		return newError(err, http.StatusBadRequest, "invalid theme data")
	}
	updated, err := h.themeService.UpdateTheme(c.Request().Context(), getCtxAccount(c), *t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ThemeHandler) DeleteTheme(c echo.Context) error {
	t, err := h.themeService.ResetTheme(c.Request().Context(), getCtxAccount(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
