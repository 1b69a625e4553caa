package handler

import (
	"net/http"
	"testing"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestThemeHandler(t *testing.T) {
	t.Run("success - theme returned", func(t *testing.T) {
		// arrange
		theme := service.DefaultTheme()
		mockService := new(testutil.MockThemeService)
		mockService.On("GetTheme", mock.Anything).Return(&theme, nil)
		c, rec := newJSONContext(http.MethodGet, "/api/theme", "")
		h := NewThemeHandler(mockService)

		// act
		err := h.GetTheme(c)

		// assert
		assert.NoError(t, err)
		assert.JSONEq(
			t,
			`{"primary_color":"#9b87f5","secondary_color":"#7E69AB"}`,
			rec.Body.String(),
		)
	})
	t.Run("success - super admin updates theme", func(t *testing.T) {
		// arrange
		superAdmin := generateAccount(access.SuperAdmin, false)
		theme := service.Theme{PrimaryColor: "#3b82f6", SecondaryColor: "#1e40af"}
		mockService := new(testutil.MockThemeService)
		mockService.On("UpdateTheme", mock.Anything, superAdmin, theme).Return(&theme, nil)
		c, rec := newJSONContext(
			http.MethodPut, "/api/theme",
			`{"primary_color":"#3b82f6","secondary_color":"#1e40af"}`,
		)
		c.Set(ctxAccountKey, superAdmin)
		h := NewThemeHandler(mockService)

		// act
		err := h.PutTheme(c)

		// assert
		assert.NoError(t, err)
		assert.Contains(t, rec.Body.String(), "#3b82f6")
	})
	t.Run("failure - junior admin may not change theme", func(t *testing.T) {
		// arrange
		juniorAdmin := generateAccount(access.JuniorAdmin, false)
		mockService := new(testutil.MockThemeService)
		mockService.On("UpdateTheme", mock.Anything, juniorAdmin, mock.Anything).
			Return(nil, &access.AuthorizationError{Action: access.ChangeTheme, Role: access.JuniorAdmin})
		c, _ := newJSONContext(
			http.MethodPut, "/api/theme",
			`{"primary_color":"#3b82f6","secondary_color":"#1e40af"}`,
		)
		c.Set(ctxAccountKey, juniorAdmin)
		h := NewThemeHandler(mockService)

		// act
		err := h.PutTheme(c)

		// assert
		status, _ := errorResponse(err)
		assert.Equal(t, http.StatusForbidden, status)
	})
	t.Run("success - presets listed", func(t *testing.T) {
		// arrange
		mockService := new(testutil.MockThemeService)
		mockService.On("Presets").Return([]service.ThemePreset{
			{Name: "Синий", Theme: service.Theme{PrimaryColor: "#3b82f6", SecondaryColor: "#1e40af"}},
		})
		c, rec := newJSONContext(http.MethodGet, "/api/theme/presets", "")
		h := NewThemeHandler(mockService)

		// act
		err := h.GetPresets(c)

		// assert
		assert.NoError(t, err)
		assert.JSONEq(
			t,
			`[{"name":"Синий","primary_color":"#3b82f6","secondary_color":"#1e40af"}]`,
			rec.Body.String(),
		)
	})
}
