package handler

import (
	"net/http"
	"time"

	"github.com/haatos/simple-shop/internal"
	"github.com/haatos/simple-shop/internal/access"

	"github.com/labstack/echo/v4"
)

// SetupConfigRoutes exposes the runtime configuration file. Changes are
// written to disk and take effect on the next start.
func SetupConfigRoutes(g *echo.Group) {
	configGroup := g.Group("/config", IsAuthenticated, RoleMiddleware(access.SuperAdmin))
	configGroup.GET("", GetConfig)
	configGroup.PUT("", PutConfig)
}

func GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, internal.Config)
}

func PutConfig(c echo.Context) error {
	cp := new(ConfigParams)
	if err := c.Bind(cp); err != nil {
		return newError(err, http.StatusBadRequest, "invalid config data")
	}
	if cp.SessionExpiresHours < 0 || cp.PaymentDelaySeconds < 0 || cp.RateLimitPerSecond <= 0 {
		return newError(nil, http.StatusBadRequest, "config values out of range")
	}

	config := *internal.Config
	config.SessionExpiresHours = internal.NewHoursDuration(cp.SessionExpiresHours)
	config.PaymentDelaySeconds = internal.SecondsDuration(
		time.Duration(cp.PaymentDelaySeconds * float64(time.Second)),
	)
	config.RateLimitPerSecond = cp.RateLimitPerSecond

	if err := internal.UpdateConfiguration(&config); err != nil {
		return newError(
			err,
			http.StatusInternalServerError,
			"unable to update configuration file",
		)
	}
	return c.JSON(http.StatusOK, internal.Config)
}
