package main

import (
	"context"
	"log"
	"time"

	assets "github.com/haatos/simple-shop"
	"github.com/haatos/simple-shop/internal"
	"github.com/haatos/simple-shop/internal/handler"
	"github.com/haatos/simple-shop/internal/security"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/settings"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		hashKey, blockKey := security.NewKeys()
		rdb, rwdb, err := openDatabases()
		if err != nil {
			return err
		}
		defer rdb.Close()
		defer rwdb.Close()

		scheduler := service.NewScheduler()
		defer scheduler.Shutdown()

		accountStore := store.NewAccountSQLStore(rdb, rwdb)
		productStore := store.NewProductSQLStore(rdb, rwdb)
		cartStore := store.NewCartSQLStore(rdb, rwdb)
		orderStore := store.NewOrderSQLStore(rdb, rwdb)
		chatStore := store.NewChatSQLStore(rdb, rwdb)
		settingStore := store.NewKeyValueStore(rdb, rwdb)

		cookieSvc := service.NewCookieService(hashKey, blockKey, settings.Settings.Domain)
		accountSvc := service.NewAccountService(
			accountStore,
			settings.Settings.SuperAdminEmail,
			settings.Settings.AdminKey,
			internal.Config.SessionLifetime(),
		)
		catalogSvc := service.NewCatalogService(productStore)
		cartSvc := service.NewCartService(cartStore, productStore, orderStore)
		checkoutSvc := service.NewCheckoutService(
			orderStore,
			cartStore,
			scheduler,
			service.NewUUIDGen(),
			internal.Config.PaymentDelay(),
		)
		themeSvc := service.NewThemeService(settingStore)

		var completer service.ChatCompleter
		if settings.Settings.OpenAIKey != "" {
			completer = service.NewOpenAICompleter(
				settings.Settings.OpenAIKey,
				settings.Settings.OpenAIModel,
			)
		} else {
			log.Println("OPENAI_API_KEY not set, assistant uses keyword replies")
		}
		assistantSvc := service.NewAssistantService(completer, chatStore, settings.Settings.AITimeout)

		accountSvc.InitializeSuperAdmin(ctx, settings.Settings.SuperAdminPassword)
		if err := catalogSvc.SeedCatalog(
			ctx,
			internal.Config.CatalogSeedPath,
			assets.DefaultCatalog,
		); err != nil {
			return err
		}
		if err := checkoutSvc.ResumePendingPayments(ctx); err != nil {
			return err
		}
		if err := accountSvc.ScheduleSessionCleanup(scheduler); err != nil {
			return err
		}
		scheduler.Start()

		e := setupEcho()
		guard := handler.NewInFlightGuard()
		api := e.Group("/api", handler.SessionMiddleware(accountSvc, cookieSvc))
		handler.SetupAuthRoutes(api, accountSvc, cookieSvc, guard)
		handler.SetupAccountRoutes(api, accountSvc)
		handler.SetupProductRoutes(api, catalogSvc)
		handler.SetupCartRoutes(api, cartSvc)
		handler.SetupCheckoutRoutes(api, checkoutSvc, guard)
		handler.SetupThemeRoutes(api, themeSvc)
		handler.SetupAssistantRoutes(api, assistantSvc, guard)
		handler.SetupConfigRoutes(api)

		internal.GracefulShutdown(e, settings.Settings.Port)
		return nil
	},
}

func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(
		middleware.Recover(),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:   true,
			LogURI:      true,
			LogStatus:   true,
			LogLatency:  true,
			LogRemoteIP: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				log.Printf(
					"%s %s %d %s %s\n",
					v.Method, v.URI, v.Status, v.Latency.Round(time.Microsecond), v.RemoteIP,
				)
				return nil
			},
		}),
		middleware.CORSWithConfig(internal.GetCORSConfig()),
		middleware.RateLimiterWithConfig(internal.GetRateLimiterConfig()),
	)
	return e
}
