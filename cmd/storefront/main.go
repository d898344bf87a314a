package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jthernandez999/pineapple-pier-sub000/pkg/authn"
	"github.com/jthernandez999/pineapple-pier-sub000/pkg/customer"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/phsym/console-slog"
	"github.com/segmentio/ksuid"
)

func main() {
	godotenv.Load()
	configureLogging()

	// missing client id, origin or provider URL is fatal here, never a
	// per-request condition
	client, err := customer.NewClient(customer.ConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}

	policy := authn.DefaultRoutePolicy()
	if path := os.Getenv("ROUTE_POLICY_PATH"); path != "" {
		policy, err = authn.LoadRoutePolicy(path)
		if err != nil {
			log.Fatal(err)
		}
	}

	handler := authn.NewHandler(client, policy)

	root := echo.New()
	root.HideBanner = true
	root.Use(middleware.Recover())
	root.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	root.Use(authn.ErrorLogMiddleware)
	root.Use(handler.Gatekeeper())

	handler.MountRoutes(root)

	root.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// stands in for the storefront account pages; real page rendering
	// consumes the same injected customer token header
	root.GET("/account", func(c echo.Context) error {
		token := c.Request().Header.Get(authn.HeaderCustomerToken)
		return c.JSON(http.StatusOK, map[string]any{
			"authenticated": token != "",
		})
	})

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stop server when the process is told to terminate
	go func() {
		<-ctx.Done()
		root.Shutdown(context.Background())
	}()

	slog.Info("storefront listening", "addr", addr)
	if err := root.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func configureLogging() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	if os.Getenv("ENV") == "production" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return
	}
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level})))
}
