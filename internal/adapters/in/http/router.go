package http

import (
	"context"
	"log/slog"
	"net/http"

	"foodloop/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance with every route, contract validation
// and request logging.
func NewRouter(ctx context.Context, s *Server) (*echo.Echo, error) {
	doc, err := LoadContract(ctx, api.OpenAPI)
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/api/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.OpenAPI)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/api/openapi.yaml")))

	v1 := e.Group("/api/v1", validate)

	v1.POST("/users", s.RegisterUser)
	v1.POST("/users/:id/push-subscriptions", s.SubscribeToPush)
	v1.GET("/push/vapid-public-key", s.GetVapidPublicKey)

	v1.PATCH("/drivers/:id/location", s.ReportDriverLocation)
	v1.GET("/drivers/:id/nearby-donations", s.GetNearbyDonations)
	v1.POST("/drivers/:id/simulation", s.StartSimulation)
	v1.DELETE("/drivers/:id/simulation", s.StopSimulation)
	v1.GET("/simulations", s.ListSimulations)

	v1.POST("/donations", s.CreateDonation)
	v1.GET("/donations/available", s.GetAvailableDonations)
	v1.GET("/donations/:id/tracking", s.GetDonationTracking)
	v1.GET("/donations/:id/location-stream", s.StreamDriverLocation)
	v1.POST("/donations/:id/approve", s.ApproveDonation)
	v1.POST("/donations/:id/claim", s.ClaimDonation)
	v1.POST("/donations/:id/confirm-pickup", s.ConfirmPickup)
	v1.POST("/donations/:id/confirm-delivery", s.ConfirmDelivery)
	v1.POST("/donations/:id/cancel", s.CancelDonation)

	return e, nil
}
