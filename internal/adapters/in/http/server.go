package http

import (
	"log/slog"
	"net/http"

	"foodloop/internal/adapters/out/pubsub"
	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/application/usecases/queries"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/jobs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the API exposes.
type Handlers struct {
	RegisterUser         commands.RegisterUserCommandHandler
	SubscribeToPush      commands.SubscribeToPushCommandHandler
	CreateDonation       commands.CreateDonationCommandHandler
	ApproveDonation      commands.ApproveDonationCommandHandler
	ClaimDonation        commands.ClaimDonationCommandHandler
	ConfirmPickup        commands.ConfirmPickupCommandHandler
	ConfirmDelivery      commands.ConfirmDeliveryCommandHandler
	CancelDonation       commands.CancelDonationCommandHandler
	ReportDriverLocation *commands.ReportDriverLocationCommandHandler

	GetAvailableDonations queries.GetAvailableDonationsQueryHandler
	GetDonationTracking   queries.GetDonationTrackingQueryHandler
	GetNearbyDonations    queries.GetNearbyDonationsQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers       Handlers
	simulations    *jobs.SimulationSupervisor
	hub            *pubsub.Hub
	vapidPublicKey string
	logger         *slog.Logger
}

func NewServer(
	handlers Handlers,
	simulations *jobs.SimulationSupervisor,
	hub *pubsub.Hub,
	vapidPublicKey string,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers:       handlers,
		simulations:    simulations,
		hub:            hub,
		vapidPublicKey: vapidPublicKey,
		logger:         logger.With("component", "http"),
	}
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(c echo.Context) error {
	var body NewUser
	if err := bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), body.Role, body.DisplayName, body.Email,
		body.Address, body.Latitude, body.Longitude)
	if err != nil {
		return err
	}

	u, err := s.handlers.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newUser(u))
}

// SubscribeToPush handles POST /api/v1/users/:id/push-subscriptions.
func (s *Server) SubscribeToPush(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body PushSubscription
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSubscribeToPushCommand(userID, body.Endpoint, body.Keys.P256dh, body.Keys.Auth)
	if err != nil {
		return err
	}
	if err = s.handlers.SubscribeToPush.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// GetVapidPublicKey handles GET /api/v1/push/vapid-public-key.
func (s *Server) GetVapidPublicKey(c echo.Context) error {
	if s.vapidPublicKey == "" {
		return echo.NewHTTPError(http.StatusNotFound, "web push is not configured")
	}
	return c.JSON(http.StatusOK, map[string]string{"publicKey": s.vapidPublicKey})
}

// ReportDriverLocation handles PATCH /api/v1/drivers/:id/location.
func (s *Server) ReportDriverLocation(c echo.Context) error {
	driverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body Coordinates
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReportDriverLocationCommand(driverID, body.Latitude, body.Longitude)
	if err != nil {
		return err
	}
	published, err := s.handlers.ReportDriverLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := LocationResponse{PublishedTo: make([]uuid.UUID, len(published))}
	for i, id := range published {
		response.PublishedTo[i] = id.Bytes()
	}
	return c.JSON(http.StatusOK, response)
}

// GetNearbyDonations handles GET /api/v1/drivers/:id/nearby-donations.
func (s *Server) GetNearbyDonations(c echo.Context) error {
	driverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetNearbyDonationsQuery(driverID)
	if err != nil {
		return err
	}

	nearby, err := s.handlers.GetNearbyDonations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Donation, len(nearby))
	for i, n := range nearby {
		response[i] = newDonationSummary(n.DonationSummary)
		response[i].Distance = newDistance(n.Distance)
		response[i].ETAMinutes = etaMinutes(n.ETA)
	}
	return c.JSON(http.StatusOK, response)
}

// StartSimulation handles POST /api/v1/drivers/:id/simulation.
func (s *Server) StartSimulation(c echo.Context) error {
	driverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body SimulationRequest
	if err = bind(c, &body); err != nil {
		return err
	}
	donationID, err := toKernelID("donationId", body.DonationID)
	if err != nil {
		return err
	}

	waypoints, err := s.simulations.SimulateRoute(c.Request().Context(), driverID, donationID)
	if err != nil {
		return err
	}

	response := SimulationResponse{Waypoints: make([]Coordinates, len(waypoints))}
	for i, p := range waypoints {
		response.Waypoints[i] = Coordinates{Latitude: p.Latitude(), Longitude: p.Longitude()}
	}
	return c.JSON(http.StatusAccepted, response)
}

// StopSimulation handles DELETE /api/v1/drivers/:id/simulation. Stopping a
// driver without a simulation succeeds.
func (s *Server) StopSimulation(c echo.Context) error {
	driverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err = s.simulations.Cancel(driverID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSimulations handles GET /api/v1/simulations.
func (s *Server) ListSimulations(c echo.Context) error {
	active, err := s.simulations.Active()
	if err != nil {
		return err
	}
	response := make([]uuid.UUID, len(active))
	for i, id := range active {
		response[i] = id.Bytes()
	}
	return c.JSON(http.StatusOK, response)
}

// CreateDonation handles POST /api/v1/donations.
func (s *Server) CreateDonation(c echo.Context) error {
	var body NewDonation
	if err := bind(c, &body); err != nil {
		return err
	}
	donorID, err := toKernelID("donorId", body.DonorID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDonationCommand(commands.CreateDonationParams{
		DonorID:         donorID,
		Category:        body.Category,
		ItemName:        body.ItemName,
		Quantity:        body.Quantity,
		Storage:         body.Storage,
		ImageRef:        body.ImageRef,
		ConfidenceScore: body.ConfidenceScore,
		QualityScore:    body.QualityScore,
		Freshness:       body.Freshness,
		DetectedItems:   body.DetectedItems,
		PickupWindow:    body.PickupWindow,
		PickupTimeSlot:  body.PickupTimeSlot,
		ProductType:     body.ProductType,
		PackageExpiry:   body.PackageExpiry,
		UserExpiry:      body.UserExpiry,
		Latitude:        body.Latitude,
		Longitude:       body.Longitude,
	})
	if err != nil {
		return err
	}

	d, err := s.handlers.CreateDonation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newDonation(d))
}

// GetAvailableDonations handles GET /api/v1/donations/available.
func (s *Server) GetAvailableDonations(c echo.Context) error {
	viewerID, err := queryID(c, "viewerId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetAvailableDonationsQuery(viewerID)
	if err != nil {
		return err
	}

	available, err := s.handlers.GetAvailableDonations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Donation, len(available))
	for i, a := range available {
		response[i] = newDonationSummary(a.DonationSummary)
		response[i].DonorName = a.DonorName
		response[i].Distance = newDistance(a.Distance)
	}
	return c.JSON(http.StatusOK, response)
}

// GetDonationTracking handles GET /api/v1/donations/:id/tracking.
func (s *Server) GetDonationTracking(c echo.Context) error {
	donationID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetDonationTrackingQuery(donationID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetDonationTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTracking(view))
}

// ApproveDonation handles POST /api/v1/donations/:id/approve.
func (s *Server) ApproveDonation(c echo.Context) error {
	donationID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewApproveDonationCommand(donationID)
	if err != nil {
		return err
	}

	d, err := s.handlers.ApproveDonation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDonation(d))
}

// ClaimDonation handles POST /api/v1/donations/:id/claim.
func (s *Server) ClaimDonation(c echo.Context) error {
	donationID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body ClaimRequest
	if err = bind(c, &body); err != nil {
		return err
	}
	receiverID, err := toKernelID("receiverId", body.ReceiverID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimDonationCommand(donationID, receiverID)
	if err != nil {
		return err
	}
	d, err := s.handlers.ClaimDonation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDonation(d))
}

// ConfirmPickup handles POST /api/v1/donations/:id/confirm-pickup.
func (s *Server) ConfirmPickup(c echo.Context) error {
	donationID, driverID, err := s.driverAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmPickupCommand(donationID, driverID)
	if err != nil {
		return err
	}

	d, err := s.handlers.ConfirmPickup.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDonation(d))
}

// ConfirmDelivery handles POST /api/v1/donations/:id/confirm-delivery.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	donationID, driverID, err := s.driverAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmDeliveryCommand(donationID, driverID)
	if err != nil {
		return err
	}

	d, err := s.handlers.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDonation(d))
}

// CancelDonation handles POST /api/v1/donations/:id/cancel.
func (s *Server) CancelDonation(c echo.Context) error {
	donationID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body CancelRequest
	if err = bind(c, &body); err != nil {
		return err
	}
	donorID, err := toKernelID("donorId", body.DonorID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDonationCommand(donationID, donorID)
	if err != nil {
		return err
	}
	d, err := s.handlers.CancelDonation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDonation(d))
}

func (s *Server) driverAction(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	donationID, err := pathID(c, "id")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	var body DriverActionRequest
	if err = bind(c, &body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	driverID, err := toKernelID("driverId", body.DriverID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return donationID, driverID, nil
}
