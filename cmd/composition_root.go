package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"foodloop/internal/adapters/in/http"
	"foodloop/internal/adapters/out/badgerstore"
	"foodloop/internal/adapters/out/geocoding"
	"foodloop/internal/adapters/out/notify"
	"foodloop/internal/adapters/out/postgres"
	"foodloop/internal/adapters/out/postgres/subscriptionrepo"
	"foodloop/internal/adapters/out/pubsub"
	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/application/usecases/queries"
	"foodloop/internal/core/ports"
	"foodloop/internal/jobs"

	"github.com/dgraph-io/badger/v4"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// notificationMaxRetry bounds redelivery of a queued push.
const notificationMaxRetry = 5

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB   *gorm.DB
	badgerDB *badger.DB

	uowFactory    ports.UnitOfWorkFactory
	subscriptions ports.PushSubscriptionRepository

	resolver   *geocoding.Resolver
	hub        *pubsub.Hub
	dispatcher *notify.Dispatcher
	queue      *asynq.Client

	reportDriverLocation *commands.ReportDriverLocationCommandHandler
}

// NewCompositionRoot opens the configured store and builds the shared
// collaborators. Close releases them.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := cfg.ServiceArea.Validate(); err != nil {
		return nil, err
	}

	c := &CompositionRoot{cfg: cfg, logger: logger}
	if err := c.openStore(); err != nil {
		return nil, err
	}

	geocoder := geocoding.NewNominatimClient(geocoding.ClientConfig{
		BaseURL:       cfg.GeocoderURL,
		UserAgent:     cfg.GeocoderUserAgent,
		CountryCodes:  cfg.GeocoderCountryCodes,
		RatePerSecond: cfg.GeocoderRatePerSecond,
		Timeout:       cfg.GeocoderTimeout,
	})
	c.resolver = geocoding.NewResolver(geocoder, cfg.ServiceArea, cfg.GeocoderNegativeTTL, logger)
	c.hub = pubsub.NewHub(pubsub.DefaultBufferSize, logger)

	var deliverer notify.Deliverer
	switch {
	case cfg.RedisAddr != "":
		c.queue = asynq.NewClient(c.RedisOpt())
		deliverer = notify.NewQueueDeliverer(c.queue, notificationMaxRetry)
	default:
		deliverer = c.PushDeliverer()
	}
	c.dispatcher = notify.NewDispatcher(cfg.NotifyWorkers, cfg.NotifyQueueSize, deliverer, logger)

	return c, nil
}

func (c *CompositionRoot) openStore() error {
	switch c.cfg.StoreDriver {
	case StoreDriverBadger:
		db, err := badgerstore.Open(c.cfg.BadgerPath, c.logger)
		if err != nil {
			return err
		}
		c.badgerDB = db
		c.uowFactory = badgerstore.NewUnitOfWorkFactory(db)
		c.subscriptions = badgerstore.NewSubscriptionRepository(db)
	case postgres.DriverPostgres, postgres.DriverSQLite:
		db, err := postgres.Open(c.cfg.StoreDriver, c.cfg.DSN(), c.logger)
		if err != nil {
			return err
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.subscriptions = subscriptionrepo.NewGormSubscriptionRepository(db)
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.cfg.StoreDriver)
	}
	return nil
}

// Migrate brings the relational schema up to date. The embedded store has
// no schema.
func (c *CompositionRoot) Migrate() error {
	if c.gormDB == nil {
		return nil
	}
	return postgres.Migrate(c.gormDB)
}

func (c *CompositionRoot) Close() error {
	var errList []error
	if c.queue != nil {
		errList = append(errList, c.queue.Close())
	}
	if c.badgerDB != nil {
		errList = append(errList, c.badgerDB.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errList = append(errList, sqlDB.Close())
		}
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	}
}

// PushDeliverer sends through web push when VAPID keys are configured and
// logs deliveries otherwise.
func (c *CompositionRoot) PushDeliverer() notify.Deliverer {
	if !c.cfg.VAPID.Enabled() {
		c.logger.Warn("VAPID keys not configured, notifications are only logged")
		return notify.NewLogDeliverer(c.logger)
	}
	return notify.NewWebPushDeliverer(c.subscriptions, notify.WebPushSender{}, c.cfg.VAPID, c.logger)
}

func (c *CompositionRoot) Dispatcher() *notify.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.resolver, c.cfg.ServiceArea, commands.SystemClock)
}

func (c *CompositionRoot) CreateSubscribeToPushCommandHandler() commands.SubscribeToPushCommandHandler {
	return commands.NewSubscribeToPushCommandHandler(c.userUoWFactory(), c.subscriptions, commands.SystemClock)
}

func (c *CompositionRoot) CreateCreateDonationCommandHandler() commands.CreateDonationCommandHandler {
	return commands.NewCreateDonationCommandHandler(c.commandUoWFactory(), c.resolver, c.dispatcher,
		c.cfg.ServiceArea, commands.SystemClock)
}

func (c *CompositionRoot) CreateApproveDonationCommandHandler() commands.ApproveDonationCommandHandler {
	return commands.NewApproveDonationCommandHandler(c.commandUoWFactory(), c.dispatcher, commands.SystemClock)
}

func (c *CompositionRoot) CreateClaimDonationCommandHandler() commands.ClaimDonationCommandHandler {
	return commands.NewClaimDonationCommandHandler(c.commandUoWFactory(), c.dispatcher, commands.SystemClock)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.commandUoWFactory(), c.dispatcher, commands.SystemClock)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.commandUoWFactory(), c.dispatcher, c.hub, commands.SystemClock)
}

func (c *CompositionRoot) CreateCancelDonationCommandHandler() commands.CancelDonationCommandHandler {
	return commands.NewCancelDonationCommandHandler(c.commandUoWFactory(), c.dispatcher, c.hub, commands.SystemClock)
}

// CreateReportDriverLocationCommandHandler returns the shared handler; it
// serialises reports per driver, so the API and the simulations must use
// the same instance.
func (c *CompositionRoot) CreateReportDriverLocationCommandHandler() *commands.ReportDriverLocationCommandHandler {
	if c.reportDriverLocation == nil {
		c.reportDriverLocation = commands.NewReportDriverLocationCommandHandler(c.commandUoWFactory(), c.hub,
			c.cfg.ServiceArea, commands.SystemClock)
	}
	return c.reportDriverLocation
}

func (c *CompositionRoot) CreateReconcileDonorCoordinatesCommandHandler() commands.ReconcileDonorCoordinatesCommandHandler {
	return commands.NewReconcileDonorCoordinatesCommandHandler(c.commandUoWFactory(), c.resolver,
		c.cfg.ServiceArea, commands.SystemClock)
}

func (c *CompositionRoot) CreateGetAvailableDonationsQueryHandler() queries.GetAvailableDonationsQueryHandler {
	return queries.NewGetAvailableDonationsQueryHandler(c.uowFactory, queries.Clock(commands.SystemClock))
}

func (c *CompositionRoot) CreateGetDonationTrackingQueryHandler() queries.GetDonationTrackingQueryHandler {
	return queries.NewGetDonationTrackingQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetNearbyDonationsQueryHandler() queries.GetNearbyDonationsQueryHandler {
	return queries.NewGetNearbyDonationsQueryHandler(c.uowFactory, queries.Clock(commands.SystemClock))
}

func (c *CompositionRoot) CreateSimulationSupervisor() *jobs.SimulationSupervisor {
	return jobs.NewSimulationSupervisor(c.CreateReportDriverLocationCommandHandler(),
		c.CreateGetDonationTrackingQueryHandler(), c.uowFactory, c.cfg.SimulationInterval, c.logger)
}

func (c *CompositionRoot) CreateCoordinateReconciliationJob() *jobs.CoordinateReconciliationJob {
	return jobs.NewCoordinateReconciliationJob(c.CreateReconcileDonorCoordinatesCommandHandler(),
		c.cfg.ReconcileSchedule, c.cfg.ReconcileBatchSize, c.logger)
}

// CreateServer wires every handler into the HTTP adapter.
func (c *CompositionRoot) CreateServer(simulations *jobs.SimulationSupervisor) *http.Server {
	handlers := http.Handlers{
		RegisterUser:         c.CreateRegisterUserCommandHandler(),
		SubscribeToPush:      c.CreateSubscribeToPushCommandHandler(),
		CreateDonation:       c.CreateCreateDonationCommandHandler(),
		ApproveDonation:      c.CreateApproveDonationCommandHandler(),
		ClaimDonation:        c.CreateClaimDonationCommandHandler(),
		ConfirmPickup:        c.CreateConfirmPickupCommandHandler(),
		ConfirmDelivery:      c.CreateConfirmDeliveryCommandHandler(),
		CancelDonation:       c.CreateCancelDonationCommandHandler(),
		ReportDriverLocation: c.CreateReportDriverLocationCommandHandler(),

		GetAvailableDonations: c.CreateGetAvailableDonationsQueryHandler(),
		GetDonationTracking:   c.CreateGetDonationTrackingQueryHandler(),
		GetNearbyDonations:    c.CreateGetNearbyDonationsQueryHandler(),
	}
	return http.NewServer(handlers, simulations, c.hub, c.cfg.VAPID.PublicKey, c.logger)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
