package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/application/usecases/queries"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/domain/services"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultSimulationInterval is the delay between simulated position fixes.
const DefaultSimulationInterval = 2500 * time.Millisecond

var (
	ErrSupervisorNotRunning = errors.New("simulation supervisor is not running")
	ErrNoDestination        = errs.NewValueIsInvalidErrorWithCause("donation",
		errors.New("donation has no destination to drive to"))
)

// LocationReporter accepts position fixes, as the report handler does.
type LocationReporter interface {
	Handle(ctx context.Context, cmd commands.ReportDriverLocationCommand) ([]kernel.UUID, error)
}

// TrackingReader reads the composed tracking view of a donation.
type TrackingReader interface {
	Handle(ctx context.Context, query queries.GetDonationTrackingQuery) (queries.DonationTracking, error)
}

// fixedInterval is a cron.Schedule with sub-second precision; cron.Every
// truncates to whole seconds.
type fixedInterval time.Duration

func (f fixedInterval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(f))
}

type simulation struct {
	driverID   kernel.UUID
	generation uint64
	entryID    cron.EntryID
	ctx        context.Context
	cancel     context.CancelFunc
	waypoints  []kernel.GeoPoint
	next       int

	// ticking is held for the whole of a tick.
	ticking sync.Mutex
}

// SimulationSupervisor owns the running driver simulations. All bookkeeping
// happens on one goroutine; callers send it requests. A driver has at most
// one simulation: starting another cancels the first.
type SimulationSupervisor struct {
	reporter LocationReporter
	tracking TrackingReader
	users    ports.UnitOfWorkFactory
	planner  services.RoutePlanner
	interval time.Duration
	segments int

	cron   *cron.Cron
	chain  cron.Chain
	logger *slog.Logger

	requests chan func(map[kernel.UUID]*simulation)
	quit     chan struct{}
	done     chan struct{}
	started  atomic.Bool
	once     sync.Once

	generation uint64
}

func NewSimulationSupervisor(
	reporter LocationReporter,
	tracking TrackingReader,
	users ports.UnitOfWorkFactory,
	interval time.Duration,
	logger *slog.Logger,
) *SimulationSupervisor {
	if interval <= 0 {
		interval = DefaultSimulationInterval
	}
	logger = logger.With("component", "simulation_supervisor")
	cl := newCronLogger(logger)
	return &SimulationSupervisor{
		reporter: reporter,
		tracking: tracking,
		users:    users,
		planner:  services.NewRoutePlanner(),
		interval: interval,
		segments: services.DefaultRouteSegments,
		cron:     cron.New(cron.WithLogger(cl)),
		chain:    cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		logger:   logger,
		requests: make(chan func(map[kernel.UUID]*simulation)),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *SimulationSupervisor) Name() string {
	return "simulation supervisor"
}

// Start runs the supervisor loop and the tick scheduler.
func (s *SimulationSupervisor) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	go s.loop()
	s.cron.Start()
	s.logger.Info("Simulation supervisor started", "interval", s.interval)
	return nil
}

// Stop cancels every simulation and waits for running ticks.
func (s *SimulationSupervisor) Stop() {
	s.once.Do(func() {
		close(s.quit)
		if !s.started.Load() {
			return
		}
		<-s.done
		<-s.cron.Stop().Done()
		s.logger.Info("Simulation supervisor stopped")
	})
}

func (s *SimulationSupervisor) loop() {
	sims := make(map[kernel.UUID]*simulation)
	defer close(s.done)

	for {
		select {
		case req := <-s.requests:
			req(sims)
		case <-s.quit:
			for id, sim := range sims {
				s.remove(sims, id, sim)
			}
			return
		}
	}
}

// do runs req on the supervisor goroutine and waits for it.
func (s *SimulationSupervisor) do(req func(map[kernel.UUID]*simulation)) error {
	if !s.started.Load() {
		return ErrSupervisorNotRunning
	}
	finished := make(chan struct{})
	wrapped := func(sims map[kernel.UUID]*simulation) {
		defer close(finished)
		req(sims)
	}

	select {
	case s.requests <- wrapped:
	case <-s.quit:
		return ErrSupervisorNotRunning
	}
	<-finished
	return nil
}

// remove unschedules and cancels sim, then waits for a tick already in
// progress, so nothing is reported for it once remove returns.
func (s *SimulationSupervisor) remove(sims map[kernel.UUID]*simulation, driverID kernel.UUID, sim *simulation) {
	s.cron.Remove(sim.entryID)
	sim.cancel()
	delete(sims, driverID)

	sim.ticking.Lock()
	defer sim.ticking.Unlock()
}

// Simulate drives driverID through waypoints, one fix per interval, the
// first one immediately. An interval of zero uses the supervisor default.
func (s *SimulationSupervisor) Simulate(
	driverID kernel.UUID,
	waypoints []kernel.GeoPoint,
	interval time.Duration,
) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}
	if len(waypoints) == 0 {
		return errs.NewValueIsRequiredError("waypoints")
	}
	if interval <= 0 {
		interval = s.interval
	}

	return s.do(func(sims map[kernel.UUID]*simulation) {
		if current, ok := sims[driverID]; ok {
			s.remove(sims, driverID, current)
			s.logger.Info("Replacing running simulation", "driver_id", driverID.String())
		}

		s.generation++
		ctx, cancel := context.WithCancel(context.Background())
		sim := &simulation{
			driverID:   driverID,
			generation: s.generation,
			ctx:        ctx,
			cancel:     cancel,
			waypoints:  append([]kernel.GeoPoint(nil), waypoints...),
		}

		tick := s.chain.Then(cron.FuncJob(func() { s.tick(sim) }))
		sim.entryID = s.cron.Schedule(fixedInterval(interval), tick)
		sims[driverID] = sim

		go tick.Run()
	})
}

// tick emits the next waypoint. Ticks of one simulation never overlap, so
// sim.next is only touched here.
func (s *SimulationSupervisor) tick(sim *simulation) {
	sim.ticking.Lock()
	defer sim.ticking.Unlock()

	if sim.ctx.Err() != nil || sim.next >= len(sim.waypoints) {
		return
	}

	point := sim.waypoints[sim.next]
	sim.next++

	cmd, err := commands.NewReportDriverLocationCommand(sim.driverID, point.Latitude(), point.Longitude())
	if err == nil {
		_, err = s.reporter.Handle(sim.ctx, cmd)
	}
	if err != nil && sim.ctx.Err() == nil {
		s.logger.Warn("Simulated location report failed",
			"driver_id", sim.driverID.String(), "waypoint", sim.next-1, "error", err)
	}

	if sim.next == len(sim.waypoints) {
		go s.finish(sim)
	}
}

// finish removes a completed simulation unless it was replaced meanwhile.
func (s *SimulationSupervisor) finish(sim *simulation) {
	_ = s.do(func(sims map[kernel.UUID]*simulation) {
		if current, ok := sims[sim.driverID]; ok && current.generation == sim.generation {
			s.remove(sims, sim.driverID, current)
			s.logger.Info("Simulation completed", "driver_id", sim.driverID.String())
		}
	})
}

// Cancel stops the driver's simulation. It reports whether one was running;
// cancelling twice is not an error. A position being reported when Cancel is
// called has been published by the time it returns.
func (s *SimulationSupervisor) Cancel(driverID kernel.UUID) (bool, error) {
	var stopped bool
	err := s.do(func(sims map[kernel.UUID]*simulation) {
		if sim, ok := sims[driverID]; ok {
			s.remove(sims, driverID, sim)
			stopped = true
		}
	})
	return stopped, err
}

// Active lists the drivers with a running simulation.
func (s *SimulationSupervisor) Active() ([]kernel.UUID, error) {
	var active []kernel.UUID
	err := s.do(func(sims map[kernel.UUID]*simulation) {
		for id := range sims {
			active = append(active, id)
		}
	})
	sort.Slice(active, func(i, j int) bool { return active[i].String() < active[j].String() })
	return active, err
}

// SimulateRoute plans a route for driverID towards where the donation needs
// them next and starts simulating it. The route starts at the driver's
// last-known position, or at the pickup point when the driver has none.
func (s *SimulationSupervisor) SimulateRoute(
	ctx context.Context,
	driverID kernel.UUID,
	donationID kernel.UUID,
) ([]kernel.GeoPoint, error) {
	driver, err := s.users.Create().UserRepository().Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role() != user.Driver {
		return nil, user.ErrNotADriver
	}

	query, err := queries.NewGetDonationTrackingQuery(donationID)
	if err != nil {
		return nil, err
	}
	view, err := s.tracking.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	if view.Destination == nil {
		return nil, ErrNoDestination
	}

	from := driver.Location()
	if from == nil {
		from = view.Donation.PickupLocation
	}
	if from == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driver location",
			fmt.Errorf("driver %s has no known position", driverID))
	}

	waypoints, err := s.planner.PlanWaypoints(*from, *view.Destination, s.segments)
	if err != nil {
		return nil, err
	}
	if err = s.Simulate(driverID, waypoints, 0); err != nil {
		return nil, err
	}
	return waypoints, nil
}
