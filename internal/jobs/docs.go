// Package jobs provides the background work of the service.
//
// Scheduling uses github.com/robfig/cron/v3:
//
//  1. CoordinateReconciliationJob - re-geocodes open donations whose pickup
//     coordinates are missing or outside the service area (default every 30m)
//  2. SimulationSupervisor - drives demo drivers along planned routes, one
//     cron entry per driver, reporting each waypoint as a location fix
//
// # Usage
//
//	supervisor := jobs.NewSimulationSupervisor(reportHandler, trackingHandler, users, logger)
//	reconcile := jobs.NewCoordinateReconciliationJob(reconcileHandler, "@every 30m", 200, logger)
//
//	manager := jobs.NewJobManager(logger, reconcile, supervisor)
//	if err := manager.StartAll(); err != nil {
//		log.Fatalf("start jobs: %v", err)
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
//   - Ticks never overlap: every entry is wrapped in cron.SkipIfStillRunning
//   - Failed ticks are logged and the schedule continues
//   - A job that fails to start stops the jobs already started
//
// Simulations live in memory only. A restart drops them and drivers have to
// be started again.
package jobs
