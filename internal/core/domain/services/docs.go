// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - ProximityRanker: orders donations by distance from a driver
//   - RoutePlanner: plans the waypoints a simulated driver follows
package services
