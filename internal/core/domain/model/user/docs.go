// Package user provides the User aggregate: the profile of a donor, receiver
// or driver as seen by the handoff core.
//
// Profiles supply display attributes, addresses and coordinates. The only
// state the core changes on a user is a driver's last-known location, which
// is advisory telemetry and therefore last-write-wins.
package user
