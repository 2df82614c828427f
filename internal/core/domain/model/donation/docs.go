// Package donation implements the Donation aggregate: the shared record a
// donor, a receiver and a driver hand a perishable item over with.
//
// The package includes:
//   - Donation: the aggregate root and its guarded lifecycle transitions
//   - Status: the lifecycle state machine
//   - Catalog enums: Category, Storage, Freshness, PickupWindow, ProductType
//   - ComputeExpiry and NewTrackingID: pure derivations fixed at creation
//
// Lifecycle:
//
//	pending ──> approved ──> assigned ──> picked_up ──> delivered
//	   │           │            │             │
//	   └───────────┴────────────┴─────────────┴──────> cancelled
//
// A claim may also be taken straight from pending. Every guard failure is an
// *errs.TransitionRejectedError carrying the current status and the reason.
//
// Assignments are set once and never change. The aggregate exposes
// Precondition so the store can condition its write on the state the guard
// was evaluated against.
package donation
