// Package kernel holds the value objects shared by every aggregate:
// identifiers, WGS84 points, the service area envelope and the distance
// helpers used for ranking and arrival estimates.
//
// All value objects are immutable. Zero values are invalid and report an
// error from Validate, so optional coordinates are carried as *GeoPoint.
package kernel
