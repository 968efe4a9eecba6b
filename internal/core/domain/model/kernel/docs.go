// Package kernel provides the core domain primitives shared across the
// order, delivery, cart and driver models.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Location: a geographic coordinate pair validated against the service area
//   - Money: a monetary amount held in integer pence
//
// These primitives enforce their own invariants so that domain objects built
// from them are always in a valid state. They are immutable and safe for
// concurrent use.
package kernel
