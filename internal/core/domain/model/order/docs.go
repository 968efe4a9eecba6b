// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order is created from a customer's cart snapshot and moves through the
// status chain pending -> pendingConfirmation -> preparing -> readyForPickup ->
// delivering -> completed, with cancelled reachable from any state before
// completed. Transitions are driven by an explicit table (see status.go), so
// an attempt to skip a stage always fails with InvalidStatusTransitionError.
package order
