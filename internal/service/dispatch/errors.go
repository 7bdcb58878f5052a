package dispatch

import "errors"

// ErrNotDelivery is returned when auto-assign targets an order that is
// not a local delivery (pickup or shipping).
var ErrNotDelivery = errors.New("order is not for delivery")

// ErrNoDrivers is returned when no eligible driver is within the search
// radius, or every candidate was claimed by a concurrent assignment.
var ErrNoDrivers = errors.New("no available drivers")

// ErrAlreadyAssigned is returned when an order already has a
// non-terminal delivery assignment.
var ErrAlreadyAssigned = errors.New("order already has an active delivery")

// ErrBadTransition is returned for a lifecycle transition outside the
// allowed graph, including any update to a terminal assignment.
var ErrBadTransition = errors.New("invalid status transition")
