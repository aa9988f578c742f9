// Package services contains stateless domain services operating across
// aggregates: the tracking projector that turns an order's status history
// into a display-ready step list.
package services
