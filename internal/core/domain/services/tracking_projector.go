package services

import (
	"time"

	"orderflow/internal/core/domain/model/order"
)

// TrackingStep is one row of the order tracking display. Timestamp is nil for
// steps the order has not reached.
type TrackingStep struct {
	Status      order.Status
	Title       string
	Description string
	Timestamp   *time.Time
	IsCompleted bool
	IsActive    bool
	IsCancelled bool
}

type stepCopy struct {
	title       string
	description string
}

var trackingCopy = map[order.Status]stepCopy{
	order.Pending:   {"Order placed", "Waiting for the restaurant to confirm"},
	order.Preparing: {"Preparing", "The restaurant is preparing your order"},
	order.Ready:     {"Ready for pickup", "Waiting for a driver to pick up your order"},
	order.PickedUp:  {"On the way", "Your driver is heading to you"},
	order.Delivered: {"Delivered", "Your order has arrived"},
	order.Cancelled: {"Cancelled", "This order was cancelled"},
}

// TrackingProjector is a domain service that derives the tracking step list
// from an order's status and history. It never mutates the order.
//
// Projection rules:
//   - every happy-path state strictly before the current one is completed
//   - the current state is active, including the terminal delivered state
//   - states after the current one are inert
//   - a cancelled order gets one synthetic cancelled step instead; the
//     happy-path steps it passed through before cancellation stay completed,
//     and none is active
type TrackingProjector struct{}

// NewTrackingProjector creates a new TrackingProjector instance.
func NewTrackingProjector() TrackingProjector {
	return TrackingProjector{}
}

// Project derives the tracking steps for an order.
func (p TrackingProjector) Project(o *order.Order) ([]TrackingStep, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.Status() == order.Cancelled {
		return p.projectCancelled(o), nil
	}

	happyPath := order.HappyPath()
	steps := make([]TrackingStep, 0, len(happyPath))
	reachedCurrent := false

	for _, status := range happyPath {
		step := p.newStep(o, status)
		if status == o.Status() {
			step.IsActive = true
			reachedCurrent = true
		} else if !reachedCurrent {
			step.IsCompleted = true
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// projectCancelled overlays cancellation on top of the history instead of
// replacing it: steps the order actually passed through stay completed, and
// the cancellation itself is a synthetic extra step.
func (p TrackingProjector) projectCancelled(o *order.Order) []TrackingStep {
	happyPath := order.HappyPath()
	steps := make([]TrackingStep, 0, len(happyPath)+1)

	for _, status := range happyPath {
		step := p.newStep(o, status)
		if step.Timestamp != nil {
			step.IsCompleted = true
		}
		steps = append(steps, step)
	}

	cancelled := p.newStep(o, order.Cancelled)
	cancelled.IsCancelled = true
	if reason := o.CancellationReason(); reason != "" {
		cancelled.Description = reason
	}

	return append(steps, cancelled)
}

func (p TrackingProjector) newStep(o *order.Order, status order.Status) TrackingStep {
	copyFor := trackingCopy[status]
	step := TrackingStep{
		Status:      status,
		Title:       copyFor.title,
		Description: copyFor.description,
	}
	if at, ok := o.HistoryFor(status); ok {
		step.Timestamp = &at
	}
	return step
}
