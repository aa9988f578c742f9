// Package optimistic implements the reusable "update locally, call remote,
// reconcile" mechanism behind cart quantity edits, availability toggles,
// order-status actions and wizard submissions. The local speculative state is
// always subordinate to the authoritative remote result: on success the
// authoritative entity replaces the optimistic one, on failure the pre-update
// state is restored. Optimistic and authoritative states are never merged.
package optimistic

import (
	"context"
	"sync"

	"orderflow/internal/pkg/errs"
)

// Mutation describes one optimistic update against a single entity.
//
// Apply performs the local speculative update and returns the updated entity
// for immediate render. Remote performs the authoritative call. Commit is
// invoked with the authoritative entity on success; Revert with the failure
// on error. Commit and Revert are mutually exclusive and called exactly once.
type Mutation[E any] struct {
	EntityID string
	Apply    func() E
	Remote   func(ctx context.Context) (E, error)
	Commit   func(authoritative E)
	Revert   func(failure error)
}

// Controller serializes mutations per entity id. While a mutation for an id is
// in flight, further mutations for the same id are queued behind it in FIFO
// order so optimistic states never interleave. Mutations for distinct ids run
// independently and may complete out of order; reconciliation is keyed by
// entity id, never by call order.
type Controller[E any] struct {
	mu     sync.Mutex
	queues map[string][]*queued[E]
}

type queued[E any] struct {
	ctx      context.Context
	mutation Mutation[E]
}

// NewController creates an empty controller.
func NewController[E any]() *Controller[E] {
	return &Controller[E]{
		queues: make(map[string][]*queued[E]),
	}
}

// Enqueue registers a mutation. If no mutation for the entity id is in flight,
// Apply runs synchronously before Enqueue returns, so the caller observes the
// optimistic state immediately; the remote call then proceeds on a background
// goroutine. If a mutation for the same id is already in flight, the whole
// mutation (including Apply) is deferred until its predecessor reconciles.
//
// Commit and Revert run on the controller's goroutine once the remote call
// resolves; callers that share state with them must synchronize accordingly.
func (c *Controller[E]) Enqueue(ctx context.Context, m Mutation[E]) error {
	if m.EntityID == "" {
		return errs.NewValueIsRequiredError("entityID")
	}
	if m.Remote == nil {
		return errs.NewValueIsRequiredError("remote")
	}

	q := &queued[E]{ctx: ctx, mutation: m}

	c.mu.Lock()
	c.queues[m.EntityID] = append(c.queues[m.EntityID], q)
	first := len(c.queues[m.EntityID]) == 1
	c.mu.Unlock()

	if first {
		c.start(q, true)
	}
	return nil
}

// InFlight reports whether a mutation for the entity id is currently running
// or queued. UI surfaces use it to disable the affected control.
func (c *Controller[E]) InFlight(entityID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queues[entityID]) > 0
}

// start applies the mutation and launches the remote call. When sync is true
// the local update runs on the caller's goroutine so the optimistic entity is
// visible before Enqueue returns.
func (c *Controller[E]) start(q *queued[E], sync bool) {
	if sync {
		if q.mutation.Apply != nil {
			q.mutation.Apply()
		}
		go c.resolve(q)
		return
	}

	go func() {
		if q.mutation.Apply != nil {
			q.mutation.Apply()
		}
		c.resolve(q)
	}()
}

// resolve runs the remote call, reconciles, and starts the next queued
// mutation for the same entity id, if any.
func (c *Controller[E]) resolve(q *queued[E]) {
	authoritative, err := q.mutation.Remote(q.ctx)
	if err != nil {
		if q.mutation.Revert != nil {
			q.mutation.Revert(err)
		}
	} else if q.mutation.Commit != nil {
		q.mutation.Commit(authoritative)
	}

	c.mu.Lock()
	id := q.mutation.EntityID
	c.queues[id] = c.queues[id][1:]
	var next *queued[E]
	if len(c.queues[id]) > 0 {
		next = c.queues[id][0]
	} else {
		delete(c.queues, id)
	}
	c.mu.Unlock()

	if next != nil {
		c.start(next, false)
	}
}
