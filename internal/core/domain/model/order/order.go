package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsTerminal is returned when mutating an order that already reached
	// delivered or cancelled. Terminal orders are immutable history; only the
	// rating-submitted flag may change afterward.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")

	// ErrRatingAlreadySubmitted is returned when a rating is submitted twice.
	ErrRatingAlreadySubmitted = errors.New("rating has already been submitted")

	// ErrOrderIsNotDelivered is returned when rating an order that was not delivered.
	ErrOrderIsNotDelivered = errors.New("only delivered orders can be rated")
)

// ItemSnapshot is one order line with its price frozen at order time.
// Snapshots are independent of the live cart: later price or menu changes
// never alter an existing order.
type ItemSnapshot struct {
	id        kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
}

// NewItemSnapshot creates a frozen order line.
func NewItemSnapshot(id kernel.UUID, name string, unitPrice kernel.Money, quantity int) (ItemSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ItemSnapshot{}, err
	}
	if name == "" {
		return ItemSnapshot{}, errs.NewValueIsRequiredError("item name")
	}
	if unitPrice < 0 {
		return ItemSnapshot{}, errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}
	if quantity < 1 {
		return ItemSnapshot{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	return ItemSnapshot{id: id, name: name, unitPrice: unitPrice, quantity: quantity}, nil
}

// ID returns the snapshot's line identifier.
func (s ItemSnapshot) ID() kernel.UUID { return s.id }

// Name returns the product name at order time.
func (s ItemSnapshot) Name() string { return s.name }

// UnitPrice returns the frozen unit price.
func (s ItemSnapshot) UnitPrice() kernel.Money { return s.unitPrice }

// Quantity returns the ordered quantity.
func (s ItemSnapshot) Quantity() int { return s.quantity }

// Total returns unitPrice * quantity.
func (s ItemSnapshot) Total() kernel.Money { return s.unitPrice.MulQuantity(s.quantity) }

// Charges is the monetary breakdown of an order. The total always equals
// subtotal + deliveryFee + serviceFee; the invariant holds by construction in
// NewCharges and is checked in RestoreCharges so externally supplied figures
// cannot drift silently.
type Charges struct {
	subtotal    kernel.Money
	deliveryFee kernel.Money
	serviceFee  kernel.Money
	total       kernel.Money
}

// NewCharges computes the breakdown from its parts.
func NewCharges(subtotal, deliveryFee, serviceFee kernel.Money) (Charges, error) {
	for name, v := range map[string]kernel.Money{
		"subtotal": subtotal, "delivery fee": deliveryFee, "service fee": serviceFee,
	} {
		if v < 0 {
			return Charges{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is negative", v))
		}
	}
	return Charges{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		serviceFee:  serviceFee,
		total:       subtotal.Add(deliveryFee).Add(serviceFee),
	}, nil
}

// RestoreCharges rebuilds a breakdown from persisted or remote figures,
// rejecting any set where the stated total does not equal the sum of parts.
func RestoreCharges(subtotal, deliveryFee, serviceFee, total kernel.Money) (Charges, error) {
	charges, err := NewCharges(subtotal, deliveryFee, serviceFee)
	if err != nil {
		return Charges{}, err
	}
	if charges.total != total {
		return Charges{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d does not equal subtotal %d + delivery fee %d + service fee %d",
				total, subtotal, deliveryFee, serviceFee))
	}
	return charges, nil
}

// Subtotal returns the sum of item snapshot totals.
func (c Charges) Subtotal() kernel.Money { return c.subtotal }

// DeliveryFee returns the delivery fee.
func (c Charges) DeliveryFee() kernel.Money { return c.deliveryFee }

// ServiceFee returns the platform service fee.
func (c Charges) ServiceFee() kernel.Money { return c.serviceFee }

// Total returns subtotal + deliveryFee + serviceFee.
func (c Charges) Total() kernel.Money { return c.total }

// Address is the delivery destination. Street is required; floor and door are
// optional refinements.
type Address struct {
	street string
	floor  string
	door   string
}

// NewAddress creates a delivery address.
func NewAddress(street, floor, door string) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	return Address{street: street, floor: floor, door: door}, nil
}

// Street returns the required street line.
func (a Address) Street() string { return a.street }

// Floor returns the optional floor.
func (a Address) Floor() string { return a.floor }

// Door returns the optional door/unit.
func (a Address) Door() string { return a.door }

// StatusChange is one timestamped entry of an order's status history.
type StatusChange struct {
	status Status
	at     time.Time
}

// NewStatusChange creates a history entry.
func NewStatusChange(status Status, at time.Time) StatusChange {
	return StatusChange{status: status, at: at}
}

// Status returns the status the order entered.
func (c StatusChange) Status() Status { return c.status }

// At returns when the order entered the status.
func (c StatusChange) At() time.Time { return c.at }

// Order is the shared mutable entity of the platform: created once at checkout
// completion, moved through the status machine by actor actions, immutable
// history once terminal.
//
// Invariants:
//   - item snapshot prices are frozen at order time
//   - charges total always equals the sum of its parts
//   - status changes follow the transition whitelist and the acting party's
//     capability table
//   - every status change is recorded in the timestamped history
type Order struct {
	id                 kernel.UUID
	originID           kernel.UUID
	customerID         kernel.UUID
	items              []ItemSnapshot
	status             Status
	charges            Charges
	address            Address
	driverID           *kernel.UUID
	createdAt          time.Time
	deliveredAt        *time.Time
	cancellationReason string
	ratingSubmitted    bool
	history            []StatusChange

	isConstructed bool
}

// NewOrder creates an order in pending status with its history seeded.
// This is the shape produced by checkout completion.
func NewOrder(
	id, originID, customerID kernel.UUID,
	items []ItemSnapshot,
	charges Charges,
	address Address,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOriginID(originID),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setCharges(charges),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	o.createdAt = createdAt
	o.history = []StatusChange{NewStatusChange(Pending, createdAt)}
	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	OriginID           kernel.UUID
	CustomerID         kernel.UUID
	Items              []ItemSnapshot
	Status             Status
	Charges            Charges
	Address            Address
	DriverID           *kernel.UUID
	CreatedAt          time.Time
	DeliveredAt        *time.Time
	CancellationReason string
	RatingSubmitted    bool
	History            []StatusChange
}

// RestoreOrder reconstructs an order from persistence or a remote response.
// All invariants are re-validated; corrupt state is rejected rather than
// silently accepted.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(p.ID),
		o.setOriginID(p.OriginID),
		o.setCustomerID(p.CustomerID),
		o.setItems(p.Items),
		o.setCharges(p.Charges),
		o.setAddress(p.Address),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = p.Status
	o.driverID = p.DriverID
	o.createdAt = p.CreatedAt
	o.deliveredAt = p.DeliveredAt
	o.cancellationReason = p.CancellationReason
	o.ratingSubmitted = p.RatingSubmitted
	o.history = make([]StatusChange, len(p.History))
	copy(o.history, p.History)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Clone returns an independent deep copy. Optimistic mutations work on a
// clone so the pre-update state survives for rollback.
func (o *Order) Clone() *Order {
	clone := *o
	clone.items = make([]ItemSnapshot, len(o.items))
	copy(clone.items, o.items)
	clone.history = make([]StatusChange, len(o.history))
	copy(clone.history, o.history)
	if o.driverID != nil {
		driverID := *o.driverID
		clone.driverID = &driverID
	}
	if o.deliveredAt != nil {
		deliveredAt := *o.deliveredAt
		clone.deliveredAt = &deliveredAt
	}
	return &clone
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OriginID returns the restaurant the order was placed with.
func (o *Order) OriginID() kernel.UUID { return o.originID }

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Items returns the frozen line snapshots. The returned slice is a copy.
func (o *Order) Items() []ItemSnapshot {
	items := make([]ItemSnapshot, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Charges returns the monetary breakdown.
func (o *Order) Charges() Charges { return o.charges }

// Address returns the delivery address.
func (o *Order) Address() Address { return o.address }

// Driver returns the assigned driver's ID, or nil if unassigned.
func (o *Order) Driver() *kernel.UUID { return o.driverID }

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// DeliveredAt returns the delivery time, or nil if not delivered.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancellationReason returns the recorded reason, empty unless cancelled.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// RatingSubmitted reports whether the customer already rated the order.
func (o *Order) RatingSubmitted() bool { return o.ratingSubmitted }

// History returns the timestamped status history in chronological order.
// The returned slice is a copy.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// HistoryFor returns the timestamp at which the order entered the given
// status, and false when it never did.
func (o *Order) HistoryFor(status Status) (time.Time, bool) {
	for _, change := range o.history {
		if change.Status() == status {
			return change.At(), true
		}
	}
	return time.Time{}, false
}

// Advance moves the order along the status machine on behalf of an actor.
// The edge must be whitelisted and granted to the actor; violations surface an
// InvalidTransitionError locally so no wasted remote round trip occurs for a
// request the authority would also reject.
func (o *Order) Advance(actor Actor, to Status, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Transition(to)
	if err != nil {
		return err
	}
	if !actor.CanTransition(o.status, to) {
		return errs.NewInvalidTransitionErrorForActor(actor.String(), o.status.String(), to.String())
	}

	o.status = newStatus
	o.history = append(o.history, NewStatusChange(newStatus, at))
	if newStatus == Delivered {
		deliveredAt := at
		o.deliveredAt = &deliveredAt
	}
	return nil
}

// Cancel cancels the order with a reason on behalf of an actor. Only pending,
// preparing and ready orders are cancellable; picked-up and delivered orders
// go through the refund workflow instead.
func (o *Order) Cancel(actor Actor, reason string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	if err := o.Advance(actor, Cancelled, at); err != nil {
		return err
	}
	o.cancellationReason = reason
	return nil
}

// AssignDriver records the driver who will deliver the order. Assignment is
// rejected once the order is terminal or already on the road.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() || o.status == PickedUp {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign a driver", o.status))
	}
	o.driverID = &driverID
	return nil
}

// SubmitRating flips the rating-submitted flag, the only mutation allowed on
// a terminal order, and only after delivery, and only once.
func (o *Order) SubmitRating() error {
	if o.status != Delivered {
		return ErrOrderIsNotDelivered
	}
	if o.ratingSubmitted {
		return ErrRatingAlreadySubmitted
	}
	o.ratingSubmitted = true
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOriginID(originID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originID", err)
	}
	o.originID = originID
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []ItemSnapshot) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]ItemSnapshot, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCharges(charges Charges) error {
	if charges.Total() != charges.Subtotal().Add(charges.DeliveryFee()).Add(charges.ServiceFee()) {
		return errs.NewValueIsInvalidError("charges")
	}
	o.charges = charges
	return nil
}

func (o *Order) setAddress(address Address) error {
	if address.Street() == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}
