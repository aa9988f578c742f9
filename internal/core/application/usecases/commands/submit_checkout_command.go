package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/checkout"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrSubmitCheckoutCommandIsNotConstructed = errors.New(
		"SubmitCheckoutCommand must be created via NewSubmitCheckoutCommand constructor",
	)
	ErrSessionIsRequired = errors.New("wizard session is required")
	ErrCartIsEmpty       = errors.New("cart has no groups to check out")
	ErrFeeIsNegative     = errors.New("fees must not be negative")
)

// SubmitCheckoutCommand turns one cart group plus the checkout session's form
// state into an order-creation call. Fees are a local quote only; the
// authority recomputes them and its figures win.
type SubmitCheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	originID    kernel.UUID
	deliveryFee kernel.Money
	serviceFee  kernel.Money
	groups      []cart.Group
	session     *checkout.Session

	guard guard.ConstructorGuard
}

// NewSubmitCheckoutCommand creates a command to submit the checkout wizard.
func NewSubmitCheckoutCommand(
	orderID, customerID, originID kernel.UUID,
	deliveryFee, serviceFee kernel.Money,
	groups []cart.Group,
	session *checkout.Session,
) (SubmitCheckoutCommand, error) {
	cmd := SubmitCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setOriginID(originID),
		cmd.setFees(deliveryFee, serviceFee),
		cmd.setGroups(groups),
		cmd.setSession(session),
	); err != nil {
		return SubmitCheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCheckoutCommandIsNotConstructed)
}

// OrderID returns the id the new order will carry.
func (c SubmitCheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer checking out.
func (c SubmitCheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// OriginID returns the restaurant whose cart group becomes the order.
func (c SubmitCheckoutCommand) OriginID() kernel.UUID {
	return c.originID
}

// DeliveryFee returns the locally quoted delivery fee.
func (c SubmitCheckoutCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// ServiceFee returns the locally quoted service fee.
func (c SubmitCheckoutCommand) ServiceFee() kernel.Money {
	return c.serviceFee
}

// Groups returns the cart grouping at submission time.
func (c SubmitCheckoutCommand) Groups() []cart.Group {
	return c.groups
}

// Session returns the checkout wizard session being submitted.
func (c SubmitCheckoutCommand) Session() *checkout.Session {
	return c.session
}

func (c *SubmitCheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitCheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *SubmitCheckoutCommand) setOriginID(originID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return err
	}

	c.originID = originID
	return nil
}

func (c *SubmitCheckoutCommand) setFees(deliveryFee, serviceFee kernel.Money) error {
	if deliveryFee < 0 || serviceFee < 0 {
		return ErrFeeIsNegative
	}

	c.deliveryFee = deliveryFee
	c.serviceFee = serviceFee
	return nil
}

func (c *SubmitCheckoutCommand) setGroups(groups []cart.Group) error {
	if len(groups) == 0 {
		return ErrCartIsEmpty
	}

	c.groups = groups
	return nil
}

func (c *SubmitCheckoutCommand) setSession(session *checkout.Session) error {
	if session == nil {
		return ErrSessionIsRequired
	}
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}
