package cart

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// MinQuantity is the floor every line item quantity is clamped to. Decrementing
// below it is a no-op, never an implicit removal.
const MinQuantity = 1

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem was not created
	// through the NewLineItem constructor.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// Origin identifies the restaurant a line item belongs to, together with the
// display attributes the cart shows per group.
type Origin struct {
	id    kernel.UUID
	name  string
	hours string
}

// NewOrigin creates an Origin reference. The id must be valid and the display
// name non-empty; opening hours are optional display data.
func NewOrigin(id kernel.UUID, name, hours string) (Origin, error) {
	if err := id.Validate(); err != nil {
		return Origin{}, err
	}
	if name == "" {
		return Origin{}, errs.NewValueIsRequiredError("origin name")
	}
	return Origin{id: id, name: name, hours: hours}, nil
}

// ID returns the origin's unique identifier.
func (o Origin) ID() kernel.UUID {
	return o.id
}

// Name returns the origin's display name.
func (o Origin) Name() string {
	return o.name
}

// Hours returns the origin's display opening hours.
func (o Origin) Hours() string {
	return o.hours
}

// IsEqual compares two origins by identifier.
func (o Origin) IsEqual(other Origin) bool {
	return o.id.IsEqual(other.id)
}

// LineItem is one cart entry: a product from a single origin with a unit price
// in minor currency units and a quantity of at least MinQuantity. LineItem is
// immutable; quantity changes produce a new value via withQuantity.
type LineItem struct {
	id        kernel.UUID
	origin    Origin
	name      string
	unitPrice kernel.Money
	quantity  int
	imageRef  string
}

// NewLineItem creates a validated line item.
// The unit price may be zero (promotional items) but never negative, and the
// quantity must already respect the MinQuantity floor.
func NewLineItem(
	id kernel.UUID,
	origin Origin,
	name string,
	unitPrice kernel.Money,
	quantity int,
	imageRef string,
) (LineItem, error) {
	item := LineItem{}

	if err := errors.Join(
		item.setID(id),
		item.setOrigin(origin),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	item.imageRef = imageRef
	return item, nil
}

// Validate ensures the line item was created through NewLineItem.
func (i LineItem) Validate() error {
	if err := i.id.Validate(); err != nil {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i LineItem) ID() kernel.UUID {
	return i.id
}

// Origin returns the origin the line item belongs to.
func (i LineItem) Origin() Origin {
	return i.origin
}

// Name returns the product display name.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the price of one unit in minor currency units.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the current quantity, always >= MinQuantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// ImageRef returns the optional image reference.
func (i LineItem) ImageRef() string {
	return i.imageRef
}

// Total returns unitPrice * quantity.
func (i LineItem) Total() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

// withQuantity returns a copy of the item with the quantity replaced.
// The caller is responsible for clamping.
func (i LineItem) withQuantity(quantity int) LineItem {
	i.quantity = quantity
	return i
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setOrigin(origin Origin) error {
	if err := origin.ID().Validate(); err != nil {
		return errs.NewValueIsRequiredError("origin")
	}
	i.origin = origin
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < MinQuantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than the minimum of %d", quantity, MinQuantity))
	}
	i.quantity = quantity
	return nil
}
