package cart

import (
	"orderflow/internal/core/domain/model/kernel"
)

// Group is one per-origin section of the cart: the origin's display data plus
// its line items in insertion order. A group with zero items is considered
// absent; the aggregation functions never return one.
type Group struct {
	origin Origin
	items  []LineItem
}

// Origin returns the origin the group belongs to.
func (g Group) Origin() Origin {
	return g.origin
}

// Items returns the group's line items in insertion order.
// The returned slice is a copy; mutating it does not affect the group.
func (g Group) Items() []LineItem {
	items := make([]LineItem, len(g.items))
	copy(items, g.items)
	return items
}

// Subtotal returns the sum of unitPrice * quantity over the group's items.
// Delivery and service fees are not part of any cart total; they are computed
// per order at checkout.
func (g Group) Subtotal() kernel.Money {
	var total kernel.Money
	for _, item := range g.items {
		total = total.Add(item.Total())
	}
	return total
}

// Aggregate groups flat line items per origin. Group order follows the first
// occurrence of each origin in the input; item order within a group follows
// the input order. Items failing validation are the caller's bug and are
// included as-is; aggregation itself never filters.
func Aggregate(items []LineItem) []Group {
	groups := make([]Group, 0)
	index := make(map[kernel.UUID]int)

	for _, item := range items {
		originID := item.Origin().ID()
		at, seen := index[originID]
		if !seen {
			at = len(groups)
			index[originID] = at
			groups = append(groups, Group{origin: item.Origin()})
		}
		groups[at].items = append(groups[at].items, item)
	}

	return groups
}

// GrandTotal sums all group subtotals. Fees are excluded by design: the grand
// total is a cart-level figure, fees are order-level figures.
func GrandTotal(groups []Group) kernel.Money {
	var total kernel.Money
	for _, group := range groups {
		total = total.Add(group.Subtotal())
	}
	return total
}

// ClampQuantity floors a quantity at MinQuantity.
func ClampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	return quantity
}

// ChangeQuantity returns a new aggregate with the identified item's quantity
// adjusted by delta, clamped at MinQuantity. A cumulative negative delta can
// therefore never remove an item; removal is always explicit via RemoveItem.
// When the item is not present the aggregate is returned unchanged.
func ChangeQuantity(groups []Group, itemID kernel.UUID, delta int) []Group {
	result := make([]Group, len(groups))
	for gi, group := range groups {
		items := make([]LineItem, len(group.items))
		for ii, item := range group.items {
			if item.ID().IsEqual(itemID) {
				item = item.withQuantity(ClampQuantity(item.Quantity() + delta))
			}
			items[ii] = item
		}
		result[gi] = Group{origin: group.origin, items: items}
	}
	return result
}

// RemoveItem returns a new aggregate with the identified item removed. A group
// left with no items disappears from the result entirely.
func RemoveItem(groups []Group, itemID kernel.UUID) []Group {
	result := make([]Group, 0, len(groups))
	for _, group := range groups {
		items := make([]LineItem, 0, len(group.items))
		for _, item := range group.items {
			if item.ID().IsEqual(itemID) {
				continue
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}
		result = append(result, Group{origin: group.origin, items: items})
	}
	return result
}

// Flatten is the inverse of Aggregate: it returns the line items of all groups
// in display order. Used when the whole cart must be sent to the remote
// authority, e.g. as checkout line-item snapshots.
func Flatten(groups []Group) []LineItem {
	items := make([]LineItem, 0)
	for _, group := range groups {
		items = append(items, group.items...)
	}
	return items
}
