// Package orderrepo provides data transfer objects and mapping functions for
// order persistence in the admin console deployment, where this service is
// itself the order authority.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OriginID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status             int              `gorm:"type:int;not null;index"`
	Charges            ChargesDTO       `gorm:"embedded;embeddedPrefix:charges_"`
	Address            AddressDTO       `gorm:"embedded;embeddedPrefix:address_"`
	DriverID           *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt          time.Time        `gorm:"not null;index"`
	DeliveredAt        *time.Time       ``
	CancellationReason string           `gorm:"type:varchar(512)"`
	RatingSubmitted    bool             `gorm:"not null"`
	Items              []OrderItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History            []OrderStatusDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ChargesDTO represents the embedded monetary breakdown within the order table.
type ChargesDTO struct {
	Subtotal    int64 `gorm:"type:bigint;not null"`
	DeliveryFee int64 `gorm:"type:bigint;not null"`
	ServiceFee  int64 `gorm:"type:bigint;not null"`
	Total       int64 `gorm:"type:bigint;not null"`
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	Street string `gorm:"type:varchar(255);not null"`
	Floor  string `gorm:"type:varchar(32)"`
	Door   string `gorm:"type:varchar(32)"`
}

// OrderItemDTO represents one frozen order line. Lines share their menu item
// id across orders, so rows carry a surrogate key.
type OrderItemDTO struct {
	RowID     uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	UnitPrice int64     `gorm:"type:bigint;not null"`
	Quantity  int       `gorm:"type:int;not null"`
}

// TableName overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderStatusDTO represents one timestamped status history entry.
type OrderStatusDTO struct {
	RowID   uint      `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status  int       `gorm:"type:int;not null"`
	At      time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "order_statuses".
func (OrderStatusDTO) TableName() string {
	return "order_statuses"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			ItemID:    item.ID().Bytes(),
			Name:      item.Name(),
			UnitPrice: int64(item.UnitPrice()),
			Quantity:  item.Quantity(),
		})
	}

	history := make([]OrderStatusDTO, 0, len(o.History()))
	for _, change := range o.History() {
		history = append(history, OrderStatusDTO{
			OrderID: orderID,
			Status:  int(change.Status()),
			At:      change.At(),
		})
	}

	var driverID *uuid.UUID
	if id := o.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:         orderID,
		OriginID:   o.OriginID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		Status:     int(o.Status()),
		Charges: ChargesDTO{
			Subtotal:    int64(o.Charges().Subtotal()),
			DeliveryFee: int64(o.Charges().DeliveryFee()),
			ServiceFee:  int64(o.Charges().ServiceFee()),
			Total:       int64(o.Charges().Total()),
		},
		Address: AddressDTO{
			Street: o.Address().Street(),
			Floor:  o.Address().Floor(),
			Door:   o.Address().Door(),
		},
		DriverID:           driverID,
		CreatedAt:          o.CreatedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancellationReason: o.CancellationReason(),
		RatingSubmitted:    o.RatingSubmitted(),
		Items:              items,
		History:            history,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder so every invariant is re-validated on the way out.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	originID, err := kernel.UUIDFromBytes(dto.OriginID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSnapshot, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItemSnapshot(
			itemID, itemDTO.Name, kernel.Money(itemDTO.UnitPrice), itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	charges, err := order.RestoreCharges(
		kernel.Money(dto.Charges.Subtotal),
		kernel.Money(dto.Charges.DeliveryFee),
		kernel.Money(dto.Charges.ServiceFee),
		kernel.Money(dto.Charges.Total),
	)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(dto.Address.Street, dto.Address.Floor, dto.Address.Door)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, changeDTO := range dto.History {
		history = append(history,
			order.NewStatusChange(order.Status(changeDTO.Status), changeDTO.At))
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		OriginID:           originID,
		CustomerID:         customerID,
		Items:              items,
		Status:             order.Status(dto.Status),
		Charges:            charges,
		Address:            address,
		DriverID:           driverID,
		CreatedAt:          dto.CreatedAt,
		DeliveredAt:        dto.DeliveredAt,
		CancellationReason: dto.CancellationReason,
		RatingSubmitted:    dto.RatingSubmitted,
		History:            history,
	})
}
