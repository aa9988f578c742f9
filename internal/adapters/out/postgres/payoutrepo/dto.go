// Package payoutrepo provides data transfer objects and mapping functions for
// withdrawal and refund request persistence.
package payoutrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting payout request
// aggregates. The destination account is stored in full; masking happens in
// the domain when the number is displayed.
type RequestDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind        int            `gorm:"type:int;not null;index"`
	Amount      int64          `gorm:"type:bigint;not null"`
	BankAccount BankAccountDTO `gorm:"embedded;embeddedPrefix:bank_"`
	Status      int            `gorm:"type:int;not null;index"`
	OrderID     *uuid.UUID     `gorm:"type:uuid;index"`
	RequestedAt time.Time      `gorm:"not null;index"`
	CompletedAt *time.Time     ``
}

// TableName overrides GORM's default naming convention to use "payout_requests".
func (RequestDTO) TableName() string {
	return "payout_requests"
}

// BankAccountDTO represents the embedded destination account within the
// payout request table.
type BankAccountDTO struct {
	BankID        string `gorm:"type:varchar(64);not null"`
	AccountNumber string `gorm:"type:varchar(20);not null"`
	HolderName    string `gorm:"type:varchar(255);not null"`
}

// fromDomain converts a payout request aggregate to its database representation.
func fromDomain(r *payout.Request) RequestDTO {
	var orderID *uuid.UUID
	if id := r.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return RequestDTO{
		ID:          r.ID().Bytes(),
		RequesterID: r.RequesterID().Bytes(),
		Kind:        int(r.Kind()),
		Amount:      int64(r.Amount()),
		BankAccount: BankAccountDTO{
			BankID:        r.BankAccount().BankID(),
			AccountNumber: r.BankAccount().AccountNumber(),
			HolderName:    r.BankAccount().HolderName(),
		},
		Status:      int(r.Status()),
		OrderID:     orderID,
		RequestedAt: r.RequestedAt(),
		CompletedAt: r.CompletedAt(),
	}
}

// toDomain converts a database DTO to a payout request aggregate using
// RestoreRequest so kind and status consistency is re-validated.
func toDomain(dto RequestDTO) (*payout.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}
	account, err := payout.NewBankAccount(
		dto.BankAccount.BankID, dto.BankAccount.AccountNumber, dto.BankAccount.HolderName)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return payout.RestoreRequest(payout.RestoreRequestParams{
		ID:          id,
		RequesterID: requesterID,
		Kind:        payout.Kind(dto.Kind),
		Amount:      kernel.Money(dto.Amount),
		BankAccount: account,
		Status:      payout.Status(dto.Status),
		OrderID:     orderID,
		RequestedAt: dto.RequestedAt,
		CompletedAt: dto.CompletedAt,
	})
}
