package payoutrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

const defaultPageLimit = 20

// GormPayoutRepository implements PayoutRepository using GORM.
type GormPayoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPayoutRepository creates a new GORM payout repository.
func NewGormPayoutRepository(db *gorm.DB, tracker aggregateTracker) *GormPayoutRepository {
	return &GormPayoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payout request to the database.
func (r *GormPayoutRepository) Add(ctx context.Context, aggregate *payout.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing payout request to the database.
func (r *GormPayoutRepository) Update(ctx context.Context, aggregate *payout.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a payout request by ID.
func (r *GormPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payout request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPage retrieves a page of payout requests, newest first.
func (r *GormPayoutRepository) GetPage(
	ctx context.Context,
	filter ports.PayoutFilter,
) (ports.Page[*payout.Request], error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	filtered := func(db *gorm.DB) *gorm.DB {
		if filter.Kind != payout.KindUnknown {
			db = db.Where("kind = ?", int(filter.Kind))
		}
		if filter.Status != payout.StatusUnknown {
			db = db.Where("status = ?", int(filter.Status))
		}
		return db
	}

	var total int64
	err := filtered(r.db.WithContext(ctx).Model(&RequestDTO{})).Count(&total).Error
	if err != nil {
		return ports.Page[*payout.Request]{}, err
	}

	var dtos []RequestDTO
	err = filtered(r.db.WithContext(ctx)).
		Order("requested_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return ports.Page[*payout.Request]{}, err
	}

	requests := make([]*payout.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, mapErr := toDomain(dto)
		if mapErr != nil {
			return ports.Page[*payout.Request]{}, mapErr
		}
		requests = append(requests, request)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return ports.Page[*payout.Request]{
		Items:      requests,
		Total:      int(total),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetAllPendingWithdrawals retrieves every withdrawal awaiting settlement,
// oldest first so the sweep settles in request order.
func (r *GormPayoutRepository) GetAllPendingWithdrawals(ctx context.Context) ([]*payout.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("kind = ? AND status = ?", int(payout.KindWithdrawal), int(payout.StatusPending)).
		Order("requested_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*payout.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		requests = append(requests, request)
	}

	return requests, nil
}
