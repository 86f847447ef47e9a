package triprepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/trip"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRailTripRepository implements RailTripRepository using GORM.
type GormRailTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRailTripRepository creates a new GORM rail trip repository.
func NewGormRailTripRepository(db *gorm.DB, tracker aggregateTracker) *GormRailTripRepository {
	return &GormRailTripRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new trip to the database.
func (r *GormRailTripRepository) Add(ctx context.Context, aggregate *trip.RailTrip) error {
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

// Update saves an existing trip to the database.
func (r *GormRailTripRepository) Update(ctx context.Context, aggregate *trip.RailTrip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RailTripDTO{}).
		Where("id = ?", dto.ID).
		Select("Departure", "Arrival", "TotalCapacity", "CommittedCapacity").
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

// Get retrieves a trip by ID.
func (r *GormRailTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.RailTrip, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a trip holding a row lock until the surrounding
// transaction ends. The capacity check-and-commit happens under this lock.
func (r *GormRailTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.RailTrip, error) {
	return r.get(ctx, id, true)
}

func (r *GormRailTripRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*trip.RailTrip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto RailTripDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rail trip", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
