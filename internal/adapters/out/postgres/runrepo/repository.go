package runrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/roadrun"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoadRunRepository implements RoadRunRepository using GORM.
type GormRoadRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRoadRunRepository creates a new GORM road run repository.
func NewGormRoadRunRepository(db *gorm.DB, tracker aggregateTracker) *GormRoadRunRepository {
	return &GormRoadRunRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new run to the database.
func (r *GormRoadRunRepository) Add(ctx context.Context, aggregate *roadrun.RoadRun) error {
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

// Update saves an existing run to the database.
// Crew and window columns are fixed at creation; only capacity moves.
func (r *GormRoadRunRepository) Update(ctx context.Context, aggregate *roadrun.RoadRun) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RoadRunDTO{}).
		Where("id = ?", dto.ID).
		Select("TotalCapacity", "CommittedCapacity").
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

// Delete removes a run, releasing its crew reservations.
func (r *GormRoadRunRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RoadRunDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("road run", id.String())
	}

	return nil
}

// Get retrieves a run by ID.
func (r *GormRoadRunRepository) Get(ctx context.Context, id kernel.UUID) (*roadrun.RoadRun, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a run holding a row lock until the surrounding
// transaction ends.
func (r *GormRoadRunRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*roadrun.RoadRun, error) {
	return r.get(ctx, id, true)
}

func (r *GormRoadRunRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*roadrun.RoadRun, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto RoadRunDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("road run", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBusyWindows returns the windows of every run the crew entity is
// committed to, excluding excludeRunID when it is a constructed UUID.
//
// Before reading, it takes a transaction-scoped advisory lock keyed on the
// entity. Row locks alone cannot serialize concurrent reservations: two
// transactions inserting the first runs for one driver have no rows to lock,
// and each statement snapshot misses the other's uncommitted insert. The
// advisory lock makes the second transaction wait until the first commits,
// so its overlap check sees the new run. Callers iterate crew entities in a
// fixed class order, which keeps lock acquisition deadlock-free.
func (r *GormRoadRunRepository) GetBusyWindows(
	ctx context.Context,
	class roadrun.EntityClass,
	entityID kernel.UUID,
	excludeRunID kernel.UUID,
) ([]kernel.TimeWindow, error) {
	if err := class.Validate(); err != nil {
		return nil, err
	}
	if err := entityID.Validate(); err != nil {
		return nil, err
	}

	column, err := crewColumn(class)
	if err != nil {
		return nil, err
	}

	lockKey := column + ":" + entityID.String()
	if err = r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", lockKey).Error; err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(column+" = ?", entityID.Bytes())

	if excludeRunID.Validate() == nil {
		tx = tx.Where("id <> ?", excludeRunID.Bytes())
	}

	var dtos []RoadRunDTO
	if err = tx.Find(&dtos).Error; err != nil {
		return nil, err
	}

	windows := make([]kernel.TimeWindow, 0, len(dtos))
	for _, dto := range dtos {
		window, windowErr := kernel.NewTimeWindow(dto.StartTime, dto.EndTime)
		if windowErr != nil {
			return nil, windowErr
		}
		windows = append(windows, window)
	}

	return windows, nil
}

func crewColumn(class roadrun.EntityClass) (string, error) {
	switch class {
	case roadrun.Truck:
		return "truck_id", nil
	case roadrun.Driver:
		return "driver_id", nil
	case roadrun.Assistant:
		return "assistant_id", nil
	default:
		return "", errs.NewValueIsInvalidError("entity class")
	}
}
