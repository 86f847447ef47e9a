package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnallocatedOrdersQueryHandler retrieves orders awaiting allocation work
// from the database. Uses a direct SQL read for the operator work queue.
type GetUnallocatedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnallocatedOrdersQueryHandler creates a handler for work queue queries.
func NewGetUnallocatedOrdersQueryHandler(db *gorm.DB) GetUnallocatedOrdersQueryHandler {
	return GetUnallocatedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders missing a leg.
// Returns orders in Confirmed or RailScheduled status, sorted by ID for
// consistent output.
func (h GetUnallocatedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnallocatedOrdersQuery,
) ([]GetUnallocatedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnallocatedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			destination_city,
			street,
			required_space,
			status
		FROM orders
		WHERE status IN (?, ?)
		ORDER BY id
	`, int(order.Confirmed), int(order.RailScheduled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnallocatedOrdersQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.DestinationCity,
			&resp.Street,
			&resp.RequiredSpace,
			&status,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
