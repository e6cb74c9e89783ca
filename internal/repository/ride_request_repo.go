package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaymondMik/GetRideApp/internal/model"

	"github.com/jackc/pgx/v5"
)

const rideRequestColumns = `id, creator_id, pick_up, drop_off, passengers, date, status`

// RideRequestRepository defines operations for ride request data.
// Single-record lookups and mutations always filter on the creator as well as the id.
type RideRequestRepository interface {
	Create(ctx context.Context, rideRequest *model.RideRequest) error
	FindAll(ctx context.Context) ([]model.RideRequest, error)
	FindByIDAndCreator(ctx context.Context, id, creatorID string) (*model.RideRequest, error)
	Patch(ctx context.Context, id, creatorID string, patch model.UpdateRideRequestRequest) (*model.RideRequest, error)
	DeleteByIDAndCreator(ctx context.Context, id, creatorID string) (*model.RideRequest, error)
}

type rideRequestRepository struct {
	db DBTX
}

// NewRideRequestRepository creates a new RideRequestRepository
func NewRideRequestRepository(db DBTX) RideRequestRepository {
	return &rideRequestRepository{db: db}
}

// Create inserts a new ride request and fills in the generated ID and the date as stored
func (r *rideRequestRepository) Create(ctx context.Context, rr *model.RideRequest) error {
	sql := `INSERT INTO ride_requests (creator_id, pick_up, drop_off, passengers, date, status)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, date`
	err := r.db.QueryRow(ctx, sql, rr.Creator, rr.PickUp, rr.DropOff, rr.Passengers, rr.Date, rr.Status).Scan(&rr.ID, &rr.Date)
	if err != nil {
		return fmt.Errorf("failed to create ride request: %w", err)
	}
	return nil
}

// FindAll retrieves every ride request, newest first
func (r *rideRequestRepository) FindAll(ctx context.Context) ([]model.RideRequest, error) {
	sql := `SELECT ` + rideRequestColumns + ` FROM ride_requests ORDER BY date DESC, id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query ride requests: %w", err)
	}
	defer rows.Close()

	rideRequests := make([]model.RideRequest, 0)
	for rows.Next() {
		rr, err := scanRideRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ride request row: %w", err)
		}
		rideRequests = append(rideRequests, *rr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ride request rows: %w", err)
	}
	return rideRequests, nil
}

// FindByIDAndCreator retrieves a ride request owned by creatorID; nil, nil when there is none
func (r *rideRequestRepository) FindByIDAndCreator(ctx context.Context, id, creatorID string) (*model.RideRequest, error) {
	sql := `SELECT ` + rideRequestColumns + ` FROM ride_requests WHERE id = $1 AND creator_id = $2`
	rr, err := scanRideRequest(r.db.QueryRow(ctx, sql, id, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ride request by ID: %w", err)
	}
	return rr, nil
}

// Patch sets the non-nil fields of patch in one statement; nil, nil when the
// record is gone or not owned by creatorID
func (r *rideRequestRepository) Patch(ctx context.Context, id, creatorID string, patch model.UpdateRideRequestRequest) (*model.RideRequest, error) {
	sql := `UPDATE ride_requests
            SET pick_up = COALESCE($3, pick_up), drop_off = COALESCE($4, drop_off),
                passengers = COALESCE($5, passengers), date = COALESCE($6, date), status = COALESCE($7, status)
            WHERE id = $1 AND creator_id = $2 RETURNING ` + rideRequestColumns
	updated, err := scanRideRequest(r.db.QueryRow(ctx, sql, id, creatorID,
		patch.PickUp, patch.DropOff, patch.Passengers, patch.Date, patch.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to patch ride request: %w", err)
	}
	return updated, nil
}

// DeleteByIDAndCreator removes a ride request owned by creatorID and returns it; nil, nil when nothing matched
func (r *rideRequestRepository) DeleteByIDAndCreator(ctx context.Context, id, creatorID string) (*model.RideRequest, error) {
	sql := `DELETE FROM ride_requests WHERE id = $1 AND creator_id = $2 RETURNING ` + rideRequestColumns
	rr, err := scanRideRequest(r.db.QueryRow(ctx, sql, id, creatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete ride request: %w", err)
	}
	return rr, nil
}

func scanRideRequest(row pgx.Row) (*model.RideRequest, error) {
	rr := &model.RideRequest{}
	err := row.Scan(&rr.ID, &rr.Creator, &rr.PickUp, &rr.DropOff, &rr.Passengers, &rr.Date, &rr.Status)
	if err != nil {
		return nil, err
	}
	return rr, nil
}
