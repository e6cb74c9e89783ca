package repository

import (
	"context"
	"testing"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRideRequestID = "0b9f7f0e-2d55-4a3e-8f0c-5e7f2d6a1c44"

var rideRequestRowColumns = []string{"id", "creator_id", "pick_up", "drop_off", "passengers", "date", "status"}

func TestRideRequestRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)
	date := time.Date(2018, 6, 13, 18, 46, 44, 123456789, time.UTC)
	stored := date.Truncate(time.Microsecond)

	mock.ExpectQuery(`INSERT INTO ride_requests .+ RETURNING id, date`).
		WithArgs(testUserID, 1.0, 2.0, 2, date, model.RideStatusOpen).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date"}).AddRow(testRideRequestID, stored))

	rr := &model.RideRequest{Creator: testUserID, PickUp: 1.0, DropOff: 2.0, Passengers: 2, Date: date, Status: model.RideStatusOpen}
	err := repo.Create(context.Background(), rr)

	require.NoError(t, err)
	assert.Equal(t, testRideRequestID, rr.ID)
	assert.Equal(t, stored, rr.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRequestRepository_FindAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM ride_requests ORDER BY date DESC`).
		WillReturnRows(pgxmock.NewRows(rideRequestRowColumns).
			AddRow(testRideRequestID, testUserID, 1.0, 2.0, 2, now, model.RideStatusOpen).
			AddRow("c1d2e3f4-0000-4000-8000-000000000001", "someone-else", 3.0, 4.0, 1, now.Add(-time.Hour), model.RideStatusClosed))

	rideRequests, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, rideRequests, 2)
	assert.Equal(t, testRideRequestID, rideRequests[0].ID)
	assert.Equal(t, model.RideStatusClosed, rideRequests[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRequestRepository_FindAll_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM ride_requests`).
		WillReturnRows(pgxmock.NewRows(rideRequestRowColumns))

	rideRequests, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rideRequests)
	assert.Empty(t, rideRequests)
}

func TestRideRequestRepository_FindByIDAndCreator(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM ride_requests WHERE id = \$1 AND creator_id = \$2`).
		WithArgs(testRideRequestID, testUserID).
		WillReturnRows(pgxmock.NewRows(rideRequestRowColumns).
			AddRow(testRideRequestID, testUserID, 1.0, 2.0, 2, now, model.RideStatusOpen))

	rr, err := repo.FindByIDAndCreator(context.Background(), testRideRequestID, testUserID)

	require.NoError(t, err)
	require.NotNil(t, rr)
	assert.Equal(t, testUserID, rr.Creator)
	assert.Equal(t, 2, rr.Passengers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRequestRepository_FindByIDAndCreator_NotOwned(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM ride_requests WHERE id = \$1 AND creator_id = \$2`).
		WithArgs(testRideRequestID, "other-user").
		WillReturnError(pgx.ErrNoRows)

	rr, err := repo.FindByIDAndCreator(context.Background(), testRideRequestID, "other-user")

	assert.NoError(t, err)
	assert.Nil(t, rr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRequestRepository_Patch(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)
	date := time.Now()
	status := model.RideStatusAccepted

	mock.ExpectQuery(`(?s)UPDATE ride_requests\s+SET pick_up = COALESCE\(\$3, pick_up\).+status = COALESCE\(\$7, status\)\s+WHERE id = \$1 AND creator_id = \$2 RETURNING`).
		WithArgs(testRideRequestID, testUserID, (*float64)(nil), (*float64)(nil), (*int)(nil), (*time.Time)(nil), &status).
		WillReturnRows(pgxmock.NewRows(rideRequestRowColumns).
			AddRow(testRideRequestID, testUserID, 1.0, 2.0, 3, date, model.RideStatusAccepted))

	updated, err := repo.Patch(context.Background(), testRideRequestID, testUserID, model.UpdateRideRequestRequest{Status: &status})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.RideStatusAccepted, updated.Status)
	assert.Equal(t, 3, updated.Passengers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRequestRepository_Patch_Gone(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)
	passengers := 3

	mock.ExpectQuery(`UPDATE ride_requests`).
		WithArgs(testRideRequestID, testUserID, (*float64)(nil), (*float64)(nil), &passengers, (*time.Time)(nil), (*string)(nil)).
		WillReturnError(pgx.ErrNoRows)

	updated, err := repo.Patch(context.Background(), testRideRequestID, testUserID, model.UpdateRideRequestRequest{Passengers: &passengers})

	assert.NoError(t, err)
	assert.Nil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRequestRepository_DeleteByIDAndCreator(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRideRequestRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`DELETE FROM ride_requests WHERE id = \$1 AND creator_id = \$2 RETURNING`).
		WithArgs(testRideRequestID, testUserID).
		WillReturnRows(pgxmock.NewRows(rideRequestRowColumns).
			AddRow(testRideRequestID, testUserID, 1.0, 2.0, 2, now, model.RideStatusOpen))

	rr, err := repo.DeleteByIDAndCreator(context.Background(), testRideRequestID, testUserID)

	require.NoError(t, err)
	require.NotNil(t, rr)
	assert.Equal(t, testRideRequestID, rr.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
