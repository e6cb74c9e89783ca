package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/events"
	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/repository"
	"github.com/RaymondMik/GetRideApp/internal/validation"

	"github.com/google/uuid"
)

// creatorRule is reported for a _creator that is not the caller.
const creatorRule = "caller"

// RideRequestService defines operations for ride requests. Every single-record
// operation is scoped to the caller: records owned by someone else are
// reported as ErrNotFound, exactly like records that do not exist.
type RideRequestService interface {
	List(ctx context.Context) ([]model.RideRequest, error)
	GetByID(ctx context.Context, id, callerID string) (*model.RideRequest, error)
	Create(ctx context.Context, callerID string, req model.CreateRideRequestRequest) (*model.RideRequest, error)
	Update(ctx context.Context, id, callerID string, req model.UpdateRideRequestRequest) (*model.RideRequest, error)
	Delete(ctx context.Context, id, callerID string) (*model.RideRequest, error)
}

type rideRequestService struct {
	repo      repository.RideRequestRepository
	validator *validation.Validator
	publisher events.Publisher
	logger    *slog.Logger
}

// NewRideRequestService creates a new RideRequestService
func NewRideRequestService(repo repository.RideRequestRepository, validator *validation.Validator, publisher events.Publisher, logger *slog.Logger) RideRequestService {
	return &rideRequestService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns every ride request in the system, not only the caller's.
func (s *rideRequestService) List(ctx context.Context) ([]model.RideRequest, error) {
	rideRequests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ride requests from repo: %w", err)
	}
	return rideRequests, nil
}

func (s *rideRequestService) GetByID(ctx context.Context, id, callerID string) (*model.RideRequest, error) {
	rideRequestID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	rr, err := s.repo.FindByIDAndCreator(ctx, rideRequestID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ride request by ID: %w", err)
	}
	if rr == nil {
		return nil, ErrNotFound
	}
	return rr, nil
}

func (s *rideRequestService) Create(ctx context.Context, callerID string, req model.CreateRideRequestRequest) (*model.RideRequest, error) {
	fields, err := s.validator.Struct(req)
	if err != nil {
		return nil, err
	}
	if req.Creator != nil && *req.Creator != callerID {
		fields = withField(fields, "_creator", creatorRule)
	}
	if len(fields) > 0 {
		return nil, newValidationError("RideRequest validation failed", fields)
	}

	rr := &model.RideRequest{
		Creator:    callerID,
		PickUp:     *req.PickUp,
		DropOff:    *req.DropOff,
		Passengers: model.DefaultPassengers,
		Date:       time.Now().UTC(),
		Status:     model.RideStatusOpen,
	}
	if req.Passengers != nil {
		rr.Passengers = *req.Passengers
	}
	if req.Date != nil {
		rr.Date = *req.Date
	}
	if req.Status != nil {
		rr.Status = *req.Status
	}

	if err := s.repo.Create(ctx, rr); err != nil {
		return nil, fmt.Errorf("failed to create ride request in repo: %w", err)
	}
	s.publish(ctx, events.TopicRideRequestCreated, callerID, rr)
	return rr, nil
}

// Update applies the non-nil fields of req. The creator can never change.
func (s *rideRequestService) Update(ctx context.Context, id, callerID string, req model.UpdateRideRequestRequest) (*model.RideRequest, error) {
	rideRequestID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	fields, err := s.validator.Struct(req)
	if err != nil {
		return nil, err
	}
	if req.Creator != nil && *req.Creator != callerID {
		fields = withField(fields, "_creator", creatorRule)
	}
	if len(fields) > 0 {
		return nil, newValidationError("RideRequest validation failed", fields)
	}

	updated, err := s.repo.Patch(ctx, rideRequestID, callerID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update ride request in repo: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.publish(ctx, events.TopicRideRequestUpdated, callerID, updated)
	return updated, nil
}

// Delete removes the caller's ride request and returns it
func (s *rideRequestService) Delete(ctx context.Context, id, callerID string) (*model.RideRequest, error) {
	rideRequestID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	rr, err := s.repo.DeleteByIDAndCreator(ctx, rideRequestID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete ride request in repo: %w", err)
	}
	if rr == nil {
		return nil, ErrNotFound
	}
	s.publish(ctx, events.TopicRideRequestDeleted, callerID, rr)
	return rr, nil
}

// publish never fails the request; a lost event is logged.
func (s *rideRequestService) publish(ctx context.Context, topic, actorID string, rr *model.RideRequest) {
	event := events.NewRideRequestEvent(topic, actorID, *rr)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish ride request event",
			slog.String("topic", topic),
			slog.String("ride_request_id", rr.ID),
			slog.Any("error", err),
		)
	}
}

// parseID returns the canonical form of a UUID id, or ErrInvalidID. Only the
// 36 character hyphenated form is accepted.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed.String(), nil
}

func withField(fields validation.FieldErrors, name, rule string) validation.FieldErrors {
	if fields == nil {
		fields = validation.FieldErrors{}
	}
	fields[name] = rule
	return fields
}
