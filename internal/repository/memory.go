package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/model"

	"github.com/google/uuid"
)

// MemoryStore keeps users and ride requests in process memory. Every
// operation holds the store lock, so single-record writes are atomic.
// Records are copied in and out; callers never share state with the store.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]model.User
	rideRequests map[string]model.RideRequest
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]model.User),
		rideRequests: make(map[string]model.RideRequest),
	}
}

// Users returns a UserRepository backed by the store
func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{s: s}
}

// RideRequests returns a RideRequestRepository backed by the store
func (s *MemoryStore) RideRequests() RideRequestRepository {
	return &memoryRideRequestRepository{s: s}
}

func copyUser(u model.User) *model.User {
	u.Tokens = slices.Clone(u.Tokens)
	if u.Tokens == nil {
		u.Tokens = []model.Token{}
	}
	return &u
}

type memoryUserRepository struct {
	s *MemoryStore
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("failed to create user: %w", ErrDuplicateKey)
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	if user.Tokens == nil {
		user.Tokens = []model.Token{}
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *memoryUserRepository) AppendToken(_ context.Context, userID string, token model.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return fmt.Errorf("failed to append token: %w", ErrNoRecord)
	}
	u.Tokens = append(slices.Clone(u.Tokens), token)
	r.s.users[userID] = u
	return nil
}

func (r *memoryUserRepository) RemoveToken(_ context.Context, userID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return fmt.Errorf("failed to remove token: %w", ErrNoRecord)
	}
	u.Tokens = slices.DeleteFunc(slices.Clone(u.Tokens), func(t model.Token) bool {
		return t.Token == token
	})
	r.s.users[userID] = u
	return nil
}

func (r *memoryUserRepository) UpdatePasswordHash(_ context.Context, userID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return fmt.Errorf("failed to update password: %w", ErrNoRecord)
	}
	u.PasswordHash = passwordHash
	r.s.users[userID] = u
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return fmt.Errorf("failed to delete user: %w", ErrNoRecord)
	}
	delete(r.s.users, userID)
	// Mirrors ON DELETE CASCADE
	for id, rr := range r.s.rideRequests {
		if rr.Creator == userID {
			delete(r.s.rideRequests, id)
		}
	}
	return nil
}

type memoryRideRequestRepository struct {
	s *MemoryStore
}

func (r *memoryRideRequestRepository) Create(_ context.Context, rr *model.RideRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Postgres keeps microseconds
	rr.ID = uuid.NewString()
	rr.Date = rr.Date.Truncate(time.Microsecond)
	r.s.rideRequests[rr.ID] = *rr
	return nil
}

func (r *memoryRideRequestRepository) FindAll(_ context.Context) ([]model.RideRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rideRequests := make([]model.RideRequest, 0, len(r.s.rideRequests))
	for _, rr := range r.s.rideRequests {
		rideRequests = append(rideRequests, rr)
	}
	sort.Slice(rideRequests, func(i, j int) bool {
		if !rideRequests[i].Date.Equal(rideRequests[j].Date) {
			return rideRequests[i].Date.After(rideRequests[j].Date)
		}
		return rideRequests[i].ID < rideRequests[j].ID
	})
	return rideRequests, nil
}

func (r *memoryRideRequestRepository) FindByIDAndCreator(_ context.Context, id, creatorID string) (*model.RideRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rr, ok := r.s.rideRequests[id]
	if !ok || rr.Creator != creatorID {
		return nil, nil
	}
	return &rr, nil
}

func (r *memoryRideRequestRepository) Patch(_ context.Context, id, creatorID string, patch model.UpdateRideRequestRequest) (*model.RideRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rr, ok := r.s.rideRequests[id]
	if !ok || rr.Creator != creatorID {
		return nil, nil
	}
	if patch.PickUp != nil {
		rr.PickUp = *patch.PickUp
	}
	if patch.DropOff != nil {
		rr.DropOff = *patch.DropOff
	}
	if patch.Passengers != nil {
		rr.Passengers = *patch.Passengers
	}
	if patch.Date != nil {
		rr.Date = patch.Date.Truncate(time.Microsecond)
	}
	if patch.Status != nil {
		rr.Status = *patch.Status
	}
	r.s.rideRequests[id] = rr
	return &rr, nil
}

func (r *memoryRideRequestRepository) DeleteByIDAndCreator(_ context.Context, id, creatorID string) (*model.RideRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rr, ok := r.s.rideRequests[id]
	if !ok || rr.Creator != creatorID {
		return nil, nil
	}
	delete(r.s.rideRequests, id)
	return &rr, nil
}
