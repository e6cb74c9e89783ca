package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/RaymondMik/GetRideApp/internal/events"
	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/repository"
	"github.com/RaymondMik/GetRideApp/internal/utils"
	"github.com/RaymondMik/GetRideApp/internal/validation"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RideRequestEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.RideRequestEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

type testEnv struct {
	store       *repository.MemoryStore
	jwtUtil     *utils.JWTUtil
	credentials CredentialService
	auth        AuthService
	rides       RideRequestService
	publisher   *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hasher, err := utils.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	validator := validation.New()
	jwtUtil := utils.NewJWTUtil(testSecret, 1)
	publisher := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	credentials := NewCredentialService(store.Users(), hasher, validator)
	return &testEnv{
		store:       store,
		jwtUtil:     jwtUtil,
		credentials: credentials,
		auth:        NewAuthService(credentials, jwtUtil),
		rides:       NewRideRequestService(store.RideRequests(), validator, publisher, logger),
		publisher:   publisher,
	}
}

func (e *testEnv) signup(t *testing.T, email, password string) (*model.User, string) {
	t.Helper()
	user, token, err := e.auth.Signup(context.Background(), email, password, model.UserTypeClient)
	require.NoError(t, err)
	return user, token
}

func ptr[T any](v T) *T {
	return &v
}
