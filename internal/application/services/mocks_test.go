package services_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
)

// MockTripRepository for testing
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *entities.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*entities.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByOwner(ctx context.Context, ownerID string, filter repositories.TripFilter) ([]*entities.Trip, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Trip), args.Error(1)
}

func (m *MockTripRepository) Update(ctx context.Context, trip *entities.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTripDestinationRepository for testing
type MockTripDestinationRepository struct {
	mock.Mock
}

func (m *MockTripDestinationRepository) Create(ctx context.Context, td *entities.TripDestination) error {
	args := m.Called(ctx, td)
	return args.Error(0)
}

func (m *MockTripDestinationRepository) ListByTrip(ctx context.Context, tripID string) ([]*entities.TripDestination, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TripDestination), args.Error(1)
}

func (m *MockTripDestinationRepository) DeleteByTripAndDestination(ctx context.Context, tripID, destinationID string) error {
	args := m.Called(ctx, tripID, destinationID)
	return args.Error(0)
}

// MockDestinationRepository for testing
type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) GetByID(ctx context.Context, id string) (*entities.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Destination), args.Error(1)
}

func (m *MockDestinationRepository) List(ctx context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Destination), args.Error(1)
}

func (m *MockDestinationRepository) Upsert(ctx context.Context, destination *entities.Destination) error {
	args := m.Called(ctx, destination)
	return args.Error(0)
}

// MockDestinationSearchRepository for testing
type MockDestinationSearchRepository struct {
	mock.Mock
}

func (m *MockDestinationSearchRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDestinationSearchRepository) Index(ctx context.Context, destination *entities.Destination) error {
	args := m.Called(ctx, destination)
	return args.Error(0)
}

func (m *MockDestinationSearchRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDestinationSearchRepository) Search(ctx context.Context, query, country string, limit int) ([]*entities.Destination, error) {
	args := m.Called(ctx, query, country, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Destination), args.Error(1)
}

// MockSavedDestinationRepository for testing
type MockSavedDestinationRepository struct {
	mock.Mock
}

func (m *MockSavedDestinationRepository) Create(ctx context.Context, saved *entities.SavedDestination) error {
	args := m.Called(ctx, saved)
	return args.Error(0)
}

func (m *MockSavedDestinationRepository) Exists(ctx context.Context, userID, destinationID string) (bool, error) {
	args := m.Called(ctx, userID, destinationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedDestinationRepository) ListByUser(ctx context.Context, userID string) ([]*entities.SavedDestination, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SavedDestination), args.Error(1)
}

func (m *MockSavedDestinationRepository) DeleteByUserAndDestination(ctx context.Context, userID, destinationID string) error {
	args := m.Called(ctx, userID, destinationID)
	return args.Error(0)
}

// MockUserProfileRepository for testing
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) GetByID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockAssistantProvider for testing
type MockAssistantProvider struct {
	mock.Mock
}

func (m *MockAssistantProvider) Chat(ctx context.Context, req *entities.AssistantContext) (*entities.AssistantReply, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AssistantReply), args.Error(1)
}

// MockCacheProvider is an in-memory cache for testing
type MockCacheProvider struct {
	mu      sync.RWMutex
	data    map[string][]byte
	deleted []string
}

func NewMockCacheProvider() *MockCacheProvider {
	return &MockCacheProvider{
		data:    make(map[string][]byte),
		deleted: make([]string, 0),
	}
}

func (m *MockCacheProvider) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (m *MockCacheProvider) Set(_ context.Context, key string, value []byte, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheProvider) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.deleted = append(m.deleted, key)
	return nil
}

// DeletePattern removes only the keys the glob matches, the way a Redis
// SCAN with MATCH would. A `*` crosses any characters, slashes included.
func (m *MockCacheProvider) DeletePattern(_ context.Context, pattern string) error {
	parts := strings.Split(pattern, "*")
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	matcher, err := regexp.Compile("^" + strings.Join(parts, ".*") + "$")
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if matcher.MatchString(key) {
			delete(m.data, key)
			m.deleted = append(m.deleted, key)
		}
	}
	return nil
}

func (m *MockCacheProvider) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

// Keys reports the keys currently held
func (m *MockCacheProvider) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for key := range m.data {
		out = append(out, key)
	}
	return out
}

// DeletedKeys reports every key removed through Delete or DeletePattern
func (m *MockCacheProvider) DeletedKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.deleted))
	copy(out, m.deleted)
	return out
}

// MockEventBus is an in-process event bus for testing
type MockEventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan *entities.ChangeEvent
	published   []*entities.ChangeEvent
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscribers: make(map[string][]chan *entities.ChangeEvent),
	}
}

func (m *MockEventBus) Publish(_ context.Context, channel string, event *entities.ChangeEvent) error {
	m.mu.Lock()
	m.published = append(m.published, event)
	subscribers := m.subscribers[channel]
	m.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber <- event
	}
	return nil
}

func (m *MockEventBus) Subscribe(_ context.Context, channel string) (<-chan *entities.ChangeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.ChangeEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *MockEventBus) Unsubscribe(_ context.Context, channel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subscribers[channel] {
		close(ch)
	}
	delete(m.subscribers, channel)
	return nil
}

func (m *MockEventBus) Close() error { return nil }

func (m *MockEventBus) Published() []*entities.ChangeEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entities.ChangeEvent, len(m.published))
	copy(out, m.published)
	return out
}
