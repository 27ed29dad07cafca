package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockRecordStore is an in-memory RecordStore for tests. It honors the same
// write-once semantics as the SQL implementation.
type MockRecordStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record

	// Optional error injection points.
	CreateErr       error
	MarkCompleteErr error
	MarkFailedErr   error
	ConfirmErr      error
}

// NewMockRecordStore creates an empty MockRecordStore.
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{
		records: make(map[uuid.UUID]*Record),
	}
}

// Create implements RecordStore.
func (m *MockRecordStore) Create(
	_ context.Context,
	operationName, handlerName, ownerName string,
) (*Record, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record := &Record{
		ID:            uuid.New(),
		OperationName: operationName,
		HandlerName:   handlerName,
		OwnerName:     ownerName,
		StartedAt:     time.Now().UTC(),
	}
	m.records[record.ID] = record
	return m.snapshot(record), nil
}

// GetByID implements RecordStore.
func (m *MockRecordStore) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return m.snapshot(record), nil
}

// MarkComplete implements RecordStore.
func (m *MockRecordStore) MarkComplete(_ context.Context, id uuid.UUID) error {
	if m.MarkCompleteErr != nil {
		return m.MarkCompleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	if record.CompletedAt == nil {
		now := time.Now().UTC()
		record.CompletedAt = &now
	}
	return nil
}

// MarkFailed implements RecordStore.
func (m *MockRecordStore) MarkFailed(_ context.Context, id uuid.UUID) error {
	if m.MarkFailedErr != nil {
		return m.MarkFailedErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	record.Failed = true
	return nil
}

// Confirm implements RecordStore.
func (m *MockRecordStore) Confirm(_ context.Context, id uuid.UUID) error {
	if m.ConfirmErr != nil {
		return m.ConfirmErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	record.Confirmed = true
	return nil
}

// snapshot copies a record so callers cannot mutate shared state.
func (m *MockRecordStore) snapshot(record *Record) *Record {
	copied := *record
	if record.CompletedAt != nil {
		completedAt := *record.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}
