package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// StoredObject is one file held by MockObjectStore
type StoredObject struct {
	Body        []byte
	ContentType string
}

// MockObjectStore keeps objects in memory
type MockObjectStore struct {
	mu      sync.RWMutex
	objects map[string]StoredObject
	PutErr  error
}

// NewMockObjectStore creates an empty in-memory store
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{objects: make(map[string]StoredObject)}
}

func (m *MockObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	m.mu.Lock()
	m.objects[key] = StoredObject{Body: content, ContentType: contentType}
	m.mu.Unlock()
	return nil
}

// PresignGet returns a fake link for stored keys and an error for unknown ones
func (m *MockObjectStore) PresignGet(ctx context.Context, key string) (string, error) {
	if !m.Has(key) {
		return "", fmt.Errorf("object %s not found", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.eu-west-2.amazonaws.com/%s?X-Amz-Expires=%d", key, int(PresignExpiry.Seconds())), nil
}

func (m *MockObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.Has(key), nil
}

// Has reports whether key was stored
func (m *MockObjectStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// Objects returns a copy of everything stored
func (m *MockObjectStore) Objects() map[string]StoredObject {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]StoredObject, len(m.objects))
	for k, v := range m.objects {
		out[k] = v
	}
	return out
}
