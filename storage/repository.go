// Package storage persists the full enrollment record set. Every backend
// loads and saves the whole set as one unit.
package storage

import (
	"context"
	"internhub/models"
	"sync"
)

// Repository is the durable boundary of the enrollment store.
type Repository interface {
	LoadAll(ctx context.Context) ([]models.Enrollment, error)
	SaveAll(ctx context.Context, enrollments []models.Enrollment) error
}

// MemoryRepository keeps the record set in memory. It is used when no
// durable backend is wanted, e.g. in tests.
type MemoryRepository struct {
	mu   sync.Mutex
	data []models.Enrollment
}

// NewMemoryRepository returns a repository seeded with initial records.
func NewMemoryRepository(initial ...models.Enrollment) *MemoryRepository {
	return &MemoryRepository{data: cloneAll(initial)}
}

func (m *MemoryRepository) LoadAll(ctx context.Context) ([]models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.data), nil
}

func (m *MemoryRepository) SaveAll(ctx context.Context, enrollments []models.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = cloneAll(enrollments)
	return nil
}

func cloneAll(in []models.Enrollment) []models.Enrollment {
	out := make([]models.Enrollment, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
