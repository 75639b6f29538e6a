package repository

import (
	"context"
	"fmt"
	"sync"

	repo "github.com/zensend/zensend-go/internal/domain/interfaces/repository"
)

type collection[T any] struct {
	ids     []string
	records map[string]T
}

// MemoryRepository keeps records per collection in insertion order.
type MemoryRepository[T any] struct {
	mu          sync.RWMutex
	collections map[string]*collection[T]
}

func NewMemoryRepository[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{collections: make(map[string]*collection[T])}
}

func (r *MemoryRepository[T]) collection(name string) *collection[T] {
	c, ok := r.collections[name]
	if !ok {
		c = &collection[T]{records: make(map[string]T)}
		r.collections[name] = c
	}
	return c
}

func (r *MemoryRepository[T]) Create(ctx context.Context, collectionName string, id string, entity T) (T, error) {
	if err := ctx.Err(); err != nil {
		return entity, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	if _, exists := c.records[id]; exists {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrDuplicate)
	}
	c.ids = append(c.ids, id)
	c.records[id] = entity
	return entity, nil
}

// Update replaces the record, creating it when missing.
func (r *MemoryRepository[T]) Update(ctx context.Context, collectionName string, id string, entity T) (T, error) {
	if err := ctx.Err(); err != nil {
		return entity, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	if _, exists := c.records[id]; !exists {
		c.ids = append(c.ids, id)
	}
	c.records[id] = entity
	return entity, nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.collection(collectionName)
	if _, exists := c.records[id]; !exists {
		return fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	delete(c.records, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository[T]) FindByID(ctx context.Context, collectionName string, id string) (T, error) {
	var entity T
	if err := ctx.Err(); err != nil {
		return entity, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[collectionName]
	if !ok {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	entity, ok = c.records[id]
	if !ok {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	return entity, nil
}

func (r *MemoryRepository[T]) FindAll(ctx context.Context, collectionName string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[collectionName]
	if !ok {
		return []T{}, nil
	}
	entities := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		entities = append(entities, c.records[id])
	}
	return entities, nil
}
