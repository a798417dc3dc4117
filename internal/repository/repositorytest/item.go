// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/items-api/internal/model"
	"github.com/tuanvumaihuynh/items-api/internal/repository"
)

var _ repository.ItemRepository = (*ItemRepository)(nil)

// ItemRepository keeps items in a map and hands out sequential ids.
// Err, when set, is returned by every method.
type ItemRepository struct {
	mu     sync.Mutex
	items  map[int64]model.Item
	nextID int64

	Err error
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: map[int64]model.Item{}, nextID: 1}
}

func (r *ItemRepository) ListItems(context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *ItemRepository) GetItem(_ context.Context, id int64) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return model.Item{}, r.Err
	}

	item, ok := r.items[id]
	if !ok {
		return model.Item{}, repository.ErrItemNotFound
	}
	return item, nil
}

func (r *ItemRepository) CreateItem(_ context.Context, params repository.CreateItemParams) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return model.Item{}, r.Err
	}

	item := model.Item{
		ID:          r.nextID,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	r.items[item.ID] = item
	r.nextID++
	return item, nil
}

func (r *ItemRepository) UpdateItem(_ context.Context, id int64, params repository.UpdateItemParams) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return model.Item{}, r.Err
	}

	item, ok := r.items[id]
	if !ok {
		return model.Item{}, repository.ErrItemNotFound
	}
	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.ClearDescription {
		item.Description = ""
	}
	if params.Price != nil {
		item.Price = *params.Price
	}
	r.items[id] = item
	return item, nil
}

func (r *ItemRepository) DeleteItem(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if _, ok := r.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}
