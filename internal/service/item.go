package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/items-api/internal/apperr"
	"github.com/tuanvumaihuynh/items-api/internal/event"
	"github.com/tuanvumaihuynh/items-api/internal/model"
	"github.com/tuanvumaihuynh/items-api/internal/repository"
)

type CreateItemParams struct {
	Name        string
	Description string
	Price       float64
}

// UpdateItemParams holds the fields to change. ClearDescription resets the
// description to empty and takes precedence over Description.
type UpdateItemParams struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Price            *float64
}

func (p UpdateItemParams) isEmpty() bool {
	return p.Name == nil && p.Description == nil && !p.ClearDescription && p.Price == nil
}

type ItemService interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	CreateItem(ctx context.Context, params CreateItemParams) (model.Item, error)
	UpdateItem(ctx context.Context, id int64, params UpdateItemParams) (model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemService struct {
	logger    *slog.Logger
	itemRepo  repository.ItemRepository
	publisher event.Publisher
}

func NewItemService(
	logger *slog.Logger,
	itemRepo repository.ItemRepository,
	publisher event.Publisher,
) ItemService {
	return &itemService{
		logger:    logger.With(slog.String("service", "item")),
		itemRepo:  itemRepo,
		publisher: publisher,
	}
}

func (s *itemService) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("item repository list items: %w", err)
	}

	return items, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (model.Item, error) {
	item, err := s.itemRepo.GetItem(ctx, id)
	if err != nil {
		return model.Item{}, fmt.Errorf("item repository get item: %w", translateErr(err))
	}

	return item, nil
}

func (s *itemService) CreateItem(ctx context.Context, params CreateItemParams) (model.Item, error) {
	if params.Name == "" {
		return model.Item{}, apperr.NameRequiredErr
	}

	item, err := s.itemRepo.CreateItem(ctx, repository.CreateItemParams{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("item repository create item: %w", err)
	}

	s.publish(ctx, event.NewItemCreatedEvent(item))

	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, params UpdateItemParams) (model.Item, error) {
	if params.isEmpty() {
		return model.Item{}, apperr.NoDataErr
	}
	if params.Name != nil && *params.Name == "" {
		return model.Item{}, apperr.NameRequiredErr
	}

	item, err := s.itemRepo.UpdateItem(ctx, id, repository.UpdateItemParams{
		Name:             params.Name,
		Description:      params.Description,
		ClearDescription: params.ClearDescription,
		Price:            params.Price,
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("item repository update item: %w", translateErr(err))
	}

	s.publish(ctx, event.NewItemUpdatedEvent(item))

	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.itemRepo.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("item repository delete item: %w", translateErr(err))
	}

	s.publish(ctx, event.NewItemDeletedEvent(id))

	return nil
}

// publish never fails the caller; the row change is already committed.
func (s *itemService) publish(ctx context.Context, ev event.ItemEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "error publishing item event",
			slog.String("topic", ev.Topic),
			slog.Int64("item_id", ev.ItemID),
			slog.Any("error", err),
		)
	}
}

func translateErr(err error) error {
	if errors.Is(err, repository.ErrItemNotFound) {
		return apperr.ItemNotFoundErr.WrapParent(err)
	}
	return err
}
