package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/items-api/internal/apperr"
	"github.com/tuanvumaihuynh/items-api/internal/event"
	"github.com/tuanvumaihuynh/items-api/internal/repository"
	"github.com/tuanvumaihuynh/items-api/internal/repository/repositorytest"
	"github.com/tuanvumaihuynh/items-api/internal/service"
	"github.com/tuanvumaihuynh/items-api/pkg/ptr"
)

type recordingPublisher struct {
	events []event.ItemEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev event.ItemEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func newTestService(repo repository.ItemRepository, publisher event.Publisher) service.ItemService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewItemService(logger, repo, publisher)
}

func TestItemService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create then get identical item", func(t *testing.T) {
		publisher := &recordingPublisher{}
		svc := newTestService(repositorytest.NewItemRepository(), publisher)

		created, err := svc.CreateItem(ctx, service.CreateItemParams{Name: "Pen", Description: "Blue", Price: 1.25})
		require.NoError(t, err)

		got, err := svc.GetItem(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, event.TopicItemCreated, publisher.events[0].Topic)
		assert.Equal(t, created.ID, publisher.events[0].ItemID)
	})

	t.Run("Should reject missing name", func(t *testing.T) {
		publisher := &recordingPublisher{}
		svc := newTestService(repositorytest.NewItemRepository(), publisher)

		_, err := svc.CreateItem(ctx, service.CreateItemParams{})
		assert.ErrorIs(t, err, apperr.NameRequiredErr)
		assert.Empty(t, publisher.events)
	})

	t.Run("Should keep unset fields on partial update", func(t *testing.T) {
		svc := newTestService(repositorytest.NewItemRepository(), event.NopPublisher{})
		created, err := svc.CreateItem(ctx, service.CreateItemParams{Name: "Lamp", Description: "Desk", Price: 30})
		require.NoError(t, err)

		updated, err := svc.UpdateItem(ctx, created.ID, service.UpdateItemParams{Price: ptr.New(20.0)})
		require.NoError(t, err)
		assert.Equal(t, "Lamp", updated.Name)
		assert.Equal(t, "Desk", updated.Description)
		assert.Equal(t, 20.0, updated.Price)
	})

	t.Run("Should clear description", func(t *testing.T) {
		svc := newTestService(repositorytest.NewItemRepository(), event.NopPublisher{})
		created, err := svc.CreateItem(ctx, service.CreateItemParams{Name: "Lamp", Description: "Desk"})
		require.NoError(t, err)

		updated, err := svc.UpdateItem(ctx, created.ID, service.UpdateItemParams{ClearDescription: true})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Description)
		assert.Equal(t, "Lamp", updated.Name)
	})

	t.Run("Should reject empty update", func(t *testing.T) {
		svc := newTestService(repositorytest.NewItemRepository(), event.NopPublisher{})

		_, err := svc.UpdateItem(ctx, 1, service.UpdateItemParams{})
		assert.ErrorIs(t, err, apperr.NoDataErr)
	})

	t.Run("Should reject clearing the name", func(t *testing.T) {
		svc := newTestService(repositorytest.NewItemRepository(), event.NopPublisher{})
		created, err := svc.CreateItem(ctx, service.CreateItemParams{Name: "Lamp"})
		require.NoError(t, err)

		_, err = svc.UpdateItem(ctx, created.ID, service.UpdateItemParams{Name: ptr.New("")})
		assert.ErrorIs(t, err, apperr.NameRequiredErr)
	})

	t.Run("Should translate not found", func(t *testing.T) {
		svc := newTestService(repositorytest.NewItemRepository(), event.NopPublisher{})

		_, err := svc.GetItem(ctx, 42)
		assert.ErrorIs(t, err, apperr.ItemNotFoundErr)
		assert.ErrorIs(t, err, repository.ErrItemNotFound)

		_, err = svc.UpdateItem(ctx, 42, service.UpdateItemParams{Name: ptr.New("x")})
		assert.ErrorIs(t, err, apperr.ItemNotFoundErr)

		err = svc.DeleteItem(ctx, 42)
		assert.ErrorIs(t, err, apperr.ItemNotFoundErr)
	})

	t.Run("Should delete then report not found", func(t *testing.T) {
		publisher := &recordingPublisher{}
		svc := newTestService(repositorytest.NewItemRepository(), publisher)
		created, err := svc.CreateItem(ctx, service.CreateItemParams{Name: "Mug"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteItem(ctx, created.ID))

		_, err = svc.GetItem(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ItemNotFoundErr)

		require.Len(t, publisher.events, 2)
		assert.Equal(t, event.TopicItemDeleted, publisher.events[1].Topic)
		assert.Nil(t, publisher.events[1].Item)
	})

	t.Run("Should not fail when publishing fails", func(t *testing.T) {
		publisher := &recordingPublisher{err: errors.New("broker down")}
		svc := newTestService(repositorytest.NewItemRepository(), publisher)

		_, err := svc.CreateItem(ctx, service.CreateItemParams{Name: "Pen"})
		assert.NoError(t, err)
		assert.Len(t, publisher.events, 1)
	})

	t.Run("Should pass through unexpected errors", func(t *testing.T) {
		repo := repositorytest.NewItemRepository()
		repo.Err = errors.New("connection refused")
		svc := newTestService(repo, event.NopPublisher{})

		_, err := svc.ListItems(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NotErrorIs(t, err, apperr.ItemNotFoundErr)
	})
}
