package event

import (
	"time"

	"github.com/tuanvumaihuynh/items-api/internal/model"
)

const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// ItemEvent describes a change to an item. Item is nil for deletions.
type ItemEvent struct {
	Topic      string      `json:"-"`
	ItemID     int64       `json:"item_id"`
	Item       *model.Item `json:"item,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewItemCreatedEvent(item model.Item) ItemEvent {
	return ItemEvent{Topic: TopicItemCreated, ItemID: item.ID, Item: &item, OccurredAt: time.Now()}
}

func NewItemUpdatedEvent(item model.Item) ItemEvent {
	return ItemEvent{Topic: TopicItemUpdated, ItemID: item.ID, Item: &item, OccurredAt: time.Now()}
}

func NewItemDeletedEvent(id int64) ItemEvent {
	return ItemEvent{Topic: TopicItemDeleted, ItemID: id, OccurredAt: time.Now()}
}
