package http

import (
	"time"

	"github.com/tuanvumaihuynh/items-api/internal/http/request"
	"github.com/tuanvumaihuynh/items-api/internal/model"
)

type CreateItemRequest struct {
	Name        string   `json:"name" validate:"max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

type UpdateItemRequest struct {
	Name        *string                  `json:"name" validate:"omitempty,max=100"`
	Description request.Nullable[string] `json:"description"`
	Price       *float64                 `json:"price"`
}

type ItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type ItemEnvelope struct {
	Message string       `json:"message,omitempty"`
	Item    ItemResponse `json:"item"`
}

type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func toItemResponse(item model.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		CreatedAt:   item.CreatedAt,
	}
}
