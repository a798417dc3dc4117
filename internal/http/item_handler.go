package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/items-api/internal/http/request"
	"github.com/tuanvumaihuynh/items-api/internal/service"
	"github.com/tuanvumaihuynh/items-api/pkg/ptr"
	"github.com/tuanvumaihuynh/items-api/pkg/validator"
)

type itemHandler struct {
	logger    *slog.Logger
	itemSvc   service.ItemService
	validator validator.Validator
}

func newItemHandler(logger *slog.Logger, itemSvc service.ItemService, v validator.Validator) *itemHandler {
	return &itemHandler{
		logger:    logger,
		itemSvc:   itemSvc,
		validator: v,
	}
}

func (h *itemHandler) ListItems(w http.ResponseWriter, r *http.Request) error {
	items, err := h.itemSvc.ListItems(r.Context())
	if err != nil {
		return fmt.Errorf("item service list items: %w", err)
	}

	res := ListItemsResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, item := range items {
		res.Items = append(res.Items, toItemResponse(item))
	}

	writeJSON(w, r, h.logger, http.StatusOK, res)
	return nil
}

func (h *itemHandler) GetItem(w http.ResponseWriter, r *http.Request) error {
	id, err := request.PathParam[int64](r, "id")
	if err != nil {
		return err
	}

	item, err := h.itemSvc.GetItem(r.Context(), id)
	if err != nil {
		return fmt.Errorf("item service get item: %w", err)
	}

	writeJSON(w, r, h.logger, http.StatusOK, ItemEnvelope{Item: toItemResponse(item)})
	return nil
}

func (h *itemHandler) CreateItem(w http.ResponseWriter, r *http.Request) error {
	var body CreateItemRequest
	if err := request.DecodeJSON(r, &body); err != nil {
		return err
	}
	if err := h.validator.Validate(body); err != nil {
		return err
	}

	item, err := h.itemSvc.CreateItem(r.Context(), service.CreateItemParams{
		Name:        body.Name,
		Description: ptr.ValueOr(body.Description, ""),
		Price:       ptr.ValueOr(body.Price, 0),
	})
	if err != nil {
		return fmt.Errorf("item service create item: %w", err)
	}

	writeJSON(w, r, h.logger, http.StatusCreated, ItemEnvelope{
		Message: "Item added successfully",
		Item:    toItemResponse(item),
	})
	return nil
}

func (h *itemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) error {
	id, err := request.PathParam[int64](r, "id")
	if err != nil {
		return err
	}

	var body UpdateItemRequest
	if err := request.DecodeJSON(r, &body); err != nil {
		return err
	}
	if err := h.validator.Validate(body); err != nil {
		return err
	}

	item, err := h.itemSvc.UpdateItem(r.Context(), id, service.UpdateItemParams{
		Name:             body.Name,
		Description:      body.Description.Ptr(),
		ClearDescription: body.Description.IsNull(),
		Price:            body.Price,
	})
	if err != nil {
		return fmt.Errorf("item service update item: %w", err)
	}

	writeJSON(w, r, h.logger, http.StatusOK, ItemEnvelope{
		Message: "Item updated successfully",
		Item:    toItemResponse(item),
	})
	return nil
}

func (h *itemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) error {
	id, err := request.PathParam[int64](r, "id")
	if err != nil {
		return err
	}

	if err := h.itemSvc.DeleteItem(r.Context(), id); err != nil {
		return fmt.Errorf("item service delete item: %w", err)
	}

	writeJSON(w, r, h.logger, http.StatusOK, MessageResponse{Message: "Item deleted successfully"})
	return nil
}
