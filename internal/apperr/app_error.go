package apperr

import "github.com/tuanvumaihuynh/items-api/pkg/zerror"

const (
	ValidationErrorCode  = "VALIDATION_FAILED"
	InvalidBodyErrorCode = "INVALID_BODY"
	ItemNotFoundCode     = "ITEM_NOT_FOUND"
	NameRequiredCode     = "NAME_REQUIRED"
	NoDataCode           = "NO_DATA"
	RouteNotFoundCode    = "ROUTE_NOT_FOUND"
)

var (
	ValidationErr    = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	RouteNotFoundErr = zerror.NewNotFound(RouteNotFoundCode, "Not found")

	ItemNotFoundErr = zerror.NewNotFound(ItemNotFoundCode, "Item not found")
	NameRequiredErr = zerror.NewBadRequest(NameRequiredCode, "Name is required")
	NoDataErr       = zerror.NewBadRequest(NoDataCode, "No data provided")
)
