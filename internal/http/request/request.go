package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// MaxBodyBytes bounds the request bodies DecodeJSON reads.
const MaxBodyBytes = 1 << 20

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type InvalidBodyError struct {
	Err error
}

func (e *InvalidBodyError) Error() string {
	return fmt.Sprintf("Invalid request body: %s", e.Err.Error())
}

func (e *InvalidBodyError) Unwrap() error {
	return e.Err
}

// PathParam binds the chi URL parameter name into a value of type T.
func PathParam[T any](r *http.Request, name string) (T, error) {
	var v T
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return v, &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return v, nil
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst untouched.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return &InvalidBodyError{Err: err}
	}
	if len(body) > MaxBodyBytes {
		return &InvalidBodyError{Err: fmt.Errorf("body exceeds %d bytes", MaxBodyBytes)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &InvalidBodyError{Err: err}
	}
	return nil
}
