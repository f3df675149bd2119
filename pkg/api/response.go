// Package api holds the JSON request and response types of the HTTP interface.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/catalog"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/wallet"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// ErrForbidden is returned when the caller may not access a resource.
var ErrForbidden = errors.New("forbidden")

// Response is the error body.
type Response struct {
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

func Error(msg string, status int) Response {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return Response{
		Status: status,
		Error:  msg,
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is required", err.Field()))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be one of %s", err.Field(), err.Param()))
		case "gt", "gte", "min":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "number", "numeric":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s must be a number", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is invalid", err.Field()))
		}
	}

	return Response{
		Status: http.StatusBadRequest,
		Error:  strings.Join(errMsgs, ", "),
	}
}

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	var oddsChanged *betting.OddsChangedError
	switch {
	case errors.As(err, &oddsChanged),
		errors.Is(err, betting.ErrRequestInProgress),
		errors.Is(err, storage.ErrAccountExists),
		errors.Is(err, catalog.ErrEventFinished):
		return http.StatusConflict
	case errors.Is(err, storage.ErrAccountNotFound),
		errors.Is(err, storage.ErrEventNotFound),
		errors.Is(err, storage.ErrWagerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrInsufficientFunds),
		errors.Is(err, storage.ErrEventClosed),
		errors.Is(err, storage.ErrAlreadySettled),
		errors.Is(err, betting.ErrInvalidStake),
		errors.Is(err, betting.ErrInvalidOdds),
		errors.Is(err, betting.ErrInvalidSelection),
		errors.Is(err, betting.ErrInvalidStatus),
		errors.Is(err, betting.ErrInvalidResult),
		errors.Is(err, betting.ErrInvalidAmount),
		errors.Is(err, betting.ErrEventNotFinished),
		errors.Is(err, betting.ErrMissingResult),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, catalog.ErrInvalidEvent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RenderError writes err with the status StatusFor picks. Server errors are reported
// with fallback instead of the underlying message.
func RenderError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = fallback
	}
	render.Status(r, status)
	render.JSON(w, r, Error(msg, status))
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// List is the envelope of every paginated response.
type List[T any] struct {
	Count      int        `json:"count"`
	Total      int        `json:"total"`
	Pagination Pagination `json:"pagination"`
	Data       []T        `json:"data"`
}

// NewList wraps one page of items.
func NewList[T any](items []T, total int, page storage.Page) List[T] {
	pages := 0
	if page.Limit > 0 {
		pages = (total + page.Limit - 1) / page.Limit
	}
	if items == nil {
		items = []T{}
	}
	return List[T]{
		Count:      len(items),
		Total:      total,
		Pagination: Pagination{Page: page.Number, Limit: page.Limit, Pages: pages},
		Data:       items,
	}
}

// Data is the envelope of single-item responses.
type Data[T any] struct {
	Data T `json:"data"`
}
