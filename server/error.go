package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goccy/tablenum/internal/logger"
	"github.com/goccy/tablenum/internal/tabledata"
)

type ServerError struct {
	Status    int         `json:"-"`
	Reason    ErrorReason `json:"reason"`
	Location  string      `json:"location,omitempty"`
	DebugInfo string      `json:"debugInfo,omitempty"`
	Message   string      `json:"message"`
}

type ResponseError struct {
	Error *ErrorFormat `json:"error"`
}

type ErrorFormat struct {
	Errors  []*ServerError `json:"errors"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
}

func (e *ServerError) Response() []byte {
	b, _ := json.Marshal(&ResponseError{
		Error: &ErrorFormat{
			Errors:  []*ServerError{e},
			Code:    e.Status,
			Message: e.Message,
		},
	})
	return b
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

type ErrorReason string

const (
	Duplicate     ErrorReason = "duplicate"
	InternalError ErrorReason = "internalError"
	Invalid       ErrorReason = "invalid"
	NotFound      ErrorReason = "notFound"
)

func errDuplicate(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusConflict,
		Reason:  Duplicate,
		Message: msg,
	}
}

func errInternalError(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusInternalServerError,
		Reason:  InternalError,
		Message: msg,
	}
}

func errInvalid(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  Invalid,
		Message: msg,
	}
}

func errNotFound(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusNotFound,
		Reason:  NotFound,
		Message: msg,
	}
}

// errFromTableData maps repository failures to their HTTP representation.
func errFromTableData(err error) *ServerError {
	var tableErr *tabledata.TableDataError
	if !errors.As(err, &tableErr) {
		return errInternalError(err.Error())
	}
	switch tableErr.ErrorReason {
	case tabledata.NotFound:
		return errNotFound(tableErr.Error())
	case tabledata.Duplicate:
		return errDuplicate(tableErr.Error())
	case tabledata.InvalidCell:
		return errInvalid(tableErr.Error())
	}
	return errInternalError(tableErr.Error())
}

func errorResponse(ctx context.Context, w http.ResponseWriter, e *ServerError) {
	if e.Status >= http.StatusInternalServerError {
		logger.Logger(ctx).Error(e.Message, zap.String("reason", string(e.Reason)))
	} else {
		logger.Logger(ctx).Debug(e.Message, zap.String("reason", string(e.Reason)))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Response())
}
