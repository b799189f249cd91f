package tabledata

import "fmt"

type TableDataError struct {
	Cause       error
	Message     string
	ErrorReason TableDataErrorReason
}

type TableDataErrorReason string

func (e *TableDataError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.ErrorReason)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

func (e *TableDataError) Unwrap() error {
	return e.Cause
}

func Error(errorReason TableDataErrorReason) *TableDataError {
	return &TableDataError{
		ErrorReason: errorReason,
	}
}

func ErrorWithMessage(errorReason TableDataErrorReason, message string) *TableDataError {
	return &TableDataError{
		Message:     message,
		ErrorReason: errorReason,
	}
}

func ErrorWithCause(errorReason TableDataErrorReason, message string, cause error) *TableDataError {
	return &TableDataError{
		Cause:       cause,
		Message:     message,
		ErrorReason: errorReason,
	}
}

const (
	NotFound    TableDataErrorReason = "notFound"
	Duplicate   TableDataErrorReason = "duplicate"
	InvalidCell TableDataErrorReason = "invalidCell"
	Unknown     TableDataErrorReason = "unknown"
)
