package pathsearch

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest matches every ValidationError.
var ErrInvalidRequest = errors.New("invalid request")

// ValidationCode identifies which request check failed.
type ValidationCode string

const (
	CodeTooManyNodes    ValidationCode = "too_many_nodes"
	CodeTooManyEdges    ValidationCode = "too_many_edges"
	CodeNoNodes         ValidationCode = "no_nodes"
	CodeNoEdges         ValidationCode = "no_edges"
	CodeNoEndpoints     ValidationCode = "no_endpoints"
	CodeMissingData     ValidationCode = "missing_data"
	CodeInvalidEndpoint ValidationCode = "invalid_endpoint"
)

// ValidationError is a request rejected before any search ran.
type ValidationError struct {
	Code ValidationCode
	Msg  string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// Brief is the terse wording used by the step-collecting endpoint.
func (e *ValidationError) Brief() string {
	switch e.Code {
	case CodeNoNodes, CodeNoEdges, CodeNoEndpoints, CodeMissingData:
		return "Missing required data"
	case CodeInvalidEndpoint:
		return "Invalid source or destination"
	default:
		return e.Msg
	}
}

func tooMany(code ValidationCode, what string, limit int) *ValidationError {
	return &ValidationError{
		Code: code,
		Msg: fmt.Sprintf("Too many %s! Maximum allowed is %d %s for optimal performance. Please reduce the number of %s.",
			what, limit, what, what),
	}
}
