package search

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
)

// Sentinel errors for the outcome categories of a solve call.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrNoPath           = errors.New("no path found")
	ErrInternal         = errors.New("internal search error")
)

// MalformedInputError reports a graph that cannot be built: an edge naming an
// unknown node, an unparsable weight, or duplicate nodes.
type MalformedInputError struct {
	Msg string
}

func (e *MalformedInputError) Error() string { return e.Msg }

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

func malformed(format string, args ...any) error {
	return &MalformedInputError{Msg: fmt.Sprintf(format, args...)}
}

// ResultError converts an unsuccessful Result back into an error that
// matches one of the sentinels with errors.Is. It returns nil on success.
func ResultError(r apptype.Result) error {
	if r.Success {
		return nil
	}
	switch r.ErrorKind {
	case apptype.ErrorKindMalformedInput:
		return &MalformedInputError{Msg: r.Error}
	case apptype.ErrorKindUnknownAlgorithm:
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, r.Algorithm)
	case apptype.ErrorKindNoPath:
		return fmt.Errorf("%w: %s", ErrNoPath, r.Message)
	default:
		return fmt.Errorf("%w: %s", ErrInternal, r.Message)
	}
}
