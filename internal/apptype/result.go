package apptype

import "math"

// ErrorKind classifies an unsuccessful Result so transports can pick a status.
type ErrorKind string

const (
	ErrorKindMalformedInput   ErrorKind = "malformed_input"
	ErrorKindUnknownAlgorithm ErrorKind = "unknown_algorithm"
	ErrorKindNoPath           ErrorKind = "no_path"
	ErrorKindInternal         ErrorKind = "internal"
)

// Result is the outcome of one solve call. Cost is +Inf when no path exists;
// use Sanitized before encoding it.
type Result struct {
	Success       bool      `json:"success"`
	Path          []string  `json:"path"`
	Cost          float64   `json:"cost"`
	Algorithm     string    `json:"algorithm"`
	NodesExplored int       `json:"nodes_explored"`
	ExecutionTime float64   `json:"execution_time"`
	Message       string    `json:"message,omitempty"`
	Error         string    `json:"error,omitempty"`
	ErrorKind     ErrorKind `json:"error_kind,omitempty"`

	// Heuristic is the table an informed strategy ran with, when one was used.
	Heuristic map[string]float64 `json:"heuristic,omitempty"`
}

// Sentinels substituted for infinities when values leave the process.
const (
	PositiveInfinitySentinel = 999999
	NegativeInfinitySentinel = -999999
	floatPrecision           = 1e6
)

// CleanFloat maps NaN to 0, infinities to the sentinels and rounds
// everything else to six decimals.
func CleanFloat(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return PositiveInfinitySentinel
	case math.IsInf(v, -1):
		return NegativeInfinitySentinel
	}
	return math.Round(v*floatPrecision) / floatPrecision
}

func cleanPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return FloatPtr(CleanFloat(*p))
}

// Sanitized returns a copy that encoding/json can always encode.
func (r Result) Sanitized() Result {
	r.Cost = CleanFloat(r.Cost)
	r.ExecutionTime = CleanFloat(r.ExecutionTime)
	if r.Path == nil {
		r.Path = []string{}
	}
	if r.Heuristic != nil {
		h := make(map[string]float64, len(r.Heuristic))
		for k, v := range r.Heuristic {
			h[k] = CleanFloat(v)
		}
		r.Heuristic = h
	}
	return r
}

// Sanitized returns a copy with every float field cleaned.
func (e Event) Sanitized() Event {
	e.Cost = cleanPtr(e.Cost)
	e.GCost = cleanPtr(e.GCost)
	e.HCost = cleanPtr(e.HCost)
	e.FCost = cleanPtr(e.FCost)
	e.Heuristic = cleanPtr(e.Heuristic)
	e.ExecutionTime = cleanPtr(e.ExecutionTime)
	return e
}

// SanitizeEvents cleans a whole trace.
func SanitizeEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = ev.Sanitized()
	}
	return out
}
