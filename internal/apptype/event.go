package apptype

// EventType names one kind of search lifecycle event.
type EventType string

const (
	EventStart           EventType = "start"
	EventExploring       EventType = "exploring"
	EventAddedToFrontier EventType = "added_to_frontier"
	EventFound           EventType = "found"
	EventNoPath          EventType = "no_path"
	EventLocalOptimum    EventType = "local_optimum"
	EventMoveToNeighbor  EventType = "move_to_neighbor"
	EventFinalPath       EventType = "final_path"
)

// Terminal reports whether the type ends a strategy run.
func (t EventType) Terminal() bool {
	return t == EventFound || t == EventNoPath
}

// Event is one entry of a search trace. Optional numeric fields are pointers
// so that a legitimate zero (step 0, cost 0) is still serialized.
type Event struct {
	Type          EventType `json:"type"`
	Algorithm     string    `json:"algorithm"`
	Node          string    `json:"node,omitempty"`
	Parent        string    `json:"parent,omitempty"`
	Step          *int      `json:"step,omitempty"`
	FrontierSize  *int      `json:"frontier_size,omitempty"`
	Cost          *float64  `json:"cost,omitempty"`
	GCost         *float64  `json:"g_cost,omitempty"`
	HCost         *float64  `json:"h_cost,omitempty"`
	FCost         *float64  `json:"f_cost,omitempty"`
	Heuristic     *float64  `json:"heuristic,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Source        string    `json:"source,omitempty"`
	Destination   string    `json:"destination,omitempty"`
	Path          []string  `json:"path,omitempty"`
	ExecutionTime *float64  `json:"execution_time,omitempty"`
}

// StepValue returns the step or -1 when the event carries none.
func (e Event) StepValue() int {
	if e.Step == nil {
		return -1
	}
	return *e.Step
}

// IntPtr and FloatPtr build the optional fields of an Event.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
