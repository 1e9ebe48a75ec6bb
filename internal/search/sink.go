package search

import (
	"context"
	"sync"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
)

// Sink receives search events in emission order. Strategies push into it
// synchronously and know nothing about how events are delivered.
type Sink interface {
	Push(ev apptype.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev apptype.Event)

func (f SinkFunc) Push(ev apptype.Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(apptype.Event) {})

// CollectingSink keeps every event in memory for blocking callers.
type CollectingSink struct {
	Events []apptype.Event
}

func (c *CollectingSink) Push(ev apptype.Event) { c.Events = append(c.Events, ev) }

// ChannelSink forwards events to a channel drained by another goroutine.
// Once ctx is done, Push drops events instead of blocking so the producing
// solve can run to completion after the consumer went away.
type ChannelSink struct {
	ctx    context.Context
	ch     chan apptype.Event
	once   sync.Once
	mu     sync.Mutex
	closed bool
}

func NewChannelSink(ctx context.Context, buffer int) *ChannelSink {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelSink{ctx: ctx, ch: make(chan apptype.Event, buffer)}
}

func (s *ChannelSink) Push(ev apptype.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ctx.Err() != nil {
		return
	}
	select {
	case s.ch <- ev:
	case <-s.ctx.Done():
	}
}

// Events is the receive side; it is closed by Close.
func (s *ChannelSink) Events() <-chan apptype.Event { return s.ch }

// Close marks the end of the stream. It is safe to call more than once.
func (s *ChannelSink) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
}

// runTracker sits between a strategy and the caller's sink. It counts the
// distinct states that were explored and remembers the terminal reason.
type runTracker struct {
	next     Sink
	explored map[string]struct{}
	reason   string
}

func newRunTracker(next Sink) *runTracker {
	return &runTracker{next: next, explored: make(map[string]struct{})}
}

func (r *runTracker) Push(ev apptype.Event) {
	switch ev.Type {
	case apptype.EventExploring:
		r.explored[ev.Node] = struct{}{}
	case apptype.EventNoPath:
		r.reason = ev.Reason
	}
	r.next.Push(ev)
}

// emitter stamps every event with the strategy tag.
type emitter struct {
	sink Sink
	tag  string
}

func (e emitter) emit(ev apptype.Event) {
	ev.Algorithm = e.tag
	e.sink.Push(ev)
}

func (e emitter) exploring(n Node, step int, frontier int, extra func(*apptype.Event)) {
	ev := apptype.Event{
		Type: apptype.EventExploring,
		Node: n.State(),
		Step: apptype.IntPtr(step),
		Cost: apptype.FloatPtr(n.Cost()),
	}
	if frontier >= 0 {
		ev.FrontierSize = apptype.IntPtr(frontier)
	}
	if p := n.Parent(); p.Valid() {
		ev.Parent = p.State()
	}
	if extra != nil {
		extra(&ev)
	}
	e.emit(ev)
}

func (e emitter) found(n Node, step int, extra func(*apptype.Event)) {
	ev := apptype.Event{
		Type: apptype.EventFound,
		Node: n.State(),
		Step: apptype.IntPtr(step),
		Cost: apptype.FloatPtr(n.Cost()),
	}
	if p := n.Parent(); p.Valid() {
		ev.Parent = p.State()
	}
	if extra != nil {
		extra(&ev)
	}
	e.emit(ev)
}

func (e emitter) noPath(step int, reason string) {
	e.emit(apptype.Event{
		Type:   apptype.EventNoPath,
		Step:   apptype.IntPtr(step),
		Reason: reason,
	})
}

func (e emitter) added(child Node, step int, extra func(*apptype.Event)) {
	ev := apptype.Event{
		Type:   apptype.EventAddedToFrontier,
		Node:   child.State(),
		Parent: child.Parent().State(),
		Step:   apptype.IntPtr(step),
		Cost:   apptype.FloatPtr(child.Cost()),
	}
	if extra != nil {
		extra(&ev)
	}
	e.emit(ev)
}
