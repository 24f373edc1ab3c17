package vault

import (
	"context"

	"github.com/tendermint/tendermint/libs/common"
)

// TagEventKey is the tag key under which every emitted event
// name is exported.
const TagEventKey = "event"

// Event is a notification about a single state transition. Attributes
// keep the order in which they were declared.
type Event struct {
	Name  string
	Attrs []EventAttr
}

// EventAttr is a single key value pair carried by an Event.
type EventAttr struct {
	Key   string
	Value string
}

// NewEvent returns an event with the given name. Attributes are
// passed as key value pairs and an odd trailing key is dropped.
func NewEvent(name string, kv ...string) Event {
	ev := Event{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		ev.Attrs = append(ev.Attrs, EventAttr{Key: kv[i], Value: kv[i+1]})
	}
	return ev
}

// Attr returns the value of the first attribute with the given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// EventLog collects events emitted while processing a single request.
// It is not safe for concurrent use.
type EventLog struct {
	events []Event
}

// Append adds events at the end of the log.
func (l *EventLog) Append(events ...Event) {
	l.events = append(l.events, events...)
}

// Events returns all collected events in emission order.
func (l *EventLog) Events() []Event {
	return l.events
}

// Names returns the names of all collected events in emission order.
func (l *EventLog) Names() []string {
	names := make([]string, len(l.events))
	for i, e := range l.events {
		names[i] = e.Name
	}
	return names
}

// Tags flattens the log into ABCI tags. Each event produces an
// "event" tag followed by one "<name>.<key>" tag per attribute.
func (l *EventLog) Tags() []common.KVPair {
	var tags []common.KVPair
	for _, e := range l.events {
		tags = append(tags, common.KVPair{Key: []byte(TagEventKey), Value: []byte(e.Name)})
		for _, a := range e.Attrs {
			tags = append(tags, common.KVPair{
				Key:   []byte(e.Name + "." + a.Key),
				Value: []byte(a.Value),
			})
		}
	}
	return tags
}

// WithEventLog attaches a fresh event log to the context. Any log set
// before is shadowed for the returned context only, so callers can
// collect events of a nested operation and decide whether to keep them.
func WithEventLog(ctx Context) (Context, *EventLog) {
	log := &EventLog{}
	return context.WithValue(ctx, contextKeyEvents, log), log
}

// GetEventLog returns the event log attached to the context.
func GetEventLog(ctx Context) (*EventLog, bool) {
	log, ok := ctx.Value(contextKeyEvents).(*EventLog)
	return log, ok
}

// Emit appends events to the log attached to the context. It is a noop
// when the context carries no log.
func Emit(ctx Context, events ...Event) {
	if log, ok := GetEventLog(ctx); ok {
		log.Append(events...)
	}
}
