// Package events delivers emitted events to observers. Observers only
// watch; they never change game state.
package events

import (
	"github.com/sirupsen/logrus"

	"github.com/nathoo/cavern/types"
)

// Observer receives every event after its effects were applied.
type Observer interface {
	Notify(types.Event)
}

// ObserverFunc adapts a plain function to an Observer.
type ObserverFunc func(types.Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e types.Event) { f(e) }

// Dispatch hands each event to every observer, in order. Single pass.
func Dispatch(events []types.Event, observers []Observer) {
	for _, event := range events {
		for _, o := range observers {
			o.Notify(event)
		}
	}
}

// LogObserver writes events to a logrus logger at debug level.
type LogObserver struct {
	Log logrus.FieldLogger
}

// Notify logs the event type with its data as fields.
func (l LogObserver) Notify(e types.Event) {
	if l.Log == nil {
		return
	}
	fields := make(logrus.Fields, len(e.Data))
	for k, v := range e.Data {
		fields[k] = v
	}
	l.Log.WithFields(fields).Debug(e.Type)
}

// Recorder keeps every event it sees. Useful for tests and replays.
type Recorder struct {
	Events []types.Event
}

// Notify appends the event.
func (r *Recorder) Notify(e types.Event) {
	r.Events = append(r.Events, e)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}
