package board

import "snapdev-task/internal/models"

// EventKind names a board change
type EventKind string

const (
	EventLoaded    EventKind = "board_loaded"
	EventCreated   EventKind = "task_created"
	EventUpdated   EventKind = "task_updated"
	EventDeleted   EventKind = "task_deleted"
	EventMoved     EventKind = "task_moved"
	EventReordered EventKind = "task_reordered"
	EventSaved     EventKind = "board_saved"
)

// Event describes one change. Task is nil for board-wide events.
type Event struct {
	Kind  EventKind       `json:"type"`
	Task  *models.Task    `json:"task,omitempty"`
	From  models.ColumnID `json:"from,omitempty"`
	To    models.ColumnID `json:"to,omitempty"`
	Index int             `json:"index,omitempty"`
}

// Listener receives board events synchronously, on the caller's goroutine
type Listener func(Event)

type listeners struct {
	next int
	fns  map[int]Listener
}

func (l *listeners) add(fn Listener) func() {
	if l.fns == nil {
		l.fns = make(map[int]Listener)
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listeners) emit(evt Event) {
	for _, fn := range l.fns {
		fn(evt)
	}
}
