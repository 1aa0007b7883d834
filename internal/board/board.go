// Package board keeps the in-memory Kanban columns consistent with the task store.
//
// A Board is not safe for concurrent use. Shells drive it from a single
// goroutine (the bubbletea update loop, or loop.Loop for the HTTP shell).
package board

import (
	"errors"
	"fmt"

	"snapdev-task/internal/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrUnknownColumn = errors.New("unknown column")
)

// TaskStore is the persistence the board needs; *store.TaskStore satisfies it
type TaskStore interface {
	LoadAll() ([]models.Task, error)
	Upsert(task models.Task) error
	Delete(id string) error
	Sync(tasks []models.Task, deletedIDs []string) error
}

// TaskForm is the data submitted by the "add task" form
type TaskForm struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
}

// TaskChanges holds the editable fields; nil means unchanged.
// Id and column cannot be changed through an edit.
type TaskChanges struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Priority    *models.TaskPriority `json:"priority"`
}

// Board owns the three columns for the lifetime of the application
type Board struct {
	store   TaskStore
	columns []*Column

	// ids whose store delete failed; retried by SaveAll
	pendingDeletes map[string]struct{}
	dirty          bool

	listeners listeners
	newID     func() string
}

// New creates a board with three empty columns. Call Initialize to load tasks.
func New(store TaskStore) *Board {
	b := &Board{
		store:          store,
		pendingDeletes: make(map[string]struct{}),
		newID:          func() string { return "task_" + uuid.NewString() },
	}
	b.resetColumns()
	return b
}

func (b *Board) resetColumns() {
	b.columns = make([]*Column, 0, len(models.Columns))
	for _, id := range models.Columns {
		b.columns = append(b.columns, newColumn(id, b.store))
	}
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it.
func (b *Board) Subscribe(fn Listener) func() {
	return b.listeners.add(fn)
}

func (b *Board) emit(evt Event) {
	b.listeners.emit(evt)
}

// Initialize loads every task from the store and distributes them by column
func (b *Board) Initialize() error {
	tasks, err := b.store.LoadAll()
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	b.resetColumns()
	// the store is the truth again; earlier failed deletes are forgotten
	b.pendingDeletes = make(map[string]struct{})
	for _, task := range tasks {
		col := b.Column(task.Column)
		if col == nil {
			// The store already corrects these; a fake or older store might not.
			log.WithField("task_id", task.ID).Warn("task loaded with unknown column, using to_do")
			col = b.Column(models.ColumnToDo)
		}
		col.Add(task)
	}
	b.dirty = false

	log.WithField("count", len(tasks)).Info("board loaded")
	b.emit(Event{Kind: EventLoaded})
	return nil
}

// Columns returns the columns in display order
func (b *Board) Columns() []*Column {
	return b.columns
}

// Column returns the column with the given id, or nil
func (b *Board) Column(id models.ColumnID) *Column {
	for _, c := range b.columns {
		if c.id == id {
			return c
		}
	}
	return nil
}

// Find locates a task and the column holding it
func (b *Board) Find(id string) (models.Task, *Column, bool) {
	for _, c := range b.columns {
		if task, ok := c.Get(id); ok {
			return task, c, true
		}
	}
	return models.Task{}, nil, false
}

// Dirty reports whether some change may not have reached the store
func (b *Board) Dirty() bool {
	return b.dirty
}

func (b *Board) generateID() string {
	for {
		id := b.newID()
		if _, _, taken := b.Find(id); !taken {
			if _, deleting := b.pendingDeletes[id]; !deleting {
				return id
			}
		}
		log.WithField("task_id", id).Warn("generated task id collides, retrying")
	}
}

// AddTask creates a task in to_do and persists it. On a storage error the
// task stays on the board, marked unsaved, and the error is returned with it.
func (b *Board) AddTask(form TaskForm) (models.Task, error) {
	task := models.Task{
		ID:          b.generateID(),
		Title:       form.Title,
		Description: form.Description,
		Priority:    form.Priority,
	}
	task.Normalize()
	task = b.Column(models.ColumnToDo).Add(task)

	b.emit(Event{Kind: EventCreated, Task: &task, To: task.Column})
	if err := b.store.Upsert(task); err != nil {
		b.dirty = true
		return task, err
	}
	return task, nil
}

// EditTask applies changes to title, description and priority and persists
// the result. Like AddTask, a storage error leaves the edit in memory.
func (b *Board) EditTask(id string, changes TaskChanges) (models.Task, error) {
	task, col, ok := b.Find(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if changes.Title != nil {
		task.Title = *changes.Title
	}
	if changes.Description != nil {
		task.Description = *changes.Description
	}
	if changes.Priority != nil {
		task.Priority = *changes.Priority
	}
	task.Normalize()
	col.replace(task)

	b.emit(Event{Kind: EventUpdated, Task: &task, To: task.Column})
	if err := b.store.Upsert(task); err != nil {
		b.dirty = true
		return task, err
	}
	return task, nil
}

// DeleteTask removes the task from its column and from the store. If the
// store delete fails the task is still gone from the board and the delete is
// retried by the next SaveAll.
func (b *Board) DeleteTask(id string) error {
	_, col, ok := b.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	task, _ := col.Remove(id)

	b.emit(Event{Kind: EventDeleted, Task: &task, From: col.id})
	if err := b.store.Delete(id); err != nil {
		b.pendingDeletes[id] = struct{}{}
		b.dirty = true
		return err
	}
	return nil
}

// MoveTask moves a task between columns, store first. On failure the task
// remains in from.
func (b *Board) MoveTask(id string, from, to models.ColumnID) (models.Task, error) {
	src, dst := b.Column(from), b.Column(to)
	if src == nil {
		return models.Task{}, fmt.Errorf("%w: %q", ErrUnknownColumn, from)
	}
	if dst == nil {
		return models.Task{}, fmt.Errorf("%w: %q", ErrUnknownColumn, to)
	}

	task, err := src.MoveTo(id, dst)
	if err != nil {
		if !errors.Is(err, ErrTaskNotFound) {
			log.WithFields(log.Fields{"task_id": id, "from": from, "to": to}).
				WithError(err).Warn("move not persisted, task left in place")
		}
		return task, err
	}
	if src != dst {
		b.emit(Event{Kind: EventMoved, Task: &task, From: from, To: to, Index: dst.Len() - 1})
	}
	return task, nil
}

// Reorder moves a task to index within its own column. Display order only.
func (b *Board) Reorder(id string, index int) error {
	_, col, ok := b.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err := col.Reorder(id, index); err != nil {
		return err
	}
	b.dirty = true
	task, _ := col.Get(id)
	b.emit(Event{Kind: EventReordered, Task: &task, To: col.id, Index: col.indexOf(id)})
	return nil
}

// Tasks returns every task on the board, column by column
func (b *Board) Tasks() []models.Task {
	var all []models.Task
	for _, c := range b.columns {
		all = append(all, c.List()...)
	}
	return all
}

// SaveAll writes the whole board to the store in one transaction, including
// deletions that failed earlier.
func (b *Board) SaveAll() error {
	tasks := b.Tasks()
	deleted := make([]string, 0, len(b.pendingDeletes))
	for id := range b.pendingDeletes {
		deleted = append(deleted, id)
	}

	if err := b.store.Sync(tasks, deleted); err != nil {
		b.dirty = true
		return err
	}
	b.pendingDeletes = make(map[string]struct{})
	b.dirty = false
	b.emit(Event{Kind: EventSaved})
	return nil
}

// ColumnView is a read-only copy of one column
type ColumnView struct {
	ID    models.ColumnID `json:"id"`
	Name  string          `json:"name"`
	Tasks []models.Task   `json:"tasks"`
}

// Snapshot is a read-only copy of the whole board
type Snapshot struct {
	Columns []ColumnView `json:"columns"`
	Dirty   bool         `json:"dirty"`
}

// Snapshot copies the current board state for rendering
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{Columns: make([]ColumnView, 0, len(b.columns)), Dirty: b.dirty}
	for _, c := range b.columns {
		snap.Columns = append(snap.Columns, ColumnView{ID: c.id, Name: c.Name(), Tasks: c.List()})
	}
	return snap
}
