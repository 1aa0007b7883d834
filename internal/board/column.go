package board

import (
	"fmt"

	"snapdev-task/internal/models"
)

// Column holds the ordered tasks of one workflow stage. Order is display
// order only and is never persisted.
type Column struct {
	id    models.ColumnID
	tasks []models.Task
	store TaskStore
}

func newColumn(id models.ColumnID, store TaskStore) *Column {
	return &Column{id: id, store: store}
}

// ID returns the column identifier
func (c *Column) ID() models.ColumnID { return c.id }

// Name returns the display name
func (c *Column) Name() string { return c.id.Name() }

// Len returns the number of tasks in the column
func (c *Column) Len() int { return len(c.tasks) }

// Add appends task and stamps it with this column's id. It does not persist.
func (c *Column) Add(task models.Task) models.Task {
	task.Column = c.id
	c.tasks = append(c.tasks, task)
	return task
}

// insert places task at index, clamped to the column bounds
func (c *Column) insert(task models.Task, index int) {
	task.Column = c.id
	if index < 0 || index > len(c.tasks) {
		index = len(c.tasks)
	}
	c.tasks = append(c.tasks, models.Task{})
	copy(c.tasks[index+1:], c.tasks[index:])
	c.tasks[index] = task
}

// Remove drops the task with the given id and returns it
func (c *Column) Remove(id string) (models.Task, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	task := c.tasks[i]
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return task, true
}

// List returns a snapshot of the column contents in display order
func (c *Column) List() []models.Task {
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Get returns the task with the given id
func (c *Column) Get(id string) (models.Task, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return c.tasks[i], true
}

func (c *Column) indexOf(id string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Column) replace(task models.Task) bool {
	i := c.indexOf(task.ID)
	if i < 0 {
		return false
	}
	task.Column = c.id
	c.tasks[i] = task
	return true
}

// MoveTo hands the task over to dst. The store write happens first: if it
// fails the task stays where it was and the error is returned.
func (c *Column) MoveTo(id string, dst *Column) (models.Task, error) {
	task, ok := c.Get(id)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s in %s", ErrTaskNotFound, id, c.id)
	}
	if dst == c {
		return task, nil
	}

	moved := task
	moved.Column = dst.id
	if err := c.store.Upsert(moved); err != nil {
		return task, err
	}

	c.Remove(id)
	return dst.Add(moved), nil
}

// Reorder moves the task to index within this column
func (c *Column) Reorder(id string, index int) error {
	task, ok := c.Remove(id)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrTaskNotFound, id, c.id)
	}
	c.insert(task, index)
	return nil
}
