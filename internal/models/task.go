package models

import "strings"

// ColumnID identifies one of the three fixed board columns
type ColumnID string

const (
	ColumnToDo  ColumnID = "to_do"
	ColumnDoing ColumnID = "doing"
	ColumnDone  ColumnID = "done"
)

// Columns lists the board columns in display order
var Columns = []ColumnID{ColumnToDo, ColumnDoing, ColumnDone}

var columnNames = map[ColumnID]string{
	ColumnToDo:  "A Fazer",
	ColumnDoing: "Em Andamento",
	ColumnDone:  "Concluído",
}

// Valid reports whether c is one of the three known columns
func (c ColumnID) Valid() bool {
	_, ok := columnNames[c]
	return ok
}

// Name returns the display name of the column
func (c ColumnID) Name() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return string(c)
}

// Index returns the display position of the column, or -1 if unknown
func (c ColumnID) Index() int {
	for i, id := range Columns {
		if id == c {
			return i
		}
	}
	return -1
}

// TaskPriority represents the priority of a task.
// Free text is stored as-is; only the three constants carry display meaning.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Baixa"
	PriorityMedium TaskPriority = "Média"
	PriorityHigh   TaskPriority = "Alta"
)

// Priorities lists the known priorities from lowest to highest
var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// Known reports whether p is one of the three display priorities
func (p TaskPriority) Known() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Next cycles through the known priorities; unknown values restart at Low
func (p TaskPriority) Next() TaskPriority {
	for i, known := range Priorities {
		if known == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// UntitledTask replaces an empty title
const UntitledTask = "Tarefa sem título"

// Task represents a task on the board
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Column      ColumnID     `json:"column" gorm:"column:column_id"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Normalize trims text fields and substitutes the defaults for an empty
// title and priority.
func (t *Task) Normalize() {
	t.Title = NormalizeTitle(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Priority = TaskPriority(strings.TrimSpace(string(t.Priority)))
	if t.Priority == "" {
		t.Priority = PriorityLow
	}
}

// NormalizeTitle trims the title and falls back to UntitledTask
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return UntitledTask
	}
	return title
}
