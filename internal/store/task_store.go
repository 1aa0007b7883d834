// Package store persists board tasks in the local SQLite database.
//
// Every failure coming out of gorm or the driver is wrapped in ErrStorage so
// callers can report a single "could not save" without inspecting driver errors.
package store

import (
	"errors"
	"fmt"

	"snapdev-task/internal/database"
	"snapdev-task/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrStorage marks I/O, lock and driver failures
	ErrStorage = errors.New("storage error")
	// ErrNotFound is returned by Get for an unknown id
	ErrNotFound = errors.New("task not found")
)

// TaskStore is the durable record of tasks keyed by id
type TaskStore struct {
	db *gorm.DB
}

// New wraps an open database connection
func New(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Initialize ensures the tasks table exists. Idempotent.
func (s *TaskStore) Initialize() error {
	if err := database.Migrate(s.db); err != nil {
		return storageErr("initialize", err)
	}
	return nil
}

// LoadAll reads every row in insertion order. Rows with an unknown column_id
// are moved to to_do and the correction is written back right away.
func (s *TaskStore) LoadAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Order("rowid").Find(&tasks).Error; err != nil {
		return nil, storageErr("load tasks", err)
	}

	for i := range tasks {
		if tasks[i].Column.Valid() {
			continue
		}
		entry := log.WithFields(log.Fields{
			"task_id": tasks[i].ID,
			"column":  string(tasks[i].Column),
		})
		entry.Warn("task has invalid column, moving it to to_do")

		tasks[i].Column = models.ColumnToDo
		err := s.db.Model(&models.Task{}).
			Where("id = ?", tasks[i].ID).
			Update("column_id", models.ColumnToDo).Error
		if err != nil {
			// The caller still sees to_do; the next save rewrites the row.
			entry.WithError(err).Error("failed to persist column correction")
		}
	}

	log.WithField("count", len(tasks)).Debug("tasks loaded")
	return tasks, nil
}

// Get returns the row with the given id
func (s *TaskStore) Get(id string) (models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, storageErr("get task", err)
	}
	return task, nil
}

// upsert writes every field in a single INSERT ... ON CONFLICT statement,
// so a row is either fully written or untouched.
func upsert(db *gorm.DB, task models.Task) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&task).Error
}

// Upsert inserts the task if its id is unknown, otherwise updates all fields
// including the column.
func (s *TaskStore) Upsert(task models.Task) error {
	if task.ID == "" {
		return fmt.Errorf("upsert task: empty id")
	}
	if err := upsert(s.db, task); err != nil {
		log.WithField("task_id", task.ID).WithError(err).Error("failed to save task")
		return storageErr("upsert task", err)
	}
	log.WithFields(log.Fields{"task_id": task.ID, "column": string(task.Column)}).Debug("task saved")
	return nil
}

// Delete removes the row. Deleting an unknown id is not an error.
func (s *TaskStore) Delete(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Task{}).Error; err != nil {
		log.WithField("task_id", id).WithError(err).Error("failed to delete task")
		return storageErr("delete task", err)
	}
	log.WithField("task_id", id).Debug("task deleted")
	return nil
}

// SaveAll upserts every task in one transaction; on failure nothing is written.
func (s *TaskStore) SaveAll(tasks []models.Task) error {
	return s.Sync(tasks, nil)
}

// Sync upserts tasks and deletes deletedIDs in one transaction. It is how the
// board reconciles its full state, including deletions that failed earlier.
func (s *TaskStore) Sync(tasks []models.Task, deletedIDs []string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if task.ID == "" {
				return fmt.Errorf("task with empty id")
			}
			if err := upsert(tx, task); err != nil {
				return fmt.Errorf("task %s: %w", task.ID, err)
			}
		}
		if len(deletedIDs) > 0 {
			if err := tx.Where("id IN ?", deletedIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("failed to save all tasks, rolled back")
		return storageErr("save all", err)
	}
	log.WithFields(log.Fields{"saved": len(tasks), "deleted": len(deletedIDs)}).Info("all tasks saved")
	return nil
}
