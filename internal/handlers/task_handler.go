package handlers

import (
	"net/http"

	"snapdev-task/internal/board"
	"snapdev-task/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task.
// An empty title is replaced with the default title.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
}

// UpdateTaskRequest represents the request payload for editing a task
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Priority    *models.TaskPriority `json:"priority"`
}

// MoveTaskRequest moves a task to another column, or within its own column
// when Column is the current one and Index is set.
type MoveTaskRequest struct {
	Column models.ColumnID `json:"column" binding:"required"`
	Index  *int            `json:"index"`
}

// GetTasks handles GET /api/tasks
// Returns all tasks, optionally only those in ?column=
func (s *Server) GetTasks(c *gin.Context) {
	column := models.ColumnID(c.Query("column"))
	if column != "" && !column.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column"})
		return
	}

	var tasks []models.Task
	ok := s.do(c, func() {
		if column != "" {
			tasks = s.board.Column(column).List()
			return
		}
		tasks = s.board.Tasks()
	})
	if !ok {
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// GetTaskByID handles GET /api/tasks/:id
func (s *Server) GetTaskByID(c *gin.Context) {
	taskID := c.Param("id")

	var (
		task  models.Task
		found bool
	)
	if !s.do(c, func() { task, _, found = s.board.Find(taskID) }) {
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /api/tasks
// Creates a new task in the to_do column
func (s *Server) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		task models.Task
		err  error
	)
	form := board.TaskForm{Title: req.Title, Description: req.Description, Priority: req.Priority}
	if !s.do(c, func() { task, err = s.board.AddTask(form) }) {
		return
	}
	if err != nil {
		// The task is on the board but not in the database yet.
		respondError(c, err, gin.H{"task": task})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Edits title, description and priority; id and column never change here
func (s *Server) UpdateTask(c *gin.Context) {
	taskID := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		task models.Task
		err  error
	)
	changes := board.TaskChanges{Title: req.Title, Description: req.Description, Priority: req.Priority}
	if !s.do(c, func() { task, err = s.board.EditTask(taskID, changes) }) {
		return
	}
	if err != nil {
		respondError(c, err, gin.H{"task": task})
		return
	}
	c.JSON(http.StatusOK, task)
}

// MoveTask handles PATCH /api/tasks/:id/column
// The database is written before the task changes column on the board.
func (s *Server) MoveTask(c *gin.Context) {
	taskID := c.Param("id")

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Column.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column"})
		return
	}

	var (
		task models.Task
		err  error
	)
	ok := s.do(c, func() {
		current, col, found := s.board.Find(taskID)
		if !found {
			err = board.ErrTaskNotFound
			return
		}
		task = current
		if col.ID() != req.Column {
			task, err = s.board.MoveTask(taskID, col.ID(), req.Column)
			if err != nil {
				return
			}
		}
		if req.Index != nil {
			err = s.board.Reorder(taskID, *req.Index)
		}
	})
	if !ok {
		return
	}
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// Confirmation is the client's job; this deletes immediately.
func (s *Server) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	var err error
	if !s.do(c, func() { err = s.board.DeleteTask(taskID) }) {
		return
	}
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}
