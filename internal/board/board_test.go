package board

import (
	"errors"
	"sort"
	"testing"

	"snapdev-task/internal/database"
	"snapdev-task/internal/models"
	"snapdev-task/internal/store"
	"snapdev-task/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected failure")

// flakyStore wraps the real store and fails selected operations on demand
type flakyStore struct {
	*store.TaskStore
	failUpsert bool
	failDelete bool
	failSync   bool
}

func (f *flakyStore) Upsert(task models.Task) error {
	if f.failUpsert {
		return errInjected
	}
	return f.TaskStore.Upsert(task)
}

func (f *flakyStore) Delete(id string) error {
	if f.failDelete {
		return errInjected
	}
	return f.TaskStore.Delete(id)
}

func (f *flakyStore) Sync(tasks []models.Task, deletedIDs []string) error {
	if f.failSync {
		return errInjected
	}
	return f.TaskStore.Sync(tasks, deletedIDs)
}

func newTestBoard(t *testing.T) (*Board, *flakyStore, *gorm.DB) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	fs := &flakyStore{TaskStore: store.New(db)}
	b := New(fs)
	require.NoError(t, b.Initialize())
	return b, fs, db
}

func columnIDs(c *Column) []string {
	var ids []string
	for _, task := range c.List() {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestScenario_AddEditMoveDelete(t *testing.T) {
	b, fs, _ := newTestBoard(t)

	task, err := b.AddTask(TaskForm{Title: "Write docs", Priority: models.PriorityMedium})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, models.ColumnToDo, task.Column)
	require.Equal(t, []string{task.ID}, columnIDs(b.Column(models.ColumnToDo)))

	high := models.PriorityHigh
	edited, err := b.EditTask(task.ID, TaskChanges{Priority: &high})
	require.NoError(t, err)
	require.Equal(t, task.ID, edited.ID)
	row, err := fs.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.PriorityHigh, row.Priority)
	require.Equal(t, "Write docs", row.Title)

	_, err = b.MoveTask(task.ID, models.ColumnToDo, models.ColumnDoing)
	require.NoError(t, err)
	require.Empty(t, columnIDs(b.Column(models.ColumnToDo)))
	require.Equal(t, []string{task.ID}, columnIDs(b.Column(models.ColumnDoing)))
	row, err = fs.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.ColumnDoing, row.Column)

	require.NoError(t, b.DeleteTask(task.ID))
	require.Empty(t, columnIDs(b.Column(models.ColumnDoing)))
	_, err = fs.Get(task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddTask_DefaultsTitleAndPriority(t *testing.T) {
	b, _, _ := newTestBoard(t)
	task, err := b.AddTask(TaskForm{Title: "  "})
	require.NoError(t, err)
	require.Equal(t, models.UntitledTask, task.Title)
	require.Equal(t, models.PriorityLow, task.Priority)
}

func TestAddTask_RegeneratesCollidingID(t *testing.T) {
	b, _, _ := newTestBoard(t)
	ids := []string{"task_a", "task_a", "task_b"}
	b.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	first, err := b.AddTask(TaskForm{Title: "one"})
	require.NoError(t, err)
	second, err := b.AddTask(TaskForm{Title: "two"})
	require.NoError(t, err)
	require.Equal(t, "task_a", first.ID)
	require.Equal(t, "task_b", second.ID)
}

func TestEditTask_CannotChangeColumn(t *testing.T) {
	b, fs, _ := newTestBoard(t)
	task, err := b.AddTask(TaskForm{Title: "a"})
	require.NoError(t, err)
	_, err = b.MoveTask(task.ID, models.ColumnToDo, models.ColumnDone)
	require.NoError(t, err)

	title := "renamed"
	edited, err := b.EditTask(task.ID, TaskChanges{Title: &title})
	require.NoError(t, err)
	require.Equal(t, models.ColumnDone, edited.Column)
	row, err := fs.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.ColumnDone, row.Column)
	require.Equal(t, "renamed", row.Title)
}

func TestEditTask_Unknown(t *testing.T) {
	b, _, _ := newTestBoard(t)
	_, err := b.EditTask("nope", TaskChanges{})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestMoveTask_StoreFailureKeepsTaskInPlace(t *testing.T) {
	b, fs, _ := newTestBoard(t)
	task, err := b.AddTask(TaskForm{Title: "stuck"})
	require.NoError(t, err)

	fs.failUpsert = true
	_, err = b.MoveTask(task.ID, models.ColumnToDo, models.ColumnDone)
	require.ErrorIs(t, err, errInjected)

	require.Equal(t, []string{task.ID}, columnIDs(b.Column(models.ColumnToDo)))
	require.Empty(t, columnIDs(b.Column(models.ColumnDone)))
	row, err := fs.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.ColumnToDo, row.Column)
}

func TestMoveTask_ExactlyOneContainer(t *testing.T) {
	for _, to := range models.Columns {
		b, fs, _ := newTestBoard(t)
		task, err := b.AddTask(TaskForm{Title: "t"})
		require.NoError(t, err)

		_, err = b.MoveTask(task.ID, models.ColumnToDo, to)
		require.NoError(t, err)

		holders := 0
		for _, c := range b.Columns() {
			if _, ok := c.Get(task.ID); ok {
				holders++
				require.Equal(t, to, c.ID())
			}
		}
		require.Equal(t, 1, holders)
		row, err := fs.Get(task.ID)
		require.NoError(t, err)
		require.Equal(t, to, row.Column)
	}
}

func TestMoveTask_Errors(t *testing.T) {
	b, _, _ := newTestBoard(t)
	task, err := b.AddTask(TaskForm{Title: "t"})
	require.NoError(t, err)

	_, err = b.MoveTask(task.ID, models.ColumnDoing, models.ColumnDone)
	require.ErrorIs(t, err, ErrTaskNotFound)
	_, err = b.MoveTask(task.ID, models.ColumnToDo, "backlog")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestDeleteTask_FailureRetriedBySaveAll(t *testing.T) {
	b, fs, _ := newTestBoard(t)
	task, err := b.AddTask(TaskForm{Title: "doomed"})
	require.NoError(t, err)

	fs.failDelete = true
	require.ErrorIs(t, b.DeleteTask(task.ID), errInjected)
	_, _, found := b.Find(task.ID)
	require.False(t, found)
	require.True(t, b.Dirty())

	_, err = fs.Get(task.ID)
	require.NoError(t, err, "row survives the failed delete")

	fs.failDelete = false
	require.NoError(t, b.SaveAll())
	require.False(t, b.Dirty())
	_, err = fs.Get(task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestInitialize_DropsPendingDeletes(t *testing.T) {
	b, fs, _ := newTestBoard(t)
	task, err := b.AddTask(TaskForm{Title: "comes back"})
	require.NoError(t, err)

	fs.failDelete = true
	require.ErrorIs(t, b.DeleteTask(task.ID), errInjected)
	fs.failDelete = false

	require.NoError(t, b.Initialize())
	_, col, found := b.Find(task.ID)
	require.True(t, found)
	require.Equal(t, models.ColumnToDo, col.ID())

	require.NoError(t, b.SaveAll())
	_, err = fs.Get(task.ID)
	require.NoError(t, err, "a reloaded task is not deleted by the next save")
	_, _, found = b.Find(task.ID)
	require.True(t, found)
}

func TestSaveAll_MatchesContainers(t *testing.T) {
	b, fs, _ := newTestBoard(t)
	fs.failUpsert = true // every per-operation write fails; SaveAll must reconcile

	a, _ := b.AddTask(TaskForm{Title: "a"})
	c, _ := b.AddTask(TaskForm{Title: "c"})
	d, _ := b.AddTask(TaskForm{Title: "d"})
	fs.failUpsert = false
	_, err := b.MoveTask(a.ID, models.ColumnToDo, models.ColumnDone)
	require.NoError(t, err)
	fs.failUpsert = true
	title := "c2"
	_, _ = b.EditTask(c.ID, TaskChanges{Title: &title})
	fs.failUpsert = false
	require.NoError(t, b.DeleteTask(d.ID))
	require.True(t, b.Dirty())

	require.NoError(t, b.SaveAll())
	require.False(t, b.Dirty())

	type pair struct{ id, col string }
	var want, got []pair
	for _, task := range b.Tasks() {
		want = append(want, pair{task.ID, string(task.Column)})
	}
	rows, err := fs.LoadAll()
	require.NoError(t, err)
	for _, row := range rows {
		got = append(got, pair{row.ID, string(row.Column)})
	}
	less := func(p []pair) func(i, j int) bool { return func(i, j int) bool { return p[i].id < p[j].id } }
	sort.Slice(want, less(want))
	sort.Slice(got, less(got))
	require.Equal(t, want, got)

	row, err := fs.Get(c.ID)
	require.NoError(t, err)
	require.Equal(t, "c2", row.Title)
}

func TestSaveAll_FailureKeepsDirty(t *testing.T) {
	b, fs, _ := newTestBoard(t)
	_, err := b.AddTask(TaskForm{Title: "a"})
	require.NoError(t, err)

	fs.failSync = true
	require.ErrorIs(t, b.SaveAll(), errInjected)
	require.True(t, b.Dirty())
}

func TestInitialize_DistributesByColumn(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	s := store.New(db)
	require.NoError(t, s.Upsert(models.Task{ID: "1", Title: "one", Column: models.ColumnDone}))
	require.NoError(t, s.Upsert(models.Task{ID: "2", Title: "two", Column: models.ColumnDoing}))
	require.NoError(t, db.Exec("INSERT INTO tasks (id, title, description, priority, column_id) VALUES ('3', 'three', '', 'Baixa', 'bogus')").Error)

	b := New(s)
	require.NoError(t, b.Initialize())
	require.Equal(t, []string{"3"}, columnIDs(b.Column(models.ColumnToDo)))
	require.Equal(t, []string{"2"}, columnIDs(b.Column(models.ColumnDoing)))
	require.Equal(t, []string{"1"}, columnIDs(b.Column(models.ColumnDone)))
}

func TestReorder_WithinColumn(t *testing.T) {
	b, _, _ := newTestBoard(t)
	a, _ := b.AddTask(TaskForm{Title: "a"})
	bb, _ := b.AddTask(TaskForm{Title: "b"})
	c, _ := b.AddTask(TaskForm{Title: "c"})

	require.NoError(t, b.Reorder(c.ID, 0))
	require.Equal(t, []string{c.ID, a.ID, bb.ID}, columnIDs(b.Column(models.ColumnToDo)))
	require.NoError(t, b.Reorder(c.ID, 99))
	require.Equal(t, []string{a.ID, bb.ID, c.ID}, columnIDs(b.Column(models.ColumnToDo)))
	require.True(t, b.Dirty())
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	b, _, _ := newTestBoard(t)
	var kinds []EventKind
	unsubscribe := b.Subscribe(func(evt Event) { kinds = append(kinds, evt.Kind) })

	task, err := b.AddTask(TaskForm{Title: "a"})
	require.NoError(t, err)
	_, err = b.MoveTask(task.ID, models.ColumnToDo, models.ColumnDoing)
	require.NoError(t, err)
	require.NoError(t, b.SaveAll())
	unsubscribe()
	require.NoError(t, b.DeleteTask(task.ID))

	require.Equal(t, []EventKind{EventCreated, EventMoved, EventSaved}, kinds)
}

func TestSnapshot(t *testing.T) {
	b, _, _ := newTestBoard(t)
	_, err := b.AddTask(TaskForm{Title: "a"})
	require.NoError(t, err)

	snap := b.Snapshot()
	require.Len(t, snap.Columns, 3)
	require.Equal(t, "A Fazer", snap.Columns[0].Name)
	require.Len(t, snap.Columns[0].Tasks, 1)
	require.Empty(t, snap.Columns[2].Tasks)
}
