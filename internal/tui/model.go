// Package tui is the terminal shell for the board and the pomodoro timer.
//
// All board and timer calls happen inside Update, which bubbletea runs on a
// single goroutine.
package tui

import (
	"errors"
	"fmt"
	"time"

	"snapdev-task/internal/board"
	"snapdev-task/internal/models"
	"snapdev-task/internal/pomodoro"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

type tab int

const (
	tabBoard tab = iota
	tabPomodoro
)

type mode int

const (
	modeBoard mode = iota
	modeEditor
	modeConfirmDelete
	modeConfirmQuit
	modeConfirmForceQuit
)

// tickMsg drives the pomodoro countdown. gen identifies the tick chain so a
// pause/resume never leaves two chains running.
type tickMsg struct{ gen int }

// settingsLimits follow the order of the duration fields on the pomodoro tab
var settingsLimits = [3]pomodoro.Range{pomodoro.WorkRange, pomodoro.ShortBreakRange, pomodoro.LongBreakRange}

// Model is the bubbletea model for the whole application window
type Model struct {
	board *board.Board
	timer *pomodoro.Timer

	tab  tab
	mode mode

	col, row int
	editor   editor
	pending  string // task awaiting delete confirmation

	settingField int
	tickGen      int
	completed    []pomodoro.Phase

	status    string
	statusErr bool

	width, height int
}

// New creates the model. The board must already be initialized.
func New(b *board.Board, t *pomodoro.Timer) *Model {
	m := &Model{board: b, timer: t}
	t.OnPhaseComplete(func(p pomodoro.Phase) {
		m.completed = append(m.completed, p)
	})
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	if !m.timer.Running() {
		return nil
	}
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// restartTicks drops any running tick chain and starts a new one if the timer runs
func (m *Model) restartTicks() tea.Cmd {
	m.tickGen++
	return m.scheduleTick()
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *Model) setError(msg string, err error) {
	m.status, m.statusErr = msg, true
	log.WithError(err).Warn(msg)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.timer.Tick()
		m.reportCompleted()
		return m, m.scheduleTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.mode != modeConfirmQuit && m.mode != modeConfirmForceQuit {
			m.mode = modeConfirmQuit
			return m, nil
		}
		switch m.mode {
		case modeEditor:
			return m.updateEditor(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeConfirmQuit:
			return m.updateConfirmQuit(msg)
		case modeConfirmForceQuit:
			return m.updateConfirmForceQuit(msg)
		}
		if msg.String() == "tab" {
			if m.tab == tabBoard {
				m.tab = tabPomodoro
			} else {
				m.tab = tabBoard
			}
			return m, nil
		}
		if m.tab == tabPomodoro {
			return m.updatePomodoro(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m *Model) reportCompleted() {
	for _, p := range m.completed {
		switch p {
		case pomodoro.PhaseWork:
			m.setStatus(fmt.Sprintf("Pomodoro concluído! Total: %d", m.timer.Count()))
		case pomodoro.PhaseShortBreak:
			m.setStatus("Pausa curta concluída")
		case pomodoro.PhaseLongBreak:
			m.setStatus("Pausa longa concluída")
		}
	}
	m.completed = m.completed[:0]
}

// selected returns the task under the cursor
func (m *Model) selected() (models.Task, bool) {
	list := m.board.Columns()[m.col].List()
	if m.row < 0 || m.row >= len(list) {
		return models.Task{}, false
	}
	return list[m.row], true
}

func (m *Model) clampRow() {
	n := m.board.Columns()[m.col].Len()
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// focusTask moves the cursor onto the task with the given id
func (m *Model) focusTask(id string) {
	for ci, c := range m.board.Columns() {
		for ri, t := range c.List() {
			if t.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.mode = modeConfirmQuit
	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
	case "right", "l":
		if m.col < len(m.board.Columns())-1 {
			m.col++
			m.clampRow()
		}
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		m.row++
		m.clampRow()
	case "a":
		m.editor = newEditor(nil, false)
		m.mode = modeEditor
	case "e", "enter":
		if task, ok := m.selected(); ok {
			m.editor = newEditor(&task, false)
			m.mode = modeEditor
		}
	case "v":
		if task, ok := m.selected(); ok {
			m.editor = newEditor(&task, true)
			m.mode = modeEditor
		}
	case "d", "delete":
		if task, ok := m.selected(); ok {
			m.pending = task.ID
			m.mode = modeConfirmDelete
		}
	case ">", "L", "shift+right":
		m.moveSelected(1)
	case "<", "H", "shift+left":
		m.moveSelected(-1)
	case "K", "shift+up":
		m.reorderSelected(-1)
	case "J", "shift+down":
		m.reorderSelected(1)
	case "s":
		m.save()
	}
	return m, nil
}

func (m *Model) moveSelected(delta int) {
	task, ok := m.selected()
	if !ok {
		return
	}
	cols := m.board.Columns()
	target := m.col + delta
	if target < 0 || target >= len(cols) {
		return
	}
	from, to := cols[m.col].ID(), cols[target].ID()
	if _, err := m.board.MoveTask(task.ID, from, to); err != nil {
		m.setError("Não foi possível mover a tarefa", err)
		return
	}
	m.focusTask(task.ID)
	m.setStatus(fmt.Sprintf("Tarefa movida para %s", to.Name()))
}

func (m *Model) reorderSelected(delta int) {
	task, ok := m.selected()
	if !ok {
		return
	}
	target := m.row + delta
	if target < 0 || target >= m.board.Columns()[m.col].Len() {
		return
	}
	if err := m.board.Reorder(task.ID, target); err != nil {
		m.setError("Não foi possível reordenar", err)
		return
	}
	m.row = target
}

func (m *Model) save() bool {
	if err := m.board.SaveAll(); err != nil {
		m.setError("Erro ao salvar as tarefas", err)
		return false
	}
	m.setStatus("Todas as tarefas foram salvas com sucesso!")
	return true
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, done, ok := m.editor.update(msg)
	if !done {
		return m, cmd
	}
	m.mode = modeBoard
	if !ok {
		return m, nil
	}

	res := m.editor.result()
	if res.taskID == "" {
		task, err := m.board.AddTask(board.TaskForm{Title: res.title, Description: res.description, Priority: res.priority})
		m.focusTask(task.ID)
		if err != nil {
			m.setError("Tarefa criada, mas não foi salva", err)
			return m, nil
		}
		m.setStatus("Tarefa adicionada")
		return m, nil
	}

	_, err := m.board.EditTask(res.taskID, board.TaskChanges{
		Title:       &res.title,
		Description: &res.description,
		Priority:    &res.priority,
	})
	switch {
	case errors.Is(err, board.ErrTaskNotFound):
		m.setError("A tarefa não existe mais", err)
	case err != nil:
		m.setError("Alteração não foi salva", err)
	default:
		m.setStatus("Tarefa atualizada")
	}
	return m, nil
}

func isYes(key string) bool { return key == "y" || key == "s" || key == "Y" || key == "S" }
func isNo(key string) bool  { return key == "n" || key == "N" }

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case isYes(key):
		if err := m.board.DeleteTask(m.pending); err != nil && !errors.Is(err, board.ErrTaskNotFound) {
			m.setError("Tarefa removida, mas a exclusão não foi salva", err)
		} else {
			m.setStatus("Tarefa excluída")
		}
		m.clampRow()
	case isNo(key), key == "esc":
	default:
		return m, nil
	}
	m.pending = ""
	m.mode = modeBoard
	return m, nil
}

func (m *Model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case isYes(key):
		if m.save() {
			return m, tea.Quit
		}
		m.mode = modeConfirmForceQuit
	case isNo(key):
		return m, tea.Quit
	case key == "esc", key == "ctrl+c":
		m.mode = modeBoard
	}
	return m, nil
}

func (m *Model) updateConfirmForceQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case isYes(key):
		return m, tea.Quit
	case isNo(key), key == "esc":
		// back to the board; the user can retry with s or q
		m.mode = modeBoard
	}
	return m, nil
}

func (m *Model) updatePomodoro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.mode = modeConfirmQuit
	case " ", "enter":
		m.timer.Toggle()
		return m, m.restartTicks()
	case "r":
		m.timer.Reset()
		m.setStatus("Reiniciado")
		return m, m.restartTicks()
	case "n":
		m.timer.Skip()
		return m, m.restartTicks()
	case "up", "k":
		if m.settingField > 0 {
			m.settingField--
		}
	case "down", "j":
		if m.settingField < len(settingsLimits)-1 {
			m.settingField++
		}
	case "+", "=", "right", "l":
		m.adjustSetting(1)
	case "-", "left", "h":
		m.adjustSetting(-1)
	}
	return m, nil
}

func (m *Model) adjustSetting(delta int) {
	s := m.timer.Settings()
	fields := []*int{&s.WorkMinutes, &s.ShortBreakMinutes, &s.LongBreakMinutes}
	v := *fields[m.settingField] + delta
	if !settingsLimits[m.settingField].Contains(v) {
		return
	}
	*fields[m.settingField] = v
	if err := m.timer.SetSettings(s); err != nil {
		m.setError("Configuração inválida", err)
	}
}
