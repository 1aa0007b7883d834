package tui

import (
	"strings"

	"snapdev-task/internal/models"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldDescription
	fieldPriority
	fieldCount
)

// editor is the add/edit/view task dialog
type editor struct {
	taskID   string // empty when adding
	viewOnly bool

	title       textinput.Model
	description textarea.Model
	priority    models.TaskPriority
	focus       editorField
}

// editorResult is what the dialog hands back to the board
type editorResult struct {
	taskID      string
	title       string
	description string
	priority    models.TaskPriority
}

func newEditor(task *models.Task, viewOnly bool) editor {
	ti := textinput.New()
	ti.Placeholder = "Título da tarefa"
	ti.CharLimit = 200
	ti.Width = 48

	ta := textarea.New()
	ta.Placeholder = "Descrição"
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(5)

	e := editor{
		title:       ti,
		description: ta,
		priority:    models.PriorityLow,
		viewOnly:    viewOnly,
	}
	if task != nil {
		e.taskID = task.ID
		e.title.SetValue(task.Title)
		e.description.SetValue(task.Description)
		e.priority = task.Priority
	}
	e.setFocus(fieldTitle)
	return e
}

func (e *editor) setFocus(f editorField) {
	e.focus = f
	e.title.Blur()
	e.description.Blur()
	if e.viewOnly {
		return
	}
	switch f {
	case fieldTitle:
		e.title.Focus()
	case fieldDescription:
		e.description.Focus()
	}
}

func (e *editor) result() editorResult {
	return editorResult{
		taskID:      e.taskID,
		title:       strings.TrimSpace(e.title.Value()),
		description: strings.TrimSpace(e.description.Value()),
		priority:    e.priority,
	}
}

// update handles a key. done is true when the dialog closes; ok tells
// whether it was accepted.
func (e *editor) update(msg tea.KeyMsg) (cmd tea.Cmd, done, ok bool) {
	if e.viewOnly {
		switch msg.String() {
		case "esc", "q", "enter":
			return nil, true, false
		case "e":
			e.viewOnly = false
			e.setFocus(fieldTitle)
		}
		return nil, false, false
	}

	switch msg.String() {
	case "esc":
		return nil, true, false
	case "ctrl+s":
		return nil, true, true
	case "tab":
		e.setFocus((e.focus + 1) % fieldCount)
		return nil, false, false
	case "shift+tab":
		e.setFocus((e.focus + fieldCount - 1) % fieldCount)
		return nil, false, false
	case "enter":
		if e.focus != fieldDescription {
			return nil, true, true
		}
	}

	switch e.focus {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case fieldDescription:
		e.description, cmd = e.description.Update(msg)
	case fieldPriority:
		switch msg.String() {
		case " ", "right", "l", "left", "h":
			e.priority = e.priority.Next()
		}
	}
	return cmd, false, false
}

func (e editor) view() string {
	heading := "Nova Tarefa"
	switch {
	case e.viewOnly:
		heading = "Detalhes da Tarefa"
	case e.taskID != "":
		heading = "Editar Tarefa"
	}

	priority := lipgloss.NewStyle().Foreground(priorityColor(e.priority)).Render(string(e.priority))
	if e.focus == fieldPriority && !e.viewOnly {
		priority = "‹ " + priority + " ›"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	if e.viewOnly {
		b.WriteString(labelStyle.Render("Título") + "\n" + e.title.Value() + "\n\n")
		desc := e.description.Value()
		if desc == "" {
			desc = helpStyle.Render("(sem descrição)")
		}
		b.WriteString(labelStyle.Render("Descrição") + "\n" + desc + "\n\n")
		b.WriteString(labelStyle.Render("Prioridade") + "  " + priority + "\n\n")
		b.WriteString(helpStyle.Render("e editar • esc fechar"))
		return dialogStyle.Render(b.String())
	}

	b.WriteString(labelStyle.Render("Título") + "\n" + e.title.View() + "\n\n")
	b.WriteString(labelStyle.Render("Descrição") + "\n" + e.description.View() + "\n\n")
	b.WriteString(labelStyle.Render("Prioridade") + "  " + priority + "\n\n")
	b.WriteString(helpStyle.Render("tab próximo campo • espaço muda prioridade • ctrl+s salvar • esc cancelar"))
	return dialogStyle.Render(b.String())
}
