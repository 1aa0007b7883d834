package tui

import (
	"fmt"
	"strings"

	"snapdev-task/internal/board"

	"github.com/charmbracelet/lipgloss"
)

const defaultColumnWidth = 32

// View implements tea.Model
func (m *Model) View() string {
	var body string
	switch m.mode {
	case modeEditor:
		body = m.editor.view()
	case modeConfirmDelete:
		body = m.confirmView("Excluir Tarefa", "Tem certeza que deseja excluir esta tarefa?")
	case modeConfirmQuit:
		body = m.confirmView("Salvar Alterações", "Deseja salvar as alterações antes de sair?")
	case modeConfirmForceQuit:
		body = m.confirmView("Erro ao Salvar", "Não foi possível salvar. Sair mesmo assim?")
	default:
		if m.tab == tabPomodoro {
			body = m.pomodoroView()
		} else {
			body = m.boardView()
		}
	}

	var b strings.Builder
	b.WriteString(m.headerView() + "\n\n")
	b.WriteString(body + "\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m *Model) headerView() string {
	tabs := []string{"Quadro Kanban", "Pomodoro"}
	rendered := make([]string, len(tabs))
	for i, name := range tabs {
		if tab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = tabStyle.Render(name)
		}
	}
	clock := m.timer.Snapshot()
	mini := lipgloss.NewStyle().Foreground(stateColor(m.timer.State())).Render(clock.Display)
	return titleStyle.Render("SnapDev Task") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "  " + mini
}

func (m *Model) columnWidth() int {
	if m.width <= 0 {
		return defaultColumnWidth
	}
	w := m.width/len(m.board.Columns()) - 4
	if w < 16 {
		w = 16
	}
	return w
}

func (m *Model) boardView() string {
	snap := m.board.Snapshot()
	width := m.columnWidth()

	cols := make([]string, 0, len(snap.Columns))
	for ci, col := range snap.Columns {
		cols = append(cols, m.columnView(ci, col, width))
	}

	help := "a nova • e editar • v ver • d excluir • </> mover • J/K reordenar • s salvar • tab pomodoro • q sair"
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n" + helpStyle.Render(help)
}

func (m *Model) columnView(ci int, col board.ColumnView, width int) string {
	var b strings.Builder
	b.WriteString(columnTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Name, len(col.Tasks))) + "\n")

	if len(col.Tasks) == 0 {
		b.WriteString(helpStyle.Render("vazio"))
	}
	for ri, task := range col.Tasks {
		marker := lipgloss.NewStyle().Foreground(priorityColor(task.Priority)).Render("●")
		title := truncate(task.Title, width-4)
		if ci == m.col && ri == m.row {
			b.WriteString(marker + selectedTaskStyle.Render(title) + "\n")
		} else {
			b.WriteString(marker + taskStyle.Render(title) + "\n")
		}
		if task.Description != "" {
			b.WriteString(descStyle.Render(truncate(firstLine(task.Description), width-4)) + "\n")
		}
	}

	style := columnStyle
	if ci == m.col {
		style = activeColumnStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) pomodoroView() string {
	snap := m.timer.Snapshot()
	clock := clockStyle.BorderForeground(stateColor(m.timer.State())).
		Foreground(stateColor(m.timer.State())).
		Render(snap.Display)

	var b strings.Builder
	b.WriteString(clock + "\n")
	b.WriteString(labelStyle.Render(snap.Status) + "\n")
	b.WriteString(counterStyle.Render(fmt.Sprintf("Pomodoros completados: %d", snap.Count)) + "\n\n")

	labels := []string{"Tempo de trabalho", "Pausa curta", "Pausa longa"}
	values := []int{snap.Settings.WorkMinutes, snap.Settings.ShortBreakMinutes, snap.Settings.LongBreakMinutes}
	for i, label := range labels {
		line := fmt.Sprintf("%-18s %3d min", label, values[i])
		if i == m.settingField {
			b.WriteString(selectedTaskStyle.Render("› "+line) + "\n")
		} else {
			b.WriteString(taskStyle.Render("  "+line) + "\n")
		}
	}

	action := "espaço iniciar"
	if snap.Running {
		action = "espaço pausar"
	}
	b.WriteString("\n" + helpStyle.Render(action+" • r reiniciar • n pular fase • ↑/↓ campo • +/- ajustar • tab quadro"))
	return b.String()
}

func (m *Model) confirmView(title, question string) string {
	return dialogStyle.Render(titleStyle.Render(title) + "\n\n" + question + "\n\n" +
		helpStyle.Render("s/y sim • n não • esc cancelar"))
}

func (m *Model) statusView() string {
	dirty := ""
	if m.board.Dirty() {
		dirty = helpStyle.Render(" [alterações não salvas]")
	}
	if m.status == "" {
		return dirty
	}
	if m.statusErr {
		return errorStyle.Render(m.status) + dirty
	}
	return statusStyle.Render(m.status) + dirty
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
