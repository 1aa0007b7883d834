package main

import (
	"fmt"
	"os"

	"snapdev-task/internal/sound"
	"snapdev-task/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the Kanban board in the terminal (default)",
		RunE:  runBoard,
	}
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// log lines must not land in the terminal frame
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	player := sound.New(cfg.Sound.Enabled, cfg.Sound.Command, os.Stdout)
	a.timer.OnPhaseComplete(player.Play)

	p := tea.NewProgram(tui.New(a.board, a.timer), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
