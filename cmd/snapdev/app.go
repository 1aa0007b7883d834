package main

import (
	"fmt"

	"snapdev-task/internal/board"
	"snapdev-task/internal/config"
	"snapdev-task/internal/database"
	"snapdev-task/internal/pomodoro"
	"snapdev-task/internal/store"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// app holds what every shell needs: the open database, the board and the timer
type app struct {
	db    *gorm.DB
	board *board.Board
	timer *pomodoro.Timer
}

func openApp(cfg *config.Config) (*app, error) {
	db, err := database.Open(cfg.Database.Path, cfg.Database.LogSQL)
	if err != nil {
		return nil, err
	}

	s := store.New(db)
	if err := s.Initialize(); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	b := board.New(s)
	if err := b.Initialize(); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	timer, err := pomodoro.New(cfg.Pomodoro.Settings, pomodoro.WithAutoStart(cfg.Pomodoro.AutoStart))
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	log.WithField("db", cfg.Database.Path).Debug("database opened")
	return &app{db: db, board: b, timer: timer}, nil
}

func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		log.WithError(err).Warn("failed to close database")
	}
}
