package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/leaderboard"
	"github.com/tomz197/skirunner/internal/logger"
	"github.com/tomz197/skirunner/internal/loop"
	loopcfg "github.com/tomz197/skirunner/internal/loop/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Logs never go to the terminal the game draws on.
	log, closeLog, err := logger.NewFile(config.GetEnv("LOG_FILE", ""))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	levels, err := config.LoadLevels(config.GetEnv("SKI_LEVELS_FILE", ""))
	if err != nil {
		return err
	}

	store := leaderboard.StoreAt(config.GetEnv("LEADERBOARD_FILE", "leaderboard.msgpack"))
	board, err := leaderboard.Open(store, config.GetEnvInt("LEADERBOARD_SIZE", loopcfg.BoardSize))
	if err != nil {
		log.Warn("starting with an empty leaderboard", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	username := config.GetEnv("USER", "skier")
	log.Info("game started", "user", username, "levels", levels.Count())

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.Options{
		Username: username,
		Levels:   levels,
		Board:    board,
		Store:    store,
		Logger:   log,
	})
}
