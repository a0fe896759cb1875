package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/shootout/internal/config"
	"github.com/tomz197/shootout/internal/loop/client"
	"github.com/tomz197/shootout/internal/loop/server"
)

// Runs a private rink in-process: one server and one client on this terminal.
func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// The terminal is the screen, so logs only go to a file when asked for.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("SHOOTOUT_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Level: log.DebugLevel})

	srv, err := server.NewServer(server.Options{
		Tuning: config.FromEnv(config.Default()),
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid rink: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error("game server stopped", "err", err)
		}
	}()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(srv, reader, os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", ""),
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
