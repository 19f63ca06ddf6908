// Command tankwar-term plays the game in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"tankwar/game"
	"tankwar/replay"
	"tankwar/term"
)

func main() {
	configPath := flag.String("config", "", "JSON config overlay")
	seed := flag.Int64("seed", 0, "round seed (0 = time based)")
	mute := flag.Bool("mute", false, "disable sound")
	autopilot := flag.Bool("autopilot", false, "let the computer drive the player")
	record := flag.String("record", "", "save the last round as a replay file on exit")
	logFile := flag.String("log-file", "", "write logs to this file (logs are discarded otherwise)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	if err := run(*configPath, *seed, *mute, *autopilot, *record, *logFile, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "tankwar-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, mute, autopilot bool, record, logFile, logLevel string) error {
	// The screen belongs to tcell, so logs never go to the terminal
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.NewWithOptions(out, log.Options{ReportTimestamp: true, Prefix: "term"})
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", logLevel, err)
	}
	logger.SetLevel(lvl)

	cfg := game.DefaultConfig()
	if configPath != "" {
		if cfg, err = game.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := term.Options{Mute: mute, Logger: logger, Autopilot: autopilot}
	var recorder *replay.Recorder
	if record != "" {
		recorder = replay.NewRecorder()
		opts.Observers = append(opts.Observers, recorder)
	}

	runner, err := term.NewRunner(cfg, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := runner.Run(ctx)
	runner.Close()

	if recorder != nil {
		if rec := recorder.Recording(); rec != nil {
			if err := replay.Save(record, rec); err != nil {
				return err
			}
			fmt.Printf("replay saved to %s (%d frames)\n", record, len(rec.Frames))
		}
	}
	fmt.Println(runner.Summary())

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
