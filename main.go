package main

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"tankwar/client"
	"tankwar/game"
	"tankwar/replay"
)

func main() {
	configPath := flag.String("config", "", "JSON config overlay")
	seed := flag.Int64("seed", 0, "round seed (0 = time based)")
	width := flag.Float64("width", 0, "playfield width override")
	height := flag.Float64("height", 0, "playfield height override")
	touch := flag.Bool("touch", false, "use on-screen touch controls")
	mute := flag.Bool("mute", false, "disable sound")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	profileDir := flag.String("profile-dir", "", "capture CPU profiles here when the frame rate drops")
	record := flag.String("record", "", "save the last round as a replay file on exit")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal("bad log level", "level", *logLevel, "err", err)
	}
	logger.SetLevel(lvl)

	cfg := game.DefaultConfig()
	if *configPath != "" {
		if cfg, err = game.LoadConfig(*configPath); err != nil {
			logger.Fatal("failed to load config", "err", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *width > 0 {
		cfg.ScreenWidth = *width
	}
	if *height > 0 {
		cfg.ScreenHeight = *height
	}
	// Touch devices get lighter explosions
	if *touch {
		cfg.ParticleCount = max(1, cfg.ParticleCount/2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config rejected", "err", err)
	}

	logger.Info("starting", "gomaxprocs", runtime.GOMAXPROCS(0), "touch", *touch, "seed", cfg.Seed)

	opts := client.Options{
		Touch:      *touch,
		Mute:       *mute,
		ProfileDir: *profileDir,
		Logger:     logger,
	}
	var recorder *replay.Recorder
	if *record != "" {
		recorder = replay.NewRecorder()
		opts.Observers = append(opts.Observers, recorder)
	}

	app := client.New(cfg, opts)

	ebiten.SetWindowSize(int(cfg.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle("Tank War")
	ebiten.SetWindowResizable(true)

	runErr := ebiten.RunGame(app)

	if recorder != nil {
		if rec := recorder.Recording(); rec != nil {
			if err := replay.Save(*record, rec); err != nil {
				logger.Error("failed to save replay", "err", err)
			} else {
				logger.Info("replay saved", "path", *record, "frames", len(rec.Frames))
			}
		}
	}
	logger.Info(app.Summary())

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		logger.Fatal("game exited", "err", runErr)
	}
}
