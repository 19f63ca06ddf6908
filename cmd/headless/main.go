// Command headless plays autopiloted rounds without a display and prints a
// per-run and aggregate report. Rounds can be recorded and verified by
// replaying them.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"tankwar/game"
	"tankwar/input"
	"tankwar/replay"
)

type runStats struct {
	runIndex int
	seed     int64

	frames    int
	score     int
	level     int
	gameOver  bool
	elapsedMs float64

	playerShots int
	enemyShots  int
	kills       int
	waves       int
	fireworks   int

	verified  bool
	verifyErr error
	recording *replay.Recording
}

// manualScheduler runs the loop at a fixed 60 Hz virtual clock
type manualScheduler struct {
	nextID game.FrameID
	id     game.FrameID
	fn     func(now float64)
	now    float64
}

func (s *manualScheduler) RequestFrame(fn func(now float64)) game.FrameID {
	s.nextID++
	s.id, s.fn = s.nextID, fn
	return s.id
}

func (s *manualScheduler) CancelFrame(id game.FrameID) {
	if id == s.id {
		s.id, s.fn = 0, nil
	}
}

func (s *manualScheduler) step() bool {
	fn := s.fn
	if fn == nil {
		return false
	}
	s.id, s.fn = 0, nil
	fn(s.now)
	s.now += game.FrameMillis
	return true
}

func main() {
	var (
		runs       int
		ticks      int
		seedBase   int64
		seedStep   int64
		configPath string
		recordDir  string
		verify     bool
		logLevel   string
	)

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 3600, "maximum ticks per round")
	flag.Int64Var(&seedBase, "seed-base", 42, "seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "JSON config overlay")
	flag.StringVar(&recordDir, "record-dir", "", "write one replay file per run into this directory")
	flag.BoolVar(&verify, "verify", true, "replay each round and check it reproduces")
	flag.StringVar(&logLevel, "log-level", "warn", "log level for simulation events")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "headless"})
	if lvl, err := log.ParseLevel(logLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Fatal("bad log level", "level", logLevel, "err", err)
	}

	if runs <= 0 {
		logger.Fatal("-runs must be > 0")
	}
	if ticks <= 0 {
		logger.Fatal("-ticks must be > 0")
	}

	cfg := game.DefaultConfig()
	if configPath != "" {
		loaded, err := game.LoadConfig(configPath)
		if err != nil {
			logger.Fatal("failed to load config", "err", err)
		}
		cfg = loaded
	}
	if recordDir != "" {
		if err := os.MkdirAll(recordDir, 0o755); err != nil {
			logger.Fatal("failed to create record dir", "err", err)
		}
	}

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d verify=%v\n\n", runs, ticks, seedBase, seedStep, verify)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runRound(i+1, seed, ticks, cfg, verify, logger)
		if recordDir != "" {
			path := filepath.Join(recordDir, fmt.Sprintf("run-%03d-seed-%d.replay", rs.runIndex, rs.seed))
			if err := replay.Save(path, rs.recording); err != nil {
				logger.Error("failed to save replay", "path", path, "err", err)
			}
		}
		all = append(all, rs)
		printRun(os.Stdout, rs)
	}

	printAggregate(os.Stdout, aggregate(all))
}

// runRound plays one autopiloted round through the frame loop until the
// round ends or the tick budget runs out.
func runRound(runIndex int, seed int64, ticks int, cfg game.Config, verify bool, logger *log.Logger) runStats {
	cfg.Seed = seed
	rs := runStats{runIndex: runIndex, seed: seed}

	events := game.NewDispatcher()
	events.SubscribeAll(game.NewEventLogger(logger))
	events.Subscribe(game.EventFirework, game.ListenerFunc(func(game.Event) { rs.fireworks++ }))

	sched := &manualScheduler{}
	var pilot *input.Autopilot
	loop := game.NewLoop(cfg, sched, game.IntentFunc(func() game.Intent { return pilot.Intent() }), events)
	pilot = input.NewAutopilot(loop.State)
	recorder := replay.NewRecorder()
	loop.Observe(recorder)
	loop.Start()

	for i := 0; i < ticks && !loop.State().IsGameOver; i++ {
		if !sched.step() {
			break
		}
	}
	loop.Stop()

	s := loop.State()
	rs.frames = s.Stats.Frames
	rs.elapsedMs = s.Stats.Elapsed
	rs.score = s.Score
	rs.level = s.Level
	rs.gameOver = s.IsGameOver
	rs.playerShots = s.Stats.PlayerShots
	rs.enemyShots = s.Stats.EnemyShots
	rs.kills = s.Stats.Kills
	rs.waves = s.Stats.WavesSpawned
	rs.recording = recorder.Recording()

	if verify {
		rs.verifyErr = replay.Verify(rs.recording)
		rs.verified = rs.verifyErr == nil
	}
	return rs
}

type aggregateStats struct {
	runs       int
	gameOvers  int
	totalScore int
	bestScore  int
	bestSeed   int64
	maxLevel   int
	kills      int
	shots      int
	verifyFail int
}

func (a aggregateStats) meanScore() float64 {
	if a.runs == 0 {
		return 0
	}
	return float64(a.totalScore) / float64(a.runs)
}

func (a aggregateStats) accuracy() float64 {
	if a.shots == 0 {
		return 0
	}
	return float64(a.kills) / float64(a.shots)
}

func aggregate(all []runStats) aggregateStats {
	var a aggregateStats
	a.bestScore = -1
	for _, rs := range all {
		a.runs++
		a.totalScore += rs.score
		a.kills += rs.kills
		a.shots += rs.playerShots
		a.maxLevel = max(a.maxLevel, rs.level)
		if rs.gameOver {
			a.gameOvers++
		}
		if rs.verifyErr != nil {
			a.verifyFail++
		}
		if rs.score > a.bestScore {
			a.bestScore, a.bestSeed = rs.score, rs.seed
		}
	}
	return a
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "outcome: score=%d level=%d game_over=%v frames=%d elapsed_ms=%.0f\n",
		rs.score, rs.level, rs.gameOver, rs.frames, rs.elapsedMs)
	fmt.Fprintf(w, "combat: player_shots=%d enemy_shots=%d kills=%d waves=%d fireworks=%d\n",
		rs.playerShots, rs.enemyShots, rs.kills, rs.waves, rs.fireworks)
	switch {
	case rs.verifyErr != nil:
		fmt.Fprintf(w, "replay: FAILED (%v)\n", rs.verifyErr)
	case rs.verified:
		fmt.Fprintf(w, "replay: ok (%d frames)\n", len(rs.recording.Frames))
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, a aggregateStats) {
	fmt.Fprintf(w, "=== Aggregate ===\n")
	fmt.Fprintf(w, "runs=%d game_overs=%d mean_score=%.1f best_score=%d (seed=%d) max_level=%d\n",
		a.runs, a.gameOvers, a.meanScore(), a.bestScore, a.bestSeed, a.maxLevel)
	fmt.Fprintf(w, "kills=%d player_shots=%d hit_rate=%.2f replay_failures=%d\n",
		a.kills, a.shots, a.accuracy(), a.verifyFail)
}
