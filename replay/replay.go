// Package replay records rounds as a seed plus the per-frame delta and
// intent, and replays them through a fresh simulation.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"tankwar/game"
)

// FormatVersion is bumped when the file layout changes
const FormatVersion = 1

// ErrMismatch is returned by Verify when a replay does not reproduce the
// recorded outcome.
var ErrMismatch = errors.New("replay mismatch")

// Frame is one recorded tick
type Frame struct {
	Delta  float64     `msgpack:"dt"`
	Intent game.Intent `msgpack:"in"`
}

// Summary is the outcome of a round
type Summary struct {
	Score    int  `msgpack:"score"`
	Level    int  `msgpack:"level"`
	Frames   int  `msgpack:"frames"`
	GameOver bool `msgpack:"game_over"`
}

// Recording is everything needed to replay one round
type Recording struct {
	Version int         `msgpack:"version"`
	Config  game.Config `msgpack:"config"`
	Frames  []Frame     `msgpack:"frames"`
	Result  Summary     `msgpack:"result"`
}

// Seed returns the round seed
func (r *Recording) Seed() int64 {
	return r.Config.Seed
}

// Summarize reads the outcome of a state
func Summarize(s *game.State) Summary {
	return Summary{
		Score:    s.Score,
		Level:    s.Level,
		Frames:   s.Stats.Frames,
		GameOver: s.IsGameOver,
	}
}

// Recorder captures the current round. It implements game.TickObserver;
// each round start discards the previous recording.
type Recorder struct {
	state *game.State
	rec   *Recording
}

// NewRecorder creates an idle recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RoundStarted implements game.TickObserver
func (r *Recorder) RoundStarted(s *game.State) {
	cfg := s.Config()
	cfg.Seed = s.Seed()
	r.state = s
	r.rec = &Recording{
		Version: FormatVersion,
		Config:  cfg,
	}
}

// Ticked implements game.TickObserver
func (r *Recorder) Ticked(dt float64, in game.Intent) {
	if r.rec == nil {
		return
	}
	r.rec.Frames = append(r.rec.Frames, Frame{Delta: dt, Intent: in})
}

// Recording returns the current round with its outcome so far, or nil if no
// round has started.
func (r *Recorder) Recording() *Recording {
	if r.rec == nil {
		return nil
	}
	r.rec.Result = Summarize(r.state)
	return r.rec
}

// Play re-simulates a recording and returns the final state
func Play(rec *Recording) (*game.State, error) {
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %d", rec.Version)
	}
	if err := rec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("replay config: %w", err)
	}

	s := game.NewState(rec.Config, nil)
	for _, f := range rec.Frames {
		s.Tick(f.Delta, f.Intent)
	}
	return s, nil
}

// Verify replays a recording and checks it ends the way it was recorded
func Verify(rec *Recording) error {
	s, err := Play(rec)
	if err != nil {
		return err
	}
	if got := Summarize(s); got != rec.Result {
		return fmt.Errorf("%w: recorded %+v, replayed %+v", ErrMismatch, rec.Result, got)
	}
	return nil
}

// Save writes a recording to path
func Save(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write replay: %w", err)
	}
	return f.Close()
}

// Load reads a recording from path
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()

	var rec Recording
	if err := msgpack.NewDecoder(bufio.NewReader(f)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &rec, nil
}
