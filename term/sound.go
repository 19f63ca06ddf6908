package term

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"tankwar/game"
)

const sampleRate = beep.SampleRate(44100)

// soundBoard mixes short synthesized effects for simulation events
type soundBoard struct {
	mixer *beep.Mixer
	noise *rand.Rand
}

// newSoundBoard opens the speaker. Callers treat errors as non-fatal.
func newSoundBoard() (*soundBoard, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	b := &soundBoard{
		mixer: &beep.Mixer{},
		noise: rand.New(rand.NewSource(1)), // #nosec G404 -- noise texture only
	}
	speaker.Play(b.mixer)
	return b, nil
}

// OnEvent implements game.Listener
func (b *soundBoard) OnEvent(e game.Event) {
	switch e.Type {
	case game.EventShot:
		freq := 950.0
		if e.Owner == game.OwnerEnemy {
			freq = 520
		}
		b.tone(freq, 60*time.Millisecond, 0.25)
	case game.EventEnemyDestroyed, game.EventPlayerDestroyed:
		b.burst(350*time.Millisecond, 0.4)
	case game.EventFirework:
		b.burst(150*time.Millisecond, 0.15)
	}
}

func (b *soundBoard) tone(freq float64, d time.Duration, vol float64) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	b.add(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   math.Log2(vol),
	})
}

// burst plays decaying white noise
func (b *soundBoard) burst(d time.Duration, vol float64) {
	total := sampleRate.N(d)
	pos := 0
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := math.Pow(1-float64(pos)/float64(total), 2)
			v := (b.noise.Float64()*2 - 1) * vol * env
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
	b.add(noise)
}

func (b *soundBoard) add(s beep.Streamer) {
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer
func (b *soundBoard) Close() {
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
}
