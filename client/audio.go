package client

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"tankwar/game"
)

const sampleRate = 44100

// soundBoard plays short synthesized effects for simulation events. The
// clips are rendered once as 16-bit little-endian stereo PCM.
type soundBoard struct {
	ctx       *audio.Context
	shot      []byte
	enemyShot []byte
	explosion []byte
	firework  []byte
}

func newSoundBoard() *soundBoard {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	noise := rand.New(rand.NewSource(1)) // #nosec G404 -- noise texture only
	return &soundBoard{
		ctx:       ctx,
		shot:      tone(950, 0.07, 0.25),
		enemyShot: tone(520, 0.08, 0.18),
		explosion: burst(noise, 0.35, 0.4),
		firework:  burst(noise, 0.15, 0.15),
	}
}

// OnEvent implements game.Listener
func (b *soundBoard) OnEvent(e game.Event) {
	switch e.Type {
	case game.EventShot:
		if e.Owner == game.OwnerPlayer {
			b.play(b.shot)
		} else {
			b.play(b.enemyShot)
		}
	case game.EventEnemyDestroyed, game.EventPlayerDestroyed:
		b.play(b.explosion)
	case game.EventFirework:
		b.play(b.firework)
	}
}

func (b *soundBoard) play(clip []byte) {
	p := b.ctx.NewPlayerFromBytes(clip)
	p.Play()
}

// tone renders a sine blip with a linear fade out
func tone(freq, seconds, amp float64) []byte {
	n := int(sampleRate * seconds)
	pcm := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * amp * env
		putSample(pcm, i, v)
	}
	return pcm
}

// burst renders decaying white noise
func burst(rng *rand.Rand, seconds, amp float64) []byte {
	n := int(sampleRate * seconds)
	pcm := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := math.Pow(1-float64(i)/float64(n), 2)
		v := (rng.Float64()*2 - 1) * amp * env
		putSample(pcm, i, v)
	}
	return pcm
}

// putSample writes the same value to both channels of frame i
func putSample(pcm []byte, i int, v float64) {
	s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
	pcm[4*i] = byte(s)
	pcm[4*i+1] = byte(s >> 8)
	pcm[4*i+2] = byte(s)
	pcm[4*i+3] = byte(s >> 8)
}
