// Package sound plays the short synthesized effects of the game.
package sound

import (
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

type Effect int

const (
	EffectEat Effect = iota
	EffectGameOver
)

type Player struct {
	ctx     *audio.Context
	players map[Effect]*audio.Player

	mu    sync.Mutex
	muted bool
}

// NewPlayer creates the audio context. Ebiten allows one context per process.
func NewPlayer(muted bool) *Player {
	ctx := audio.NewContext(sampleRate)

	return &Player{
		ctx: ctx,
		players: map[Effect]*audio.Player{
			EffectEat:      ctx.NewPlayerFromBytes(Tone(880, 0.1)),
			EffectGameOver: ctx.NewPlayerFromBytes(Tone(220, 0.5)),
		},
		muted: muted,
	}
}

func (p *Player) Play(effect Effect) {
	if p.Muted() {
		return
	}

	player := p.players[effect]
	if player == nil {
		return
	}

	if err := player.SetPosition(0); err != nil {
		log.Printf("SOUND: rewind failed: %v", err)
		return
	}
	player.Play()
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Toggle flips the mute flag and returns the new value.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Tone renders a decaying sine wave as 16-bit little-endian stereo PCM.
func Tone(freq, durSec float64) []byte {
	n := int(float64(sampleRate) * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		envelope := math.Exp(-3 * t)
		v := int16(math.Sin(2*math.Pi*freq*t) * 6000 * envelope)
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}
