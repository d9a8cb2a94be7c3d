// Package sound plays the terminal frontend's beeps through the system
// speaker.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

func NewManager(muted bool) *Manager {
	return &Manager{
		mixer: &beep.Mixer{},
		muted: muted,
	}
}

// Initialize opens the speaker. A manager that failed to initialize stays
// silent.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || m.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

func (m *Manager) Eat() {
	m.play(880, 100*time.Millisecond)
}

func (m *Manager) GameOver() {
	m.play(220, 500*time.Millisecond)
}

func (m *Manager) play(freq float64, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return
	}

	speaker.Lock()
	m.mixer.Add(newTone(freq, d))
	speaker.Unlock()
}

// tone is a sine wave with an exponential decay.
type tone struct {
	freq     float64
	position int
	length   int
}

func newTone(freq float64, d time.Duration) beep.Streamer {
	return &tone{freq: freq, length: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		sec := float64(t.position) / float64(sampleRate)
		v := 0.2 * math.Sin(2*math.Pi*t.freq*sec) * math.Exp(-3*sec)
		samples[i][0] = v
		samples[i][1] = v
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
