package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	toneDuration   = 90 * time.Millisecond
	toneRelease    = 30 * time.Millisecond
	toneBaseFreq   = 880.0 // priority 0
	toneVolume     = 0.35
)

// ToneSink plays a short beep per notification. Lower priority numbers
// sound higher. Until Init succeeds every Play is silently dropped.
type ToneSink struct {
	mu          sync.Mutex
	initialized bool
	logger      *log.Logger
}

// NewToneSink creates an uninitialized tone sink.
func NewToneSink(logger *log.Logger) *ToneSink {
	return &ToneSink{logger: logger}
}

// Init opens the speaker. Calling it again after success is a no-op.
func (t *ToneSink) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(50*time.Millisecond)); err != nil {
		if t.logger != nil {
			t.logger.Warn("speaker unavailable, tones disabled", "error", err)
		}
		return err
	}
	t.initialized = true
	return nil
}

// Close stops playback.
func (t *ToneSink) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}
	speaker.Clear()
	t.initialized = false
}

// Play queues a tone for the notification.
func (t *ToneSink) Play(category string, priority int, _ string) {
	t.mu.Lock()
	ready := t.initialized
	t.mu.Unlock()

	if !ready {
		return
	}
	speaker.Play(Tone(category, priority))
}

// ToneFrequency maps a priority to a pitch: one semitone down per level,
// clamped to two octaves.
func ToneFrequency(priority int) float64 {
	if priority < 0 {
		priority = 0
	}
	if priority > 24 {
		priority = 24
	}
	return toneBaseFreq * math.Pow(2, -float64(priority)/12)
}

// Tone builds the streamer for a notification. Config notices use a square
// wave so they stand apart from gameplay events.
func Tone(category string, priority int) beep.Streamer {
	square := category == "config"
	osc := &toneOscillator{
		freq:    ToneFrequency(priority),
		total:   toneSampleRate.N(toneDuration),
		release: toneSampleRate.N(toneRelease),
		square:  square,
		rate:    toneSampleRate,
	}
	return &effects.Volume{Streamer: osc, Base: 2, Volume: math.Log2(toneVolume)}
}

// toneOscillator is a fixed-length sine/square generator with a linear release.
type toneOscillator struct {
	freq     float64
	phase    float64
	position int
	total    int
	release  int
	square   bool
	rate     beep.SampleRate
}

func (o *toneOscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		if o.square {
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		}

		if remaining := o.total - o.position; remaining < o.release {
			val *= float64(remaining) / float64(o.release)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *toneOscillator) Err() error { return nil }
