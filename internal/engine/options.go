package engine

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/audio"
	"github.com/vovakirdan/tickrun/internal/config"
	"github.com/vovakirdan/tickrun/internal/storage"
)

// Run defaults.
const (
	DefaultMaxTicks  = 300
	DefaultTargetFPS = 60
	PlayerName       = "Eddi"
)

// Renderer receives one multi-line text block per frame or banner line.
type Renderer interface {
	Render(frame string)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(frame string)

// Render implements Renderer.
func (f RendererFunc) Render(frame string) { f(frame) }

// InputSource yields at most one key code per poll without blocking.
type InputSource interface {
	Poll() (byte, bool)
}

// StatFunc reports the modification time of a file.
type StatFunc func(path string) (time.Time, error)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	ConfigPath string
	// LocaleDir holds strings_<lang>.txt files; defaults to the config directory.
	LocaleDir string

	Sink     audio.Sink
	Renderer Renderer
	Input    InputSource
	Scores   storage.HighScoreStore
	Stat     StatFunc
	// Sleep paces ticks. Nil disables pacing.
	Sleep  func(time.Duration)
	Logger *log.Logger

	// MaxTicks bounds Run. Zero means DefaultMaxTicks, negative means no bound.
	MaxTicks  int
	TargetFPS int
	Version   string
}

type noInput struct{}

func (noInput) Poll() (byte, bool) { return 0, false }

func (o Options) withDefaults() Options {
	if o.ConfigPath == "" {
		o.ConfigPath = config.DefaultPath
	}
	if o.LocaleDir == "" {
		o.LocaleDir = filepath.Dir(o.ConfigPath)
	}
	if o.Sink == nil {
		o.Sink = audio.Discard
	}
	if o.Renderer == nil {
		o.Renderer = RendererFunc(func(string) {})
	}
	if o.Input == nil {
		o.Input = noInput{}
	}
	if o.Scores == nil {
		o.Scores = storage.Discard
	}
	if o.Stat == nil {
		o.Stat = config.ModTime
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.MaxTicks == 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	if o.TargetFPS <= 0 {
		o.TargetFPS = DefaultTargetFPS
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	return o
}
