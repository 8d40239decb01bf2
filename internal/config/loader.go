package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/audio"
)

// DefaultPath is the base config file name.
const DefaultPath = "config.toml"

// Loader resolves a base config file plus its profile overlay.
type Loader struct {
	// Sink receives the notice emitted when the size had to be normalized.
	Sink audio.Sink
	// Logger reports unreadable files and dropped tokens.
	Logger *log.Logger
}

// NewLoader creates a loader. Nil arguments are replaced with silent defaults.
func NewLoader(sink audio.Sink, logger *log.Logger) *Loader {
	if sink == nil {
		sink = audio.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{Sink: sink, Logger: logger}
}

// Load resolves the configuration at path.
// Search order: defaults -> base file -> config.<profile>.toml next to it.
// Missing or unreadable files leave the previous values in place; Load never fails.
func Load(path string) Config {
	return NewLoader(nil, nil).Load(path)
}

// Load resolves the configuration at path. See the package-level Load.
func (l *Loader) Load(path string) Config {
	if l.Sink == nil || l.Logger == nil {
		l = NewLoader(l.Sink, l.Logger)
	}

	cfg := Default()

	if entries, ok := l.read(path); ok {
		l.apply(&cfg, entries, false)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		l.Logger.Warn("non-positive size, using defaults", "width", cfg.Width, "height", cfg.Height)
		cfg.Width, cfg.Height = DefaultWidth, DefaultHeight
		l.Sink.Play("config", 1, "invalid width/height; defaults applied")
	}

	if cfg.Profile != "" {
		overlay := OverlayPath(path, cfg.Profile)
		if entries, ok := l.read(overlay); ok {
			l.Logger.Debug("applying profile overlay", "profile", cfg.Profile, "path", overlay)
			l.apply(&cfg, entries, true)
		}
	}

	return cfg
}

// OverlayPath returns the overlay file for profile, next to the base file.
func OverlayPath(base, profile string) string {
	return filepath.Join(filepath.Dir(base), "config."+profile+".toml")
}

// read parses a file, reporting false when it cannot be opened.
func (l *Loader) read(path string) ([]Entry, bool) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.Logger.Warn("cannot open config", "path", path, "error", err)
		}
		return nil, false
	}
	defer f.Close()

	entries, err := ParseLines(f)
	if err != nil {
		// Keep whatever was read before the failure.
		l.Logger.Warn("config read interrupted", "path", path, "error", err)
	}
	return entries, true
}

// apply writes entries onto cfg. Scalars overwrite. The obstacle list is
// appended to by the base file and replaced by an overlay.
func (l *Loader) apply(cfg *Config, entries []Entry, overlay bool) {
	for _, e := range entries {
		switch e.Key {
		case "width":
			l.setInt(&cfg.Width, e)
		case "height":
			l.setInt(&cfg.Height, e)
		case "player_x":
			l.setInt(&cfg.StartX, e)
		case "player_y":
			l.setInt(&cfg.StartY, e)
		case "sprite_player":
			cfg.SpritePlayer = e.Value
		case "sprite_obstacle":
			cfg.SpriteObstacle = e.Value
		case "profile":
			// The profile selects the overlay; an overlay cannot rename it.
			if !overlay {
				cfg.Profile = e.Value
			}
		case "audio_map":
			cfg.AudioMap = e.Value
		case "lang":
			cfg.Lang = e.Value
		case "obstacles":
			if overlay {
				cfg.Obstacles = nil
			}
			cfg.Obstacles = append(cfg.Obstacles, ParseObstacles(e.Value)...)
		}
	}
}

// setInt parses e.Value into dst, leaving dst unchanged on a malformed value.
func (l *Loader) setInt(dst *int, e Entry) {
	n, err := strconv.Atoi(e.Value)
	if err != nil {
		l.Logger.Warn("dropping malformed integer", "key", e.Key, "value", e.Value, "line", e.Line)
		return
	}
	*dst = n
}

// ModTime returns the modification time of path. It is the default stat
// collaborator for hot reload.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
