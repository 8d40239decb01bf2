// Package config loads the runtime's key=value configuration: a base file,
// an optional profile overlay, and the tokenizers for obstacle lists and
// audio routing maps. Loading never fails; validation is a separate step
// whose policy belongs to the caller.
package config

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tickrun/internal/core"
)

// Defaults applied before parsing and on normalization.
const (
	DefaultWidth  = 40
	DefaultHeight = 12
	DefaultStartX = 2
	DefaultStartY = 2
	DefaultLang   = "es"
)

// Config is one resolved world configuration.
// A Config is built by Load and never mutated afterwards; a reload yields a new value.
type Config struct {
	Width          int
	Height         int
	StartX         int
	StartY         int
	Obstacles      []core.Rect
	Profile        string
	SpritePlayer   string
	SpriteObstacle string
	AudioMap       string // raw "event:category[:priority];..." string
	Lang           string
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		StartX: DefaultStartX,
		StartY: DefaultStartY,
		Lang:   DefaultLang,
	}
}

// Diff returns the names of the fields that differ between prev and next,
// in declaration order.
func Diff(prev, next Config) []string {
	var changed []string
	if prev.Width != next.Width {
		changed = append(changed, "width")
	}
	if prev.Height != next.Height {
		changed = append(changed, "height")
	}
	if prev.StartX != next.StartX {
		changed = append(changed, "player_x")
	}
	if prev.StartY != next.StartY {
		changed = append(changed, "player_y")
	}
	if !slices.Equal(prev.Obstacles, next.Obstacles) {
		changed = append(changed, "obstacles")
	}
	if prev.Profile != next.Profile {
		changed = append(changed, "profile")
	}
	if prev.SpritePlayer != next.SpritePlayer {
		changed = append(changed, "sprite_player")
	}
	if prev.SpriteObstacle != next.SpriteObstacle {
		changed = append(changed, "sprite_obstacle")
	}
	if prev.AudioMap != next.AudioMap {
		changed = append(changed, "audio_map")
	}
	if prev.Lang != next.Lang {
		changed = append(changed, "lang")
	}
	return changed
}

// yamlConfig is the YAML view of a Config, with obstacles as [x, y] pairs.
type yamlConfig struct {
	Width          int      `yaml:"width"`
	Height         int      `yaml:"height"`
	PlayerX        int      `yaml:"player_x"`
	PlayerY        int      `yaml:"player_y"`
	Obstacles      [][2]int `yaml:"obstacles,flow"`
	Profile        string   `yaml:"profile,omitempty"`
	SpritePlayer   string   `yaml:"sprite_player,omitempty"`
	SpriteObstacle string   `yaml:"sprite_obstacle,omitempty"`
	AudioMap       string   `yaml:"audio_map,omitempty"`
	Lang           string   `yaml:"lang"`
}

// YAML renders the resolved configuration as YAML.
func (c Config) YAML() ([]byte, error) {
	view := yamlConfig{
		Width:          c.Width,
		Height:         c.Height,
		PlayerX:        c.StartX,
		PlayerY:        c.StartY,
		Obstacles:      make([][2]int, 0, len(c.Obstacles)),
		Profile:        c.Profile,
		SpritePlayer:   c.SpritePlayer,
		SpriteObstacle: c.SpriteObstacle,
		AudioMap:       c.AudioMap,
		Lang:           c.Lang,
	}
	for _, o := range c.Obstacles {
		view.Obstacles = append(view.Obstacles, [2]int{int(o.X), int(o.Y)})
	}
	return yaml.Marshal(view)
}
