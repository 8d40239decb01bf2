package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Accepted ranges for a playable world.
const (
	MinWidth  = 10
	MaxWidth  = 100
	MinHeight = 5
	MaxHeight = 60
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the world size and the start position.
// The start position must lie in [0,width) x [0,height).
func Validate(cfg Config) error {
	if cfg.Width < MinWidth || cfg.Width > MaxWidth {
		return fmt.Errorf("%w: width %d out of range [%d,%d]", ErrInvalidConfig, cfg.Width, MinWidth, MaxWidth)
	}
	if cfg.Height < MinHeight || cfg.Height > MaxHeight {
		return fmt.Errorf("%w: height %d out of range [%d,%d]", ErrInvalidConfig, cfg.Height, MinHeight, MaxHeight)
	}
	if cfg.StartX < 0 || cfg.StartX >= cfg.Width || cfg.StartY < 0 || cfg.StartY >= cfg.Height {
		return fmt.Errorf("%w: player start (%d,%d) out of bounds", ErrInvalidConfig, cfg.StartX, cfg.StartY)
	}
	return nil
}

// Valid runs Validate and reports a failure on logger's error level.
func Valid(cfg Config, logger *log.Logger) bool {
	if err := Validate(cfg); err != nil {
		if logger != nil {
			logger.Error("config rejected", "error", err)
		}
		return false
	}
	return true
}
