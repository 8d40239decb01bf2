package engine

import (
	"github.com/vovakirdan/tickrun/internal/config"
)

// CheckReload reloads the base config when its modification time moved
// past the last one seen. It reports whether a reload happened.
// Stat failures are ignored; the loop never stops because of them.
func (e *Engine) CheckReload() bool {
	if !e.started {
		return false
	}
	mod, err := e.opts.Stat(e.opts.ConfigPath)
	if err != nil {
		return false
	}
	if !mod.After(e.lastMod) {
		return false
	}
	e.lastMod = mod

	prev := e.cfg
	next := e.loader.Load(e.opts.ConfigPath)
	e.logger.Info("config reloaded", "path", e.opts.ConfigPath, "changed", config.Diff(prev, next))

	e.cfg = next
	e.applyWorld(next)
	e.enforceValid("invalid reload; defaults")

	if next.SpritePlayer != "" {
		e.spritePlayer = next.SpritePlayer
	}
	if next.SpriteObstacle != "" {
		e.spriteObstacle = next.SpriteObstacle
	}

	if next.Lang != prev.Lang {
		e.locale.Load(e.opts.LocaleDir, next.Lang)
	}
	e.applyAudioMap(next.AudioMap)

	e.opts.Sink.Play("config", 2, "reload")
	return true
}
