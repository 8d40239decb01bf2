package engine

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tickrun/internal/config"
	"github.com/vovakirdan/tickrun/internal/core"
)

// Background fills empty cells.
const Background = '.'

// Frame renders the grid followed by the status line.
func (e *Engine) Frame() string {
	return e.Grid().String() + e.StatusLine()
}

// Grid draws obstacles, then the player, onto a fresh screen.
func (e *Engine) Grid() *core.Screen {
	w, h := e.width, e.height
	if w <= 0 || h <= 0 {
		w, h = config.DefaultWidth, config.DefaultHeight
	}
	screen := core.NewScreen(w, h, Background)

	pg, og := e.Glyphs()
	for _, o := range e.obstacles {
		screen.Set(cell(o.X), cell(o.Y), og)
	}

	px, py := e.player.Position()
	screen.Set(cell(px), cell(py), pg)
	return screen
}

// StatusLine returns "Score N Level N High N".
func (e *Engine) StatusLine() string {
	return fmt.Sprintf("Score %d Level %d High %d", e.score, e.level, e.highScore)
}

// Draw sends the current frame to the renderer.
func (e *Engine) Draw() {
	e.opts.Renderer.Render(e.Frame())
}

func cell(v float64) int {
	return int(math.Floor(v))
}

// glyph returns the first rune of sprite, or fallback when sprite is empty.
func glyph(sprite string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(sprite)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}

// Glyphs returns the runes drawn for the player and for obstacles.
func (e *Engine) Glyphs() (player, obstacle rune) {
	return glyph(e.spritePlayer, 'P'), glyph(e.spriteObstacle, 'O')
}
