package core

import (
	"strings"
)

// Screen is a 2D character buffer for rendering a frame.
// It decouples world rendering from the terminal: the engine draws runes
// into it and the front-end decides where the resulting text goes.
type Screen struct {
	width  int
	height int
	cells  [][]rune
}

// NewScreen creates a new screen buffer filled with the given background rune.
func NewScreen(width, height int, background rune) *Screen {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := &Screen{
		width:  width,
		height: height,
		cells:  make([][]rune, height),
	}
	for y := range s.cells {
		s.cells[y] = make([]rune, width)
	}
	s.Fill(background)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = r
		}
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (s *Screen) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.InBounds(x, y) {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	if !s.InBounds(x, y) {
		return ' '
	}
	return s.cells[y][x]
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	return string(s.cells[y])
}

// String converts the buffer to text. Every row, including the last,
// is terminated by a newline so a status line can be appended directly.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.height * (s.width + 1))

	for y := 0; y < s.height; y++ {
		sb.WriteString(string(s.cells[y]))
		sb.WriteByte('\n')
	}
	return sb.String()
}
