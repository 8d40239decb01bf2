package core

// Positionable is anything that has a position on the grid and can be moved.
// Entities compose a Body instead of inheriting from a shared base type.
type Positionable interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Move(dx, dy float64)
}

// Body holds a mutable position. Embed it to make a type Positionable.
type Body struct {
	X, Y float64
}

// Position returns the current coordinates.
func (b *Body) Position() (float64, float64) {
	return b.X, b.Y
}

// SetPosition teleports the body.
func (b *Body) SetPosition(x, y float64) {
	b.X, b.Y = x, y
}

// Move translates the body in place.
func (b *Body) Move(dx, dy float64) {
	b.X += dx
	b.Y += dy
}

// Cell returns the integer grid cell the body occupies.
func (b *Body) Cell() (int, int) {
	return int(b.X), int(b.Y)
}

// Player is the controllable entity.
type Player struct {
	Body
	Name string
}

// NewPlayer creates a player at (x, y).
func NewPlayer(name string, x, y float64) *Player {
	return &Player{Body: Body{X: x, Y: y}, Name: name}
}

// Rect returns the player's unit bounding box, anchored at the cell it is drawn in.
func (p *Player) Rect() Rect {
	return UnitRect(p.X, p.Y)
}

var _ Positionable = (*Player)(nil)
