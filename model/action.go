package model

// Action is the single order a policy returns for the next frame. The set of
// variants is closed: Move, Shoot and Stop.
type Action interface {
	Kind() string
	action()
}

const (
	KindMove  = "MOVE"
	KindShoot = "SHOOT"
	KindStop  = "STOP"
)

// Move drives along Direction. The engine normalizes, so any non-zero
// length is fine.
type Move struct {
	Direction Vec
}

// Shoot fires at Angle degrees (0 = +x, 90 = +y).
type Shoot struct {
	Angle float64
}

// Stop holds position for the frame.
type Stop struct{}

func (Move) Kind() string  { return KindMove }
func (Shoot) Kind() string { return KindShoot }
func (Stop) Kind() string  { return KindStop }

func (Move) action()  {}
func (Shoot) action() {}
func (Stop) action()  {}

// MoveAlong returns a Move along the unit heading for deg.
func MoveAlong(deg float64) Move {
	return Move{Direction: Heading(deg)}
}

// MoveToward returns a Move by the raw displacement from one point to another.
func MoveToward(from, to Vec) Move {
	return Move{Direction: to.Sub(from)}
}
