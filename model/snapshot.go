package model

import "fmt"

// GameMode is the active ruleset. The numeric values are fixed by the engine.
type GameMode int

const (
	Scramble  GameMode = 1 // coin collection, bullets only knock back
	Labyrinth GameMode = 2
	Duel      GameMode = 3
)

func (m GameMode) String() string {
	switch m {
	case Scramble:
		return "scramble"
	case Labyrinth:
		return "labyrinth"
	case Duel:
		return "duel"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the modes the engine can send.
func (m GameMode) Valid() bool {
	return m == Scramble || m == Labyrinth || m == Duel
}

// Combat reports whether the mode is decided by eliminating enemies.
func (m GameMode) Combat() bool {
	return m == Labyrinth || m == Duel
}

// Snapshot is the engine's view of the world for one frame. It is rebuilt
// every frame and must be treated as read-only.
type Snapshot struct {
	Me       Self     `json:"me"`
	Enemies  []Enemy  `json:"enemies"`
	Coins    []Coin   `json:"coins"`
	Walls    []Wall   `json:"walls"`
	Bullets  []Bullet `json:"bullets"`
	Sensors  *Sensors `json:"sensors,omitempty"` // nil when the engine has no ray data
	Mode     GameMode `json:"game_mode"`
	TimeLeft float64  `json:"time_left"`
}

type Self struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"` // facing, degrees
	Health int     `json:"health"`
	Ammo   int     `json:"ammo"`
	Coins  int     `json:"coins"` // Scramble score
}

func (s Self) Pos() Vec { return Vec{X: s.X, Y: s.Y} }

type Enemy struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (e Enemy) Pos() Vec { return Vec{X: e.X, Y: e.Y} }

type Coin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Coin) Pos() Vec { return Vec{X: c.X, Y: c.Y} }

// Wall is an axis-aligned rectangle anchored at its top-left corner.
type Wall struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bullet is a hostile projectile. Velocity is in world units per tick.
type Bullet struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

func (b Bullet) Pos() Vec      { return Vec{X: b.X, Y: b.Y} }
func (b Bullet) Velocity() Vec { return Vec{X: b.VX, Y: b.VY} }

// Sensors holds ray-cast distances to the nearest wall, capped at the
// sensor range. Left and right rays are 30° either side of the facing.
type Sensors struct {
	Front float64 `json:"front"`
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}
