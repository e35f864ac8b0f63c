package model

import (
	"errors"
	"fmt"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Validate checks the snapshot once at the boundary. All problems are
// reported together; a missing sensor reading is not a problem.
func (s *Snapshot) Validate() error {
	var errs []error

	if !s.Mode.Valid() {
		errs = append(errs, fmt.Errorf("game_mode %d: want 1, 2 or 3", int(s.Mode)))
	}
	if !s.Me.Pos().Finite() || !finite(s.Me.Angle) {
		errs = append(errs, errors.New("me: non-finite position or angle"))
	}
	if s.Me.Health < 0 || s.Me.Health > 100 {
		errs = append(errs, fmt.Errorf("me: health %d outside 0-100", s.Me.Health))
	}
	if s.Me.Ammo < 0 {
		errs = append(errs, fmt.Errorf("me: negative ammo %d", s.Me.Ammo))
	}
	if !finite(s.TimeLeft) {
		errs = append(errs, errors.New("time_left: not finite"))
	}

	for i, e := range s.Enemies {
		if !e.Pos().Finite() {
			errs = append(errs, fmt.Errorf("enemies[%d]: non-finite position", i))
		}
	}
	for i, c := range s.Coins {
		if !c.Pos().Finite() {
			errs = append(errs, fmt.Errorf("coins[%d]: non-finite position", i))
		}
	}
	for i, w := range s.Walls {
		if !(Vec{X: w.X, Y: w.Y}).Finite() || !finite(w.Width) || !finite(w.Height) {
			errs = append(errs, fmt.Errorf("walls[%d]: non-finite geometry", i))
		} else if w.Width < 0 || w.Height < 0 {
			errs = append(errs, fmt.Errorf("walls[%d]: negative size %gx%g", i, w.Width, w.Height))
		}
	}
	for i, b := range s.Bullets {
		if !b.Pos().Finite() || !b.Velocity().Finite() {
			errs = append(errs, fmt.Errorf("bullets[%d]: non-finite position or velocity", i))
		}
	}

	if s.Sensors != nil {
		r := s.Sensors
		if !finite(r.Front) || !finite(r.Left) || !finite(r.Right) ||
			r.Front < 0 || r.Left < 0 || r.Right < 0 {
			errs = append(errs, fmt.Errorf("sensors: distances must be finite and non-negative, got %+v", *r))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSnapshot, errors.Join(errs...))
}
