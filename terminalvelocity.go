/*
Copyright © 2026 the superdrop authors.
This file is part of superdrop.

superdrop is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

superdrop is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with superdrop.  If not, see <http://www.gnu.org/licenses/>.
*/

package superdrop

import "math"

// TerminalVelocityFormula computes a superdroplet's terminal fall
// speed, m/s, given its radius.
type TerminalVelocityFormula interface {
	Velocity(radiusM float64) float64
}

// NullTerminalVelocity always returns zero, useful for isolating pure
// advection configurations in tests.
type NullTerminalVelocity struct{}

// Velocity implements TerminalVelocityFormula.
func (NullTerminalVelocity) Velocity(float64) float64 { return 0 }

// RogersYauTerminalVelocity implements the piecewise Stokes-regime fit
// from Rogers & Yau (1989), "A Short Course in Cloud Physics", ch. 8,
// valid beyond its formal Reynolds-number range up to a 2mm cap.
type RogersYauTerminalVelocity struct{}

const (
	ryR1 = 3e-5 // m
	ryR2 = 6e-4 // m
	ryR3 = 2e-3 // m

	ryK1 = 1.19e8 // m^-1 s^-1, eqn (8.5)
	ryK2 = 8000.  // s^-1, eqn (8.8)
	ryK3 = 201.   // m^1/2 s^-1, eqn (8.6)
	ryK4 = 9.     // m/s, max fall speed above r3
)

// Velocity implements TerminalVelocityFormula.
func (RogersYauTerminalVelocity) Velocity(r float64) float64 {
	switch {
	case r < ryR1:
		return ryK1 * r * r
	case r < ryR2:
		return ryK2 * r
	case r < ryR3:
		return ryK3 * math.Sqrt(r)
	default:
		return ryK4
	}
}
