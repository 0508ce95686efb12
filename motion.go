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

// MotionFormula computes the coordinate displacement a particle
// undergoes over dt given its owning gridbox's state.
type MotionFormula interface {
	Delta(p *Particle, gbx *Gridbox, dt float64) (dz, dx, dy float64)
}

// SedimentationPlusWind combines a pluggable terminal-velocity
// formula with the owning gridbox's face-interpolated wind.
type SedimentationPlusWind struct {
	Terminal TerminalVelocityFormula
}

// Delta implements MotionFormula.
func (m SedimentationPlusWind) Delta(p *Particle, gbx *Gridbox, dt float64) (dz, dx, dy float64) {
	w := (gbx.State.WindZ[0] + gbx.State.WindZ[1]) / 2
	u := (gbx.State.WindX[0] + gbx.State.WindX[1]) / 2
	v := (gbx.State.WindY[0] + gbx.State.WindY[1]) / 2
	vterm := m.Terminal.Velocity(p.Radius)
	return (w - vterm) * dt, u * dt, v * dt
}

// StreamFunctionField evaluates an analytic 2-D flow (w, u) at a
// given (z, x) position, in m/s.
type StreamFunctionField func(z, x float64) (w, u float64)

// Prescribed2DFlow advances a particle through an analytic,
// divergence-free 2-D flow field using a predictor-corrector step.
// It never moves a particle along the y axis.
type Prescribed2DFlow struct {
	Field StreamFunctionField
}

// Delta implements MotionFormula.
func (m Prescribed2DFlow) Delta(p *Particle, gbx *Gridbox, dt float64) (dz, dx, dy float64) {
	w0, u0 := m.Field(p.Coord3, p.Coord1)
	zPred := p.Coord3 + w0*dt
	xPred := p.Coord1 + u0*dt
	w1, u1 := m.Field(zPred, xPred)
	return (w0 + w1) / 2 * dt, (u0 + u1) / 2 * dt, 0
}

// MotionKernel advances particle positions and gridbox assignment for
// one motion tick.
type MotionKernel struct {
	Formula      MotionFormula
	EnforceCFL   bool
}

func axisBounds(gbxmaps *GridboxMap, g uint32, axis Axis) Bounds {
	switch axis {
	case AxisZ:
		return gbxmaps.BoundsZ(g)
	case AxisX:
		return gbxmaps.BoundsX(g)
	default:
		return gbxmaps.BoundsY(g)
	}
}

func coordFor(p *Particle, axis Axis) float64 {
	switch axis {
	case AxisZ:
		return p.Coord3
	case AxisX:
		return p.Coord1
	default:
		return p.Coord2
	}
}

func setCoord(p *Particle, axis Axis, v float64) {
	switch axis {
	case AxisZ:
		p.Coord3 = v
	case AxisX:
		p.Coord1 = v
	default:
		p.Coord2 = v
	}
}

// Advance applies one motion step to every alive particle within
// gridboxes' current refs. Gridboxes may be processed independently
// (team-parallel); particles within a gridbox are independent of one
// another. Returns a *CFLViolation if EnforceCFL is set and any
// particle's displacement exceeds its gridbox's extent on any axis.
func (k MotionKernel) Advance(dt float64, gbxmaps *GridboxMap, gridboxes []Gridbox, domainParticles []Particle) error {
	for gi := range gridboxes {
		gbx := &gridboxes[gi]
		lo, hi := gbx.Refs[0], gbx.Refs[1]
		for i := lo; i < hi; i++ {
			p := &domainParticles[i]
			if !p.Alive() {
				continue
			}
			dz, dx, dy := k.Formula.Delta(p, gbx, dt)

			if k.EnforceCFL {
				if err := checkCFL(gbxmaps, p.GbxIndex, dz, dx, dy); err != nil {
					return err
				}
			}

			p.Coord3 += dz
			p.Coord1 += dx
			p.Coord2 += dy

			reassignAxis(p, gbxmaps, AxisZ)
			if p.Alive() {
				reassignAxis(p, gbxmaps, AxisX)
			}
			if p.Alive() {
				reassignAxis(p, gbxmaps, AxisY)
			}
		}
	}
	return nil
}

// checkCFL evaluates all three axes and fails only on the
// conjunction of their results: a violation on any single axis is
// fatal, but evaluating one axis must never mask another. Earlier
// revisions of this check overwrote a single result variable per
// axis instead of accumulating across all three; this implementation
// accumulates explicitly to avoid repeating that mistake.
func checkCFL(gbxmaps *GridboxMap, g uint32, dz, dx, dy float64) error {
	bz := axisBounds(gbxmaps, g, AxisZ)
	bx := axisBounds(gbxmaps, g, AxisX)
	by := axisBounds(gbxmaps, g, AxisY)

	extentZ := bz.Upper - bz.Lower
	extentX := bx.Upper - bx.Lower
	extentY := by.Upper - by.Lower

	violated := false
	var axis Axis
	var disp, extent float64

	if math.Abs(dz) > extentZ {
		violated = true
		axis, disp, extent = AxisZ, dz, extentZ
	}
	if math.Abs(dx) > extentX && !violated {
		violated = true
		axis, disp, extent = AxisX, dx, extentX
	}
	if math.Abs(dy) > extentY && !violated {
		violated = true
		axis, disp, extent = AxisY, dy, extentY
	}
	if violated {
		return &CFLViolation{Axis: axis.String(), Displacement: disp, CellExtent: extent}
	}
	return nil
}

// reassignAxis moves p to its axis-neighbor gridbox if its updated
// coordinate has left the owning gridbox's bounds on axis, applying
// the periodic coordinate translation where applicable.
func reassignAxis(p *Particle, gbxmaps *GridboxMap, axis Axis) {
	if gbxmaps.InAxisBounds(p.GbxIndex, axis, coordFor(p, axis)) {
		return
	}
	old := p.GbxIndex
	bounds := axisBounds(gbxmaps, old, axis)
	backward, forward := gbxmaps.NeighborAxis(old, axis)

	var neighbor uint32
	var crossedForward bool
	if coordFor(p, axis) >= bounds.Upper {
		neighbor, crossedForward = forward, true
	} else {
		neighbor, crossedForward = backward, false
	}

	if neighbor == OOBIndex {
		p.MarkOOB()
		return
	}
	if translate := gbxmaps.PeriodicTranslate(old, axis, crossedForward); translate != 0 {
		setCoord(p, axis, coordFor(p, axis)+translate)
	}
	p.GbxIndex = neighbor
}
