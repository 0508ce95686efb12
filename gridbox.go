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

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/unit"
)

// Axis identifies one of the three coordinate axes a gridbox
// decomposition may be split along.
type Axis int

const (
	AxisZ Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisZ:
		return "z"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// BoundaryPolicy selects how a GridboxMap resolves neighbors that
// fall outside the decomposition along a given axis.
type BoundaryPolicy int

const (
	// Finite boundaries report OOBIndex for an out-of-range neighbor.
	Finite BoundaryPolicy = iota
	// Periodic boundaries wrap to the opposite edge of the axis.
	Periodic
)

// AxisDecomp describes one axis's regular decomposition: the number
// of cells along it, the stride between indices separated by one
// cell on this axis, and the policy applied at its boundaries.
type AxisDecomp struct {
	N      int
	Stride int
	Policy BoundaryPolicy
}

// GridboxState is the thermodynamic state owned by one gridbox.
// Pressure and Temperature are carried as typed physical quantities;
// all other fields are plain SI floats consumed directly by the
// microphysics kernels.
type GridboxState struct {
	Pressure    *unit.Unit // Pa
	Temperature *unit.Unit // K
	VaporMixR   float64    // qv, kg/kg
	CondMixR    float64    // qc, kg/kg
	WindZ       [2]float64 // face-centered wind, lower/upper face, m/s
	WindX       [2]float64
	WindY       [2]float64
}

func newPressure(pa float64) *unit.Unit {
	return unit.New(pa, unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: -1,
		unit.TimeDim:   -2,
	})
}

func newTemperature(k float64) *unit.Unit {
	return unit.New(k, unit.Dimensions{unit.TemperatureDim: 1})
}

// Gridbox is one cell of the Eulerian thermodynamic grid.
type Gridbox struct {
	Index  uint32
	State  GridboxState
	Volume float64
	Area   float64

	// Refs is the half-open [Lo, Hi) range into the particle store's
	// domain prefix owned by this gridbox. Written only by
	// CountingSort; read by every other kernel.
	Refs [2]int
}

// Bounds holds the lower/upper extent of a gridbox along one axis.
type Bounds struct {
	Lower, Upper float64
}

func (b Bounds) contains(v float64) bool {
	return v >= b.Lower && v < b.Upper
}

// GridboxMap is a static table from gridbox index to its spatial
// bounds, volume, area, and neighbor decomposition. It never mutates
// after construction.
type GridboxMap struct {
	boundsZ []Bounds
	boundsX []Bounds
	boundsY []Bounds
	volume  []float64
	area    []float64

	decompZ, decompX, decompY AxisDecomp
}

// NewGridboxMap constructs a GridboxMap from decoded per-gridbox
// bounds, volumes, and areas (as produced by the grid reader), plus
// the regular decomposition along each axis.
func NewGridboxMap(boundsZ, boundsX, boundsY []Bounds, volume, area []float64, decompZ, decompX, decompY AxisDecomp) (*GridboxMap, error) {
	n := len(boundsZ)
	if len(boundsX) != n || len(boundsY) != n || len(volume) != n || len(area) != n {
		return nil, &InputMalformed{Source: "gridbox map", Reason: "per-gridbox arrays have mismatched lengths"}
	}
	return &GridboxMap{
		boundsZ: boundsZ, boundsX: boundsX, boundsY: boundsY,
		volume: volume, area: area,
		decompZ: decompZ, decompX: decompX, decompY: decompY,
	}, nil
}

// Len returns the number of gridboxes in the map. Gridbox indices are
// assumed contiguous over [0, Len()).
func (m *GridboxMap) Len() int { return len(m.boundsZ) }

// BoundsZ returns the z-extent of gridbox g.
func (m *GridboxMap) BoundsZ(g uint32) Bounds { return m.boundsZ[g] }

// BoundsX returns the x-extent of gridbox g.
func (m *GridboxMap) BoundsX(g uint32) Bounds { return m.boundsX[g] }

// BoundsY returns the y-extent of gridbox g.
func (m *GridboxMap) BoundsY(g uint32) Bounds { return m.boundsY[g] }

// Volume returns the volume of gridbox g, m^3.
func (m *GridboxMap) Volume(g uint32) float64 { return m.volume[g] }

// Area returns the horizontal area of gridbox g, m^2.
func (m *GridboxMap) Area(g uint32) float64 { return m.area[g] }

func (d AxisDecomp) axisLength(bounds []Bounds, g uint32) float64 {
	// Axis length is the span covered by the full run of cells on
	// this axis through gridbox g, derived from the lower boundary
	// cell's lower bound and the upper boundary cell's upper bound.
	lowIdx := (int(g) / d.Stride % d.N) // cell position along axis
	base := int(g) - lowIdx*d.Stride
	lower := bounds[base].Lower
	upper := bounds[base+(d.N-1)*d.Stride].Upper
	return upper - lower
}

// NeighborAxis returns the (backward, forward) neighbor of gridbox g
// along the given axis, honoring the axis's boundary policy. A
// non-existent neighbor under a Finite policy is reported as
// OOBIndex.
func (m *GridboxMap) NeighborAxis(g uint32, axis Axis) (backward, forward uint32) {
	var d AxisDecomp
	var bounds []Bounds
	switch axis {
	case AxisZ:
		d, bounds = m.decompZ, m.boundsZ
	case AxisX:
		d, bounds = m.decompX, m.boundsX
	case AxisY:
		d, bounds = m.decompY, m.boundsY
	}
	if d.N <= 1 {
		return OOBIndex, OOBIndex
	}
	s := d.Stride
	n := d.N
	atLower := (int(g)/s)%n == 0
	atUpper := (int(g)/s+1)%n == 0

	if atLower {
		if d.Policy == Periodic {
			backward = g + uint32((n-1)*s)
		} else {
			backward = OOBIndex
		}
	} else {
		backward = g - uint32(s)
	}

	if atUpper {
		if d.Policy == Periodic {
			forward = g - uint32((n-1)*s)
		} else {
			forward = OOBIndex
		}
	} else {
		forward = g + uint32(s)
	}
	return backward, forward
}

// PeriodicTranslate returns the coordinate adjustment to apply when a
// particle crosses a periodic boundary on the given axis: +length
// when wrapping from the lower edge, -length when wrapping from the
// upper edge, 0 if the axis is not periodic or g is not a boundary
// cell on that axis.
func (m *GridboxMap) PeriodicTranslate(g uint32, axis Axis, crossedForward bool) float64 {
	var d AxisDecomp
	var bounds []Bounds
	switch axis {
	case AxisZ:
		d, bounds = m.decompZ, m.boundsZ
	case AxisX:
		d, bounds = m.decompX, m.boundsX
	case AxisY:
		d, bounds = m.decompY, m.boundsY
	}
	if d.Policy != Periodic {
		return 0
	}
	pos := int(g) / d.Stride % d.N
	if (crossedForward && pos != d.N-1) || (!crossedForward && pos != 0) {
		return 0
	}
	length := d.axisLength(bounds, g)
	if crossedForward {
		return -length
	}
	return length
}

// AuditContainment checks, for every gridbox, that the horizontal
// (x, y) plane described by its bounds is internally consistent
// (non-empty, non-overlapping with itself) using geom's 2-D bounding
// box arithmetic. It is an optional, expensive invariant check, not
// run on the hot path.
func (m *GridboxMap) AuditContainment() error {
	for g := 0; g < m.Len(); g++ {
		bx, by := m.boundsX[g], m.boundsY[g]
		b := &geom.Bounds{
			Min: geom.Point{X: bx.Lower, Y: by.Lower},
			Max: geom.Point{X: bx.Upper, Y: by.Upper},
		}
		if b.Empty() {
			return &InvariantViolation{Detail: "gridbox has empty horizontal extent"}
		}
	}
	return nil
}

// InAxisBounds reports whether v lies within gridbox g's bounds on
// axis, honoring the half-open [lower, upper) convention.
func (m *GridboxMap) InAxisBounds(g uint32, axis Axis, v float64) bool {
	switch axis {
	case AxisZ:
		return m.boundsZ[g].contains(v)
	case AxisX:
		return m.boundsX[g].contains(v)
	case AxisY:
		return m.boundsY[g].contains(v)
	}
	return false
}

// UnboundedBounds returns a Bounds spanning the full real line, used
// for axes collapsed to a single cell (e.g. a 1-D column).
func UnboundedBounds() Bounds {
	return Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}
}
