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

import "testing"

func TestNeighborAxisReverseIsSelfFinite(t *testing.T) {
	m := fourCellMap(t)
	for g := uint32(1); g < 3; g++ { // interior cells only
		back, fwd := m.NeighborAxis(g, AxisZ)
		if _, fwdOfBack := m.NeighborAxis(back, AxisZ); fwdOfBack != g {
			t.Errorf("gridbox %d: backward neighbor's forward neighbor = %d, want %d", g, fwdOfBack, g)
		}
		if backOfFwd, _ := m.NeighborAxis(fwd, AxisZ); backOfFwd != g {
			t.Errorf("gridbox %d: forward neighbor's backward neighbor = %d, want %d", g, backOfFwd, g)
		}
	}
}

func TestNeighborAxisFiniteBoundaryIsOOB(t *testing.T) {
	m := fourCellMap(t)
	back, _ := m.NeighborAxis(0, AxisZ)
	if back != OOBIndex {
		t.Errorf("gridbox 0's backward neighbor = %d, want OOBIndex under a finite boundary", back)
	}
	_, fwd := m.NeighborAxis(3, AxisZ)
	if fwd != OOBIndex {
		t.Errorf("gridbox 3's forward neighbor = %d, want OOBIndex under a finite boundary", fwd)
	}
}

func TestNeighborAxisPeriodicWraps(t *testing.T) {
	bounds := []Bounds{{Lower: 0, Upper: 1}, {Lower: 1, Upper: 2}, {Lower: 2, Upper: 3}}
	unbounded := []Bounds{UnboundedBounds(), UnboundedBounds(), UnboundedBounds()}
	flat := []float64{1, 1, 1}
	decomp := AxisDecomp{N: 3, Stride: 1, Policy: Periodic}
	m, err := NewGridboxMap(bounds, unbounded, unbounded, flat, flat, decomp, AxisDecomp{N: 1, Stride: 1}, AxisDecomp{N: 1, Stride: 1})
	if err != nil {
		t.Fatalf("NewGridboxMap: %v", err)
	}

	back, _ := m.NeighborAxis(0, AxisZ)
	if back != 2 {
		t.Errorf("gridbox 0's periodic backward neighbor = %d, want 2", back)
	}
	_, fwd := m.NeighborAxis(2, AxisZ)
	if fwd != 0 {
		t.Errorf("gridbox 2's periodic forward neighbor = %d, want 0", fwd)
	}

	translate := m.PeriodicTranslate(2, AxisZ, true)
	if translate != -3 {
		t.Errorf("forward wrap translate = %.6g, want -3 (axis length)", translate)
	}
	translate = m.PeriodicTranslate(0, AxisZ, false)
	if translate != 3 {
		t.Errorf("backward wrap translate = %.6g, want 3 (axis length)", translate)
	}
}

func TestInAxisBoundsIsHalfOpen(t *testing.T) {
	m := fourCellMap(t)
	if !m.InAxisBounds(1, AxisZ, 1.0) {
		t.Error("a coordinate exactly on the lower bound must belong to this gridbox")
	}
	if m.InAxisBounds(1, AxisZ, 2.0) {
		t.Error("a coordinate exactly on the upper bound must belong to the next gridbox, not this one")
	}
}
