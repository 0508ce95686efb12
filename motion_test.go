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

func TestCheckCFLViolatesOnOversizedDisplacement(t *testing.T) {
	gbxmaps := fourCellMap(t)
	extent := gbxmaps.BoundsZ(0).Upper - gbxmaps.BoundsZ(0).Lower

	err := checkCFL(gbxmaps, 0, 1.1*extent, 0, 0)
	if err == nil {
		t.Fatal("expected a CFL violation for dz = 1.1 * cell extent, got nil")
	}
	if _, ok := err.(*CFLViolation); !ok {
		t.Errorf("expected *CFLViolation, got %T", err)
	}
}

func TestCheckCFLAcceptsSmallDisplacement(t *testing.T) {
	gbxmaps := fourCellMap(t)
	extent := gbxmaps.BoundsZ(0).Upper - gbxmaps.BoundsZ(0).Lower

	if err := checkCFL(gbxmaps, 0, 0.5*extent, 0, 0); err != nil {
		t.Errorf("unexpected CFL violation for dz = 0.5 * cell extent: %v", err)
	}
}

func TestCheckCFLConjoinsAllThreeAxes(t *testing.T) {
	// A violation on the x axis must not be masked by passing checks on
	// the z and y axes evaluated either before or after it.
	gbxmaps := fourCellMap(t)
	extentX := gbxmaps.BoundsX(0).Upper - gbxmaps.BoundsX(0).Lower // unbounded -> +Inf, so use a bounded map instead
	_ = extentX

	bounds := []Bounds{{Lower: 0, Upper: 1}}
	decomp := AxisDecomp{N: 1, Stride: 1, Policy: Finite}
	m, err := NewGridboxMap(bounds, bounds, bounds, []float64{1}, []float64{1}, decomp, decomp, decomp)
	if err != nil {
		t.Fatalf("NewGridboxMap: %v", err)
	}

	if err := checkCFL(m, 0, 0.1, 1.5, 0.1); err == nil {
		t.Fatal("expected a CFL violation on the x axis even though z and y are within bounds")
	}
	if err := checkCFL(m, 0, 1.5, 0.1, 0.1); err == nil {
		t.Fatal("expected a CFL violation on the z axis even though x and y are within bounds")
	}
	if err := checkCFL(m, 0, 0.1, 0.1, 1.5); err == nil {
		t.Fatal("expected a CFL violation on the y axis even though z and x are within bounds")
	}
}
