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
	"testing"
)

func TestEquilibriumRadiusSolveConverges(t *testing.T) {
	e := DefaultEquilibriumRadius()
	sExcess := -0.01 // subsaturated, S=0.99
	a := 1e-9
	b := 1e-24

	r, err := e.Solve(sExcess, a, b, 1e-7)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	residual := sExcess*r*r*r - a*r*r + b
	if math.Abs(residual) > 1e-6*math.Abs(b) {
		t.Errorf("residual %.6g too large at r=%.6g", residual, r)
	}
}

func TestEquilibriumRadiusSolveReturnsConvergenceFailureWhenCapTooLow(t *testing.T) {
	e := EquilibriumRadius{MaxIterations: 0, RTol: 1e-8, ATol: 1e-12}
	_, err := e.Solve(-0.01, 1e-9, 1e-24, 1e-7)
	if _, ok := err.(*ConvergenceFailure); !ok {
		t.Fatalf("err = %v (%T), want *ConvergenceFailure", err, err)
	}
}
