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

// EquilibriumRadius solves the Köhler equation
// (S-1)*r^3 - A*r^2 + B = 0
// for the equilibrium wet radius r by Newton-Raphson, given the
// supersaturation S-1 and the curvature/solute Köhler factors A, B.
// It is used only at initialization, never on a hot path.
type EquilibriumRadius struct {
	MaxIterations int
	RTol, ATol    float64
}

// DefaultEquilibriumRadius returns an EquilibriumRadius with
// conservative defaults suitable for initial-condition generation.
func DefaultEquilibriumRadius() EquilibriumRadius {
	return EquilibriumRadius{MaxIterations: 50, RTol: 1e-8, ATol: 1e-12}
}

// Solve returns the equilibrium radius for the given supersaturation
// excess (S-1) and Köhler factors, starting from initial guess r0.
// Iteration stops once the Newton step satisfies
// |r_new - r_prev| < RTol*|r_new| + ATol.
func (e EquilibriumRadius) Solve(sExcess, a, b, r0 float64) (float64, error) {
	r := r0
	f := func(r float64) float64 { return sExcess*r*r*r - a*r*r + b }
	df := func(r float64) float64 { return 3*sExcess*r*r - 2*a*r }

	fPrev := f(r)
	for iter := 0; iter < e.MaxIterations; iter++ {
		deriv := df(r)
		if deriv == 0 {
			deriv = 1e-30
		}
		rNext := r - fPrev/deriv
		fNext := f(rNext)
		if math.Abs(rNext-r) < e.RTol*math.Abs(rNext)+e.ATol {
			return rNext, nil
		}
		r, fPrev = rNext, fNext
	}
	return 0, &ConvergenceFailure{Solver: "EquilibriumRadius", Iterations: e.MaxIterations, Residual: math.Abs(fPrev)}
}
