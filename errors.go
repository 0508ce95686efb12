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

import "fmt"

// ConfigMismatch signals that two collaborators were constructed with
// incompatible configuration, e.g. mismatched coupling steps.
type ConfigMismatch struct {
	Reason string
}

func (e *ConfigMismatch) Error() string {
	return fmt.Sprintf("superdrop: config mismatch: %s", e.Reason)
}

// InputMalformed signals a framed-binary length or metadata
// inconsistency while loading a grid or particle file.
type InputMalformed struct {
	Source string
	Reason string
}

func (e *InputMalformed) Error() string {
	return fmt.Sprintf("superdrop: malformed input %q: %s", e.Source, e.Reason)
}

// ConvergenceFailure signals that a Newton-Raphson solver exceeded its
// iteration cap without satisfying its convergence tolerance.
type ConvergenceFailure struct {
	Solver     string
	Iterations int
	Residual   float64
}

func (e *ConvergenceFailure) Error() string {
	return fmt.Sprintf("superdrop: %s failed to converge after %d iterations (residual %.3g)",
		e.Solver, e.Iterations, e.Residual)
}

// CFLViolation signals that a particle's per-step displacement along
// some axis exceeded the local gridbox extent.
type CFLViolation struct {
	Axis         string
	Displacement float64
	CellExtent   float64
}

func (e *CFLViolation) Error() string {
	return fmt.Sprintf("superdrop: CFL violated on axis %s: |%.6g| > %.6g",
		e.Axis, e.Displacement, e.CellExtent)
}

// CapacityOverflow signals that the particle store would need to grow
// beyond its statically allocated capacity.
type CapacityOverflow struct {
	Requested int
	Capacity  int
}

func (e *CapacityOverflow) Error() string {
	return fmt.Sprintf("superdrop: capacity overflow: requested %d particles, capacity is %d",
		e.Requested, e.Capacity)
}

// InvariantViolation signals that an internal consistency invariant
// failed, typically detected only by the optional audit kernel.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("superdrop: invariant violated: %s", e.Detail)
}
