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

// PairProbability returns prob_jk, the coalescence-kernel-derived
// probability (before multiplicity scaling) that a pair of
// superdroplets collides within dt over volume.
type PairProbability interface {
	Probability(a, b *Particle, dt, volume float64) float64
}

// GolovinKernel implements Golovin's (1963) sum-of-volumes
// coalescence kernel, K(a,b) = b_const * (vol(a) + vol(b)).
type GolovinKernel struct {
	B float64 // kernel constant, s^-1
}

// Probability implements PairProbability.
func (k GolovinKernel) Probability(a, b *Particle, dt, volume float64) float64 {
	kernel := k.B * (a.Vol() + b.Vol())
	return kernel * dt / volume
}

// CollisionEfficiency returns the dimensionless collision efficiency
// for a pair of droplets.
type CollisionEfficiency interface {
	Efficiency(a, b *Particle) float64
}

// UnityEfficiency always returns 1, i.e. geometric sweep-out with no
// efficiency correction.
type UnityEfficiency struct{}

// Efficiency implements CollisionEfficiency.
func (UnityEfficiency) Efficiency(*Particle, *Particle) float64 { return 1 }

// HydrodynamicKernel implements the gravitational-settling collision
// kernel K(a,b) = pi*(r_a+r_b)^2 * E(a,b) * |v_term(a)-v_term(b)|,
// composing the same terminal-velocity formula used by the motion
// kernel.
type HydrodynamicKernel struct {
	Terminal   TerminalVelocityFormula
	Efficiency CollisionEfficiency
}

// Probability implements PairProbability.
func (k HydrodynamicKernel) Probability(a, b *Particle, dt, volume float64) float64 {
	rSum := a.Radius + b.Radius
	dv := math.Abs(k.Terminal.Velocity(a.Radius) - k.Terminal.Velocity(b.Radius))
	kernel := math.Pi * rSum * rSum * k.Efficiency.Efficiency(a, b) * dv
	return kernel * dt / volume
}
