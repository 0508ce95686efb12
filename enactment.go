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

// PairEnactment mutates a pair of superdroplets after a Monte-Carlo
// collision event has been accepted with multiplier gamma. drop1 is
// always the particle with the larger (or equal) multiplicity.
type PairEnactment interface {
	Enact(drop1, drop2 *Particle, gamma uint64)
}

// CoalescenceEnactment implements Shima et al. (2009) section 5.1.3
// part (5): each droplet of the smaller-multiplicity particle absorbs
// gamma droplets of the larger one, except in the boundary case where
// the two multiplicities divide evenly, which instead splits the
// combined droplet across both particles.
type CoalescenceEnactment struct{}

// Enact implements PairEnactment.
func (CoalescenceEnactment) Enact(drop1, drop2 *Particle, gamma uint64) {
	xi1, xi2 := drop1.Multiplicity, drop2.Multiplicity
	gxi2 := gamma * xi2

	if xi1 > gxi2 {
		drop1.Multiplicity = xi1 - gxi2
		drop2.Radius = math.Cbrt(cube(drop2.Radius) + float64(gamma)*cube(drop1.Radius))
		drop2.SoluteMass += float64(gamma) * drop1.SoluteMass
		return
	}

	// xi1 == gamma*xi2: the combined droplet is split back across
	// both particles since drop1's multiplicity is fully consumed.
	newRadius := math.Cbrt(cube(drop2.Radius) + float64(gamma)*cube(drop1.Radius))
	newSoluteMass := drop2.SoluteMass + float64(gamma)*drop1.SoluteMass

	half := xi2 / 2
	rem := xi2 - half

	drop1.Multiplicity, drop2.Multiplicity = half, rem
	drop1.Radius, drop2.Radius = newRadius, newRadius
	drop1.SoluteMass, drop2.SoluteMass = newSoluteMass, newSoluteMass

	if drop1.Multiplicity == 0 {
		drop1.MarkOOB()
	}
	if drop2.Multiplicity == 0 {
		drop2.MarkOOB()
	}
}

// BreakupEnactment implements the simplest documented breakup
// variant: the combined volume of the pair is redistributed into
// gamma+1 equal-volume fragments, all deposited onto the
// smaller-multiplicity particle (whose multiplicity grows by the
// factor gamma+1), while the larger particle's multiplicity is reduced
// by gamma times the smaller one's, as in coalescence. Unlike
// coalescence there is no split case: a larger particle reduced to
// zero multiplicity is marked OOB.
type BreakupEnactment struct{}

// Enact implements PairEnactment.
func (BreakupEnactment) Enact(drop1, drop2 *Particle, gamma uint64) {
	xi1, xi2 := drop1.Multiplicity, drop2.Multiplicity
	gxi2 := gamma * xi2
	if gxi2 >= xi1 {
		gxi2 = xi1
		gamma = xi1 / xi2
		if gamma == 0 {
			gamma = 1
		}
	}
	drop1.Multiplicity = xi1 - gxi2
	if drop1.Multiplicity == 0 {
		drop1.MarkOOB()
	}

	fragments := float64(gamma + 1)
	totalVol := cube(drop2.Radius) + float64(gamma)*cube(drop1.Radius)
	totalSolute := drop2.SoluteMass + float64(gamma)*drop1.SoluteMass
	drop2.Multiplicity = xi2 * (gamma + 1)
	drop2.Radius = math.Cbrt(totalVol / fragments)
	drop2.SoluteMass = totalSolute / fragments
}

func cube(v float64) float64 { return v * v * v }
