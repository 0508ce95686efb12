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
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
)

// CollisionEngine enacts Monte-Carlo collision events within each
// gridbox following Shima et al. (2009): random pairing, a scaled
// acceptance probability, an integer gamma multiplier, and a
// pluggable enactment rule.
type CollisionEngine struct {
	Probability PairProbability
	Enact       PairEnactment
}

// Step runs one collision tick over every gridbox independently,
// fanning the per-gridbox work out across a worker pool sized to
// runtime.GOMAXPROCS(0). Gridboxes own disjoint slices of
// domainParticles (via Refs) and are each given their own RNG
// stream, so workers share no particle or generator state; the only
// lock taken is RNGPool's guard around its stream lookup map.
func (c CollisionEngine) Step(dt float64, gbxmaps *GridboxMap, gridboxes []Gridbox, domainParticles []Particle, rng *RNGPool) {
	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > len(gridboxes) {
		nprocs = len(gridboxes)
	}
	if nprocs < 1 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for gi := pp; gi < len(gridboxes); gi += nprocs {
				c.stepGridbox(dt, gbxmaps, &gridboxes[gi], domainParticles, rng)
			}
		}(pp)
	}
	wg.Wait()
}

func (c CollisionEngine) stepGridbox(dt float64, gbxmaps *GridboxMap, gbx *Gridbox, domainParticles []Particle, rng *RNGPool) {
	lo, hi := gbx.Refs[0], gbx.Refs[1]
	n := hi - lo
	if n < 2 {
		return
	}
	stream := rng.Stream(gbx.Index)
	volume := gbxmaps.Volume(gbx.Index)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = lo + i
	}
	stream.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nHalf := n / 2
	scale := float64(n) * float64(n-1) / (2 * float64(nHalf))

	for pair := 0; pair < nHalf; pair++ {
		pa := &domainParticles[idx[2*pair]]
		pb := &domainParticles[idx[2*pair+1]]
		if !pa.Alive() || !pb.Alive() {
			continue
		}
		c.collidePair(pa, pb, dt, volume, scale, stream)
	}
}

func (c CollisionEngine) collidePair(pa, pb *Particle, dt, volume, scale float64, stream *rand.Rand) {
	drop1, drop2 := pa, pb
	if drop1.Multiplicity < drop2.Multiplicity {
		drop1, drop2 = drop2, drop1
	}
	xi1, xi2 := drop1.Multiplicity, drop2.Multiplicity

	probJK := c.Probability.Probability(drop1, drop2, dt, volume)
	prob := scale * float64(xi1) * probJK

	phi := stream.Float64()
	floorProb := math.Floor(prob)
	gamma := uint64(floorProb)
	if phi < prob-floorProb {
		gamma++
	}
	gammaMax := xi1 / xi2
	if gamma > gammaMax {
		gamma = gammaMax
	}
	if gamma == 0 {
		return
	}
	c.Enact.Enact(drop1, drop2, gamma)
}
