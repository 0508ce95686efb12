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
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NumberConcentrationPDF integrates the number concentration of
// droplets, m^-3, whose radius falls within [rLo, rHi].
type NumberConcentrationPDF interface {
	IntegratedConcentration(rLo, rHi float64) float64
}

// LognormalMode is one lognormal mode of a droplet number
// concentration distribution: GeoMean and GeoStdDev are the geometric
// mean radius (m) and geometric standard deviation; N is the total
// number concentration, m^-3, carried by this mode.
type LognormalMode struct {
	GeoMean    float64
	GeoStdDev  float64
	N          float64
}

func (mode LognormalMode) cdf(r float64) float64 {
	if r <= 0 {
		return 0
	}
	d := distuv.LogNormal{Mu: math.Log(mode.GeoMean), Sigma: math.Log(mode.GeoStdDev)}
	return d.CDF(r)
}

// IntegratedConcentration implements NumberConcentrationPDF for a
// single lognormal mode.
func (mode LognormalMode) IntegratedConcentration(rLo, rHi float64) float64 {
	return mode.N * (mode.cdf(rHi) - mode.cdf(rLo))
}

// TwoLognormalModes sums two independent lognormal modes, matching
// the common bimodal (Aitken + accumulation) aerosol size
// distribution used to seed domain-top sources.
type TwoLognormalModes struct {
	First, Second LognormalMode
}

// IntegratedConcentration implements NumberConcentrationPDF.
func (t TwoLognormalModes) IntegratedConcentration(rLo, rHi float64) float64 {
	return t.First.IntegratedConcentration(rLo, rHi) + t.Second.IntegratedConcentration(rLo, rHi)
}

// RNGPool partitions a single configured seed into one independent
// stream per gridbox, so each gridbox's Monte-Carlo kernels (source
// injection, collision) consume from their own generator without
// shared mutable state.
type RNGPool struct {
	seed    uint64
	mu      sync.Mutex
	streams map[uint32]*rand.Rand
}

// NewRNGPool returns a pool seeded from seed.
func NewRNGPool(seed uint64) *RNGPool {
	return &RNGPool{seed: seed, streams: make(map[uint32]*rand.Rand)}
}

// Stream returns the RNG stream owned by gridbox g, creating it
// deterministically from the pool seed and g on first use. Safe for
// concurrent calls from the collision engine's worker pool: distinct
// gridboxes never share a stream, but the lazily-populated lookup map
// itself is guarded.
func (p *RNGPool) Stream(g uint32) *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.streams[g]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.seed ^ uint64(g)*0x9E3779B97F4A7C15))
	p.streams[g] = r
	return r
}
