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

import "sync/atomic"

// CountingSort stably buckets particles by gridbox index and
// maintains the working buffers needed to do so without per-call
// allocation. It owns no particles; it only rearranges a
// ParticleStore's backing array and refreshes gridbox refs.
type CountingSort struct {
	counts     []int64
	cumlcounts []int64
	scratch    []Particle
}

// NewCountingSort allocates working buffers sized for a domain of
// maxGridboxes gridboxes and totalCapacity particles.
func NewCountingSort(maxGridboxes, totalCapacity int) *CountingSort {
	return &CountingSort{
		counts:     make([]int64, maxGridboxes+1), // +1 bucket collects OOB
		cumlcounts: make([]int64, maxGridboxes+2),
		scratch:    make([]Particle, totalCapacity),
	}
}

func (cs *CountingSort) bucket(p *Particle, oobBucket int) int {
	if p.GbxIndex == OOBIndex || int(p.GbxIndex) >= oobBucket {
		return oobBucket
	}
	return int(p.GbxIndex)
}

// Sort buckets every particle in store by gridbox index, producing a
// stably-sorted domain prefix and refreshed Refs for every gridbox in
// gbxmaps. It never fails; an empty domain yields empty ranges.
func (cs *CountingSort) Sort(gbxmaps *GridboxMap, store *ParticleStore, gridboxes []Gridbox) {
	m := gbxmaps.Len() // number of in-domain gridboxes; bucket m collects OOB
	all := store.GetTotal()

	for i := range cs.counts {
		cs.counts[i] = 0
	}
	for i := range cs.cumlcounts {
		cs.cumlcounts[i] = 0
	}

	// Pass 1: count.
	for i := range all {
		b := cs.bucket(&all[i], m)
		atomic.AddInt64(&cs.counts[b], 1)
	}

	// Pass 2: exclusive prefix-sum.
	var running int64
	for b := 0; b <= m; b++ {
		cs.cumlcounts[b] = running
		running += cs.counts[b]
	}
	cs.cumlcounts[m+1] = running

	// Record gridbox refs from the prefix sum before scatter mutates
	// the working cursor copy.
	refLo := make([]int, m)
	refHi := make([]int, m)
	copy(refLo, cs.cumlcounts[:m])
	for g := 0; g < m; g++ {
		refHi[g] = int(cs.cumlcounts[g+1])
	}
	domainSize := int(cs.cumlcounts[m])

	// Pass 3: scatter into scratch using atomic post-increment
	// cursors seeded from the prefix sum.
	cursors := make([]int64, m+1)
	copy(cursors, cs.cumlcounts[:m+1])
	for i := range all {
		b := cs.bucket(&all[i], m)
		dest := atomic.AddInt64(&cursors[b], 1) - 1
		cs.scratch[dest] = all[i]
	}

	copy(all, cs.scratch[:len(all)])
	store.domain = domainSize

	for g := range gridboxes {
		gridboxes[g].Refs = [2]int{refLo[g], refHi[g]}
	}
}
