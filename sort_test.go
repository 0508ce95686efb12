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

func fourCellMap(t *testing.T) *GridboxMap {
	t.Helper()
	bounds := make([]Bounds, 4)
	flat := make([]float64, 4)
	for i := range bounds {
		bounds[i] = Bounds{Lower: float64(i), Upper: float64(i + 1)}
		flat[i] = 1
	}
	decomp := AxisDecomp{N: 4, Stride: 1, Policy: Finite}
	unbounded := []Bounds{UnboundedBounds(), UnboundedBounds(), UnboundedBounds(), UnboundedBounds()}
	m, err := NewGridboxMap(bounds, unbounded, unbounded, flat, flat, decomp, AxisDecomp{N: 1, Stride: 1}, AxisDecomp{N: 1, Stride: 1})
	if err != nil {
		t.Fatalf("NewGridboxMap: %v", err)
	}
	return m
}

func TestCountingSortScenario(t *testing.T) {
	gbxmaps := fourCellMap(t)
	gridboxes := make([]Gridbox, 4)
	for i := range gridboxes {
		gridboxes[i].Index = uint32(i)
	}

	indices := []uint32{3, 1, OOBIndex, 0, 1, 3}
	particles := make([]Particle, len(indices))
	for i, gi := range indices {
		particles[i] = Particle{GbxIndex: gi, Multiplicity: 1, Radius: 1e-6}
	}

	store, err := NewParticleStore(len(particles), particles)
	if err != nil {
		t.Fatalf("NewParticleStore: %v", err)
	}

	cs := NewCountingSort(4, len(particles))
	cs.Sort(gbxmaps, store, gridboxes)

	if store.SizeDomain() != 5 {
		t.Fatalf("N_domain = %d, want 5", store.SizeDomain())
	}

	domain := store.GetDomain()
	gotOrder := make([]uint32, len(domain))
	for i := range domain {
		gotOrder[i] = domain[i].GbxIndex
	}
	wantOrder := []uint32{0, 1, 1, 3, 3}
	for i, g := range wantOrder {
		if gotOrder[i] != g {
			t.Errorf("sorted prefix[%d] = %d, want %d (full: %v)", i, gotOrder[i], g, gotOrder)
		}
	}

	wantRefs := map[uint32][2]int{0: {0, 1}, 1: {1, 3}, 2: {3, 3}, 3: {3, 5}}
	for g, want := range wantRefs {
		if gridboxes[g].Refs != want {
			t.Errorf("gridbox %d refs = %v, want %v", g, gridboxes[g].Refs, want)
		}
	}
}

func TestCountingSortIsIdempotentOnSortedPrefix(t *testing.T) {
	gbxmaps := fourCellMap(t)
	gridboxes := make([]Gridbox, 4)
	for i := range gridboxes {
		gridboxes[i].Index = uint32(i)
	}
	particles := []Particle{
		{GbxIndex: 0, Multiplicity: 1},
		{GbxIndex: 1, Multiplicity: 1},
		{GbxIndex: 1, Multiplicity: 1},
		{GbxIndex: 3, Multiplicity: 1},
	}
	store, err := NewParticleStore(len(particles), particles)
	if err != nil {
		t.Fatalf("NewParticleStore: %v", err)
	}
	cs := NewCountingSort(4, len(particles))
	cs.Sort(gbxmaps, store, gridboxes)
	firstRefs := append([][2]int{}, refsOf(gridboxes)...)
	firstOrder := orderOf(store.GetDomain())

	cs.Sort(gbxmaps, store, gridboxes)
	if !refsEqual(firstRefs, refsOf(gridboxes)) {
		t.Errorf("refs changed on re-sort of already-sorted prefix: %v -> %v", firstRefs, refsOf(gridboxes))
	}
	if !orderEqual(firstOrder, orderOf(store.GetDomain())) {
		t.Errorf("order changed on re-sort of already-sorted prefix: %v -> %v", firstOrder, orderOf(store.GetDomain()))
	}
}

func refsOf(gridboxes []Gridbox) [][2]int {
	out := make([][2]int, len(gridboxes))
	for i := range gridboxes {
		out[i] = gridboxes[i].Refs
	}
	return out
}

func orderOf(particles []Particle) []uint32 {
	out := make([]uint32, len(particles))
	for i := range particles {
		out[i] = particles[i].GbxIndex
	}
	return out
}

func refsEqual(a, b [][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func orderEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
