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

func tenCellColumn(t *testing.T) *GridboxMap {
	t.Helper()
	bounds := make([]Bounds, 10)
	flat := make([]float64, 10)
	unbounded := make([]Bounds, 10)
	for i := range bounds {
		bounds[i] = Bounds{Lower: float64(i) * 100, Upper: float64(i+1) * 100}
		flat[i] = 1e6
		unbounded[i] = UnboundedBounds()
	}
	decomp := AxisDecomp{N: 10, Stride: 1, Policy: Finite}
	m, err := NewGridboxMap(bounds, unbounded, unbounded, flat, flat, decomp, AxisDecomp{N: 1, Stride: 1}, AxisDecomp{N: 1, Stride: 1})
	if err != nil {
		t.Fatalf("NewGridboxMap: %v", err)
	}
	return m
}

func TestDomainTopSourceReplacesExiters(t *testing.T) {
	gbxmaps := tenCellColumn(t)
	gridboxes := make([]Gridbox, 10)
	for i := range gridboxes {
		gridboxes[i].Index = uint32(i)
	}

	zLim := gbxmaps.BoundsZ(7).Upper

	var particles []Particle
	for _, gbx := range []uint32{8, 9} {
		for i := 0; i < 5; i++ {
			particles = append(particles, Particle{
				GbxIndex:     gbx,
				Coord3:       zLim + float64(i) + 1,
				Multiplicity: 1,
				Radius:       1e-6,
			})
		}
	}

	capacity := len(particles) + 3*2
	store, err := NewParticleStore(capacity, particles)
	if err != nil {
		t.Fatalf("NewParticleStore: %v", err)
	}

	cs := NewCountingSort(10, capacity)
	cs.Sort(gbxmaps, store, gridboxes)
	if store.SizeDomain() != 10 {
		t.Fatalf("initial N_domain = %d, want 10", store.SizeDomain())
	}

	solute := &SoluteProperties{Density: 2170, MolarMass: 0.05844, IonsPerMol: 2}
	src := DomainTopSource{
		NewPerGbx: 3,
		ZLim:      zLim,
		RMin:      1e-7,
		RMax:      1e-5,
		RDry:      1e-9,
		Solute:    solute,
		PDF:       LognormalMode{GeoMean: 5e-7, GeoStdDev: 1.5, N: 1e8},
		IDGen:     NewSuperdropletIDGen(1000),
		RNG:       NewRNGPool(1),
	}

	if err := src.Apply(gbxmaps, gridboxes, store, cs); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got, want := store.SizeDomain(), 6; got != want {
		t.Errorf("N_domain after domain-top source = %d, want %d (net change -10+6=-4 from 10)", got, want)
	}

	domain := store.GetDomain()
	newIDs := 0
	for i := range domain {
		if domain[i].ID >= 1000 {
			newIDs++
		}
	}
	if newIDs != 6 {
		t.Errorf("found %d freshly-IDed particles, want 6 (3 per affected gridbox x 2 gridboxes)", newIDs)
	}
}

func TestDomainTopSourceRejectsRMinBelowRDry(t *testing.T) {
	gbxmaps := tenCellColumn(t)
	gridboxes := make([]Gridbox, 10)
	for i := range gridboxes {
		gridboxes[i].Index = uint32(i)
	}
	zLim := gbxmaps.BoundsZ(7).Upper

	above := Particle{GbxIndex: 9, Coord3: zLim + 1, Multiplicity: 1, Radius: 1e-6}
	store, err := NewParticleStore(1, []Particle{above})
	if err != nil {
		t.Fatalf("NewParticleStore: %v", err)
	}
	cs := NewCountingSort(10, 1)
	cs.Sort(gbxmaps, store, gridboxes)

	solute := &SoluteProperties{Density: 2170, MolarMass: 0.05844, IonsPerMol: 2}
	src := DomainTopSource{
		NewPerGbx: 1,
		ZLim:      zLim,
		RMin:      1e-9,
		RMax:      1e-5,
		RDry:      1e-8,
		Solute:    solute,
		PDF:       LognormalMode{GeoMean: 5e-7, GeoStdDev: 1.5, N: 1e8},
		IDGen:     NewSuperdropletIDGen(0),
		RNG:       NewRNGPool(1),
	}

	err = src.Apply(gbxmaps, gridboxes, store, cs)
	if _, ok := err.(*InvariantViolation); !ok {
		t.Fatalf("err = %v (%T), want *InvariantViolation when RMin < RDry", err, err)
	}
}
