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
	"fmt"
	"math"
)

// BoundaryConditions applies edge handling to the domain once per
// motion tick. Implementations may remove particles, inject new
// ones, or both.
type BoundaryConditions interface {
	Apply(gbxmaps *GridboxMap, gridboxes []Gridbox, store *ParticleStore, sort *CountingSort) error
}

// NullBoundaryConditions performs no edge handling.
type NullBoundaryConditions struct{}

// Apply implements BoundaryConditions.
func (NullBoundaryConditions) Apply(*GridboxMap, []Gridbox, *ParticleStore, *CountingSort) error {
	return nil
}

// DomainTopSource removes particles that have risen above ZLim and
// replaces them with NewPerGbx freshly sampled particles per gridbox
// that experienced a removal, following a log10-spaced radius bin
// grid derived from [RMin, RMax].
type DomainTopSource struct {
	NewPerGbx  int
	ZLim       float64
	RMin, RMax float64
	RDry       float64 // dry radius used to compute injected solute mass
	Solute     *SoluteProperties
	PDF        NumberConcentrationPDF
	IDGen      *SuperdropletIDGen
	RNG        *RNGPool
}

func (s DomainTopSource) binEdges() []float64 {
	n := s.NewPerGbx
	edges := make([]float64, n+1)
	logLo, logHi := math.Log10(s.RMin), math.Log10(s.RMax)
	for i := 0; i <= n; i++ {
		edges[i] = math.Pow(10, logLo+(logHi-logLo)*float64(i)/float64(n))
	}
	return edges
}

// Apply implements BoundaryConditions.
func (s DomainTopSource) Apply(gbxmaps *GridboxMap, gridboxes []Gridbox, store *ParticleStore, sort *CountingSort) error {
	if s.RMin < s.RDry {
		return &InvariantViolation{Detail: fmt.Sprintf("domain-top source RMin (%.6g) below RDry (%.6g)", s.RMin, s.RDry)}
	}
	edges := s.binEdges()
	domain := store.GetDomain()

	var affected []int
	for gi := range gridboxes {
		gbx := &gridboxes[gi]
		if gbxmaps.BoundsZ(gbx.Index).Upper <= s.ZLim {
			continue
		}
		removedHere := false
		lo, hi := gbx.Refs[0], gbx.Refs[1]
		for i := lo; i < hi; i++ {
			p := &domain[i]
			if p.Alive() && p.Coord3 > s.ZLim {
				p.MarkOOB()
				removedHere = true
			}
		}
		if removedHere {
			affected = append(affected, gi)
		}
	}

	if len(affected) == 0 {
		return nil
	}

	drySoluteMass := 4. / 3. * math.Pi * s.RDry * s.RDry * s.RDry * s.Solute.Density

	var fresh []Particle
	for _, gi := range affected {
		gbx := &gridboxes[gi]
		rng := s.RNG.Stream(gbx.Index)
		zBounds := gbxmaps.BoundsZ(gbx.Index)
		volume := gbxmaps.Volume(gbx.Index)
		for n := 0; n < s.NewPerGbx; n++ {
			bin := int(rng.Float64() * float64(s.NewPerGbx))
			if bin >= s.NewPerGbx {
				bin = s.NewPerGbx - 1
			}
			rLo, rHi := edges[bin], edges[bin+1]
			radius := rLo + rng.Float64()*(rHi-rLo)
			conc := s.PDF.IntegratedConcentration(rLo, rHi)
			xi := uint64(math.Round(conc * volume))
			if xi < 1 {
				xi = 1
			}
			fresh = append(fresh, Particle{
				GbxIndex:     gbx.Index,
				Coord3:       zBounds.Lower + rng.Float64()*(zBounds.Upper-zBounds.Lower),
				Coord1:       0,
				Coord2:       0,
				Multiplicity: xi,
				Radius:       radius,
				SoluteMass:   drySoluteMass,
				Solute:       s.Solute,
				ID:           s.IDGen.Next(),
			})
		}
	}

	if err := store.Append(fresh); err != nil {
		return err
	}
	sort.Sort(gbxmaps, store, gridboxes)
	return nil
}
