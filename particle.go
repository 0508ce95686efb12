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

// OOBIndex is the sentinel gridbox index denoting a particle that is
// no longer tracked by the domain.
const OOBIndex = math.MaxUint32

// SoluteProperties is the immutable, shared description of the solute
// species dissolved in a superdroplet. Particles referencing the same
// solute hold a pointer to a single instance rather than a copy.
type SoluteProperties struct {
	Density    float64 // kg/m^3
	MolarMass  float64 // kg/mol
	IonsPerMol float64 // van 't Hoff factor
}

// Particle is one superdroplet: a computational particle representing
// Multiplicity identical real droplets.
type Particle struct {
	GbxIndex     uint32
	Coord3       float64 // vertical coordinate, m
	Coord1       float64 // horizontal-x coordinate, m
	Coord2       float64 // horizontal-y coordinate, m
	Multiplicity uint64
	Radius       float64 // m
	SoluteMass   float64 // kg
	Solute       *SoluteProperties
	ID           uint64
}

// Alive reports whether the particle is still tracked by the domain.
func (p *Particle) Alive() bool {
	return p.GbxIndex != OOBIndex
}

// MarkOOB removes the particle from the domain by setting its gridbox
// index to the out-of-bounds sentinel. Coordinates and attributes are
// left untouched; the slot is reused on the next sort/injection.
func (p *Particle) MarkOOB() {
	p.GbxIndex = OOBIndex
}

// DryRadius returns the radius the particle would have if all of its
// water evaporated, leaving only the dry solute.
func DryRadius(soluteMass float64, soluteDensity float64) float64 {
	return math.Cbrt(3 * soluteMass / (4 * math.Pi * soluteDensity))
}

// Vol returns the particle's spherical volume, m^3.
func (p *Particle) Vol() float64 {
	return 4. / 3. * math.Pi * p.Radius * p.Radius * p.Radius
}

// Mass returns the mass of one real droplet represented by the
// particle: water plus solute.
func (p *Particle) Mass(waterDensity float64) float64 {
	waterVol := p.Vol() - p.SoluteMass/p.Solute.Density
	if waterVol < 0 {
		waterVol = 0
	}
	return waterVol*waterDensity + p.SoluteMass
}
