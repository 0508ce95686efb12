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
	"testing"
)

func TestMarkOOBMakesParticleNotAlive(t *testing.T) {
	p := &Particle{GbxIndex: 3}
	if !p.Alive() {
		t.Fatal("freshly constructed particle with a real gridbox index should be alive")
	}
	p.MarkOOB()
	if p.Alive() {
		t.Error("particle should not be alive after MarkOOB")
	}
	if p.GbxIndex != OOBIndex {
		t.Errorf("GbxIndex = %d, want OOBIndex", p.GbxIndex)
	}
}

func TestDryRadiusMatchesSphericalVolume(t *testing.T) {
	density := 2170.0
	mass := 1e-18
	r := DryRadius(mass, density)
	vol := 4. / 3. * math.Pi * r * r * r
	if got, want := vol*density, mass; math.Abs(got-want) > want*1e-9 {
		t.Errorf("dry radius implies mass %.6g, want %.6g", got, want)
	}
}

func TestMassIsWaterPlusSolute(t *testing.T) {
	solute := &SoluteProperties{Density: 2170, MolarMass: 0.05844, IonsPerMol: 2}
	p := &Particle{Radius: 5e-6, SoluteMass: 1e-16, Solute: solute}
	mass := p.Mass(1000)
	if mass <= p.SoluteMass {
		t.Errorf("mass %.6g should exceed solute mass %.6g for a wet droplet", mass, p.SoluteMass)
	}
}

func TestMassClampsNegativeWaterVolume(t *testing.T) {
	// A particle whose solute would occupy more volume than its total
	// radius implies (a degenerate/un-physical input) must not report
	// negative water volume.
	solute := &SoluteProperties{Density: 1, MolarMass: 0.05844, IonsPerMol: 2}
	p := &Particle{Radius: 1e-9, SoluteMass: 1, Solute: solute}
	mass := p.Mass(1000)
	if mass != p.SoluteMass {
		t.Errorf("mass = %.6g, want exactly the solute mass (%.6g) when water volume would be negative", mass, p.SoluteMass)
	}
}
