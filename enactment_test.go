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

func TestCoalescenceEnactmentNonTwin(t *testing.T) {
	solute := &SoluteProperties{Density: 2170, MolarMass: 0.05844, IonsPerMol: 2}
	a := &Particle{Multiplicity: 10, Radius: 2e-6, SoluteMass: 1e-18, Solute: solute}
	b := &Particle{Multiplicity: 3, Radius: 5e-6, SoluteMass: 3e-18, Solute: solute}

	gamma := uint64(2) // derived from prob=1.4, phi=0.3: floor(1.4)=1, phi<0.4 -> +1 -> 2

	wantRadius := math.Cbrt(cube(b.Radius) + float64(gamma)*cube(a.Radius))
	wantSolute := b.SoluteMass + float64(gamma)*a.SoluteMass

	CoalescenceEnactment{}.Enact(a, b, gamma)

	if a.Multiplicity != 4 {
		t.Errorf("xi_a = %d, want 4", a.Multiplicity)
	}
	if math.Abs(b.Radius-wantRadius) > 1e-15 {
		t.Errorf("r_b = %.6g, want %.6g", b.Radius, wantRadius)
	}
	if math.Abs(b.SoluteMass-wantSolute) > 1e-30 {
		t.Errorf("m_s,b = %.6g, want %.6g", b.SoluteMass, wantSolute)
	}
}

func TestCoalescenceEnactmentTwin(t *testing.T) {
	solute := &SoluteProperties{Density: 2170, MolarMass: 0.05844, IonsPerMol: 2}
	a := &Particle{Multiplicity: 5, Radius: 3e-6, SoluteMass: 2e-18, Solute: solute}
	b := &Particle{Multiplicity: 5, Radius: 4e-6, SoluteMass: 2.5e-18, Solute: solute}

	gamma := uint64(1) // derived from prob=0.9, phi=0.1: floor(0.9)=0, phi<0.9 -> +1 -> 1

	CoalescenceEnactment{}.Enact(a, b, gamma)

	total := int(a.Multiplicity) + int(b.Multiplicity)
	if total != 5 {
		t.Errorf("xi_a + xi_b = %d, want 5 (split of the original xi_b=5)", total)
	}
	if a.Multiplicity == 0 || b.Multiplicity == 0 {
		t.Errorf("neither particle should be marked OOB when the split leaves both with xi >= 1: xi_a=%d xi_b=%d", a.Multiplicity, b.Multiplicity)
	}
	if a.Radius != b.Radius {
		t.Errorf("twin split must leave both radii equal: %.6g vs %.6g", a.Radius, b.Radius)
	}
	if a.SoluteMass != b.SoluteMass {
		t.Errorf("twin split must leave both solute masses equal: %.6g vs %.6g", a.SoluteMass, b.SoluteMass)
	}
}

func TestCoalescenceEnactmentTwinMarksLoserOOB(t *testing.T) {
	solute := &SoluteProperties{Density: 2170, MolarMass: 0.05844, IonsPerMol: 2}
	a := &Particle{Multiplicity: 1, Radius: 3e-6, SoluteMass: 2e-18, Solute: solute}
	b := &Particle{Multiplicity: 1, Radius: 4e-6, SoluteMass: 2.5e-18, Solute: solute}

	CoalescenceEnactment{}.Enact(a, b, 1)

	aliveCount := 0
	if a.Alive() {
		aliveCount++
	}
	if b.Alive() {
		aliveCount++
	}
	if aliveCount != 1 {
		t.Errorf("exactly one of the pair should survive when both start at xi=1, got %d alive", aliveCount)
	}
}
