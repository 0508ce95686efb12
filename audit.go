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

// AuditDomain is an optional, expensive invariant check: for every
// gridbox, every particle within its refs must actually carry that
// gridbox's index, and the refs must be internally consistent. It is
// not run on the hot path; callers may invoke it periodically or only
// under a debug build.
func AuditDomain(gridboxes []Gridbox, domainParticles []Particle) error {
	for gi := range gridboxes {
		gbx := &gridboxes[gi]
		lo, hi := gbx.Refs[0], gbx.Refs[1]
		if lo < 0 || hi < lo || hi > len(domainParticles) {
			return &InvariantViolation{Detail: "gridbox refs out of range"}
		}
		for i := lo; i < hi; i++ {
			if domainParticles[i].GbxIndex != gbx.Index {
				return &InvariantViolation{Detail: "particle within refs disagrees with owning gridbox index"}
			}
		}
	}
	return nil
}
