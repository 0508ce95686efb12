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

// SuperdropletIDGen hands out monotonically increasing particle IDs.
// It is an injected counter owned by the driver rather than a shared
// pointer threaded through particles, avoiding the reference cycles
// the original design used shared pointers to express.
type SuperdropletIDGen struct {
	next uint64
}

// NewSuperdropletIDGen returns a generator whose first issued ID is
// start.
func NewSuperdropletIDGen(start uint64) *SuperdropletIDGen {
	return &SuperdropletIDGen{next: start}
}

// Next returns the next unique ID and advances the counter.
func (g *SuperdropletIDGen) Next() uint64 {
	return atomic.AddUint64(&g.next, 1) - 1
}
