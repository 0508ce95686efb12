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

// ExchangeHook optionally transfers particles whose gridbox
// reassignment now belongs to a remote partition, returning the
// store's (possibly re-packed) particles and the new domain size. A
// nil hook means the run is single-partition; TransportAcrossDomain
// skips this step entirely.
type ExchangeHook func(particles []Particle) (updated []Particle, domainSize int, err error)

// TransportAcrossDomain re-sorts the particle store after a motion
// step and refreshes every gridbox's refs, optionally handing off
// particles that crossed a partition boundary.
type TransportAcrossDomain struct {
	Sort    *CountingSort
	Exchange ExchangeHook
}

// Transport implements the contract described in the component
// design: sort, refresh refs, then (if configured) exchange.
func (t TransportAcrossDomain) Transport(gbxmaps *GridboxMap, gridboxes []Gridbox, store *ParticleStore) error {
	t.Sort.Sort(gbxmaps, store, gridboxes)

	if t.Exchange == nil {
		return nil
	}
	updated, domainSize, err := t.Exchange(store.GetTotal())
	if err != nil {
		return err
	}
	copy(store.particles, updated)
	store.domain = domainSize
	t.Sort.Sort(gbxmaps, store, gridboxes)
	return nil
}
