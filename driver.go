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
	"context"

	"github.com/sirupsen/logrus"
)

// DataPlaneDriver orchestrates one coupling step across the core
// kernels in the order the concurrency model guarantees: motion,
// transport (sort + refs), boundary conditions, sort, condensation,
// collision, observer.
type DataPlaneDriver struct {
	GridboxMaps *GridboxMap
	Gridboxes   []Gridbox
	Store       *ParticleStore

	Motion      MotionKernel
	Transport   TransportAcrossDomain
	BoundaryCnd BoundaryConditions
	Condensation CondensationSolver
	KohlerFactors func(p *Particle) (a, b float64)
	Collision   CollisionEngine
	RNG         *RNGPool
	Scheduler   ProcessScheduler
	Observer    Observer
	Dynamics    CoupledDynamics

	Log *logrus.Entry
}

// StepOnce runs every kernel once, in order, using dtMotion as the
// timestep of motion, condensation and collision alike, and hands the
// result to the observer stamped with time t. It returns an error from
// whichever kernel raised one, per the core's no-catch propagation
// policy.
func (d *DataPlaneDriver) StepOnce(ctx context.Context, t float64, dtMotion float64) error {
	domain := d.Store.GetDomain()

	if err := d.Motion.Advance(dtMotion, d.GridboxMaps, d.Gridboxes, domain); err != nil {
		d.logError("motion", err)
		return err
	}
	if err := d.Transport.Transport(d.GridboxMaps, d.Gridboxes, d.Store); err != nil {
		d.logError("transport", err)
		return err
	}
	if err := d.BoundaryCnd.Apply(d.GridboxMaps, d.Gridboxes, d.Store, d.Transport.Sort); err != nil {
		d.logError("boundary", err)
		return err
	}

	domain = d.Store.GetDomain()
	if err := d.Condensation.Step(dtMotion, d.GridboxMaps, d.Gridboxes, domain, d.KohlerFactors); err != nil {
		d.logError("condensation", err)
		return err
	}
	d.Collision.Step(dtMotion, d.GridboxMaps, d.Gridboxes, domain, d.RNG)

	if d.Observer != nil {
		if err := d.Observer.SnapshotTime(t); err != nil {
			return err
		}
		if err := d.Observer.SnapshotState(d.Gridboxes); err != nil {
			return err
		}
		if err := d.Observer.SnapshotParticles(d.Store.GetDomain()); err != nil {
			return err
		}
	}
	return nil
}

// RunCouplingStep advances the domain through every due sub-process
// between t and t+couplingStep, exchanging state with Dynamics at the
// boundaries of the tick.
func (d *DataPlaneDriver) RunCouplingStep(ctx context.Context, t, couplingStep float64) error {
	if d.Dynamics != nil {
		states, err := d.Dynamics.Receive(ctx, t)
		if err != nil {
			return err
		}
		for i := range states {
			if i < len(d.Gridboxes) {
				d.Gridboxes[i].State = states[i]
			}
		}
	}

	if err := d.Scheduler.AdvanceTo(t, t+couplingStep); err != nil {
		return err
	}

	if d.Dynamics != nil {
		deltas := make([]GridboxState, len(d.Gridboxes))
		for i := range d.Gridboxes {
			deltas[i] = d.Gridboxes[i].State
		}
		if err := d.Dynamics.Send(ctx, t+couplingStep, deltas); err != nil {
			return err
		}
	}
	return nil
}

func (d *DataPlaneDriver) logError(stage string, err error) {
	if d.Log == nil {
		return
	}
	d.Log.WithField("stage", stage).WithError(err).Error("data plane kernel failed")
}
