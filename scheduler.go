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

// Process is one motion/microphysics stage the driver schedules
// independently of the others. NextStep reports the strict upper
// bound on when this process must next run; OnStep reports whether
// it is due at exactly t.
type Process interface {
	NextStep(t float64) float64
	OnStep(t float64) bool
	Run(t float64) error
}

// PeriodicProcess runs Fn every Period time units, starting from
// Offset. It is the concrete Process most motion/microphysics stages
// use: a fixed sub-step period between coupling ticks.
type PeriodicProcess struct {
	Period float64
	Offset float64
	Fn     func(t float64) error
}

// NextStep implements Process.
func (p *PeriodicProcess) NextStep(t float64) float64 {
	n := math.Floor((t-p.Offset)/p.Period) + 1
	return p.Offset + n*p.Period
}

// OnStep implements Process.
func (p *PeriodicProcess) OnStep(t float64) bool {
	if t < p.Offset {
		return false
	}
	phase := math.Mod(t-p.Offset, p.Period)
	return phase < 1e-9 || p.Period-phase < 1e-9
}

// Run implements Process.
func (p *PeriodicProcess) Run(t float64) error { return p.Fn(t) }

// ProcessScheduler composes an ordered set of processes, each with
// its own sub-timestep, and drives them forward between coupling
// ticks. It mirrors the reference codebase's functional-composition
// pattern for per-cell calculators, keyed here by timestep rather
// than a fixed cadence.
type ProcessScheduler struct {
	Processes []Process
}

// NextStep returns the minimum of every process's NextStep(t), i.e.
// the time the driver must next wake any process.
func (s ProcessScheduler) NextStep(t float64) float64 {
	next := math.Inf(1)
	for _, p := range s.Processes {
		if ns := p.NextStep(t); ns < next {
			next = ns
		}
	}
	return next
}

// RunDue invokes every process whose OnStep(t) is true, in the order
// they were registered.
func (s ProcessScheduler) RunDue(t float64) error {
	for _, p := range s.Processes {
		if p.OnStep(t) {
			if err := p.Run(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// AdvanceTo steps the scheduler forward from t to stop, running every
// due process at each intermediate NextStep boundary.
func (s ProcessScheduler) AdvanceTo(t, stop float64) error {
	for t < stop {
		if err := s.RunDue(t); err != nil {
			return err
		}
		next := s.NextStep(t)
		if next > stop {
			next = stop
		}
		t = next
	}
	return s.RunDue(t)
}
