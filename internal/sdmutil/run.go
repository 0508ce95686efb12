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

package sdmutil

import (
	"context"
	"fmt"
	"os"
	"time"

	sdm "github.com/atmos-sim/superdrop"
	"github.com/sirupsen/logrus"
)

const defaultStoreHeadroom = 2 // store capacity as a multiple of the initial particle count

// defaultSolute approximates sea-salt aerosol, the common choice for
// cloud condensation nuclei in warm-cloud superdroplet setups.
var defaultSolute = &sdm.SoluteProperties{
	Density:    2170,
	MolarMass:  0.05844,
	IonsPerMol: 2,
}

// decomp1D returns a single-axis AxisDecomp spanning n cells with no
// neighbors beyond its own extent, used for axes the grid file
// collapses to one cell.
func decomp1D(n int) sdm.AxisDecomp {
	return sdm.AxisDecomp{N: n, Stride: 1, Policy: sdm.Finite}
}

// kohlerFactors derives the Köhler curvature factor A and solute
// factor B for a particle, used by both the condensation solver and
// (were it needed) equilibrium radius initialization.
func kohlerFactors(p *sdm.Particle) (a, b float64) {
	const (
		surfaceTension = 7.28e-2 // N/m, water-air at ~293K
		gasConstant    = 8.314
		waterMolarMass = 0.018015
	)
	a = 2 * surfaceTension * waterMolarMass / (gasConstant * 293 * 1000)
	b = p.Solute.IonsPerMol * waterMolarMass * p.SoluteMass / (p.Solute.MolarMass * 1000 * p.Vol())
	return a, b
}

// buildDriver loads the configured grid and particle files and
// assembles a DataPlaneDriver plus a ProcessScheduler whose processes
// run at the configured sub-timestep periods, and a ConstantFieldDynamics
// seeded from the grid's initial thermodynamic state.
func buildDriver(cfg *Cfg) (*sdm.DataPlaneDriver, *sdm.GobObserver, error) {
	gridFile, err := os.Open(cfg.GetString("GridFile"))
	if err != nil {
		return nil, nil, fmt.Errorf("superdrop: opening grid file: %v", err)
	}
	defer gridFile.Close()

	decompZ := decomp1D(1)
	decompX := decomp1D(1)
	decompY := decomp1D(1)
	gbxmaps, err := sdm.ReadGridboxMap(gridFile, decompZ, decompX, decompY, 3)
	if err != nil {
		return nil, nil, err
	}

	idgen := sdm.NewSuperdropletIDGen(0)

	particlesFile, err := os.Open(cfg.GetString("ParticlesFile"))
	if err != nil {
		return nil, nil, fmt.Errorf("superdrop: opening particles file: %v", err)
	}
	defer particlesFile.Close()
	initial, err := sdm.ReadInitialParticles(particlesFile, defaultSolute, idgen)
	if err != nil {
		return nil, nil, err
	}

	capacity := len(initial) * defaultStoreHeadroom
	if capacity < len(initial) {
		capacity = len(initial)
	}
	store, err := sdm.NewParticleStore(capacity, initial)
	if err != nil {
		return nil, nil, err
	}

	n := gbxmaps.Len()
	gridboxes := make([]sdm.Gridbox, n)
	for g := 0; g < n; g++ {
		gridboxes[g] = sdm.Gridbox{
			Index:  uint32(g),
			Volume: gbxmaps.Volume(uint32(g)),
			Area:   gbxmaps.Area(uint32(g)),
		}
	}

	sorter := sdm.NewCountingSort(n, capacity)
	sorter.Sort(gbxmaps, store, gridboxes)

	motion := sdm.MotionKernel{
		Formula:    sdm.SedimentationPlusWind{Terminal: sdm.RogersYauTerminalVelocity{}},
		EnforceCFL: cfg.GetBool("EnforceCFL"),
	}
	transport := sdm.TransportAcrossDomain{Sort: sorter}
	boundary := sdm.NullBoundaryConditions{}

	condensation := sdm.DefaultCondensationSolver(cfg.GetBool("ApplyCondensationBackReaction"))

	collision := sdm.CollisionEngine{
		Probability: sdm.HydrodynamicKernel{
			Terminal:   sdm.RogersYauTerminalVelocity{},
			Efficiency: sdm.UnityEfficiency{},
		},
		Enact: sdm.CoalescenceEnactment{},
	}

	rng := sdm.NewRNGPool(uint64(cfg.GetInt64("RandomSeed")))

	observer, err := sdm.NewGobObserver(cfg.GetString("OutputDir"))
	if err != nil {
		return nil, nil, err
	}

	driver := &sdm.DataPlaneDriver{
		GridboxMaps:   gbxmaps,
		Gridboxes:     gridboxes,
		Store:         store,
		Motion:        motion,
		Transport:     transport,
		BoundaryCnd:   boundary,
		Condensation:  condensation,
		KohlerFactors: kohlerFactors,
		Collision:     collision,
		RNG:           rng,
		Observer:      observer,
		Dynamics: &sdm.ConstantFieldDynamics{
			Step:  time.Duration(cfg.GetFloat64("CouplingStepSeconds") * float64(time.Second)),
			Field: fieldFrom(gridboxes),
		},
		Log: logrus.NewEntry(cfg.Log).WithField("component", "driver"),
	}
	couplingStep := time.Duration(cfg.GetFloat64("CouplingStepSeconds") * float64(time.Second))
	if err := sdm.ValidateCoupling(driver.Dynamics, couplingStep); err != nil {
		return nil, nil, err
	}

	motionPeriod := cfg.GetFloat64("MotionSubstepSeconds")
	condPeriod := cfg.GetFloat64("CondensationSubstepSeconds")
	collPeriod := cfg.GetFloat64("CollisionSubstepSeconds")

	driver.Scheduler = sdm.ProcessScheduler{
		Processes: []sdm.Process{
			&sdm.PeriodicProcess{Period: motionPeriod, Fn: func(t float64) error {
				domain := store.GetDomain()
				if err := driver.Motion.Advance(motionPeriod, gbxmaps, gridboxes, domain); err != nil {
					return err
				}
				return driver.Transport.Transport(gbxmaps, gridboxes, store)
			}},
			&sdm.PeriodicProcess{Period: condPeriod, Fn: func(t float64) error {
				return driver.Condensation.Step(condPeriod, gbxmaps, gridboxes, store.GetDomain(), kohlerFactors)
			}},
			&sdm.PeriodicProcess{Period: collPeriod, Fn: func(t float64) error {
				driver.Collision.Step(collPeriod, gbxmaps, gridboxes, store.GetDomain(), rng)
				return nil
			}},
			&sdm.PeriodicProcess{Period: motionPeriod, Fn: func(t float64) error {
				if err := observer.SnapshotTime(t); err != nil {
					return err
				}
				if err := observer.SnapshotState(gridboxes); err != nil {
					return err
				}
				return observer.SnapshotParticles(store.GetDomain())
			}},
		},
	}

	return driver, observer, nil
}

func fieldFrom(gridboxes []sdm.Gridbox) []sdm.GridboxState {
	field := make([]sdm.GridboxState, len(gridboxes))
	for i := range gridboxes {
		field[i] = gridboxes[i].State
	}
	return field
}

// runSimulation wires a DataPlaneDriver from cfg and advances it one
// coupling step at a time until EndTimeSeconds.
func runSimulation(cfg *Cfg) error {
	driver, observer, err := buildDriver(cfg)
	if err != nil {
		return err
	}
	defer observer.Close()

	couplingStep := cfg.GetFloat64("CouplingStepSeconds")
	end := cfg.GetFloat64("EndTimeSeconds")
	ctx := context.Background()

	for t := 0.0; t < end; t += couplingStep {
		if err := driver.RunCouplingStep(ctx, t, couplingStep); err != nil {
			return err
		}
	}
	cfg.Log.WithField("simulated_seconds", end).Info("simulation complete")
	return nil
}

// validateConfig checks that every configured input file exists and
// that substep/end-time values are positive, without constructing or
// running a driver.
func validateConfig(cfg *Cfg) error {
	for _, name := range cfg.InputFiles() {
		path := cfg.GetString(name)
		if path == "" {
			return fmt.Errorf("superdrop: %s is not set", name)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("superdrop: %s: %v", name, err)
		}
	}
	for _, name := range []string{"CouplingStepSeconds", "MotionSubstepSeconds", "CondensationSubstepSeconds", "CollisionSubstepSeconds", "EndTimeSeconds"} {
		if cfg.GetFloat64(name) <= 0 {
			return fmt.Errorf("superdrop: %s must be positive", name)
		}
	}
	cfg.Log.Info("configuration valid")
	return nil
}
