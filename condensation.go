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

	"github.com/ctessum/atmos/seinfeld"
)

const (
	waterDensity     = 1000.   // kg/m^3
	latentHeatVap    = 2.5e6   // J/kg, reference value at 273K
	thermalCondRef   = 2.4e-2  // W/(m K), reference thermal conductivity of air at 298K
	vaporDiffRef     = 2.21e-5 // m^2/s, reference water vapor diffusivity at 298K
	refTemperatureK  = 298.
	condEperR        = 2400. // K, activation-energy/R used to temperature-scale the reference rates

	molarMassRatio = 0.622 // M_water / M_dry_air
)

// saturationPressure returns the equilibrium vapor pressure of water
// over liquid water (Pa), the Tetens-form fit (Murray, 1967) also
// used by Bjorn Stevens' moist_thermodynamics.saturation_vapour_pressures.
func saturationPressure(temperatureK float64) float64 {
	const (
		a    = 17.4146
		b    = 33.639
		tRef = 273.16  // K, triple point of water
		pRef = 611.655 // Pa, triple point of water
	)
	return pRef * math.Exp(a*(temperatureK-tRef)/(temperatureK-b))
}

// supersaturationRatio returns S = p_vapour/psat given the ambient
// pressure, the vapor mass mixing ratio, and the saturation pressure.
func supersaturationRatio(pressurePa, qvap, psat float64) float64 {
	return (pressurePa * qvap) / ((molarMassRatio + qvap) * psat)
}

// diffusionFactors returns the heat-conduction factor F_k and the
// vapor-diffusion factor F_d used in the radial growth equation,
// temperature-scaled from reference values the way seinfeld's
// aqueous-chemistry rate adjustment scales a reference-temperature
// rate constant to ambient conditions.
func diffusionFactors(temperatureK float64) (fk, fd float64) {
	k := seinfeld.TemperatureAdjustRate(thermalCondRef, condEperR, temperatureK)
	d := seinfeld.TemperatureAdjustRate(vaporDiffRef, condEperR, temperatureK)
	fk = latentHeatVap * latentHeatVap * waterDensity / (k * temperatureK)
	fd = waterDensity * 461.5 * temperatureK / (d * 2.17e8 / temperatureK)
	return fk, fd
}

// CondensationSolver advances each particle's radius by dt under the
// stiff radial growth ODE via implicit Euler on z = r^2, solved by
// Newton-Raphson.
type CondensationSolver struct {
	MaxIterations  int
	RTol, ATol     float64
	ApplyBackReact bool
}

// DefaultCondensationSolver returns conservative iteration defaults.
func DefaultCondensationSolver(applyBackReaction bool) CondensationSolver {
	return CondensationSolver{MaxIterations: 50, RTol: 1e-6, ATol: 1e-12, ApplyBackReact: applyBackReaction}
}

// impIter holds one Newton-Raphson iteration's fixed coefficients,
// named after the Köhler-factor/ventilation-factor fields an
// implicit-Euler condensation step iterates against.
type impIter struct {
	rPrev2  float64 // previous radius squared
	sRatio  float64 // S - 1
	akoh    float64 // Köhler curvature factor A
	bkoh    float64 // Köhler solute factor B
	ffactor float64 // rho_l * (F_k + F_d)
	dt      float64
}

func (it impIter) g(z float64) float64 {
	return 1 - it.rPrev2/z - 2*it.dt*(it.sRatio-it.akoh/math.Sqrt(z)+it.bkoh/math.Pow(z, 1.5))/(z*it.ffactor)
}

func (it impIter) dgdz(z float64) float64 {
	c := 2 * it.dt / it.ffactor
	return it.rPrev2/(z*z) + c*it.sRatio/(z*z) - 1.5*c*it.akoh/math.Pow(z, 2.5) + 2.5*c*it.bkoh/math.Pow(z, 3.5)
}

// solveZ runs Newton-Raphson on the implicit-Euler residual until the
// convergence test |g_new - g_prev| < rtol*|g_new| + atol holds or
// the iteration cap is reached.
func (s CondensationSolver) solveZ(it impIter) (float64, error) {
	z := it.rPrev2
	gPrev := it.g(z)
	for iter := 0; iter < s.MaxIterations; iter++ {
		deriv := it.dgdz(z)
		if deriv == 0 {
			deriv = 1e-30
		}
		zNext := z - gPrev/deriv
		if zNext <= 0 {
			zNext = z / 2
		}
		gNext := it.g(zNext)
		if math.Abs(gNext-gPrev) < s.RTol*math.Abs(gNext)+s.ATol {
			return zNext, nil
		}
		z, gPrev = zNext, gNext
	}
	return 0, &ConvergenceFailure{Solver: "CondensationSolver", Iterations: s.MaxIterations, Residual: math.Abs(gPrev)}
}

// Step advances every alive particle in domainParticles belonging to
// gridboxes by dt, optionally back-reacting on each gridbox's
// thermodynamic state.
func (s CondensationSolver) Step(dt float64, gbxmaps *GridboxMap, gridboxes []Gridbox, domainParticles []Particle, kohlerFactors func(p *Particle) (a, b float64)) error {
	for gi := range gridboxes {
		gbx := &gridboxes[gi]
		tempK := gbx.State.Temperature.Value()
		fk, fd := diffusionFactors(tempK)
		ffactor := waterDensity * (fk + fd)
		psat := saturationPressure(tempK)
		sExcess := supersaturationRatio(gbx.State.Pressure.Value(), gbx.State.VaporMixR, psat) - 1

		var deltaMass float64
		lo, hi := gbx.Refs[0], gbx.Refs[1]
		for i := lo; i < hi; i++ {
			p := &domainParticles[i]
			if !p.Alive() {
				continue
			}
			akoh, bkoh := kohlerFactors(p)
			it := impIter{
				rPrev2:  p.Radius * p.Radius,
				sRatio:  sExcess,
				akoh:    akoh,
				bkoh:    bkoh,
				ffactor: ffactor,
				dt:      dt,
			}
			z, err := s.solveZ(it)
			if err != nil {
				return err
			}
			rNew := math.Sqrt(z)
			deltaMass += 4 * math.Pi * waterDensity * p.Radius * p.Radius * (rNew - p.Radius) * float64(p.Multiplicity)
			p.Radius = rNew
		}

		if s.ApplyBackReact && gbx.Volume > 0 {
			dryAirDensity := gbx.State.Pressure.Value() / (287.05 * gbx.State.Temperature.Value())
			deltaQc := deltaMass / (dryAirDensity * gbx.Volume)
			gbx.State.CondMixR += deltaQc
			gbx.State.VaporMixR -= deltaQc
			cp := 1005. + 1850.*gbx.State.VaporMixR
			deltaT := (latentHeatVap / cp) * deltaQc
			gbx.State.Temperature = newTemperature(gbx.State.Temperature.Value() + deltaT)
		}
	}
	return nil
}
