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
	"time"
)

// CoupledDynamics is the external thermodynamics driver the core
// couples with at fixed intervals. Its internals are out of scope;
// only this interface matters to the data plane.
type CoupledDynamics interface {
	CouplingStep() time.Duration
	Receive(ctx context.Context, t float64) ([]GridboxState, error)
	Send(ctx context.Context, t float64, deltas []GridboxState) error
}

// ConstantFieldDynamics is a stand-in CoupledDynamics that always
// returns the same field and discards every delta sent to it. It lets
// the data plane run standalone, e.g. under Prescribed2DFlow motion,
// without a real external thermodynamics model.
type ConstantFieldDynamics struct {
	Step  time.Duration
	Field []GridboxState
}

// CouplingStep implements CoupledDynamics.
func (d *ConstantFieldDynamics) CouplingStep() time.Duration { return d.Step }

// Receive implements CoupledDynamics.
func (d *ConstantFieldDynamics) Receive(ctx context.Context, t float64) ([]GridboxState, error) {
	return d.Field, nil
}

// Send implements CoupledDynamics.
func (d *ConstantFieldDynamics) Send(ctx context.Context, t float64, deltas []GridboxState) error {
	return nil
}

// ValidateCoupling checks that dyn's coupling step matches the
// driver's configured coupling step, raising ConfigMismatch
// otherwise. Called once at construction, per the external-interface
// contract.
func ValidateCoupling(dyn CoupledDynamics, driverCouplingStep time.Duration) error {
	if dyn.CouplingStep() != driverCouplingStep {
		return &ConfigMismatch{Reason: "coupled dynamics coupling step does not match driver coupling step"}
	}
	return nil
}
