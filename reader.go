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
	"encoding/binary"
	"io"
	"math"
)

// varDescriptor is one framed-binary variable descriptor: three uint32
// fields (read here as a name length, a units length, and the payload's
// element count), two single-byte characters that the readers skip,
// and a float64 scale factor. The scale factor is decoded but not
// applied to the payload.
type varDescriptor struct {
	NameLen, UnitsLen uint32
	ElementCount      uint32
	Scale             float64
}

const varDescriptorBytes = 4 + 4 + 4 + 2 + 8 // 3*u32 + 2*char + f64, matching mbytes_pervar's layout

// frameHeader is the framed-binary format's fixed four-uint32 header
// shared by the grid and initial-particle inputs.
type frameHeader struct {
	D0Bytes, CharBytes, NVars, MBytesPerVar uint32
}

func readFrameHeader(r io.Reader) (frameHeader, []byte, []varDescriptor, error) {
	var h frameHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return h, nil, nil, &InputMalformed{Source: "frame header", Reason: err.Error()}
	}
	meta := make([]byte, h.CharBytes)
	if _, err := io.ReadFull(r, meta); err != nil {
		return h, nil, nil, &InputMalformed{Source: "metadata block", Reason: err.Error()}
	}
	descriptors := make([]varDescriptor, h.NVars)
	for i := range descriptors {
		buf := make([]byte, h.MBytesPerVar)
		if _, err := io.ReadFull(r, buf); err != nil {
			return h, nil, nil, &InputMalformed{Source: "variable descriptor", Reason: err.Error()}
		}
		if len(buf) < varDescriptorBytes {
			return h, nil, nil, &InputMalformed{Source: "variable descriptor", Reason: "descriptor shorter than expected layout"}
		}
		descriptors[i] = varDescriptor{
			NameLen:      binary.LittleEndian.Uint32(buf[0:4]),
			UnitsLen:     binary.LittleEndian.Uint32(buf[4:8]),
			ElementCount: binary.LittleEndian.Uint32(buf[8:12]),
			Scale:        float64BitsToFloat(binary.LittleEndian.Uint64(buf[14:22])),
		}
	}
	return h, meta, descriptors, nil
}

func float64BitsToFloat(bits uint64) float64 {
	return math.Float64frombits(bits)
}

func readFloat64Array(r io.Reader, n uint32) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		var bits uint64
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return nil, &InputMalformed{Source: "float64 payload", Reason: err.Error()}
		}
		out[i] = float64BitsToFloat(bits)
	}
	return out, nil
}

func readUint32Array(r io.Reader, n uint32) ([]uint32, error) {
	out := make([]uint32, n)
	if err := binary.Read(r, binary.LittleEndian, &out); err != nil {
		return nil, &InputMalformed{Source: "uint32 payload", Reason: err.Error()}
	}
	return out, nil
}

func readUint64Array(r io.Reader, n uint32) ([]uint64, error) {
	out := make([]uint64, n)
	if err := binary.Read(r, binary.LittleEndian, &out); err != nil {
		return nil, &InputMalformed{Source: "uint64 payload", Reason: err.Error()}
	}
	return out, nil
}

// ReadGridboxMap decodes the framed binary grid format into a
// GridboxMap. It consumes the header, metadata, and variable
// descriptors described in the external-interfaces section, then
// reads the gridbox-index and per-axis bounds payloads.
func ReadGridboxMap(r io.Reader, decompZ, decompX, decompY AxisDecomp, ndims int) (*GridboxMap, error) {
	_, _, descriptors, err := readFrameHeader(r)
	if err != nil {
		return nil, err
	}
	if len(descriptors) < 2 {
		return nil, &InputMalformed{Source: "grid file", Reason: "expected at least gridbox-index and bounds variables"}
	}

	indices, err := readUint32Array(r, descriptors[0].ElementCount)
	if err != nil {
		return nil, err
	}
	n := uint32(len(indices))

	boundsFlat, err := readFloat64Array(r, descriptors[1].ElementCount)
	if err != nil {
		return nil, err
	}
	if uint32(len(boundsFlat)) != 2*uint32(ndims)*n {
		return nil, &InputMalformed{Source: "grid file", Reason: "bounds array length does not match 2*ndims*N"}
	}

	boundsZ := make([]Bounds, n)
	boundsX := make([]Bounds, n)
	boundsY := make([]Bounds, n)
	volume := make([]float64, n)
	area := make([]float64, n)

	stride := 2 * ndims
	for i := uint32(0); i < n; i++ {
		base := i * uint32(stride)
		boundsZ[i] = Bounds{Lower: boundsFlat[base], Upper: boundsFlat[base+1]}
		if ndims > 1 {
			boundsX[i] = Bounds{Lower: boundsFlat[base+2], Upper: boundsFlat[base+3]}
		} else {
			boundsX[i] = UnboundedBounds()
		}
		if ndims > 2 {
			boundsY[i] = Bounds{Lower: boundsFlat[base+4], Upper: boundsFlat[base+5]}
		} else {
			boundsY[i] = UnboundedBounds()
		}
		dz := boundsZ[i].Upper - boundsZ[i].Lower
		dx := 1.0
		dy := 1.0
		if ndims > 1 {
			dx = boundsX[i].Upper - boundsX[i].Lower
		}
		if ndims > 2 {
			dy = boundsY[i].Upper - boundsY[i].Lower
		}
		volume[i] = dz * dx * dy
		area[i] = dx * dy
	}

	return NewGridboxMap(boundsZ, boundsX, boundsY, volume, area, decompZ, decompX, decompY)
}

// ReadInitialParticles decodes the framed binary initial-particle
// format into a slice of Particle. All per-variable arrays must be
// of equal length, otherwise InputMalformed is returned.
func ReadInitialParticles(r io.Reader, solute *SoluteProperties, idgen *SuperdropletIDGen) ([]Particle, error) {
	_, _, descriptors, err := readFrameHeader(r)
	if err != nil {
		return nil, err
	}
	if len(descriptors) < 7 {
		return nil, &InputMalformed{Source: "particle file", Reason: "expected 7 particle variables"}
	}

	gbxIndex, err := readUint32Array(r, descriptors[0].ElementCount)
	if err != nil {
		return nil, err
	}
	multiplicity, err := readUint64Array(r, descriptors[1].ElementCount)
	if err != nil {
		return nil, err
	}
	radius, err := readFloat64Array(r, descriptors[2].ElementCount)
	if err != nil {
		return nil, err
	}
	soluteMass, err := readFloat64Array(r, descriptors[3].ElementCount)
	if err != nil {
		return nil, err
	}
	coord3, err := readFloat64Array(r, descriptors[4].ElementCount)
	if err != nil {
		return nil, err
	}
	coord1, err := readFloat64Array(r, descriptors[5].ElementCount)
	if err != nil {
		return nil, err
	}
	coord2, err := readFloat64Array(r, descriptors[6].ElementCount)
	if err != nil {
		return nil, err
	}

	n := len(gbxIndex)
	if len(multiplicity) != n || len(radius) != n || len(soluteMass) != n ||
		len(coord3) != n || len(coord1) != n || len(coord2) != n {
		return nil, &InputMalformed{Source: "particle file", Reason: "variable arrays have unequal length"}
	}

	particles := make([]Particle, n)
	for i := 0; i < n; i++ {
		particles[i] = Particle{
			GbxIndex:     gbxIndex[i],
			Multiplicity: multiplicity[i],
			Radius:       radius[i],
			SoluteMass:   soluteMass[i],
			Coord3:       coord3[i],
			Coord1:       coord1[i],
			Coord2:       coord2[i],
			Solute:       solute,
			ID:           idgen.Next(),
		}
	}
	return particles, nil
}
