// Copyright 2025 go-openjpeg Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dwt

import (
	"math"
	"math/bits"
)

// L2 norms of the synthesis basis vectors, indexed by orientation then
// decomposition level. Levels past the table reuse the last entry.
var norms53 = [4][10]float64{
	{1.000, 1.500, 2.750, 5.375, 10.68, 21.34, 42.67, 85.33, 170.7, 341.3},
	{1.038, 1.592, 2.919, 5.703, 11.33, 22.64, 45.25, 90.48, 180.9},
	{1.038, 1.592, 2.919, 5.703, 11.33, 22.64, 45.25, 90.48, 180.9},
	{0.7186, 0.9218, 1.586, 3.043, 6.019, 12.01, 24.00, 47.97, 95.93},
}

var normsReal = [4][10]float64{
	{1.000, 1.965, 4.177, 8.403, 16.90, 33.84, 67.69, 135.3, 270.6, 540.9},
	{2.022, 3.989, 8.355, 17.04, 34.27, 68.63, 137.3, 274.6, 549.0},
	{2.022, 3.989, 8.355, 17.04, 34.27, 68.63, 137.3, 274.6, 549.0},
	{2.080, 3.865, 8.307, 17.18, 34.71, 69.59, 139.3, 278.6, 557.2},
}

func clampLevel(level, orient int) int {
	if orient == 0 && level >= 10 {
		return 9
	}
	if orient > 0 && level >= 9 {
		return 8
	}
	return level
}

// Norm returns the 5/3 synthesis basis norm for a subband.
func Norm(level, orient int) float64 {
	return norms53[orient][clampLevel(level, orient)]
}

// NormReal returns the 9/7 synthesis basis norm for a subband.
func NormReal(level, orient int) float64 {
	return normsReal[orient][clampLevel(level, orient)]
}

// StepSize is a quantization step size in the exponent/mantissa encoding of
// the QCD and QCC marker segments: an 11-bit mantissa and a 5-bit exponent.
type StepSize struct {
	Expn int
	Mant int
}

// Value reconstructs the real step size for a band coded with prec bits and
// log2 gain.
func (s StepSize) Value(prec, gain int) float64 {
	return (1.0 + float64(s.Mant)/2048.0) * math.Pow(2, float64(prec+gain-s.Expn))
}

// floorLog2 returns floor(log2(n)) for n >= 1.
func floorLog2(n int) int {
	return bits.Len(uint(n)) - 1
}

// encodeStepsize converts a step size scaled by 8192 into the marker
// encoding. numbps is the band's dynamic range, precision plus gain.
func encodeStepsize(stepsize, numbps int) StepSize {
	p := floorLog2(stepsize) - 13
	n := 11 - floorLog2(stepsize)
	var mant int
	if n < 0 {
		mant = stepsize >> -n
	} else {
		mant = stepsize << n
	}
	return StepSize{
		Expn: numbps - p,
		Mant: mant & 0x7ff,
	}
}

// BandGain returns the log2 gain of a subband orientation: 0 for LL, 1 for
// HL and LH, 2 for HH. Reversible components carry no gain.
func BandGain(reversible bool, orient int) int {
	if reversible {
		return 0
	}
	switch orient {
	case 0:
		return 0
	case 1, 2:
		return 1
	default:
		return 2
	}
}

// CalcExplicitStepsizes derives one step size per subband for a component
// coded with numRes resolutions and prec bits of precision. Band 0 is the
// resolution 0 LL band; band 3(r-1)+o for o in 1..3 is orientation o of
// resolution r. Reversible components take the no-quantization step size.
func CalcExplicitStepsizes(numRes, prec int, reversible bool) []StepSize {
	numBands := 3*numRes - 2
	steps := make([]StepSize, numBands)
	for bandno := 0; bandno < numBands; bandno++ {
		resno, orient := 0, 0
		if bandno > 0 {
			resno = (bandno-1)/3 + 1
			orient = (bandno-1)%3 + 1
		}
		level := numRes - 1 - resno
		gain := BandGain(reversible, orient)

		stepsize := 1.0
		if !reversible {
			stepsize = float64(int(1)<<gain) / NormReal(level, orient)
		}
		steps[bandno] = encodeStepsize(int(math.Floor(stepsize*8192.0)), prec+gain)
	}
	return steps
}
