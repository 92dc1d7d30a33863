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
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// The 9/7 comparisons allow a small absolute error: the SIMD line kernels
// and the scalar stripe kernels may round c*(a+b) differently, and a
// round trip loses a few low bits to the lifting cascade.
const (
	roundTripTol97   = 2e-2
	crossKernelTol97 = 1e-3
)

func randFloatLine(rng *rand.Rand, n int) []float32 {
	line := make([]float32, n)
	for i := range line {
		line[i] = rng.Float32()*1024 - 512
	}
	return line
}

func maxAbsDiff(a, b []float32) float64 {
	diff := make([]float64, len(a))
	for i := range a {
		diff[i] = float64(a[i]) - float64(b[i])
	}
	return floats.Norm(diff, math.Inf(1))
}

func TestRoundTrip97Line(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range testSizes {
		for cas := 0; cas <= 1; cas++ {
			t.Run(fmt.Sprintf("n=%d/cas=%d", n, cas), func(t *testing.T) {
				sn, dn := subbandCounts(n, cas)
				orig := randFloatLine(rng, n)

				line := append([]float32(nil), orig...)
				low := make([]float32, n)
				high := make([]float32, n)
				fdwt97Line(line, sn, dn, cas, low, high)
				idwt97Line(line, sn, dn, cas, low, high)

				if d := maxAbsDiff(line, orig); d > roundTripTol97 {
					t.Fatalf("max abs error %g exceeds %g", d, roundTripTol97)
				}
			})
		}
	}
}

// A single sample passes through both directions unscaled, whatever the
// parity.
func TestSingleSamplePassthrough97(t *testing.T) {
	for cas := 0; cas <= 1; cas++ {
		sn, dn := subbandCounts(1, cas)
		line := []float32{123.5}
		low := make([]float32, 1)
		high := make([]float32, 1)
		fdwt97Line(line, sn, dn, cas, low, high)
		if line[0] != 123.5 {
			t.Fatalf("cas=%d forward: got %g, want 123.5", cas, line[0])
		}
		idwt97Line(line, sn, dn, cas, low, high)
		if line[0] != 123.5 {
			t.Fatalf("cas=%d inverse: got %g, want 123.5", cas, line[0])
		}
	}
}

func TestInterleavedMatchesLine97(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for _, n := range testSizes {
		for cas := 0; cas <= 1; cas++ {
			t.Run(fmt.Sprintf("n=%d/cas=%d", n, cas), func(t *testing.T) {
				sn, dn := subbandCounts(n, cas)
				packed := randFloatLine(rng, n)

				want := append([]float32(nil), packed...)
				idwt97Line(want, sn, dn, cas, make([]float32, n), make([]float32, n))

				buf := make([]float32, n)
				for i := 0; i < sn; i++ {
					buf[2*i+cas] = packed[i]
				}
				for j := 0; j < dn; j++ {
					buf[2*j+1-cas] = packed[sn+j]
				}
				idwt97Interleaved(buf, 1, sn, dn, cas, 0, sn, 0, dn)

				if d := maxAbsDiff(buf, want); d > crossKernelTol97 {
					t.Fatalf("max abs error %g exceeds %g", d, crossKernelTol97)
				}
			})
		}
	}
}

func TestForwardInterleavedMatchesLine97(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for _, n := range testSizes {
		for cas := 0; cas <= 1; cas++ {
			t.Run(fmt.Sprintf("n=%d/cas=%d", n, cas), func(t *testing.T) {
				sn, dn := subbandCounts(n, cas)
				orig := randFloatLine(rng, n)

				packed := append([]float32(nil), orig...)
				fdwt97Line(packed, sn, dn, cas, make([]float32, n), make([]float32, n))

				buf := append([]float32(nil), orig...)
				fdwt97Interleaved(buf, 1, sn, dn, cas)

				deint := make([]float32, n)
				for i := 0; i < sn; i++ {
					deint[i] = buf[2*i+cas]
				}
				for j := 0; j < dn; j++ {
					deint[sn+j] = buf[2*j+1-cas]
				}

				if d := maxAbsDiff(deint, packed); d > crossKernelTol97 {
					t.Fatalf("max abs error %g exceeds %g", d, crossKernelTol97)
				}
			})
		}
	}
}

func TestRoundTrip97Interleaved(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	for _, n := range testSizes {
		for cas := 0; cas <= 1; cas++ {
			sn, dn := subbandCounts(n, cas)
			orig := randFloatLine(rng, n)

			buf := append([]float32(nil), orig...)
			fdwt97Interleaved(buf, 1, sn, dn, cas)
			idwt97Interleaved(buf, 1, sn, dn, cas, 0, sn, 0, dn)

			if d := maxAbsDiff(buf, orig); d > roundTripTol97 {
				t.Fatalf("n=%d cas=%d: max abs error %g exceeds %g", n, cas, d, roundTripTol97)
			}
		}
	}
}
