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
	"github.com/ajroetker/go-highway/hwy"
)

// liftStep97 applies one 9/7 lifting step to a subband:
//
//	target[i] -= c * (neighbor[n1] + neighbor[n2])
//
// phase=0 pairs (i, i+1), phase=1 pairs (i-1, i); out-of-range neighbors
// clamp to the band edges. Analysis steps pass the negated coefficient.
func liftStep97(target []float32, tLen int, neighbor []float32, nLen int, c float32, phase int) {
	if tLen == 0 || nLen == 0 {
		return
	}

	cVec := hwy.Set(c)
	lanes := hwy.MaxLanes[float32]()

	start := 0
	if phase == 1 {
		target[0] -= c * (neighbor[0] + neighbor[0])
		start = 1
	}

	safeEnd := tLen
	if phase == 0 {
		if nLen-1 < safeEnd {
			safeEnd = nLen - 1
		}
	} else {
		if nLen < safeEnd {
			safeEnd = nLen
		}
	}

	// Bulk SIMD loop for the range where both neighbor loads are in bounds.
	i := start
	for ; i+lanes <= safeEnd; i += lanes {
		var n1, n2 hwy.Vec[float32]
		if phase == 0 {
			n1 = hwy.Load(neighbor[i:])
			n2 = hwy.Load(neighbor[i+1:])
		} else {
			n1 = hwy.Load(neighbor[i-1:])
			n2 = hwy.Load(neighbor[i:])
		}
		t := hwy.Load(target[i:])
		hwy.Store(hwy.Sub(t, hwy.Mul(cVec, hwy.Add(n1, n2))), target[i:])
	}

	// Scalar remainder within the safe range.
	for ; i < safeEnd; i++ {
		n1, n2 := i, i+1
		if phase == 1 {
			n1, n2 = i-1, i
		}
		target[i] -= c * (neighbor[n1] + neighbor[n2])
	}

	// Scalar tail with boundary clamping.
	for ; i < tLen; i++ {
		n1, n2 := i, i+1
		if phase == 1 {
			n1, n2 = i-1, i
		}
		if n1 >= nLen {
			n1 = nLen - 1
		}
		if n2 >= nLen {
			n2 = nLen - 1
		}
		target[i] -= c * (neighbor[n1] + neighbor[n2])
	}
}

// scale97 multiplies the first n values of data by s.
func scale97(data []float32, n int, s float32) {
	sVec := hwy.Set(s)
	lanes := hwy.MaxLanes[float32]()
	i := 0
	for ; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Mul(hwy.Load(data[i:]), sVec), data[i:])
	}
	for ; i < n; i++ {
		data[i] *= s
	}
}

// idwt97Line synthesizes one packed [sn low | dn high] line in place. low and
// high are scratch with capacity >= sn and >= dn. Single-sample lines pass
// through unscaled.
func idwt97Line(line []float32, sn, dn, cas int, low, high []float32) {
	n := sn + dn
	if n <= 1 {
		return
	}
	copy(low[:sn], line[:sn])
	copy(high[:dn], line[sn:n])

	lowPhase := 1 - cas
	highPhase := cas

	scale97(low[:sn], sn, k97)
	scale97(high[:dn], dn, twoInvK97)
	liftStep97(low[:sn], sn, high[:dn], dn, delta97, lowPhase)
	liftStep97(high[:dn], dn, low[:sn], sn, gamma97, highPhase)
	liftStep97(low[:sn], sn, high[:dn], dn, beta97, lowPhase)
	liftStep97(high[:dn], dn, low[:sn], sn, alpha97, highPhase)

	interleaveLine(line[:n], low[:sn], sn, high[:dn], dn, cas)
}

// fdwt97Line decomposes one interleaved line in place into [sn low | dn
// high], the reverse of idwt97Line up to float rounding and the small gap
// between the halfK97 and twoInvK97 high-band scales.
func fdwt97Line(line []float32, sn, dn, cas int, low, high []float32) {
	n := sn + dn
	if n <= 1 {
		return
	}
	deinterleaveLine(line[:n], low[:sn], sn, high[:dn], dn, cas)

	lowPhase := 1 - cas
	highPhase := cas

	liftStep97(high[:dn], dn, low[:sn], sn, -alpha97, highPhase)
	liftStep97(low[:sn], sn, high[:dn], dn, -beta97, lowPhase)
	liftStep97(high[:dn], dn, low[:sn], sn, -gamma97, highPhase)
	liftStep97(low[:sn], sn, high[:dn], dn, -delta97, lowPhase)
	scale97(low[:sn], sn, invK97)
	scale97(high[:dn], dn, halfK97)

	copy(line[:sn], low[:sn])
	copy(line[sn:n], high[:dn])
}
