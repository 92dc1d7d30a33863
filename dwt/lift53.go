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

// 5/3 coefficient arithmetic wraps on overflow. The helpers name that
// contract at the points where large coefficients can exceed int32 range.

func wrapAdd(a, b int32) int32 { return int32(uint32(a) + uint32(b)) }

func wrapSub(a, b int32) int32 { return int32(uint32(a) - uint32(b)) }

// idwt53Line reconstructs one packed [sn low | dn high] line in place.
// cas selects which subband owns the even output positions: 0 puts the low
// band there, 1 the high band. tmp must hold at least sn+dn values.
func idwt53Line(line []int32, sn, dn, cas int, tmp []int32) {
	n := sn + dn
	if cas == 0 {
		if n > 1 {
			idwt53Cas0(tmp, sn, line[:n])
		}
		return
	}
	switch {
	case n == 1:
		line[0] /= 2
	case n == 2:
		odd := wrapSub(line[0], (line[1]+1)>>1)
		line[0] = wrapAdd(line[1], odd)
		line[1] = odd
	default:
		idwt53Cas1(tmp, sn, line[:n])
	}
}

// idwt53Cas0 is the streaming even-anchored synthesis: one pass over the
// packed input producing interleaved output in tmp, then copied back. Each
// low sample is consumed as soon as both of its high neighbors are known, so
// the line is never materialized in subband scratch. Requires len(in) > 1.
func idwt53Cas0(tmp []int32, sn int, in []int32) {
	n := len(in)
	even := in[:sn]
	odd := in[sn:]

	s1n := even[0]
	d1n := odd[0]
	s0n := wrapSub(s1n, wrapAdd(wrapAdd(d1n, d1n), 2)>>2)

	i, j := 0, 1
	for ; i < n-3; i, j = i+2, j+1 {
		d1c := d1n
		s0c := s0n
		s1n = even[j]
		d1n = odd[j]
		s0n = wrapSub(s1n, wrapAdd(wrapAdd(d1c, d1n), 2)>>2)
		tmp[i] = s0c
		tmp[i+1] = wrapAdd(d1c, wrapAdd(s0c, s0n)>>1)
	}
	tmp[i] = s0n
	if n&1 == 1 {
		tmp[n-1] = wrapSub(even[(n-1)/2], (d1n+1)>>1)
		tmp[n-2] = wrapAdd(d1n, wrapAdd(s0n, tmp[n-1])>>1)
	} else {
		tmp[n-1] = wrapAdd(d1n, s0n)
	}
	copy(in, tmp[:n])
}

// idwt53Cas1 is the streaming odd-anchored synthesis; the high band lands on
// the even output positions. Requires len(in) > 2.
func idwt53Cas1(tmp []int32, sn int, in []int32) {
	n := len(in)
	odd := in[:sn]
	even := in[sn:]

	s1 := even[1]
	dc := wrapSub(odd[0], wrapAdd(wrapAdd(even[0], s1), 2)>>2)
	tmp[0] = wrapAdd(even[0], dc)

	bound := n - 2
	if n&1 == 0 {
		bound = n - 3
	}
	i, j := 1, 1
	for ; i < bound; i, j = i+2, j+1 {
		s2 := even[j+1]
		dNext := wrapSub(odd[j], wrapAdd(wrapAdd(s1, s2), 2)>>2)
		tmp[i] = dc
		tmp[i+1] = wrapAdd(s1, wrapAdd(dNext, dc)>>1)
		dc = dNext
		s1 = s2
	}
	tmp[i] = dc
	if n&1 == 0 {
		dNext := wrapSub(odd[n/2-1], wrapAdd(wrapAdd(s1, s1), 2)>>2)
		tmp[n-2] = wrapAdd(s1, wrapAdd(dNext, dc)>>1)
		tmp[n-1] = dNext
	} else {
		tmp[n-1] = wrapAdd(s1, dc)
	}
	copy(in, tmp[:n])
}

// synthesize53TwoPass is the textbook two-pass synthesis: lift the subbands
// in scratch, then interleave. It reconstructs bit-identically to the
// streaming path and is kept as the reference the streaming kernels are
// verified against.
func synthesize53TwoPass(line []int32, sn, dn, cas int, low, high []int32) {
	n := sn + dn
	if n <= 1 {
		if n == 1 && cas == 1 {
			line[0] /= 2
		}
		return
	}
	copy(low[:sn], line[:sn])
	copy(high[:dn], line[sn:n])
	liftUpdate53(low[:sn], sn, high[:dn], dn, cas, false)
	liftPredict53(high[:dn], dn, low[:sn], sn, cas, false)
	interleaveLine(line[:n], low[:sn], sn, high[:dn], dn, cas)
}

// fdwt53Line decomposes one interleaved line in place into [sn low | dn
// high]. low and high are scratch with capacity >= sn and >= dn.
func fdwt53Line(line []int32, sn, dn, cas int, low, high []int32) {
	n := sn + dn
	if n <= 1 {
		if n == 1 && cas == 1 {
			line[0] *= 2
		}
		return
	}
	deinterleaveLine(line[:n], low[:sn], sn, high[:dn], dn, cas)
	liftPredict53(high[:dn], dn, low[:sn], sn, cas, true)
	liftUpdate53(low[:sn], sn, high[:dn], dn, cas, true)
	copy(line[:sn], low[:sn])
	copy(line[sn:n], high[:dn])
}

// liftUpdate53 applies the 5/3 update step to the low band:
//
//	synthesis: low[i] -= (high[n1] + high[n2] + 2) >> 2
//	analysis:  low[i] += (high[n1] + high[n2] + 2) >> 2
//
// cas=0 pairs (i-1, i), cas=1 pairs (i, i+1); out-of-range neighbors clamp
// to the band edges.
func liftUpdate53(target []int32, tLen int, neighbor []int32, nLen int, cas int, forward bool) {
	if tLen == 0 || nLen == 0 {
		return
	}

	twoVec := hwy.Set(int32(2))
	lanes := hwy.MaxLanes[int32]()

	start := 0
	if cas == 0 {
		// i=0 clamps the left neighbor.
		d := (neighbor[0] + neighbor[0] + 2) >> 2
		if forward {
			target[0] += d
		} else {
			target[0] -= d
		}
		start = 1
	}

	safeEnd := tLen
	if cas == 0 {
		if nLen < safeEnd {
			safeEnd = nLen
		}
	} else {
		if nLen-1 < safeEnd {
			safeEnd = nLen - 1
		}
	}

	// Bulk SIMD loop for the range where both neighbor loads are in bounds.
	i := start
	for ; i+lanes <= safeEnd; i += lanes {
		var n1, n2 hwy.Vec[int32]
		if cas == 0 {
			n1 = hwy.Load(neighbor[i-1:])
			n2 = hwy.Load(neighbor[i:])
		} else {
			n1 = hwy.Load(neighbor[i:])
			n2 = hwy.Load(neighbor[i+1:])
		}
		update := hwy.ShiftRight(hwy.Add(hwy.Add(n1, n2), twoVec), 2)
		t := hwy.Load(target[i:])
		if forward {
			hwy.Store(hwy.Add(t, update), target[i:])
		} else {
			hwy.Store(hwy.Sub(t, update), target[i:])
		}
	}

	// Scalar remainder within the safe range.
	for ; i < safeEnd; i++ {
		n1, n2 := i-1, i
		if cas == 1 {
			n1, n2 = i, i+1
		}
		d := (neighbor[n1] + neighbor[n2] + 2) >> 2
		if forward {
			target[i] += d
		} else {
			target[i] -= d
		}
	}

	// Scalar tail with boundary clamping.
	for ; i < tLen; i++ {
		n1, n2 := i-1, i
		if cas == 1 {
			n1, n2 = i, i+1
		}
		if n1 >= nLen {
			n1 = nLen - 1
		}
		if n2 >= nLen {
			n2 = nLen - 1
		}
		d := (neighbor[n1] + neighbor[n2] + 2) >> 2
		if forward {
			target[i] += d
		} else {
			target[i] -= d
		}
	}
}

// liftPredict53 applies the 5/3 predict step to the high band:
//
//	synthesis: high[i] += (low[n1] + low[n2]) >> 1
//	analysis:  high[i] -= (low[n1] + low[n2]) >> 1
//
// cas=0 pairs (i, i+1), cas=1 pairs (i-1, i).
func liftPredict53(target []int32, tLen int, neighbor []int32, nLen int, cas int, forward bool) {
	if tLen == 0 || nLen == 0 {
		return
	}

	lanes := hwy.MaxLanes[int32]()

	start := 0
	if cas == 1 {
		d := (neighbor[0] + neighbor[0]) >> 1
		if forward {
			target[0] -= d
		} else {
			target[0] += d
		}
		start = 1
	}

	safeEnd := tLen
	if cas == 0 {
		if nLen-1 < safeEnd {
			safeEnd = nLen - 1
		}
	} else {
		if nLen < safeEnd {
			safeEnd = nLen
		}
	}

	i := start
	for ; i+lanes <= safeEnd; i += lanes {
		var n1, n2 hwy.Vec[int32]
		if cas == 0 {
			n1 = hwy.Load(neighbor[i:])
			n2 = hwy.Load(neighbor[i+1:])
		} else {
			n1 = hwy.Load(neighbor[i-1:])
			n2 = hwy.Load(neighbor[i:])
		}
		update := hwy.ShiftRight(hwy.Add(n1, n2), 1)
		t := hwy.Load(target[i:])
		if forward {
			hwy.Store(hwy.Sub(t, update), target[i:])
		} else {
			hwy.Store(hwy.Add(t, update), target[i:])
		}
	}

	for ; i < safeEnd; i++ {
		n1, n2 := i, i+1
		if cas == 1 {
			n1, n2 = i-1, i
		}
		d := (neighbor[n1] + neighbor[n2]) >> 1
		if forward {
			target[i] -= d
		} else {
			target[i] += d
		}
	}

	for ; i < tLen; i++ {
		n1, n2 := i, i+1
		if cas == 1 {
			n1, n2 = i-1, i
		}
		if n1 >= nLen {
			n1 = nLen - 1
		}
		if n2 >= nLen {
			n2 = nLen - 1
		}
		d := (neighbor[n1] + neighbor[n2]) >> 1
		if forward {
			target[i] -= d
		} else {
			target[i] += d
		}
	}
}

// interleaveLine merges [low|high] scratch into interleaved output.
// cas=0: dst[2i]=low[i], dst[2i+1]=high[i]; cas=1 swaps the roles.
func interleaveLine[T hwy.Lanes](dst []T, low []T, sn int, high []T, dn int, cas int) {
	if cas == 0 {
		lanes := hwy.MaxLanes[T]()
		minN := min(sn, dn)
		i := 0
		for ; i+lanes <= minN; i += lanes {
			lo := hwy.Load(low[i:])
			hi := hwy.Load(high[i:])
			hwy.Store(hwy.InterleaveLower(lo, hi), dst[2*i:])
			hwy.Store(hwy.InterleaveUpper(lo, hi), dst[2*i+lanes:])
		}
		for ; i < minN; i++ {
			dst[2*i] = low[i]
			dst[2*i+1] = high[i]
		}
		for k := dn; k < sn; k++ {
			dst[2*k] = low[k]
		}
		for k := sn; k < dn; k++ {
			dst[2*k+1] = high[k]
		}
		return
	}
	minN := min(sn, dn)
	for i := 0; i < minN; i++ {
		dst[2*i] = high[i]
		dst[2*i+1] = low[i]
	}
	for k := dn; k < sn; k++ {
		dst[2*k+1] = low[k]
	}
	for k := sn; k < dn; k++ {
		dst[2*k] = high[k]
	}
}

// deinterleaveLine splits interleaved src into subband scratch, the exact
// inverse of interleaveLine.
func deinterleaveLine[T hwy.Lanes](src []T, low []T, sn int, high []T, dn int, cas int) {
	if cas == 0 {
		for i := 0; i < sn; i++ {
			low[i] = src[2*i]
		}
		for i := 0; i < dn; i++ {
			high[i] = src[2*i+1]
		}
		return
	}
	for i := 0; i < dn; i++ {
		high[i] = src[2*i]
	}
	for i := 0; i < sn; i++ {
		low[i] = src[2*i+1]
	}
}
