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

// Interleaved lifting kernels. The buffer holds sn+dn slots of w samples
// each; slot 2i+cas carries low sample i across w columns, slot 2j+1-cas
// carries high sample j. Vertical passes use w = stripeWidth, the windowed
// horizontal passes of partial decoding use w = 1. Every kernel takes a
// [start, end) window over its target subband so partial synthesis can lift
// only the grown region of interest; full passes pass the whole band.

// stripeUpdate53 applies the 5/3 update step to low samples [start, end).
// cas=0 pairs high neighbors (i-1, i), cas=1 pairs (i, i+1); out-of-range
// neighbors clamp to the band edges.
func stripeUpdate53(buf []int32, w, sn, dn, cas, start, end int, forward bool) {
	if sn == 0 || dn == 0 {
		return
	}
	if end > sn {
		end = sn
	}
	for i := start; i < end; i++ {
		n1, n2 := i-1, i
		if cas == 1 {
			n1, n2 = i, i+1
		}
		if n1 < 0 {
			n1 = 0
		}
		if n2 > dn-1 {
			n2 = dn - 1
		}
		t := buf[(2*i+cas)*w : (2*i+cas)*w+w]
		a := buf[(2*n1+1-cas)*w : (2*n1+1-cas)*w+w]
		b := buf[(2*n2+1-cas)*w : (2*n2+1-cas)*w+w]
		if forward {
			for c := 0; c < w; c++ {
				t[c] += (a[c] + b[c] + 2) >> 2
			}
		} else {
			for c := 0; c < w; c++ {
				t[c] -= (a[c] + b[c] + 2) >> 2
			}
		}
	}
}

// stripePredict53 applies the 5/3 predict step to high samples [start, end).
// cas=0 pairs low neighbors (i, i+1), cas=1 pairs (i-1, i).
func stripePredict53(buf []int32, w, sn, dn, cas, start, end int, forward bool) {
	if sn == 0 || dn == 0 {
		return
	}
	if end > dn {
		end = dn
	}
	for i := start; i < end; i++ {
		n1, n2 := i, i+1
		if cas == 1 {
			n1, n2 = i-1, i
		}
		if n1 < 0 {
			n1 = 0
		}
		if n2 > sn-1 {
			n2 = sn - 1
		}
		t := buf[(2*i+1-cas)*w : (2*i+1-cas)*w+w]
		a := buf[(2*n1+cas)*w : (2*n1+cas)*w+w]
		b := buf[(2*n2+cas)*w : (2*n2+cas)*w+w]
		if forward {
			for c := 0; c < w; c++ {
				t[c] -= (a[c] + b[c]) >> 1
			}
		} else {
			for c := 0; c < w; c++ {
				t[c] += (a[c] + b[c]) >> 1
			}
		}
	}
}

// idwt53Interleaved synthesizes an interleaved buffer in place, lifting low
// samples [winL0, winL1) and high samples [winH0, winH1).
func idwt53Interleaved(buf []int32, w, sn, dn, cas, winL0, winL1, winH0, winH1 int) {
	if sn+dn == 1 {
		if cas == 1 {
			for c := 0; c < w; c++ {
				buf[c] /= 2
			}
		}
		return
	}
	stripeUpdate53(buf, w, sn, dn, cas, winL0, winL1, false)
	stripePredict53(buf, w, sn, dn, cas, winH0, winH1, false)
}

// fdwt53Interleaved decomposes an interleaved buffer in place.
func fdwt53Interleaved(buf []int32, w, sn, dn, cas int) {
	if sn+dn == 1 {
		if cas == 1 {
			for c := 0; c < w; c++ {
				buf[c] *= 2
			}
		}
		return
	}
	stripePredict53(buf, w, sn, dn, cas, 0, dn, true)
	stripeUpdate53(buf, w, sn, dn, cas, 0, sn, true)
}

// stripeScale97 multiplies slots 2i+base for i in [start, end) by s.
func stripeScale97(buf []float32, w, base, start, end int, s float32) {
	for i := start; i < end; i++ {
		t := buf[(2*i+base)*w : (2*i+base)*w+w]
		for c := 0; c < w; c++ {
			t[c] *= s
		}
	}
}

// stripeLowLift97 lifts low samples [start, end):
//
//	low[i] -= c * (high[n1] + high[n2])
//
// cas=0 pairs (i-1, i), cas=1 pairs (i, i+1).
func stripeLowLift97(buf []float32, w, sn, dn, cas, start, end int, c float32) {
	if sn == 0 || dn == 0 {
		return
	}
	if end > sn {
		end = sn
	}
	for i := start; i < end; i++ {
		n1, n2 := i-1, i
		if cas == 1 {
			n1, n2 = i, i+1
		}
		if n1 < 0 {
			n1 = 0
		}
		if n2 > dn-1 {
			n2 = dn - 1
		}
		t := buf[(2*i+cas)*w : (2*i+cas)*w+w]
		a := buf[(2*n1+1-cas)*w : (2*n1+1-cas)*w+w]
		b := buf[(2*n2+1-cas)*w : (2*n2+1-cas)*w+w]
		for k := 0; k < w; k++ {
			t[k] -= c * (a[k] + b[k])
		}
	}
}

// stripeHighLift97 lifts high samples [start, end):
//
//	high[i] -= c * (low[n1] + low[n2])
//
// cas=0 pairs (i, i+1), cas=1 pairs (i-1, i).
func stripeHighLift97(buf []float32, w, sn, dn, cas, start, end int, c float32) {
	if sn == 0 || dn == 0 {
		return
	}
	if end > dn {
		end = dn
	}
	for i := start; i < end; i++ {
		n1, n2 := i, i+1
		if cas == 1 {
			n1, n2 = i-1, i
		}
		if n1 < 0 {
			n1 = 0
		}
		if n2 > sn-1 {
			n2 = sn - 1
		}
		t := buf[(2*i+1-cas)*w : (2*i+1-cas)*w+w]
		a := buf[(2*n1+cas)*w : (2*n1+cas)*w+w]
		b := buf[(2*n2+cas)*w : (2*n2+cas)*w+w]
		for k := 0; k < w; k++ {
			t[k] -= c * (a[k] + b[k])
		}
	}
}

// idwt97Interleaved synthesizes an interleaved float buffer in place. Single
// samples pass through unscaled.
func idwt97Interleaved(buf []float32, w, sn, dn, cas, winL0, winL1, winH0, winH1 int) {
	if sn+dn <= 1 {
		return
	}
	stripeScale97(buf, w, cas, winL0, winL1, k97)
	stripeScale97(buf, w, 1-cas, winH0, winH1, twoInvK97)
	stripeLowLift97(buf, w, sn, dn, cas, winL0, winL1, delta97)
	stripeHighLift97(buf, w, sn, dn, cas, winH0, winH1, gamma97)
	stripeLowLift97(buf, w, sn, dn, cas, winL0, winL1, beta97)
	stripeHighLift97(buf, w, sn, dn, cas, winH0, winH1, alpha97)
}

// fdwt97Interleaved decomposes an interleaved float buffer in place.
func fdwt97Interleaved(buf []float32, w, sn, dn, cas int) {
	if sn+dn <= 1 {
		return
	}
	stripeHighLift97(buf, w, sn, dn, cas, 0, dn, -alpha97)
	stripeLowLift97(buf, w, sn, dn, cas, 0, sn, -beta97)
	stripeHighLift97(buf, w, sn, dn, cas, 0, dn, -gamma97)
	stripeLowLift97(buf, w, sn, dn, cas, 0, sn, -delta97)
	stripeScale97(buf, w, cas, 0, sn, invK97)
	stripeScale97(buf, w, 1-cas, 0, dn, halfK97)
}
