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

import "math"

// The per-level passes are expressed as small job structs whose run method
// handles a contiguous range of rows or stripes. Each run owns its scratch,
// so the same job value can be fanned out over a workerpool.Pool without
// sharing state beyond the disjoint tile regions.

type horizJob53 struct {
	data        []int32
	stride      int
	sn, dn, cas int
	rw          int
	forward     bool
}

func (j *horizJob53) run(y0, y1 int) {
	if j.forward {
		low := make([]int32, j.sn)
		high := make([]int32, j.dn)
		for y := y0; y < y1; y++ {
			fdwt53Line(j.data[y*j.stride:y*j.stride+j.rw], j.sn, j.dn, j.cas, low, high)
		}
		return
	}
	tmp := make([]int32, j.rw)
	for y := y0; y < y1; y++ {
		idwt53Line(j.data[y*j.stride:y*j.stride+j.rw], j.sn, j.dn, j.cas, tmp)
	}
}

type vertJob53 struct {
	data        []int32
	stride      int
	sn, dn, cas int
	rw, rh      int
	forward     bool
}

func (j *vertJob53) run(s0, s1 int) {
	buf := make([]int32, j.rh*stripeWidth)
	for s := s0; s < s1; s++ {
		x := s * stripeWidth
		nc := min(stripeWidth, j.rw-x)
		if j.forward {
			gatherRows53(buf, j.data, j.stride, x, nc, j.rh)
			fdwt53Interleaved(buf, stripeWidth, j.sn, j.dn, j.cas)
			scatterPacked53(buf, j.data, j.stride, x, nc, j.sn, j.dn, j.cas)
		} else {
			gatherPacked53(buf, j.data, j.stride, x, nc, j.sn, j.dn, j.cas)
			idwt53Interleaved(buf, stripeWidth, j.sn, j.dn, j.cas, 0, j.sn, 0, j.dn)
			scatterRows53(buf, j.data, j.stride, x, nc, j.rh)
		}
	}
}

type horizJob97 struct {
	data        []int32
	stride      int
	sn, dn, cas int
	rw          int
	forward     bool
}

func (j *horizJob97) run(y0, y1 int) {
	line := make([]float32, j.rw)
	low := make([]float32, j.sn)
	high := make([]float32, j.dn)
	for y := y0; y < y1; y++ {
		row := j.data[y*j.stride : y*j.stride+j.rw]
		for i, v := range row {
			line[i] = math.Float32frombits(uint32(v))
		}
		if j.forward {
			fdwt97Line(line, j.sn, j.dn, j.cas, low, high)
		} else {
			idwt97Line(line, j.sn, j.dn, j.cas, low, high)
		}
		for i, f := range line {
			row[i] = int32(math.Float32bits(f))
		}
	}
}

type vertJob97 struct {
	data        []int32
	stride      int
	sn, dn, cas int
	rw, rh      int
	forward     bool
}

func (j *vertJob97) run(s0, s1 int) {
	buf := make([]float32, j.rh*stripeWidth)
	for s := s0; s < s1; s++ {
		x := s * stripeWidth
		nc := min(stripeWidth, j.rw-x)
		if j.forward {
			gatherRows97(buf, j.data, j.stride, x, nc, j.rh)
			fdwt97Interleaved(buf, stripeWidth, j.sn, j.dn, j.cas)
			scatterPacked97(buf, j.data, j.stride, x, nc, j.sn, j.dn, j.cas)
		} else {
			gatherPacked97(buf, j.data, j.stride, x, nc, j.sn, j.dn, j.cas)
			idwt97Interleaved(buf, stripeWidth, j.sn, j.dn, j.cas, 0, j.sn, 0, j.dn)
			scatterRows97(buf, j.data, j.stride, x, nc, j.rh)
		}
	}
}

// gatherPacked53 loads the packed [sn low | dn high] column layout of rows
// into interleaved stripe slots for columns [x, x+nc).
func gatherPacked53(buf, data []int32, stride, x, nc, sn, dn, cas int) {
	for i := 0; i < sn; i++ {
		row := data[i*stride+x:]
		slot := buf[(2*i+cas)*stripeWidth:]
		for c := 0; c < nc; c++ {
			slot[c] = row[c]
		}
	}
	for i := 0; i < dn; i++ {
		row := data[(sn+i)*stride+x:]
		slot := buf[(2*i+1-cas)*stripeWidth:]
		for c := 0; c < nc; c++ {
			slot[c] = row[c]
		}
	}
}

// scatterRows53 stores slot k back to row k.
func scatterRows53(buf, data []int32, stride, x, nc, n int) {
	for k := 0; k < n; k++ {
		slot := buf[k*stripeWidth:]
		row := data[k*stride+x:]
		for c := 0; c < nc; c++ {
			row[c] = slot[c]
		}
	}
}

// gatherRows53 loads row k into slot k.
func gatherRows53(buf, data []int32, stride, x, nc, n int) {
	for k := 0; k < n; k++ {
		row := data[k*stride+x:]
		slot := buf[k*stripeWidth:]
		for c := 0; c < nc; c++ {
			slot[c] = row[c]
		}
	}
}

// scatterPacked53 stores interleaved slots back to the packed column layout.
func scatterPacked53(buf, data []int32, stride, x, nc, sn, dn, cas int) {
	for i := 0; i < sn; i++ {
		slot := buf[(2*i+cas)*stripeWidth:]
		row := data[i*stride+x:]
		for c := 0; c < nc; c++ {
			row[c] = slot[c]
		}
	}
	for i := 0; i < dn; i++ {
		slot := buf[(2*i+1-cas)*stripeWidth:]
		row := data[(sn+i)*stride+x:]
		for c := 0; c < nc; c++ {
			row[c] = slot[c]
		}
	}
}

func gatherPacked97(buf []float32, data []int32, stride, x, nc, sn, dn, cas int) {
	for i := 0; i < sn; i++ {
		row := data[i*stride+x:]
		slot := buf[(2*i+cas)*stripeWidth:]
		for c := 0; c < nc; c++ {
			slot[c] = math.Float32frombits(uint32(row[c]))
		}
	}
	for i := 0; i < dn; i++ {
		row := data[(sn+i)*stride+x:]
		slot := buf[(2*i+1-cas)*stripeWidth:]
		for c := 0; c < nc; c++ {
			slot[c] = math.Float32frombits(uint32(row[c]))
		}
	}
}

func scatterRows97(buf []float32, data []int32, stride, x, nc, n int) {
	for k := 0; k < n; k++ {
		slot := buf[k*stripeWidth:]
		row := data[k*stride+x:]
		for c := 0; c < nc; c++ {
			row[c] = int32(math.Float32bits(slot[c]))
		}
	}
}

func gatherRows97(buf []float32, data []int32, stride, x, nc, n int) {
	for k := 0; k < n; k++ {
		row := data[k*stride+x:]
		slot := buf[k*stripeWidth:]
		for c := 0; c < nc; c++ {
			slot[c] = math.Float32frombits(uint32(row[c]))
		}
	}
}

func scatterPacked97(buf []float32, data []int32, stride, x, nc, sn, dn, cas int) {
	for i := 0; i < sn; i++ {
		slot := buf[(2*i+cas)*stripeWidth:]
		row := data[i*stride+x:]
		for c := 0; c < nc; c++ {
			row[c] = int32(math.Float32bits(slot[c]))
		}
	}
	for i := 0; i < dn; i++ {
		slot := buf[(2*i+1-cas)*stripeWidth:]
		row := data[(sn+i)*stride+x:]
		for c := 0; c < nc; c++ {
			row[c] = int32(math.Float32bits(slot[c]))
		}
	}
}
