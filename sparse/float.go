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

package sparse

import "math"

// ReadFloat is Read with a float32 destination. Each stored int32 is
// reinterpreted as the float32 with the same bit pattern; absent blocks read
// as 0.0 (all-zero bits).
func (a *Array) ReadFloat(x0, y0, x1, y1 int, buf []float32, off, colStride, lineStride int, forgiving bool) bool {
	if !a.regionValid(x0, y0, x1, y1) {
		return forgiving
	}

	blockY := y0 / a.blockH
	for y := y0; y < y1; blockY++ {
		yCount := a.blockH - y%a.blockH
		if yCount > y1-y {
			yCount = y1 - y
		}

		blockX := x0 / a.blockW
		for x := x0; x < x1; blockX++ {
			xCount := a.blockW - x%a.blockW
			if xCount > x1-x {
				xCount = x1 - x
			}

			block := a.blocks[blockY*a.gridW+blockX]
			base := off + (y-y0)*lineStride + (x-x0)*colStride
			if block == nil {
				for j := 0; j < yCount; j++ {
					for i := 0; i < xCount; i++ {
						buf[base+j*lineStride+i*colStride] = 0
					}
				}
			} else {
				src := (y%a.blockH)*a.blockW + x%a.blockW
				for j := 0; j < yCount; j++ {
					row := block[src+j*a.blockW:]
					for i := 0; i < xCount; i++ {
						buf[base+j*lineStride+i*colStride] = math.Float32frombits(uint32(row[i]))
					}
				}
			}

			x += xCount
		}
		y += yCount
	}
	return true
}

// WriteFloat is Write with a float32 source; the bit pattern of each value is
// stored unchanged.
func (a *Array) WriteFloat(x0, y0, x1, y1 int, buf []float32, off, colStride, lineStride int, forgiving bool) bool {
	if !a.regionValid(x0, y0, x1, y1) {
		return forgiving
	}

	blockY := y0 / a.blockH
	for y := y0; y < y1; blockY++ {
		yCount := a.blockH - y%a.blockH
		if yCount > y1-y {
			yCount = y1 - y
		}

		blockX := x0 / a.blockW
		for x := x0; x < x1; blockX++ {
			xCount := a.blockW - x%a.blockW
			if xCount > x1-x {
				xCount = x1 - x
			}

			block := a.blocks[blockY*a.gridW+blockX]
			if block == nil {
				block = make([]int32, a.blockW*a.blockH)
				a.blocks[blockY*a.gridW+blockX] = block
			}
			base := off + (y-y0)*lineStride + (x-x0)*colStride
			dst := (y%a.blockH)*a.blockW + x%a.blockW
			for j := 0; j < yCount; j++ {
				row := block[dst+j*a.blockW:]
				for i := 0; i < xCount; i++ {
					row[i] = int32(math.Float32bits(buf[base+j*lineStride+i*colStride]))
				}
			}

			x += xCount
		}
		y += yCount
	}
	return true
}
