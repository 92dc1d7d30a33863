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

// Package sparse provides block-indexed sparse 2-D int32 storage.
//
// The grid is tiled into fixed-size blocks. A block is materialized lazily on
// the first write that touches it; reads over absent blocks yield zeros. The
// partial wavelet decoder uses an Array as scratch and coefficient storage so
// that only the blocks a window of interest touches are ever allocated.
//
// A float32 view (ReadFloat, WriteFloat) reinterprets the stored bits 1:1;
// storage stays int32 and the cast happens only at this boundary.
package sparse

import (
	"errors"
	"math"
)

// DefaultBlockSize is the block edge used when the caller has no opinion.
const DefaultBlockSize = 64

var (
	// ErrZeroDim reports a zero array or block dimension.
	ErrZeroDim = errors.New("sparse: zero dimension")
	// ErrBlockOverflow reports a block whose byte size overflows.
	ErrBlockOverflow = errors.New("sparse: block size overflow")
)

// Array is a block-sparse 2-D grid of int32 values.
type Array struct {
	width, height   int
	blockW, blockH  int
	gridW, gridH    int
	blocks          [][]int32
}

// New creates a sparse array of width x height values tiled into
// blockW x blockH blocks. All dimensions must be nonzero and a single block
// must fit in memory.
func New(width, height, blockW, blockH int) (*Array, error) {
	if width == 0 || height == 0 || blockW == 0 || blockH == 0 {
		return nil, ErrZeroDim
	}
	if blockW > (math.MaxInt-3)/blockH/4 {
		return nil, ErrBlockOverflow
	}
	gridW := (width + blockW - 1) / blockW
	gridH := (height + blockH - 1) / blockH
	return &Array{
		width:  width,
		height: height,
		blockW: blockW,
		blockH: blockH,
		gridW:  gridW,
		gridH:  gridH,
		blocks: make([][]int32, gridW*gridH),
	}, nil
}

// NewForDims creates an array with the default block size clamped to the
// array dimensions, the sizing used for tile-resolution scratch storage.
func NewForDims(width, height int) (*Array, error) {
	bw := min(DefaultBlockSize, width)
	bh := min(DefaultBlockSize, height)
	if width == 0 || height == 0 {
		return nil, ErrZeroDim
	}
	return New(width, height, bw, bh)
}

// Width returns the array width in values.
func (a *Array) Width() int { return a.width }

// Height returns the array height in values.
func (a *Array) Height() int { return a.height }

// regionValid reports whether (x0,y0)-(x1,y1) is a nonempty rectangle fully
// inside the array.
func (a *Array) regionValid(x0, y0, x1, y1 int) bool {
	return x0 >= 0 && x0 < a.width && x0 < x1 && x1 <= a.width &&
		y0 >= 0 && y0 < a.height && y0 < y1 && y1 <= a.height
}

// Read copies the rectangle (x0,y0)-(x1,y1) into buf. The value at (x, y)
// lands at buf[off + (y-y0)*lineStride + (x-x0)*colStride]. Cells of absent
// blocks read as zero. An invalid rectangle performs nothing and returns
// forgiving.
func (a *Array) Read(x0, y0, x1, y1 int, buf []int32, off, colStride, lineStride int, forgiving bool) bool {
	return a.rw(x0, y0, x1, y1, buf, off, colStride, lineStride, forgiving, true)
}

// Write copies buf into the rectangle (x0,y0)-(x1,y1), materializing blocks
// on first touch. The addressing mirrors Read. An invalid rectangle performs
// nothing and returns forgiving.
func (a *Array) Write(x0, y0, x1, y1 int, buf []int32, off, colStride, lineStride int, forgiving bool) bool {
	return a.rw(x0, y0, x1, y1, buf, off, colStride, lineStride, forgiving, false)
}

func (a *Array) rw(x0, y0, x1, y1 int, buf []int32, off, colStride, lineStride int, forgiving, isRead bool) bool {
	if !a.regionValid(x0, y0, x1, y1) {
		return forgiving
	}

	blockY := y0 / a.blockH
	for y := y0; y < y1; blockY++ {
		// Height of the intersection with this block row.
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
			if isRead {
				a.readBlock(block, x, y, xCount, yCount, buf, off+(y-y0)*lineStride+(x-x0)*colStride, colStride, lineStride)
			} else {
				if block == nil {
					block = make([]int32, a.blockW*a.blockH)
					a.blocks[blockY*a.gridW+blockX] = block
				}
				a.writeBlock(block, x, y, xCount, yCount, buf, off+(y-y0)*lineStride+(x-x0)*colStride, colStride, lineStride)
			}

			x += xCount
		}
		y += yCount
	}
	return true
}

// readBlock copies an xCount x yCount sub-rectangle out of one block, or
// zero-fills when the block was never materialized.
func (a *Array) readBlock(block []int32, x, y, xCount, yCount int, buf []int32, off, colStride, lineStride int) {
	if block == nil {
		if colStride == 1 {
			for j := 0; j < yCount; j++ {
				dst := buf[off+j*lineStride : off+j*lineStride+xCount]
				for i := range dst {
					dst[i] = 0
				}
			}
			return
		}
		for j := 0; j < yCount; j++ {
			for i := 0; i < xCount; i++ {
				buf[off+j*lineStride+i*colStride] = 0
			}
		}
		return
	}

	src := (y % a.blockH) * a.blockW
	srcX := x % a.blockW
	if colStride == 1 {
		for j := 0; j < yCount; j++ {
			copy(buf[off+j*lineStride:off+j*lineStride+xCount],
				block[src+j*a.blockW+srcX:src+j*a.blockW+srcX+xCount])
		}
		return
	}
	for j := 0; j < yCount; j++ {
		row := block[src+j*a.blockW+srcX:]
		for i := 0; i < xCount; i++ {
			buf[off+j*lineStride+i*colStride] = row[i]
		}
	}
}

// writeBlock copies an xCount x yCount sub-rectangle into one block.
func (a *Array) writeBlock(block []int32, x, y, xCount, yCount int, buf []int32, off, colStride, lineStride int) {
	dst := (y % a.blockH) * a.blockW
	dstX := x % a.blockW
	if colStride == 1 {
		for j := 0; j < yCount; j++ {
			copy(block[dst+j*a.blockW+dstX:dst+j*a.blockW+dstX+xCount],
				buf[off+j*lineStride:off+j*lineStride+xCount])
		}
		return
	}
	for j := 0; j < yCount; j++ {
		row := block[dst+j*a.blockW+dstX:]
		for i := 0; i < xCount; i++ {
			row[i] = buf[off+j*lineStride+i*colStride]
		}
	}
}
