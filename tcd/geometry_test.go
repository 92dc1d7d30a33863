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

package tcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeilDivPow2(t *testing.T) {
	for _, tc := range []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{8, 1, 4},
		{9, 1, 5},
		{8, 2, 2},
		{9, 2, 3},
		{1, 5, 1},
	} {
		assert.Equal(t, tc.want, CeilDivPow2(tc.a, tc.b), "CeilDivPow2(%d,%d)", tc.a, tc.b)
	}
}

func TestBuildResolutionsPowerOfTwo(t *testing.T) {
	res := BuildResolutions(0, 0, 8, 8, 3)
	require.Len(t, res, 3)

	assert.Equal(t, Resolution{X0: 0, Y0: 0, X1: 2, Y1: 2, NumBands: 1,
		Bands: [3]Band{{X0: 0, Y0: 0, X1: 2, Y1: 2, Orient: OrientLL}}}, res[0])

	assert.Equal(t, 4, res[1].Width())
	assert.Equal(t, 4, res[1].Height())
	assert.Equal(t, 3, res[1].NumBands)
	for bandno, orient := range []int{OrientHL, OrientLH, OrientHH} {
		b := res[1].Bands[bandno]
		assert.Equal(t, orient, b.Orient)
		assert.Equal(t, 2, b.Width(), "res1 band %d width", bandno)
		assert.Equal(t, 2, b.Height(), "res1 band %d height", bandno)
	}

	assert.Equal(t, Resolution{X0: 0, Y0: 0, X1: 8, Y1: 8}, Resolution{
		X0: res[2].X0, Y0: res[2].Y0, X1: res[2].X1, Y1: res[2].Y1})
}

// An odd origin shifts the low/high split: resolution 1 of a (1,1)-(9,9)
// tile has a 4-wide LL column range against a 4-wide HL, and the parity bit
// of every resolution rectangle follows its x0/y0.
func TestBuildResolutionsOddOrigin(t *testing.T) {
	res := BuildResolutions(1, 1, 9, 9, 2)
	require.Len(t, res, 2)

	assert.Equal(t, 1, res[0].X0)
	assert.Equal(t, 5, res[0].X1)
	assert.Equal(t, 1, res[1].X0&1)

	hl := res[1].Bands[0]
	require.Equal(t, OrientHL, hl.Orient)
	// ceildiv(1-1, 2) .. ceildiv(9-1, 2)
	assert.Equal(t, 0, hl.X0)
	assert.Equal(t, 4, hl.X1)
	assert.Equal(t, 1, hl.Y0)
	assert.Equal(t, 5, hl.Y1)
}

func TestBuildResolutionsNonSquare(t *testing.T) {
	res := BuildResolutions(0, 0, 37, 13, 4)
	require.Len(t, res, 4)
	assert.Equal(t, 5, res[0].Width())
	assert.Equal(t, 2, res[0].Height())
	assert.Equal(t, 10, res[1].Width())
	assert.Equal(t, 4, res[1].Height())
	assert.Equal(t, 19, res[2].Width())
	assert.Equal(t, 7, res[2].Height())
	assert.Equal(t, 37, res[3].Width())
	assert.Equal(t, 13, res[3].Height())

	// Low halves and bands tile each resolution exactly.
	for r := 1; r < 4; r++ {
		prev, cur := &res[r-1], &res[r]
		hl, lh, hh := &cur.Bands[0], &cur.Bands[1], &cur.Bands[2]
		assert.Equal(t, cur.Width(), prev.Width()+hl.Width(), "res %d widths", r)
		assert.Equal(t, cur.Height(), prev.Height()+lh.Height(), "res %d heights", r)
		assert.Equal(t, hl.Width(), hh.Width(), "res %d HH width", r)
		assert.Equal(t, lh.Height(), hh.Height(), "res %d HH height", r)
	}
}

func TestBandCoordinate(t *testing.T) {
	// nb == 0 passes through.
	assert.Equal(t, 17, BandCoordinate(17, 0, 1))
	// Below the threshold collapses to zero.
	assert.Equal(t, 0, BandCoordinate(2, 2, 1))
	// Above it, the shifted ceiling divide.
	assert.Equal(t, 2, BandCoordinate(8, 2, 1))
	assert.Equal(t, 2, BandCoordinate(8, 2, 0))
}

func TestBandWindow(t *testing.T) {
	// Window (0,0)-(8,8) of an 8x8 tile with 3 resolutions.
	bx0, by0, bx1, by1 := BandWindow(3, 1, OrientLL, 0, 0, 8, 8)
	assert.Equal(t, [4]int{0, 0, 2, 2}, [4]int{bx0, by0, bx1, by1})

	bx0, by0, bx1, by1 = BandWindow(3, 1, OrientHL, 0, 0, 8, 8)
	assert.Equal(t, [4]int{0, 0, 2, 2}, [4]int{bx0, by0, bx1, by1})

	bx0, by0, bx1, by1 = BandWindow(3, 2, OrientLH, 0, 0, 8, 8)
	assert.Equal(t, [4]int{0, 0, 4, 4}, [4]int{bx0, by0, bx1, by1})

	// A sub-window maps with the ceiling divide after the band offset.
	bx0, _, bx1, _ = BandWindow(3, 2, OrientHL, 3, 0, 7, 8)
	assert.Equal(t, 1, bx0)
	assert.Equal(t, 3, bx1)
}

func TestMaxResolution(t *testing.T) {
	res := BuildResolutions(0, 0, 37, 13, 4)
	w, h := MaxResolution(res, 4)
	assert.Equal(t, 37, w)
	assert.Equal(t, 13, h)
	w, h = MaxResolution(res, 2)
	assert.Equal(t, 10, w)
	assert.Equal(t, 4, h)
}

func TestNewTileComponent(t *testing.T) {
	tc := NewTileComponent(3, 5, 40, 33, 4, true)
	assert.Equal(t, 37, tc.Width())
	assert.Equal(t, 28, tc.Height())
	assert.Len(t, tc.Data, 37*28)
	require.Len(t, tc.Resolutions, 4)
	assert.Equal(t, 4, tc.ResolutionCount())

	tc.DecodedResolutions = 2
	assert.Equal(t, 2, tc.ResolutionCount())
}

func TestSetWindowClamps(t *testing.T) {
	tc := NewTileComponent(0, 0, 16, 16, 2, true)
	tc.SetWindow(-4, 2, 20, 10)
	assert.True(t, tc.HasWindow)
	assert.Equal(t, [4]int{0, 2, 16, 10}, [4]int{tc.WinX0, tc.WinY0, tc.WinX1, tc.WinY1})
	assert.Equal(t, 16, tc.WinWidth())
	assert.Equal(t, 8, tc.WinHeight())
	assert.Len(t, tc.WinData, 16*8)
}
