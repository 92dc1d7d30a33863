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

// TileComponent is one color channel of one tile: a rectangular grid of
// signed integer samples plus its resolution pyramid.
//
// Data holds the samples row-major with stride Width(). For the irreversible
// 9/7 path the same buffer carries float32 bit patterns; the dwt package
// bit-casts at the narrow boundaries where typed views meet.
//
// When a window of interest is set (HasWindow), partial decoding reconstructs
// only the window and writes it to WinData with stride WinWidth().
type TileComponent struct {
	X0, Y0, X1, Y1 int

	// NumResolutions is the total resolution count R of the pyramid.
	// DecodedResolutions <= NumResolutions limits how many are synthesized;
	// zero means all of them.
	NumResolutions     int
	DecodedResolutions int

	// Reversible selects the integer 5/3 filter; otherwise the float 9/7.
	Reversible bool

	Resolutions []Resolution

	Data []int32

	// Window of interest, in tile coordinates. Valid iff HasWindow.
	HasWindow                  bool
	WinX0, WinY0, WinX1, WinY1 int
	WinData                    []int32
}

// NewTileComponent builds a tile-component with its pyramid and an allocated
// sample buffer.
func NewTileComponent(x0, y0, x1, y1, numRes int, reversible bool) *TileComponent {
	tc := &TileComponent{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		NumResolutions: numRes,
		Reversible:     reversible,
		Resolutions:    BuildResolutions(x0, y0, x1, y1, numRes),
	}
	tc.Data = make([]int32, tc.Width()*tc.Height())
	return tc
}

// Width returns the tile-component width in samples.
func (tc *TileComponent) Width() int { return tc.X1 - tc.X0 }

// Height returns the tile-component height in samples.
func (tc *TileComponent) Height() int { return tc.Y1 - tc.Y0 }

// WinWidth returns the window-of-interest width, or 0 without a window.
func (tc *TileComponent) WinWidth() int {
	if !tc.HasWindow {
		return 0
	}
	return tc.WinX1 - tc.WinX0
}

// WinHeight returns the window-of-interest height, or 0 without a window.
func (tc *TileComponent) WinHeight() int {
	if !tc.HasWindow {
		return 0
	}
	return tc.WinY1 - tc.WinY0
}

// SetWindow declares a window of interest and allocates the output buffer
// for it. Coordinates are in tile coordinates and are clamped to the tile.
func (tc *TileComponent) SetWindow(x0, y0, x1, y1 int) {
	if x0 < tc.X0 {
		x0 = tc.X0
	}
	if y0 < tc.Y0 {
		y0 = tc.Y0
	}
	if x1 > tc.X1 {
		x1 = tc.X1
	}
	if y1 > tc.Y1 {
		y1 = tc.Y1
	}
	tc.HasWindow = true
	tc.WinX0, tc.WinY0, tc.WinX1, tc.WinY1 = x0, y0, x1, y1
	tc.WinData = make([]int32, tc.WinWidth()*tc.WinHeight())
}

// ResolutionCount returns the number of resolutions to synthesize:
// DecodedResolutions when set, the full pyramid otherwise.
func (tc *TileComponent) ResolutionCount() int {
	if tc.DecodedResolutions > 0 && tc.DecodedResolutions <= tc.NumResolutions {
		return tc.DecodedResolutions
	}
	return tc.NumResolutions
}
