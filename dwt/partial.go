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
	"github.com/belloabdoul/go-openjpeg/sparse"
	"github.com/belloabdoul/go-openjpeg/tcd"
)

// filterWidth53 and filterWidth97 are how far a synthesized sample reaches
// into each subband, the growth applied to every band window so partial
// synthesis sees all contributing coefficients.
const (
	filterWidth53 = 2
	filterWidth97 = 4
)

// segmentGrow widens [start, end) by filterWidth on both sides, clamped to
// [0, maxSize).
func segmentGrow(filterWidth, maxSize, start, end int) (int, int) {
	start -= filterWidth
	if start < 0 {
		start = 0
	}
	end += filterWidth
	if end > maxSize {
		end = maxSize
	}
	return start, end
}

// interleavedBounds maps a low-band window and a high-band window to the
// covered range of interleaved positions. cas selects which band owns the
// even positions.
func interleavedBounds(l0, l1, h0, h1, cas, total int) (a0, a1 int) {
	if cas == 0 {
		a0 = min(2*l0, 2*h0+1)
		a1 = min(max(2*l1, 2*h1+1), total)
	} else {
		a0 = min(2*h0, 2*l0+1)
		a1 = min(max(2*h1, 2*l1+1), total)
	}
	return
}

// levelWindows holds the grown band windows and derived interleaved bounds
// for one synthesis level.
type levelWindows struct {
	snH, dnH, casH int
	snV, dnV, casV int
	rw, rh         int

	llX0, llX1 int // low columns
	hlX0, hlX1 int // high columns
	llY0, llY1 int // low rows
	lhY0, lhY1 int // high rows

	trX0, trX1 int // interleaved columns written
	trY0, trY1 int // interleaved rows written
}

func computeLevelWindows(tilec *tcd.TileComponent, resno, filterWidth int) levelWindows {
	tr := &tilec.Resolutions[resno]
	trPrev := &tilec.Resolutions[resno-1]

	var lw levelWindows
	lw.rw, lw.rh = tr.Width(), tr.Height()
	lw.snH, lw.dnH, lw.casH = trPrev.Width(), lw.rw-trPrev.Width(), tr.X0&1
	lw.snV, lw.dnV, lw.casV = trPrev.Height(), lw.rh-trPrev.Height(), tr.Y0&1

	numRes := tilec.NumResolutions
	llX0, llY0, llX1, llY1 := tcd.BandWindow(numRes, resno, tcd.OrientLL,
		tilec.WinX0, tilec.WinY0, tilec.WinX1, tilec.WinY1)
	hlX0, _, hlX1, _ := tcd.BandWindow(numRes, resno, tcd.OrientHL,
		tilec.WinX0, tilec.WinY0, tilec.WinX1, tilec.WinY1)
	_, lhY0, _, lhY1 := tcd.BandWindow(numRes, resno, tcd.OrientLH,
		tilec.WinX0, tilec.WinY0, tilec.WinX1, tilec.WinY1)

	// Band coordinates are absolute; shift to tile-relative before growing.
	lw.llX0 = max(0, llX0-trPrev.X0)
	lw.llX1 = max(0, llX1-trPrev.X0)
	lw.llY0 = max(0, llY0-trPrev.Y0)
	lw.llY1 = max(0, llY1-trPrev.Y0)
	lw.hlX0 = max(0, hlX0-tr.Bands[0].X0)
	lw.hlX1 = max(0, hlX1-tr.Bands[0].X0)
	lw.lhY0 = max(0, lhY0-tr.Bands[1].Y0)
	lw.lhY1 = max(0, lhY1-tr.Bands[1].Y0)

	lw.llX0, lw.llX1 = segmentGrow(filterWidth, lw.snH, lw.llX0, lw.llX1)
	lw.hlX0, lw.hlX1 = segmentGrow(filterWidth, lw.dnH, lw.hlX0, lw.hlX1)
	lw.llY0, lw.llY1 = segmentGrow(filterWidth, lw.snV, lw.llY0, lw.llY1)
	lw.lhY0, lw.lhY1 = segmentGrow(filterWidth, lw.dnV, lw.lhY0, lw.lhY1)

	lw.trX0, lw.trX1 = interleavedBounds(lw.llX0, lw.llX1, lw.hlX0, lw.hlX1, lw.casH, lw.rw)
	lw.trY0, lw.trY1 = interleavedBounds(lw.llY0, lw.llY1, lw.lhY0, lw.lhY1, lw.casV, lw.rh)
	return lw
}

// decodePartial synthesizes only the coefficients contributing to the window
// of interest, routing all sample traffic through a sparse array so that the
// untouched regions are never allocated. The reconstructed window lands in
// tilec.WinData; for the irreversible filter it carries float32 bit patterns
// exactly like Data does.
func (e *Engine) decodePartial(tilec *tcd.TileComponent, numRes int) error {
	sa, err := sparse.Init(tilec, numRes)
	if err != nil {
		return err
	}
	trMax := &tilec.Resolutions[numRes-1]

	// Window of interest in the coordinates of the highest decoded
	// resolution.
	shift := tilec.NumResolutions - numRes
	winX0 := max(trMax.X0, tcd.CeilDivPow2(tilec.WinX0, shift))
	winY0 := max(trMax.Y0, tcd.CeilDivPow2(tilec.WinY0, shift))
	winX1 := min(trMax.X1, tcd.CeilDivPow2(tilec.WinX1, shift))
	winY1 := min(trMax.Y1, tcd.CeilDivPow2(tilec.WinY1, shift))
	winW, winH := winX1-winX0, winY1-winY0
	if winW < 0 || winH < 0 {
		winW, winH = 0, 0
	}
	if len(tilec.WinData) != winW*winH {
		tilec.WinData = make([]int32, winW*winH)
	}

	filterWidth := filterWidth53
	if !tilec.Reversible {
		filterWidth = filterWidth97
	}

	for resno := 1; resno < numRes; resno++ {
		lw := computeLevelWindows(tilec, resno, filterWidth)
		if tilec.Reversible {
			partialLevel53(sa, &lw)
		} else {
			partialLevel97(sa, &lw)
		}
	}

	if winW > 0 && winH > 0 {
		sa.Read(winX0-trMax.X0, winY0-trMax.Y0, winX1-trMax.X0, winY1-trMax.Y0,
			tilec.WinData, 0, 1, winW, true)
	}
	return nil
}

// partialLevel53 runs one level of windowed 5/3 synthesis: the vertical pass
// over the packed low and high column ranges, then the horizontal pass over
// the rows the vertical pass produced.
func partialLevel53(sa *sparse.Array, lw *levelWindows) {
	buf := make([]int32, lw.rh*stripeWidth)

	vert := func(x0, x1 int) {
		for x := x0; x < x1; x += stripeWidth {
			nc := min(stripeWidth, x1-x)
			sa.Read(x, lw.llY0, x+nc, lw.llY1,
				buf, (2*lw.llY0+lw.casV)*stripeWidth, 1, 2*stripeWidth, true)
			sa.Read(x, lw.snV+lw.lhY0, x+nc, lw.snV+lw.lhY1,
				buf, (2*lw.lhY0+1-lw.casV)*stripeWidth, 1, 2*stripeWidth, true)
			idwt53Interleaved(buf, stripeWidth, lw.snV, lw.dnV, lw.casV,
				lw.llY0, lw.llY1, lw.lhY0, lw.lhY1)
			sa.Write(x, lw.trY0, x+nc, lw.trY1,
				buf, lw.trY0*stripeWidth, 1, stripeWidth, true)
		}
	}
	vert(lw.llX0, lw.llX1)
	vert(lw.snH+lw.hlX0, lw.snH+lw.hlX1)

	line := make([]int32, lw.rw)
	for y := lw.trY0; y < lw.trY1; y++ {
		sa.Read(lw.llX0, y, lw.llX1, y+1, line, 2*lw.llX0+lw.casH, 2, 0, true)
		sa.Read(lw.snH+lw.hlX0, y, lw.snH+lw.hlX1, y+1, line, 2*lw.hlX0+1-lw.casH, 2, 0, true)
		idwt53Interleaved(line, 1, lw.snH, lw.dnH, lw.casH,
			lw.llX0, lw.llX1, lw.hlX0, lw.hlX1)
		sa.Write(lw.trX0, y, lw.trX1, y+1, line, lw.trX0, 1, 0, true)
	}
}

// partialLevel97 is the irreversible counterpart, moving float32 values
// through the sparse array's bit-cast view.
func partialLevel97(sa *sparse.Array, lw *levelWindows) {
	buf := make([]float32, lw.rh*stripeWidth)

	vert := func(x0, x1 int) {
		for x := x0; x < x1; x += stripeWidth {
			nc := min(stripeWidth, x1-x)
			sa.ReadFloat(x, lw.llY0, x+nc, lw.llY1,
				buf, (2*lw.llY0+lw.casV)*stripeWidth, 1, 2*stripeWidth, true)
			sa.ReadFloat(x, lw.snV+lw.lhY0, x+nc, lw.snV+lw.lhY1,
				buf, (2*lw.lhY0+1-lw.casV)*stripeWidth, 1, 2*stripeWidth, true)
			idwt97Interleaved(buf, stripeWidth, lw.snV, lw.dnV, lw.casV,
				lw.llY0, lw.llY1, lw.lhY0, lw.lhY1)
			sa.WriteFloat(x, lw.trY0, x+nc, lw.trY1,
				buf, lw.trY0*stripeWidth, 1, stripeWidth, true)
		}
	}
	vert(lw.llX0, lw.llX1)
	vert(lw.snH+lw.hlX0, lw.snH+lw.hlX1)

	line := make([]float32, lw.rw)
	for y := lw.trY0; y < lw.trY1; y++ {
		sa.ReadFloat(lw.llX0, y, lw.llX1, y+1, line, 2*lw.llX0+lw.casH, 2, 0, true)
		sa.ReadFloat(lw.snH+lw.hlX0, y, lw.snH+lw.hlX1, y+1, line, 2*lw.hlX0+1-lw.casH, 2, 0, true)
		idwt97Interleaved(line, 1, lw.snH, lw.dnH, lw.casH,
			lw.llX0, lw.llX1, lw.hlX0, lw.hlX1)
		sa.WriteFloat(lw.trX0, y, lw.trX1, y+1, line, lw.trX0, 1, 0, true)
	}
}
