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

// Subband orientations. The orientation doubles as the (x0b, y0b) band
// offset pair: x0b = orient & 1, y0b = orient >> 1.
const (
	OrientLL = 0
	OrientHL = 1
	OrientLH = 2
	OrientHH = 3
)

// CeilDivPow2 computes ceil(a / 2^b) for b >= 0.
func CeilDivPow2(a, b int) int {
	return (a + (1 << b) - 1) >> b
}

// Band is one subband rectangle at a resolution, in band coordinates.
type Band struct {
	X0, Y0, X1, Y1 int
	Orient         int
}

// Width returns the band width in samples.
func (b *Band) Width() int { return b.X1 - b.X0 }

// Height returns the band height in samples.
func (b *Band) Height() int { return b.Y1 - b.Y0 }

// Resolution is one tier of the pyramid, in tile coordinates.
// Resolution 0 carries a single LL band; every higher resolution carries
// HL, LH and HH.
type Resolution struct {
	X0, Y0, X1, Y1 int
	Bands          [3]Band
	NumBands       int
}

// Width returns the resolution width in samples.
func (r *Resolution) Width() int { return r.X1 - r.X0 }

// Height returns the resolution height in samples.
func (r *Resolution) Height() int { return r.Y1 - r.Y0 }

// BandCoordinate maps a tile coordinate endpoint c into band coordinates for
// a band whose decomposition count is nb and whose offset bit (x0b or y0b)
// is off. nb == 0 passes the coordinate through unchanged.
func BandCoordinate(c, nb, off int) int {
	if nb == 0 {
		return c
	}
	threshold := (1 << (nb - 1)) * off
	if c <= threshold {
		return 0
	}
	return CeilDivPow2(c-threshold, nb)
}

// BandWindow converts the rectangle (tcx0,tcy0)-(tcx1,tcy1), expressed in
// tile coordinates, into the coordinates of band orient at resolution resno
// of a pyramid with numRes resolutions. For resno == 0 only OrientLL is
// meaningful. For resno >= 1, HL, LH and HH give the detail bands of resno,
// and OrientLL gives the window in the coordinates of resolution resno-1,
// the low-pass input of resno.
func BandWindow(numRes, resno, orient, tcx0, tcy0, tcx1, tcy1 int) (bx0, by0, bx1, by1 int) {
	nb := numRes - resno
	if resno == 0 {
		nb = numRes - 1
	}
	x0b := orient & 1
	y0b := orient >> 1
	bx0 = BandCoordinate(tcx0, nb, x0b)
	by0 = BandCoordinate(tcy0, nb, y0b)
	bx1 = BandCoordinate(tcx1, nb, x0b)
	by1 = BandCoordinate(tcy1, nb, y0b)
	return
}

// BuildResolutions computes the full resolution pyramid for a tile rectangle.
// Resolution r has rectangle ceildivpow2(tile, numRes-1-r); its bands are
// placed with the standard (x0b, y0b) offsets one decomposition deeper.
func BuildResolutions(x0, y0, x1, y1, numRes int) []Resolution {
	res := make([]Resolution, numRes)
	for r := 0; r < numRes; r++ {
		levelno := numRes - 1 - r
		res[r].X0 = CeilDivPow2(x0, levelno)
		res[r].Y0 = CeilDivPow2(y0, levelno)
		res[r].X1 = CeilDivPow2(x1, levelno)
		res[r].Y1 = CeilDivPow2(y1, levelno)

		if r == 0 {
			res[r].NumBands = 1
			res[r].Bands[0] = Band{
				X0:     CeilDivPow2(x0, levelno),
				Y0:     CeilDivPow2(y0, levelno),
				X1:     CeilDivPow2(x1, levelno),
				Y1:     CeilDivPow2(y1, levelno),
				Orient: OrientLL,
			}
			continue
		}

		res[r].NumBands = 3
		for bandno := 0; bandno < 3; bandno++ {
			orient := bandno + 1
			x0b := orient & 1
			y0b := orient >> 1
			res[r].Bands[bandno] = Band{
				X0:     CeilDivPow2(x0-(x0b<<levelno), levelno+1),
				Y0:     CeilDivPow2(y0-(y0b<<levelno), levelno+1),
				X1:     CeilDivPow2(x1-(x0b<<levelno), levelno+1),
				Y1:     CeilDivPow2(y1-(y0b<<levelno), levelno+1),
				Orient: orient,
			}
		}
	}
	return res
}

// MaxResolution returns the largest width and height over the first numRes
// entries of the pyramid. The dwt drivers do not use it: their scratch
// buffers are allocated per job from the current level's size.
func MaxResolution(res []Resolution, numRes int) (w, h int) {
	for i := 0; i < numRes && i < len(res); i++ {
		if rw := res[i].Width(); rw > w {
			w = rw
		}
		if rh := res[i].Height(); rh > h {
			h = rh
		}
	}
	return
}
