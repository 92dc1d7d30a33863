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

import (
	"github.com/belloabdoul/go-openjpeg/tcd"
)

// Init builds a sparse array covering the rectangle of the highest of numRes
// resolutions of tilec and seeds it with the subband coefficients held in
// tilec.Data.
//
// Within the array the LL band of resolution 0 sits at the origin and every
// detail band of resolution r is placed past the extent of resolution r-1:
// HL is shifted right by the previous resolution width, LH down by the
// previous resolution height, HH by both. That is exactly where the bands
// live in the packed low|high layout of tilec.Data, so each band is a single
// strided region copy.
func Init(tilec *tcd.TileComponent, numRes int) (*Array, error) {
	trMax := &tilec.Resolutions[numRes-1]
	w, h := trMax.Width(), trMax.Height()
	sa, err := NewForDims(w, h)
	if err != nil {
		return nil, err
	}

	stride := tilec.Width()
	for resno := 0; resno < numRes; resno++ {
		res := &tilec.Resolutions[resno]
		for bandno := 0; bandno < res.NumBands; bandno++ {
			band := &res.Bands[bandno]
			bw, bh := band.Width(), band.Height()
			if bw == 0 || bh == 0 {
				continue
			}
			var offX, offY int
			if band.Orient&1 != 0 {
				offX = tilec.Resolutions[resno-1].Width()
			}
			if band.Orient&2 != 0 {
				offY = tilec.Resolutions[resno-1].Height()
			}
			sa.Write(offX, offY, offX+bw, offY+bh,
				tilec.Data, offY*stride+offX, 1, stride, true)
		}
	}
	return sa, nil
}
