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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/belloabdoul/go-openjpeg/tcd"
)

// tileCases exercises square, non-square, odd-origin and degenerate tiles.
var tileCases = []struct {
	x0, y0, x1, y1, numRes int
}{
	{0, 0, 16, 16, 3},
	{0, 0, 1, 1, 1},
	{0, 0, 1, 7, 3},
	{0, 0, 7, 1, 3},
	{1, 1, 9, 9, 2},
	{3, 5, 40, 33, 4},
	{0, 0, 37, 13, 4},
	{0, 0, 64, 64, 5},
}

func caseName(x0, y0, x1, y1, numRes int) string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)/R=%d", x0, y0, x1, y1, numRes)
}

func fillRandInt(rng *rand.Rand, data []int32) {
	for i := range data {
		data[i] = rng.Int31n(1<<16) - 1<<15
	}
}

func fillRandFloatBits(rng *rand.Rand, data []int32) {
	for i := range data {
		data[i] = int32(math.Float32bits(rng.Float32()*1024 - 512))
	}
}

func floatView(data []int32) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = math.Float32frombits(uint32(v))
	}
	return out
}

func TestRoundTrip53Tile(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	e := NewEngine()
	for _, tcase := range tileCases {
		t.Run(caseName(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes), func(t *testing.T) {
			tilec := tcd.NewTileComponent(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes, true)
			fillRandInt(rng, tilec.Data)
			orig := append([]int32(nil), tilec.Data...)

			if err := e.Encode(tilec); err != nil {
				t.Fatal(err)
			}
			if err := e.Decode(tilec, tilec.NumResolutions); err != nil {
				t.Fatal(err)
			}

			for i := range orig {
				if tilec.Data[i] != orig[i] {
					t.Fatalf("sample %d: got %d, want %d", i, tilec.Data[i], orig[i])
				}
			}
		})
	}
}

func TestRoundTrip97Tile(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	e := NewEngine()
	for _, tcase := range tileCases {
		t.Run(caseName(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes), func(t *testing.T) {
			tilec := tcd.NewTileComponent(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes, false)
			fillRandFloatBits(rng, tilec.Data)
			orig := floatView(tilec.Data)

			if err := e.Encode(tilec); err != nil {
				t.Fatal(err)
			}
			if err := e.Decode(tilec, tilec.NumResolutions); err != nil {
				t.Fatal(err)
			}

			if d := maxAbsDiff(floatView(tilec.Data), orig); d > 0.1 {
				t.Fatalf("max abs error %g exceeds 0.1", d)
			}
		})
	}
}

// A constant tile must survive the reversible round trip bit for bit.
func TestRoundTrip53Constant(t *testing.T) {
	e := NewEngine()
	tilec := tcd.NewTileComponent(0, 0, 16, 16, 3, true)
	for i := range tilec.Data {
		tilec.Data[i] = 1000
	}
	if err := e.Encode(tilec); err != nil {
		t.Fatal(err)
	}
	if err := e.Decode(tilec, 3); err != nil {
		t.Fatal(err)
	}
	for i, v := range tilec.Data {
		if v != 1000 {
			t.Fatalf("sample %d: got %d, want 1000", i, v)
		}
	}
}

func TestZeroTileStaysZero(t *testing.T) {
	e := NewEngine()
	for _, reversible := range []bool{true, false} {
		tilec := tcd.NewTileComponent(0, 0, 32, 32, 3, reversible)
		if err := e.Encode(tilec); err != nil {
			t.Fatal(err)
		}
		for i, v := range tilec.Data {
			if v != 0 {
				t.Fatalf("reversible=%v encoded sample %d: got %d, want 0", reversible, i, v)
			}
		}
		if err := e.Decode(tilec, 3); err != nil {
			t.Fatal(err)
		}
		for i, v := range tilec.Data {
			if v != 0 {
				t.Fatalf("reversible=%v decoded sample %d: got %d, want 0", reversible, i, v)
			}
		}
	}
}

func TestParallelMatchesSequential53(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(23))
	seq := NewEngine()
	par := NewEngine(WithPool(pool))

	for _, tcase := range tileCases {
		t.Run(caseName(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes), func(t *testing.T) {
			a := tcd.NewTileComponent(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes, true)
			fillRandInt(rng, a.Data)
			b := tcd.NewTileComponent(tcase.x0, tcase.y0, tcase.x1, tcase.y1, tcase.numRes, true)
			copy(b.Data, a.Data)

			if err := seq.Encode(a); err != nil {
				t.Fatal(err)
			}
			if err := par.Encode(b); err != nil {
				t.Fatal(err)
			}
			for i := range a.Data {
				if a.Data[i] != b.Data[i] {
					t.Fatalf("encoded sample %d: sequential %d, parallel %d", i, a.Data[i], b.Data[i])
				}
			}

			if err := seq.Decode(a, a.NumResolutions); err != nil {
				t.Fatal(err)
			}
			if err := par.Decode(b, b.NumResolutions); err != nil {
				t.Fatal(err)
			}
			for i := range a.Data {
				if a.Data[i] != b.Data[i] {
					t.Fatalf("decoded sample %d: sequential %d, parallel %d", i, a.Data[i], b.Data[i])
				}
			}
		})
	}
}

func TestDecodeValidatesResolutionCount(t *testing.T) {
	e := NewEngine()
	tilec := tcd.NewTileComponent(0, 0, 16, 16, 3, true)

	if err := e.Decode(tilec, 0); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("numRes=0: got %v, want ErrInvalidRegion", err)
	}
	if err := e.Decode(tilec, 4); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("numRes=4: got %v, want ErrInvalidRegion", err)
	}
}

// Decoding fewer resolutions than the pyramid holds leaves the higher levels
// packed and records the count.
func TestDecodeTruncatedPyramid(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	e := NewEngine()
	tilec := tcd.NewTileComponent(0, 0, 32, 32, 3, true)
	fillRandInt(rng, tilec.Data)

	if err := e.Encode(tilec); err != nil {
		t.Fatal(err)
	}
	if err := e.Decode(tilec, 2); err != nil {
		t.Fatal(err)
	}
	if tilec.DecodedResolutions != 2 {
		t.Fatalf("DecodedResolutions = %d, want 2", tilec.DecodedResolutions)
	}
	if tilec.ResolutionCount() != 2 {
		t.Fatalf("ResolutionCount() = %d, want 2", tilec.ResolutionCount())
	}
}

// A truncated decode of a 32x32 three-level pyramid touches only the top-left
// 16x16 region, and its result matches decoding the same coefficients as a
// standalone 16x16 two-level tile.
func TestTruncatedDecodeMatchesSubPyramid(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	e := NewEngine()

	full := tcd.NewTileComponent(0, 0, 32, 32, 3, true)
	fillRandInt(rng, full.Data)
	if err := e.Encode(full); err != nil {
		t.Fatal(err)
	}

	ref := tcd.NewTileComponent(0, 0, 16, 16, 2, true)
	r1 := full.Resolutions[1]
	for y := 0; y < r1.Height(); y++ {
		copy(ref.Data[y*ref.Width():y*ref.Width()+r1.Width()],
			full.Data[y*full.Width():y*full.Width()+r1.Width()])
	}

	if err := e.Decode(full, 2); err != nil {
		t.Fatal(err)
	}
	if err := e.Decode(ref, 2); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < r1.Height(); y++ {
		for x := 0; x < r1.Width(); x++ {
			got := full.Data[y*full.Width()+x]
			want := ref.Data[y*ref.Width()+x]
			if got != want {
				t.Fatalf("(%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}
