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
	"fmt"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/belloabdoul/go-openjpeg/tcd"
)

var benchLineSizes = []int{64, 512, 4096}

func BenchmarkIDWT53Line(b *testing.B) {
	rng := rand.New(rand.NewSource(41))
	for _, n := range benchLineSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			src := randLine(rng, n)
			line := make([]int32, n)
			tmp := make([]int32, n)
			sn, dn := subbandCounts(n, 0)
			b.SetBytes(int64(n * 4))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				copy(line, src)
				idwt53Line(line, sn, dn, 0, tmp)
			}
		})
	}
}

func BenchmarkIDWT97Line(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range benchLineSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			src := randFloatLine(rng, n)
			line := make([]float32, n)
			low := make([]float32, n)
			high := make([]float32, n)
			sn, dn := subbandCounts(n, 0)
			b.SetBytes(int64(n * 4))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				copy(line, src)
				idwt97Line(line, sn, dn, 0, low, high)
			}
		})
	}
}

func benchmarkDecodeTile(b *testing.B, reversible bool, pool *workerpool.Pool) {
	rng := rand.New(rand.NewSource(43))
	const size, numRes = 256, 5

	tilec := tcd.NewTileComponent(0, 0, size, size, numRes, reversible)
	if reversible {
		fillRandInt(rng, tilec.Data)
	} else {
		fillRandFloatBits(rng, tilec.Data)
	}
	e := NewEngine(WithPool(pool))
	if err := e.Encode(tilec); err != nil {
		b.Fatal(err)
	}
	encoded := append([]int32(nil), tilec.Data...)

	b.SetBytes(int64(size * size * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(tilec.Data, encoded)
		if err := e.Decode(tilec, numRes); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeTile53(b *testing.B) { benchmarkDecodeTile(b, true, nil) }
func BenchmarkDecodeTile97(b *testing.B) { benchmarkDecodeTile(b, false, nil) }

func BenchmarkDecodeTile53Pool(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()
	benchmarkDecodeTile(b, true, pool)
}

func BenchmarkEncodeTile53(b *testing.B) {
	rng := rand.New(rand.NewSource(44))
	const size, numRes = 256, 5

	tilec := tcd.NewTileComponent(0, 0, size, size, numRes, true)
	fillRandInt(rng, tilec.Data)
	orig := append([]int32(nil), tilec.Data...)
	e := NewEngine()

	b.SetBytes(int64(size * size * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(tilec.Data, orig)
		if err := e.Encode(tilec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPartialDecode53(b *testing.B) {
	rng := rand.New(rand.NewSource(45))
	const size, numRes = 256, 5

	tilec := tcd.NewTileComponent(0, 0, size, size, numRes, true)
	fillRandInt(rng, tilec.Data)
	e := NewEngine()
	if err := e.Encode(tilec); err != nil {
		b.Fatal(err)
	}
	tilec.SetWindow(64, 64, 96, 96)

	b.SetBytes(int64(32 * 32 * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Decode(tilec, numRes); err != nil {
			b.Fatal(err)
		}
	}
}
