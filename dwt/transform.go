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
	"log/slog"
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/belloabdoul/go-openjpeg/tcd"
)

var (
	// ErrSizeOverflow reports a tile whose scratch requirements exceed the
	// address space.
	ErrSizeOverflow = errors.New("dwt: tile size overflow")

	// ErrInvalidRegion reports a resolution count outside the pyramid.
	ErrInvalidRegion = errors.New("dwt: invalid resolution range")
)

// Engine runs the wavelet transforms. Build one with NewEngine; it runs
// sequentially unless parallelism is configured with WithPool.
type Engine struct {
	pool      *workerpool.Pool
	disableMT bool
	log       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPool spreads row and stripe passes over p. The Engine does not close
// the pool.
func WithPool(p *workerpool.Pool) Option {
	return func(e *Engine) { e.pool = p }
}

// WithLogger sets the logger used for per-tile debug records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithoutParallelism forces sequential execution even when a pool is set.
func WithoutParallelism() Option {
	return func(e *Engine) { e.disableMT = true }
}

// NewEngine builds an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e
}

func checkTileSize(tilec *tcd.TileComponent) error {
	w, h := tilec.Width(), tilec.Height()
	if w > 0 && h > math.MaxInt/w {
		return fmt.Errorf("%w: %dx%d", ErrSizeOverflow, w, h)
	}
	return nil
}

// Decode synthesizes the first numRes resolutions of tilec in place. With a
// window of interest set, only the coefficients contributing to the window
// are processed and the result is written to tilec.WinData instead.
func (e *Engine) Decode(tilec *tcd.TileComponent, numRes int) error {
	if numRes <= 0 || numRes > tilec.NumResolutions {
		return fmt.Errorf("%w: numRes %d of %d", ErrInvalidRegion, numRes, tilec.NumResolutions)
	}
	if err := checkTileSize(tilec); err != nil {
		return err
	}

	e.log.Debug("dwt decode",
		"width", tilec.Width(), "height", tilec.Height(),
		"resolutions", numRes, "reversible", tilec.Reversible,
		"windowed", tilec.HasWindow)

	var err error
	switch {
	case tilec.HasWindow:
		err = e.decodePartial(tilec, numRes)
	case tilec.Reversible:
		e.decodeTile53(tilec, numRes)
	default:
		e.decodeTile97(tilec, numRes)
	}
	if err != nil {
		return err
	}
	tilec.DecodedResolutions = numRes
	return nil
}

// Encode decomposes tilec.Data in place across the full pyramid.
func (e *Engine) Encode(tilec *tcd.TileComponent) error {
	if err := checkTileSize(tilec); err != nil {
		return err
	}

	e.log.Debug("dwt encode",
		"width", tilec.Width(), "height", tilec.Height(),
		"resolutions", tilec.NumResolutions, "reversible", tilec.Reversible)

	if tilec.Reversible {
		e.encodeTile53(tilec)
	} else {
		e.encodeTile97(tilec)
	}
	return nil
}

// runRows executes a row-range job, parallel when the pool is available and
// there is more than one row.
func (e *Engine) runRows(rows int, fn func(start, end int)) {
	if e.pool == nil || e.disableMT || rows <= 1 {
		fn(0, rows)
		return
	}
	e.pool.ParallelFor(rows, fn)
}

// runStripes executes a stripe-range job; parallel only when the region is
// at least two stripes wide.
func (e *Engine) runStripes(rw int, fn func(start, end int)) {
	nStripes := (rw + stripeWidth - 1) / stripeWidth
	if e.pool == nil || e.disableMT || rw < 2*stripeWidth {
		fn(0, nStripes)
		return
	}
	e.pool.ParallelFor(nStripes, fn)
}

func (e *Engine) decodeTile53(tilec *tcd.TileComponent, numRes int) {
	stride := tilec.Width()
	rw := tilec.Resolutions[0].Width()
	rh := tilec.Resolutions[0].Height()

	for resno := 1; resno < numRes; resno++ {
		tr := &tilec.Resolutions[resno]
		snH, snV := rw, rh
		rw, rh = tr.Width(), tr.Height()

		vj := &vertJob53{
			data: tilec.Data, stride: stride,
			sn: snV, dn: rh - snV, cas: tr.Y0 & 1,
			rw: rw, rh: rh,
		}
		e.runStripes(rw, vj.run)

		hj := &horizJob53{
			data: tilec.Data, stride: stride,
			sn: snH, dn: rw - snH, cas: tr.X0 & 1,
			rw: rw,
		}
		e.runRows(rh, hj.run)
	}
}

func (e *Engine) decodeTile97(tilec *tcd.TileComponent, numRes int) {
	stride := tilec.Width()
	rw := tilec.Resolutions[0].Width()
	rh := tilec.Resolutions[0].Height()

	for resno := 1; resno < numRes; resno++ {
		tr := &tilec.Resolutions[resno]
		snH, snV := rw, rh
		rw, rh = tr.Width(), tr.Height()

		vj := &vertJob97{
			data: tilec.Data, stride: stride,
			sn: snV, dn: rh - snV, cas: tr.Y0 & 1,
			rw: rw, rh: rh,
		}
		e.runStripes(rw, vj.run)

		hj := &horizJob97{
			data: tilec.Data, stride: stride,
			sn: snH, dn: rw - snH, cas: tr.X0 & 1,
			rw: rw,
		}
		e.runRows(rh, hj.run)
	}
}

func (e *Engine) encodeTile53(tilec *tcd.TileComponent) {
	stride := tilec.Width()

	for resno := tilec.NumResolutions - 1; resno >= 1; resno-- {
		tr := &tilec.Resolutions[resno]
		prev := &tilec.Resolutions[resno-1]
		rw, rh := tr.Width(), tr.Height()

		hj := &horizJob53{
			data: tilec.Data, stride: stride,
			sn: prev.Width(), dn: rw - prev.Width(), cas: tr.X0 & 1,
			rw: rw, forward: true,
		}
		e.runRows(rh, hj.run)

		vj := &vertJob53{
			data: tilec.Data, stride: stride,
			sn: prev.Height(), dn: rh - prev.Height(), cas: tr.Y0 & 1,
			rw: rw, rh: rh, forward: true,
		}
		e.runStripes(rw, vj.run)
	}
}

func (e *Engine) encodeTile97(tilec *tcd.TileComponent) {
	stride := tilec.Width()

	for resno := tilec.NumResolutions - 1; resno >= 1; resno-- {
		tr := &tilec.Resolutions[resno]
		prev := &tilec.Resolutions[resno-1]
		rw, rh := tr.Width(), tr.Height()

		hj := &horizJob97{
			data: tilec.Data, stride: stride,
			sn: prev.Width(), dn: rw - prev.Width(), cas: tr.X0 & 1,
			rw: rw, forward: true,
		}
		e.runRows(rh, hj.run)

		vj := &vertJob97{
			data: tilec.Data, stride: stride,
			sn: prev.Height(), dn: rh - prev.Height(), cas: tr.Y0 & 1,
			rw: rw, rh: rh, forward: true,
		}
		e.runStripes(rw, vj.run)
	}
}
