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

// Package tcd models the tile-component data the wavelet engine operates on:
// the sample grid, the multi-resolution pyramid, and the per-band geometry.
//
// A tile-component is one color channel of one tile. Its resolutions are
// numbered 0 (coarsest, LL only) through NumResolutions-1 (finest). Every
// resolution r >= 1 contributes three detail subbands (HL, LH, HH); the
// rectangles of all of them derive deterministically from the tile rectangle
// by ceiling division by powers of two.
//
// All geometry here is pure computation. The transform drivers in package dwt
// consume it; nothing in this package allocates sample storage besides the
// tile buffers themselves.
package tcd
