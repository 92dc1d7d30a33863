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

// Package dwt implements the JPEG 2000 discrete wavelet transform: the
// reversible integer 5/3 filter, the irreversible single-precision 9/7
// filter, and the quantization step-size derivation that accompanies them.
//
// The transform operates on a tcd.TileComponent. Encode decomposes the
// sample grid in place into the packed subband layout (low coefficients
// first, then high, per axis and per level). Decode synthesizes it back;
// when the component carries a window of interest, only the coefficient
// regions that contribute to the window are touched, routed through a
// sparse.Array, and the result lands in WinData.
//
// Per level the forward transform runs rows first and then columns, and the
// inverse runs columns first and then rows, so each path exactly reverses
// the other. Column passes work on eight columns at a time through an
// interleaved stripe buffer; row passes work a line at a time. Both can be
// spread over a workerpool.Pool.
package dwt
