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

// CDF 9/7 lifting coefficients (ITU-T T.800 Table F.4), single precision.
// All 9/7 inner-loop arithmetic is float32.
const (
	alpha97 float32 = -1.586134342059924
	beta97  float32 = -0.052980118572961
	gamma97 float32 = 0.882911075530934
	delta97 float32 = 0.443506852043971

	// k97 is the normalization constant K applied to the low band on
	// synthesis.
	k97 float32 = 1.230174104914001

	// twoInvK97 is the high-band synthesis scale. The decoder applies 2/K
	// rather than 1/K; the step-size derivation offsets for it. The value is
	// the exact single-precision literal, not derived from k97.
	twoInvK97 float32 = 1.625732422

	// Forward scales: 1/K for the low band and K/2 for the high band. K/2 is
	// the exact inverse of 2/K, so against twoInvK97 a forward-inverse round
	// trip leaves the high band about 3.3e-5 (relative) short.
	invK97  float32 = 1.0 / k97
	halfK97 float32 = k97 / 2
)

// stripeWidth is the number of columns a vertical pass carries per
// interleaved stripe buffer.
const stripeWidth = 8
