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

package cmd

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/belloabdoul/go-openjpeg/dwt"
	"github.com/belloabdoul/go-openjpeg/tcd"
)

// NewRoundtripCmd builds the roundtrip command: forward transform an image,
// synthesize it back and report the reconstruction error.
func NewRoundtripCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "forward+inverse transform an image and report the error",
		Long: "Loads a TIFF/PNG/JPEG image, runs the forward wavelet transform on each " +
			"component (after the reversible or irreversible color transform for RGB " +
			"input), synthesizes it back and reports max error and PSNR.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("image path is required, use --file or an argument")
			}
			numRes, _ := cmd.Flags().GetInt("resolutions")
			irreversible, _ := cmd.Flags().GetBool("irreversible")
			workers, _ := cmd.Flags().GetInt("workers")
			windowSpec, _ := cmd.Flags().GetString("window")

			window, err := parseWindow(windowSpec)
			if err != nil {
				return err
			}
			return runRoundtrip(ctx, path, numRes, irreversible, workers, window)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "image path (TIFF, PNG or JPEG)")
	pf.IntP("resolutions", "r", 5, "resolution count of the pyramid")
	pf.Bool("irreversible", false, "use the 9/7 filter instead of the 5/3")
	pf.Int("workers", 0, "worker count for parallel passes, 0 runs sequentially")
	pf.String("window", "", "decode only x0,y0,x1,y1 instead of the full tile")
	return cmd
}

func parseWindow(s string) (*[4]int, error) {
	if s == "" {
		return nil, nil
	}
	var w [4]int
	if n, err := fmt.Sscanf(s, "%d,%d,%d,%d", &w[0], &w[1], &w[2], &w[3]); err != nil || n != 4 {
		return nil, fmt.Errorf("invalid window %q, want x0,y0,x1,y1", s)
	}
	if w[2] <= w[0] || w[3] <= w[1] {
		return nil, fmt.Errorf("empty window %q", s)
	}
	return &w, nil
}

// loadPlanes decodes an image into 8-bit component planes: one for grayscale
// input, R, G and B otherwise.
func loadPlanes(path string) ([][]int32, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	slog.Info("loaded image", "path", path, "format", format, "width", w, "height", h)

	if gray, ok := img.(*image.Gray); ok {
		plane := make([]int32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				plane[y*w+x] = int32(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return [][]int32{plane}, w, h, nil
	}

	planes := [][]int32{make([]int32, w*h), make([]int32, w*h), make([]int32, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			planes[0][y*w+x] = int32(r >> 8)
			planes[1][y*w+x] = int32(g >> 8)
			planes[2][y*w+x] = int32(bl >> 8)
		}
	}
	return planes, w, h, nil
}

func runRoundtrip(ctx context.Context, path string, numRes int, irreversible bool, workers int, window *[4]int) error {
	planes, w, h, err := loadPlanes(path)
	if err != nil {
		return err
	}

	opts := []dwt.Option{dwt.WithLogger(slog.Default())}
	if workers != 0 {
		pool := workerpool.New(workers)
		defer pool.Close()
		opts = append(opts, dwt.WithPool(pool))
	}
	engine := dwt.NewEngine(opts...)

	// Multi-component transform for RGB input.
	if len(planes) == 3 {
		if irreversible {
			planes = forwardICT(planes, w, h)
		} else {
			planes = forwardRCT(planes, w, h)
		}
	}

	orig := make([][]int32, len(planes))
	for i := range planes {
		orig[i] = append([]int32(nil), planes[i]...)
	}

	ox, oy, ow, oh := 0, 0, w, h
	decoded := make([][]int32, len(planes))
	for compno, plane := range planes {
		tilec := tcd.NewTileComponent(0, 0, w, h, numRes, !irreversible)
		if irreversible {
			for i, v := range plane {
				tilec.Data[i] = int32(math.Float32bits(float32(v)))
			}
		} else {
			copy(tilec.Data, plane)
		}
		if err := engine.Encode(tilec); err != nil {
			return fmt.Errorf("component %d: %w", compno, err)
		}
		if window != nil {
			tilec.SetWindow(window[0], window[1], window[2], window[3])
		}
		if err := engine.Decode(tilec, numRes); err != nil {
			return fmt.Errorf("component %d: %w", compno, err)
		}
		if window != nil {
			ox, oy = tilec.WinX0, tilec.WinY0
			ow, oh = tilec.WinWidth(), tilec.WinHeight()
			decoded[compno] = tilec.WinData
		} else {
			decoded[compno] = tilec.Data
		}
	}

	for compno := range decoded {
		diff := make([]float64, ow*oh)
		for y := 0; y < oh; y++ {
			for x := 0; x < ow; x++ {
				got := sampleValue(decoded[compno][y*ow+x], irreversible)
				want := float64(orig[compno][(oy+y)*w+ox+x])
				diff[y*ow+x] = got - want
			}
		}
		maxErr := floats.Norm(diff, math.Inf(1))
		mse := floats.Dot(diff, diff) / float64(len(diff))
		psnr := math.Inf(1)
		if mse > 0 {
			psnr = 10 * math.Log10(255*255/mse)
		}
		fmt.Printf("component %d: max error %g, PSNR %.2f dB\n", compno, maxErr, psnr)
	}
	return nil
}

// sampleValue interprets one stored sample: a float32 bit pattern on the 9/7
// path, a plain integer on the 5/3 path.
func sampleValue(v int32, irreversible bool) float64 {
	if irreversible {
		return float64(math.Float32frombits(uint32(v)))
	}
	return float64(v)
}

func forwardRCT(planes [][]int32, w, h int) [][]int32 {
	r, g, b := planeImage(planes[0], w, h), planeImage(planes[1], w, h), planeImage(planes[2], w, h)
	y := hwyimage.NewImage[int32](w, h)
	cb := hwyimage.NewImage[int32](w, h)
	cr := hwyimage.NewImage[int32](w, h)
	hwyimage.BaseForwardRCT(r, g, b, y, cb, cr)
	return [][]int32{imagePlane(y, w, h), imagePlane(cb, w, h), imagePlane(cr, w, h)}
}

func forwardICT(planes [][]int32, w, h int) [][]int32 {
	toFloat := func(p []int32) *hwyimage.Image[float32] {
		img := hwyimage.NewImage[float32](w, h)
		for y := 0; y < h; y++ {
			row := img.RowSlice(y)
			for x := 0; x < w; x++ {
				row[x] = float32(p[y*w+x])
			}
		}
		return img
	}
	r, g, b := toFloat(planes[0]), toFloat(planes[1]), toFloat(planes[2])
	y := hwyimage.NewImage[float32](w, h)
	cb := hwyimage.NewImage[float32](w, h)
	cr := hwyimage.NewImage[float32](w, h)
	hwyimage.BaseForwardICT(r, g, b, y, cb, cr)

	fromFloat := func(img *hwyimage.Image[float32]) []int32 {
		p := make([]int32, w*h)
		for y := 0; y < h; y++ {
			row := img.RowSlice(y)
			for x := 0; x < w; x++ {
				p[y*w+x] = int32(math.Round(float64(row[x])))
			}
		}
		return p
	}
	return [][]int32{fromFloat(y), fromFloat(cb), fromFloat(cr)}
}

func planeImage(p []int32, w, h int) *hwyimage.Image[int32] {
	img := hwyimage.NewImage[int32](w, h)
	for y := 0; y < h; y++ {
		copy(img.RowSlice(y), p[y*w:(y+1)*w])
	}
	return img
}

func imagePlane(img *hwyimage.Image[int32], w, h int) []int32 {
	p := make([]int32, w*h)
	for y := 0; y < h; y++ {
		copy(p[y*w:(y+1)*w], img.RowSlice(y))
	}
	return p
}
