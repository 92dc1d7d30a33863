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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/belloabdoul/go-openjpeg/dwt"
)

var orientNames = []string{"LL", "HL", "LH", "HH"}

// NewStepsizesCmd builds the stepsizes command: derive and print the QCD
// quantization table for a component.
func NewStepsizesCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stepsizes",
		Short: "derive the per-subband quantization step sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			numRes, _ := cmd.Flags().GetInt("resolutions")
			prec, _ := cmd.Flags().GetInt("precision")
			irreversible, _ := cmd.Flags().GetBool("irreversible")
			if numRes < 1 || numRes > 32 {
				return fmt.Errorf("resolutions %d out of range 1..32", numRes)
			}

			steps := dwt.CalcExplicitStepsizes(numRes, prec, !irreversible)

			tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BAND\tRES\tORIENT\tLEVEL\tGAIN\tEXPN\tMANT\tSTEP")
			for bandno, s := range steps {
				resno, orient := 0, 0
				if bandno > 0 {
					resno = (bandno-1)/3 + 1
					orient = (bandno-1)%3 + 1
				}
				gain := dwt.BandGain(!irreversible, orient)
				fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\t%d\t%.6f\n",
					bandno, resno, orientNames[orient], numRes-1-resno,
					gain, s.Expn, s.Mant, s.Value(prec, gain))
			}
			return tw.Flush()
		},
	}
	pf := cmd.PersistentFlags()
	pf.IntP("resolutions", "r", 5, "resolution count of the pyramid")
	pf.IntP("precision", "p", 8, "component bit depth")
	pf.Bool("irreversible", false, "derive for the 9/7 filter instead of the 5/3")
	return cmd
}
