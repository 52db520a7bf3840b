// Copyright 2025 go-highway Authors
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

// Command stimgen generates stimuli files for the mixed-precision FPU testbench.
//
// Usage:
//
//	stimgen [nr_of_stimuli] [operation] [src_fmt] [src2_fmt] [dst_fmt]
//	stimgen 100 SDOTP FP8 FP8 FP16 -o stimuli.txt --seed 42
//	stimgen batch plan.yaml
//	stimgen formats
//
// Without arguments 10 SDOTP stimuli (FP16, FP16 -> FP32) are written to
// ../stimuli.txt. Formats are only taken from the command line when all
// five arguments are given; otherwise the operation's defaults apply.
//
// Valid operations: SDOTP, VSUM, EXVSUM, FMADD.
// Valid formats: FP32, FP16, AL16, FP8, AL8.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-fpstim/fpx"
	"github.com/ajroetker/go-fpstim/internal/config"
	"github.com/ajroetker/go-fpstim/internal/cpuinfo"
	"github.com/ajroetker/go-fpstim/stim"
)

var (
	version = "0.1.0"
	commit  = "dev" // Set via ldflags: -X main.commit=$(git rev-parse --short HEAD)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stimgen [nr_of_stimuli] [operation] [src_fmt] [src2_fmt] [dst_fmt]",
		Short: "Generate stimuli for the mixed-precision FPU testbench",
		Long: `stimgen writes randomized operands and expected results for the
mixed-precision FPU testbench. Inputs use a uniform binary distribution;
results are computed in FP64 and rounded into the destination format.

SDOTP, VSUM and EXVSUM results are computed with chained additions or
fused multiply-adds, which can differ from an exact multi-term sum.

Operations: SDOTP, VSUM, EXVSUM, FMADD
Formats:    FP32, FP16, AL16, FP8, AL8`,
		Args:          cobra.MaximumNArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}
	rootCmd.Flags().StringP("output", "o", config.GetEnvStr("STIMGEN_OUTPUT", config.DefaultOutput), "Output file ('-' for stdout)")
	rootCmd.PersistentFlags().Uint64("seed", config.GetEnvUint64("STIMGEN_SEED", 0), "Random seed (0 seeds from system entropy)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print a summary of each generated file to stderr")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version and host information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stimgen v%s (%s)\n", version, commit)
			fmt.Fprintf(cmd.OutOrStdout(), "host: %s\n", cpuinfo.Describe())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "formats",
		Short: "List supported floating-point formats",
		Args:  cobra.NoArgs,
		RunE:  runFormats,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "batch <plan.yaml>",
		Short: "Generate every stimuli file listed in a YAML plan",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	})

	return rootCmd
}

// parseArgs applies the positional arguments on top of the SDOTP defaults.
func parseArgs(args []string) (stim.Config, error) {
	cfg := stim.DefaultConfig(stim.SDOTP)
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid number of stimuli %q", args[0])
		}
		cfg.Count = n
	}
	if len(args) > 1 {
		op, err := stim.ParseOperation(args[1])
		if err != nil {
			return cfg, err
		}
		cfg.Operation = op
		cfg.Formats = op.DefaultFormats()
	}
	if len(args) == 5 {
		formats, err := config.ParseFormats(args[2:])
		if err != nil {
			return cfg, err
		}
		cfg.Formats = formats
	}
	return cfg, nil
}

func newSource(seed uint64) rand.Source {
	if seed == 0 {
		return stim.EntropySource()
	}
	return stim.NewSource(seed)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(args) == 3 || len(args) == 4 {
		cmd.PrintErrf("Warning: formats need all of src_fmt, src2_fmt and dst_fmt; using %s defaults\n", cfg.Operation)
	}

	output, _ := cmd.Flags().GetString("output")
	seed, _ := cmd.Flags().GetUint64("seed")
	verbose, _ := cmd.Flags().GetBool("verbose")

	gen, err := stim.NewGenerator(cfg, newSource(seed))
	if err != nil {
		return err
	}
	if verbose {
		printSummary(cmd.ErrOrStderr(), gen, seed, output)
	}

	if output == "-" {
		if _, err := gen.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}
		return nil
	}
	if err := stim.WriteFile(output, gen); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Finished %d-bit stimuli file generation.\n", stim.DatapathWidth)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	plan, err := config.LoadPlan(args[0])
	if err != nil {
		return err
	}
	seed := plan.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	if plan.OutputDir != "" {
		if err := os.MkdirAll(plan.OutputDir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", stim.ErrIO, err)
		}
	}

	for i := range plan.Jobs {
		job := &plan.Jobs[i]
		cfg, err := job.StimConfig()
		if err != nil {
			return fmt.Errorf("job %s: %w", job.DisplayName(), err)
		}
		// Each job gets its own stream so reordering jobs does not change
		// the files of the others.
		jobSeed := seed
		if seed != 0 {
			jobSeed = seed + uint64(i)
		}
		gen, err := stim.NewGenerator(cfg, newSource(jobSeed))
		if err != nil {
			return fmt.Errorf("job %s: %w", job.DisplayName(), err)
		}
		out := plan.OutputPath(job)
		if verbose {
			printSummary(cmd.ErrOrStderr(), gen, jobSeed, out)
		}
		if err := stim.WriteFile(out, gen); err != nil {
			return fmt.Errorf("job %s: %w", job.DisplayName(), err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Finished %d-bit stimuli file generation (%d files).\n", stim.DatapathWidth, len(plan.Jobs))
	return nil
}

func runFormats(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTAG\tEXP\tFRAC\tWIDTH")
	for _, name := range fpx.FormatNames() {
		f := fpx.MustParseFormat(name)
		tag, err := f.Tag()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", name, tag, f.ExpBits, f.FracBits, f.Width())
	}
	return tw.Flush()
}

func printSummary(w io.Writer, gen *stim.Generator, seed uint64, output string) {
	cfg := gen.Config()
	seedDesc := "entropy"
	if seed != 0 {
		seedDesc = strconv.FormatUint(seed, 10)
	}
	names := []string{cfg.Formats.Src.String(), cfg.Formats.Src2.String(), cfg.Formats.Dst.String()}
	fmt.Fprintf(w, "%s %s: %d stimuli, %d lane(s), %d-bit operands, seed %s -> %s\n",
		cfg.Operation, strings.Join(names, " "), cfg.Count, gen.Lanes(), gen.SrcWidth(), seedDesc, output)
}
