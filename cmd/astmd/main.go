package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"astmd"
	"astmd/adapters/report"
	"astmd/domain/material"
	"astmd/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "astmd",
		Short: "Compute ASTM D-series mechanical test results from instrument data files",
	}

	rootCmd.AddCommand(
		newD790Cmd(),
		newD3039Cmd(),
		newD5868Cmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// outputFlags are shared by every subcommand and merged over the
// environment defaults.
type outputFlags struct {
	outDir  string
	formats []string
	noPlots bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.outDir, "out", "", "output directory (default: alongside the first data file)")
	cmd.Flags().StringSliceVar(&f.formats, "format", nil, "report formats: text, excel, html")
	cmd.Flags().BoolVar(&f.noPlots, "no-plots", false, "skip chart rendering")
}

func (f *outputFlags) resolve() (astmd.OutputOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return astmd.OutputOptions{}, err
	}
	opts := astmd.OutputOptions{
		Dir:          cfg.OutputDir,
		Formats:      cfg.ReportFormats,
		DisablePlots: cfg.DisablePlots,
	}
	if f.outDir != "" {
		opts.Dir = f.outDir
	}
	if len(f.formats) > 0 {
		opts.Formats = nil
		for _, raw := range f.formats {
			format, err := report.ParseFormat(raw)
			if err != nil {
				return astmd.OutputOptions{}, err
			}
			opts.Formats = append(opts.Formats, format)
		}
	}
	if f.noPlots {
		opts.DisablePlots = true
	}
	return opts, nil
}

func loadJob(path string, job interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}
	if err := json.Unmarshal(data, job); err != nil {
		return fmt.Errorf("parse job file %s: %w", path, err)
	}
	return nil
}

func newD790Cmd() *cobra.Command {
	var jobPath string
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "d790",
		Short: "Flexural properties (ASTM D790) from a JSON job file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var job struct {
				Files           []string  `json:"files"`
				Widths          []float64 `json:"widths"`
				Depths          []float64 `json:"depths"`
				Span            float64   `json:"span"`
				Material        string    `json:"material"`
				LargeSpan       bool      `json:"large_span"`
				ValidateModulus bool      `json:"validate_modulus"`
			}
			if err := loadJob(jobPath, &job); err != nil {
				return err
			}
			output, err := flags.resolve()
			if err != nil {
				return err
			}
			m, err := astmd.D790(job.Files, job.Widths, job.Depths, job.Span, astmd.D790Options{
				MaterialName:    job.Material,
				LargeSpan:       job.LargeSpan,
				ValidateModulus: job.ValidateModulus,
				Output:          output,
			})
			if err != nil {
				return err
			}
			printSummary(cmd, "Flexural strength", m.Strength.Mean, m.Modulus)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobPath, "job", "", "path to the JSON job file (required)")
	cmd.MarkFlagRequired("job")
	flags.register(cmd)
	return cmd
}

func newD3039Cmd() *cobra.Command {
	var jobPath string
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "d3039",
		Short: "Tensile properties (ASTM D3039) from a JSON job file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var job struct {
				Files              []string  `json:"files"`
				Widths             []float64 `json:"widths"`
				Thicknesses        []float64 `json:"thicknesses"`
				Lengths            []float64 `json:"lengths"`
				Material           string    `json:"material"`
				ExtensometerLength float64   `json:"extensometer_length"`
				ValidateModulus    bool      `json:"validate_modulus"`
			}
			if err := loadJob(jobPath, &job); err != nil {
				return err
			}
			output, err := flags.resolve()
			if err != nil {
				return err
			}
			m, err := astmd.D3039(job.Files, job.Widths, job.Thicknesses, job.Lengths, astmd.D3039Options{
				MaterialName:       job.Material,
				ExtensometerLength: job.ExtensometerLength,
				ValidateModulus:    job.ValidateModulus,
				Output:             output,
			})
			if err != nil {
				return err
			}
			printSummary(cmd, "Tensile strength", m.Strength.Mean, m.Modulus)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobPath, "job", "", "path to the JSON job file (required)")
	cmd.MarkFlagRequired("job")
	flags.register(cmd)
	return cmd
}

func newD5868Cmd() *cobra.Command {
	var jobPath string
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "d5868",
		Short: "Lap-shear adhesion (ASTM D5868) from a JSON job file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var job struct {
				Files    []string  `json:"files"`
				Areas    []float64 `json:"areas"`
				Material string    `json:"material"`
			}
			if err := loadJob(jobPath, &job); err != nil {
				return err
			}
			output, err := flags.resolve()
			if err != nil {
				return err
			}
			m, err := astmd.D5868(job.Files, job.Areas, astmd.D5868Options{
				MaterialName: job.Material,
				Output:       output,
			})
			if err != nil {
				return err
			}
			printSummary(cmd, "Shear strength", m.Strength.Mean, nil)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobPath, "job", "", "path to the JSON job file (required)")
	cmd.MarkFlagRequired("job")
	flags.register(cmd)
	return cmd
}

func printSummary(cmd *cobra.Command, strengthLabel string, strength float64, modulus *material.Aggregate) {
	cmd.Printf("%s: %.2f MPa\n", strengthLabel, strength)
	if modulus != nil {
		cmd.Printf("Modulus: %.0f MPa\n", modulus.Mean)
	}
}
