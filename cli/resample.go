package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/output"
	"github.com/uyouii/ocean-profiles/profile"
)

type resampleFlags struct {
	dimension string
	vars      []string
	step      float64
	method    string
	noMask    bool
	out       string
}

func newResampleCmd(a *app) *cobra.Command {
	f := &resampleFlags{}
	cmd := &cobra.Command{
		Use:   "resample <file>",
		Short: "Interpolate a station profile onto a regular grid",
		Long: `Interpolate every variable of an exchange file onto a regular grid of the
dimension column and mask values inside sampling gaps.

Examples:
  profilegrid resample 33RO20240101_hy1.csv
  profilegrid resample 33RO20240101_hy1.csv --vars CTDTMP,SALNTY --step 5
  profilegrid resample 33RO20240101_ct1.csv --dimension CTDPRS --out profile.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResample(cmd, a, f, args[0])
		},
	}
	cmd.Flags().StringVarP(&f.dimension, "dimension", "d", "", "dimension column (default from config)")
	cmd.Flags().StringSliceVar(&f.vars, "vars", nil, "variables to resample (default all numeric columns)")
	cmd.Flags().Float64VarP(&f.step, "step", "s", 0, "grid step (default from config)")
	cmd.Flags().StringVarP(&f.method, "method", "m", "", "interpolation method: pchip or linear")
	cmd.Flags().BoolVar(&f.noMask, "no-mask", false, "keep values inside sampling gaps")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file, .csv or .xlsx (default CSV on stdout)")
	return cmd
}

func runResample(cmd *cobra.Command, a *app, f *resampleFlags, path string) error {
	ctx := context.Background()

	dimension := f.dimension
	if dimension == "" {
		dimension = a.cfg.Grid.Dimension
	}
	opts := a.cfg.ResampleOptions()
	if f.step != 0 {
		opts.Step = f.step
	}
	if f.method != "" {
		opts.Method = model.InterpMethod(f.method)
	}
	if f.noMask {
		opts.DisableGapMask = true
	}

	res, err := resampleFile(ctx, a, path, dimension, opts, f.vars...)
	if err != nil {
		return err
	}

	for _, fail := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v not resampled: %v\n", fail.Name, fail.Err)
	}
	return writeProfile(cmd, f.out, res, a.cfg.Output.Precision)
}

func resampleFile(ctx context.Context, a *app, path, dimension string, opts profile.Options,
	vars ...string) (*model.ResampledProfile, error) {
	table, err := a.reader.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", path, err)
	}
	p, err := table.Profile(dimension, vars...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	res, err := profile.Resample(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("resample %v: %w", path, err)
	}
	return res, nil
}

func writeProfile(cmd *cobra.Command, out string, res *model.ResampledProfile, precision int32) error {
	switch strings.ToLower(filepath.Ext(out)) {
	case "":
		if out != "" {
			return fmt.Errorf("output %q: want a .csv or .xlsx file", out)
		}
		return output.WriteProfileCSV(cmd.OutOrStdout(), res, precision)
	case ".xlsx":
		if err := output.WriteProfileXLSX(out, res, precision); err != nil {
			return fmt.Errorf("write %v: %w", out, err)
		}
	case ".csv":
		if err := writeCSVFile(out, res, precision); err != nil {
			return err
		}
	default:
		return fmt.Errorf("output %q: want a .csv or .xlsx file", out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v grid points of %v variables to %v\n",
		len(res.Grid), len(res.Variables), out)
	return nil
}

func writeCSVFile(path string, res *model.ResampledProfile, precision int32) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %v: %w", path, err)
	}
	err = output.WriteProfileCSV(file, res, precision)
	if err := closeAfter(file, err); err != nil {
		return fmt.Errorf("write %v: %w", path, err)
	}
	return nil
}

// closeAfter closes c and returns the first of err and the close error.
func closeAfter(c io.Closer, err error) error {
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return err
}
