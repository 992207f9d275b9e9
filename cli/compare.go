package cli

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/output"
	"github.com/uyouii/ocean-profiles/profile"
	"github.com/uyouii/ocean-profiles/station"
)

type compareFlags struct {
	dependent string
	dimension string
	additive  bool
	resample  bool
	step      float64
}

func newCompareCmd(a *app) *cobra.Command {
	f := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare <input> <reference>",
		Short: "Compare a variable of one station against a reference station",
		Long: `Compare the dependent variable of the input station with the reference
station on the dimension values both share. Prints the offset, mean and sample
standard deviation per shared row, the least squares fit of input against
reference and the distance between the stations.

With --resample both stations are first put on the same regular grid so that
their dimension values line up exactly.

Examples:
  profilegrid compare station_a.csv station_b.csv --dependent SALNTY --additive
  profilegrid compare station_a.csv station_b.csv --dependent OXYGEN --resample --step 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, a, f, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&f.dependent, "dependent", "", "variable to compare")
	cmd.Flags().StringVarP(&f.dimension, "dimension", "d", "", "dimension column (default from config)")
	cmd.Flags().BoolVar(&f.additive, "additive", false, "offset is input-reference instead of input/reference")
	cmd.Flags().BoolVar(&f.resample, "resample", false, "resample both stations onto a common grid first")
	cmd.Flags().Float64VarP(&f.step, "step", "s", 0, "grid step for --resample (default from config)")
	_ = cmd.MarkFlagRequired("dependent")
	return cmd
}

func runCompare(cmd *cobra.Command, a *app, f *compareFlags, inputPath, referencePath string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	dimension := f.dimension
	if dimension == "" {
		dimension = a.cfg.Comparison.Dimension
	}
	additive := f.additive || a.cfg.Comparison.Additive

	// 1. read both stations
	input, err := a.reader.ReadFile(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("read %v: %w", inputPath, err)
	}
	reference, err := a.reader.ReadFile(ctx, referencePath)
	if err != nil {
		return fmt.Errorf("read %v: %w", referencePath, err)
	}

	inputRecords, referenceRecords := input.Records, reference.Records
	if f.resample {
		opts := a.cfg.ResampleOptions()
		if f.step != 0 {
			opts.Step = f.step
		}
		inputRecords, err = gridRecords(ctx, input, dimension, f.dependent, opts)
		if err != nil {
			return fmt.Errorf("%v: %w", inputPath, err)
		}
		referenceRecords, err = gridRecords(ctx, reference, dimension, f.dependent, opts)
		if err != nil {
			return fmt.Errorf("%v: %w", referencePath, err)
		}
	}

	// 2. statistics on the shared rows
	res, err := station.Stats(inputRecords, referenceRecords, dimension, f.dependent, additive)
	if err != nil {
		return fmt.Errorf("compare %v: %w", f.dependent, err)
	}
	if !hasOffset(res) {
		fmt.Fprintln(out, "No comparison possible: fewer than 2 shared dimension values.")
		return nil
	}
	columns := []string{dimension, f.dependent, station.OffsetKey,
		f.dependent + station.MeanSuffix, f.dependent + station.StdevSuffix}
	if err := output.WriteRecordsCSV(out, res, columns, a.cfg.Output.Precision); err != nil {
		return err
	}

	// 3. fit and distance
	in, ref := station.Pairs(inputRecords, referenceRecords, dimension, f.dependent)
	slope, intercept, err := station.LinearFit(ref, in)
	switch {
	case err == nil:
		fmt.Fprintf(out, "fit: %v = %v * reference + %v\n", f.dependent, slope, intercept)
	case errors.Is(err, common.ErrInsufficientData), errors.Is(err, common.ErrDegenerateRange):
		fmt.Fprintf(out, "fit: not available (%v)\n", err)
	default:
		return err
	}

	lon1, lat1, ok1 := input.Position()
	lon2, lat2, ok2 := reference.Position()
	if ok1 && ok2 {
		fmt.Fprintf(out, "distance: %.3f km\n", station.HaversineDistance(lon1, lat1, lon2, lat2)/1000)
	}
	return nil
}

// gridRecords resamples one variable of table and returns one record per grid
// point where the variable is not masked.
func gridRecords(ctx context.Context, table *model.Table, dimension, dependent string,
	opts profile.Options) ([]model.Record, error) {
	p, err := table.Profile(dimension, dependent)
	if err != nil {
		return nil, err
	}
	res, err := profile.Resample(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	if len(res.Failures) > 0 {
		return nil, res.Failures[0].Err
	}
	records := []model.Record{}
	for _, r := range res.Records() {
		if !math.IsNaN(r.Value(dependent)) {
			records = append(records, r)
		}
	}
	return records, nil
}

func hasOffset(records []model.Record) bool {
	if len(records) == 0 {
		return false
	}
	_, ok := records[0].Values[station.OffsetKey]
	return ok
}
