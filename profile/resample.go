package profile

import (
	"context"
	"fmt"

	"github.com/uyouii/ocean-profiles/common"
	"github.com/uyouii/ocean-profiles/model"
	"github.com/uyouii/ocean-profiles/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Step       float64
	Method     model.InterpMethod
	Thresholds model.Thresholds

	// skip gap masking, interpolated values are returned as is
	DisableGapMask bool

	// Grid overrides the generated grid, e.g. the grid of another station.
	Grid []float64

	// number of variables resampled concurrently
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Step:       DefaultStep,
		Method:     model.InterpPchip,
		Thresholds: model.DefaultThresholds(),
		Workers:    DefaultWorkers,
	}
}

func (o Options) Validate() error {
	if len(o.Grid) == 0 {
		if err := checkStep(o.Step); err != nil {
			return err
		}
	} else if !isAscending(o.Grid) {
		return fmt.Errorf("grid: %w", common.ErrUnsorted)
	}
	if !o.Method.Valid() {
		return fmt.Errorf("interpolation method %q: %w", o.Method, common.ErrorInvalidValue)
	}
	if !o.DisableGapMask {
		if err := o.Thresholds.Validate(); err != nil {
			return err
		}
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers %v: %w", o.Workers, common.ErrorInvalidValue)
	}
	return nil
}

type variableResult struct {
	variable model.Variable
	masked   int
	err      error
}

// Resample interpolates every variable of p onto one regular grid and masks
// values inside sampling gaps. A variable that cannot be resampled is reported
// in Failures and does not affect the others.
func Resample(ctx context.Context, p *model.Profile, opts Options) (*model.ResampledProfile, error) {
	logger := utils.GetLogger(ctx)

	if p == nil {
		return nil, fmt.Errorf("nil profile: %w", common.ErrorInvalidValue)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("resample options: %w", err)
	}

	// 1. build the grid
	grid := opts.Grid
	if len(grid) == 0 {
		var err error
		grid, err = GridFor(p.X, opts.Step)
		if err != nil {
			logger.Error("generate grid failed", zap.String("profile", p.DebugString()), zap.Error(err))
			return nil, err
		}
	}

	// 2. resample each variable on its own
	results := make([]variableResult, len(p.Variables))
	g := errgroup.Group{}
	g.SetLimit(opts.Workers)
	for i, v := range p.Variables {
		i, v := i, v
		g.Go(func() error {
			results[i] = resampleVariable(ctx, p.X, v, grid, opts)
			return nil
		})
	}
	_ = g.Wait()

	// 3. collect
	res := &model.ResampledProfile{
		Dimension:     p.Dimension,
		DimensionUnit: p.DimensionUnit,
		Grid:          grid,
		Variables:     make([]model.Variable, 0, len(results)),
		Signature:     p.Signature,
		FileType:      p.FileType,
		Comments:      p.Comments,
	}
	for _, r := range results {
		if r.err != nil {
			logger.Warn("skip variable", zap.String("variable", r.variable.Name), zap.Error(r.err))
			res.Failures = append(res.Failures, model.VariableFailure{Name: r.variable.Name, Err: r.err})
			continue
		}
		res.Variables = append(res.Variables, r.variable)
	}

	logger.Info("resample profile done", zap.String("result", res.DebugString()))
	return res, nil
}

func resampleVariable(ctx context.Context, x []float64, v model.Variable,
	grid []float64, opts Options) (res variableResult) {
	logger := utils.GetLogger(ctx)
	res.variable = model.Variable{Name: v.Name, Unit: v.Unit}

	defer func() {
		if err := recover(); err != nil {
			logger.Error("resampleVariable recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.String("variable", v.Name))
			res.err = fmt.Errorf("variable %v: panic: %v", v.Name, err)
		}
	}()

	xs, ys, err := CleanSeries(x, v.Values)
	if err != nil {
		res.err = fmt.Errorf("variable %v: %w", v.Name, err)
		return res
	}

	values, err := interpolateClean(opts.Method, xs, ys, grid)
	if err != nil {
		res.err = fmt.Errorf("variable %v: %w", v.Name, err)
		return res
	}

	if !opts.DisableGapMask {
		gaps, err := FindGaps(xs, opts.Thresholds)
		if err != nil {
			res.err = fmt.Errorf("variable %v: %w", v.Name, err)
			return res
		}
		_, values, res.masked = MaskIntervals(grid, values, gaps)
		if len(gaps) > 0 {
			logger.Debug("mask sampling gaps", zap.String("variable", v.Name),
				zap.Int("gaps", len(gaps)), zap.Int("masked", res.masked))
		}
	}

	res.variable.Values = values
	return res
}
