package bill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/raterudder/tariffcalc/pkg/log"
	"github.com/raterudder/tariffcalc/pkg/numeric"
	"github.com/raterudder/tariffcalc/pkg/types"
)

// InvertOptions controls the consumption search. Zero values select the
// defaults of 0.01 tolerance and 60 bisection steps.
type InvertOptions struct {
	Tolerance     float64
	MaxIterations int
}

// InvertBillToKWh estimates consumption from a bill amount using the
// published tariffs.
func InvertBillToKWh(year, category string, target float64, opts InvertOptions) (float64, error) {
	return defaultCalculator.InvertBillToKWh(year, category, target, opts)
}

// InvertBillToKWh estimates the consumption whose bill total is within the
// tolerance of target. A target <= 0 returns 0 without calculating a bill.
// When the search runs out of iterations the best estimate is returned
// without error.
func (c *Calculator) InvertBillToKWh(year, category string, target float64, opts InvertOptions) (float64, error) {
	if target <= 0 {
		return 0, nil
	}
	if _, err := c.table.Lookup(year); err != nil {
		return 0, err
	}
	cat, err := types.ParseCategory(category)
	if err != nil {
		return 0, err
	}
	kwh, _, err := c.invert(year, cat, target, opts)
	return kwh, err
}

func (c *Calculator) invert(year string, category types.Category, target float64, opts InvertOptions) (float64, int, error) {
	var evaluations int
	kwh, err := numeric.Invert(func(kwh float64) (float64, error) {
		evaluations++
		res, err := c.Calculate(year, category, kwh)
		if err != nil {
			return 0, err
		}
		return res.Total, nil
	}, target, numeric.Options{
		Tolerance:     opts.Tolerance,
		MaxIterations: opts.MaxIterations,
	})
	if errors.Is(err, numeric.ErrNotBracketed) {
		return 0, evaluations, fmt.Errorf("%w: unable to estimate kWh for this bill amount: %w", types.ErrSearchBound, err)
	}
	return kwh, evaluations, err
}

// Estimate is the consumption estimated from a bill amount together with the
// itemized bill at that consumption.
type Estimate struct {
	Target float64          `json:"target"`
	KWH    float64          `json:"kwh"`
	Bill   types.BillResult `json:"bill"`
}

// Estimate inverts target to a consumption and recalculates the bill at that
// consumption. A target <= 0 yields the bill for zero consumption.
func (c *Calculator) Estimate(ctx context.Context, year string, category types.Category, target float64, opts InvertOptions) (Estimate, error) {
	var (
		kwh         float64
		evaluations int
	)
	if target > 0 {
		if _, err := c.table.Lookup(year); err != nil {
			return Estimate{}, err
		}
		var err error
		kwh, evaluations, err = c.invert(year, category, target, opts)
		if err != nil {
			return Estimate{}, err
		}
	}

	res, err := c.Calculate(year, category, kwh)
	if err != nil {
		return Estimate{}, err
	}
	log.Ctx(ctx).DebugContext(
		ctx,
		"estimated consumption from bill amount",
		slog.String("year", year),
		slog.String("category", category.String()),
		slog.Float64("target", target),
		slog.Float64("kwh", kwh),
		slog.Float64("total", res.Total),
		slog.Int("evaluations", evaluations),
	)
	return Estimate{
		Target: target,
		KWH:    kwh,
		Bill:   res,
	}, nil
}

// Info describes the years and categories the calculator supports.
func (c *Calculator) Info() types.TariffInfo {
	return types.TariffInfo{
		Years:      c.table.Years(),
		Categories: types.Categories(),
		Currency:   types.Currency,
	}
}
