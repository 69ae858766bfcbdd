package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/tariffcalc/pkg/bill"
	"github.com/raterudder/tariffcalc/pkg/log"
	"github.com/raterudder/tariffcalc/pkg/render"
	"github.com/raterudder/tariffcalc/pkg/types"
)

// query is a single invocation: either a bill from consumption or a
// consumption estimate from a bill amount.
type query struct {
	year          string
	category      string
	kwh           string
	amount        string
	tolerance     string
	maxIterations string
	list          bool
}

func configuredQuery() *query {
	q := &query{}
	year := lflag.String("year", "2026", "Tariff year")
	category := lflag.String("category", "Residential", "Customer category (see -list)")
	kwh := lflag.String("kwh", "", "Consumption in kWh to calculate a bill for")
	amount := lflag.String("amount", "", "Bill total to estimate consumption from")
	tolerance := lflag.String("tolerance", "", "Accepted difference between the estimated bill and -amount (default 0.01)")
	maxIterations := lflag.String("max-iterations", "", "Maximum search steps when estimating consumption (default 60)")
	list := lflag.Bool("list", false, "List supported tariff years and customer categories")

	lflag.Do(func() {
		q.year = *year
		q.category = *category
		q.kwh = *kwh
		q.amount = *amount
		q.tolerance = *tolerance
		q.maxIterations = *maxIterations
		q.list = *list
	})

	return q
}

func parseNumber(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid -%s %q", types.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func (q *query) options() (bill.InvertOptions, error) {
	var opts bill.InvertOptions
	if q.tolerance != "" {
		v, err := parseNumber("tolerance", q.tolerance)
		if err != nil {
			return opts, err
		}
		if v <= 0 {
			return opts, fmt.Errorf("%w: -tolerance must be positive", types.ErrInvalidInput)
		}
		opts.Tolerance = v
	}
	if q.maxIterations != "" {
		v, err := strconv.Atoi(q.maxIterations)
		if err != nil || v <= 0 {
			return opts, fmt.Errorf("%w: -max-iterations must be a positive integer", types.ErrInvalidInput)
		}
		opts.MaxIterations = v
	}
	return opts, nil
}

func (q *query) run(ctx context.Context, c *bill.Calculator, r *render.Renderer) error {
	if q.list {
		return r.Info(c.Info())
	}

	switch {
	case q.kwh != "" && q.amount != "":
		return fmt.Errorf("%w: -kwh and -amount are mutually exclusive", types.ErrInvalidInput)
	case q.kwh != "":
		kwh, err := parseNumber("kwh", q.kwh)
		if err != nil {
			return err
		}
		res, err := c.CalculateBill(q.year, q.category, kwh)
		if err != nil {
			return err
		}
		log.Ctx(ctx).DebugContext(
			ctx,
			"calculated bill",
			slog.String("year", res.Year),
			slog.String("category", res.Category.String()),
			slog.Float64("kwh", res.KWH),
			slog.Float64("total", res.Total),
		)
		return r.Bill(res)
	case q.amount != "":
		amount, err := parseNumber("amount", q.amount)
		if err != nil {
			return err
		}
		opts, err := q.options()
		if err != nil {
			return err
		}
		cat, err := types.ParseCategory(q.category)
		if err != nil {
			return err
		}
		est, err := c.Estimate(ctx, q.year, cat, amount, opts)
		if err != nil {
			return err
		}
		return r.Estimate(est)
	default:
		return fmt.Errorf("%w: one of -kwh or -amount is required", types.ErrInvalidInput)
	}
}
