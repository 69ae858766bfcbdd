// Package numeric inverts monotone functions.
package numeric

import (
	"errors"
	"math"
)

// ErrNotBracketed is returned when the search bound is exceeded before the
// evaluator reaches the target.
var ErrNotBracketed = errors.New("target not bracketed within search bound")

// Default search parameters.
const (
	DefaultTolerance     = 0.01
	DefaultMaxIterations = 60
	DefaultInitialHigh   = 1.0
	DefaultUpperBound    = 1_000_000.0
)

// Evaluator computes a value that is monotonically non-decreasing in x for
// x >= 0.
type Evaluator func(x float64) (float64, error)

// Options controls Invert. Zero values select the defaults.
type Options struct {
	// Tolerance is the largest accepted |eval(x) - target|. It is advisory:
	// Invert returns its best estimate when MaxIterations is exhausted.
	Tolerance float64
	// MaxIterations caps the number of bisection steps.
	MaxIterations int
	// InitialHigh is the first upper end of the bracket.
	InitialHigh float64
	// UpperBound is the largest upper end the bracket may grow to.
	UpperBound float64
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.InitialHigh <= 0 {
		o.InitialHigh = DefaultInitialHigh
	}
	if o.UpperBound <= 0 {
		o.UpperBound = DefaultUpperBound
	}
	return o
}

// Invert finds x >= 0 with eval(x) close to target. The bracket [0, hi] is
// grown by doubling hi until eval(hi) >= target and is then bisected. A
// target <= 0 returns 0 without calling eval. Monotonicity of eval is assumed,
// not checked.
func Invert(eval Evaluator, target float64, opts Options) (float64, error) {
	if target <= 0 {
		return 0, nil
	}
	opts = opts.withDefaults()

	lo, hi := 0.0, opts.InitialHigh
	for {
		v, err := eval(hi)
		if err != nil {
			return 0, err
		}
		if v >= target {
			break
		}
		hi *= 2
		if hi > opts.UpperBound {
			return 0, ErrNotBracketed
		}
	}

	for i := 0; i < opts.MaxIterations; i++ {
		mid := (lo + hi) / 2
		v, err := eval(mid)
		if err != nil {
			return 0, err
		}
		diff := v - target
		if math.Abs(diff) <= opts.Tolerance {
			return mid, nil
		}
		if diff < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}
