package ivbench

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/akmistry/intervalmap/intervalmap"
	"github.com/akmistry/intervalmap/internal/util"
)

const (
	defaultKeys      = 1 << 20
	defaultOps       = 100000
	defaultMaxLength = 4096
	defaultValues    = 8

	// Largest key space checked against a dense model.
	maxVerifyKeys = 1 << 24
)

var (
	ErrMismatch       = errors.New("map does not match model")
	ErrVerifyTooLarge = errors.New("key space too large to verify")
)

type Options struct {
	// Keys are drawn from [0, Keys).
	Keys      uint64
	Ops       int
	MaxLength uint64
	// Number of distinct values written. Value 0 is the start value.
	Values int
	Seed   int64

	// Check every operation against a dense model of the key space.
	Verify bool
}

func (o *Options) setDefaults() {
	util.SetDefaultIfZero(&o.Keys, defaultKeys)
	util.SetDefaultIfZero(&o.Ops, defaultOps)
	util.SetDefaultIfZero(&o.MaxLength, defaultMaxLength)
	util.SetDefaultIfZero(&o.Values, defaultValues)
	util.ClampMax(&o.MaxLength, o.Keys)
}

type Result struct {
	Sets           int
	EmptySets      int
	Gets           int
	Breakpoints    int
	MaxBreakpoints int
	Elapsed        time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("sets=%d (empty %d) gets=%d breakpoints=%d (max %d) elapsed=%v",
		r.Sets, r.EmptySets, r.Gets, r.Breakpoints, r.MaxBreakpoints, r.Elapsed)
}

// Run issues a random mix of Set and Get calls against |m|, which must start
// out mapping every key to 0.
func Run(m *intervalmap.Map[uint64, int], opts Options) (Result, error) {
	opts.setDefaults()
	if opts.Verify && opts.Keys > maxVerifyKeys {
		return Result{}, fmt.Errorf("%w: %d > %d", ErrVerifyTooLarge, opts.Keys, maxVerifyKeys)
	}

	var model []int
	if opts.Verify {
		model = make([]int, opts.Keys)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	var res Result
	startTime := time.Now()
	for i := 0; i < opts.Ops; i++ {
		if rng.Intn(4) == 0 {
			key := uint64(rng.Int63n(int64(opts.Keys)))
			v := m.Get(key)
			res.Gets++
			if model != nil && v != model[key] {
				return res, fmt.Errorf("%w: op %d Get(%d) %d != %d", ErrMismatch, i, key, v, model[key])
			}
			continue
		}

		from := uint64(rng.Int63n(int64(opts.Keys)))
		to := from + uint64(rng.Int63n(int64(opts.MaxLength)+1))
		if to > opts.Keys {
			to = opts.Keys
		}
		if rng.Intn(16) == 0 {
			// Inverted ranges are no-ops.
			from, to = to, from
		}
		value := rng.Intn(opts.Values)

		m.Set(from, to, value)
		res.Sets++
		if from >= to {
			res.EmptySets++
		}
		if m.Len() > res.MaxBreakpoints {
			res.MaxBreakpoints = m.Len()
		}

		if model == nil {
			continue
		}
		for k := from; k < to; k++ {
			model[k] = value
		}
		if err := verify(m, model, from, to); err != nil {
			return res, fmt.Errorf("op %d Set(%d, %d, %d): %w", i, from, to, value, err)
		}
	}
	res.Elapsed = time.Since(startTime)
	res.Breakpoints = m.Len()

	slog.Debug("ivbench.Run() done", "ops", opts.Ops, "keys", opts.Keys, "result", res)
	return res, nil
}

// Checks canonical form, and that the keys around [from, to) match the model.
func verify(m *intervalmap.Map[uint64, int], model []int, from, to uint64) error {
	if err := m.Check(); err != nil {
		return err
	}

	lo := uint64(0)
	if from > 1 {
		lo = from - 2
	}
	hi := to + 2
	if hi > uint64(len(model)) {
		hi = uint64(len(model))
	}
	for k := lo; k < hi; k++ {
		if v := m.Get(k); v != model[k] {
			return fmt.Errorf("%w: Get(%d) %d != %d", ErrMismatch, k, v, model[k])
		}
	}
	return nil
}
