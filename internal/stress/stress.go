// Package stress drives a B-tree through long operation sequences and checks
// it against a skip list model after every step.
package stress

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/vchandela/btree/btree"
	"github.com/vchandela/btree/internal/skiplist"
)

var (
	// ErrMismatch reports a disagreement between the tree and the model.
	ErrMismatch = errors.New("tree diverged from reference model")
	ErrNoKeys   = errors.New("no keys to run with")
)

// Config tunes a run.
type Config struct {
	Degree   int
	MaxNodes int
	// CheckEvery runs a full Verify and model comparison every that many
	// operations. Zero checks only at phase boundaries.
	CheckEvery int
	// RandomOps is the length of the mixed phase that toggles random keys.
	RandomOps int
	Seed      int64
}

// Report summarises a finished run.
type Report struct {
	Keys      int
	Ops       int
	Checks    int
	MaxHeight int
	Height    int
	Nodes     int
	Duration  time.Duration
}

type runner[K cmp.Ordered] struct {
	cfg    Config
	tree   *btree.Btree[K]
	model  *skiplist.SkipList[K]
	log    zerolog.Logger
	report Report
}

/*
Run executes the reinsertion scenario over keys and then a mixed phase:
  - insert every key and confirm each one is found,
  - for every key in order, delete it, confirm it is gone, reinsert it and
    confirm it is back,
  - toggle RandomOps randomly chosen keys (delete when present, insert when absent).

Every operation is mirrored into a skip list and both answers must agree.
*/
func Run[K cmp.Ordered](ctx context.Context, cfg Config, keys []K, log zerolog.Logger) (Report, error) {
	if len(keys) == 0 {
		return Report{}, ErrNoKeys
	}
	opts := []btree.Option{btree.WithLogger(log)}
	if cfg.Degree > 0 {
		opts = append(opts, btree.WithDegree(cfg.Degree))
	}
	if cfg.MaxNodes > 0 {
		opts = append(opts, btree.WithMaxNodes(cfg.MaxNodes))
	}
	r := &runner[K]{
		cfg:   cfg,
		tree:  btree.New[K](opts...),
		model: skiplist.New[K](cfg.Seed),
		log:   log.With().Str("component", "stress").Logger(),
	}
	r.report.Keys = len(keys)

	start := time.Now()
	err := r.run(ctx, keys)
	r.report.Duration = time.Since(start)
	r.report.Height = r.tree.Height()
	r.report.Nodes = r.tree.Nodes()
	if err != nil {
		return r.report, err
	}
	r.log.Info().
		Int("keys", r.report.Keys).
		Int("ops", r.report.Ops).
		Int("checks", r.report.Checks).
		Int("height", r.report.Height).
		Dur("took", r.report.Duration).
		Msg("stress run passed")
	return r.report, nil
}

func (r *runner[K]) run(ctx context.Context, keys []K) error {
	r.log.Debug().Int("keys", len(keys)).Int("degree", r.tree.Degree()).Msg("insert phase")
	for _, k := range keys {
		if err := r.insert(k); err != nil {
			return err
		}
	}
	if err := r.check(); err != nil {
		return fmt.Errorf("after insert phase: %w", err)
	}
	for _, k := range keys {
		if !r.tree.Has(k) {
			return fmt.Errorf("%w: inserted key %v not found", ErrMismatch, k)
		}
	}

	r.log.Debug().Msg("reinsert phase")
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.delete(k); err != nil {
			return err
		}
		if r.tree.Has(k) {
			return fmt.Errorf("%w: deleted key %v still found", ErrMismatch, k)
		}
		if err := r.insert(k); err != nil {
			return err
		}
		if !r.tree.Has(k) {
			return fmt.Errorf("%w: reinserted key %v not found", ErrMismatch, k)
		}
	}
	if err := r.check(); err != nil {
		return fmt.Errorf("after reinsert phase: %w", err)
	}

	if r.cfg.RandomOps > 0 {
		r.log.Debug().Int("ops", r.cfg.RandomOps).Msg("mixed phase")
		rnd := rand.New(rand.NewSource(r.cfg.Seed))
		for i := 0; i < r.cfg.RandomOps; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			k := keys[rnd.Intn(len(keys))]
			var err error
			if r.model.Contains(k) {
				err = r.delete(k)
			} else {
				err = r.insert(k)
			}
			if err != nil {
				return err
			}
		}
		if err := r.check(); err != nil {
			return fmt.Errorf("after mixed phase: %w", err)
		}
	}
	return nil
}

func (r *runner[K]) insert(k K) error {
	inserted, err := r.tree.Insert(k)
	if err != nil {
		return err
	}
	if want := r.model.Insert(k); inserted != want {
		return fmt.Errorf("%w: insert %v returned %t, model %t", ErrMismatch, k, inserted, want)
	}
	return r.step()
}

func (r *runner[K]) delete(k K) error {
	removed := r.tree.Delete(k)
	if want := r.model.Delete(k); removed != want {
		return fmt.Errorf("%w: delete %v returned %t, model %t", ErrMismatch, k, removed, want)
	}
	return r.step()
}

func (r *runner[K]) step() error {
	r.report.Ops++
	if h := r.tree.Height(); h > r.report.MaxHeight {
		r.report.MaxHeight = h
	}
	if r.cfg.CheckEvery > 0 && r.report.Ops%r.cfg.CheckEvery == 0 {
		if err := r.check(); err != nil {
			return fmt.Errorf("after %d ops: %w", r.report.Ops, err)
		}
	}
	return nil
}

// check runs the full invariant walk and compares contents with the model.
func (r *runner[K]) check() error {
	r.report.Checks++
	if err := r.tree.Verify(); err != nil {
		return err
	}
	if got, want := r.tree.Len(), r.model.Len(); got != want {
		return fmt.Errorf("%w: tree holds %d keys, model %d", ErrMismatch, got, want)
	}
	if !slices.Equal(r.tree.Keys(), r.model.Keys()) {
		return fmt.Errorf("%w: in-order keys differ", ErrMismatch)
	}
	return nil
}
