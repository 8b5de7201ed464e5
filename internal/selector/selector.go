// Package selector preselects CAD meshes for a training dataset by file
// size and, optionally, by compactness.
package selector

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Options configures a Selector.
type Options struct {
	InputPath   string   // Directory holding the STL files (required)
	MaxFileSize *float64 // Largest accepted file, in MB (required)

	// MinCompactness enables the compactness stage when non-nil. A zero
	// threshold still rejects meshes whose compactness is undefined.
	MinCompactness *float64

	NumFiles int // Cap on returned files; 0 returns every qualifying file
	Workers  int // Parallel compactness evaluations; <= 1 is sequential
}

// Float returns a pointer to v, for the optional fields of Options.
func Float(v float64) *float64 {
	return &v
}

// Selector runs the size and compactness stages over a directory.
type Selector struct {
	opts   Options
	obs    Observer
	scorer Scorer
}

// Option customizes a Selector.
type Option func(*Selector)

// WithObserver sets the progress observer.
func WithObserver(obs Observer) Option {
	return func(s *Selector) {
		if obs != nil {
			s.obs = obs
		}
	}
}

// WithScorer replaces the STL compactness evaluator.
func WithScorer(sc Scorer) Option {
	return func(s *Selector) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// New validates opts without touching the filesystem.
func New(opts Options, options ...Option) (*Selector, error) {
	if opts.InputPath == "" {
		return nil, fmt.Errorf("%w: input path is required", ErrConfiguration)
	}
	if opts.MaxFileSize == nil {
		return nil, fmt.Errorf("%w: maximum file size is required", ErrConfiguration)
	}
	if *opts.MaxFileSize < 0 {
		return nil, fmt.Errorf("%w: maximum file size %v is negative", ErrConfiguration, *opts.MaxFileSize)
	}
	if c := opts.MinCompactness; c != nil && (*c < 0 || *c > 1) {
		return nil, fmt.Errorf("%w: minimum compactness %v outside [0, 1]", ErrConfiguration, *c)
	}
	if opts.NumFiles < 0 {
		return nil, fmt.Errorf("%w: file count %d is negative", ErrConfiguration, opts.NumFiles)
	}

	s := &Selector{
		opts:   opts,
		obs:    NopObserver(),
		scorer: Evaluator{},
	}
	for _, o := range options {
		o(s)
	}
	return s, nil
}

// Options returns the configuration the selector was built with.
func (s *Selector) Options() Options {
	return s.opts
}

// Result is the full outcome of a selection run.
type Result struct {
	// Candidates is the stage-one output: size-filtered, ascending by size.
	Candidates []Candidate
	// Scores holds the compactness of every candidate, or nil when the
	// compactness stage was disabled.
	Scores map[string]Score
	// Selected is the final ordered, capped selection.
	Selected []Candidate
}

// Paths returns the selected file paths in order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Selected))
	for i, c := range r.Selected {
		paths[i] = c.Path
	}
	return paths
}

// SelectModels returns the paths of the preselected models.
func (s *Selector) SelectModels(ctx context.Context) ([]string, error) {
	res, err := s.Select(ctx)
	if err != nil {
		return nil, err
	}
	return res.Paths(), nil
}

// Select scans the input directory and applies both stages. Every call
// re-reads the directory and re-scores the meshes.
func (s *Selector) Select(ctx context.Context) (*Result, error) {
	candidates, err := ScanSizes(s.opts.InputPath, *s.opts.MaxFileSize, s.obs)
	if err != nil {
		return nil, err
	}

	res := &Result{Candidates: candidates}
	survivors := candidates

	if s.opts.MinCompactness != nil {
		scores, err := s.scoreAll(ctx, candidates)
		if err != nil {
			return nil, err
		}

		threshold := *s.opts.MinCompactness
		res.Scores = make(map[string]Score, len(candidates))
		survivors = make([]Candidate, 0, len(candidates))
		for i, c := range candidates {
			res.Scores[c.Path] = scores[i]
			if scores[i].Passes(threshold) {
				survivors = append(survivors, c)
			}
		}
	}

	if n := s.opts.NumFiles; n > 0 && n < len(survivors) {
		survivors = survivors[:n]
	}
	res.Selected = append([]Candidate(nil), survivors...)

	s.obs.SelectionDone(len(candidates), len(res.Selected))
	return res, nil
}

// scoreAll evaluates every candidate. scores[i] belongs to candidates[i]
// regardless of the order in which workers finish.
func (s *Selector) scoreAll(ctx context.Context, candidates []Candidate) ([]Score, error) {
	scores := make([]Score, len(candidates))

	if s.opts.Workers <= 1 {
		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scores[i] = s.scorer.Evaluate(c.Path)
			s.obs.CompactnessEvaluated(c.Path, scores[i])
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = s.scorer.Evaluate(c.Path)
			s.obs.CompactnessEvaluated(c.Path, scores[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
