package conformance

import (
	"addy/classdef"
	"addy/oop"
	"addy/types"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	File       string
	Suite      string
	Test       TestCase
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance suites
type Runner struct {
	filters []string
	workers int
	logger  *slog.Logger
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithFilters keeps only the tests whose name, or whose suite's name,
// matches one of the glob patterns
func WithFilters(patterns ...string) RunnerOption {
	return func(r *Runner) {
		r.filters = append(r.filters, patterns...)
	}
}

// WithWorkers bounds how many suites RunAll runs at once
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger for test progress (Debug) and broken suites
// (Warn). The registries created for the suites log through it as well.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a test runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return r
}

func (r *Runner) selected(suite, test string) bool {
	if len(r.filters) == 0 {
		return true
	}
	for _, pattern := range r.filters {
		if ok, _ := filepath.Match(pattern, test); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, suite); ok {
			return true
		}
	}
	return false
}

// RunSuite runs the selected tests of a suite in order, against a fresh
// registry holding the suite's classes
func (r *Runner) RunSuite(ls LoadedSuite) []TestResult {
	reg := oop.NewRegistry(oop.WithLogger(r.logger))
	doc := classdef.Document{Classes: ls.Suite.Classes}
	_, defErr := doc.Define(reg)
	if defErr != nil {
		r.logger.Warn("suite classes failed to load", "file", ls.File, "err", defErr)
	}
	disp := oop.NewDispatcher(reg, nil)

	var results []TestResult
	for _, tc := range ls.Suite.Tests {
		if !r.selected(ls.Suite.Name, tc.Name) {
			continue
		}
		res := TestResult{File: ls.File, Suite: ls.Suite.Name, Test: tc}
		if skipped, reason := tc.IsSkipped(); skipped {
			res.Skipped = true
			res.SkipReason = reason
		} else if defErr != nil {
			res.Error = fmt.Errorf("suite classes: %w", defErr)
		} else {
			res.Error = r.runTest(reg, disp, tc)
			res.Passed = res.Error == nil
		}
		r.logger.Debug("test finished", "file", ls.File, "test", tc.Name,
			"passed", res.Passed, "skipped", res.Skipped)
		results = append(results, res)
	}
	return results
}

// RunAll runs the suites concurrently, bounded by the worker count.
// Results keep the order of suites.
func (r *Runner) RunAll(ctx context.Context, suites []LoadedSuite) ([]TestResult, error) {
	perSuite := make([][]TestResult, len(suites))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, s := range suites {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perSuite[i] = r.RunSuite(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []TestResult
	for _, rs := range perSuite {
		results = append(results, rs...)
	}
	return results, nil
}

func (r *Runner) runTest(reg *oop.Registry, disp *oop.Dispatcher, tc TestCase) error {
	var subject types.Value
	if !tc.Subject.IsZero() {
		v, err := tc.Subject.Decode(reg)
		if err != nil {
			return fmt.Errorf("subject: %w", err)
		}
		subject = v
	}

	for i, step := range tc.Before {
		operands, err := operands(reg, step, subject)
		if err != nil {
			return fmt.Errorf("before step %d: %w", i+1, err)
		}
		if _, err := apply(reg, disp, step, operands); err != nil {
			return fmt.Errorf("before step %d (%s): %w", i+1, step.Op, err)
		}
	}

	ops, err := operands(reg, tc.Step, subject)
	if err != nil {
		return err
	}
	result, err := apply(reg, disp, tc.Step, ops)
	return checkExpectation(reg, tc.Expect, result, err)
}

// operands decodes the arguments of step, after the subject if any.
// Failures here are broken tests, never the outcome under test.
func operands(reg *oop.Registry, step Step, subject types.Value) ([]types.Value, error) {
	var ops []types.Value
	if subject != nil {
		ops = append(ops, subject)
	}
	for i, arg := range step.Args {
		v, err := arg.Decode(reg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %v", i+1, err)
		}
		ops = append(ops, v)
	}
	return ops, nil
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the result matches the expected outcome
func checkExpectation(reg *oop.Registry, expect Expectation, result types.Value, err error) error {
	if expect.Error != "" {
		code, ok := types.ErrorFromString(expect.Error)
		if !ok {
			return fmt.Errorf("unknown error code: %s", expect.Error)
		}
		if err == nil {
			return fmt.Errorf("expected error %s, got value: %q", expect.Error, render(result))
		}
		if got := types.CodeOf(err); got != code {
			return fmt.Errorf("expected error %s, got %s (%v)", expect.Error, got.String(), err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	if result == nil {
		result = types.Void
	}

	if !expect.Value.IsZero() {
		want, err := expect.Value.Decode(reg)
		if err != nil {
			return fmt.Errorf("failed to convert expected value: %v", err)
		}
		if !sameValue(want, result) {
			return fmt.Errorf("expected %s %q, got %s %q", want.Kind(), render(want), result.Kind(), render(result))
		}
	}

	if expect.Kind != "" {
		kind, ok := types.KindFromString(expect.Kind)
		if !ok {
			return fmt.Errorf("unknown kind: %s", expect.Kind)
		}
		if result.Kind() != kind {
			return fmt.Errorf("expected kind %s, got %s", kind, result.Kind())
		}
	}

	if expect.String != nil && result.String() != *expect.String {
		return fmt.Errorf("expected rendering %q, got %q", *expect.String, result.String())
	}

	if expect.Match != "" {
		re, err := regexp.Compile(expect.Match)
		if err != nil {
			return fmt.Errorf("bad match pattern: %v", err)
		}
		if !re.MatchString(result.String()) {
			return fmt.Errorf("%q does not match %s", result.String(), expect.Match)
		}
	}
	return nil
}

// sameValue is Equals restricted to the same kind. Objects compare by
// identity, so an expected object literal is matched by its rendering.
func sameValue(want, got types.Value) bool {
	if w, ok := want.(*types.ObjValue); ok {
		g, ok := got.(*types.ObjValue)
		return ok && g.Class() == w.Class() && g.String() == w.String()
	}
	return want.Kind() == got.Kind() && types.Equals(want, got)
}

func render(v types.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
