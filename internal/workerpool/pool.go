// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package workerpool provides a bounded-concurrency task pool used to run
// independent units of proving work in parallel; internal/recursion runs
// its base-layer batches and 2-to-1 reduce steps through it (spec.md §5
// "Concurrency & Resource Model"). Grounded on the teacher's
// threshold/client.go, whose ThresholdClient drives independent MPC rounds
// across a pool.Pool of workers; this package generalizes that shape beyond
// MPC rounds to arbitrary proving tasks.
package workerpool

import (
	"context"
	"sync"
)

// Pool runs tasks with bounded concurrency.
type Pool struct {
	sem chan struct{}
}

// New creates a pool allowing at most maxConcurrency tasks to run at once.
// A non-positive value means unbounded concurrency.
func New(maxConcurrency int) *Pool {
	if maxConcurrency <= 0 {
		return &Pool{}
	}
	return &Pool{sem: make(chan struct{}, maxConcurrency)}
}

// Task is a unit of proving work; it returns an error, which Run collects.
type Task func(ctx context.Context) error

// Run executes every task, respecting the pool's concurrency bound, and
// returns one error per task (nil on success), in task order, after all
// tasks complete.
// Matches spec.md §5's "the whole prove call is treated as a single
// non-cancellable unit whose only exit is success, failure... or a caught
// panic from a worker (reported as InternalError)" by recovering panics
// from each task and converting them into errors rather than crashing the
// process.
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		i, task := i, task
		run := func() {
			defer wg.Done()
			if p.sem != nil {
				p.sem <- struct{}{}
				defer func() { <-p.sem }()
			}
			errs[i] = runRecovered(ctx, task)
		}
		go run()
	}
	wg.Wait()
	return errs
}

func runRecovered(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Recovered: r}
		}
	}()
	return task(ctx)
}

// PanicError wraps a recovered panic from a worker task, surfaced at the
// host API boundary as InternalError (spec.md §7).
type PanicError struct {
	Recovered interface{}
}

func (e *PanicError) Error() string {
	return "workerpool: worker panicked"
}
