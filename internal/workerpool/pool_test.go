// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAllSucceed(t *testing.T) {
	p := New(2)
	var counter int64
	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			atomic.AddInt64(&counter, 1)
			return nil
		}
	}
	errs := p.Run(context.Background(), tasks)
	for _, e := range errs {
		require.NoError(t, e)
	}
	require.EqualValues(t, 10, counter)
}

func TestRunCollectsErrors(t *testing.T) {
	p := New(0)
	boom := errors.New("boom")
	tasks := []Task{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
	}
	errs := p.Run(context.Background(), tasks)
	require.NoError(t, errs[0])
	require.ErrorIs(t, errs[1], boom)
}

func TestRunRecoversPanics(t *testing.T) {
	p := New(1)
	tasks := []Task{
		func(ctx context.Context) error { panic("worker exploded") },
	}
	errs := p.Run(context.Background(), tasks)
	require.Error(t, errs[0])
	var panicErr *PanicError
	require.ErrorAs(t, errs[0], &panicErr)
}
