// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package foldertree

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentCreateExactlyOneWins spawns k goroutines that all try to
// create the same folder; exactly one must succeed and the rest must see
// ErrExist, and the final listing must contain the name exactly once.
func TestConcurrentCreateExactlyOneWins(t *testing.T) {
	const k = 32
	tr := New()

	var successes int64
	var existCount int64

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < k; i++ {
		g.Go(func() error {
			err := tr.Create("/x/")
			switch err {
			case nil:
				atomic.AddInt64(&successes, 1)
			case ErrExist:
				atomic.AddInt64(&existCount, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, withDeadline(t, g.Wait))

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, k-1, existCount)

	listing, ok := tr.List("/")
	require.True(t, ok)
	assert.Equal(t, 1, strings.Count(listing, "x"))
	assert.Equal(t, "x", listing)
}

// TestConcurrentRemoveExactlyOneWins mirrors the create case for Remove on
// an existing, empty node.
func TestConcurrentRemoveExactlyOneWins(t *testing.T) {
	const k = 32
	tr := New()
	require.NoError(t, tr.Create("/x/"))

	var successes int64
	var notExistCount int64

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < k; i++ {
		g.Go(func() error {
			err := tr.Remove("/x/")
			switch err {
			case nil:
				atomic.AddInt64(&successes, 1)
			case ErrNotExist:
				atomic.AddInt64(&notExistCount, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, withDeadline(t, g.Wait))

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, k-1, notExistCount)
}

// TestConcurrentListDuringMoveNeverSeesBothPlaces drives a reader that
// repeatedly lists /a/b/ concurrently with a writer moving /a/b/c/ to
// /a/d/c/ (after pre-creating /a/d/). No observation may ever show "c" in
// both places. The reader lists /a/d/ before /a/b/: once "c" has been seen
// under /a/d/, the move is complete, so a later listing of /a/b/ must not
// show it.
func TestConcurrentListDuringMoveNeverSeesBothPlaces(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Create("/a/"))
	require.NoError(t, tr.Create("/a/b/"))
	require.NoError(t, tr.Create("/a/b/c/"))
	require.NoError(t, tr.Create("/a/d/"))

	stop := make(chan struct{})
	var violations int64

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		for {
			select {
			case <-stop:
				return nil
			default:
			}
			dListing, dOk := tr.List("/a/d/")
			bListing, bOk := tr.List("/a/b/")
			inB := bOk && strings.Contains(bListing, "c")
			inD := dOk && strings.Contains(dListing, "c")
			if inB && inD {
				atomic.AddInt64(&violations, 1)
			}
		}
	})
	g.Go(func() error {
		defer close(stop)
		return tr.Move("/a/b/c/", "/a/d/c/")
	})

	require.NoError(t, withDeadline(t, g.Wait))
	assert.Zero(t, violations)

	dListing, ok := tr.List("/a/d/")
	require.True(t, ok)
	assert.Contains(t, dListing, "c")
}

// TestHighConcurrencyMixedWorkloadTerminates hammers a small tree with a
// random mix of every operation from many goroutines and simply requires
// that all of them return -- spec's "no operation deadlocks" property --
// the way go-ilock's own benchmarkLocking drove its Mutex with a randomized
// concurrent workload.
func TestHighConcurrencyMixedWorkloadTerminates(t *testing.T) {
	const goroutines = 40
	const opsPerGoroutine = 100

	tr := New()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, tr.Create("/"+name+"/"))
	}

	g, _ := errgroup.WithContext(context.Background())
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i := 0; i < goroutines; i++ {
		idx := i
		g.Go(func() error {
			for j := 0; j < opsPerGoroutine; j++ {
				n := names[(idx+j)%len(names)]
				switch j % 4 {
				case 0:
					tr.List("/" + n + "/")
				case 1:
					tr.Create("/" + n + "/")
				case 2:
					tr.Remove("/" + n + "/")
				case 3:
					other := names[(idx+j+1)%len(names)]
					tr.Move("/"+n+"/", "/"+other+"/"+n+"/")
				}
			}
			return nil
		})
	}

	require.NoError(t, withDeadline(t, g.Wait))
}

// withDeadline runs fn and fails the test if it doesn't return within a
// generous bound, surfacing a deadlock as a test failure instead of a hung
// test binary.
func withDeadline(t *testing.T, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(30 * time.Second):
		t.Fatal("operation did not complete: suspected deadlock")
		return nil
	}
}
