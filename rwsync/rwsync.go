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

// Package rwsync implements the per-node synchronizer that go-foldertree
// hangs off of every node in the tree: a readers/writers lock with a third
// waiting class, "clearers", who want to know that nobody is using or
// waiting to use the node at all.
//
// A plain sync.RWMutex cannot express this directly, for two reasons. First,
// we need a clearer to be woken only once every reader and writer -- active
// or merely queued -- has drained, which a bare RWMutex has no vocabulary
// for. Second, a naive condition-variable readers/writers lock reintroduces
// the starvation window between "the last reader left" and "a writer
// actually resumes running": if a new reader sneaks in during that window,
// a writer can wait forever behind a continuous stream of readers. This
// package closes that window with a "baton": when a thread releases the
// lock, it can pre-admit the next cohort (one writer, or some number of
// readers) so that a newly arriving thread of the other class cannot cut in
// line ahead of whoever was already waiting.
//
// Holding a Synchronizer in one of its three states means:
//
//	+---------+----------+------------+------------+
//	|         | Unlocked | Read-held  | Write-held |
//	+---------+----------+------------+------------+
//	|AcquireRead  |  Yes  |    Yes     |     No     |
//	|AcquireWrite |  Yes  |    No      |     No     |
//	|Drain        |  Yes  | (waits)    |  (waits)   |
//	+---------+----------+------------+------------+
//
// and Drain additionally waits out anyone merely *queued* for read or write
// access, not just active holders.
package rwsync

import "sync"

// Synchronizer is the per-node lock described above. The zero value is not
// ready to use; construct one with New.
type Synchronizer struct {
	mu sync.Mutex

	readersCV *sync.Cond
	writersCV *sync.Cond
	clearCV   *sync.Cond

	// rcount/wcount are the number of active holders; wcount is always 0 or 1.
	rcount, wcount int
	// rwait/wwait are the number of goroutines blocked trying to acquire.
	rwait, wwait int
	// change is the baton: positive means that many readers have been
	// pre-admitted, -1 means a single writer has, 0 means nobody has and the
	// next arrival of either class must contend normally.
	change int
	// cwait is set while a drainer is waiting on clearCV.
	cwait bool
}

// New returns a Synchronizer with no active or waiting holders.
func New() *Synchronizer {
	s := &Synchronizer{}
	s.readersCV = sync.NewCond(&s.mu)
	s.writersCV = sync.NewCond(&s.mu)
	s.clearCV = sync.NewCond(&s.mu)
	return s
}

// AcquireRead blocks until the calling goroutine holds read permission.
func (s *Synchronizer) AcquireRead() {
	s.mu.Lock()
	for (s.wcount > 0 || s.wwait > 0) && s.change <= 0 {
		s.rwait++
		s.readersCV.Wait()
		s.rwait--
	}
	s.rcount++
	if s.change > 0 {
		s.change--
		if s.change > 0 {
			// Cascade: wake the next pre-admitted reader in turn.
			s.readersCV.Signal()
		}
	}
	s.mu.Unlock()
}

// ReleaseRead relinquishes read permission previously granted by AcquireRead.
func (s *Synchronizer) ReleaseRead() {
	s.mu.Lock()
	s.rcount--
	if s.rcount == 0 && s.wwait > 0 {
		s.change = -1
		s.writersCV.Signal()
	} else if s.cwait {
		s.clearCV.Signal()
	}
	s.mu.Unlock()
}

// AcquireWrite blocks until the calling goroutine holds exclusive write
// permission.
func (s *Synchronizer) AcquireWrite() {
	s.mu.Lock()
	for s.rcount > 0 || s.wcount > 0 || s.change > 0 {
		s.wwait++
		s.writersCV.Wait()
		s.wwait--
	}
	s.wcount = 1
	s.change = 0
	s.mu.Unlock()
}

// ReleaseWrite relinquishes write permission previously granted by
// AcquireWrite.
func (s *Synchronizer) ReleaseWrite() {
	s.mu.Lock()
	s.wcount--
	if s.rwait > 0 {
		s.change = s.rwait
		s.readersCV.Signal()
	} else if s.wwait > 0 {
		s.change = -1
		s.writersCV.Signal()
	} else if s.cwait {
		s.clearCV.Signal()
	}
	s.mu.Unlock()
}

// Drain blocks until nobody holds or is waiting for permission on this
// node, then returns with the node's mutex held. The caller must call
// Unlock once it has finished the critical section that required the node
// to be quiescent (checking emptiness, detaching it from its parent,
// recursing into its own children, ...); no other AcquireRead, AcquireWrite
// or Drain call on this Synchronizer can proceed until then.
func (s *Synchronizer) Drain() {
	s.mu.Lock()
	for s.rcount+s.wcount+s.rwait+s.wwait > 0 {
		s.cwait = true
		s.clearCV.Wait()
		s.cwait = false
	}
}

// Unlock releases the mutex acquired by Drain.
func (s *Synchronizer) Unlock() {
	s.mu.Unlock()
}
