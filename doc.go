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

// Package foldertree implements a concurrent, in-memory hierarchy of named
// folders supporting four operations -- List, Create, Remove and Move --
// from any number of goroutines at once.
//
// A folder tree is a degenerate case of the more general problem
// package rwsync solves: granting a thread read or write access to one node
// of a tree while still letting unrelated threads work on disjoint subtrees
// in parallel. Every node owns a rwsync.Synchronizer; every operation walks
// down from the root acquiring permission hand-over-hand, releasing a
// node's permission only once its child's has been acquired, so the path
// from root to wherever an operation is currently working can never be
// structurally altered out from under it.
//
// Three of the four operations are straightforward applications of that
// discipline:
//
//   - List descends read-only and snapshots the target's children.
//   - Create descends read-only to the target's parent, write-locks it, and
//     inserts a new empty node.
//   - Remove descends read-only to the target's parent, write-locks it,
//     then directly drains the target node (waiting out every reader,
//     writer, and waiter already inside it) before unlinking it -- which is
//     safe only because the parent's writer lock stops anyone new from
//     reaching the target in the meantime.
//
// Move is the interesting one, because its lock set isn't a single root-to-
// leaf chain: it needs write access at both the moved folder's old parent
// and its new parent simultaneously, and those two parents can be anywhere
// relative to one another. It finds the lowest common ancestor (LCA) of the
// two parent paths, write-locks the LCA, descends from there to each
// endpoint (releasing the LCA only once both endpoints are independently
// write-held, since nothing can re-enter either branch without re-passing
// through the LCA first), then recursively drains the entire subtree being
// moved -- not just its root -- before re-parenting it. See SPEC_FULL.md
// for the full protocol and DESIGN.md for how each part of it traces back
// to jk-89/file-system's original C implementation.
package foldertree
