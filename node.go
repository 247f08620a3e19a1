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

import "github.com/dijkstracula/go-foldertree/rwsync"

// node is one folder. It carries no payload beyond its children: the tree
// stores structure only.
//
// A node's children map is never accessed except by a goroutine holding at
// least read permission on sync -- acquired either directly (the node is the
// final step of a descent) or transitively (the node is an intermediate hop,
// and the descent has already acquired permission on it before moving on).
type node struct {
	children map[string]*node
	sync     *rwsync.Synchronizer
}

func newNode() *node {
	return &node{
		children: make(map[string]*node),
		sync:     rwsync.New(),
	}
}

// get looks up name among n's children. Caller must hold at least read
// permission on n.
func (n *node) get(name string) (*node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// insert adds child under name. Caller must hold write permission on n, and
// must already have checked that name is not in use.
func (n *node) insert(name string, child *node) {
	n.children[name] = child
}

// remove deletes name from n's children. Caller must hold write permission
// on n.
func (n *node) remove(name string) {
	delete(n.children, name)
}

// size returns the number of children. Caller must hold at least read (or
// the drain mutex) on n.
func (n *node) size() int {
	return len(n.children)
}

// names returns a snapshot of the immediate child names, in map iteration
// order. Go's map iteration order is randomized per call, which satisfies
// spec's "stable within one snapshot but otherwise unspecified" ordering
// requirement without this package needing to impose one of its own.
func (n *node) names() []string {
	out := make([]string, 0, len(n.children))
	for name := range n.children {
		out = append(out, name)
	}
	return out
}

// detachAll recursively detaches every descendant of n, used by
// Tree.Close to make the whole tree unreachable. It assumes no concurrent
// operation is in flight -- Close's documented precondition -- so it does
// not acquire any permission itself.
func (n *node) detachAll() {
	for name, child := range n.children {
		child.detachAll()
		delete(n.children, name)
	}
}
