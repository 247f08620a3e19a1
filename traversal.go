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

import "github.com/dijkstracula/go-foldertree/path"

// descendRead walks from root down through every component of p, acquiring
// reader permission at each hop and releasing the previous hop only once
// the next one is held -- hand-over-hand -- so that no operation descending
// behind it ever observes a gap in locked coverage. It is used by List,
// which never needs more than read access anywhere on its path.
func descendRead(root *node, p string) (*node, error) {
	cur := root
	cur.sync.AcquireRead()
	rest := p
	for {
		head, next, ok := path.SplitHead(rest)
		if !ok {
			return cur, nil
		}
		child, exists := cur.get(head)
		if !exists {
			cur.sync.ReleaseRead()
			return nil, ErrNotExist
		}
		child.sync.AcquireRead()
		cur.sync.ReleaseRead()
		cur = child
		rest = next
	}
}

// descendWrite walks from root down through every component of p, the same
// way descendRead does, except the final node -- the one reached once p is
// fully consumed -- is acquired for writing instead of reading. Every
// intermediate hop, including root itself when p is not Root, is held only
// as a reader and released hand-over-hand. Create and Remove use this to
// reach the parent of the path they operate on; Move uses it to reach the
// LCA of its two endpoints.
func descendWrite(root *node, p string) (*node, error) {
	if path.IsRoot(p) {
		root.sync.AcquireWrite()
		return root, nil
	}

	cur := root
	cur.sync.AcquireRead()
	rest := p
	depth := path.Depth(p)
	for i := 0; i < depth; i++ {
		head, next, _ := path.SplitHead(rest)
		child, exists := cur.get(head)
		if !exists {
			cur.sync.ReleaseRead()
			return nil, ErrNotExist
		}
		if i == depth-1 {
			child.sync.AcquireWrite()
		} else {
			child.sync.AcquireRead()
		}
		cur.sync.ReleaseRead()
		cur = child
		rest = next
	}
	return cur, nil
}

// descendBelowHeld continues a descent that has already write-locked start
// (an LCA node in Move's protocol) down through the remaining components of
// p, write-locking the final node the same way descendWrite does. Unlike
// descendWrite, it never releases start itself -- that permission belongs
// to the caller, who may need to hold it across two such calls (once per
// branch below the LCA) before deciding when it is safe to let go. Every
// hop *after* the first is still released hand-over-hand as usual; only the
// edge directly below start is exempted.
//
// If p is Root (no components remain), start already *is* the target node,
// and is returned unchanged -- still write-held, exactly as the caller left
// it.
func descendBelowHeld(start *node, p string) (*node, error) {
	if path.IsRoot(p) {
		return start, nil
	}

	cur := start
	rest := p
	depth := path.Depth(p)
	firstHop := true
	for i := 0; i < depth; i++ {
		head, next, _ := path.SplitHead(rest)
		child, exists := cur.get(head)
		if !exists {
			if !firstHop {
				cur.sync.ReleaseRead()
			}
			return nil, ErrNotExist
		}
		if i == depth-1 {
			child.sync.AcquireWrite()
		} else {
			child.sync.AcquireRead()
		}
		if !firstHop {
			cur.sync.ReleaseRead()
		}
		firstHop = false
		cur = child
		rest = next
	}
	return cur, nil
}

// bfsClear recursively drains n and every node in its subtree before n is
// detached from its current parent and re-parented elsewhere. n's own
// mutex -- acquired via its Synchronizer's Drain -- stays held for the
// entire recursive walk, which is what stops any new operation from
// entering the subtree partway through: any descent reaching n blocks on
// n's reader/writer acquisition, which in turn is blocked behind n's held
// mutex until bfsClear has finished checking every descendant.
func bfsClear(n *node) {
	n.sync.Drain()
	for _, child := range n.children {
		bfsClear(child)
	}
	n.sync.Unlock()
}
