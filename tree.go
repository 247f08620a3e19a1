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
	"strings"

	"github.com/dijkstracula/go-foldertree/path"
)

// Tree is a concurrent, in-memory hierarchy of folders rooted at "/". The
// zero value is not usable; construct one with New.
//
// Every method except Close is safe to call from any number of goroutines
// at once. The
// synchronization discipline that makes that true -- and that still permits
// two operations on disjoint subtrees to run fully in parallel -- lives in
// package rwsync and in this package's traversal helpers; see SPEC_FULL.md
// for the protocol those implement.
type Tree struct {
	root *node
}

// New returns a fresh Tree containing only the root folder.
func New() *Tree {
	return &Tree{root: newNode()}
}

// Close detaches every node from the tree, making the whole thing eligible
// for garbage collection. It is not safe to call Close concurrently with
// any other Tree method, or while any other method is still in flight --
// the same precondition original_source/src/Tree.c's tree_free places on
// itself by never acquiring any of the tree's locks.
func (t *Tree) Close() {
	t.root.detachAll()
}

// List returns a comma-separated, unordered snapshot of path's immediate
// child names, and true if path exists. If any component of path does not
// exist, it returns ("", false).
func (t *Tree) List(p string) (string, bool) {
	if !path.IsValid(p) {
		return "", false
	}

	target, err := descendRead(t.root, p)
	if err != nil {
		return "", false
	}
	names := target.names()
	target.sync.ReleaseRead()

	return strings.Join(names, ","), true
}

// Create makes a new, empty folder at path. path's parent must already
// exist and must not already have a child with that name.
func (t *Tree) Create(p string) error {
	if !path.IsValid(p) {
		return ErrInvalidPath
	}
	if path.IsRoot(p) {
		return ErrExist
	}

	parentPath, name := path.ParentOf(p)
	parent, err := descendWrite(t.root, parentPath)
	if err != nil {
		return err
	}
	defer parent.sync.ReleaseWrite()

	if _, exists := parent.get(name); exists {
		return ErrExist
	}
	parent.insert(name, newNode())
	return nil
}

// Remove deletes the empty folder at path. path may not be root, and the
// folder must have no children of its own.
func (t *Tree) Remove(p string) error {
	if !path.IsValid(p) {
		return ErrInvalidPath
	}
	if path.IsRoot(p) {
		return ErrBusy
	}

	parentPath, name := path.ParentOf(p)
	parent, err := descendWrite(t.root, parentPath)
	if err != nil {
		return err
	}
	defer parent.sync.ReleaseWrite()

	child, exists := parent.get(name)
	if !exists {
		return ErrNotExist
	}

	// Acquire the child's mutex directly (bypassing AcquireWrite) and wait
	// for every reader, writer, and waiter already inside it to finish.
	// This is safe only because parent's writer permission, held above,
	// stops any new descent from ever reaching child while we do it.
	child.sync.Drain()
	defer child.sync.Unlock()

	if child.size() != 0 {
		return ErrNotEmpty
	}
	parent.remove(name)
	return nil
}

// Move relocates the subtree rooted at source so that it is instead rooted
// at target, preserving the moved folder's identity and its own children.
// source may not be root (ErrBusy); target may not be root (ErrExist); and
// source may not name an ancestor of target, including target itself
// (ErrSourceIsAncestor), since that would graft a folder into its own
// subtree.
func (t *Tree) Move(source, target string) error {
	if !path.IsValid(source) || !path.IsValid(target) {
		return ErrInvalidPath
	}
	if path.IsRoot(source) {
		return ErrBusy
	}
	if path.IsRoot(target) {
		return ErrExist
	}
	if path.IsAncestorOrSelf(source, target) {
		return ErrSourceIsAncestor
	}

	sourceParent, sourceName := path.ParentOf(source)
	targetParent, targetName := path.ParentOf(target)

	lcaDepth := path.CommonPrefixDepth(sourceParent, targetParent)

	// Descend root -> LCA, write-locking the LCA itself. Every example
	// component up to the LCA is shared by both parent paths, so either
	// one's prefix names the same nodes.
	lca, err := descendWrite(t.root, path.Prefix(sourceParent, lcaDepth))
	if err != nil {
		return err
	}

	targetSuffix := path.Suffix(targetParent, lcaDepth)
	sourceSuffix := path.Suffix(sourceParent, lcaDepth)

	targetParentNode, err := descendBelowHeld(lca, targetSuffix)
	if err != nil {
		lca.sync.ReleaseWrite()
		return err
	}

	if _, exists := targetParentNode.get(targetName); exists {
		if targetParentNode != lca {
			targetParentNode.sync.ReleaseWrite()
		}
		lca.sync.ReleaseWrite()
		return ErrExist
	}

	sourceParentNode, err := descendBelowHeld(lca, sourceSuffix)
	if err != nil {
		if targetParentNode != lca {
			targetParentNode.sync.ReleaseWrite()
		}
		lca.sync.ReleaseWrite()
		return err
	}

	movedNode, exists := sourceParentNode.get(sourceName)
	if !exists {
		if sourceParentNode != lca && sourceParentNode != targetParentNode {
			sourceParentNode.sync.ReleaseWrite()
		}
		if targetParentNode != lca {
			targetParentNode.sync.ReleaseWrite()
		}
		lca.sync.ReleaseWrite()
		return ErrNotExist
	}

	// Both endpoints are now writer-held below the LCA; nothing can
	// descend into either branch without re-passing through the LCA, and
	// we're never going back above it. Let it go.
	if lca != sourceParentNode && lca != targetParentNode {
		lca.sync.ReleaseWrite()
	}

	// Wait for every operation already inside the moved subtree -- not
	// just at its root -- to finish, since moving it would otherwise pull
	// the rug out from under anything still descending through it.
	bfsClear(movedNode)

	sourceParentNode.remove(sourceName)
	targetParentNode.insert(targetName, movedNode)

	if sourceParentNode != targetParentNode {
		sourceParentNode.sync.ReleaseWrite()
	}
	targetParentNode.sync.ReleaseWrite()

	return nil
}
