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

import "errors"

// Domain errors returned by Tree operations. The tree is left in a
// consistent, unchanged state whenever one of these is returned: every
// operation enumerates its exit paths and releases every permission it
// holds before returning.
var (
	// ErrInvalidPath is returned when a path argument does not match the
	// canonical grammar documented in package path.
	ErrInvalidPath = errors.New("foldertree: invalid path")

	// ErrNotExist is returned when a path component does not exist.
	ErrNotExist = errors.New("foldertree: no such folder")

	// ErrExist is returned when Create targets a name that already exists,
	// or when Move's target already exists, or when either operation
	// targets the root.
	ErrExist = errors.New("foldertree: folder already exists")

	// ErrBusy is returned when Remove or Move is asked to operate on the
	// root folder, which can never be removed or relocated.
	ErrBusy = errors.New("foldertree: root folder is busy")

	// ErrNotEmpty is returned when Remove targets a folder that still has
	// children.
	ErrNotEmpty = errors.New("foldertree: folder is not empty")

	// ErrSourceIsAncestor is returned by Move when source names an ancestor
	// of target (including source == target): moving a folder into its own
	// subtree would create a cycle.
	ErrSourceIsAncestor = errors.New("foldertree: source is an ancestor of target")
)
