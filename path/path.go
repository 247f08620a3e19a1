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

// Package path implements the canonical folder-path grammar that the rest of
// go-foldertree is built on: "/" or "/c1/c2/.../cn/", every ci a non-empty
// run of lowercase letters no longer than MaxNameLength.
//
// Every function here is pure and allocation-light; none of it retains the
// strings passed in, matching the "callers own input strings" contract that
// the tree operations built on top of this package rely on.
package path

import "strings"

// MaxNameLength is the longest a single path component may be.
const MaxNameLength = 255

// Root is the canonical path of the tree's root folder.
const Root = "/"

// IsRoot reports whether path is exactly the root path.
func IsRoot(p string) bool {
	return p == Root
}

// IsValid reports whether p matches the canonical grammar: "/" or a sequence
// of "/"-delimited lowercase-letter components, each 1..MaxNameLength bytes,
// itself terminated by a trailing "/".
func IsValid(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if p == Root {
		return true
	}
	if p[len(p)-1] != '/' {
		return false
	}
	for _, component := range strings.Split(p[1:len(p)-1], "/") {
		if !isValidComponent(component) {
			return false
		}
	}
	return true
}

func isValidComponent(c string) bool {
	if len(c) == 0 || len(c) > MaxNameLength {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'a' || c[i] > 'z' {
			return false
		}
	}
	return true
}

// SplitHead splits the leading component off p, returning it along with the
// remainder of the path. Called on the root, it returns ok == false: there
// are no more components to peel off.
//
// SplitHead("/a/bcd/ef/") returns ("a", "/bcd/ef/", true).
func SplitHead(p string) (head, rest string, ok bool) {
	if IsRoot(p) {
		return "", "", false
	}
	i := strings.IndexByte(p[1:], '/')
	// IsValid guarantees a component always terminates in '/'.
	head = p[1 : 1+i]
	rest = p[1+i:]
	return head, rest, true
}

// ParentOf splits p into its parent path and its final component.
//
// ParentOf("/a/b/c/") returns ("/a/b/", "c").
func ParentOf(p string) (parent, last string) {
	trimmed := p[:len(p)-1]
	i := strings.LastIndexByte(trimmed, '/')
	return trimmed[:i+1], trimmed[i+1:]
}

// Depth returns the number of components in p; the root has depth 0.
func Depth(p string) int {
	n := 0
	rest := p
	for {
		_, next, ok := SplitHead(rest)
		if !ok {
			return n
		}
		n++
		rest = next
	}
}

// CommonPrefixDepth returns the number of leading components p and q share.
func CommonPrefixDepth(p, q string) int {
	n := 0
	for {
		pHead, pRest, pOk := SplitHead(p)
		qHead, qRest, qOk := SplitHead(q)
		if !pOk || !qOk || pHead != qHead {
			return n
		}
		n++
		p, q = pRest, qRest
	}
}

// Prefix returns the path consisting of the first depth components of p,
// including the trailing slash. Prefix(p, 0) is always Root.
func Prefix(p string, depth int) string {
	idx := 0
	for count := 0; count < depth; count++ {
		i := strings.IndexByte(p[idx+1:], '/')
		idx = idx + 1 + i
	}
	return p[:idx+1]
}

// Suffix returns the remainder of p once its first depth components have
// been stripped off; the result is itself a valid path rooted at that
// point. Suffix(p, 0) is p unchanged.
func Suffix(p string, depth int) string {
	return p[len(Prefix(p, depth))-1:]
}

// IsAncestorOrSelf reports whether ancestor is a prefix path of p -- that
// is, whether p is ancestor itself or lies somewhere within ancestor's
// subtree. Root is an ancestor of everything including itself.
func IsAncestorOrSelf(ancestor, p string) bool {
	return strings.HasPrefix(p, ancestor)
}
