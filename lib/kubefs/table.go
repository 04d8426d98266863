// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubefs

import (
	"fmt"
	"sync/atomic"
)

// Table is the canonical inode-to-node store. It is populated once by
// Build and read-only afterward, so the read path needs no locking.
type Table struct {
	nodes map[uint64]*Node
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{nodes: make(map[uint64]*Node)}
}

// Insert stores or replaces the node under ino.
func (t *Table) Insert(ino uint64, node *Node) {
	t.nodes[ino] = node
}

// Get returns the node stored under ino.
func (t *Table) Get(ino uint64) (*Node, bool) {
	node, ok := t.nodes[ino]
	return node, ok
}

// ChildrenOf returns the child map of a directory inode. It reports
// ErrNotFound for an unknown inode and ErrNotDirectory for a regular
// file.
func (t *Table) ChildrenOf(ino uint64) (*Children, error) {
	node, ok := t.nodes[ino]
	if !ok {
		return nil, fmt.Errorf("inode %d: %w", ino, ErrNotFound)
	}
	children, ok := node.Content.(*Children)
	if !ok {
		return nil, fmt.Errorf("inode %d: %w", ino, ErrNotDirectory)
	}
	return children, nil
}

// allocator issues strictly increasing inode numbers starting at 2
// (the root's inode 1 is pre-reserved). The counter is atomic so that
// concurrent population can never hand out duplicates.
type allocator struct {
	counter atomic.Uint64
}

func newAllocator() *allocator {
	a := &allocator{}
	a.counter.Store(RootInode)
	return a
}

// Next returns the next unused inode number.
func (a *allocator) Next() uint64 {
	return a.counter.Add(1)
}
