// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubefs

import (
	"errors"
	"sync"
	"testing"
)

func TestTableInsertGet(t *testing.T) {
	table := NewTable()

	node := &Node{Name: "file", Content: Bytes("hello")}
	table.Insert(7, node)

	got, ok := table.Get(7)
	if !ok {
		t.Fatal("inserted node not found")
	}
	if got != node {
		t.Error("Get returned a different node")
	}

	if _, ok := table.Get(8); ok {
		t.Error("Get on unknown inode reported ok")
	}
}

func TestTableChildrenOf(t *testing.T) {
	table := NewTable()

	children := NewChildren()
	children.Set("a", 3)
	table.Insert(2, &Node{Name: "dir", Content: children})
	table.Insert(3, &Node{Name: "a", Content: Bytes("x")})

	got, err := table.ChildrenOf(2)
	if err != nil {
		t.Fatalf("ChildrenOf(2): %v", err)
	}
	if ino, ok := got.Get("a"); !ok || ino != 3 {
		t.Errorf("child a = (%d, %v), want (3, true)", ino, ok)
	}

	if _, err := table.ChildrenOf(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ChildrenOf(unknown) = %v, want ErrNotFound", err)
	}
	if _, err := table.ChildrenOf(3); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("ChildrenOf(file) = %v, want ErrNotDirectory", err)
	}
}

func TestChildrenPreserveInsertionOrder(t *testing.T) {
	children := NewChildren()
	names := []string{"zeta", "alpha", "mid", "beta"}
	for i, name := range names {
		children.Set(name, uint64(i+10))
	}

	got := children.Names()
	if len(got) != len(names) {
		t.Fatalf("got %d names, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestChildrenSetReplacesWithoutReordering(t *testing.T) {
	children := NewChildren()
	children.Set("a", 2)
	children.Set("b", 3)
	children.Set("a", 4)

	if children.Len() != 2 {
		t.Fatalf("Len = %d, want 2", children.Len())
	}
	if ino, _ := children.Get("a"); ino != 4 {
		t.Errorf("a = %d, want 4", ino)
	}
	if names := children.Names(); names[0] != "a" || names[1] != "b" {
		t.Errorf("order disturbed by replacement: %v", names)
	}
}

func TestAllocatorStartsAtTwo(t *testing.T) {
	alloc := newAllocator()
	if got := alloc.Next(); got != 2 {
		t.Errorf("first Next() = %d, want 2", got)
	}
	if got := alloc.Next(); got != 3 {
		t.Errorf("second Next() = %d, want 3", got)
	}
}

func TestAllocatorConcurrentUnique(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 1000

	alloc := newAllocator()
	results := make(chan uint64, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				results <- alloc.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]bool)
	for ino := range results {
		if ino < 2 {
			t.Fatalf("allocated reserved inode %d", ino)
		}
		if seen[ino] {
			t.Fatalf("inode %d allocated twice", ino)
		}
		seen[ino] = true
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("got %d unique inodes, want %d", len(seen), goroutines*perGoroutine)
	}
}

func TestFileTypeString(t *testing.T) {
	if Directory.String() != "directory" {
		t.Errorf("Directory.String() = %q", Directory.String())
	}
	if RegularFile.String() != "regular file" {
		t.Errorf("RegularFile.String() = %q", RegularFile.String())
	}
}
