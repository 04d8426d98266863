// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bureau-foundation/kubefuse/lib/clock"
	"github.com/bureau-foundation/kubefuse/lib/kubeclient"
)

// EntryTTL is how long a caller may cache entry and attribute replies
// before re-querying. The tree is immutable post-build, so the TTL
// only bounds how quickly an unmount becomes visible.
const EntryTTL = 1 * time.Second

// Engine error taxonomy. The transport maps these to kernel error
// codes (ENOENT, ENOTDIR, EISDIR).
var (
	// ErrNotFound reports an unknown inode or path segment.
	ErrNotFound = errors.New("no such entry")

	// ErrNotDirectory reports a directory operation on a regular file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrIsDirectory reports a file operation on a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// Filesystem is the virtual filesystem engine: the inode table plus
// the protocol operations over it. One value owns one table; nothing
// is shared between instances, so several can be mounted in-process.
//
// Build populates the table exactly once; every other method is a pure
// read over that snapshot. There is no refresh: resources fetched at
// mount time are what the tree shows until unmount.
type Filesystem struct {
	client kubeclient.Client
	clock  clock.Clock
	logger *slog.Logger
	alloc  *allocator
	uid    uint32
	gid    uint32

	// table is published by a successful Build and nil before it, so
	// a failed build leaves nothing queryable, not even the root.
	table *Table
}

// New creates an unbuilt filesystem engine. Call Build before serving
// protocol operations. A nil clock defaults to the real one; a nil
// logger falls back to error-level stderr output.
func New(client kubeclient.Client, clk clock.Clock, logger *slog.Logger) *Filesystem {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}
	return &Filesystem{
		client: client,
		clock:  clk,
		logger: logger,
		alloc:  newAllocator(),
		uid:    uint32(os.Getuid()),
		gid:    uint32(os.Getgid()),
	}
}

// Entry is an attribute reply annotated with its cache validity.
type Entry struct {
	Attr Attr
	TTL  time.Duration
}

// DirEntry is one synthesized directory entry. Offset is the value a
// resumed Readdir call passes to continue after this entry.
type DirEntry struct {
	Ino    uint64
	Name   string
	Kind   FileType
	Offset uint64
}

// Lookup resolves name within the parent directory. Unknown parents,
// regular-file parents, and missing names all report ErrNotFound: the
// kernel asked for a path that cannot exist.
func (f *Filesystem) Lookup(parent uint64, name string) (Entry, error) {
	parentNode, ok := f.get(parent)
	if !ok {
		return Entry{}, fmt.Errorf("lookup %q: parent inode %d: %w", name, parent, ErrNotFound)
	}
	children, ok := parentNode.Content.(*Children)
	if !ok {
		return Entry{}, fmt.Errorf("lookup %q: parent inode %d is a %s: %w", name, parent, parentNode.Attr.Kind, ErrNotFound)
	}
	ino, ok := children.Get(name)
	if !ok {
		return Entry{}, fmt.Errorf("lookup %q in inode %d: %w", name, parent, ErrNotFound)
	}
	node, ok := f.get(ino)
	if !ok {
		// Cannot happen on a built table (every child inode exists),
		// but a dangling entry must not panic the mount.
		f.logger.Warn("directory entry points at missing inode", "name", name, "inode", ino)
		return Entry{}, fmt.Errorf("lookup %q: child inode %d: %w", name, ino, ErrNotFound)
	}
	return Entry{Attr: node.Attr, TTL: EntryTTL}, nil
}

// Getattr returns the stored attributes of an inode.
func (f *Filesystem) Getattr(ino uint64) (Entry, error) {
	node, ok := f.get(ino)
	if !ok {
		return Entry{}, fmt.Errorf("getattr inode %d: %w", ino, ErrNotFound)
	}
	return Entry{Attr: node.Attr, TTL: EntryTTL}, nil
}

// Readdir enumerates a directory starting at offset. The synthesized
// list is "." (this inode), ".." (always the filesystem root; the
// table keeps no parent links, kept as observed behavior), then the
// children in insertion order. fill reports whether the entry was
// consumed; enumeration stops at the first rejected entry, which is
// not considered delivered, so a later call resuming at that entry's
// position continues seamlessly.
func (f *Filesystem) Readdir(ino uint64, offset uint64, fill func(DirEntry) bool) error {
	node, ok := f.get(ino)
	if !ok {
		return fmt.Errorf("readdir inode %d: %w", ino, ErrNotFound)
	}
	children, ok := node.Content.(*Children)
	if !ok {
		return fmt.Errorf("readdir inode %d: %w", ino, ErrNotDirectory)
	}

	entries := make([]DirEntry, 0, children.Len()+2)
	entries = append(entries,
		DirEntry{Ino: ino, Name: ".", Kind: Directory},
		DirEntry{Ino: RootInode, Name: "..", Kind: Directory},
	)
	for _, name := range children.Names() {
		childIno, _ := children.Get(name)
		child, ok := f.table.Get(childIno)
		if !ok {
			f.logger.Warn("directory entry points at missing inode", "name", name, "inode", childIno)
			continue
		}
		entries = append(entries, DirEntry{Ino: childIno, Name: name, Kind: child.Attr.Kind})
	}

	for i := offset; i < uint64(len(entries)); i++ {
		entry := entries[i]
		entry.Offset = i + 1
		if !fill(entry) {
			break
		}
	}
	return nil
}

// Read returns the byte range [offset, offset+size) of a regular
// file, clipped to the content length. An offset at or past the end
// yields an empty result, not an error.
func (f *Filesystem) Read(ino uint64, offset uint64, size uint32) ([]byte, error) {
	node, ok := f.get(ino)
	if !ok {
		return nil, fmt.Errorf("read inode %d: %w", ino, ErrNotFound)
	}
	data, ok := node.Content.(Bytes)
	if !ok {
		return nil, fmt.Errorf("read inode %d: %w", ino, ErrIsDirectory)
	}
	length := uint64(len(data))
	if offset >= length {
		return nil, nil
	}
	end := offset + uint64(size)
	if end > length {
		end = length
	}
	return data[offset:end], nil
}

// Open always succeeds with a nominal handle. The tree is immutable
// and read-only, so a handle carries no state worth tracking.
func (f *Filesystem) Open(ino uint64, flags uint32) (uint64, error) {
	return 0, nil
}

// Release always succeeds; there is no handle state to tear down.
func (f *Filesystem) Release(ino, handle uint64) {}

func (f *Filesystem) get(ino uint64) (*Node, bool) {
	if f.table == nil {
		return nil, false
	}
	return f.table.Get(ino)
}
