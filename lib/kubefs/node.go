// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubefs

import "time"

// BlockSize is the unit used to derive Attr.Blocks from a file's size.
const BlockSize = 512

// RootInode is the inode number of the filesystem root. It is
// pre-reserved: the allocator never hands it out.
const RootInode = 1

// FileType distinguishes the two node kinds the tree models.
type FileType uint8

const (
	// Directory nodes carry Children content.
	Directory FileType = iota
	// RegularFile nodes carry Bytes content.
	RegularFile
)

func (t FileType) String() string {
	if t == Directory {
		return "directory"
	}
	return "regular file"
}

// Attr is the full attribute set stored per node. Crtime is kept even
// though the Linux kernel attr reply has no creation-time slot; the
// transport maps the representable subset.
type Attr struct {
	Ino     uint64
	Size    uint64
	Blocks  uint64
	Atime   time.Time
	Mtime   time.Time
	Ctime   time.Time
	Crtime  time.Time
	Kind    FileType
	Perm    uint32
	Nlink   uint32
	Uid     uint32
	Gid     uint32
	Rdev    uint32
	Flags   uint32
	Blksize uint32
}

// Content is a node's payload: either file bytes or a child map. The
// interface is sealed so a node is one or the other, never both and
// never neither field of a pair.
type Content interface {
	isContent()
}

// Bytes is the content of a regular file.
type Bytes []byte

func (Bytes) isContent() {}

// Children is the content of a directory: a name-to-inode mapping that
// remembers insertion order. Readdir offsets are positions in that
// order, so enumeration must be stable across calls within one build;
// a plain map's randomized iteration would break resumed enumeration.
type Children struct {
	names  []string
	inodes map[string]uint64
}

// NewChildren returns an empty child map.
func NewChildren() *Children {
	return &Children{inodes: make(map[string]uint64)}
}

func (*Children) isContent() {}

// Set registers name → ino. Re-registering an existing name replaces
// the inode without disturbing the name's position.
func (c *Children) Set(name string, ino uint64) {
	if _, ok := c.inodes[name]; !ok {
		c.names = append(c.names, name)
	}
	c.inodes[name] = ino
}

// Get returns the inode registered under name.
func (c *Children) Get(name string) (uint64, bool) {
	ino, ok := c.inodes[name]
	return ino, ok
}

// Len returns the number of children.
func (c *Children) Len() int { return len(c.names) }

// Names returns child names in insertion order. The slice is owned by
// the Children value; callers must not modify it.
func (c *Children) Names() []string { return c.names }

// Node is the in-memory record for one inode.
type Node struct {
	// Name is the last path segment ("/" for the root).
	Name    string
	Attr    Attr
	Content Content
}
