// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fuse

import (
	"context"
	"errors"
	"syscall"

	"github.com/bureau-foundation/kubefuse/lib/kubefs"
	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// node adapts one engine inode to the go-fuse node API. All state
// lives in the engine's table; the node itself carries only the inode
// number, and the kernel sees the engine's inode numbers unchanged.
type node struct {
	gofuse.Inode
	engine *kubefs.Filesystem
	ino    uint64
}

var _ gofuse.InodeEmbedder = (*node)(nil)
var _ gofuse.NodeLookuper = (*node)(nil)
var _ gofuse.NodeGetattrer = (*node)(nil)
var _ gofuse.NodeReaddirer = (*node)(nil)
var _ gofuse.NodeOpener = (*node)(nil)
var _ gofuse.NodeReader = (*node)(nil)
var _ gofuse.NodeReleaser = (*node)(nil)

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	entry, err := n.engine.Lookup(n.ino, name)
	if err != nil {
		return nil, toErrno(err)
	}

	child := n.NewPersistentInode(ctx, &node{engine: n.engine, ino: entry.Attr.Ino}, gofuse.StableAttr{
		Mode: typeMode(entry.Attr.Kind),
		Ino:  entry.Attr.Ino,
	})
	fillAttr(&out.Attr, entry.Attr)
	out.SetEntryTimeout(entry.TTL)
	out.SetAttrTimeout(entry.TTL)
	return child, 0
}

func (n *node) Getattr(ctx context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	entry, err := n.engine.Getattr(n.ino)
	if err != nil {
		return toErrno(err)
	}
	fillAttr(&out.Attr, entry.Attr)
	out.SetTimeout(entry.TTL)
	return 0
}

func (n *node) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	var entries []fuse.DirEntry
	err := n.engine.Readdir(n.ino, 0, func(entry kubefs.DirEntry) bool {
		entries = append(entries, fuse.DirEntry{
			Ino:  entry.Ino,
			Name: entry.Name,
			Mode: typeMode(entry.Kind),
		})
		return true
	})
	if err != nil {
		return nil, toErrno(err)
	}
	return &sliceDirStream{entries: entries}, 0
}

func (n *node) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	if _, err := n.engine.Open(n.ino, flags); err != nil {
		return nil, 0, toErrno(err)
	}
	// Content never changes post-build; let the kernel keep pages.
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *node) Read(ctx context.Context, _ gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	data, err := n.engine.Read(n.ino, uint64(off), uint32(len(dest)))
	if err != nil {
		return nil, toErrno(err)
	}
	return fuse.ReadResultData(data), 0
}

func (n *node) Release(ctx context.Context, _ gofuse.FileHandle) syscall.Errno {
	n.engine.Release(n.ino, 0)
	return 0
}

// fillAttr maps engine attributes onto the kernel attr reply. Crtime
// has no slot in the Linux reply and is dropped here.
func fillAttr(out *fuse.Attr, attr kubefs.Attr) {
	out.Ino = attr.Ino
	out.Size = attr.Size
	out.Blocks = attr.Blocks
	out.Atime = uint64(attr.Atime.Unix())
	out.Atimensec = uint32(attr.Atime.Nanosecond())
	out.Mtime = uint64(attr.Mtime.Unix())
	out.Mtimensec = uint32(attr.Mtime.Nanosecond())
	out.Ctime = uint64(attr.Ctime.Unix())
	out.Ctimensec = uint32(attr.Ctime.Nanosecond())
	out.Mode = typeMode(attr.Kind) | attr.Perm
	out.Nlink = attr.Nlink
	out.Owner = fuse.Owner{Uid: attr.Uid, Gid: attr.Gid}
	out.Rdev = attr.Rdev
	out.Blksize = attr.Blksize
}

func typeMode(kind kubefs.FileType) uint32 {
	if kind == kubefs.Directory {
		return fuse.S_IFDIR
	}
	return fuse.S_IFREG
}

// toErrno maps engine errors to kernel error codes.
func toErrno(err error) syscall.Errno {
	switch {
	case errors.Is(err, kubefs.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, kubefs.ErrNotDirectory):
		return syscall.ENOTDIR
	case errors.Is(err, kubefs.ErrIsDirectory):
		return syscall.EISDIR
	}
	return syscall.EIO
}
