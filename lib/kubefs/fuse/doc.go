// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuse binds the kubefs engine to the kernel via FUSE.
//
// The engine owns the tree; this package only translates: kernel
// lookup/getattr/readdir/open/read/release calls become engine
// operations on plain inode numbers, engine errors become errnos, and
// the engine's 1-second reply TTL becomes kernel entry/attr cache
// timeouts. The mount is read-only at the VFS layer ("ro" mount
// option) and at the protocol layer (write opens get EROFS, mutation
// operations are not implemented).
//
// The tree is built from the cluster before the mount syscall, so a
// cluster that cannot be listed never produces a mount at all.
package fuse
