// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package kubefs implements the virtual filesystem engine behind the
// kubefuse mount: an in-memory inode table projecting a cluster's
// namespaces and configmaps as a synthetic directory tree.
//
// The tree has a fixed shape:
//
//	/                                    directory, 0755
//	/<namespace>/                        directory, 0755
//	/<namespace>/manifest.yaml           regular file, 0444
//	/<namespace>/configmaps/             directory, 0755
//	/<namespace>/configmaps/<name>.yaml  regular file, 0444
//
// File bodies are the YAML serialization of the corresponding cluster
// object, fetched once at build time. The tree is immutable after
// Build: there is no refresh, no write path, and no per-handle state,
// which is why the read path needs no locking.
//
// The engine knows nothing about FUSE. It exposes the kernel-style
// operation set (Lookup, Getattr, Readdir, Read, Open, Release) over
// plain inode numbers; lib/kubefs/fuse binds those operations to the
// kernel.
package kubefs
