// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fuse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/bureau-foundation/kubefuse/lib/clock"
	"github.com/bureau-foundation/kubefuse/lib/kubeclient"
	"github.com/bureau-foundation/kubefuse/lib/kubefs"
	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Options configures the FUSE mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	// It is created if it does not exist.
	Mountpoint string

	// Client fetches the namespaces and configmaps projected as
	// files. Required.
	Client kubeclient.Client

	// Clock provides timestamps for synthesized directories that have
	// no upstream creation time. If nil, defaults to clock.Real().
	Clock clock.Clock

	// AllowOther permits other users (including root) to access the
	// mount. Requires user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// Debug enables the kernel FUSE protocol trace.
	Debug bool

	// Logger receives diagnostic messages. If nil, an error-level
	// stderr logger is used.
	Logger *slog.Logger
}

// Mount builds the filesystem tree from the cluster and mounts it at
// the configured mountpoint. The tree is built before the kernel sees
// anything: a failed namespace list aborts here and nothing is
// mounted, so there is no window where a partial tree is visible. The
// caller must call Unmount on the returned Server when done.
func Mount(ctx context.Context, options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Client == nil {
		return nil, fmt.Errorf("cluster client is required")
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	engine := kubefs.New(options.Client, options.Clock, options.Logger)
	if err := engine.Build(ctx); err != nil {
		return nil, fmt.Errorf("building filesystem tree: %w", err)
	}

	// Ensure the mountpoint exists.
	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", options.Mountpoint, err)
	}

	root := &node{engine: engine, ino: kubefs.RootInode}

	// Kernel-side cache validity mirrors the engine's reply TTL.
	entryTimeout := kubefs.EntryTTL
	attrTimeout := kubefs.EntryTTL
	negativeTimeout := 100 * time.Millisecond

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &entryTimeout,
		AttrTimeout:     &attrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:     "kubefuse",
			Name:       "kubefuse",
			AllowOther: options.AllowOther,
			Debug:      options.Debug,
			// The engine has no write path; let the VFS reject
			// mutation before it reaches us.
			Options: []string{"ro"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("kubefuse filesystem mounted", "mountpoint", options.Mountpoint)
	return server, nil
}

// sliceDirStream implements fs.DirStream from a slice of entries.
type sliceDirStream struct {
	entries []fuse.DirEntry
	index   int
}

func (s *sliceDirStream) HasNext() bool {
	return s.index < len(s.entries)
}

func (s *sliceDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	if s.index >= len(s.entries) {
		return fuse.DirEntry{}, syscall.EINVAL
	}
	entry := s.entries[s.index]
	s.index++
	return entry, 0
}

func (s *sliceDirStream) Close() {}
