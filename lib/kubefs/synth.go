// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubefs

import (
	"log/slog"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// encodeManifest serializes a resource object to YAML file content.
// A resource that cannot be serialized degrades to an empty file: the
// warning is its only trace, the build carries on.
func encodeManifest(logger *slog.Logger, name string, object any) []byte {
	data, err := yaml.Marshal(object)
	if err != nil {
		logger.Warn("serializing resource failed, degrading to empty file",
			"resource", name,
			"error", err,
		)
		return nil
	}
	return data
}

// creationTime converts a resource creation timestamp to node time.
// Absent timestamps and timestamps before the epoch fall back to the
// Unix epoch.
func creationTime(ts metav1.Time) time.Time {
	if ts.IsZero() || ts.Unix() < 0 {
		return time.Unix(0, 0).UTC()
	}
	return ts.Time
}

// fileAttr derives regular-file attributes from synthesized content.
// Size tracks the byte length exactly; blocks are 512-byte units,
// rounded up.
func (f *Filesystem) fileAttr(ino uint64, size int, created time.Time) Attr {
	return Attr{
		Ino:     ino,
		Size:    uint64(size),
		Blocks:  (uint64(size) + BlockSize - 1) / BlockSize,
		Atime:   created,
		Mtime:   created,
		Ctime:   created,
		Crtime:  created,
		Kind:    RegularFile,
		Perm:    0o444,
		Nlink:   1,
		Uid:     f.uid,
		Gid:     f.gid,
		Blksize: BlockSize,
	}
}

// dirAttr derives directory attributes. Nlink starts at 2 ("." and the
// parent's entry); only the root's count is maintained as children are
// added (see Build).
func (f *Filesystem) dirAttr(ino uint64, created time.Time) Attr {
	return Attr{
		Ino:     ino,
		Atime:   created,
		Mtime:   created,
		Ctime:   created,
		Crtime:  created,
		Kind:    Directory,
		Perm:    0o755,
		Nlink:   2,
		Uid:     f.uid,
		Gid:     f.gid,
		Blksize: BlockSize,
	}
}
