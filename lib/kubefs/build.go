// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubefs

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
)

const (
	manifestName   = "manifest.yaml"
	configMapsName = "configmaps"
)

// Build fetches the cluster resources and assembles the inode table.
// It runs exactly once, synchronously, before any protocol operation
// is served. A failed namespace list is fatal: the table is assembled
// off to the side and published only on success, so a failed build
// leaves nothing queryable, not even a partial root. Per-namespace
// configmap failures are logged and that namespace simply has no
// configmaps subtree.
func (f *Filesystem) Build(ctx context.Context) error {
	table := NewTable()

	root := &Node{
		Name:    "/",
		Attr:    f.dirAttr(RootInode, time.Unix(0, 0).UTC()),
		Content: NewChildren(),
	}
	table.Insert(RootInode, root)

	namespaces, err := f.client.ListNamespaces(ctx)
	if err != nil {
		return fmt.Errorf("listing namespaces: %w", err)
	}

	rootChildren := root.Content.(*Children)
	for i := range namespaces {
		namespace := &namespaces[i]
		if namespace.Name == "" {
			f.logger.Warn("skipping namespace without a name")
			continue
		}

		ino := f.addNamespace(table, namespace)
		rootChildren.Set(namespace.Name, ino)
		// Each namespace directory adds a link to the root. Deeper
		// directories do not get the same maintenance: namespace and
		// configmaps nodes keep Nlink 2 regardless of children.
		root.Attr.Nlink++

		f.addConfigMaps(ctx, table, ino, namespace.Name)
	}

	f.table = table
	f.logger.Info("filesystem tree built", "namespaces", rootChildren.Len())
	return nil
}

// addNamespace inserts a namespace directory and its manifest.yaml
// child, returning the directory's inode.
func (f *Filesystem) addNamespace(table *Table, namespace *corev1.Namespace) uint64 {
	created := creationTime(namespace.CreationTimestamp)
	ino := f.alloc.Next()
	manifestIno := f.alloc.Next()

	children := NewChildren()
	children.Set(manifestName, manifestIno)
	table.Insert(ino, &Node{
		Name:    namespace.Name,
		Attr:    f.dirAttr(ino, created),
		Content: children,
	})

	manifest := encodeManifest(f.logger, namespace.Name, namespace)
	table.Insert(manifestIno, &Node{
		Name:    manifestName,
		Attr:    f.fileAttr(manifestIno, len(manifest), created),
		Content: Bytes(manifest),
	})
	return ino
}

// addConfigMaps lists the namespace's configmaps and, on success,
// inserts a configmaps directory with one <name>.yaml file per named
// configmap. On a list failure the namespace gets no configmaps
// subtree at all.
func (f *Filesystem) addConfigMaps(ctx context.Context, table *Table, nsIno uint64, namespace string) {
	configMaps, err := f.client.ListConfigMaps(ctx, namespace)
	if err != nil {
		f.logger.Warn("listing configmaps failed, namespace gets no configmaps subtree",
			"namespace", namespace,
			"error", err,
		)
		return
	}

	dirIno := f.alloc.Next()
	children := NewChildren()
	for i := range configMaps {
		configMap := &configMaps[i]
		if configMap.Name == "" {
			f.logger.Warn("skipping configmap without a name", "namespace", namespace)
			continue
		}

		fileName := configMap.Name + ".yaml"
		body := encodeManifest(f.logger, namespace+"/"+configMap.Name, configMap)
		ino := f.alloc.Next()
		table.Insert(ino, &Node{
			Name:    fileName,
			Attr:    f.fileAttr(ino, len(body), creationTime(configMap.CreationTimestamp)),
			Content: Bytes(body),
		})
		children.Set(fileName, ino)
	}

	// The directory itself has no upstream creation timestamp; it is
	// born now, at build time.
	table.Insert(dirIno, &Node{
		Name:    configMapsName,
		Attr:    f.dirAttr(dirIno, f.clock.Now()),
		Content: children,
	})

	nsNode, _ := table.Get(nsIno)
	nsNode.Content.(*Children).Set(configMapsName, dirIno)
}
