// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package main implements kubefuse, a read-only FUSE mount that
// projects a Kubernetes cluster's namespaces and configmaps as a
// directory tree:
//
//	<mountpoint>/<namespace>/manifest.yaml
//	<mountpoint>/<namespace>/configmaps/<name>.yaml
//
// File bodies are the YAML serialization of the corresponding cluster
// object. The tree is a snapshot taken once at mount time; remount to
// refresh.
//
// Usage:
//
//	kubefuse --mountpoint /mnt/cluster [--kubeconfig ~/.kube/config]
//
// The process stays in the foreground and unmounts on SIGINT/SIGTERM.
package main
