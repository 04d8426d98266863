// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bureau-foundation/kubefuse/lib/kubeclient"
	kubefsfuse "github.com/bureau-foundation/kubefuse/lib/kubefs/fuse"
	"github.com/bureau-foundation/kubefuse/lib/version"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		mountpoint  string
		kubeconfig  string
		allowOther  bool
		debug       bool
		showVersion bool
	)
	pflag.StringVar(&mountpoint, "mountpoint", "", "directory to mount the filesystem at (required)")
	pflag.StringVar(&kubeconfig, "kubeconfig", "", "path to the kubeconfig file (default: $KUBECONFIG, then ~/.kube/config, then in-cluster)")
	pflag.BoolVar(&allowOther, "allow-other", false, "permit other users to access the mount (requires user_allow_other in /etc/fuse.conf)")
	pflag.BoolVar(&debug, "debug", false, "enable debug logging, including the kernel FUSE protocol trace")
	pflag.BoolVar(&showVersion, "version", false, "print version information and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("kubefuse %s\n", version.Info())
		return nil
	}

	if mountpoint == "" {
		return fmt.Errorf("--mountpoint is required")
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	client, err := newClient(kubeconfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := kubefsfuse.Mount(ctx, kubefsfuse.Options{
		Mountpoint: mountpoint,
		Client:     client,
		AllowOther: allowOther,
		Debug:      debug,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		logger.Info("unmounting", "mountpoint", mountpoint)
		if err := server.Unmount(); err != nil {
			logger.Error("unmount failed; run fusermount -u manually",
				"mountpoint", mountpoint,
				"error", err,
			)
		}
	}()

	// Wait returns when the kernel connection closes (unmount).
	server.Wait()
	return nil
}

// newClient resolves the cluster client configuration: an explicit
// --kubeconfig wins, then $KUBECONFIG, then ~/.kube/config if present,
// and finally the in-cluster service account.
func newClient(kubeconfig string) (kubeclient.Client, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")
	}
	if kubeconfig == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".kube", "config")
			if _, err := os.Stat(candidate); err == nil {
				kubeconfig = candidate
			}
		}
	}
	if kubeconfig == "" {
		return kubeclient.NewInCluster()
	}
	return kubeclient.NewForKubeconfig(kubeconfig)
}
