// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package kubeclient fetches the cluster resources that kubefuse
// projects as files. It is the only component that talks to the
// cluster control plane; everything downstream consumes the returned
// objects as opaque data.
package kubeclient

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client lists the cluster resources projected by the filesystem.
// Results come back in the order the API server returned them; no
// secondary sort is applied. Errors are returned as-is; the caller
// decides whether a failure is fatal, and nothing is retried here.
type Client interface {
	// ListNamespaces returns every namespace in the cluster.
	ListNamespaces(ctx context.Context) ([]corev1.Namespace, error)

	// ListConfigMaps returns every configmap in the given namespace.
	ListConfigMaps(ctx context.Context, namespace string) ([]corev1.ConfigMap, error)
}

// New wraps an existing clientset. Tests pass a fake clientset here.
func New(clientset kubernetes.Interface) Client {
	return &clusterClient{clientset: clientset}
}

// NewForKubeconfig builds a Client from a kubeconfig file.
func NewForKubeconfig(path string) (Client, error) {
	config, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig %s: %w", path, err)
	}
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating clientset: %w", err)
	}
	return New(clientset), nil
}

// NewInCluster builds a Client from the pod service account, for
// running the mount inside the cluster it projects.
func NewInCluster() (Client, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("loading in-cluster config: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating clientset: %w", err)
	}
	return New(clientset), nil
}

type clusterClient struct {
	clientset kubernetes.Interface
}

func (c *clusterClient) ListNamespaces(ctx context.Context) ([]corev1.Namespace, error) {
	list, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}
	return list.Items, nil
}

func (c *clusterClient) ListConfigMaps(ctx context.Context, namespace string) ([]corev1.ConfigMap, error) {
	list, err := c.clientset.CoreV1().ConfigMaps(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing configmaps in %s: %w", namespace, err)
	}
	return list.Items, nil
}
