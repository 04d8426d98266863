// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kubeclient

import (
	"context"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func TestListNamespaces(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "kube-system"}},
	)
	client := New(clientset)

	namespaces, err := client.ListNamespaces(context.Background())
	if err != nil {
		t.Fatalf("ListNamespaces: %v", err)
	}
	if len(namespaces) != 2 {
		t.Fatalf("got %d namespaces, want 2", len(namespaces))
	}

	names := make(map[string]bool)
	for _, namespace := range namespaces {
		names[namespace.Name] = true
	}
	if !names["default"] || !names["kube-system"] {
		t.Errorf("unexpected namespace names: %v", names)
	}
}

func TestListConfigMapsScopedToNamespace(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "cfg1"}},
		&corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Namespace: "other", Name: "cfg2"}},
	)
	client := New(clientset)

	configMaps, err := client.ListConfigMaps(context.Background(), "default")
	if err != nil {
		t.Fatalf("ListConfigMaps: %v", err)
	}
	if len(configMaps) != 1 {
		t.Fatalf("got %d configmaps, want 1", len(configMaps))
	}
	if configMaps[0].Name != "cfg1" {
		t.Errorf("got configmap %q, want %q", configMaps[0].Name, "cfg1")
	}
}

func TestListConfigMapsEmptyNamespace(t *testing.T) {
	client := New(fake.NewSimpleClientset())

	configMaps, err := client.ListConfigMaps(context.Background(), "empty")
	if err != nil {
		t.Fatalf("ListConfigMaps: %v", err)
	}
	if len(configMaps) != 0 {
		t.Errorf("got %d configmaps, want 0", len(configMaps))
	}
}

func TestListNamespacesPropagatesError(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	upstream := errors.New("connection refused")
	clientset.PrependReactor("list", "namespaces", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, upstream
	})
	client := New(clientset)

	_, err := client.ListNamespaces(context.Background())
	if err == nil {
		t.Fatal("expected error from failing list")
	}
	if !errors.Is(err, upstream) {
		t.Errorf("error does not wrap upstream failure: %v", err)
	}
}

func TestListConfigMapsPropagatesError(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	upstream := errors.New("forbidden")
	clientset.PrependReactor("list", "configmaps", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, upstream
	})
	client := New(clientset)

	_, err := client.ListConfigMaps(context.Background(), "default")
	if err == nil {
		t.Fatal("expected error from failing list")
	}
	if !errors.Is(err, upstream) {
		t.Errorf("error does not wrap upstream failure: %v", err)
	}
}
