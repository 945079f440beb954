// Package testutil provides shared helpers for archdocs tests.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// WriteFile writes content to dir/name, creating parent directories,
// and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// CheckoutYAML is a small valid diagram used across package tests.
const CheckoutYAML = `id: checkout
title: Checkout
flows:
  - {id: pricing, label: Pricing lookup, color: "#2563eb"}
  - {id: cache}
nodes:
  - id: web
    kind: component
    label: Dealer Web
    category: Frontend
    position: {x: 0, y: 0}
    flows: [pricing]
  - id: redis
    kind: datastore
    label: Redis
    position: {x: 200, y: 0}
    flows: [pricing, cache]
  - id: audit
    label: Audit Log
    position: {x: 400, y: 0}
edges:
  - id: web-redis
    source: web
    target: redis
    label: GET quote
    animated: true
    flows: [pricing]
`
