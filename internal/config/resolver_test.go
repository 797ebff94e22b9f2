package config

import (
	"context"
	"testing"
)

func TestForRoot_NoLocal(t *testing.T) {
	t.Parallel()

	global := Default()
	merged, err := ForRoot(&global, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.DocSuffix != DefaultDocSuffix || merged.Manifest != DefaultManifest {
		t.Errorf("merged = %+v, want globals passed through", merged)
	}
}

func TestForRoot_WithLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeLocalConfig(t, dir, `manifest = "deps.txt"`)

	global := Default()
	merged, err := ForRoot(&global, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Manifest != "deps.txt" {
		t.Errorf("manifest = %q, want local override deps.txt", merged.Manifest)
	}
	if merged.DocSuffix != DefaultDocSuffix {
		t.Errorf("doc_suffix = %q, want inherited default", merged.DocSuffix)
	}
}

func TestForRoot_InvalidLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeLocalConfig(t, dir, "broken [[[")

	global := Default()
	if _, err := ForRoot(&global, dir); err == nil {
		t.Fatal("expected error for broken local config")
	}
}

func TestConfigContext(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Manifest = "deps.txt"

	ctx := WithConfig(context.Background(), &cfg)
	if got := FromContext(ctx); got.Manifest != "deps.txt" {
		t.Errorf("FromContext() manifest = %q, want deps.txt", got.Manifest)
	}

	// Missing config falls back to defaults instead of nil
	if got := FromContext(context.Background()); got == nil || got.Manifest != DefaultManifest {
		t.Errorf("FromContext() fallback = %+v, want defaults", got)
	}
}
