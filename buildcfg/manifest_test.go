package buildcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture manifest: %v", err)
	}
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name = "demo"
vm_version = "1.2.0"
fold = false
emit_labels = true
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q, want demo", m.Name)
	}
	if m.VMVersion != "v1.2.0" {
		t.Errorf("VMVersion = %q, want v1.2.0", m.VMVersion)
	}
	if m.Fold {
		t.Errorf("Fold should be false when the manifest sets it so")
	}
	if !m.EmitLabels {
		t.Errorf("EmitLabels should be true when the manifest sets it so")
	}
}

func TestLoadDefaultsFoldToTrue(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name = "demo"
vm_version = "1.0.0"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Fold {
		t.Errorf("Fold should default to true when the manifest omits it")
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `vm_version = "1.0.0"`)

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a manifest with no name")
	}
}

func TestLoadRejectsInvalidIdentifierName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name = "3-bad"
vm_version = "1.0.0"
`)

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a project name that isn't a valid identifier")
	}
}

func TestLoadRejectsInvalidVMVersion(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name = "demo"
vm_version = "not-a-version"
`)

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a non-semver vm_version")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected an error when basecode.toml doesn't exist")
	}
}
