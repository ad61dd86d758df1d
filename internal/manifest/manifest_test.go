package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/manifest"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, manifest.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
package:
  name: demo
  version: 0.1.0
profile:
  dev:
    release: false
    opt_level: 0
    debug_info: true
dependencies:
  core:
    path: ../core
`)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Package.Name)
	assert.Equal(t, "../core", m.Dependencies["core"].Path)
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "package:\n  version: 0.1.0\n")
	_, err := manifest.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsAmbiguousDependencySource(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
package:
  name: demo
  version: 0.1.0
dependencies:
  core:
    path: ../core
    git: https://example.com/core.git
`)
	_, err := manifest.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidSemver(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "package:\n  name: demo\n  version: not-a-version\n")
	_, err := manifest.Load(path)
	require.Error(t, err)
}

func TestFindUpWalksToParentDirectory(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package:\n  name: demo\n  version: 0.1.0\n")

	nested := filepath.Join(root, "src", "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := manifest.FindUp(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, manifest.FileName), found)
}

func TestResolveProfile(t *testing.T) {
	m := &manifest.Manifest{Profile: manifest.DefaultProfiles()}
	p, err := m.ResolveProfile("release")
	require.NoError(t, err)
	assert.True(t, p.Release)
	assert.Equal(t, 3, p.OptLevel)

	_, err = m.ResolveProfile("missing")
	require.Error(t, err)
}
