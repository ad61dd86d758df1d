package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/driver"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseFileResolvesSiblingExternalModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.l"), `mod app { mod sub; fn f() -> i32 { return 0; } }`)
	writeFile(t, filepath.Join(dir, "sub.l"), `mod sub { const X: i32 = 1; }`)

	unit, err := driver.ParseFile(filepath.Join(dir, "main.l"))
	require.NoError(t, err)
	require.Len(t, unit.Modules, 1)

	var sawConst, sawExternal bool
	for _, item := range unit.Modules[0].Contents {
		switch item.Get().(type) {
		case *ast.ConstantDecl:
			sawConst = true
		case *ast.ExternalModuleDecl:
			sawExternal = true
		}
	}
	assert.True(t, sawConst, "spliced submodule's const should appear in parent's contents")
	assert.False(t, sawExternal, "forward declaration should be replaced after splicing")
}

func TestParseFileResolvesDirectoryModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.l"), `mod app { mod sub; }`)
	writeFile(t, filepath.Join(dir, "sub", "mod.l"), `mod sub { const X: i32 = 2; }`)

	unit, err := driver.ParseFile(filepath.Join(dir, "main.l"))
	require.NoError(t, err)
	require.Len(t, unit.Modules[0].Contents, 1)
	_, ok := unit.Modules[0].Contents[0].Get().(*ast.ConstantDecl)
	assert.True(t, ok)
}

func TestParseFileReportsMissingExternalModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.l"), `mod app { mod missing; }`)

	_, err := driver.ParseFile(filepath.Join(dir, "main.l"))
	require.Error(t, err)
}

func TestLoadProjectCollectsMultipleEntryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.l"), `mod a {}`)
	writeFile(t, filepath.Join(dir, "b.l"), `mod b {}`)

	project, diags, err := driver.LoadProject(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Len(t, project.Units, 2)
}

func TestLoadProjectReportsPerFileParseErrorsWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.l"), `mod a {}`)
	writeFile(t, filepath.Join(dir, "bad.l"), `mod a { fn f( }`)

	project, diags, err := driver.LoadProject(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Len(t, project.Units, 1)
}
