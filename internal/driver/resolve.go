// Package driver turns a project's source tree into a set of
// fully-resolved CompilationUnits (it does not read the l.yaml manifest;
// that is internal/manifest's job): it reads each entry file, parses
// it, and recursively resolves every `mod name;` forward declaration to a
// sibling file, splicing the resolved module back into its parent.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/parser"
)

// SourceExt is the extension source files are expected to carry.
const SourceExt = ".l"

// ParseFile parses path and resolves every external module declaration it
// contains, recursively, splicing each resolved submodule's contents into
// its parent module.
func ParseFile(path string) (*ast.CompilationUnit, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "mod"+SourceExt)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	unit, err := parser.Parse(path, string(source))
	if err != nil {
		return nil, err
	}

	for _, module := range unit.Modules {
		if err := resolveExternalModules(path, module); err != nil {
			return nil, err
		}
	}

	return unit, nil
}

// resolveExternalModules finds every ExternalModuleDecl directly inside
// module, resolves it to a file, parses that file, and appends the
// resolved file's top-level modules' contents into module in place of the
// forward declaration.
func resolveExternalModules(parentPath string, module *ast.Module) error {
	var spliced []ast.Handle[ast.ModuleDefItem]

	for _, item := range module.Contents {
		ext, ok := item.Get().(*ast.ExternalModuleDecl)
		if !ok {
			spliced = append(spliced, item)
			continue
		}

		childPath, err := resolveModulePath(parentPath, ext.Name.Name)
		if err != nil {
			return err
		}

		childUnit, err := ParseFile(childPath)
		if err != nil {
			return err
		}

		for _, childModule := range childUnit.Modules {
			spliced = append(spliced, childModule.Contents...)
		}
	}

	module.Contents = spliced

	for _, item := range module.Contents {
		if nested, ok := item.Get().(*ast.Module); ok {
			if err := resolveExternalModules(parentPath, nested); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveModulePath finds the file a `mod name;` forward declaration
// refers to, preferring a sibling "name.l" file and falling back to a
// "name/mod.l" directory module.
func resolveModulePath(parentPath, name string) (string, error) {
	base := filepath.Dir(parentPath)

	direct := filepath.Join(base, name+SourceExt)
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	nested := filepath.Join(base, name, "mod"+SourceExt)
	if _, err := os.Stat(nested); err == nil {
		return nested, nil
	}

	return "", fmt.Errorf("driver: external module %q not found at %s or %s", name, direct, nested)
}
