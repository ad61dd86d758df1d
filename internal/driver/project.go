package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/diag"
	"github.com/lang-l/lc/internal/parser"
)

// EntryGlob is the pattern used to discover a project's entry files: every
// top-level source file, with nested modules reached only through a
// `mod name;` forward declaration rather than by being globbed directly.
const EntryGlob = "*" + SourceExt

// Project is a resolved set of compilation units, one per entry file.
type Project struct {
	Root  string
	Units []*ast.CompilationUnit
}

// LoadProject discovers every entry file directly under srcDir, parses and
// resolves them concurrently, and collects any failures into diagnostics
// rather than stopping at the first one.
func LoadProject(ctx context.Context, srcDir string) (*Project, []diag.Diagnostic, error) {
	entries, err := discoverEntryFiles(srcDir)
	if err != nil {
		return nil, nil, err
	}

	units := make([]*ast.CompilationUnit, len(entries))
	collector := diag.NewCollector()

	g, _ := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			diag.Debugf("parsing %s", entry)

			unit, err := ParseFile(entry)
			if err != nil {
				var pErr *parser.Error
				if errors.As(err, &pErr) {
					collector.Add(diag.FromParseError(entry, pErr))
				} else {
					collector.Add(diag.Diagnostic{FilePath: entry, Message: err.Error()})
				}
				return nil
			}

			units[i] = unit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	compact := units[:0]
	for _, u := range units {
		if u != nil {
			compact = append(compact, u)
		}
	}

	return &Project{Root: srcDir, Units: compact}, collector.All(), nil
}

func discoverEntryFiles(srcDir string) ([]string, error) {
	fsys := os.DirFS(srcDir)
	matches, err := doublestar.Glob(fsys, EntryGlob)
	if err != nil {
		return nil, fmt.Errorf("driver: glob %s: %w", srcDir, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(srcDir, m))
	}
	sort.Strings(out)
	return out, nil
}
