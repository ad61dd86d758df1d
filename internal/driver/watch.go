package driver

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/lang-l/lc/internal/diag"
)

// Watch reparses srcDir from scratch every time a ".l" file directly in
// srcDir changes, calling onReload with the result; subdirectories are not
// watched. There is no incremental
// state between reloads: a single edited file still triggers a full
// LoadProject, the same as running the build once by hand.
func Watch(ctx context.Context, srcDir string, onReload func(*Project, []diag.Diagnostic, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("driver: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(srcDir); err != nil {
		return fmt.Errorf("driver: watch: %w", err)
	}

	reload := func() {
		project, diags, err := LoadProject(ctx, srcDir)
		onReload(project, diags, err)
	}

	reload()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSourceEvent(event) {
				continue
			}
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			diag.Debugf("watch error: %v", err)
		}
	}
}

func isSourceEvent(event fsnotify.Event) bool {
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}
	return len(event.Name) > len(SourceExt) && event.Name[len(event.Name)-len(SourceExt):] == SourceExt
}
