package forms

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/linskybing/genie-forms/internal/domain/form"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const reloadDebounce = 300 * time.Millisecond

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFile parses one YAML form definition.
func LoadFile(path string) (form.Definition, error) {
	var def form.Definition
	raw, err := os.ReadFile(path)
	if err != nil {
		return def, err
	}
	if err := yaml.UnmarshalStrict(raw, &def); err != nil {
		return def, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := def.Check(); err != nil {
		return def, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDir parses every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]form.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isDefinitionFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	defs := make([]form.Definition, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		def, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[def.ID]; dup {
			return nil, fmt.Errorf("%w: id %q defined in %s and %s", form.ErrInvalidDefinition, def.ID, prev, name)
		}
		seen[def.ID] = name
		defs = append(defs, def)
	}
	return defs, nil
}

// Reload loads dir into the registry. On error the current set is kept.
func (r *Registry) Reload(dir string) error {
	defs, err := LoadDir(dir)
	if err != nil {
		return err
	}
	return r.Replace(defs)
}

// Watch reloads dir whenever a definition file changes until ctx is done.
func (r *Registry) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isDefinitionFile(ev.Name) || ev.Op == fsnotify.Chmod {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
				} else {
					timer.Reset(reloadDebounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.log.Warn("form watcher error", zap.Error(err))
			case <-fire:
				fire = nil
				if err := r.Reload(dir); err != nil {
					r.log.Error("form reload failed, keeping previous definitions", zap.String("dir", dir), zap.Error(err))
				}
			}
		}
	}()
	return nil
}
