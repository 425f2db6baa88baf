package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with a freshly loaded config every time the file at
// path is written or replaced. The parent directory is watched so editors
// that save by rename are seen too. Call the returned stop func to end the
// watch.
func Watch(path string, onChange func(*Config, error)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					onChange(LoadConfig(path))
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return watcher.Close, nil
}
