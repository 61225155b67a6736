package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the global configuration whenever the config file changes.
// It watches the containing directory so editors that replace the file
// (rename-over-write) are still seen. Watch blocks until stop is closed.
func Watch(stop <-chan struct{}) error {
	cfg := Get()
	configFile := cfg.ConfigFilePath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(configFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(configFile), err)
	}

	log.Printf("Watching %s for configuration changes", configFile)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != configFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := Reload(); err != nil {
				log.Printf("Configuration reload failed: %v", err)
				continue
			}
			log.Println("Configuration reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Configuration watch error: %v", err)
		case <-stop:
			return nil
		}
	}
}
