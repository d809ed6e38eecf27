// Package watcher reports debounced changes of individual files.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files and delivers their paths on a channel after
// they stop changing for the debounce interval. The parent directory is
// watched so editors that replace the file on save are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	timers  map[string]*time.Timer
	changes chan string
	closed  bool
	done    chan struct{}
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  w,
		debounce: debounce,
		log:      slog.Default().With("component", "watcher"),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		changes:  make(chan string, 8),
		done:     make(chan struct{}),
	}, nil
}

// Watch adds files to the watch list
func (fw *FileWatcher) Watch(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}
		fw.files[absPath] = true
		fw.log.Debug("watching", "file", absPath)
	}
	return nil
}

// Changes delivers the absolute path of every changed file. It is closed by Close.
func (fw *FileWatcher) Changes() <-chan string {
	return fw.changes
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		defer close(fw.done)
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.log.Warn("watcher error", "error", err)
			}
		}
	}()
}

// handleFileChange restarts the debounce timer of a watched file
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed || !fw.files[filePath] {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.emit(filePath)
	})
}

func (fw *FileWatcher) emit(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	delete(fw.timers, filePath)
	if fw.closed {
		return
	}
	select {
	case fw.changes <- filePath:
		fw.log.Debug("file changed", "file", filePath)
	default:
		fw.log.Debug("change dropped, consumer is behind", "file", filePath)
	}
}

// Close stops the watcher and closes the Changes channel
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
	fw.mu.Unlock()

	err := fw.watcher.Close()
	select {
	case <-fw.done:
	case <-time.After(time.Second):
	}

	fw.mu.Lock()
	close(fw.changes)
	fw.mu.Unlock()
	return err
}
