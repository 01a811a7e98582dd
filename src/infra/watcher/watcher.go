package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the library path for audio file changes and emits
// debounced events.
type Watcher struct {
	watcher       *fsnotify.Watcher
	watchPath     string
	extensions    map[string]bool
	debounce      time.Duration
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	lastChange    ChangeType
	running       bool
	stopChan      chan struct{}
	eventChan     chan<- LibraryEvent
}

// NewWatcher creates a new file system watcher. Extensions are lowercase
// with the leading dot.
func NewWatcher(eventChan chan<- LibraryEvent, extensions []string, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[strings.ToLower(ext)] = true
	}

	return &Watcher{
		watcher:    watcher,
		eventChan:  eventChan,
		extensions: extMap,
		debounce:   debounce,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins watching the library path and all its subdirectories.
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting file watcher", "path", watchPath)

	// fsnotify does not watch recursively, every directory is added
	// individually. New directories are picked up from create events.
	err := filepath.WalkDir(watchPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)

	slog.Info("File watcher started successfully")
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

// watchLoop processes file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		// A created path with no extension is likely a new directory,
		// start watching it so nested changes are seen too.
		if filepath.Ext(event.Name) == "" {
			if err := w.watcher.Add(event.Name); err == nil {
				slog.Debug("Watching new directory", "path", event.Name)
			}
		}
	}

	change, relevant := w.classify(event)
	if !relevant {
		return
	}

	slog.Info("Detected library change", "file", event.Name, "change", change)

	// Start or reset the debounce timer
	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	w.lastChange = change
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.emitDebounceEvent()
	})
}

// classify maps an fsnotify event to a library change, filtering out files
// that are not audio.
func (w *Watcher) classify(event fsnotify.Event) (ChangeType, bool) {
	if !w.isSupportedFile(event.Name) {
		return "", false
	}
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		return ChangeCreated, true
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return ChangeRemoved, true
	case event.Op&fsnotify.Write == fsnotify.Write:
		return ChangeModified, true
	default:
		return "", false
	}
}

// isSupportedFile checks if the file is a supported audio format
func (w *Watcher) isSupportedFile(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return w.extensions[ext]
}

// emitDebounceEvent emits a library event after the debounce period
func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	change := w.lastChange
	w.debounceMutex.Unlock()

	event := LibraryEvent{
		Path:      w.watchPath,
		Change:    change,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Info("Emitted library event after debounce", "path", event.Path, "change", event.Change)
	default:
		slog.Warn("Event channel full, dropping library event", "path", event.Path)
	}
}
