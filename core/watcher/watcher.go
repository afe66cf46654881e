package watcher

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/swan2flowdroid/core/logger"
)

// FileWatcher calls OnChange after the watched file's content changes. The
// parent directory is watched so editors that replace the file on save are
// still picked up.
type FileWatcher struct {
	Path     string
	Debounce time.Duration
	OnChange func() error

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timer    *time.Timer
	lastHash string

	// fireMu keeps at most one OnChange running; they write the same output.
	fireMu sync.Mutex
}

func NewFileWatcher(path string, debounce time.Duration, onChange func() error) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to add watcher for %s: %w", filepath.Dir(abs), err)
	}

	fw := &FileWatcher{
		Path:     abs,
		Debounce: debounce,
		OnChange: onChange,
		watcher:  w,
	}
	// Seed the hash so the first event for unchanged content is ignored.
	fw.lastHash, _ = hashFile(abs)
	return fw, nil
}

// Watch blocks until ctx is done or the watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	logger.Info("Watching %s for changes", fw.Path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.shouldHandle(event) {
				continue
			}
			logger.Debug("File event: %s %s", event.Op, event.Name)
			fw.debounce()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) shouldHandle(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (fw *FileWatcher) debounce() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.Debounce, fw.fire)
}

func (fw *FileWatcher) fire() {
	fw.fireMu.Lock()
	defer fw.fireMu.Unlock()

	changed, err := fw.changed()
	if err != nil {
		logger.Warn("Cannot read %s: %v", fw.Path, err)
		return
	}
	if !changed {
		logger.Debug("Content of %s unchanged, skipping", fw.Path)
		return
	}

	logger.Debug("File changes detected, converting...")
	if err := fw.OnChange(); err != nil {
		logger.Error("Conversion failed: %v", err)
	}
}

// changed reports whether the file hash differs from the last one seen and
// records the new hash.
func (fw *FileWatcher) changed() (bool, error) {
	hash, err := hashFile(fw.Path)
	if err != nil {
		return false, err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if hash == fw.lastHash {
		return false, nil
	}
	fw.lastHash = hash
	return true, nil
}

func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()

	return fw.watcher.Close()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
