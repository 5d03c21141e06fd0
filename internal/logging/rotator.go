package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	bytesPerMB        = 1024 * 1024
)

// Rotator is an io.Writer over a log file that renames the file aside once
// it grows past maxSize and keeps at most maxBackups rotated copies.
type Rotator struct {
	mu         sync.Mutex
	dir        string
	name       string
	maxSize    int64
	maxBackups int
	file       *os.File
	size       int64
}

// NewRotator opens dir/name for appending.
func NewRotator(dir, name string, maxSizeMB, maxBackups int) (*Rotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	r := &Rotator{
		dir:        dir,
		name:       name,
		maxSize:    int64(maxSizeMB) * bytesPerMB,
		maxBackups: maxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rotator) path() string {
	return filepath.Join(r.dir, r.name)
}

func (r *Rotator) open() error {
	if info, err := os.Stat(r.path()); err == nil {
		r.size = info.Size()
	} else {
		r.size = 0
	}
	f, err := os.OpenFile(r.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	r.file = f
	return nil
}

func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *Rotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	r.file = nil

	backup := fmt.Sprintf("%s.%s", r.path(), time.Now().Format("20060102-150405.000"))
	if err := os.Rename(r.path(), backup); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	r.prune()
	return r.open()
}

// prune removes the oldest backups beyond maxBackups.
func (r *Rotator) prune() {
	if r.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return
	}
	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), r.name+".") {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= r.maxBackups {
		return
	}
	// Timestamp suffixes sort lexically in age order.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-r.maxBackups] {
		_ = os.Remove(filepath.Join(r.dir, name))
	}
}

// Close closes the current file.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
