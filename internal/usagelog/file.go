package usagelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileLog appends entries to a text file. Writers are serialized by a mutex
// and every write opens the file with O_APPEND, so existing content is never
// rewritten.
type FileLog struct {
	mu   sync.Mutex
	path string
}

// NewFileLog returns a log backed by path. The file is created on first append.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Path returns the backing file path.
func (l *FileLog) Path() string {
	return l.path
}

func (l *FileLog) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if _, err := f.WriteString(e.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append history: %w", err)
	}
	return f.Close()
}

func (l *FileLog) ReadAll(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoHistory
	}
	if err != nil {
		return "", fmt.Errorf("read history: %w", err)
	}
	return string(b), nil
}
