package usagelog

import (
	"context"
	"strings"
	"sync"
)

// MemoryLog keeps entries in memory. Useful for tests and for servers that
// should not touch the filesystem.
type MemoryLog struct {
	mu      sync.Mutex
	buf     strings.Builder
	written bool
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(_ context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.WriteString(e.String())
	l.written = true
	return nil
}

func (l *MemoryLog) ReadAll(_ context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.written {
		return "", ErrNoHistory
	}
	return l.buf.String(), nil
}
