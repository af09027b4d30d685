package history

import (
	"strings"
	"sync"
)

// Buffer is an append-only, in-memory line history
type Buffer struct {
	mu      sync.Mutex
	entries []string
}

// NewBuffer creates an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Add appends line
func (b *Buffer) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, line)
}

// Entries returns a copy of every line in submission order
func (b *Buffer) Entries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of recorded lines
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
