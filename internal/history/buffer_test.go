package history

import (
	"sync"
	"testing"
)

func TestBuffer_AddAndEntries(t *testing.T) {
	b := NewBuffer()
	b.Add("help")
	b.Add("   ")
	b.Add("")
	b.Add("whoami")

	got := b.Entries()
	if len(got) != 2 || got[0] != "help" || got[1] != "whoami" {
		t.Errorf("Entries() = %q, want [help whoami]", got)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}

	// Entries returns a copy
	got[0] = "mutated"
	if b.Entries()[0] != "help" {
		t.Error("Entries() should not expose internal storage")
	}
}

func TestBuffer_ConcurrentAdd(t *testing.T) {
	b := NewBuffer()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Add("line")
		}()
	}
	wg.Wait()

	if b.Len() != 50 {
		t.Errorf("Len() = %d, want 50", b.Len())
	}
}
