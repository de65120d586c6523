package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionStorePutGet(t *testing.T) {
	store := NewSubmissionStore(time.Minute, time.Minute)
	defer store.Stop()

	sub := Submission{FullName: "Asha", Email: "asha@example.com", PDFURL: "https://example.com/poem.pdf"}
	store.Put("abc", sub)

	got, ok := store.Get("abc")
	assert.True(t, ok)
	assert.Equal(t, sub, got)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestSubmissionStoreExpiry(t *testing.T) {
	store := NewSubmissionStore(10*time.Millisecond, time.Hour)
	defer store.Stop()

	store.Put("abc", Submission{FullName: "Asha"})
	time.Sleep(20 * time.Millisecond)

	// Lazy expiry applies even before the janitor runs.
	_, ok := store.Get("abc")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSubmissionStoreJanitorSweep(t *testing.T) {
	store := NewSubmissionStore(5*time.Millisecond, 10*time.Millisecond)
	defer store.Stop()

	store.Put("abc", Submission{FullName: "Asha"})
	time.Sleep(50 * time.Millisecond)

	store.mu.Lock()
	remaining := len(store.entries)
	store.mu.Unlock()
	assert.Equal(t, 0, remaining)
}

func TestSubmissionStoreDelete(t *testing.T) {
	store := NewSubmissionStore(time.Minute, time.Minute)
	defer store.Stop()

	store.Put("abc", Submission{FullName: "Asha"})
	store.Delete("abc")

	_, ok := store.Get("abc")
	assert.False(t, ok)
}
