package mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkProcessed_FirstAndRepeat(t *testing.T) {
	store := NewWebhookEvents(time.Hour)

	assert.False(t, store.MarkProcessed("evt_1"))
	assert.True(t, store.MarkProcessed("evt_1"))
	assert.False(t, store.MarkProcessed("evt_2"))
}

func TestSeen_DoesNotRecord(t *testing.T) {
	store := NewWebhookEvents(time.Hour)

	assert.False(t, store.Seen("evt_peek"))
	assert.False(t, store.Seen("evt_peek"), "peeking must not count as processing")

	assert.False(t, store.MarkProcessed("evt_peek"))
	assert.True(t, store.Seen("evt_peek"))
}

func TestSeen_RespectsRetention(t *testing.T) {
	store := NewWebhookEvents(10 * time.Millisecond)

	store.MarkProcessed("evt_old")
	time.Sleep(20 * time.Millisecond)
	assert.False(t, store.Seen("evt_old"))
}

func TestMarkProcessed_EmptyIDNeverDeduped(t *testing.T) {
	store := NewWebhookEvents(time.Hour)

	assert.False(t, store.MarkProcessed(""))
	assert.False(t, store.MarkProcessed(""))
}

func TestMarkProcessed_RetentionExpiry(t *testing.T) {
	store := NewWebhookEvents(10 * time.Millisecond)

	assert.False(t, store.MarkProcessed("evt_old"))
	time.Sleep(20 * time.Millisecond)
	assert.False(t, store.MarkProcessed("evt_old"), "expired entries count as unseen")
}

func TestMarkProcessed_Concurrent(t *testing.T) {
	store := NewWebhookEvents(time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	firstSeen := 0

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !store.MarkProcessed("evt_shared") {
				mu.Lock()
				firstSeen++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, firstSeen, "exactly one caller observes the event as new")
}
