package console

import (
	"sync"

	"github.com/google/uuid"
)

type cacheEntry struct {
	data        interface{}
	tags        []string
	subscribers map[string]struct{}
}

// ResponseCache is a session-scoped cache of API responses keyed by request
// fingerprint. Entries carry tags so that a mutation can invalidate every
// cached read it may have stale-ed. One cache belongs to one console session;
// it is not a process-wide singleton.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewResponseCache returns an empty cache
func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached data for a fingerprint
func (rc *ResponseCache) Get(fingerprint string) (interface{}, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[fingerprint]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

// Put stores data under a fingerprint with the given invalidation tags
func (rc *ResponseCache) Put(fingerprint string, data interface{}, tags ...string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[fingerprint]
	if !ok {
		entry = &cacheEntry{subscribers: make(map[string]struct{})}
		rc.entries[fingerprint] = entry
	}
	entry.data = data
	entry.tags = tags
}

// Subscribe registers interest in a fingerprint and returns a release token
func (rc *ResponseCache) Subscribe(fingerprint string) string {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[fingerprint]
	if !ok {
		entry = &cacheEntry{subscribers: make(map[string]struct{})}
		rc.entries[fingerprint] = entry
	}

	token := uuid.NewString()
	entry.subscribers[token] = struct{}{}
	return token
}

// Release drops a subscription token
func (rc *ResponseCache) Release(fingerprint, token string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if entry, ok := rc.entries[fingerprint]; ok {
		delete(entry.subscribers, token)
	}
}

// InvalidateTag removes every entry carrying the tag
func (rc *ResponseCache) InvalidateTag(tag string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for fingerprint, entry := range rc.entries {
		for _, t := range entry.tags {
			if t == tag {
				delete(rc.entries, fingerprint)
				break
			}
		}
	}
}

// Purge drops entries no view subscribes to anymore
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for fingerprint, entry := range rc.entries {
		if len(entry.subscribers) == 0 {
			delete(rc.entries, fingerprint)
		}
	}
}
