package cache

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"gridcal/internal/calendar"
)

const memEntries = 32

// Cache is a read-through store for month windows of events, keyed by
// (calendarID, timeMin, timeMax). A small in-memory LRU sits in front of
// JSON files under the config directory. A window is always replaced whole,
// never merged, and every mutation on a calendar drops all of its windows.
type Cache struct {
	baseDir string
	ttl     time.Duration
	mem     *lru.Cache[string, entry]
}

type entry struct {
	FetchedAt time.Time        `json:"fetched_at"`
	Events    []calendar.Event `json:"events"`
}

// New creates a cache rooted under ~/.config/gridcal/cache. Entries older
// than ttl are treated as misses.
func New(ttl time.Duration) (*Cache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	mem, err := lru.New[string, entry](memEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{
		baseDir: filepath.Join(homeDir, ".config", "gridcal", "cache"),
		ttl:     ttl,
		mem:     mem,
	}, nil
}

func windowKey(calendarID string, timeMin, timeMax time.Time) string {
	return fmt.Sprintf("%s/%d-%d", url.PathEscape(calendarID), timeMin.Unix(), timeMax.Unix())
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.baseDir, key+".json")
}

// Get returns the cached events for a window, or ok=false on a miss or a
// stale entry.
func (c *Cache) Get(calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, bool) {
	key := windowKey(calendarID, timeMin, timeMax)

	if e, ok := c.mem.Get(key); ok {
		if time.Since(e.FetchedAt) < c.ttl {
			return e.Events, true
		}
		c.mem.Remove(key)
	}

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if time.Since(e.FetchedAt) >= c.ttl {
		return nil, false
	}
	c.mem.Add(key, e)
	return e.Events, true
}

// Put replaces a window's contents (atomic write).
func (c *Cache) Put(calendarID string, timeMin, timeMax time.Time, events []calendar.Event) error {
	key := windowKey(calendarID, timeMin, timeMax)
	e := entry{FetchedAt: time.Now(), Events: events}
	c.mem.Add(key, e)

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Invalidate drops every cached window for a calendar. Called after any
// create, update or delete against that calendar.
func (c *Cache) Invalidate(calendarID string) error {
	prefix := url.PathEscape(calendarID) + "/"
	for _, key := range c.mem.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.mem.Remove(key)
		}
	}
	err := os.RemoveAll(filepath.Join(c.baseDir, url.PathEscape(calendarID)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear wipes the whole cache, memory and disk.
func (c *Cache) Clear() error {
	c.mem.Purge()
	err := os.RemoveAll(c.baseDir)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
