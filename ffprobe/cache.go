package ffprobe

import (
	"sync"

	"github.com/samber/lo"

	"adforge/models"
)

// Cache maps media paths to their audio-stream presence and, lazily, their
// container duration.
//
// Audio presence is resolved eagerly for every distinct segment item before
// any job starts, so the fan-out reads it without locking. Durations are
// probed on first use (a clip's duration only matters when a tail trim or
// synthesized silence needs it) and memoized, including failures, so a bad
// file is probed at most twice across the whole batch.
type Cache struct {
	probe    Prober
	hasAudio map[string]bool

	mu        sync.Mutex
	durations map[string]durationEntry
}

type durationEntry struct {
	seconds float64
	ok      bool
}

// BuildCache probes every distinct item across the given segments for audio
// presence. A probe failure is treated as "no audio": the render then pairs
// the clip with synthesized silence instead of failing the whole batch over
// one unreadable stream header.
//
// Music tracks are not part of the cache; their audio handling is fixed.
func BuildCache(segments []models.Segment, probe Prober) *Cache {
	if probe == nil {
		probe = Probe
	}

	var paths []string
	for _, seg := range segments {
		for _, item := range seg.Items {
			paths = append(paths, item.Path)
		}
	}

	c := &Cache{
		probe:     probe,
		hasAudio:  make(map[string]bool),
		durations: make(map[string]durationEntry),
	}

	for _, path := range lo.Uniq(paths) {
		result, err := probe(path)
		if err != nil {
			c.hasAudio[path] = false
			continue
		}
		c.hasAudio[path] = result.HasAudio()
		// The presence probe already carries the container duration;
		// memoize it so tail trims don't re-invoke ffprobe.
		if d, derr := result.GetDuration(); derr == nil && d > 0 {
			c.durations[path] = durationEntry{seconds: d, ok: true}
		}
	}

	return c
}

// HasAudio reports whether the item at path carries an audio stream.
// Unknown paths (never probed at build time) report false.
func (c *Cache) HasAudio(path string) bool {
	return c.hasAudio[path]
}

// Duration returns the media duration in seconds, probing and memoizing on
// first use. ok is false when the file cannot be probed or reports a
// non-positive duration; callers fall back to the untrimmed clip.
func (c *Cache) Duration(path string) (seconds float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, found := c.durations[path]; found {
		return entry.seconds, entry.ok
	}

	entry := durationEntry{}
	if result, err := c.probe(path); err == nil {
		if d, derr := result.GetDuration(); derr == nil && d > 0 {
			entry = durationEntry{seconds: d, ok: true}
		}
	}
	c.durations[path] = entry
	return entry.seconds, entry.ok
}

// Size returns the number of distinct paths probed at build time.
func (c *Cache) Size() int {
	return len(c.hasAudio)
}
