// Package segments resolves labeled pools of validated media items from
// directories on disk.
package segments

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"adforge/models"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".m4v":  true,
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

// LoadSegment resolves the labeled video pool under dir.
//
// Every returned item is an existing, non-empty regular file with a
// recognized video extension; symlinks and directories are skipped. Items
// are ordered by filename so the cartesian product, and therefore output
// naming, is stable across runs. An empty pool is a configuration error:
// it would collapse the whole batch to zero combinations.
func LoadSegment(label, dir string) (*models.Segment, error) {
	items, err := loadItems(dir, videoExtensions)
	if err != nil {
		return nil, fmt.Errorf("segment %q: %w", label, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("segment %q: no usable video files in %s", label, dir)
	}
	return models.NewSegment(label, items)
}

// LoadMusic resolves the optional music track pool under dir.
//
// Unlike segment pools, an empty or missing music directory is not an
// error; music is an optional axis.
func LoadMusic(dir string) ([]models.MediaItem, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("music directory does not exist: %s", dir)
	}
	items, err := loadItems(dir, audioExtensions)
	if err != nil {
		return nil, fmt.Errorf("music pool: %w", err)
	}
	return items, nil
}

// loadItems scans dir for validated media files matching the extension set.
func loadItems(dir string, extensions map[string]bool) ([]models.MediaItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var items []models.MediaItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !extensions[ext] {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		// Lstat so symlinks are rejected rather than followed; a pool item
		// must be the file itself.
		info, err := os.Lstat(path)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if info.Size() == 0 {
			continue
		}

		items = append(items, models.MediaItem{
			Name: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path: path,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}
