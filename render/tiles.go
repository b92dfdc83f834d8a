package render

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// deadSuffix marks the tile drawn for a species' corpses, e.g. predator_dead.png.
const deadSuffix = "_dead"

// TileSet holds one icon per species and state, scaled to a square tile.
// It is safe for concurrent use.
type TileSet struct {
	size int

	mu     sync.RWMutex
	alive  map[string]image.Image
	dead   map[string]image.Image
	warned map[string]bool
}

// NewTileSet creates an empty tile set. Tiles are scaled to fit size x size.
func NewTileSet(size int) *TileSet {
	return &TileSet{
		size:   size,
		alive:  make(map[string]image.Image),
		dead:   make(map[string]image.Image),
		warned: make(map[string]bool),
	}
}

// LoadDir loads every PNG in dir. Files that fail to decode are logged and
// skipped.
func (t *TileSet) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading tiles dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isTile(e.Name()) {
			continue
		}
		if err := t.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			slog.Warn("tile_load_failed", "file", e.Name(), "error", err)
		}
	}
	return nil
}

// LoadFile loads one tile. The file name without extension is the species,
// with a "_dead" suffix for the corpse icon.
func (t *TileSet) LoadFile(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	img = imaging.Fit(img, t.size, t.size, imaging.Lanczos)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t.mu.Lock()
	defer t.mu.Unlock()
	if species, ok := strings.CutSuffix(name, deadSuffix); ok {
		t.dead[species] = img
	} else {
		t.alive[name] = img
		delete(t.warned, name)
	}
	return nil
}

// Get returns the tile for a species. A missing corpse tile falls back to a
// grayscale copy of the living one. ok is false when the species has no
// tile at all and a marker should be drawn instead.
func (t *TileSet) Get(species string, dead bool) (image.Image, bool) {
	t.mu.RLock()
	alive, hasAlive := t.alive[species]
	corpse, hasDead := t.dead[species]
	t.mu.RUnlock()

	switch {
	case !dead && hasAlive:
		return alive, true
	case dead && hasDead:
		return corpse, true
	case dead && hasAlive:
		gray := imaging.Grayscale(alive)
		t.mu.Lock()
		t.dead[species] = gray
		t.mu.Unlock()
		return gray, true
	}

	t.warnMissing(species)
	return nil, false
}

func (t *TileSet) warnMissing(species string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.warned[species] {
		return
	}
	t.warned[species] = true
	slog.Warn("tile_missing", "species", species)
}

func isTile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".png")
}

// TileWatcher reloads tiles when files in the tiles directory change.
type TileWatcher struct {
	watcher *fsnotify.Watcher
	tiles   *TileSet
	done    chan struct{}
}

// WatchTiles starts watching dir and loading changed tiles into t.
func WatchTiles(t *TileSet, dir string) (*TileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating tile watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	tw := &TileWatcher{watcher: w, tiles: t, done: make(chan struct{})}
	go tw.loop()
	return tw, nil
}

func (tw *TileWatcher) loop() {
	defer close(tw.done)
	for {
		select {
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isTile(event.Name) {
				continue
			}
			if err := tw.tiles.LoadFile(event.Name); err != nil {
				// Editors often write in several steps; the next event retries.
				slog.Debug("tile_reload_failed", "file", event.Name, "error", err)
				continue
			}
			slog.Info("tile_reloaded", "file", filepath.Base(event.Name))
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("tile_watcher_error", "error", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (tw *TileWatcher) Close() error {
	err := tw.watcher.Close()
	<-tw.done
	return err
}
