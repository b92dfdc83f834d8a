package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/critters/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkBabyBoom        BookmarkType = "baby_boom"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPeak int             // peak living population since the last crash
	seenAlive  map[string]bool // species that had living members in an earlier window
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		seenAlive:   make(map[string]bool),
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats, species []SpeciesStats) []Bookmark {
	var bookmarks []Bookmark

	bookmarks = append(bookmarks, bd.checkExtinctions(stats, species)...)

	if b := bd.checkPopulationCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkBabyBoom(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.Alive > bd.recentPeak {
		bd.recentPeak = stats.Alive
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkExtinctions fires once per species when its last living member dies.
func (bd *BookmarkDetector) checkExtinctions(stats WindowStats, species []SpeciesStats) []Bookmark {
	var bookmarks []Bookmark
	for _, sp := range species {
		if sp.Alive > 0 {
			bd.seenAlive[sp.Species] = true
			continue
		}
		if bd.seenAlive[sp.Species] {
			delete(bd.seenAlive, sp.Species)
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkExtinction,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("Species %s went extinct", sp.Species),
			})
		}
	}
	return bookmarks
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Alive)/float64(bd.recentPeak)
	if dropPercent > bd.cfg.PopulationCrash.DropPercent && stats.Alive <= bd.recentPeak-bd.cfg.PopulationCrash.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Alive

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Alive),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkBabyBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 || stats.Births < bd.cfg.BabyBoom.MinBirths {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Births
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.Births) >= avg*bd.cfg.BabyBoom.Multiplier {
		return &Bookmark{
			Type:        BookmarkBabyBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d births against a recent average of %.1f", stats.Births, avg),
		}
	}

	return nil
}
