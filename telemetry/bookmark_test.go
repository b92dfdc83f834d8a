package telemetry

import (
	"testing"

	"github.com/pthm-cable/critters/config"
)

var bookmarkCfg config.BookmarksConfig

func init() {
	bookmarkCfg = config.Default().Bookmarks
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10, bookmarkCfg)

	alive := []SpeciesStats{{Species: "boui", Alive: 3}, {Species: "predator", Alive: 2}}
	if got := bd.Check(WindowStats{WindowEndTick: 500, Alive: 5}, alive); hasBookmark(got, BookmarkExtinction) {
		t.Error("no extinction while everyone lives")
	}

	gone := []SpeciesStats{{Species: "boui", Alive: 3}, {Species: "predator", Alive: 0, Dead: 2}}
	got := bd.Check(WindowStats{WindowEndTick: 1000, Alive: 3}, gone)
	if !hasBookmark(got, BookmarkExtinction) {
		t.Fatal("expected extinction bookmark")
	}

	// Fires once per extinction
	if got := bd.Check(WindowStats{WindowEndTick: 1500, Alive: 3}, gone); hasBookmark(got, BookmarkExtinction) {
		t.Error("extinction should not fire twice")
	}
}

func TestBookmarkDetector_NeverAliveIsNotExtinct(t *testing.T) {
	bd := NewBookmarkDetector(10, bookmarkCfg)
	got := bd.Check(WindowStats{}, []SpeciesStats{{Species: "boui"}})
	if hasBookmark(got, BookmarkExtinction) {
		t.Error("a species never seen alive cannot go extinct")
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, bookmarkCfg)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 500, Alive: 100}, nil)
	}

	got := bd.Check(WindowStats{WindowEndTick: 3000, Alive: 30}, nil)
	if !hasBookmark(got, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}

	// Peak resets after a crash
	got = bd.Check(WindowStats{WindowEndTick: 3500, Alive: 28}, nil)
	if hasBookmark(got, BookmarkPopulationCrash) {
		t.Error("small follow-up drop should not trigger again")
	}
}

func TestBookmarkDetector_SmallDropIsNotACrash(t *testing.T) {
	bd := NewBookmarkDetector(10, bookmarkCfg)
	bd.Check(WindowStats{Alive: 6}, nil)

	// 66% drop but only 4 animals
	if got := bd.Check(WindowStats{Alive: 2}, nil); hasBookmark(got, BookmarkPopulationCrash) {
		t.Error("drops smaller than min_drop should be ignored")
	}
}

func TestBookmarkDetector_BabyBoom(t *testing.T) {
	bd := NewBookmarkDetector(10, bookmarkCfg)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 500, Alive: 50, Births: 4}, nil)
	}

	got := bd.Check(WindowStats{WindowEndTick: 2000, Alive: 60, Births: 15}, nil)
	if !hasBookmark(got, BookmarkBabyBoom) {
		t.Error("expected baby_boom bookmark")
	}

	got = bd.Check(WindowStats{WindowEndTick: 2500, Alive: 60, Births: 9}, nil)
	if hasBookmark(got, BookmarkBabyBoom) {
		t.Error("births below min_births should not trigger")
	}
}
