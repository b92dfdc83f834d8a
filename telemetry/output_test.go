package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/critters/config"
)

func TestNewOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v %v", om, err)
	}
	// Methods are nil-safe
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	m := NewManifest(42, []string{"guineapig"}, 1000)
	if err := om.WriteManifest(m); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 500, Alive: 10 * i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePopulation([]SpeciesStats{{WindowEndTick: 500, Species: "guineapig", Alive: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkBabyBoom, Tick: 500, Description: "boom"}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,alive,") {
		t.Errorf("unexpected header %q", lines[0])
	}

	manifest, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(manifest), m.RunID) {
		t.Error("manifest should contain the run id")
	}

	for _, name := range []string{"config.yaml", "population.csv", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}
