package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vtgrid/tilefilter/pkg/filter"
)

func TestLoadDir(t *testing.T) {
	got, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(got))
	}
	// Sorted by name.
	if got[0].Name != "basemap" || got[1].Name != "overlay" {
		t.Fatalf("profile order = %s, %s", got[0].Name, got[1].Name)
	}
	if len(got[0].Source) == 0 {
		t.Error("source document not retained")
	}

	f := filter.NewGenericFilter(got[0].Desc)
	if f.WantsLayer("debug_tiles", 5) {
		t.Error("basemap should ignore debug layers")
	}
	if !f.WantsPointFeature("poi", filter.GeometryPoint, 14) {
		t.Error("basemap should process poi points at level 14")
	}
	if f.WantsPointFeature("poi", filter.GeometryPoint, 10) {
		t.Error("poi rule is bounded to min_level 12")
	}

	f = filter.NewGenericFilter(got[1].Desc)
	if !f.WantsLayer("water", 3) {
		t.Error("overlay should process water")
	}
	if f.WantsLayer("buildings", 3) {
		t.Error("overlay is deny-by-default")
	}
}

func TestLoadDirBadProfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("layers: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected error for broken profile")
	}
}

func TestLoadDirDuplicateName(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"a.yaml", filepath.Join("sub", "a.yml")} {
		if err := os.WriteFile(filepath.Join(dir, p), []byte("defaults: {layers: true}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected duplicate-name error")
	}
}
