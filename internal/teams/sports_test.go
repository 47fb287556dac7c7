package teams

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryDefaultsWithoutDataDir(t *testing.T) {
	r := NewRegistry(t.TempDir(), discardLogger())

	if got := r.SportID("Basketball"); got != 4 {
		t.Errorf("SportID(Basketball) = %d, want 4", got)
	}
	if got := r.SportID("Underwater Hockey"); got != 4 {
		t.Errorf("SportID fallback = %d, want 4", got)
	}
	ids := r.LeagueIDs("Basketball", "NBA")
	if len(ids) != 1 || ids[0] != 493 {
		t.Errorf("LeagueIDs fallback = %v, want [493]", ids)
	}
}

func TestRegistryLoadsMappingFiles(t *testing.T) {
	dir := t.TempDir()
	sports := `{"sports": [{"id": 4, "name": "Basketball"}, {"id": 15, "name": "Football"}]}`
	if err := os.WriteFile(filepath.Join(dir, "sports.json"), []byte(sports), 0o644); err != nil {
		t.Fatal(err)
	}
	leagues := `{"leagues": [{"id": 493, "name": "NBA"}, {"id": 487, "name": "NCAA"}]}`
	if err := os.WriteFile(filepath.Join(dir, "basketball.json"), []byte(leagues), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir, discardLogger())

	if got := r.SportID("football"); got != 15 {
		t.Errorf("SportID(football) = %d, want 15", got)
	}
	ids := r.LeagueIDs("Basketball", "ncaa")
	if len(ids) != 1 || ids[0] != 487 {
		t.Errorf("LeagueIDs(ncaa) = %v, want [487]", ids)
	}
	// Unknown league still yields a usable scope.
	ids = r.LeagueIDs("Basketball", "Intergalactic")
	if len(ids) != 1 || ids[0] != 493 {
		t.Errorf("LeagueIDs(unknown) = %v, want [493]", ids)
	}
}
