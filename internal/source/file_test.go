package source

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileSourcePending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bets_today.json")
	payload := `[
		{
			"id": 1001,
			"sport": "Basketball",
			"league": "NBA",
			"visitor": "Warriors",
			"home": "Lakers",
			"bet_type": "spread",
			"the_bet": "Warriors -4.5",
			"line": -4.5,
			"period": "match"
		},
		{
			"id": 1002,
			"sport": "Basketball",
			"league": "NCAAB",
			"visitor": "",
			"home": "",
			"bet_type": "moneyline",
			"the_bet": "duke ml",
			"line": 0,
			"period": "match"
		}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileSource(path, testLogger())
	bets, err := s.Pending(context.Background())
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(bets) != 2 {
		t.Fatalf("len = %d, want 2", len(bets))
	}
	if bets[0].ID != 1001 || bets[0].Visitor != "Warriors" || bets[0].BetType != "spread" {
		t.Errorf("bets[0] = %+v", bets[0])
	}
	if bets[0].Line.String() != "-4.5" {
		t.Errorf("line = %s, want -4.5", bets[0].Line)
	}
	if bets[1].TheBet != "duke ml" {
		t.Errorf("bets[1].TheBet = %q", bets[1].TheBet)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	s := NewFileSource(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	bets, err := s.Pending(context.Background())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(bets) != 0 {
		t.Errorf("len = %d, want 0", len(bets))
	}
}

func TestFileSourceMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bets_today.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileSource(path, testLogger())
	if _, err := s.Pending(context.Background()); err == nil {
		t.Error("malformed file should error")
	}
}
