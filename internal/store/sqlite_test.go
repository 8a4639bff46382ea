package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "verified.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	// Empty database loads an empty log.
	initial, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(initial) != 0 {
		t.Fatalf("expected empty log, got %d", len(initial))
	}

	want := []model.VerifiedQuote{
		{
			Text:                    "Call no man happy until he is dead.",
			Speaker:                 "Solon",
			Book:                    "1",
			ContextBefore:           "before",
			ContextAfter:            "after",
			HistoricallySignificant: true,
			Notes:                   "checked against translation",
			VerificationDate:        time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
			OriginalAttribution: model.Attribution{
				Speaker: "Solon", Confidence: 0.95, PatternMatched: "basic_quote",
			},
		},
		{
			Text:             "In peace sons bury fathers.",
			Speaker:          "Croesus",
			Book:             "1",
			VerificationDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			OriginalAttribution: model.Attribution{
				Speaker: "Croesus", Confidence: 0.8, PatternMatched: "quote_first",
			},
		},
	}

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d quotes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i].Text || got[i].Speaker != want[i].Speaker {
			t.Errorf("quote %d mismatch: %+v", i, got[i])
		}
		if got[i].HistoricallySignificant != want[i].HistoricallySignificant {
			t.Errorf("quote %d significance = %v", i, got[i].HistoricallySignificant)
		}
		if !got[i].VerificationDate.Equal(want[i].VerificationDate) {
			t.Errorf("quote %d date = %v, want %v", i, got[i].VerificationDate, want[i].VerificationDate)
		}
		if got[i].OriginalAttribution != want[i].OriginalAttribution {
			t.Errorf("quote %d attribution = %+v", i, got[i].OriginalAttribution)
		}
	}
}

func TestSQLiteStore_SaveReplacesSnapshot(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "verified.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	if err := s.Save(ctx, sample(5)); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(ctx, sample(2)); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d quotes after replace, want 2", len(got))
	}
}
