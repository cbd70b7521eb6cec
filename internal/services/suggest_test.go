package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hireloop/hireloop-backend/internal/repos/testutil"
)

func TestSuggestPairsRanksAndScreens(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	ctx := context.Background()

	big := testutil.SeedProject(t, ctx, h.tx, "orbit scheduler")
	big.ContributorCount = 3
	if err := h.projectRepo.Save(ctx, h.tx, big); err != nil {
		t.Fatalf("save: %v", err)
	}
	small := testutil.SeedProject(t, ctx, h.tx, "orbit scheduling")
	small.ContributorCount = 1
	if err := h.projectRepo.Save(ctx, h.tx, small); err != nil {
		t.Fatalf("save: %v", err)
	}
	testutil.SeedProject(t, ctx, h.tx, "billing portal")

	suggestions, err := h.suggest.SuggestPairs(ctx, 0, 5)
	if err != nil {
		t.Fatalf("SuggestPairs: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(suggestions))
	}
	s := suggestions[0]
	if s.TargetProjectID != big.ID || s.SourceProjectID != small.ID {
		t.Fatalf("direction wrong: the better-established project should be the target: %+v", s)
	}
	if s.Score < 0.82 || s.Score >= 1.0 {
		t.Fatalf("score out of expected band: %v", s.Score)
	}
	if s.Confidence != 0.9 || s.Reason != "same project" {
		t.Fatalf("oracle verdict not carried through: %+v", s)
	}
	if h.oracle.calls != 1 {
		t.Fatalf("oracle calls = %d, want 1", h.oracle.calls)
	}
}

func TestSuggestPairsSkipsOracleFailures(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	h.oracle.err = fmt.Errorf("judge offline")
	ctx := context.Background()

	testutil.SeedProject(t, ctx, h.tx, "orbit scheduler")
	testutil.SeedProject(t, ctx, h.tx, "orbit scheduling")

	suggestions, err := h.suggest.SuggestPairs(ctx, 0, 5)
	if err != nil {
		t.Fatalf("SuggestPairs must not fail on oracle errors: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("unconfirmed pair suggested: %+v", suggestions)
	}
}

func TestSuggestPairsTieBreaksOnAge(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	ctx := context.Background()

	older := testutil.SeedProject(t, ctx, h.tx, "orbit scheduler")
	older.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	if err := h.projectRepo.Save(ctx, h.tx, older); err != nil {
		t.Fatalf("save: %v", err)
	}
	newer := testutil.SeedProject(t, ctx, h.tx, "orbit scheduling")

	suggestions, err := h.suggest.SuggestPairs(ctx, 0, 5)
	if err != nil {
		t.Fatalf("SuggestPairs: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(suggestions))
	}
	if suggestions[0].TargetProjectID != older.ID || suggestions[0].SourceProjectID != newer.ID {
		t.Fatalf("equal contributor counts should keep the older project as target: %+v", suggestions[0])
	}
}
