package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/hireloop/hireloop-backend/internal/repos/testutil"
	"github.com/hireloop/hireloop-backend/internal/types"
)

func seedHistory(t *testing.T, ctx context.Context, repo MergeHistoryRepo, sourceID, targetID uuid.UUID) *types.MergeHistory {
	t.Helper()
	h := &types.MergeHistory{
		ID:              uuid.New(),
		SourceProjectID: sourceID,
		TargetProjectID: targetID,
		SourceBefore:    datatypes.JSON([]byte("{}")),
		TargetBefore:    datatypes.JSON([]byte("{}")),
		Moves:           datatypes.JSON([]byte("[]")),
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := repo.Create(ctx, nil, []*types.MergeHistory{h}); err != nil {
		t.Fatalf("seed history: %v", err)
	}
	return h
}

func TestMergeHistoryRepoUnreversedFilter(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := NewMergeHistoryRepo(tx, log)
	ctx := context.Background()

	source := testutil.SeedProject(t, ctx, tx, "history source")
	target := testutil.SeedProject(t, ctx, tx, "history target")

	open := seedHistory(t, ctx, repo, source.ID, target.ID)
	closed := seedHistory(t, ctx, repo, source.ID, target.ID)
	now := time.Now().UTC()
	closed.ReversedAt = &now
	if err := repo.Save(ctx, tx, closed); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetUnreversedBySourceIDs(ctx, tx, []uuid.UUID{source.ID})
	if err != nil {
		t.Fatalf("GetUnreversedBySourceIDs: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("got %+v, want only the unreversed history", got)
	}

	all, err := repo.GetUnreversed(ctx, tx)
	if err != nil {
		t.Fatalf("GetUnreversed: %v", err)
	}
	for _, h := range all {
		if h.Reversed() {
			t.Fatalf("GetUnreversed returned a reversed history")
		}
	}
}
