package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/repos/testutil"
)

func TestProjectRepoGetActiveExcludesTombstones(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := NewProjectRepo(tx, log)
	ctx := context.Background()

	active := testutil.SeedProject(t, ctx, tx, "active one")
	merged := testutil.SeedProject(t, ctx, tx, "merged away")
	now := time.Now().UTC()
	merged.MergedIntoID = &active.ID
	merged.MergedAt = &now
	if err := repo.Save(ctx, tx, merged); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetActive(ctx, tx, 0)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	for _, p := range got {
		if p.ID == merged.ID {
			t.Fatalf("tombstone returned by GetActive")
		}
	}
	found := false
	for _, p := range got {
		if p.ID == active.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("active project missing from GetActive")
	}
}

func TestProjectRepoGetByMergedIntoIDs(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := NewProjectRepo(tx, log)
	ctx := context.Background()

	parent := testutil.SeedProject(t, ctx, tx, "parent")
	child := testutil.SeedProject(t, ctx, tx, "child")
	now := time.Now().UTC()
	child.MergedIntoID = &parent.ID
	child.MergedAt = &now
	if err := repo.Save(ctx, tx, child); err != nil {
		t.Fatalf("save: %v", err)
	}

	children, err := repo.GetByMergedIntoIDs(ctx, tx, []uuid.UUID{parent.ID})
	if err != nil {
		t.Fatalf("GetByMergedIntoIDs: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("children = %+v, want the merged child", children)
	}

	none, err := repo.GetByMergedIntoIDs(ctx, tx, nil)
	if err != nil {
		t.Fatalf("empty ids: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty id list returned rows")
	}
}

func TestProjectRepoAdvisoryLockNoopOffPostgres(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := NewProjectRepo(tx, log)

	if err := repo.AdvisoryLockName(context.Background(), tx, "some project"); err != nil {
		t.Fatalf("AdvisoryLockName on sqlite: %v", err)
	}
}
