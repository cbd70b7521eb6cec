package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/repos/testutil"
)

func TestListProjectsPartition(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	ctx := context.Background()

	ongoing := testutil.SeedProject(t, ctx, h.tx, "ongoing work")
	ongoing.StartDate = "2024-01"
	if err := h.projectRepo.Save(ctx, h.tx, ongoing); err != nil {
		t.Fatalf("save: %v", err)
	}

	present := testutil.SeedProject(t, ctx, h.tx, "still running")
	present.StartDate = "2022-05"
	present.EndDate = "Present"
	if err := h.projectRepo.Save(ctx, h.tx, present); err != nil {
		t.Fatalf("save: %v", err)
	}

	finished := testutil.SeedProject(t, ctx, h.tx, "finished work")
	finished.StartDate = "2020-01"
	finished.EndDate = "2021-03"
	if err := h.projectRepo.Save(ctx, h.tx, finished); err != nil {
		t.Fatalf("save: %v", err)
	}

	dateless := testutil.SeedProject(t, ctx, h.tx, "dateless work")

	listing, err := h.project.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if listing.Total != 4 {
		t.Fatalf("Total = %d, want 4", listing.Total)
	}

	inOngoing := map[uuid.UUID]bool{}
	for _, d := range listing.Ongoing {
		inOngoing[d.ID] = true
	}
	if !inOngoing[ongoing.ID] || !inOngoing[present.ID] {
		t.Fatalf("open-ended projects not in ongoing: %v", inOngoing)
	}
	if inOngoing[finished.ID] || inOngoing[dateless.ID] {
		t.Fatalf("closed or dateless projects listed as ongoing")
	}
	if len(listing.Archived) != 2 {
		t.Fatalf("Archived = %d, want 2", len(listing.Archived))
	}
}

func TestGetProjectMembersSorted(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	ctx := context.Background()

	junior := testutil.SeedCandidate(t, ctx, h.tx, "Jae Kim")
	junior.TotalExperienceYears = 2
	if err := h.tx.WithContext(ctx).Save(junior).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	senior := testutil.SeedCandidate(t, ctx, h.tx, "Sam Rowe")
	senior.TotalExperienceYears = 12
	if err := h.tx.WithContext(ctx).Save(senior).Error; err != nil {
		t.Fatalf("save: %v", err)
	}

	p := testutil.SeedProject(t, ctx, h.tx, "team effort")
	testutil.SeedLink(t, ctx, h.tx, junior.ID, p.ID, "Engineer")
	testutil.SeedLink(t, ctx, h.tx, senior.ID, p.ID, "Architect")

	detail, err := h.project.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if len(detail.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(detail.Members))
	}
	if detail.Members[0].CandidateID != senior.ID {
		t.Fatalf("members not sorted by experience: %+v", detail.Members)
	}
	if detail.Members[0].FullName != "Sam Rowe" {
		t.Fatalf("member name not joined from candidate: %+v", detail.Members[0])
	}
}

func TestGetProjectShowsMergedChildren(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	ctx := context.Background()

	source := testutil.SeedProject(t, ctx, h.tx, "child effort")
	target := testutil.SeedProject(t, ctx, h.tx, "parent effort")

	history, err := h.merge.Merge(ctx, source.ID, target.ID, "")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	detail, err := h.project.GetProject(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if len(detail.MergedChildren) != 1 {
		t.Fatalf("merged children = %d, want 1", len(detail.MergedChildren))
	}
	child := detail.MergedChildren[0]
	if child.ProjectID != source.ID || child.Name != "child effort" {
		t.Fatalf("wrong merged child: %+v", child)
	}
	if child.MergeHistoryID == nil || *child.MergeHistoryID != history.ID {
		t.Fatalf("merge history id not attached: %+v", child)
	}

	// After unmerge the child detaches.
	if err := h.merge.Unmerge(ctx, history.ID); err != nil {
		t.Fatalf("unmerge: %v", err)
	}
	detail, err = h.project.GetProject(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetProject after unmerge: %v", err)
	}
	if len(detail.MergedChildren) != 0 {
		t.Fatalf("merged children after unmerge = %d, want 0", len(detail.MergedChildren))
	}
}

func TestGetProjectErrors(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	if _, err := h.project.GetProject(context.Background(), uuid.Nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("nil id: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := h.project.GetProject(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing: err = %v, want ErrNotFound", err)
	}
}
