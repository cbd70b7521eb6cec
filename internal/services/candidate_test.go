package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/repos/testutil"
)

func TestCreateCandidateValidation(t *testing.T) {
	h := newHarness(t, defaultTestConfig())

	if _, err := h.candidate.CreateCandidate(context.Background(), "   ", "Engineer", 3); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("blank name: err = %v, want ErrInvalidArgument", err)
	}

	c, err := h.candidate.CreateCandidate(context.Background(), "  Rosa Lind  ", "Engineer", -2)
	if err != nil {
		t.Fatalf("CreateCandidate: %v", err)
	}
	if c.FullName != "Rosa Lind" {
		t.Fatalf("name not trimmed: %q", c.FullName)
	}
	if c.TotalExperienceYears != 0 {
		t.Fatalf("negative experience not clamped: %v", c.TotalExperienceYears)
	}
}

func TestDeleteCandidateRefreshesProjects(t *testing.T) {
	h := newHarness(t, defaultTestConfig())
	ctx := context.Background()

	alice := testutil.SeedCandidate(t, ctx, h.tx, "Alice Zhang")
	bob := testutil.SeedCandidate(t, ctx, h.tx, "Bob Osei")

	shared := testutil.SeedProject(t, ctx, h.tx, "shared pipeline")
	solo := testutil.SeedProject(t, ctx, h.tx, "solo effort")

	testutil.SeedLink(t, ctx, h.tx, alice.ID, shared.ID, "Engineer")
	testutil.SeedLink(t, ctx, h.tx, bob.ID, shared.ID, "Engineer")
	testutil.SeedLink(t, ctx, h.tx, alice.ID, solo.ID, "Engineer")
	if err := h.linker.RefreshDerived(ctx, h.tx, shared.ID, solo.ID); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if err := h.candidate.DeleteCandidate(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteCandidate: %v", err)
	}

	// Candidate and all their links are gone.
	remaining, err := h.candidateRepo.GetByIDs(ctx, h.tx, []uuid.UUID{alice.ID})
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("candidate row survived deletion")
	}
	links, err := h.linkRepo.GetByCandidateIDs(ctx, h.tx, []uuid.UUID{alice.ID})
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("candidate links survived deletion: %d", len(links))
	}

	// Both touched projects recomputed their aggregates.
	projects, err := h.projectRepo.GetByIDs(ctx, h.tx, []uuid.UUID{shared.ID, solo.ID})
	if err != nil {
		t.Fatalf("reload projects: %v", err)
	}
	for _, p := range projects {
		switch p.ID {
		case shared.ID:
			if p.ContributorCount != 1 {
				t.Fatalf("shared project count = %d, want 1", p.ContributorCount)
			}
		case solo.ID:
			if p.ContributorCount != 0 {
				t.Fatalf("solo project count = %d, want 0", p.ContributorCount)
			}
			if p.Summary != "**solo effort**\n\nNo team contributions yet." {
				t.Fatalf("solo project summary not reset: %q", p.Summary)
			}
		}
	}

	if err := h.candidate.DeleteCandidate(ctx, alice.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}
