package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hireloop/hireloop-backend/internal/types"
)

func SeedCandidate(tb testing.TB, ctx context.Context, tx *gorm.DB, fullName string) *types.Candidate {
	tb.Helper()
	c := &types.Candidate{
		ID:                   uuid.New(),
		FullName:             fullName,
		PrimaryRole:          "Software Engineer",
		TotalExperienceYears: 5,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed candidate: %v", err)
	}
	return c
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Project {
	tb.Helper()
	p := &types.Project{
		ID:           uuid.New(),
		Name:         name,
		Technologies: datatypes.JSONSlice[string]{},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedLink(tb testing.TB, ctx context.Context, tx *gorm.DB, candidateID, projectID uuid.UUID, role string) *types.ContributionLink {
	tb.Helper()
	l := &types.ContributionLink{
		ID:          uuid.New(),
		CandidateID: candidateID,
		ProjectID:   projectID,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed link: %v", err)
	}
	return l
}

func PtrInt(v int) *int { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
