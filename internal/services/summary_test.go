package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hireloop/hireloop-backend/internal/types"
)

func TestComposeNoLinks(t *testing.T) {
	s := NewSummarySynthesizer()
	got := s.Compose("Orion", 0, nil, nil)
	want := "**Orion**\n\nNo team contributions yet."
	if got != want {
		t.Fatalf("Compose = %q, want %q", got, want)
	}
}

func TestComposeFullSections(t *testing.T) {
	s := NewSummarySynthesizer()

	aliceID := uuid.New()
	bobID := uuid.New()
	candidates := map[uuid.UUID]*types.Candidate{
		aliceID: {ID: aliceID, FullName: "Alice Zhang"},
		bobID:   {ID: bobID, FullName: "Bob Osei"},
	}
	links := []*types.ContributionLink{
		{
			CandidateID:      aliceID,
			Role:             "Tech Lead",
			Description:      "Realtime fleet tracking platform.",
			Responsibilities: []string{"architecture", "code review", "on-call", "hiring"},
			Technologies:     []string{"Go", "Kafka"},
			Impact:           "cut latency 40%",
		},
		{
			CandidateID:  bobID,
			Technologies: []string{"kafka", "Postgres"},
		},
	}

	got := s.Compose("FleetTrack", 2, links, candidates)
	want := "**Overview:** Realtime fleet tracking platform.\n\n" +
		"**Technologies:** Go, Kafka, Postgres\n\n" +
		"**Team Contributions:**\n" +
		"- *Alice Zhang (Tech Lead):* architecture; code review; on-call\n" +
		"- *Bob Osei (Team Member)*\n\n" +
		"**Impact:** cut latency 40%\n\n" +
		"**Team Size:** 2 contributor(s)"
	if got != want {
		t.Fatalf("Compose mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposeDeterministic(t *testing.T) {
	s := NewSummarySynthesizer()

	id := uuid.New()
	candidates := map[uuid.UUID]*types.Candidate{
		id: {ID: id, FullName: "Dana Cole"},
	}
	links := []*types.ContributionLink{
		{CandidateID: id, Role: "Engineer", Technologies: []string{"Redis", "Go"}},
	}

	first := s.Compose("CacheLayer", 1, links, candidates)
	for i := 0; i < 10; i++ {
		if again := s.Compose("CacheLayer", 1, links, candidates); again != first {
			t.Fatalf("Compose not deterministic on run %d:\n%s\nvs\n%s", i, first, again)
		}
	}
}

func TestComposeUnknownCandidate(t *testing.T) {
	s := NewSummarySynthesizer()
	links := []*types.ContributionLink{
		{CandidateID: uuid.New(), Role: "Engineer"},
	}
	got := s.Compose("Ghost", 1, links, map[uuid.UUID]*types.Candidate{})
	want := "**Team Contributions:**\n- *Unknown (Engineer)*\n\n**Team Size:** 1 contributor(s)"
	if got != want {
		t.Fatalf("Compose = %q, want %q", got, want)
	}
}
