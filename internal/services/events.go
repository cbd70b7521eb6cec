package services

import "context"

// Event names published on the bus after a settle point commits.
const (
	EventProjectLinked    = "project.linked"
	EventProjectMerged    = "project.merged"
	EventProjectUnmerged  = "project.unmerged"
	EventCandidateDeleted = "candidate.deleted"
)

// EventPublisher broadcasts lifecycle events to interested consumers (admin
// UI, audit tooling). Publishing is best-effort: failures are logged by the
// caller and never fail the transaction that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}
