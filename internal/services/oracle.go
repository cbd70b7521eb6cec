package services

import (
	"context"

	"github.com/hireloop/hireloop-backend/internal/types"
)

// OracleVerdict is the judgment returned for a borderline pair.
type OracleVerdict struct {
	Affirmed   bool    `json:"affirmed"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// ConfirmationOracle judges whether two project descriptors describe the same
// real-world project. Implementations are external (LLM-backed in production,
// fakes in tests); callers must treat any error as a non-affirming answer.
type ConfirmationOracle interface {
	Judge(ctx context.Context, a, b types.ProjectDescriptor) (OracleVerdict, error)
}

// oracleBudget caps the number of oracle consultations per ingestion batch.
// Once exhausted, remaining borderline cases resolve to "distinct project".
type oracleBudget struct {
	remaining int
}

func newOracleBudget(limit int) *oracleBudget {
	return &oracleBudget{remaining: limit}
}

func (b *oracleBudget) allow() bool {
	if b == nil || b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}
