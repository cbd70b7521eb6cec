package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/hireloop/hireloop-backend/internal/logger"
	apperrors "github.com/hireloop/hireloop-backend/internal/pkg/errors"
	"github.com/hireloop/hireloop-backend/internal/services"
	"github.com/hireloop/hireloop-backend/internal/types"
)

const judgeSystemPrompt = `You are a strict entity-resolution judge for resume projects.
Given two project descriptors, decide whether they describe the SAME real-world
project. Different phases, rewrites or team subsets of one project count as the
same project. Similar-sounding but unrelated efforts do not. Answer only via
the provided schema.`

var judgeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"affirmed": map[string]any{
			"type":        "boolean",
			"description": "true when both descriptors name the same real-world project",
		},
		"confidence": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 1,
		},
		"reason": map[string]any{
			"type":        "string",
			"description": "one short sentence explaining the judgment",
		},
	},
	"required":             []string{"affirmed", "confidence", "reason"},
	"additionalProperties": false,
}

// Judge is the LLM-backed ConfirmationOracle for borderline project matches.
type Judge struct {
	log    *logger.Logger
	client Client
}

func NewJudge(log *logger.Logger, client Client) *Judge {
	return &Judge{
		log:    log.With("service", "OpenAIJudge"),
		client: client,
	}
}

var _ services.ConfirmationOracle = (*Judge)(nil)

func (j *Judge) Judge(ctx context.Context, a, b types.ProjectDescriptor) (services.OracleVerdict, error) {
	user := fmt.Sprintf("Project A:\n%s\nProject B:\n%s", renderDescriptor(a), renderDescriptor(b))

	obj, err := j.client.GenerateJSON(ctx, judgeSystemPrompt, user, "project_match_verdict", judgeSchema)
	if err != nil {
		return services.OracleVerdict{}, fmt.Errorf("judge request: %v: %w", err, apperrors.ErrOracleUnavailable)
	}

	verdict := services.OracleVerdict{}
	if v, ok := obj["affirmed"].(bool); ok {
		verdict.Affirmed = v
	}
	if v, ok := obj["confidence"].(float64); ok {
		verdict.Confidence = v
	}
	if v, ok := obj["reason"].(string); ok {
		verdict.Reason = v
	}
	return verdict, nil
}

func renderDescriptor(d types.ProjectDescriptor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  name: %s\n", d.Name)
	if d.Organization != "" {
		fmt.Fprintf(&sb, "  organization: %s\n", d.Organization)
	}
	if d.Description != "" {
		fmt.Fprintf(&sb, "  description: %s\n", d.Description)
	}
	if len(d.Technologies) > 0 {
		fmt.Fprintf(&sb, "  technologies: %s\n", strings.Join(d.Technologies, ", "))
	}
	return sb.String()
}
