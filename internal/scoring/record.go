// Package scoring runs resume corpora through LLM scoring protocols and
// records one immutable ScoreRecord per (resume, protocol, backend).
package scoring

import (
	"github.com/fairhire/biasprobe/internal/resume"
)

// ProtocolKind identifies the scoring strategy a record was produced under.
// It is stamped on every record so results are never mixed across protocols
// during aggregation.
type ProtocolKind string

const (
	ProtocolDirect ProtocolKind = "direct"
	ProtocolMetric ProtocolKind = "metric"
)

// FailureKind classifies terminal scoring failures.
type FailureKind string

const (
	// FailureScoring marks retries exhausted or unusable model output.
	FailureScoring FailureKind = "scoring_failure"
	// FailureFatal marks a non-retryable backend rejection.
	FailureFatal FailureKind = "fatal_error"
	// FailureCanceled marks a request abandoned by run cancellation.
	FailureCanceled FailureKind = "canceled"
)

// ScoreRecord is the result of evaluating one resume under one protocol
// against one backend. Failed records carry the failure classification
// instead of a synthetic score. Stratification fields are denormalized from
// the resume so analysis never needs the resume corpus.
type ScoreRecord struct {
	ResumeID     string              `json:"resume_id"`
	Protocol     ProtocolKind        `json:"protocol"`
	Backend      string              `json:"backend"`
	Model        string              `json:"model"`
	JobContext   resume.JobContext   `json:"job_context"`
	Demographics resume.Demographics `json:"demographics"`

	Score    float64            `json:"score"`
	Criteria map[string]float64 `json:"criteria,omitempty"`
	Attempts int                `json:"attempts"`

	Failed        bool        `json:"failed"`
	FailureKind   FailureKind `json:"failure_kind,omitempty"`
	FailureDetail string      `json:"failure_detail,omitempty"`
}
