package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/resume"
)

// Filter represents a single selection step applied to the resume corpus
// before scoring.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(corpus []*resume.Resume) ([]*resume.Resume, Step, error)
}

// Step describes the result of executing a filter step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// RunFilters executes the supplied filters sequentially, returning the
// resumes left to score.
func RunFilters(logger *zap.Logger, filters []Filter, corpus []*resume.Resume) ([]*resume.Resume, error) {
	for _, step := range filters {
		if !step.IsEnabled() {
			if logger != nil {
				logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(corpus)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if logger != nil {
			logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		corpus = next
	}

	return corpus, nil
}

type alreadyScoredFilter struct {
	disabled bool
	reason   string
	scored   map[string]bool
}

// NewAlreadyScored creates the checkpoint filter: resumes that already have a
// non-failed record for this protocol and backend are skipped, so an
// interrupted run resumes where it stopped. Failed records do not count as
// scored and are attempted again.
func NewAlreadyScored(records []ScoreRecord, protocol ProtocolKind, backend string) Filter {
	scored := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Protocol != protocol || rec.Backend != backend {
			continue
		}
		if rec.Failed {
			continue
		}
		scored[rec.ResumeID] = true
	}
	return &alreadyScoredFilter{scored: scored}
}

func (f *alreadyScoredFilter) Name() string { return "already_scored" }

func (f *alreadyScoredFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *alreadyScoredFilter) IsEnabled() bool { return !f.disabled }

func (f *alreadyScoredFilter) Apply(corpus []*resume.Resume) ([]*resume.Resume, Step, error) {
	initial := len(corpus)
	left := make([]*resume.Resume, 0, initial)
	for _, r := range corpus {
		if f.scored[r.ID] {
			continue
		}
		left = append(left, r)
	}
	return left, Step{Initial: initial, Dropped: initial - len(left), Left: len(left)}, nil
}

type jobContextFilter struct {
	disabled bool
	reason   string
	want     resume.JobContext
}

// NewJobContext creates a filter restricting the run to a single screening
// scenario.
func NewJobContext(want resume.JobContext) Filter {
	return &jobContextFilter{want: want}
}

func (f *jobContextFilter) Name() string { return "job_context" }

func (f *jobContextFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *jobContextFilter) IsEnabled() bool { return !f.disabled }

func (f *jobContextFilter) Apply(corpus []*resume.Resume) ([]*resume.Resume, Step, error) {
	if err := f.want.Validate(); err != nil {
		return nil, Step{}, err
	}

	initial := len(corpus)
	left := make([]*resume.Resume, 0, initial)
	for _, r := range corpus {
		if r.JobContext != f.want {
			continue
		}
		left = append(left, r)
	}
	return left, Step{Initial: initial, Dropped: initial - len(left), Left: len(left)}, nil
}
