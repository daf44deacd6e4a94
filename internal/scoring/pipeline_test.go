package scoring_test

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/analysis"
	"github.com/fairhire/biasprobe/internal/llm"
	"github.com/fairhire/biasprobe/internal/resume"
	"github.com/fairhire/biasprobe/internal/scoring"
)

// biasedBackend scores each resume deterministically from its body: a fixed
// base plus a gender penalty, with a per-replicate spread so the groups have
// variance to test against.
type biasedBackend struct {
	scores map[string]float64
}

func (b *biasedBackend) Submit(_ context.Context, req llm.Request) (llm.Response, error) {
	for body, score := range b.scores {
		if strings.Contains(req.Prompt, body) {
			return llm.Response{Text: strconv.FormatFloat(score, 'f', -1, 64)}, nil
		}
	}
	return llm.Response{}, llm.Fatalf("prompt does not carry a known resume body")
}

func (b *biasedBackend) Backend() string { return "stub" }
func (b *biasedBackend) Model() string   { return "stub-model" }

type captureSink struct {
	records []scoring.ScoreRecord
}

func (s *captureSink) Append(rec scoring.ScoreRecord) error {
	s.records = append(s.records, rec)
	return nil
}

// TestPipelineRecoversInjectedGenderGap drives a synthesized corpus through
// the full chain: generation plan, scoring run, analysis. The backend awards
// men exactly 10 points more than women, and the report must recover that
// gap as a significant gender comparison.
func TestPipelineRecoversInjectedGenderGap(t *testing.T) {
	jc := resume.JobContext{Role: resume.RoleBackend, Track: resume.TrackSocial, Band: resume.BandMid}
	corpus, err := resume.GeneratePlan(resume.Plan{
		Contexts:    []resume.JobContext{jc},
		Genders:     resume.AllGenders,
		AgeBrackets: []resume.AgeBracket{resume.Age25to34},
		Regions:     []resume.Region{resume.RegionMetro},
		Replicates:  20,
		BaseSeed:    1234,
	})
	if err != nil {
		t.Fatalf("generating corpus: %v", err)
	}
	if len(corpus) != 40 {
		t.Fatalf("expected 40 resumes (2 genders x 20 replicates), got %d", len(corpus))
	}

	// Replicate rank by content seed, so paired gender variants of the same
	// replicate share the same spread term.
	var seeds []int64
	rank := make(map[int64]int)
	for _, r := range corpus {
		if _, ok := rank[r.ContentSeed]; !ok {
			rank[r.ContentSeed] = 0
			seeds = append(seeds, r.ContentSeed)
		}
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	for i, seed := range seeds {
		rank[seed] = i
	}

	backend := &biasedBackend{scores: make(map[string]float64, len(corpus))}
	for _, r := range corpus {
		score := 50 + float64(rank[r.ContentSeed]%5)
		if r.Demographics.Gender == resume.GenderMale {
			score += 10
		}
		backend.scores[r.Body] = score
	}

	sink := &captureSink{}
	runner := scoring.NewRunner(backend, scoring.NewDirect(0, zap.NewNop()), sink, 4, zap.NewNop())

	summary, err := runner.Run(context.Background(), corpus)
	if err != nil {
		t.Fatalf("scoring run: %v", err)
	}
	if summary.Succeeded != len(corpus) {
		t.Fatalf("succeeded = %d, want %d: %+v", summary.Succeeded, len(corpus), summary.Failures)
	}

	report := analysis.Analyze(sink.records, analysis.Config{})
	var cmp analysis.Comparison
	found := false
	for _, c := range report.Comparisons {
		if c.Dimension == analysis.DimensionGender && c.JobContext == jc.String() {
			cmp = c
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no gender comparison for %s in report", jc)
	}

	if cmp.State != analysis.StateOK {
		t.Fatalf("state = %q, want ok", cmp.State)
	}
	if cmp.Method != "welch_t" {
		t.Fatalf("method = %q, want welch_t", cmp.Method)
	}
	if len(cmp.Groups) != 2 || cmp.Groups[0].Value != "female" || cmp.Groups[1].Value != "male" {
		t.Fatalf("groups not in canonical order: %+v", cmp.Groups)
	}

	gap := cmp.Groups[1].Mean - cmp.Groups[0].Mean
	if math.Abs(gap-10) > 1e-9 {
		t.Fatalf("mean gap = %v, want the injected 10 points", gap)
	}
	if cmp.PValue >= 0.01 {
		t.Fatalf("p = %v, want < 0.01 for a 10-point gap at n=20 per group", cmp.PValue)
	}
	if cmp.EffectSize >= 0 {
		t.Fatalf("cohens_d = %v, want negative (female mean lower)", cmp.EffectSize)
	}
}
