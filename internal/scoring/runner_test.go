package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fairhire/biasprobe/internal/llm"
	"github.com/fairhire/biasprobe/internal/resume"
)

// memorySink records appended score records in order.
type memorySink struct {
	records []ScoreRecord
	err     error
}

func (s *memorySink) Append(rec ScoreRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func testCorpus(n int) []*resume.Resume {
	corpus := make([]*resume.Resume, 0, n)
	for i := 0; i < n; i++ {
		corpus = append(corpus, testResume("r"+string(rune('0'+i))))
	}
	return corpus
}

func TestRunnerRecordsEveryResume(t *testing.T) {
	client := &stubClient{fn: func(int, llm.Request) (llm.Response, error) {
		return llm.Response{Text: "70"}, nil
	}}
	sink := &memorySink{}
	runner := NewRunner(client, NewDirect(0, nil), sink, 3, nil)

	summary, err := runner.Run(context.Background(), testCorpus(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 5 || summary.Failed != 0 || summary.Pending != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(sink.records) != 5 {
		t.Fatalf("persisted %d records, want 5", len(sink.records))
	}

	rec := sink.records[0]
	if rec.Backend != "stub" || rec.Model != "stub-model" {
		t.Fatalf("record missing backend provenance: %+v", rec)
	}
	if rec.Protocol != ProtocolDirect {
		t.Fatalf("record protocol = %q, want %q", rec.Protocol, ProtocolDirect)
	}
	if rec.JobContext.Role != resume.RoleBackend || rec.Demographics.Gender != resume.GenderFemale {
		t.Fatalf("record missing stratification fields: %+v", rec)
	}
}

func TestRunnerIsolatesScoringFailures(t *testing.T) {
	// One resume always produces unparseable output; the rest score fine.
	client := &stubClient{fn: func(_ int, req llm.Request) (llm.Response, error) {
		if strings.Contains(req.Prompt, "r2") {
			return llm.Response{Text: "unable to comply"}, nil
		}
		return llm.Response{Text: "64"}, nil
	}}
	sink := &memorySink{}
	runner := NewRunner(client, NewDirect(0, nil), sink, 2, nil)

	summary, err := runner.Run(context.Background(), testCorpus(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Succeeded != 4 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Failures[FailureScoring] != 1 {
		t.Fatalf("failure classification: %+v", summary.Failures)
	}

	var failed *ScoreRecord
	for i := range sink.records {
		if sink.records[i].Failed {
			failed = &sink.records[i]
		}
	}
	if failed == nil {
		t.Fatal("no failed record persisted")
	}
	if failed.ResumeID != "r2" || failed.FailureKind != FailureScoring {
		t.Fatalf("unexpected failed record: %+v", failed)
	}
	if failed.FailureDetail == "" {
		t.Fatal("failed record has no detail")
	}
}

func TestRunnerAbortsOnFatalError(t *testing.T) {
	client := &stubClient{fn: func(int, llm.Request) (llm.Response, error) {
		return llm.Response{}, llm.Fatalf("api key revoked")
	}}
	sink := &memorySink{}
	runner := NewRunner(client, NewDirect(0, nil), sink, 1, nil)

	summary, err := runner.Run(context.Background(), testCorpus(8))
	if err == nil {
		t.Fatal("expected a run-level error after a fatal backend rejection")
	}
	if !strings.Contains(err.Error(), "api key revoked") {
		t.Fatalf("error does not carry the fatal detail: %v", err)
	}
	if summary.Succeeded != 0 {
		t.Fatalf("succeeded = %d, want 0", summary.Succeeded)
	}
	if summary.Failures[FailureFatal] == 0 {
		t.Fatalf("no fatal failure recorded: %+v", summary.Failures)
	}
	if summary.Pending == 0 {
		t.Fatal("fatal abort should leave pending resumes unstarted")
	}
	if got := summary.Succeeded + summary.Failed + summary.Pending; got != summary.Total {
		t.Fatalf("summary does not account for all resumes: %+v", summary)
	}
}

func TestRunnerCancellationLeavesPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &stubClient{fn: func(int, llm.Request) (llm.Response, error) {
		return llm.Response{Text: "70"}, nil
	}}
	sink := &memorySink{}
	runner := NewRunner(client, NewDirect(0, nil), sink, 2, nil)

	summary, err := runner.Run(ctx, testCorpus(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Pending != summary.Total {
		t.Fatalf("pending = %d, want %d", summary.Pending, summary.Total)
	}
	if len(sink.records) != 0 {
		t.Fatalf("persisted %d records after pre-canceled run, want 0", len(sink.records))
	}
}

func TestRunnerSurfacesSinkErrors(t *testing.T) {
	client := &stubClient{fn: func(int, llm.Request) (llm.Response, error) {
		return llm.Response{Text: "70"}, nil
	}}
	sink := &memorySink{err: errors.New("disk full")}
	runner := NewRunner(client, NewDirect(0, nil), sink, 2, nil)

	_, err := runner.Run(context.Background(), testCorpus(3))
	if err == nil {
		t.Fatal("expected persistence errors to surface")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("error does not carry the sink failure: %v", err)
	}
}
