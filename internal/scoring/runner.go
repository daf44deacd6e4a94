package scoring

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fairhire/biasprobe/internal/llm"
	"github.com/fairhire/biasprobe/internal/resume"
)

const defaultWorkers = 4

// RecordSink receives score records as they are produced. Appends happen
// from a single goroutine, so implementations need not be concurrency-safe.
type RecordSink interface {
	Append(rec ScoreRecord) error
}

// Summary reports the outcome of a scoring run. Pending counts resumes the
// run never started, after cancellation or a fatal abort.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Pending   int
	Failures  map[FailureKind]int
}

// Runner drives a resume corpus through one protocol with a bounded worker
// pool. Records are persisted incrementally so an interrupted run loses at
// most the in-flight requests.
type Runner struct {
	client   Submitting
	protocol Protocol
	sink     RecordSink
	workers  int
	logger   *zap.Logger
}

// NewRunner creates a scoring runner. Workers of zero or less selects the
// default pool size.
func NewRunner(client Submitting, protocol Protocol, sink RecordSink, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		client:   client,
		protocol: protocol,
		sink:     sink,
		workers:  workers,
		logger:   logger,
	}
}

// Run scores every resume in the corpus. Per-resume failures are recorded and
// do not stop the run; a fatal backend error aborts it, since every further
// request would fail the same way. Cancellation lets in-flight requests
// finish and leaves pending resumes unstarted.
func (r *Runner) Run(ctx context.Context, corpus []*resume.Resume) (Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	summary := Summary{Total: len(corpus), Failures: make(map[FailureKind]int)}
	records := make(chan ScoreRecord)

	var sinkErr error
	var fatalDetail string
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for rec := range records {
			if err := r.sink.Append(rec); err != nil {
				sinkErr = multierr.Append(sinkErr, fmt.Errorf("persist record for %s: %w", rec.ResumeID, err))
			}
			if rec.Failed {
				summary.Failed++
				summary.Failures[rec.FailureKind]++
				if rec.FailureKind == FailureFatal && fatalDetail == "" {
					fatalDetail = rec.FailureDetail
				}
			} else {
				summary.Succeeded++
			}

			r.logger.Info("resume scored",
				zap.String("resume_id", rec.ResumeID),
				zap.String("protocol", string(rec.Protocol)),
				zap.Float64("score", rec.Score),
				zap.Bool("failed", rec.Failed),
				zap.Int("done", summary.Succeeded+summary.Failed),
				zap.Int("total", summary.Total),
			)
		}
	}()

	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for _, res := range corpus {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec := r.score(ctx, res)
			if rec.FailureKind == FailureFatal {
				// Every remaining request would hit the same rejection.
				cancel()
			}
			records <- rec
			return nil
		})
	}
	_ = g.Wait()
	close(records)
	<-collected

	summary.Pending = summary.Total - summary.Succeeded - summary.Failed

	err := sinkErr
	if fatalDetail != "" {
		err = multierr.Append(err, fmt.Errorf("run aborted on fatal backend error: %s", fatalDetail))
	} else if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = multierr.Append(err, ctx.Err())
	} else if ctx.Err() != nil && summary.Pending > 0 {
		r.logger.Warn("run canceled with pending resumes", zap.Int("pending", summary.Pending))
	}
	return summary, err
}

func (r *Runner) score(ctx context.Context, res *resume.Resume) ScoreRecord {
	rec := ScoreRecord{
		ResumeID:     res.ID,
		Protocol:     r.protocol.Kind(),
		Backend:      r.client.Backend(),
		Model:        r.client.Model(),
		JobContext:   res.JobContext,
		Demographics: res.Demographics,
	}

	result, err := r.protocol.Score(ctx, r.client, res)
	rec.Attempts = result.Attempts
	if err != nil {
		rec.Failed = true
		rec.FailureDetail = err.Error()
		switch {
		case errors.Is(err, context.Canceled):
			rec.FailureKind = FailureCanceled
		case llm.IsFatal(err):
			rec.FailureKind = FailureFatal
		default:
			rec.FailureKind = FailureScoring
		}
		return rec
	}

	rec.Score = result.Score
	rec.Criteria = result.Criteria
	return rec
}
