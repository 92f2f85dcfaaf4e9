package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BatchItem is one certificate of a batch. Items without an ID get a
// generated one.
type BatchItem struct {
	ID      string
	Config  TemplateConfig
	Context RenderContext
}

type BatchSuccess struct {
	ItemID string
	Result *RenderResult
}

type BatchFailure struct {
	Item BatchItem
	Err  *BatchItemFailedError
}

// BatchResult partitions a batch. Every input item appears exactly once.
type BatchResult struct {
	Succeeded []BatchSuccess
	Failed    []BatchFailure
}

type batchJob struct {
	index int
	item  BatchItem
}

type batchOutcome struct {
	index  int
	item   BatchItem
	result *RenderResult
	err    error
}

// GenerateBatch renders every item through the fallback chain with a bounded
// number of workers. One item failing, or panicking, never affects another.
// Results keep the input order inside each partition.
func (p *Pipeline) GenerateBatch(ctx context.Context, items []BatchItem) *BatchResult {
	result := &BatchResult{}
	if len(items) == 0 {
		return result
	}

	numWorkers := min(p.workers, len(items))
	started := time.Now()
	slog.Info("Batch Starting workers", "workers", numWorkers, "items", len(items))

	jobChan := make(chan batchJob, len(items))
	resultChan := make(chan batchOutcome, len(items))

	var wg sync.WaitGroup
	for i := range numWorkers {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobChan {
				slog.Debug("Batch Rendering item", "worker", workerID, "item_id", job.item.ID)
				resultChan <- p.renderItem(ctx, job)
			}
		}(i)
	}

	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		jobChan <- batchJob{index: i, item: item}
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	outcomes := make([]batchOutcome, len(items))
	for outcome := range resultChan {
		outcomes[outcome.index] = outcome
	}

	for _, outcome := range outcomes {
		if outcome.err != nil {
			result.Failed = append(result.Failed, BatchFailure{
				Item: outcome.item,
				Err:  &BatchItemFailedError{ItemID: outcome.item.ID, Err: outcome.err},
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, BatchSuccess{ItemID: outcome.item.ID, Result: outcome.result})
	}

	slog.Info("Batch Completed",
		"items", len(items),
		"successful", len(result.Succeeded),
		"errors", len(result.Failed),
		"duration", time.Since(started))
	return result
}

func (p *Pipeline) renderItem(ctx context.Context, job batchJob) (outcome batchOutcome) {
	outcome = batchOutcome{index: job.index, item: job.item}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Batch Item panicked", "item_id", job.item.ID, "panic", r)
			outcome.result = nil
			outcome.err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		outcome.err = err
		return outcome
	}

	rctx := job.item.Context
	if rctx.ParticipantID == "" {
		rctx.ParticipantID = job.item.ID
	}
	outcome.result, outcome.err = p.Generate(ctx, job.item.Config, rctx)
	return outcome
}

// documentRun adapts a multi-page render to the Backend contract so that it
// runs under the same deadline and validation as a single attempt.
type documentRun struct {
	backend *PaginatedBackend
	jobs    []*Job
}

func (d documentRun) Name() string {
	return d.backend.Name()
}

func (d documentRun) Render(ctx context.Context, _ *Job) (*Output, error) {
	return d.backend.RenderPages(ctx, d.jobs)
}

// GenerateDocument renders one combined PDF with a page per context. There is
// no fallback chain: a failure is reported as ChainExhausted with its single
// attempt.
func (p *Pipeline) GenerateDocument(ctx context.Context, cfg TemplateConfig, contexts []RenderContext) (*RenderResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.document == nil {
		return nil, fmt.Errorf("%w: no paginated backend configured", ErrChainExhausted)
	}
	if len(contexts) == 0 {
		return nil, &ConfigInvalidError{Problems: []string{"at least one render context is required"}}
	}

	result := &RenderResult{}
	jobs := make([]*Job, len(contexts))
	for i, rctx := range contexts {
		job, degradations := p.prepare(ctx, cfg, rctx)
		jobs[i] = job
		result.Degradations = append(result.Degradations, degradations...)
	}

	run := documentRun{backend: p.document, jobs: jobs}
	attempt, out := p.runAttempt(ctx, run, jobs[0], p.documentTimeout)
	result.Attempts = []RenderAttempt{attempt}
	if attempt.Status != AttemptSuccess {
		result.Status = StatusExhausted
		slog.Error("Pipeline Document failed", "template_id", cfg.ID, "pages", len(jobs), "error", attempt.Err)
		return result, &ChainExhaustedError{Attempts: result.Attempts}
	}

	result.Status = StatusRendered
	result.Bytes = out.Bytes
	result.MimeType = out.MimeType
	result.Backend = run.Name()
	slog.Info("Pipeline Document rendered", "template_id", cfg.ID, "pages", len(jobs), "bytes", len(out.Bytes))
	return result, nil
}
