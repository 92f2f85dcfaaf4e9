package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

type AttemptStatus string

const (
	AttemptPending AttemptStatus = "pending"
	AttemptRunning AttemptStatus = "running"
	AttemptSuccess AttemptStatus = "success"
	AttemptFailed  AttemptStatus = "failed"
)

// RenderAttempt records one backend invocation.
type RenderAttempt struct {
	Backend  string        `json:"backend"`
	Status   AttemptStatus `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

type ResultStatus string

const (
	StatusRendered  ResultStatus = "rendered"
	StatusExhausted ResultStatus = "exhausted"
)

// Degradation notes an optional element that was left out of the output.
type Degradation struct {
	Element string `json:"element"`
	Reason  string `json:"reason"`
}

type RenderResult struct {
	Status       ResultStatus    `json:"status"`
	Bytes        []byte          `json:"-"`
	MimeType     string          `json:"mimeType,omitempty"`
	Backend      string          `json:"backend,omitempty"`
	Attempts     []RenderAttempt `json:"attempts"`
	Degradations []Degradation   `json:"degradations,omitempty"`
}

const (
	DefaultAttemptTimeout  = 10 * time.Second
	DefaultDocumentTimeout = 60 * time.Second
	DefaultAssetTimeout    = 5 * time.Second
)

type Options struct {
	// Backends in priority order.
	Backends        []Backend
	AttemptTimeout  time.Duration
	DocumentTimeout time.Duration
	Workers         int
	Assets          AssetFetcher
	Policy          FormatPolicy
	// Document renders GenerateDocument output. Optional.
	Document *PaginatedBackend
}

// Pipeline validates a template, prepares its assets and walks the backend
// priority list until one backend yields a valid document.
type Pipeline struct {
	backends        []Backend
	attemptTimeout  time.Duration
	documentTimeout time.Duration
	workers         int
	assets          AssetFetcher
	policy          FormatPolicy
	document        *PaginatedBackend
}

func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		backends:        append([]Backend(nil), opts.Backends...),
		attemptTimeout:  opts.AttemptTimeout,
		documentTimeout: opts.DocumentTimeout,
		workers:         opts.Workers,
		assets:          opts.Assets,
		policy:          opts.Policy.normalized(),
		document:        opts.Document,
	}
	if p.attemptTimeout <= 0 {
		p.attemptTimeout = DefaultAttemptTimeout
	}
	if p.documentTimeout <= 0 {
		p.documentTimeout = DefaultDocumentTimeout
	}
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}
	if p.assets == nil {
		p.assets = NewHTTPAssetFetcher(DefaultAssetTimeout)
	}
	return p
}

// Backends returns the configured priority list by name.
func (p *Pipeline) Backends() []string {
	names := make([]string, len(p.backends))
	for i, b := range p.backends {
		names[i] = b.Name()
	}
	return names
}

// Backend looks up a configured backend by name.
func (p *Pipeline) Backend(name string) (Backend, bool) {
	for _, b := range p.backends {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

func (p *Pipeline) Policy() FormatPolicy {
	return p.policy
}

// Generate renders one certificate using the configured priority list.
func (p *Pipeline) Generate(ctx context.Context, cfg TemplateConfig, rctx RenderContext) (*RenderResult, error) {
	return p.GenerateWith(ctx, cfg, rctx, p.backends)
}

// GenerateWith renders one certificate trying the given backends in order. The
// returned error is either a *ConfigInvalidError (no attempt made) or a
// *ChainExhaustedError, in which case the result is still returned with its
// attempts.
func (p *Pipeline) GenerateWith(ctx context.Context, cfg TemplateConfig, rctx RenderContext, priority []Backend) (*RenderResult, error) {
	if err := cfg.Validate(); err != nil {
		slog.Warn("Pipeline Config rejected", "template_id", cfg.ID, "participant_id", rctx.ParticipantID, "error", err)
		return nil, err
	}

	job, degradations := p.prepare(ctx, cfg, rctx)
	result := &RenderResult{
		Attempts:     make([]RenderAttempt, 0, len(priority)),
		Degradations: degradations,
	}

	for _, backend := range priority {
		if ctx.Err() != nil {
			break
		}

		attempt, out := p.runAttempt(ctx, backend, job, p.attemptTimeout)
		result.Attempts = append(result.Attempts, attempt)
		if attempt.Status != AttemptSuccess {
			slog.Warn("Pipeline Attempt failed",
				"backend", attempt.Backend,
				"participant_id", rctx.ParticipantID,
				"duration", attempt.Duration,
				"error", attempt.Err)
			continue
		}

		result.Status = StatusRendered
		result.Bytes = out.Bytes
		result.MimeType = out.MimeType
		result.Backend = backend.Name()
		slog.Info("Pipeline Render succeeded",
			"backend", result.Backend,
			"participant_id", rctx.ParticipantID,
			"attempts", len(result.Attempts),
			"bytes", len(out.Bytes))
		return result, nil
	}

	result.Status = StatusExhausted
	slog.Error("Pipeline Chain exhausted", "participant_id", rctx.ParticipantID, "attempts", len(result.Attempts))
	return result, &ChainExhaustedError{Attempts: result.Attempts}
}

// prepare fetches assets once per call and builds the shared scene. Asset
// failures are degradations, never errors.
func (p *Pipeline) prepare(ctx context.Context, cfg TemplateConfig, rctx RenderContext) (*Job, []Degradation) {
	var assets Assets
	var degradations []Degradation

	if cfg.LogoURL != "" {
		data, kind, err := p.assets.Fetch(ctx, cfg.LogoURL)
		if err == nil {
			data, kind, err = normalizeImage(data, kind)
		}
		if err != nil {
			slog.Warn("Pipeline Logo omitted", "url", cfg.LogoURL, "participant_id", rctx.ParticipantID, "error", err)
			degradations = append(degradations, Degradation{Element: "logo", Reason: err.Error()})
		} else {
			assets.Logo = data
			assets.LogoType = kind
		}
	}

	if cfg.IncludeQRCode {
		text := p.policy.Substitute(qrText(cfg), rctx)
		png, err := EncodeQRCode(text)
		if err != nil {
			slog.Warn("Pipeline QR code omitted", "participant_id", rctx.ParticipantID, "error", err)
			degradations = append(degradations, Degradation{Element: "qrcode", Reason: err.Error()})
		} else {
			assets.QRCode = png
		}
	}

	return &Job{
		Config:  cfg,
		Context: rctx,
		Canvas:  cfg.Canvas(),
		Scene:   BuildScene(cfg, rctx, p.policy, assets),
		Assets:  assets,
	}, degradations
}

const defaultQRText = "{userName} - {eventName}"

func qrText(cfg TemplateConfig) string {
	if cfg.QRCodeText != "" {
		return cfg.QRCodeText
	}
	return defaultQRText
}

type attemptOutcome struct {
	out *Output
	err error
}

// runAttempt runs a single backend under its own deadline. The backend runs on
// its own goroutine; when the deadline passes first its eventual result lands
// in a buffered channel nobody reads.
func (p *Pipeline) runAttempt(ctx context.Context, backend Backend, job *Job, timeout time.Duration) (RenderAttempt, *Output) {
	attempt := RenderAttempt{Backend: backend.Name(), Status: AttemptRunning}
	started := time.Now()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptOutcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		out, err := backend.Render(attemptCtx, job)
		done <- attemptOutcome{out: out, err: err}
	}()

	var outcome attemptOutcome
	select {
	case outcome = <-done:
	case <-attemptCtx.Done():
	}
	// A result racing the deadline is stale.
	if err := attemptCtx.Err(); err != nil {
		outcome = attemptOutcome{err: err}
	}
	attempt.Duration = time.Since(started)

	err := outcome.err
	if err == nil {
		err = ValidateOutput(outcome.out)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			err = &BackendTimeoutError{Backend: attempt.Backend, Timeout: timeout}
		} else {
			err = &BackendError{Backend: attempt.Backend, Err: err}
		}
		attempt.Status = AttemptFailed
		attempt.Err = err
		attempt.Error = err.Error()
		return attempt, nil
	}

	attempt.Status = AttemptSuccess
	return attempt, outcome.out
}
