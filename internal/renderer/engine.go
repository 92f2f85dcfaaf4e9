package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultEngineCommand reads the HTML document from stdin and writes a PNG to
// stdout.
var DefaultEngineCommand = []string{
	"wkhtmltoimage", "--quiet", "--format", "png",
	"--width", "{width}", "--height", "{height}",
	"-", "-",
}

// EnginePool bounds how many engine processes run at the same time.
type EnginePool struct {
	sem   *semaphore.Weighted
	slots int64
}

func NewEnginePool(slots int) *EnginePool {
	if slots <= 0 {
		slots = 1
	}
	return &EnginePool{sem: semaphore.NewWeighted(int64(slots)), slots: int64(slots)}
}

// Acquire blocks until a slot is free or ctx is done. The returned release
// must be called exactly once.
func (p *EnginePool) Acquire(ctx context.Context) (func(), error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire engine slot: %w", err)
	}
	return func() { p.sem.Release(1) }, nil
}

// Idle reports whether every slot is free.
func (p *EnginePool) Idle() bool {
	if !p.sem.TryAcquire(p.slots) {
		return false
	}
	p.sem.Release(p.slots)
	return true
}

// EngineBackend renders the HTML layout with an external browser-grade engine.
//
// Command arguments may contain the placeholders {width}, {height}, {input}
// (path of the HTML file in the work directory) and {output}. When {output} is
// used the PNG is read from that file, otherwise from stdout. The document is
// always fed on stdin as well.
type EngineBackend struct {
	command   []string
	pool      *EnginePool
	waitDelay time.Duration
}

func NewEngineBackend(command []string, pool *EnginePool) *EngineBackend {
	if len(command) == 0 {
		command = DefaultEngineCommand
	}
	if pool == nil {
		pool = NewEnginePool(1)
	}
	return &EngineBackend{
		command:   append([]string(nil), command...),
		pool:      pool,
		waitDelay: time.Second,
	}
}

func (b *EngineBackend) Name() string {
	return "engine"
}

func (b *EngineBackend) Render(ctx context.Context, job *Job) (*Output, error) {
	document, err := HTMLDocument(job.Scene)
	if err != nil {
		return nil, err
	}

	release, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	workDir, err := os.MkdirTemp("", "cert-engine-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create engine work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "certificate.html")
	outputPath := filepath.Join(workDir, "certificate.png")
	if err := os.WriteFile(inputPath, []byte(document), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write engine input: %w", err)
	}

	args, usesOutputFile := b.expandArgs(job.Canvas, inputPath, outputPath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = workDir
	cmd.WaitDelay = b.waitDelay
	cmd.Stdin = strings.NewReader(document)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("engine %s failed: %w, stderr: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}

	image := stdout.Bytes()
	if usesOutputFile {
		image, err = os.ReadFile(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read engine output: %w", err)
		}
	}

	slog.Debug("Engine Render finished", "participant_id", job.Context.ParticipantID, "bytes", len(image))
	return &Output{Bytes: image, MimeType: MimePNG}, nil
}

func (b *EngineBackend) expandArgs(canvas Size, inputPath, outputPath string) ([]string, bool) {
	replacer := strings.NewReplacer(
		"{width}", num(canvas.Width),
		"{height}", num(canvas.Height),
		"{input}", inputPath,
		"{output}", outputPath,
	)
	usesOutputFile := false
	args := make([]string, len(b.command))
	for i, arg := range b.command {
		if strings.Contains(arg, "{output}") {
			usesOutputFile = true
		}
		args[i] = replacer.Replace(arg)
	}
	return args, usesOutputFile
}
