package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/sunthewhat/easy-cert-render/common"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/shared"
)

func InitPipeline() {
	p, err := Build(common.Config)
	if err != nil {
		slog.Error("Failed to build render pipeline", "error", err)
		os.Exit(1)
	}

	slog.Info("Render pipeline ready", "backends", p.Backends())
	common.Pipeline = p
}

// Build wires the configured backends, in priority order, into a pipeline.
func Build(cfg *shared.Config) (*renderer.Pipeline, error) {
	if cfg == nil || cfg.Render == nil {
		return nil, fmt.Errorf("render configuration is missing")
	}
	render := cfg.Render

	policy, err := formatPolicy(render)
	if err != nil {
		return nil, err
	}

	signer, err := renderer.NewCertificateSigner(signerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PDF signer: %w", err)
	}

	deps := renderer.BackendDeps{
		EngineCommand: render.EngineCommand,
		EnginePool:    renderer.NewEnginePool(render.EngineSlots),
		Remote: renderer.RemoteOptions{
			BaseURL:   render.RemoteBaseURL,
			CloudName: render.RemoteCloudName,
			BaseImage: render.RemoteBaseImage,
			Timeout:   render.RemoteTimeout,
		},
		Paginated: renderer.PaginatedOptions{
			PageSize: render.PageSize,
			Margin:   render.PageMargin,
			Signer:   signer,
		},
	}

	backends, err := renderer.BuildBackends(render.Backends, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build backends: %w", err)
	}

	assetTimeout := render.AssetTimeout
	if assetTimeout <= 0 {
		assetTimeout = renderer.DefaultAssetTimeout
	}

	return renderer.NewPipeline(renderer.Options{
		Backends:        backends,
		AttemptTimeout:  render.AttemptTimeout,
		DocumentTimeout: render.DocumentTimeout,
		Workers:         render.Workers,
		Assets:          renderer.NewHTTPAssetFetcher(assetTimeout),
		Policy:          policy,
		Document:        renderer.NewPaginatedBackend(deps.Paginated),
	}), nil
}

func formatPolicy(render *shared.RenderConfig) (renderer.FormatPolicy, error) {
	policy := renderer.DefaultFormatPolicy()
	if render.Timezone != "" {
		loc, err := time.LoadLocation(render.Timezone)
		if err != nil {
			return policy, fmt.Errorf("failed to load timezone %q: %w", render.Timezone, err)
		}
		policy.Location = loc
	}
	if render.DateLayout != "" {
		policy.DateLayout = render.DateLayout
	}
	if render.TimeLayout != "" {
		policy.TimeLayout = render.TimeLayout
	}
	return policy, nil
}

func signerOptions(cfg *shared.Config) renderer.SignerOptions {
	opts := renderer.SignerOptions{Name: "easy-cert", Location: "easy-cert render service"}
	if cfg.SigningEnabled != nil {
		opts.Enabled = *cfg.SigningEnabled
	}
	if cfg.SigningCertPath != nil {
		opts.CertPath = *cfg.SigningCertPath
	}
	if cfg.SigningKeyPath != nil {
		opts.KeyPath = *cfg.SigningKeyPath
	}
	return opts
}
