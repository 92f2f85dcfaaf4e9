package renderer

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultRemoteBaseURL   = "https://res.cloudinary.com"
	DefaultRemoteBaseImage = "blank"
	remoteMaxBytes         = 20 << 20
)

type RemoteOptions struct {
	BaseURL   string
	CloudName string
	// BaseImage is the public id of the canvas image the overlays are applied to.
	BaseImage string
	Timeout   time.Duration
	Client    *http.Client
	MaxBytes  int64
}

// RemoteBackend expresses the scene as a chain of text and image overlays on
// an image transformation service and downloads the result with a single GET.
// Shapes other than the border cannot be expressed and are left out.
type RemoteBackend struct {
	baseURL   string
	cloudName string
	baseImage string
	client    *http.Client
	maxBytes  int64
}

func NewRemoteBackend(opts RemoteOptions) *RemoteBackend {
	b := &RemoteBackend{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		cloudName: opts.CloudName,
		baseImage: opts.BaseImage,
		client:    opts.Client,
		maxBytes:  opts.MaxBytes,
	}
	if b.baseURL == "" {
		b.baseURL = DefaultRemoteBaseURL
	}
	if b.baseImage == "" {
		b.baseImage = DefaultRemoteBaseImage
	}
	if b.maxBytes <= 0 {
		b.maxBytes = remoteMaxBytes
	}
	if b.client == nil {
		b.client = &http.Client{Timeout: opts.Timeout}
	}
	return b
}

func (b *RemoteBackend) Name() string {
	return "remote"
}

func (b *RemoteBackend) Render(ctx context.Context, job *Job) (*Output, error) {
	target := b.BuildURL(job)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build remote request: %w", err)
	}
	req.Header.Set("Accept", MimePNG)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call remote renderer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := resp.Header.Get("X-Cld-Error")
		return nil, fmt.Errorf("remote renderer returned status %d %s", resp.StatusCode, reason)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read remote response: %w", err)
	}
	if int64(len(data)) > b.maxBytes {
		return nil, fmt.Errorf("remote response larger than %d bytes", b.maxBytes)
	}
	if kind := http.DetectContentType(data); kind != MimePNG {
		return nil, fmt.Errorf("remote renderer returned %s instead of %s", kind, MimePNG)
	}

	return &Output{Bytes: data, MimeType: MimePNG}, nil
}

// BuildURL encodes the scene as a delivery URL. Overlay offsets are relative to
// the canvas center, matching the anchors produced by the layout resolver.
func (b *RemoteBackend) BuildURL(job *Job) string {
	scene := job.Scene
	canvas := scene.Canvas

	steps := []string{
		fmt.Sprintf("w_%d,h_%d,c_pad,b_rgb:%s", int(canvas.Width), int(canvas.Height), scene.Background.HexBare()),
	}

	font := url.PathEscape(scene.Font.face().remote)
	for _, el := range scene.Visible() {
		switch {
		case el.Role == "border":
			steps = append(steps, fmt.Sprintf("bo_%dpx_solid_rgb:%s", int(math.Round(el.StrokeWidth)), el.Stroke.HexBare()))
		case el.Kind == KindText:
			steps = append(steps, b.textLayer(el, font), placement(el, canvas))
		case el.Kind == KindImage && el.Role == "logo" && job.Config.LogoURL != "":
			source := base64.URLEncoding.EncodeToString([]byte(job.Config.LogoURL))
			steps = append(steps,
				fmt.Sprintf("l_fetch:%s,w_%d,h_%d,c_fit", source, int(el.Width), int(el.Height)),
				placement(el, canvas))
		case el.Kind == KindImage:
			slog.Debug("Remote Element skipped", "role", el.Role, "participant_id", job.Context.ParticipantID)
		}
	}

	return fmt.Sprintf("%s/%s/image/upload/%s/%s.png",
		b.baseURL, url.PathEscape(b.cloudName), strings.Join(steps, "/"), url.PathEscape(b.baseImage))
}

func (b *RemoteBackend) textLayer(el Element, font string) string {
	style := fmt.Sprintf("%s_%d", font, int(math.Round(el.FontSize)))
	if el.Bold {
		style += "_bold"
	}
	if el.Italic {
		style += "_italic"
	}
	if len(el.Lines) > 1 {
		style += "_center"
	}

	layer := fmt.Sprintf("l_text:%s:%s,co_rgb:%s", style, escapeOverlayText(strings.Join(el.Lines, "\n")), el.Fill.HexBare())
	if el.Opacity < 1 {
		layer += fmt.Sprintf(",o_%d", int(math.Round(el.Opacity*100)))
	}
	if el.Rotation != 0 {
		layer += fmt.Sprintf(",a_%d", int(math.Round(el.Rotation)))
	}
	return layer
}

func placement(el Element, canvas Size) string {
	dx := int(math.Round(el.Center.X - canvas.Width/2))
	dy := int(math.Round(el.Center.Y - canvas.Height/2))
	return fmt.Sprintf("fl_layer_apply,g_center,x_%d,y_%d", dx, dy)
}

// escapeOverlayText percent-encodes overlay text. Commas and slashes are
// escaped twice because the service splits on them before decoding.
func escapeOverlayText(text string) string {
	escaped := url.PathEscape(text)
	return strings.NewReplacer("%2C", "%252C", "%2F", "%252F").Replace(escaped)
}
