package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/skip2/go-qrcode"
)

// Assets holds the binary inputs of one render call.
type Assets struct {
	Logo     []byte
	LogoType string
	QRCode   []byte
}

// AssetFetcher retrieves remote images such as logos. Caching, if any, belongs
// to the implementation and never to a backend.
type AssetFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

const (
	defaultAssetMaxBytes = 5 << 20
	qrCodePixels         = 256
)

// HTTPAssetFetcher issues a read-only GET and accepts PNG or JPEG bodies.
type HTTPAssetFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

func NewHTTPAssetFetcher(timeout time.Duration) *HTTPAssetFetcher {
	return &HTTPAssetFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: defaultAssetMaxBytes,
	}
}

func (f *HTTPAssetFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = defaultAssetMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &AssetFetchFailedError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "image/png, image/jpeg")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &AssetFetchFailedError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &AssetFetchFailedError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", &AssetFetchFailedError{URL: url, Err: err}
	}
	if int64(len(data)) > limit {
		return nil, "", &AssetFetchFailedError{URL: url, Err: fmt.Errorf("asset larger than %d bytes", limit)}
	}

	kind, err := imageKind(data)
	if err != nil {
		return nil, "", &AssetFetchFailedError{URL: url, Err: err}
	}
	return data, kind, nil
}

// imageKind sniffs the body instead of trusting the Content-Type header.
func imageKind(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "png", nil
	case "image/jpeg":
		return "jpeg", nil
	}
	return "", fmt.Errorf("unsupported image type %q", http.DetectContentType(data))
}

// normalizeImage fully decodes a fetched image. PNGs are re-encoded as plain
// 8-bit non-interlaced files, which is all the PDF writer can embed.
func normalizeImage(data []byte, kind string) ([]byte, string, error) {
	switch kind {
	case "png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode png: %w", err)
		}
		flat := image.NewNRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Src)
		var buf bytes.Buffer
		if err := png.Encode(&buf, flat); err != nil {
			return nil, "", fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), kind, nil
	case "jpeg":
		if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
			return nil, "", fmt.Errorf("failed to decode jpeg: %w", err)
		}
		return data, kind, nil
	}
	return nil, "", fmt.Errorf("unsupported image type %q", kind)
}

// EncodeQRCode renders text as a PNG QR code.
func EncodeQRCode(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, qrCodePixels)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
