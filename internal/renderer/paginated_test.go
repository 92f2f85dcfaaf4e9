package renderer

import (
	"bytes"
	"context"
	"testing"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	reader, err := digitorus_pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return reader.NumPage()
}

func TestPaginatedBackend_Render(t *testing.T) {
	cfg := testConfig()
	cfg.Template = StyleElegant
	cfg.IncludeQRCode = true
	cfg.QRCodePosition = &Position{X: 88, Y: 82}
	qr, err := EncodeQRCode("Ana - Workshop")
	require.NoError(t, err)

	backend := NewPaginatedBackend(PaginatedOptions{})
	out, err := backend.Render(context.Background(), testJob(t, cfg, RenderContext{UserName: "Ana", EventName: "Workshop"}, Assets{QRCode: qr}))
	require.NoError(t, err)

	assert.Equal(t, MimePDF, out.MimeType)
	assert.NoError(t, ValidateOutput(out))
	assert.Equal(t, 1, pageCount(t, out.Bytes))
}

func TestPaginatedBackend_RenderPages(t *testing.T) {
	cfg := testConfig()
	cfg.Orientation = Portrait
	names := []string{"Ana", "Bea", "Chai"}
	jobs := make([]*Job, len(names))
	for i, name := range names {
		jobs[i] = testJob(t, cfg, RenderContext{UserName: name, EventName: "Workshop"}, Assets{})
	}

	backend := NewPaginatedBackend(PaginatedOptions{PageSize: "Letter", Margin: 12})
	out, err := backend.RenderPages(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 3, pageCount(t, out.Bytes))
}

func TestPaginatedBackend_Errors(t *testing.T) {
	backend := NewPaginatedBackend(PaginatedOptions{})

	_, err := backend.RenderPages(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = backend.Render(ctx, testJob(t, testConfig(), RenderContext{UserName: "Ana"}, Assets{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCertificateSigner_Disabled(t *testing.T) {
	signer, err := NewCertificateSigner(SignerOptions{})
	require.NoError(t, err)
	assert.False(t, signer.IsEnabled())

	signed, err := signer.SignPDF([]byte("%PDF-1.4"), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), signed)

	_, err = signer.SignPDF(nil, "doc-1")
	assert.Error(t, err)

	var nilSigner *CertificateSigner
	assert.False(t, nilSigner.IsEnabled())
}

func TestCertificateSigner_MissingPaths(t *testing.T) {
	_, err := NewCertificateSigner(SignerOptions{Enabled: true})
	assert.Error(t, err)

	_, err = NewCertificateSigner(SignerOptions{Enabled: true, CertPath: "/nonexistent/cert.pem", KeyPath: "/nonexistent/key.pem"})
	assert.Error(t, err)
}
