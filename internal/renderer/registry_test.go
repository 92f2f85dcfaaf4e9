package renderer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBackends(t *testing.T) {
	backends, err := BuildBackends([]string{"remote", "engine", "paginated", "vector"}, BackendDeps{})
	require.NoError(t, err)

	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name()
	}
	assert.Equal(t, []string{"remote", "engine", "paginated", "vector"}, names)
	assert.ElementsMatch(t, names, KnownBackends())
}

func TestBuildBackends_Errors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "empty", names: nil},
		{name: "unknown", names: []string{"vector", "canvas"}},
		{name: "duplicate", names: []string{"vector", "vector"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildBackends(tt.names, BackendDeps{})
			assert.Error(t, err)
		})
	}
}

func TestHTTPAssetFetcher(t *testing.T) {
	logo := testPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logo.png":
			_, _ = w.Write(logo)
		case "/page.html":
			_, _ = w.Write([]byte("<html></html>"))
		case "/big.png":
			_, _ = w.Write(append(append([]byte{}, logo...), make([]byte, 2048)...))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewHTTPAssetFetcher(time.Second)

	data, kind, err := fetcher.Fetch(context.Background(), server.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, logo, data)
	assert.Equal(t, "png", kind)

	for _, path := range []string{"/missing.png", "/page.html"} {
		_, _, err := fetcher.Fetch(context.Background(), server.URL+path)
		assert.ErrorIs(t, err, ErrAssetFetchFailed, path)
		var fetchErr *AssetFetchFailedError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, server.URL+path, fetchErr.URL)
	}

	fetcher.MaxBytes = 1024
	_, _, err = fetcher.Fetch(context.Background(), server.URL+"/big.png")
	assert.ErrorIs(t, err, ErrAssetFetchFailed)
}

func TestEncodeQRCode(t *testing.T) {
	png, err := EncodeQRCode("https://verify.example.com/p-1")
	require.NoError(t, err)
	assert.NoError(t, ValidateOutput(&Output{Bytes: png, MimeType: MimePNG}))

	_, err = EncodeQRCode("")
	assert.Error(t, err)
}
