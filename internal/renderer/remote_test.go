package renderer

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteBackend_Render(t *testing.T) {
	fixture := testPNG(t)
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.RequestURI
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	backend := NewRemoteBackend(RemoteOptions{BaseURL: server.URL, CloudName: "demo"})
	job := testJob(t, testConfig(), RenderContext{UserName: "Ana, Jr.", EventName: "Workshop"}, Assets{})

	out, err := backend.Render(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, fixture, out.Bytes)
	assert.Equal(t, MimePNG, out.MimeType)

	assert.True(t, strings.HasPrefix(requested, "/demo/image/upload/w_1200,h_800,c_pad,b_rgb:ffffff/"))
	assert.Contains(t, requested, "l_text:Georgia_40_bold:Ana%252C%20Jr.,co_rgb:1e3a8a/fl_layer_apply,g_center,x_0,y_-40")
	assert.True(t, strings.HasSuffix(requested, "/blank.png"))
}

func TestRemoteBackend_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errText string
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Cld-Error", "Resource not found")
				w.WriteHeader(http.StatusNotFound)
			},
			errText: "status 404",
		},
		{
			name: "body is not an image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			errText: "instead of image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			backend := NewRemoteBackend(RemoteOptions{BaseURL: server.URL, CloudName: "demo"})
			_, err := backend.Render(context.Background(), testJob(t, testConfig(), RenderContext{UserName: "Ana"}, Assets{}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestRemoteBackend_RejectsOversizedResponse(t *testing.T) {
	fixture := testPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(append(append([]byte{}, fixture...), make([]byte, 512)...))
	}))
	defer server.Close()

	backend := NewRemoteBackend(RemoteOptions{BaseURL: server.URL, CloudName: "demo", MaxBytes: int64(len(fixture))})
	_, err := backend.Render(context.Background(), testJob(t, testConfig(), RenderContext{UserName: "Ana"}, Assets{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than")
}

func TestRemoteBackend_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	backend := NewRemoteBackend(RemoteOptions{BaseURL: url, CloudName: "demo"})
	_, err := backend.Render(context.Background(), testJob(t, testConfig(), RenderContext{UserName: "Ana"}, Assets{}))
	assert.Error(t, err)
}

func TestRemoteBackend_BuildURL(t *testing.T) {
	cfg := testConfig()
	cfg.LogoURL = "https://example.com/logo.png"
	cfg.LogoPosition = &Position{X: 10, Y: 10}
	cfg.LogoSize = 80
	job := testJob(t, cfg, RenderContext{UserName: "Ana"}, Assets{Logo: testPNG(t), LogoType: "png"})

	backend := NewRemoteBackend(RemoteOptions{BaseURL: "https://res.example.com/", CloudName: "demo", BaseImage: "canvas"})
	target := backend.BuildURL(job)

	assert.True(t, strings.HasPrefix(target, "https://res.example.com/demo/image/upload/w_1200,h_800,c_pad,b_rgb:ffffff/"))
	assert.True(t, strings.HasSuffix(target, "/canvas.png"))
	assert.Contains(t, target, "bo_6px_solid_rgb:")
	assert.Contains(t, target, "l_text:Georgia_133_bold:VERIFIED,co_rgb:64748b,o_10,a_-30")
	assert.Contains(t, target, "l_fetch:"+base64.URLEncoding.EncodeToString([]byte(cfg.LogoURL))+",w_80,h_80,c_fit/fl_layer_apply,g_center,x_-480,y_-320")
}

func TestRemoteBackend_SkipsInvisibleElements(t *testing.T) {
	cfg := testConfig()
	cfg.WatermarkOpacity = 0
	target := NewRemoteBackend(RemoteOptions{CloudName: "demo"}).BuildURL(testJob(t, cfg, RenderContext{UserName: "Ana"}, Assets{}))

	assert.True(t, strings.HasPrefix(target, DefaultRemoteBaseURL+"/demo/"))
	assert.NotContains(t, target, "VERIFIED")
}

func TestEscapeOverlayText(t *testing.T) {
	assert.Equal(t, "a%252Fb%252C%20c%25", escapeOverlayText("a/b, c%"))
	assert.Equal(t, "line%0Anext", escapeOverlayText("line\nnext"))
}
