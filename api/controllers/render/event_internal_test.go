package render_controller

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	participantmodel "github.com/sunthewhat/easy-cert-render/api/model/participantModel"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/payload"
)

func TestParticipantConfig(t *testing.T) {
	ctrl := &RenderController{verifyHost: "https://verify.easycert.example/"}

	cfg := renderer.TemplateConfig{IncludeQRCode: true}
	assert.Equal(t, "https://verify.easycert.example/validate/result/p-1", ctrl.participantConfig(cfg, "p-1").QRCodeText)
	assert.Empty(t, cfg.QRCodeText)

	cfg.QRCodeText = "{userName}"
	assert.Equal(t, "{userName}", ctrl.participantConfig(cfg, "p-1").QRCodeText)

	assert.Empty(t, ctrl.participantConfig(renderer.TemplateConfig{}, "p-1").QRCodeText)
}

func TestSelectParticipants(t *testing.T) {
	all := []*participantmodel.CombinedParticipant{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Len(t, selectParticipants(all, nil), 3)

	selected := selectParticipants(all, []string{"c", "a", "missing"})
	assert.Equal(t, []string{"a", "c"}, []string{selected[0].ID, selected[1].ID})
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "png", extension(renderer.MimePNG))
	assert.Equal(t, "svg", extension(renderer.MimeSVG))
	assert.Equal(t, "pdf", extension(renderer.MimePDF))
}

func TestStoreBatch_ObjectNames(t *testing.T) {
	var names []string
	var archive []byte
	store := util.NewMockArtifactStore()
	store.PutFunc = func(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
		names = append(names, objectName)
		if strings.HasSuffix(objectName, ".zip") {
			archive = data
		}
		return "https://minio.test/certificates/" + objectName, nil
	}
	ctrl := &RenderController{store: store}

	svg := &renderer.RenderResult{Bytes: []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), MimeType: renderer.MimeSVG}
	result := &renderer.BatchResult{Succeeded: []renderer.BatchSuccess{
		{ItemID: "../../evil", Result: svg},
		{ItemID: "p-1", Result: svg},
		{ItemID: "p-1", Result: svg},
	}}

	summary := ctrl.storeBatch(context.Background(), "run-1", "event-1", result, true)

	assert.Len(t, summary.Succeeded, 3)
	assert.Equal(t, []string{
		"event-1/____evil.svg",
		"event-1/p-1.svg",
		"event-1/p-1-2.svg",
		"event-1/certificates.zip",
	}, names)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	for _, file := range reader.File {
		assert.NotContains(t, file.Name, "/")
		assert.NotContains(t, file.Name, "..")
	}
}

func TestDuplicateItemIDs(t *testing.T) {
	assert.Empty(t, duplicateItemIDs([]payload.BatchRenderItem{{ID: "a"}, {ID: "b"}, {}, {}}))
	assert.Equal(t,
		[]string{"BatchRenderPayload.Items[2].ID duplicates Items[0].ID"},
		duplicateItemIDs([]payload.BatchRenderItem{{ID: "a"}, {ID: "b"}, {ID: "a"}}))
}
