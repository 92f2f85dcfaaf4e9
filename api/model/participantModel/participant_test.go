package participantmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-render/type/shared/model"
)

func TestCombineParticipants(t *testing.T) {
	rows := []*model.Participant{
		{ID: "p-1", EventID: "event-1", RenderStatus: model.RenderStatusPending},
		{ID: "p-2", EventID: "event-1", RenderStatus: model.RenderStatusRendered, CertificateURL: "https://minio/p-2.png"},
	}
	documents := []map[string]any{
		{"_id": "p-1", "event_id": "event-1", "name": "Ana", "email": "ana@example.com"},
		{"_id": "orphan", "name": "Nobody"},
	}

	combined := combineParticipants(rows, documents)

	require.Len(t, combined, 2)
	assert.Equal(t, map[string]any{"name": "Ana", "email": "ana@example.com"}, combined[0].DynamicData)
	assert.Empty(t, combined[1].DynamicData)
	assert.Equal(t, "https://minio/p-2.png", combined[1].CertificateURL)
	assert.Equal(t, model.RenderStatusRendered, combined[1].RenderStatus)
}

func TestCombinedParticipant_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{name: "name field", data: map[string]any{"name": "  Ana Souza "}, want: "Ana Souza"},
		{name: "full name", data: map[string]any{"full_name": "Bea Lima", "first_name": "ignored"}, want: "Bea Lima"},
		{name: "split name", data: map[string]any{"first_name": "Chai", "last_name": "Wong"}, want: "Chai Wong"},
		{name: "camel case split", data: map[string]any{"firstName": "Dao"}, want: "Dao"},
		{name: "non string ignored", data: map[string]any{"name": 42, "username": "eve"}, want: "eve"},
		{name: "nothing", data: map[string]any{"email": "x@example.com"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &CombinedParticipant{DynamicData: tt.data}
			assert.Equal(t, tt.want, p.DisplayName())
		})
	}
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "participant-event-1", collectionName("event-1"))
}
