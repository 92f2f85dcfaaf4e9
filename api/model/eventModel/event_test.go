package eventmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-render/test/helpers"
)

func TestEventRepository_GetById(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := NewEventRepository(db)

	seeded := helpers.SeedEvent(t, db, "event-1", "Go Workshop")

	event, err := repo.GetById("event-1")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Go Workshop", event.Name)
	require.NotNil(t, event.Date)
	assert.True(t, seeded.Date.Equal(*event.Date))

	missing, err := repo.GetById("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
