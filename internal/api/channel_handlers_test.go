package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListChannels_SortedByName(t *testing.T) {
	ts := setupTestServer(t)

	ts.createChannel(t, "beta", "WORK")
	ts.createChannel(t, "alpha", "PERSONAL")

	resp := ts.api.Get("/api/v1/channels")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListChannelsResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	require.Len(t, envelope.Data.Channels, 2)
	assert.Equal(t, "alpha", envelope.Data.Channels[0].Name)
	assert.Equal(t, "beta", envelope.Data.Channels[1].Name)
}

func TestDeleteChannel_DetachesTasks(t *testing.T) {
	ts := setupTestServer(t)

	ch := ts.createChannel(t, "inbox", "WORK")
	task := ts.createTask(t, map[string]any{
		"title":      "triage",
		"workspace":  "WORK",
		"channel_id": ch.ID,
	})
	require.NotNil(t, task.Channel)

	resp := ts.api.Delete("/api/v1/channels/" + itoa(ch.ID))
	assert.Equal(t, http.StatusOK, resp.Code)

	// The task survives with its channel reference cleared.
	resp = ts.api.Get("/api/v1/tasks/" + itoa(task.ID))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[TaskResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	assert.Nil(t, envelope.Data.ChannelID)
	assert.Nil(t, envelope.Data.Channel)
}

func TestGetChannel_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/channels/999")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
