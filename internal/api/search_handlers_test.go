package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTasks(t *testing.T) {
	ts := setupTestServer(t)

	task := ts.createTask(t, map[string]any{
		"title":     "Deploy staging environment",
		"workspace": "WORK",
	})
	ts.createTask(t, map[string]any{
		"title":     "Buy groceries",
		"workspace": "PERSONAL",
	})

	resp := ts.api.Get("/api/v1/search?q=staging")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, itoa(task.ID), envelope.Data.Hits[0].ID)
	assert.Equal(t, "Deploy staging environment", envelope.Data.Hits[0].Title)

	// Deleted tasks drop out of the results.
	delResp := ts.api.Delete("/api/v1/tasks/" + itoa(task.ID))
	require.Equal(t, http.StatusOK, delResp.Code)

	resp = ts.api.Get("/api/v1/search?q=staging")
	assert.Equal(t, http.StatusOK, resp.Code)

	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	assert.Empty(t, envelope.Data.Hits)
}

func TestSearchTasks_WorkspaceFilter(t *testing.T) {
	ts := setupTestServer(t)

	ts.createTask(t, map[string]any{"title": "groceries list", "workspace": "PERSONAL"})
	ts.createTask(t, map[string]any{"title": "groceries expense report", "workspace": "WORK"})

	resp := ts.api.Get("/api/v1/search?q=groceries&workspace=PERSONAL")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, "groceries list", envelope.Data.Hits[0].Title)
}
