package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createSubtask(t *testing.T, taskID int64, body map[string]any) SubtaskResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/tasks/"+itoa(taskID)+"/subtasks", body)
	require.Equal(t, http.StatusOK, resp.Code, "create subtask failed: %s", resp.Body.String())

	var envelope testEnvelope[SubtaskResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	return envelope.Data
}

func TestCreateSubtask_Positions(t *testing.T) {
	ts := setupTestServer(t)
	task := ts.createTask(t, map[string]any{"title": "parent", "workspace": "WORK"})

	first := ts.createSubtask(t, task.ID, map[string]any{"title": "first"})
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, "TODO", first.Status)

	second := ts.createSubtask(t, task.ID, map[string]any{"title": "second", "position": 5})
	assert.Equal(t, 5, second.Position)

	third := ts.createSubtask(t, task.ID, map[string]any{"title": "third"})
	assert.Equal(t, 6, third.Position)
}

func TestCreateSubtask_MissingParent(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tasks/999/subtasks", map[string]any{"title": "orphan"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListSubtasks_OrderedByPosition(t *testing.T) {
	ts := setupTestServer(t)
	task := ts.createTask(t, map[string]any{"title": "parent", "workspace": "WORK"})

	ts.createSubtask(t, task.ID, map[string]any{"title": "b", "position": 3})
	ts.createSubtask(t, task.ID, map[string]any{"title": "a", "position": 1})

	resp := ts.api.Get("/api/v1/tasks/" + itoa(task.ID) + "/subtasks")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListSubtasksResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	require.Len(t, envelope.Data.Subtasks, 2)
	assert.Equal(t, "a", envelope.Data.Subtasks[0].Title)
	assert.Equal(t, "b", envelope.Data.Subtasks[1].Title)
}

func TestUpdateSubtask_StatusCompletion(t *testing.T) {
	ts := setupTestServer(t)
	task := ts.createTask(t, map[string]any{"title": "parent", "workspace": "WORK"})
	sub := ts.createSubtask(t, task.ID, map[string]any{"title": "step"})

	resp := ts.api.Patch("/api/v1/subtasks/"+itoa(sub.ID), map[string]any{"status": "DONE"})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SubtaskResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	assert.Equal(t, "DONE", envelope.Data.Status)
	assert.NotNil(t, envelope.Data.CompletedAt)

	resp = ts.api.Patch("/api/v1/subtasks/"+itoa(sub.ID), map[string]any{"status": "TODO"})
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = testEnvelope[SubtaskResponse]{}
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	assert.Equal(t, "TODO", envelope.Data.Status)
	assert.Nil(t, envelope.Data.CompletedAt)
}

func TestReorderSubtask(t *testing.T) {
	ts := setupTestServer(t)
	task := ts.createTask(t, map[string]any{"title": "parent", "workspace": "WORK"})
	sub := ts.createSubtask(t, task.ID, map[string]any{"title": "movable"})

	resp := ts.api.Patch("/api/v1/subtasks/"+itoa(sub.ID)+"/reorder", map[string]any{"position": 4})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SubtaskResponse]
	decodeEnvelope(t, resp.Body.Bytes(), &envelope)
	assert.Equal(t, 4, envelope.Data.Position)
}

func TestDeleteSubtask(t *testing.T) {
	ts := setupTestServer(t)
	task := ts.createTask(t, map[string]any{"title": "parent", "workspace": "WORK"})
	sub := ts.createSubtask(t, task.ID, map[string]any{"title": "doomed"})

	resp := ts.api.Delete("/api/v1/subtasks/" + itoa(sub.ID))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/subtasks/" + itoa(sub.ID))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
