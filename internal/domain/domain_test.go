package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkspace_Valid(t *testing.T) {
	assert.True(t, WorkspaceWork.Valid())
	assert.True(t, WorkspacePersonal.Valid())
	assert.False(t, Workspace("HOME").Valid())
	assert.False(t, Workspace("work").Valid())
	assert.False(t, Workspace("").Valid())
}

func TestTaskStatus_Valid(t *testing.T) {
	assert.True(t, TaskStatusBacklog.Valid())
	assert.True(t, TaskStatusToday.Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.True(t, TaskStatusDone.Valid())
	assert.False(t, TaskStatus("IN PROGRESS").Valid())
	assert.False(t, TaskStatus("backlog").Valid())
}

func TestTag_InWorkspace(t *testing.T) {
	tag := Tag{Workspaces: []Workspace{WorkspaceWork}}

	assert.True(t, tag.InWorkspace(WorkspaceWork))
	assert.False(t, tag.InWorkspace(WorkspacePersonal))

	both := Tag{Workspaces: []Workspace{WorkspaceWork, WorkspacePersonal}}
	assert.True(t, both.InWorkspace(WorkspacePersonal))

	empty := Tag{}
	assert.False(t, empty.InWorkspace(WorkspaceWork))
}
