package api

import (
	"github.com/taskboardapp/taskboard-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Instance *service.InstanceService
	Task     *service.TaskService
	Subtask  *service.SubtaskService
	Tag      *service.TagService
	Channel  *service.ChannelService
	Search   *service.SearchService
}
