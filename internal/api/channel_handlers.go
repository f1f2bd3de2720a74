package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taskboardapp/taskboard-server/internal/service"
)

func (s *Server) registerChannelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listChannels",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels",
		Summary:     "List channels",
		Description: "Returns all channels ordered by name",
		Tags:        []string{"Channels"},
	}, s.handleListChannels)

	huma.Register(s.api, huma.Operation{
		OperationID: "createChannel",
		Method:      http.MethodPost,
		Path:        "/api/v1/channels",
		Summary:     "Create channel",
		Description: "Creates a new channel",
		Tags:        []string{"Channels"},
	}, s.handleCreateChannel)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChannel",
		Method:      http.MethodGet,
		Path:        "/api/v1/channels/{id}",
		Summary:     "Get channel",
		Description: "Returns a channel by ID",
		Tags:        []string{"Channels"},
	}, s.handleGetChannel)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteChannel",
		Method:      http.MethodDelete,
		Path:        "/api/v1/channels/{id}",
		Summary:     "Delete channel",
		Description: "Deletes a channel; tasks filed under it are detached, not deleted",
		Tags:        []string{"Channels"},
	}, s.handleDeleteChannel)
}

// === DTOs ===

// ListChannelsResponse contains a list of channels.
type ListChannelsResponse struct {
	Channels []ChannelResponse `json:"channels" doc:"List of channels"`
}

// ListChannelsOutput wraps the list channels response for huma.
type ListChannelsOutput struct {
	Body ListChannelsResponse
}

// CreateChannelRequest is the request body for creating a channel.
type CreateChannelRequest struct {
	Name      string `json:"name" validate:"required,max=100" doc:"Channel name"`
	Workspace string `json:"workspace" validate:"required,oneof=WORK PERSONAL" doc:"Workspace"`
}

// CreateChannelInput wraps the create channel request for huma.
type CreateChannelInput struct {
	Body CreateChannelRequest
}

// ChannelOutput wraps a single channel response for huma.
type ChannelOutput struct {
	Body ChannelResponse
}

// === Handlers ===

func (s *Server) handleListChannels(ctx context.Context, _ *struct{}) (*ListChannelsOutput, error) {
	channels, err := s.services.Channel.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ChannelResponse, len(channels))
	for i, c := range channels {
		resp[i] = channelToResponse(c)
	}

	return &ListChannelsOutput{Body: ListChannelsResponse{Channels: resp}}, nil
}

func (s *Server) handleCreateChannel(ctx context.Context, input *CreateChannelInput) (*ChannelOutput, error) {
	c, err := s.services.Channel.CreateChannel(ctx, service.CreateChannelRequest{
		Name:      input.Body.Name,
		Workspace: input.Body.Workspace,
	})
	if err != nil {
		return nil, err
	}

	return &ChannelOutput{Body: channelToResponse(c)}, nil
}

func (s *Server) handleGetChannel(ctx context.Context, input *IDParam) (*ChannelOutput, error) {
	c, err := s.services.Channel.GetChannel(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ChannelOutput{Body: channelToResponse(c)}, nil
}

func (s *Server) handleDeleteChannel(ctx context.Context, input *IDParam) (*MessageOutput, error) {
	if _, err := s.services.Channel.DeleteChannel(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Channel deleted"}}, nil
}
