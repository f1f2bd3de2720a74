package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerInstanceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Get instance",
		Description: "Returns the server instance identity",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)
}

// InstanceResponse contains server instance data in API responses.
type InstanceResponse struct {
	ID        string    `json:"id" doc:"Stable instance identifier"`
	Name      string    `json:"name" doc:"Server display name"`
	Version   string    `json:"version" doc:"Server version"`
	CreatedAt time.Time `json:"created_at" doc:"First startup time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// InstanceOutput wraps the instance response for huma.
type InstanceOutput struct {
	Body InstanceResponse
}

func (s *Server) handleGetInstance(ctx context.Context, _ *struct{}) (*InstanceOutput, error) {
	inst, err := s.services.Instance.GetInstance(ctx)
	if err != nil {
		return nil, err
	}

	return &InstanceOutput{
		Body: InstanceResponse{
			ID:        inst.ID,
			Name:      inst.Name,
			Version:   inst.Version,
			CreatedAt: inst.CreatedAt,
			UpdatedAt: inst.UpdatedAt,
		},
	}, nil
}
