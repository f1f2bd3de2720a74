package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
	"github.com/taskboardapp/taskboard-server/internal/validation"
)

// ChannelService orchestrates channel operations.
type ChannelService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewChannelService creates a new channel service.
func NewChannelService(store store.Store, logger *slog.Logger) *ChannelService {
	return &ChannelService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListChannels returns all channels ordered by name.
func (s *ChannelService) ListChannels(ctx context.Context) ([]*domain.Channel, error) {
	return s.store.ListChannels(ctx)
}

// GetChannel returns a single channel.
func (s *ChannelService) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	c, err := s.store.GetChannel(ctx, id)
	return c, convertStoreErr(err, "channel not found", "")
}

// CreateChannelRequest contains fields for creating a channel.
type CreateChannelRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Workspace string `json:"workspace" validate:"required,oneof=WORK PERSONAL"`
}

// CreateChannel creates a channel.
func (s *ChannelService) CreateChannel(ctx context.Context, req CreateChannelRequest) (*domain.Channel, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &domain.Channel{
		Name:      req.Name,
		Workspace: domain.Workspace(req.Workspace),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateChannel(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("channel created", "id", c.ID, "name", c.Name)
	return c, nil
}

// DeleteChannel removes a channel and returns the prior record. Tasks
// referencing it survive with their channel reference cleared by the
// store.
func (s *ChannelService) DeleteChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	c, err := s.store.GetChannel(ctx, id)
	if err != nil {
		return nil, convertStoreErr(err, "channel not found", "")
	}

	if err := s.store.DeleteChannel(ctx, id); err != nil {
		return nil, convertStoreErr(err, "channel not found", "")
	}

	s.logger.Info("channel deleted", "id", id, "name", c.Name)
	return c, nil
}
