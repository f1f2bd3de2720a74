package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	apperrors "github.com/taskboardapp/taskboard-server/internal/errors"
	"github.com/taskboardapp/taskboard-server/internal/id"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// InstanceService manages the singleton record describing this server.
type InstanceService struct {
	store   store.Store
	logger  *slog.Logger
	name    string
	version string
}

// NewInstanceService creates a new instance service.
func NewInstanceService(store store.Store, logger *slog.Logger, name, version string) *InstanceService {
	return &InstanceService{
		store:   store,
		logger:  logger,
		name:    name,
		version: version,
	}
}

// EnsureInstance returns the instance record, creating it on first
// startup. The generated ID is stable for the lifetime of the deployment.
func (s *InstanceService) EnsureInstance(ctx context.Context) (*domain.Instance, error) {
	inst, err := s.store.GetInstance(ctx)
	if err == nil {
		return inst, nil
	}
	if !apperrors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	instanceID, err := id.Generate("inst")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inst = &domain.Instance{
		ID:        instanceID,
		Name:      s.name,
		Version:   s.version,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateInstance(ctx, inst); err != nil {
		// Lost a startup race; the winner's record is authoritative.
		if apperrors.Is(err, store.ErrAlreadyExists) {
			return s.store.GetInstance(ctx)
		}
		return nil, err
	}

	s.logger.Info("instance initialized", "id", inst.ID, "name", inst.Name, "version", inst.Version)
	return inst, nil
}

// GetInstance returns the instance record.
func (s *InstanceService) GetInstance(ctx context.Context) (*domain.Instance, error) {
	inst, err := s.store.GetInstance(ctx)
	return inst, convertStoreErr(err, "instance not initialized", "")
}
