package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// GetInstance retrieves the singleton instance record.
// Returns store.ErrNotFound when the server has never been initialized.
func (s *Store) GetInstance(ctx context.Context) (*domain.Instance, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, version, created_at, updated_at FROM instance LIMIT 1`)

	var inst domain.Instance
	var createdAt, updatedAt string

	err := row.Scan(&inst.ID, &inst.Name, &inst.Version, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	inst.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	inst.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &inst, nil
}

// CreateInstance inserts the singleton instance record.
// Returns store.ErrAlreadyExists if one is already present.
func (s *Store) CreateInstance(ctx context.Context, inst *domain.Instance) error {
	// Single-row table: reject a second insert regardless of ID.
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM instance`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return store.ErrAlreadyExists
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO instance (id, name, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		inst.ID,
		inst.Name,
		inst.Version,
		formatTime(inst.CreatedAt),
		formatTime(inst.UpdatedAt),
	)
	return convertConstraintErr(err)
}
