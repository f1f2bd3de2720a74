package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

const channelColumns = `id, name, workspace, created_at, updated_at`

func scanChannel(scanner interface{ Scan(dest ...any) error }) (*domain.Channel, error) {
	var c domain.Channel

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.Workspace,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateChannel inserts a new channel and assigns its generated ID.
func (s *Store) CreateChannel(ctx context.Context, c *domain.Channel) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO channels (name, workspace, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		c.Name,
		c.Workspace,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return err
	}

	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetChannel retrieves a channel by ID.
// Returns store.ErrNotFound if the channel does not exist.
func (s *Store) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+channelColumns+` FROM channels WHERE id = ?`, id)

	c, err := scanChannel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListChannels returns all channels ordered by name.
func (s *Store) ListChannels(ctx context.Context) ([]*domain.Channel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+channelColumns+` FROM channels ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []*domain.Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if channels == nil {
		channels = []*domain.Channel{}
	}

	return channels, nil
}

// DeleteChannel removes a channel. Tasks referencing it keep existing
// with their channel_id nulled via ON DELETE SET NULL.
// Returns store.ErrNotFound if the channel does not exist.
func (s *Store) DeleteChannel(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
