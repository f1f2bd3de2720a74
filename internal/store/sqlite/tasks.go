package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// taskColumns is the ordered list of columns selected in task queries,
// the task row followed by its left-joined channel.
// Must match the scan order in scanTask.
const taskColumns = `t.id, t.title, t.description, t.workspace, t.channel_id, t.status,
	t.due_date, t.is_routine, t.created_at, t.updated_at,
	c.id, c.name, c.workspace, c.created_at, c.updated_at`

const taskFrom = ` FROM tasks t LEFT JOIN channels c ON c.id = t.channel_id`

// scanTask scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Task with its joined channel, if any.
func scanTask(scanner interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var t domain.Task

	var (
		description sql.NullString
		channelID   sql.NullInt64
		dueDate     sql.NullString
		createdAt   string
		updatedAt   string

		chID        sql.NullInt64
		chName      sql.NullString
		chWorkspace sql.NullString
		chCreatedAt sql.NullString
		chUpdatedAt sql.NullString
	)

	err := scanner.Scan(
		&t.ID,
		&t.Title,
		&description,
		&t.Workspace,
		&channelID,
		&t.Status,
		&dueDate,
		&t.IsRoutine,
		&createdAt,
		&updatedAt,
		&chID,
		&chName,
		&chWorkspace,
		&chCreatedAt,
		&chUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		t.Description = &description.String
	}
	if channelID.Valid {
		t.ChannelID = &channelID.Int64
	}
	t.DueDate, err = parseNullableTime(dueDate)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if chID.Valid {
		ch := domain.Channel{
			ID:        chID.Int64,
			Name:      chName.String,
			Workspace: domain.Workspace(chWorkspace.String),
		}
		ch.CreatedAt, err = parseTime(chCreatedAt.String)
		if err != nil {
			return nil, err
		}
		ch.UpdatedAt, err = parseTime(chUpdatedAt.String)
		if err != nil {
			return nil, err
		}
		t.Channel = &ch
	}

	return &t, nil
}

// CreateTask inserts a new task and assigns its generated ID.
// Returns store.ErrNotFound if the referenced channel does not exist.
func (s *Store) CreateTask(ctx context.Context, t *domain.Task) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, workspace, channel_id, status, due_date, is_routine, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title,
		nullableString(t.Description),
		t.Workspace,
		nullableInt64(t.ChannelID),
		t.Status,
		nullTimeString(t.DueDate),
		t.IsRoutine,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return convertConstraintErr(err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetTask retrieves a task with its channel.
// Returns store.ErrNotFound if the task does not exist.
func (s *Store) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+taskFrom+` WHERE t.id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns tasks matching the filter, newest first, each with
// its joined channel. Filter fields are ANDed; nil fields match all.
func (s *Store) ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Workspace != nil {
		conds = append(conds, "t.workspace = ?")
		args = append(args, *filter.Workspace)
	}
	if filter.Status != nil {
		conds = append(conds, "t.status = ?")
		args = append(args, *filter.Status)
	}
	if filter.ChannelID != nil {
		conds = append(conds, "t.channel_id = ?")
		args = append(args, *filter.ChannelID)
	}

	query := `SELECT ` + taskColumns + taskFrom
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}

// UpdateTask writes all mutable fields of the task.
// Returns store.ErrNotFound if the task does not exist, and
// store.ErrNotFound if a newly referenced channel is missing.
func (s *Store) UpdateTask(ctx context.Context, t *domain.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, workspace = ?, channel_id = ?, status = ?,
			due_date = ?, is_routine = ?, updated_at = ?
		WHERE id = ?`,
		t.Title,
		nullableString(t.Description),
		t.Workspace,
		nullableInt64(t.ChannelID),
		t.Status,
		nullTimeString(t.DueDate),
		t.IsRoutine,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return convertConstraintErr(err)
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

// DeleteTask removes a task. Subtasks and tag associations go with it
// via ON DELETE CASCADE.
// Returns store.ErrNotFound if the task does not exist.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
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
