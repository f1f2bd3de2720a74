package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// subtaskColumns is the ordered list of columns selected in subtask queries.
// Must match the scan order in scanSubtask.
const subtaskColumns = `id, task_id, title, status, position, completed_at, created_at, updated_at`

// scanSubtask scans a sql.Row (or sql.Rows via its Scan method) into a domain.Subtask.
func scanSubtask(scanner interface{ Scan(dest ...any) error }) (*domain.Subtask, error) {
	var st domain.Subtask

	var (
		completedAt sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&st.ID,
		&st.TaskID,
		&st.Title,
		&st.Status,
		&st.Position,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.CompletedAt, err = parseNullableTime(completedAt)
	if err != nil {
		return nil, err
	}
	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// CreateSubtask inserts a new subtask and assigns its generated ID.
// When hasPosition is false the position is resolved inside the same
// transaction as the insert: one past the highest sibling position, or 0
// for the first subtask. The parent existence check rides on the
// foreign key.
// Returns store.ErrNotFound if the parent task does not exist.
func (s *Store) CreateSubtask(ctx context.Context, st *domain.Subtask, hasPosition bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if !hasPosition {
		// MAX(position) over zero rows is NULL; treat it as -1 so the
		// first subtask lands at 0.
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM subtasks WHERE task_id = ?`,
			st.TaskID,
		).Scan(&st.Position)
		if err != nil {
			return fmt.Errorf("resolve position: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO subtasks (task_id, title, status, position, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.TaskID,
		st.Title,
		st.Status,
		st.Position,
		nullTimeString(st.CompletedAt),
		formatTime(st.CreatedAt),
		formatTime(st.UpdatedAt),
	)
	if err != nil {
		return convertConstraintErr(err)
	}

	st.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	return tx.Commit()
}

// GetSubtask retrieves a subtask with its parent task.
// Returns store.ErrNotFound if the subtask does not exist.
func (s *Store) GetSubtask(ctx context.Context, id int64) (*domain.Subtask, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subtaskColumns+` FROM subtasks WHERE id = ?`, id)

	st, err := scanSubtask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	st.Task, err = s.GetTask(ctx, st.TaskID)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ListSubtasksByTask returns the subtasks of a task ordered by position.
// Returns store.ErrNotFound if the task does not exist; the subtask
// query is never issued in that case.
func (s *Store) ListSubtasksByTask(ctx context.Context, taskID int64) ([]*domain.Subtask, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subtaskColumns+` FROM subtasks WHERE task_id = ? ORDER BY position ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []*domain.Subtask
	for rows.Next() {
		st, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		st.Task = task
		subtasks = append(subtasks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if subtasks == nil {
		subtasks = []*domain.Subtask{}
	}

	return subtasks, nil
}

// UpdateSubtask writes all mutable fields of the subtask.
// Returns store.ErrNotFound if the subtask does not exist.
func (s *Store) UpdateSubtask(ctx context.Context, st *domain.Subtask) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE subtasks
		SET title = ?, status = ?, position = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		st.Title,
		st.Status,
		st.Position,
		nullTimeString(st.CompletedAt),
		formatTime(st.UpdatedAt),
		st.ID,
	)
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

// DeleteSubtask removes a subtask.
// Returns store.ErrNotFound if the subtask does not exist.
func (s *Store) DeleteSubtask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, id)
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
