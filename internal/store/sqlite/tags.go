package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, color, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
// Workspaces are loaded separately from tag_workspaces.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Color,
		&createdAt,
		&updatedAt,
	)
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

	return &t, nil
}

// querier covers *sql.DB and *sql.Tx for the helpers below.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// loadTagWorkspaces fills in the workspace set for a tag.
func loadTagWorkspaces(ctx context.Context, q querier, t *domain.Tag) error {
	rows, err := q.QueryContext(ctx,
		`SELECT workspace FROM tag_workspaces WHERE tag_id = ? ORDER BY workspace ASC`, t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	t.Workspaces = []domain.Workspace{}
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws); err != nil {
			return err
		}
		t.Workspaces = append(t.Workspaces, ws)
	}
	return rows.Err()
}

// replaceTagWorkspaces rewrites the workspace set for a tag.
func replaceTagWorkspaces(ctx context.Context, q querier, tagID int64, workspaces []domain.Workspace) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM tag_workspaces WHERE tag_id = ?`, tagID); err != nil {
		return fmt.Errorf("delete tag_workspaces: %w", err)
	}
	for _, ws := range workspaces {
		_, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO tag_workspaces (tag_id, workspace) VALUES (?, ?)`, tagID, ws)
		if err != nil {
			return fmt.Errorf("insert tag_workspace: %w", err)
		}
	}
	return nil
}

// CreateTag inserts a new tag with its workspace set and assigns its
// generated ID.
// Returns store.ErrAlreadyExists on duplicate name (case-sensitive).
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO tags (name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.Name,
		t.Color,
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

	if err := replaceTagWorkspaces(ctx, tx, t.ID, t.Workspaces); err != nil {
		return err
	}

	return tx.Commit()
}

// GetTag retrieves a tag with its workspace set.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := loadTagWorkspaces(ctx, s.db, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns tags ordered by name. When workspace is non-nil only
// tags whose workspace set contains that value are returned.
func (s *Store) ListTags(ctx context.Context, workspace *domain.Workspace) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags ORDER BY name ASC`
	args := []any{}
	if workspace != nil {
		query = `SELECT ` + tagColumns + ` FROM tags
			WHERE id IN (SELECT tag_id FROM tag_workspaces WHERE workspace = ?)
			ORDER BY name ASC`
		args = append(args, *workspace)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tags {
		if err := loadTagWorkspaces(ctx, s.db, t); err != nil {
			return nil, err
		}
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// UpdateTag writes all mutable fields of the tag, including its
// workspace set.
// Returns store.ErrNotFound if the tag does not exist and
// store.ErrAlreadyExists if the new name collides with another tag.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE tags SET name = ?, color = ?, updated_at = ? WHERE id = ?`,
		t.Name,
		t.Color,
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

	if err := replaceTagWorkspaces(ctx, tx, t.ID, t.Workspaces); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTag removes a tag. Its task associations and workspace rows go
// with it via ON DELETE CASCADE.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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

// ListTasksByTag returns the tasks associated with a tag, newest first.
func (s *Store) ListTasksByTag(ctx context.Context, tagID int64) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+taskFrom+`
		JOIN task_tags tt ON tt.task_id = t.id
		WHERE tt.tag_id = ?
		ORDER BY t.created_at DESC`, tagID)
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

// ListTagsByTask returns the tags associated with a task, name ascending.
func (s *Store) ListTagsByTask(ctx context.Context, taskID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags
		WHERE id IN (SELECT tag_id FROM task_tags WHERE task_id = ?)
		ORDER BY name ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tags {
		if err := loadTagWorkspaces(ctx, s.db, t); err != nil {
			return nil, err
		}
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// AddTagToTask creates a task-tag association. The parent lookups and
// the insert share one transaction so the NotFound/Conflict distinction
// is made against a consistent snapshot.
// Returns store.ErrNotFound if either parent is missing and
// store.ErrAlreadyExists if the pair is already linked.
func (s *Store) AddTagToTask(ctx context.Context, taskID, tagID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = ?`, taskID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound.WithMessage("task not found")
		}
		return err
	}
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM tags WHERE id = ?`, tagID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound.WithMessage("tag not found")
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_tags (task_id, tag_id, created_at)
		VALUES (?, ?, ?)`,
		taskID,
		tagID,
		formatTime(time.Now().UTC()),
	)
	if err != nil {
		return convertConstraintErr(err)
	}

	return tx.Commit()
}

// RemoveTagFromTask deletes a task-tag association.
// Returns store.ErrNotFound if the pair is not linked.
func (s *Store) RemoveTagFromTask(ctx context.Context, taskID, tagID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`, taskID, tagID)
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
