package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// makeTestSubtask creates a domain.Subtask with sensible defaults for testing.
func makeTestSubtask(taskID int64, title string) *domain.Subtask {
	now := time.Now()
	return &domain.Subtask{
		TaskID:    taskID,
		Title:     title,
		Status:    domain.SubtaskStatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateSubtask_PositionResolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, makeTestTask("parent"))

	// First subtask without a position lands at 0.
	first := makeTestSubtask(task.ID, "first")
	if err := s.CreateSubtask(ctx, first, false); err != nil {
		t.Fatalf("CreateSubtask: %v", err)
	}
	if first.Position != 0 {
		t.Errorf("first position: got %d, want 0", first.Position)
	}

	// Caller-supplied positions are taken verbatim, gaps allowed.
	for _, pos := range []int{2, 5} {
		st := makeTestSubtask(task.ID, "explicit")
		st.Position = pos
		if err := s.CreateSubtask(ctx, st, true); err != nil {
			t.Fatalf("CreateSubtask(pos=%d): %v", pos, err)
		}
		if st.Position != pos {
			t.Errorf("position: got %d, want %d", st.Position, pos)
		}
	}

	// Auto position over {0,2,5} is max+1 = 6.
	auto := makeTestSubtask(task.ID, "auto")
	if err := s.CreateSubtask(ctx, auto, false); err != nil {
		t.Fatalf("CreateSubtask(auto): %v", err)
	}
	if auto.Position != 6 {
		t.Errorf("auto position: got %d, want 6", auto.Position)
	}
}

func TestCreateSubtask_MissingParent(t *testing.T) {
	s := newTestStore(t)

	st := makeTestSubtask(999, "orphan")
	err := s.CreateSubtask(context.Background(), st, false)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGetSubtask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, makeTestTask("parent"))
	st := makeTestSubtask(task.ID, "child")
	if err := s.CreateSubtask(ctx, st, false); err != nil {
		t.Fatalf("CreateSubtask: %v", err)
	}

	got, err := s.GetSubtask(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetSubtask: %v", err)
	}
	if got.Title != "child" || got.TaskID != task.ID {
		t.Errorf("got %+v", got)
	}
	if got.Task == nil || got.Task.ID != task.ID {
		t.Errorf("parent task not joined: %+v", got.Task)
	}
	if got.CompletedAt != nil {
		t.Errorf("CompletedAt: got %v, want nil", got.CompletedAt)
	}

	if _, err := s.GetSubtask(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListSubtasksByTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, makeTestTask("parent"))

	// Insert out of order to verify position sorting.
	for _, pos := range []int{3, 0, 7} {
		st := makeTestSubtask(task.ID, "st")
		st.Position = pos
		if err := s.CreateSubtask(ctx, st, true); err != nil {
			t.Fatalf("CreateSubtask: %v", err)
		}
	}

	subs, err := s.ListSubtasksByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ListSubtasksByTask: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d subtasks, want 3", len(subs))
	}
	for i, want := range []int{0, 3, 7} {
		if subs[i].Position != want {
			t.Errorf("position[%d]: got %d, want %d", i, subs[i].Position, want)
		}
		if subs[i].Task == nil {
			t.Errorf("subtask[%d] missing joined task", i)
		}
	}
}

func TestListSubtasksByTask_MissingParent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ListSubtasksByTask(context.Background(), 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateSubtask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, makeTestTask("parent"))
	st := makeTestSubtask(task.ID, "child")
	if err := s.CreateSubtask(ctx, st, false); err != nil {
		t.Fatalf("CreateSubtask: %v", err)
	}

	now := time.Now()
	st.Title = "renamed"
	st.Status = domain.SubtaskStatusDone
	st.CompletedAt = &now
	st.Position = 9
	st.UpdatedAt = now

	if err := s.UpdateSubtask(ctx, st); err != nil {
		t.Fatalf("UpdateSubtask: %v", err)
	}

	got, err := s.GetSubtask(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetSubtask: %v", err)
	}
	if got.Title != "renamed" || got.Status != domain.SubtaskStatusDone || got.Position != 9 {
		t.Errorf("got %+v", got)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not persisted")
	}

	// Clearing CompletedAt persists NULL.
	st.Status = domain.SubtaskStatusTodo
	st.CompletedAt = nil
	if err := s.UpdateSubtask(ctx, st); err != nil {
		t.Fatalf("UpdateSubtask(clear): %v", err)
	}
	got, err = s.GetSubtask(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetSubtask: %v", err)
	}
	if got.CompletedAt != nil {
		t.Errorf("CompletedAt: got %v, want nil", got.CompletedAt)
	}

	ghost := makeTestSubtask(task.ID, "ghost")
	ghost.ID = 999
	if err := s.UpdateSubtask(ctx, ghost); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteSubtask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s, makeTestTask("parent"))
	st := makeTestSubtask(task.ID, "child")
	if err := s.CreateSubtask(ctx, st, false); err != nil {
		t.Fatalf("CreateSubtask: %v", err)
	}

	if err := s.DeleteSubtask(ctx, st.ID); err != nil {
		t.Fatalf("DeleteSubtask: %v", err)
	}
	if err := s.DeleteSubtask(ctx, st.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
