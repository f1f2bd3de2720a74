package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

func TestCreateAndGetChannel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch := mustCreateChannel(t, s, "releases", domain.WorkspaceWork)
	if ch.ID == 0 {
		t.Fatal("CreateChannel did not assign an ID")
	}

	got, err := s.GetChannel(ctx, ch.ID)
	if err != nil {
		t.Fatalf("GetChannel: %v", err)
	}
	if got.Name != "releases" || got.Workspace != domain.WorkspaceWork {
		t.Errorf("got %+v", got)
	}

	if _, err := s.GetChannel(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListChannels(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListChannels(ctx)
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("got %v, want empty slice", empty)
	}

	mustCreateChannel(t, s, "zulu", domain.WorkspaceWork)
	mustCreateChannel(t, s, "alpha", domain.WorkspacePersonal)

	channels, err := s.ListChannels(ctx)
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(channels))
	}
	if channels[0].Name != "alpha" || channels[1].Name != "zulu" {
		t.Errorf("order: %q, %q", channels[0].Name, channels[1].Name)
	}
}

func TestDeleteChannel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch := mustCreateChannel(t, s, "doomed", domain.WorkspaceWork)

	if err := s.DeleteChannel(ctx, ch.ID); err != nil {
		t.Fatalf("DeleteChannel: %v", err)
	}
	if err := s.DeleteChannel(ctx, ch.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
