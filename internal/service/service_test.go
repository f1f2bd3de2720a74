package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboardapp/taskboard-server/internal/search"
	"github.com/taskboardapp/taskboard-server/internal/store"
	"github.com/taskboardapp/taskboard-server/internal/store/sqlite"
)

// newTestStore creates a temporary sqlite store for service tests.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// newTestServices wires all services over one temporary store, without
// search.
func newTestServices(t *testing.T) *Services {
	t.Helper()
	s := newTestStore(t)
	logger := testLogger()
	return &Services{
		Tasks:    NewTaskService(s, nil, logger),
		Subtasks: NewSubtaskService(s, logger),
		Tags:     NewTagService(s, nil, logger),
		Channels: NewChannelService(s, logger),
		Instance: NewInstanceService(s, logger, "Test Server", "test"),
	}
}

// newTestSearchService wires a search service plus task/tag services that
// feed it, over one temporary store and index.
func newTestSearchService(t *testing.T) (*Services, *SearchService) {
	t.Helper()
	s := newTestStore(t)
	logger := testLogger()

	idx, err := search.NewSearchIndex(search.Options{DataPath: t.TempDir(), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	searchSvc := NewSearchService(idx, s, logger)
	svcs := &Services{
		Tasks:    NewTaskService(s, searchSvc, logger),
		Subtasks: NewSubtaskService(s, logger),
		Tags:     NewTagService(s, searchSvc, logger),
		Channels: NewChannelService(s, logger),
		Search:   searchSvc,
	}
	return svcs, searchSvc
}

func ptr[T any](v T) *T { return &v }
