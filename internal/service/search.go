package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/taskboardapp/taskboard-server/internal/domain"
	"github.com/taskboardapp/taskboard-server/internal/search"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// SearchService maintains the full-text index over tasks and runs
// queries against it.
type SearchService struct {
	index  *search.SearchIndex
	store  store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// SearchRequest configures a task search.
type SearchRequest struct {
	Query     string
	Workspace string
	Status    string
	Limit     int
	Offset    int
}

// Search runs a full-text query over tasks.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*search.SearchResult, error) {
	params := search.DefaultSearchParams()
	params.Query = req.Query
	params.Workspace = req.Workspace
	params.Status = req.Status
	if req.Limit > 0 {
		params.Limit = req.Limit
	}
	params.Offset = req.Offset

	return s.index.Search(ctx, params)
}

// IndexTask writes the task's search document, denormalizing its tag
// names into it.
func (s *SearchService) IndexTask(ctx context.Context, t *domain.Task) error {
	tags, err := s.store.ListTagsByTask(ctx, t.ID)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	return s.index.IndexDocument(search.TaskToSearchDocument(t, names))
}

// DocumentCount returns the number of indexed task documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// RemoveTask drops a task from the index, best effort.
func (s *SearchService) RemoveTask(id int64) {
	if err := s.index.DeleteDocument(strconv.FormatInt(id, 10)); err != nil {
		s.logger.Warn("failed to remove task from index", "id", id, "error", err)
	}
}

// RebuildIndex drops the index and reindexes every task. Run at startup
// after a mapping change and available as a maintenance operation.
func (s *SearchService) RebuildIndex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return err
	}

	tasks, err := s.store.ListTasks(ctx, store.TaskFilter{})
	if err != nil {
		return err
	}

	for _, t := range tasks {
		if err := s.IndexTask(ctx, t); err != nil {
			return err
		}
	}

	s.logger.Info("search index rebuilt", "tasks", len(tasks))
	return nil
}
