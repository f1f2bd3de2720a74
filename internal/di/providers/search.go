package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/taskboardapp/taskboard-server/internal/config"
	"github.com/taskboardapp/taskboard-server/internal/logger"
	"github.com/taskboardapp/taskboard-server/internal/search"
	"github.com/taskboardapp/taskboard-server/internal/service"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	if count, err := index.DocumentCount(); err == nil {
		log.Info("Search index initialized", "documents", count)
	}

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(indexHandle.SearchIndex, storeHandle.Store, log.Logger), nil
}

// TriggerSearchReindexIfNeeded reindexes all tasks in the background when the
// index is empty but the database is not. This covers mapping version bumps
// and recovery from a corrupted index.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	count, err := indexHandle.DocumentCount()
	if err != nil {
		log.Warn("Failed to read search index document count", "error", err)
		return
	}
	if count > 0 {
		return
	}

	tasks, err := storeHandle.ListTasks(context.Background(), store.TaskFilter{})
	if err != nil || len(tasks) == 0 {
		return
	}

	log.Info("Search index is empty, rebuilding in background", "tasks", len(tasks))
	go func() {
		if err := searchService.RebuildIndex(context.Background()); err != nil {
			log.Error("Background search reindex failed", "error", err)
		}
	}()
}
