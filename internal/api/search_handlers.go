package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taskboardapp/taskboard-server/internal/search"
	"github.com/taskboardapp/taskboard-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchTasks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search tasks",
		Description: "Full-text search over task titles, descriptions, channels, and tags",
		Tags:        []string{"Search"},
	}, s.handleSearchTasks)
}

// === DTOs ===

// SearchInput contains query parameters for searching tasks.
type SearchInput struct {
	Query     string `query:"q" required:"true" minLength:"1" doc:"Search query"`
	Workspace string `query:"workspace" doc:"Restrict to one workspace (WORK or PERSONAL)"`
	Status    string `query:"status" doc:"Restrict to one task status"`
	Limit     int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum hits to return"`
	Offset    int    `query:"offset" default:"0" minimum:"0" doc:"Hits to skip for pagination"`
}

// SearchHitResponse is a single search hit.
type SearchHitResponse struct {
	ID         string            `json:"id" doc:"Task ID"`
	Title      string            `json:"title" doc:"Task title"`
	Workspace  string            `json:"workspace" doc:"Task workspace"`
	Status     string            `json:"status" doc:"Task status"`
	Channel    string            `json:"channel,omitempty" doc:"Channel name"`
	Score      float64           `json:"score" doc:"Relevance score"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Highlighted fragment per field"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Query  string              `json:"query" doc:"Echoed search query"`
	Hits   []SearchHitResponse `json:"hits" doc:"Matching tasks, best first"`
	Total  uint64              `json:"total" doc:"Total matches across all pages"`
	TookMs int64               `json:"took_ms" doc:"Query duration in milliseconds"`
}

// SearchOutput wraps the search response for huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearchTasks(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, service.SearchRequest{
		Query:     input.Query,
		Workspace: input.Workspace,
		Status:    input.Status,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: searchResultToResponse(result)}, nil
}

func searchResultToResponse(result *search.SearchResult) SearchResponse {
	hits := make([]SearchHitResponse, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = SearchHitResponse{
			ID:         h.ID,
			Title:      h.Title,
			Workspace:  h.Workspace,
			Status:     h.Status,
			Channel:    h.Channel,
			Score:      h.Score,
			Highlights: h.Highlights,
		}
	}

	return SearchResponse{
		Query:  result.Query,
		Hits:   hits,
		Total:  result.Total,
		TookMs: result.TookMs,
	}
}
