// Package search provides full-text task search using Bleve.
package search

import (
	"strconv"

	"github.com/taskboardapp/taskboard-server/internal/domain"
)

// SearchDocument is the document structure for the Bleve index, one per task.
//
// The channel name and tag names are denormalized into the document so a
// single query covers them without hitting the database.
type SearchDocument struct {
	ID          string   `json:"id"` // Task ID in decimal form
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Workspace   string   `json:"workspace"`
	Status      string   `json:"status"`
	Channel     string   `json:"channel,omitempty"` // Denormalized for search
	Tags        []string `json:"tags,omitempty"`    // Denormalized for search
	IsRoutine   bool     `json:"is_routine"`

	// Timestamps for sorting. Unix millis.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"workspace":  d.Workspace,
		"status":     d.Status,
		"is_routine": d.IsRoutine,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Channel != "" {
		m["channel"] = d.Channel
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// TaskToSearchDocument converts a domain Task to a SearchDocument.
// Tag names are passed separately since the task record does not carry them.
func TaskToSearchDocument(t *domain.Task, tagNames []string) *SearchDocument {
	doc := &SearchDocument{
		ID:        strconv.FormatInt(t.ID, 10),
		Title:     t.Title,
		Workspace: string(t.Workspace),
		Status:    string(t.Status),
		Tags:      tagNames,
		IsRoutine: t.IsRoutine,
		CreatedAt: t.CreatedAt.UnixMilli(),
		UpdatedAt: t.UpdatedAt.UnixMilli(),
	}
	if t.Description != nil {
		doc.Description = *t.Description
	}
	if t.Channel != nil {
		doc.Channel = t.Channel.Name
	}
	return doc
}
