// Package main provides a tool to seed the database with demo task data.
//
// This creates channels, tasks, subtasks, and tags so the board has something
// to show during frontend development.
//
// Usage:
//
//	DATA_PATH=~/Taskboard/data go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/taskboardapp/taskboard-server/internal/search"
	"github.com/taskboardapp/taskboard-server/internal/service"
	"github.com/taskboardapp/taskboard-server/internal/store/sqlite"
)

var channelSeeds = []struct {
	name      string
	workspace string
}{
	{"Backend", "WORK"},
	{"Frontend", "WORK"},
	{"Planning", "WORK"},
	{"Home", "PERSONAL"},
	{"Errands", "PERSONAL"},
}

var tagSeeds = []struct {
	name       string
	color      string
	workspaces []string
}{
	{"urgent", "#EF4444", []string{"WORK", "PERSONAL"}},
	{"blocked", "#F59E0B", []string{"WORK"}},
	{"quick-win", "#10B981", nil},
	{"deep-work", "#6366F1", []string{"WORK"}},
}

var taskTitles = map[string][]string{
	"WORK": {
		"Review API pagination proposal",
		"Fix flaky integration test on CI",
		"Write migration for channel table",
		"Prepare sprint planning notes",
		"Refactor search indexing batch size",
		"Update onboarding docs",
	},
	"PERSONAL": {
		"Book dentist appointment",
		"Plan weekend hike",
		"Renew passport",
		"Clean out garage shelves",
	},
}

var subtaskTitles = []string{
	"Collect context",
	"Draft first version",
	"Get feedback",
	"Finalize and ship",
}

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Taskboard/data")
	}

	fmt.Printf("Opening database at: %s\n", dataPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := sqlite.Open(filepath.Join(dataPath, "taskboard.db"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	index, err := search.NewSearchIndex(search.Options{DataPath: dataPath, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	searchService := service.NewSearchService(index, db, logger)
	channelService := service.NewChannelService(db, logger)
	taskService := service.NewTaskService(db, searchService, logger)
	subtaskService := service.NewSubtaskService(db, logger)
	tagService := service.NewTagService(db, searchService, logger)

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Channels first so tasks can reference them.
	channelIDs := map[string][]int64{}
	for _, cs := range channelSeeds {
		ch, err := channelService.CreateChannel(ctx, service.CreateChannelRequest{
			Name:      cs.name,
			Workspace: cs.workspace,
		})
		if err != nil {
			log.Printf("Failed to create channel %s: %v", cs.name, err)
			continue
		}
		channelIDs[cs.workspace] = append(channelIDs[cs.workspace], ch.ID)
		fmt.Printf("Created channel: %s (%s)\n", ch.Name, ch.Workspace)
	}

	var tagIDs []int64
	for _, ts := range tagSeeds {
		tag, err := tagService.CreateTag(ctx, service.CreateTagRequest{
			Name:       ts.name,
			Color:      ts.color,
			Workspaces: ts.workspaces,
		})
		if err != nil {
			log.Printf("Failed to create tag %s: %v", ts.name, err)
			continue
		}
		tagIDs = append(tagIDs, tag.ID)
		fmt.Printf("Created tag: %s\n", tag.Name)
	}

	statuses := []string{"BACKLOG", "BACKLOG", "TODAY", "IN_PROGRESS", "DONE"}
	tasksCreated := 0

	for workspace, titles := range taskTitles {
		for i, title := range titles {
			req := service.CreateTaskRequest{
				Title:     title,
				Workspace: workspace,
			}

			status := statuses[rng.Intn(len(statuses))]
			req.Status = &status

			// Roughly two thirds of tasks land in a channel.
			if channels := channelIDs[workspace]; len(channels) > 0 && rng.Intn(3) > 0 {
				channelID := channels[rng.Intn(len(channels))]
				req.ChannelID = &channelID
			}

			// A few tasks get a due date within the next two weeks.
			if rng.Intn(3) == 0 {
				due := time.Now().AddDate(0, 0, 1+rng.Intn(14)).Format("2006-01-02")
				req.DueDate = &due
			}

			if i == 0 {
				routine := true
				req.IsRoutine = &routine
			}

			task, err := taskService.CreateTask(ctx, req)
			if err != nil {
				log.Printf("Failed to create task %q: %v", title, err)
				continue
			}
			tasksCreated++

			// First task per workspace gets a checklist.
			if i == 0 {
				for _, st := range subtaskTitles {
					if _, err := subtaskService.CreateSubtask(ctx, task.ID, service.CreateSubtaskRequest{Title: st}); err != nil {
						log.Printf("Failed to create subtask %q: %v", st, err)
					}
				}
			}

			if len(tagIDs) > 0 && rng.Intn(2) == 0 {
				tagID := tagIDs[rng.Intn(len(tagIDs))]
				if err := tagService.AddTagToTask(ctx, task.ID, tagID); err != nil {
					log.Printf("Failed to tag task %q: %v", title, err)
				}
			}
		}
	}

	fmt.Printf("\nCreated %d tasks\n", tasksCreated)
	fmt.Println("Seeding complete!")
}
