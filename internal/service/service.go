// Package service contains the domain services. Each service enforces the
// invariants of one entity family and talks to the store; storage sentinel
// errors are converted to domain errors here so handlers only ever see the
// NotFound / Conflict / Validation taxonomy.
package service

import (
	apperrors "github.com/taskboardapp/taskboard-server/internal/errors"
	"github.com/taskboardapp/taskboard-server/internal/store"
)

// Services bundles all domain services for wiring into the API layer.
type Services struct {
	Tasks    *TaskService
	Subtasks *SubtaskService
	Tags     *TagService
	Channels *ChannelService
	Instance *InstanceService
	Search   *SearchService
}

var validationErrInvalidWorkspace = apperrors.Validation("workspace must be one of: WORK PERSONAL")

// storeNotFoundMessage surfaces the store's own message when it named the
// missing entity (task vs tag in association writes).
func storeNotFoundMessage(err error) string {
	var serr *store.Error
	if apperrors.As(err, &serr) && serr.Message != store.ErrNotFound.Message {
		return serr.Message
	}
	return "not found"
}

// convertStoreErr maps storage sentinels onto domain errors. notFoundMsg
// and conflictMsg name the entity for user-facing messages; other errors
// pass through untouched as infrastructure failures.
func convertStoreErr(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg).WithCause(err)
	}
	if apperrors.Is(err, store.ErrAlreadyExists) {
		return apperrors.Conflict(conflictMsg).WithCause(err)
	}
	return err
}
