// Package changefeed publishes a record of every committed write to standards and incidents.
package changefeed

import (
	"context"
	"time"
)

// Resource names used in change records and subjects.
const (
	ResourceStandard = "standard"
	ResourceIncident = "incident"
)

// Action describes what happened to a resource.
type Action string

// Change actions.
const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Change is a single committed write.
type Change struct {
	Resource   string    `json:"resource"`
	Action     Action    `json:"action"`
	ID         string    `json:"id"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers change records to subscribers.
// Publish is called after the write is committed; a failure must not undo it.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// NopPublisher discards every change. Used when the change feed is disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Change) error {
	return nil
}
