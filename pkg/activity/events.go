package activity

import (
	"strings"
	"time"
)

// Well-known change verbs emitted by collections and syncers.
const (
	VerbAppend  = "collection.append"
	VerbRemove  = "collection.remove"
	VerbReplace = "collection.replace"
	VerbClear   = "collection.clear"
	VerbReorder = "collection.reorder"
	VerbSync    = "collection.sync"
)

// ChangeInput describes the common fields for collection change events.
type ChangeInput struct {
	CollectionID   string
	SnapshotID     string
	PrevSnapshotID string
	Size           int
	PrevSize       int
	ActorID        string
	UserID         string
	TenantID       string
	Channel        string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// BuildChangeEvent constructs a normalized event for verb. Snapshot
// provenance and sizes travel in the event metadata.
func BuildChangeEvent(verb string, input ChangeInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.SnapshotID != "" {
		metadata = ensureMetadata(metadata)
		metadata["snapshot_id"] = input.SnapshotID
	}
	if input.PrevSnapshotID != "" {
		metadata = ensureMetadata(metadata)
		metadata["prev_snapshot_id"] = input.PrevSnapshotID
	}
	metadata = ensureMetadata(metadata)
	metadata["size"] = input.Size
	metadata["prev_size"] = input.PrevSize

	objectID := strings.TrimSpace(input.CollectionID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.SnapshotID)
	}
	if objectID == "" {
		objectID = "collection"
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: "collection",
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

// BuildSyncEvent constructs an event describing a snapshot push to external
// persistence.
func BuildSyncEvent(input ChangeInput) Event {
	return BuildChangeEvent(VerbSync, input)
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
