package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:       " collection.append ",
		ActorID:    " actor ",
		UserID:     " user ",
		TenantID:   " tenant ",
		ObjectType: " collection ",
		ObjectID:   " queue ",
		Channel:    " collection ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != "collection.append" || got.ObjectType != "collection" || got.ObjectID != "queue" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.UserID != "user" || got.TenantID != "tenant" || got.Channel != "collection" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	if got.Metadata["k"] != "v" {
		t.Fatalf("expected metadata value preserved: %+v", got.Metadata)
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyShortCircuitsMissingRequired(t *testing.T) {
	hooks := Hooks{&CaptureHook{}}
	err := hooks.Notify(context.Background(), Event{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	capture := hooks[0].(*CaptureHook)
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	errFirst := errors.New("boom1")
	errSecond := errors.New("boom2")
	capture := &CaptureHook{}
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, event Event) error {
			if ctx != nil {
				ctxSeen = true
			}
			return nil
		}),
		capture,
		HookFunc(func(_ context.Context, _ Event) error { return errFirst }),
		nil,
		HookFunc(func(_ context.Context, _ Event) error { return errSecond }),
	}

	err := hooks.Notify(nil, Event{Verb: VerbRemove, ObjectType: "collection", ObjectID: "queue"})
	if err == nil || !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event to be captured once, got %d", len(capture.Events))
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Emit(context.Background(), Event{Verb: VerbAppend, ObjectType: "collection", ObjectID: "queue"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	enabled := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: ""})
	if !enabled.Enabled() {
		t.Fatalf("expected emitter to be enabled")
	}
	if err := enabled.Emit(context.Background(), Event{Verb: VerbAppend, ObjectType: "collection", ObjectID: "queue"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(capture.Events))
	}
	if capture.Events[0].Channel != "collection" {
		t.Fatalf("expected default channel applied, got %q", capture.Events[0].Channel)
	}
}

func TestEmitterPreservesExplicitChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "default"})

	err := emitter.Emit(context.Background(), Event{
		Verb:       VerbReplace,
		ObjectType: "collection",
		ObjectID:   "queue",
		Channel:    "custom",
		OccurredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if capture.Events[0].Channel != "custom" {
		t.Fatalf("expected explicit channel preserved, got %q", capture.Events[0].Channel)
	}
	if capture.Events[0].OccurredAt != (time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected occurred_at preserved, got %v", capture.Events[0].OccurredAt)
	}
}

func TestBuildChangeEventCarriesProvenance(t *testing.T) {
	event := BuildChangeEvent(VerbAppend, ChangeInput{
		CollectionID:   "queue",
		SnapshotID:     "snap-2",
		PrevSnapshotID: "snap-1",
		Size:           3,
		PrevSize:       2,
		ActorID:        " actor ",
	})

	if event.Verb != VerbAppend || event.ObjectType != "collection" || event.ObjectID != "queue" {
		t.Fatalf("unexpected event identity: %+v", event)
	}
	if event.ActorID != "actor" {
		t.Fatalf("expected actor trimmed, got %q", event.ActorID)
	}
	if event.Metadata["snapshot_id"] != "snap-2" || event.Metadata["prev_snapshot_id"] != "snap-1" {
		t.Fatalf("expected snapshot provenance, got %+v", event.Metadata)
	}
	if event.Metadata["size"] != 3 || event.Metadata["prev_size"] != 2 {
		t.Fatalf("expected size metadata, got %+v", event.Metadata)
	}
}

func TestBuildChangeEventFallsBackToSnapshotID(t *testing.T) {
	event := BuildChangeEvent(VerbClear, ChangeInput{SnapshotID: "snap-9"})
	if event.ObjectID != "snap-9" {
		t.Fatalf("expected snapshot fallback object id, got %q", event.ObjectID)
	}

	event = BuildChangeEvent(VerbClear, ChangeInput{})
	if event.ObjectID != "collection" {
		t.Fatalf("expected object type fallback, got %q", event.ObjectID)
	}
}
