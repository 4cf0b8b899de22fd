package history

import (
	"context"

	historyv1 "github.com/swturbo14/lobSimulations/internal/domain/history/v1"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// MemoryRecorder is the append-only in-memory history of book snapshots.
// Entries are value types; once appended they are never mutated.
type MemoryRecorder struct {
	entries []historyv1.Entry
}

// NewMemoryRecorder creates an empty recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Append records one snapshot.
func (r *MemoryRecorder) Append(entry historyv1.Entry) {
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of the recorded history.
func (r *MemoryRecorder) Entries() []historyv1.Entry {
	out := make([]historyv1.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns the most recent entry, if any.
func (r *MemoryRecorder) Last() (historyv1.Entry, bool) {
	if len(r.entries) == 0 {
		return historyv1.Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Len returns the number of recorded entries.
func (r *MemoryRecorder) Len() int {
	return len(r.entries)
}

// PublishingRecorder decorates a Recorder with a Sink: every appended entry
// is also published for out-of-process consumers. A publish failure is
// logged and dropped; the in-memory history stays authoritative.
type PublishingRecorder struct {
	inner historyv1.Recorder
	sink  historyv1.Sink
	log   *logger.Logger
	ctx   context.Context
}

// NewPublishingRecorder wraps inner so appended entries also reach sink.
func NewPublishingRecorder(ctx context.Context, inner historyv1.Recorder, sink historyv1.Sink, log *logger.Logger) *PublishingRecorder {
	return &PublishingRecorder{
		inner: inner,
		sink:  sink,
		log:   log,
		ctx:   ctx,
	}
}

// Append records the entry and publishes it.
func (r *PublishingRecorder) Append(entry historyv1.Entry) {
	r.inner.Append(entry)

	if err := r.sink.Publish(r.ctx, entry); err != nil {
		r.log.Error(err,
			logger.Field{Key: "action", Value: "publish_history_entry"},
			logger.Field{Key: "seq", Value: entry.Seq},
		)
	}
}

// Entries returns a copy of the recorded history.
func (r *PublishingRecorder) Entries() []historyv1.Entry {
	return r.inner.Entries()
}

// Last returns the most recent entry, if any.
func (r *PublishingRecorder) Last() (historyv1.Entry, bool) {
	return r.inner.Last()
}

// Len returns the number of recorded entries.
func (r *PublishingRecorder) Len() int {
	return r.inner.Len()
}
