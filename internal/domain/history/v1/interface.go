package historyv1

import "context"

// Recorder is the append-only history of book snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=historyv1_mock
type Recorder interface {
	// Append records one snapshot. Entries are immutable once written.
	Append(entry Entry)
	// Entries returns a copy of the recorded history.
	Entries() []Entry
	// Last returns the most recent entry, if any.
	Last() (Entry, bool)
	// Len returns the number of recorded entries.
	Len() int
}

// Sink receives recorded entries for out-of-process consumers (offline
// analysis). Failures are reported but never corrupt the in-memory history.
type Sink interface {
	Publish(ctx context.Context, entry Entry) error
	Close() error
}
