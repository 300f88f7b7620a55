// Package memory implements the journal's primary store: an append-only
// in-process sequence guarded by a single RWMutex. An optional mirror
// receives copies of appended entries; mirror outcomes never change what
// the store holds.
package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/domain/core/entities"
	pkgerrors "moodlog-backend/pkg/errors"
)

var _ ports.EntryStore = (*EntryStore)(nil)

// EntryStore holds the journal in insertion order
type EntryStore struct {
	mu      sync.RWMutex
	entries []*entities.Entry

	mirror ports.EntryMirror
	logger *zap.Logger
}

// NewEntryStore creates a store. The mirror may be nil, in which case
// appends are purely in-memory.
func NewEntryStore(mirror ports.EntryMirror, logger *zap.Logger) *EntryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryStore{
		mirror: mirror,
		logger: logger,
	}
}

// Append adds an entry to the journal and forwards it to the mirror when one
// is configured. The in-memory append always succeeds; a mirror failure is
// logged and reported as false, and the entry is never rolled back. Without
// a mirror Append reports true.
func (s *EntryStore) Append(ctx context.Context, entry *entities.Entry) bool {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	if s.mirror == nil {
		return true
	}

	// The mirror call runs outside the lock so slow external IO cannot
	// block readers
	if err := s.mirror.Append(ctx, entry); err != nil {
		s.logger.Warn("mirror append failed",
			zap.Time("timestamp", entry.Timestamp()),
			zap.Error(err))
		return false
	}
	return true
}

// AppendAll adds a batch of entries in one critical section, so readers see
// either none or all of the batch. The mirror is not notified.
func (s *EntryStore) AppendAll(ctx context.Context, entries []*entities.Entry) {
	if len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

// ReplaceAll discards the journal and installs the given entries
func (s *EntryStore) ReplaceAll(ctx context.Context, entries []*entities.Entry) {
	replacement := make([]*entities.Entry, len(entries))
	copy(replacement, entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = replacement
}

// Recent returns entries whose timestamp falls within the last N days,
// in insertion order. A zero window matches nothing in practice since
// timestamps are assigned at creation.
func (s *EntryStore) Recent(days int) ([]*entities.Entry, error) {
	if days < 0 {
		return nil, pkgerrors.NewWindowError(days)
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*entities.Entry, 0)
	for _, entry := range s.entries {
		if !entry.Timestamp().Before(cutoff) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// ByTag returns entries carrying the tag, compared case-insensitively,
// in insertion order
func (s *EntryStore) ByTag(tag string) []*entities.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*entities.Entry, 0)
	for _, entry := range s.entries {
		if entry.HasTag(tag) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// All returns a snapshot of the journal in insertion order. The returned
// slice is the caller's to keep; entries themselves are immutable.
func (s *EntryStore) All() []*entities.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*entities.Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// Len returns the number of entries in the journal
func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
