package ports

import (
	"context"
	"time"

	"moodlog-backend/domain/core/entities"
	"moodlog-backend/domain/events"
)

// EntryStore defines the interface for the in-memory journal.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation.
// The journal is append-only: entries are never updated or removed, only
// replaced wholesale when rebuilding from a mirror.
type EntryStore interface {
	// Append adds an entry and forwards it to the mirror when one is
	// configured. It reports whether the mirror accepted the entry; the
	// in-memory append itself always succeeds and is never rolled back.
	Append(ctx context.Context, entry *entities.Entry) bool

	// AppendAll adds a batch of entries without notifying the mirror
	AppendAll(ctx context.Context, entries []*entities.Entry)

	// ReplaceAll discards the journal and installs the given entries
	ReplaceAll(ctx context.Context, entries []*entities.Entry)

	// Recent returns entries from the last N days in insertion order.
	// Negative windows are rejected.
	Recent(days int) ([]*entities.Entry, error)

	// ByTag returns entries carrying the tag, compared case-insensitively
	ByTag(tag string) []*entities.Entry

	// All returns the full journal in insertion order
	All() []*entities.Entry

	// Len returns the number of entries
	Len() int
}

// EntryMirror defines the interface for an external copy of the journal.
// Mirror failures are reported to callers but never affect the in-memory
// journal.
type EntryMirror interface {
	// Append writes a single entry to the mirror
	Append(ctx context.Context, entry *entities.Entry) error

	// AppendBatch writes multiple entries to the mirror
	AppendBatch(ctx context.Context, entries []*entities.Entry) error

	// FetchAll reads the whole mirrored journal in timestamp order
	FetchAll(ctx context.Context) ([]*entities.Entry, error)

	// FetchRange reads mirrored entries with timestamps in [from, to)
	FetchRange(ctx context.Context, from, to time.Time) ([]*entities.Entry, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EmailSender defines the interface for outbound notification mail
type EmailSender interface {
	// Send delivers a plain-text message to the given recipients
	Send(ctx context.Context, to []string, subject, body string) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
