package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/domain/events"
	"moodlog-backend/infrastructure/observability"
	"moodlog-backend/infrastructure/persistence/memory"
	pkgerrors "moodlog-backend/pkg/errors"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

type mockMirror struct {
	mock.Mock
}

func (m *mockMirror) Append(ctx context.Context, entry *entities.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockMirror) AppendBatch(ctx context.Context, entries []*entities.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *mockMirror) FetchAll(ctx context.Context) ([]*entities.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entry), args.Error(1)
}

func (m *mockMirror) FetchRange(ctx context.Context, from, to time.Time) ([]*entities.Entry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entry), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to []string, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func testCollector() *observability.Collector {
	observability.ResetForTesting()
	return observability.NewCollector("test")
}

func entryAt(t *testing.T, ts time.Time, draft entities.EntryDraft) *entities.Entry {
	t.Helper()
	entry, err := entities.ReconstructEntry(ts, draft)
	require.NoError(t, err)
	return entry
}

func newJournalService(store *memory.EntryStore, publisher *mockPublisher) *JournalService {
	return NewJournalService(store, publisher, memory.NewInMemoryCache(), nil, testCollector(), nil)
}

func TestJournalService_LogEntryAppendsAndPublishes(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	publisher := new(mockPublisher)
	service := newJournalService(store, publisher)

	var published []events.DomainEvent
	publisher.On("PublishBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).([]events.DomainEvent)
		}).
		Return(nil)

	// Act
	entry, mirrored, err := service.LogEntry(context.Background(), entities.EntryDraft{
		MoodScore: 8,
		Notes:     "good run this morning",
		Tags:      []string{"exercise"},
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, mirrored)
	assert.Equal(t, 1, store.Len())

	require.Len(t, published, 1)
	logged, ok := published[0].(events.EntryLogged)
	require.True(t, ok)
	assert.Equal(t, 8, logged.MoodScore)
	assert.True(t, logged.Mirrored)
	assert.Empty(t, entry.GetUncommittedEvents())
}

func TestJournalService_LogEntryRejectsOutOfRangeMood(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	publisher := new(mockPublisher)
	service := newJournalService(store, publisher)

	// Act
	entry, _, err := service.LogEntry(context.Background(), entities.EntryDraft{MoodScore: 11})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Nil(t, entry)
	assert.Equal(t, 0, store.Len())
	publisher.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
}

func TestJournalService_LogEntryReportsMirrorFailure(t *testing.T) {
	// Arrange
	mirror := new(mockMirror)
	mirror.On("Append", mock.Anything, mock.Anything).Return(errors.New("throttled"))
	store := memory.NewEntryStore(mirror, nil)
	publisher := new(mockPublisher)
	service := newJournalService(store, publisher)

	var published []events.DomainEvent
	publisher.On("PublishBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).([]events.DomainEvent)
		}).
		Return(nil)

	// Act
	entry, mirrored, err := service.LogEntry(context.Background(), entities.EntryDraft{MoodScore: 6})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.False(t, mirrored)
	assert.Equal(t, 1, store.Len(), "mirror failure must not roll back the append")

	require.Len(t, published, 1)
	logged, ok := published[0].(events.EntryLogged)
	require.True(t, ok)
	assert.False(t, logged.Mirrored)
}

func TestJournalService_LowMoodPublishedOnlyOnCrossing(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	publisher := new(mockPublisher)
	service := newJournalService(store, publisher)

	publisher.On("PublishBatch", mock.Anything, mock.Anything).Return(nil)

	var lowMood events.LowMoodDetected
	publisher.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			event, ok := args.Get(1).(events.LowMoodDetected)
			require.True(t, ok)
			lowMood = event
		}).
		Return(nil)

	// Act: healthy start, then the average sinks below the threshold once
	for _, mood := range []int{8, 1, 1, 1} {
		_, _, err := service.LogEntry(context.Background(), entities.EntryDraft{MoodScore: mood})
		require.NoError(t, err)
	}

	// Assert: averages run 8.0, 4.5, 3.33, 2.75 against a 4.0 threshold,
	// so only the third append crosses
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	assert.InDelta(t, 10.0/3.0, lowMood.AverageMood, 0.001)
	assert.Equal(t, 3, lowMood.SampleCount)
}

func TestJournalService_LogEntryClearsCachedReports(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	publisher := new(mockPublisher)
	publisher.On("PublishBatch", mock.Anything, mock.Anything).Return(nil)
	cache := memory.NewInMemoryCache()
	service := NewJournalService(store, publisher, cache, nil, testCollector(), nil)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "trends:30", "stale", 300))

	// Act
	_, _, err := service.LogEntry(ctx, entities.EntryDraft{MoodScore: 7})

	// Assert
	require.NoError(t, err)
	_, found := cache.Get(ctx, "trends:30")
	assert.False(t, found)
}

func TestJournalService_SearchByTagRequiresTag(t *testing.T) {
	// Arrange
	service := newJournalService(memory.NewEntryStore(nil, nil), new(mockPublisher))

	// Act
	entries, err := service.SearchByTag("")

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Nil(t, entries)
}

func TestJournalService_SearchByTagFoldsCase(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	store.AppendAll(context.Background(), []*entities.Entry{
		entryAt(t, time.Now(), entities.EntryDraft{MoodScore: 5, Tags: []string{"Work"}}),
		entryAt(t, time.Now(), entities.EntryDraft{MoodScore: 6, Tags: []string{"rest"}}),
	})
	service := newJournalService(store, new(mockPublisher))

	// Act
	entries, err := service.SearchByTag("work")

	// Assert
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].MoodScore())
}

func TestJournalService_DefaultWindows(t *testing.T) {
	// Arrange
	service := NewJournalService(memory.NewEntryStore(nil, nil), new(mockPublisher), memory.NewInMemoryCache(), domaincfg.DefaultDomainConfig(), testCollector(), nil)

	// Assert
	assert.Equal(t, 7, service.DefaultRecentWindow())
}
