package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moodlog-backend/domain/core/entities"
	pkgerrors "moodlog-backend/pkg/errors"
)

func TestEntryMirror_ItemRoundTrip(t *testing.T) {
	// Arrange
	mirror := NewEntryMirror(nil, "journal-table", "default", nil)
	ts := time.Date(2024, 5, 14, 21, 30, 0, 123456789, time.UTC)
	stress, energy, sleep := 3, 6, 7.5
	entry, err := entities.ReconstructEntry(ts, entities.EntryDraft{
		MoodScore:   8,
		StressLevel: &stress,
		EnergyLevel: &energy,
		SleepHours:  &sleep,
		Notes:       "late run",
		Tags:        []string{"run", "Run"},
	})
	require.NoError(t, err)

	// Act
	item := mirror.toItem(entry)
	rebuilt, err := mirror.fromItem(item)

	// Assert
	require.NoError(t, err)
	assert.True(t, rebuilt.Timestamp().Equal(ts))
	assert.Equal(t, 8, rebuilt.MoodScore())
	assert.Equal(t, 3, rebuilt.StressLevel())
	assert.Equal(t, 6, rebuilt.EnergyLevel())
	assert.Equal(t, 7.5, rebuilt.SleepHours())
	assert.Equal(t, "late run", rebuilt.Notes())
	assert.Equal(t, []string{"run", "Run"}, rebuilt.GetTags())
}

func TestEntryMirror_ItemKeys(t *testing.T) {
	// Arrange
	mirror := NewEntryMirror(nil, "journal-table", "personal", nil)
	entry, err := entities.NewEntry(entities.EntryDraft{MoodScore: 5})
	require.NoError(t, err)

	// Act
	item := mirror.toItem(entry)

	// Assert
	assert.Equal(t, "JOURNAL#personal", item.PK)
	assert.Contains(t, item.SK, "ENTRY#")
	assert.Equal(t, "ENTRY", item.EntityType)
}

func TestSortKeyLayoutOrdersChronologically(t *testing.T) {
	// Arrange: without padding, a whole-second timestamp would sort after a
	// fractional one on the same second
	whole := time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC)
	fractional := time.Date(2024, 5, 14, 10, 0, 0, 500000000, time.UTC)

	// Act
	wholeKey := whole.Format(skTimeLayout)
	fractionalKey := fractional.Format(skTimeLayout)

	// Assert
	assert.Less(t, wholeKey, fractionalKey)
}

type stubMirror struct {
	mock.Mock
}

func (s *stubMirror) Append(ctx context.Context, entry *entities.Entry) error {
	args := s.Called(ctx, entry)
	return args.Error(0)
}

func (s *stubMirror) AppendBatch(ctx context.Context, entries []*entities.Entry) error {
	args := s.Called(ctx, entries)
	return args.Error(0)
}

func (s *stubMirror) FetchAll(ctx context.Context) ([]*entities.Entry, error) {
	args := s.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entry), args.Error(1)
}

func (s *stubMirror) FetchRange(ctx context.Context, from, to time.Time) ([]*entities.Entry, error) {
	args := s.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entry), args.Error(1)
}

func TestBreakerMirror_OpensAfterRepeatedFailures(t *testing.T) {
	// Arrange
	inner := new(stubMirror)
	inner.On("Append", mock.Anything, mock.Anything).Return(errors.New("throttled"))
	config := BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
	breaker := NewBreakerMirror(inner, config, nil)
	entry, err := entities.NewEntry(entities.EntryDraft{MoodScore: 5})
	require.NoError(t, err)

	// Act: two failures trip the circuit, the third call is rejected fast
	err1 := breaker.Append(context.Background(), entry)
	err2 := breaker.Append(context.Background(), entry)
	err3 := breaker.Append(context.Background(), entry)

	// Assert
	assert.Error(t, err1)
	assert.Error(t, err2)
	require.Error(t, err3)
	appErr := pkgerrors.GetAppError(err3)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.ErrorTypeUnavailable, appErr.Type)
	inner.AssertNumberOfCalls(t, "Append", 2)
}

func TestBreakerMirror_PassesThroughSuccess(t *testing.T) {
	// Arrange
	inner := new(stubMirror)
	entry, err := entities.NewEntry(entities.EntryDraft{MoodScore: 5})
	require.NoError(t, err)
	inner.On("FetchAll", mock.Anything).Return([]*entities.Entry{entry}, nil)
	breaker := NewBreakerMirror(inner, DefaultBreakerConfig("test"), nil)

	// Act
	fetched, err := breaker.FetchAll(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Same(t, entry, fetched[0])
}
