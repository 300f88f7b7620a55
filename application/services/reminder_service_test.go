package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moodlog-backend/domain/core/entities"
	"moodlog-backend/infrastructure/persistence/memory"
	pkgerrors "moodlog-backend/pkg/errors"
)

const testRecipient = "me@example.com"

func newReminderService(store *memory.EntryStore, sender *mockSender) *ReminderService {
	return NewReminderService(store, sender, nil, testCollector(), nil)
}

// fixClock pins the service clock to the given instant
func fixClock(service *ReminderService, at time.Time) {
	service.now = func() time.Time { return at }
}

func TestReminderService_ScheduleDailyReminderComputesNextRun(t *testing.T) {
	// Arrange: a Friday morning
	service := newReminderService(memory.NewEntryStore(nil, nil), new(mockSender))
	fixClock(service, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	// Act
	evening, err := service.ScheduleDailyReminder("20:00", testRecipient)
	require.NoError(t, err)
	morning, err := service.ScheduleDailyReminder("09:00", testRecipient)
	require.NoError(t, err)

	// Assert: a time still ahead runs today, one already passed runs tomorrow
	assert.Equal(t, time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC), evening.NextRun)
	assert.Equal(t, time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC), morning.NextRun)
	assert.Equal(t, ReminderDaily, evening.Kind)
	assert.NotEmpty(t, evening.ID)
}

func TestReminderService_ScheduleWeeklySummaryPicksWeekday(t *testing.T) {
	// Arrange: a Friday
	service := newReminderService(memory.NewEntryStore(nil, nil), new(mockSender))
	fixClock(service, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	// Act
	job, err := service.ScheduleWeeklySummary(time.Monday, "08:00", testRecipient)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC), job.NextRun)
	assert.Equal(t, "Monday", job.Weekday)
}

func TestReminderService_ScheduleRejectsBadInput(t *testing.T) {
	// Arrange
	service := newReminderService(memory.NewEntryStore(nil, nil), new(mockSender))

	// Act
	_, badTime := service.ScheduleDailyReminder("25:99", testRecipient)
	_, noRecipient := service.ScheduleDailyReminder("20:00", "  ")

	// Assert
	assert.True(t, pkgerrors.IsValidation(badTime))
	assert.True(t, pkgerrors.IsValidation(noRecipient))
	assert.Empty(t, service.Jobs())
}

func TestReminderService_CancelJob(t *testing.T) {
	// Arrange
	service := newReminderService(memory.NewEntryStore(nil, nil), new(mockSender))
	job, err := service.ScheduleDailyReminder("20:00", testRecipient)
	require.NoError(t, err)

	// Act
	err = service.CancelJob(job.ID)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, service.Jobs())

	err = service.CancelJob("no-such-job")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestReminderService_JobsOrderedByNextRun(t *testing.T) {
	// Arrange
	service := newReminderService(memory.NewEntryStore(nil, nil), new(mockSender))
	fixClock(service, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	late, err := service.ScheduleDailyReminder("22:00", testRecipient)
	require.NoError(t, err)
	early, err := service.ScheduleDailyReminder("11:00", testRecipient)
	require.NoError(t, err)

	// Act
	jobs := service.Jobs()

	// Assert
	require.Len(t, jobs, 2)
	assert.Equal(t, early.ID, jobs[0].ID)
	assert.Equal(t, late.ID, jobs[1].ID)
}

func TestReminderService_RunDueSendsDailyReminder(t *testing.T) {
	// Arrange
	sender := new(mockSender)
	sender.On("Send", mock.Anything, []string{testRecipient}, "Daily Mood Tracking Reminder", mock.Anything).Return(nil)
	service := newReminderService(memory.NewEntryStore(nil, nil), sender)

	fixClock(service, time.Date(2024, 3, 15, 9, 59, 0, 0, time.UTC))
	_, err := service.ScheduleDailyReminder("10:00", testRecipient)
	require.NoError(t, err)

	// Act
	fixClock(service, time.Date(2024, 3, 15, 10, 0, 30, 0, time.UTC))
	service.runDue(context.Background())

	// Assert: the reminder went out and the job rolled to tomorrow
	sender.AssertExpectations(t)
	jobs := service.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), jobs[0].NextRun)
}

func TestReminderService_RunDueSkipsFutureJobs(t *testing.T) {
	// Arrange
	sender := new(mockSender)
	service := newReminderService(memory.NewEntryStore(nil, nil), sender)

	fixClock(service, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	_, err := service.ScheduleDailyReminder("10:00", testRecipient)
	require.NoError(t, err)

	// Act
	service.runDue(context.Background())

	// Assert
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_WeeklySummaryReportsStatistics(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	seedMoods(t, store, 6, 6, 8)

	sender := new(mockSender)
	sender.On("Send", mock.Anything, []string{testRecipient}, "Your Weekly Mood Summary",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Total mood entries: 3") &&
				strings.Contains(body, "Average mood rating: 6.7") &&
				strings.Contains(body, "Most common mood: 6")
		})).Return(nil)

	service := newReminderService(store, sender)
	fixClock(service, time.Date(2024, 3, 15, 7, 59, 0, 0, time.UTC))
	_, err := service.ScheduleWeeklySummary(time.Friday, "08:00", testRecipient)
	require.NoError(t, err)

	// Act
	fixClock(service, time.Date(2024, 3, 15, 8, 0, 30, 0, time.UTC))
	service.runDue(context.Background())

	// Assert
	sender.AssertExpectations(t)
}

func TestReminderService_LowMoodAlertOnlyWhenBelowThreshold(t *testing.T) {
	// Arrange: a healthy journal first
	store := memory.NewEntryStore(nil, nil)
	seedMoods(t, store, 8, 9)

	sender := new(mockSender)
	service := newReminderService(store, sender)
	fixClock(service, time.Date(2024, 3, 15, 19, 59, 0, 0, time.UTC))
	_, err := service.ScheduleLowMoodAlert("20:00", testRecipient)
	require.NoError(t, err)

	// Act
	fixClock(service, time.Date(2024, 3, 15, 20, 0, 30, 0, time.UTC))
	service.runDue(context.Background())

	// Assert: nothing sent while the average sits above the threshold
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Arrange: the mood collapses
	seedMoods(t, store, 1, 1, 1, 1)
	sender.On("Send", mock.Anything, []string{testRecipient}, "Mood Tracker - Wellness Check",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "lower than usual")
		})).Return(nil)

	// Act
	fixClock(service, time.Date(2024, 3, 16, 20, 0, 30, 0, time.UTC))
	service.runDue(context.Background())

	// Assert
	sender.AssertExpectations(t)
}

func TestReminderService_InactivityAlertAfterQuietDays(t *testing.T) {
	// Arrange: the last entry is five days old
	store := memory.NewEntryStore(nil, nil)
	lastEntry := time.Now().Add(-5 * 24 * time.Hour)
	store.AppendAll(context.Background(), []*entities.Entry{
		entryAt(t, lastEntry, entities.EntryDraft{MoodScore: 6}),
	})

	sender := new(mockSender)
	sender.On("Send", mock.Anything, []string{testRecipient}, "Mood Tracker - Missing Entries Reminder",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "5 days")
		})).Return(nil)

	service := newReminderService(store, sender)
	now := time.Now()
	fixClock(service, now.Add(-time.Minute))
	_, err := service.ScheduleInactivityAlert(now.Format("15:04"), testRecipient)
	require.NoError(t, err)

	// Act
	fixClock(service, now.Add(time.Minute))
	service.runDue(context.Background())

	// Assert
	sender.AssertExpectations(t)
}

func TestReminderService_InactivityAlertStaysQuietForEmptyJournal(t *testing.T) {
	// Arrange
	sender := new(mockSender)
	service := newReminderService(memory.NewEntryStore(nil, nil), sender)

	fixClock(service, time.Date(2024, 3, 15, 19, 59, 0, 0, time.UTC))
	_, err := service.ScheduleInactivityAlert("20:00", testRecipient)
	require.NoError(t, err)

	// Act
	fixClock(service, time.Date(2024, 3, 15, 20, 0, 30, 0, time.UTC))
	service.runDue(context.Background())

	// Assert
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
