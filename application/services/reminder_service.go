package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/infrastructure/observability"
	pkgerrors "moodlog-backend/pkg/errors"
)

// ReminderKind labels what a scheduled job sends
type ReminderKind string

const (
	ReminderDaily         ReminderKind = "daily"
	ReminderWeeklySummary ReminderKind = "weekly_summary"
	ReminderLowMood       ReminderKind = "low_mood"
	ReminderInactivity    ReminderKind = "inactivity"
)

// timeOfDayLayout is the accepted wall-clock format for schedules
const timeOfDayLayout = "15:04"

// ReminderJob describes one scheduled notification
type ReminderJob struct {
	ID        string       `json:"id"`
	Kind      ReminderKind `json:"kind"`
	Recipient string       `json:"recipient"`
	TimeOfDay string       `json:"time_of_day"`
	Weekday   string       `json:"weekday,omitempty"`
	NextRun   time.Time    `json:"next_run"`
}

type reminderJob struct {
	ReminderJob
	weekday time.Weekday
	hour    int
	minute  int
}

// ReminderService schedules recurring email notifications: a daily logging
// nudge, a weekly summary, and conditional wellness checks. Alert jobs run
// on their schedule but only send when the journal shows the concerning
// pattern, so a healthy week produces no mail.
type ReminderService struct {
	store   ports.EntryStore
	sender  ports.EmailSender
	cfg     *domaincfg.DomainConfig
	metrics *observability.Collector
	logger  *zap.Logger

	mu      sync.Mutex
	jobs    map[string]*reminderJob
	stopCh  chan struct{}
	running bool

	// now is swappable so tests can steer the clock
	now func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(
	store ports.EntryStore,
	sender ports.EmailSender,
	cfg *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *ReminderService {
	if cfg == nil {
		cfg = domaincfg.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		store:   store,
		sender:  sender,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
		jobs:    make(map[string]*reminderJob),
		now:     time.Now,
	}
}

// ScheduleDailyReminder registers a daily logging nudge at the given
// wall-clock time, formatted HH:MM
func (s *ReminderService) ScheduleDailyReminder(timeOfDay, recipient string) (ReminderJob, error) {
	return s.schedule(ReminderDaily, timeOfDay, recipient, nil)
}

// ScheduleWeeklySummary registers a weekly statistics email on the given
// weekday
func (s *ReminderService) ScheduleWeeklySummary(weekday time.Weekday, timeOfDay, recipient string) (ReminderJob, error) {
	if weekday < time.Sunday || weekday > time.Saturday {
		return ReminderJob{}, pkgerrors.NewValidationError(fmt.Sprintf("weekday %d is out of range", weekday))
	}
	return s.schedule(ReminderWeeklySummary, timeOfDay, recipient, &weekday)
}

// ScheduleLowMoodAlert registers a daily wellness check that only sends
// when the recent average mood falls below the configured threshold
func (s *ReminderService) ScheduleLowMoodAlert(timeOfDay, recipient string) (ReminderJob, error) {
	return s.schedule(ReminderLowMood, timeOfDay, recipient, nil)
}

// ScheduleInactivityAlert registers a daily check that only sends when no
// entry has been logged for the configured number of days
func (s *ReminderService) ScheduleInactivityAlert(timeOfDay, recipient string) (ReminderJob, error) {
	return s.schedule(ReminderInactivity, timeOfDay, recipient, nil)
}

func (s *ReminderService) schedule(kind ReminderKind, timeOfDay, recipient string, weekday *time.Weekday) (ReminderJob, error) {
	if strings.TrimSpace(recipient) == "" {
		return ReminderJob{}, pkgerrors.NewValidationError("recipient is required")
	}
	parsed, err := time.Parse(timeOfDayLayout, timeOfDay)
	if err != nil {
		return ReminderJob{}, pkgerrors.NewValidationError(fmt.Sprintf("time of day %q must be formatted HH:MM", timeOfDay))
	}

	job := &reminderJob{
		ReminderJob: ReminderJob{
			ID:        uuid.New().String(),
			Kind:      kind,
			Recipient: recipient,
			TimeOfDay: timeOfDay,
		},
		hour:   parsed.Hour(),
		minute: parsed.Minute(),
	}
	if weekday != nil {
		job.weekday = *weekday
		job.Weekday = weekday.String()
	}
	job.NextRun = s.nextRun(job, s.now())

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	s.logger.Info("Reminder scheduled",
		zap.String("jobID", job.ID),
		zap.String("kind", string(kind)),
		zap.Time("nextRun", job.NextRun),
	)
	return job.ReminderJob, nil
}

// CancelJob removes a scheduled reminder
func (s *ReminderService) CancelJob(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; !ok {
		return pkgerrors.NewUnknownReminderJobError(jobID)
	}
	delete(s.jobs, jobID)
	s.logger.Info("Reminder cancelled", zap.String("jobID", jobID))
	return nil
}

// Jobs returns a snapshot of all scheduled reminders ordered by next run
func (s *ReminderService) Jobs() []ReminderJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]ReminderJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job.ReminderJob)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].NextRun.Equal(jobs[j].NextRun) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].NextRun.Before(jobs[j].NextRun)
	})
	return jobs
}

// Start launches the scheduler loop. It is a no-op when already running.
func (s *ReminderService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	go s.loop(ctx, stopCh)
	s.logger.Info("Reminder scheduler started")
}

// Stop halts the scheduler loop. Scheduled jobs are kept and resume when
// Start is called again.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
	s.logger.Info("Reminder scheduler stopped")
}

func (s *ReminderService) loop(ctx context.Context, stopCh chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runDue(ctx)
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// runDue fires every job whose next run has passed and reschedules it
func (s *ReminderService) runDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []*reminderJob
	for _, job := range s.jobs {
		if !job.NextRun.After(now) {
			due = append(due, job)
			job.NextRun = s.nextRun(job, now.Add(time.Minute))
		}
	}
	s.mu.Unlock()

	for _, job := range due {
		if err := s.deliver(ctx, job); err != nil {
			s.logger.Error("Reminder delivery failed",
				zap.String("jobID", job.ID),
				zap.String("kind", string(job.Kind)),
				zap.Error(err),
			)
		}
	}
}

// nextRun finds the first occurrence of the job's wall-clock time strictly
// after the reference instant
func (s *ReminderService) nextRun(job *reminderJob, after time.Time) time.Time {
	next := time.Date(after.Year(), after.Month(), after.Day(), job.hour, job.minute, 0, 0, after.Location())
	if !next.After(after) {
		next = next.AddDate(0, 0, 1)
	}
	if job.Kind == ReminderWeeklySummary {
		for next.Weekday() != job.weekday {
			next = next.AddDate(0, 0, 1)
		}
	}
	return next
}

func (s *ReminderService) deliver(ctx context.Context, job *reminderJob) error {
	var (
		sent bool
		err  error
	)
	switch job.Kind {
	case ReminderDaily:
		sent, err = s.sendDailyReminder(ctx, job.Recipient)
	case ReminderWeeklySummary:
		sent, err = s.sendWeeklySummary(ctx, job.Recipient)
	case ReminderLowMood:
		sent, err = s.sendLowMoodAlert(ctx, job.Recipient)
	case ReminderInactivity:
		sent, err = s.sendInactivityAlert(ctx, job.Recipient)
	}
	if err != nil {
		return err
	}
	if sent {
		s.metrics.RemindersSent.WithLabelValues(string(job.Kind)).Inc()
	}
	return nil
}

func (s *ReminderService) sendDailyReminder(ctx context.Context, recipient string) (bool, error) {
	body := `Hi there!

This is your daily reminder to track your mood.

Taking a few minutes to reflect on your mental state can help you:
- Identify patterns in your mood
- Track your progress over time
- Better understand what affects your wellbeing

Please visit your mood tracker to log today's entry.

Take care,
Your Mood Tracker Team
`
	err := s.sender.Send(ctx, []string{recipient}, "Daily Mood Tracking Reminder", body)
	return err == nil, err
}

func (s *ReminderService) sendWeeklySummary(ctx context.Context, recipient string) (bool, error) {
	entries, err := s.store.Recent(7)
	if err != nil {
		return false, err
	}

	count := len(entries)
	averageMood := "N/A"
	dominantMood := "N/A"
	if count > 0 {
		var sum float64
		counts := make(map[int]int)
		for _, entry := range entries {
			sum += float64(entry.MoodScore())
			counts[entry.MoodScore()]++
		}
		averageMood = fmt.Sprintf("%.1f", sum/float64(count))

		best, bestCount := 0, 0
		for score, n := range counts {
			if n > bestCount || (n == bestCount && score < best) {
				best, bestCount = score, n
			}
		}
		dominantMood = fmt.Sprintf("%d", best)
	}

	body := fmt.Sprintf(`Hi there!

Here's your weekly mood summary:

This Week's Statistics:
- Total mood entries: %d
- Average mood rating: %s
- Most common mood: %s

You logged %d mood entries this week, with an average mood of %s out of 10.

Keep up the great work tracking your mental health!

Best regards,
Your Mood Tracker Team
`, count, averageMood, dominantMood, count, averageMood)

	err = s.sender.Send(ctx, []string{recipient}, "Your Weekly Mood Summary", body)
	return err == nil, err
}

// sendLowMoodAlert checks the recent window and only sends when the average
// mood sits below the configured threshold
func (s *ReminderService) sendLowMoodAlert(ctx context.Context, recipient string) (bool, error) {
	entries, err := s.store.Recent(s.cfg.LowMoodWindowDays)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}

	var sum float64
	for _, entry := range entries {
		sum += float64(entry.MoodScore())
	}
	average := sum / float64(len(entries))
	if average >= s.cfg.LowMoodThreshold {
		return false, nil
	}

	body := fmt.Sprintf(`Hi,

We noticed your mood has been lower than usual over the past few days.

Average mood: %.1f
Duration: %d days

Remember:
- It's normal to have ups and downs
- Consider reaching out to friends, family, or a mental health professional
- Take care of your basic needs: sleep, nutrition, exercise

You're not alone. Take care of yourself.

Best regards,
Your Mood Tracker Team
`, average, s.cfg.LowMoodWindowDays)

	err = s.sender.Send(ctx, []string{recipient}, "Mood Tracker - Wellness Check", body)
	return err == nil, err
}

// sendInactivityAlert only sends when the journal has entries but none
// recent enough. An empty journal stays quiet; there is no streak to lapse.
func (s *ReminderService) sendInactivityAlert(ctx context.Context, recipient string) (bool, error) {
	entries := s.store.All()
	if len(entries) == 0 {
		return false, nil
	}

	last := entries[0].Timestamp()
	for _, entry := range entries[1:] {
		if entry.Timestamp().After(last) {
			last = entry.Timestamp()
		}
	}

	daysMissing := int(s.now().Sub(last).Hours() / 24)
	if daysMissing < s.cfg.InactivityDays {
		return false, nil
	}

	body := fmt.Sprintf(`Hi,

We noticed you haven't logged your mood in %d days.

Consistent tracking helps you:
- Identify patterns and triggers
- Monitor your mental health progress
- Make informed decisions about your wellbeing

We're here when you're ready to continue your journey.

Best regards,
Your Mood Tracker Team
`, daysMissing)

	err := s.sender.Send(ctx, []string{recipient}, "Mood Tracker - Missing Entries Reminder", body)
	return err == nil, err
}
