// Package main implements the Lambda handler for journal event notifications.
// EventBridge rules route journal events here, and low mood detections are
// turned into wellness check emails.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/infrastructure/config"
	"moodlog-backend/infrastructure/di"
)

// Global dependencies for Lambda performance optimization
var (
	sender           ports.EmailSender
	logger           *zap.Logger
	defaultRecipient string
)

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependency container: %v", err)
	}

	sender = container.Sender
	logger = container.Logger
	defaultRecipient = cfg.ReminderRecipient

	log.Println("Notifier handler initialized successfully")
}

// WellnessCheckRequest represents the input for a wellness check email
type WellnessCheckRequest struct {
	Recipient   string  `json:"recipient,omitempty"`
	AverageMood float64 `json:"average_mood"`
	WindowDays  int     `json:"window_days"`
}

// lowMoodDetail mirrors the payload of a low mood detection event
type lowMoodDetail struct {
	AverageMood float64 `json:"average_mood"`
	Threshold   float64 `json:"threshold"`
	WindowDays  int     `json:"window_days"`
	SampleCount int     `json:"sample_count"`
}

// HandleWellnessCheck sends a wellness check email for a low mood stretch
func HandleWellnessCheck(ctx context.Context, request WellnessCheckRequest) error {
	recipient := request.Recipient
	if recipient == "" {
		recipient = defaultRecipient
	}
	if recipient == "" {
		logger.Warn("No recipient configured, dropping wellness check",
			zap.Float64("average_mood", request.AverageMood),
		)
		return nil
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
`, request.AverageMood, request.WindowDays)

	if err := sender.Send(ctx, []string{recipient}, "Mood Tracker - Wellness Check", body); err != nil {
		return fmt.Errorf("failed to send wellness check: %w", err)
	}

	logger.Info("Wellness check sent",
		zap.String("recipient", recipient),
		zap.Float64("average_mood", request.AverageMood),
		zap.Int("window_days", request.WindowDays),
	)
	return nil
}

// handler is the main Lambda handler for different invocation types
func handler(ctx context.Context, event json.RawMessage) error {
	// Try to parse as EventBridge event (async invocation)
	var busEvent awsevents.CloudWatchEvent
	if err := json.Unmarshal(event, &busEvent); err == nil && busEvent.DetailType != "" {
		switch busEvent.DetailType {
		case "journal.low_mood_detected":
			var detail lowMoodDetail
			if err := json.Unmarshal(busEvent.Detail, &detail); err != nil {
				return fmt.Errorf("failed to parse low mood event: %w", err)
			}
			return HandleWellnessCheck(ctx, WellnessCheckRequest{
				AverageMood: detail.AverageMood,
				WindowDays:  detail.WindowDays,
			})
		case "journal.entries_imported", "journal.mirror_hydrated", "journal.entry_logged":
			// Routine journal activity needs no notification
			logger.Debug("Ignoring journal event", zap.String("detail_type", busEvent.DetailType))
			return nil
		default:
			logger.Warn("Unknown event type", zap.String("detail_type", busEvent.DetailType))
			return nil
		}
	}

	// Try to parse as direct invocation
	var request WellnessCheckRequest
	if err := json.Unmarshal(event, &request); err == nil && request.AverageMood > 0 {
		return HandleWellnessCheck(ctx, request)
	}

	return fmt.Errorf("unable to parse event")
}

func main() {
	// Check if running in Lambda environment
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		log.Println("Starting notifier Lambda")
		lambda.Start(handler)
		return
	}

	// Local testing mode
	log.Println("Running in local test mode")

	testRequest := WellnessCheckRequest{
		AverageMood: 3.2,
		WindowDays:  3,
	}

	if err := handler(context.Background(), mustMarshal(testRequest)); err != nil {
		log.Fatalf("Test request processing failed: %v", err)
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Failed to marshal test request: %v", err)
	}
	return data
}
