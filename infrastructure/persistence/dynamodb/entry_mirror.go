// Package dynamodb implements the journal mirror on a single DynamoDB
// table. Entries live under one partition per journal so a full fetch is a
// single ordered query.
package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/pkg/utils"
)

// skTimeLayout pads fractional seconds to nine digits so sort keys order
// lexicographically the same way timestamps order chronologically
const skTimeLayout = "2006-01-02T15:04:05.000000000Z"

// EntryMirror implements the EntryMirror interface using DynamoDB
type EntryMirror struct {
	client    *dynamodb.Client
	tableName string
	journal   string
	logger    *zap.Logger
}

var _ ports.EntryMirror = (*EntryMirror)(nil)

// entryItem represents the DynamoDB item structure for a journal entry
type entryItem struct {
	PK          string   `dynamodbav:"PK"` // JOURNAL#<journal>
	SK          string   `dynamodbav:"SK"` // ENTRY#<timestamp>#<suffix>
	EntityType  string   `dynamodbav:"EntityType"`
	Timestamp   string   `dynamodbav:"Timestamp"` // RFC3339Nano, authoritative
	MoodScore   int      `dynamodbav:"MoodScore"`
	StressLevel int      `dynamodbav:"StressLevel"`
	EnergyLevel int      `dynamodbav:"EnergyLevel"`
	SleepHours  float64  `dynamodbav:"SleepHours"`
	Notes       string   `dynamodbav:"Notes"`
	Tags        []string `dynamodbav:"Tags,omitempty"`
}

// NewEntryMirror creates a mirror scoped to one journal partition
func NewEntryMirror(client *dynamodb.Client, tableName, journal string, logger *zap.Logger) *EntryMirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryMirror{
		client:    client,
		tableName: tableName,
		journal:   journal,
		logger:    logger,
	}
}

// Append writes a single entry to the mirror
func (m *EntryMirror) Append(ctx context.Context, entry *entities.Entry) error {
	av, err := attributevalue.MarshalMap(m.toItem(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(m.tableName),
		Item:      av,
	}

	if _, err := m.client.PutItem(ctx, input); err != nil {
		m.logger.Error("Failed to mirror entry",
			zap.Time("timestamp", entry.Timestamp()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to mirror entry: %w", err)
	}

	m.logger.Debug("Entry mirrored",
		zap.Time("timestamp", entry.Timestamp()),
		zap.String("journal", m.journal),
	)
	return nil
}

// AppendBatch writes multiple entries to the mirror in batches of 25,
// the BatchWriteItem limit
func (m *EntryMirror) AppendBatch(ctx context.Context, entries []*entities.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	writeRequests := make([]types.WriteRequest, 0, len(entries))
	for _, entry := range entries {
		av, err := attributevalue.MarshalMap(m.toItem(entry))
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: av},
		})
	}

	for i := 0; i < len(writeRequests); i += 25 {
		end := i + 25
		if end > len(writeRequests) {
			end = len(writeRequests)
		}

		batch := writeRequests[i:end]
		input := &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				m.tableName: batch,
			},
		}

		result, err := m.client.BatchWriteItem(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to write entry batch: %w", err)
		}

		// Retry unprocessed items once before giving up
		if len(result.UnprocessedItems) > 0 {
			retry := &dynamodb.BatchWriteItemInput{RequestItems: result.UnprocessedItems}
			retryResult, err := m.client.BatchWriteItem(ctx, retry)
			if err != nil {
				return fmt.Errorf("failed to retry entry batch: %w", err)
			}
			if len(retryResult.UnprocessedItems) > 0 {
				return fmt.Errorf("failed to write %d entries", len(retryResult.UnprocessedItems[m.tableName]))
			}
		}
	}

	m.logger.Info("Entry batch mirrored",
		zap.Int("count", len(entries)),
		zap.String("journal", m.journal),
	)
	return nil
}

// FetchAll reads the whole mirrored journal in timestamp order
func (m *EntryMirror) FetchAll(ctx context.Context) ([]*entities.Entry, error) {
	keyCondition := expression.Key("PK").Equal(expression.Value(m.partitionKey())).
		And(expression.Key("SK").BeginsWith("ENTRY#"))
	return m.query(ctx, keyCondition)
}

// FetchRange reads mirrored entries with timestamps in [from, to)
func (m *EntryMirror) FetchRange(ctx context.Context, from, to time.Time) ([]*entities.Entry, error) {
	lower := "ENTRY#" + from.UTC().Format(skTimeLayout)
	upper := "ENTRY#" + to.UTC().Format(skTimeLayout)
	keyCondition := expression.Key("PK").Equal(expression.Value(m.partitionKey())).
		And(expression.Key("SK").Between(expression.Value(lower), expression.Value(upper)))
	return m.query(ctx, keyCondition)
}

func (m *EntryMirror) query(ctx context.Context, keyCondition expression.KeyConditionBuilder) ([]*entities.Entry, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(m.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
	}

	var fetched []*entities.Entry
	for {
		result, err := m.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query entries: %w", err)
		}

		for _, raw := range result.Items {
			var item entryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal entry item: %w", err)
			}

			entry, err := m.fromItem(item)
			if err != nil {
				return nil, fmt.Errorf("failed to rebuild entry: %w", err)
			}
			fetched = append(fetched, entry)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return fetched, nil
}

func (m *EntryMirror) partitionKey() string {
	return fmt.Sprintf("JOURNAL#%s", m.journal)
}

func (m *EntryMirror) toItem(entry *entities.Entry) entryItem {
	ts := entry.Timestamp()
	return entryItem{
		PK: m.partitionKey(),
		// A random suffix keeps entries with identical timestamps distinct
		SK:          fmt.Sprintf("ENTRY#%s#%s", ts.UTC().Format(skTimeLayout), uuid.NewString()),
		EntityType:  "ENTRY",
		Timestamp:   utils.FormatTimestamp(ts),
		MoodScore:   entry.MoodScore(),
		StressLevel: entry.StressLevel(),
		EnergyLevel: entry.EnergyLevel(),
		SleepHours:  entry.SleepHours(),
		Notes:       entry.Notes(),
		Tags:        entry.GetTags(),
	}
}

func (m *EntryMirror) fromItem(item entryItem) (*entities.Entry, error) {
	ts, err := utils.ParseTimestamp(item.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %w", item.Timestamp, err)
	}

	return entities.ReconstructEntry(ts, entities.EntryDraft{
		MoodScore:   item.MoodScore,
		StressLevel: &item.StressLevel,
		EnergyLevel: &item.EnergyLevel,
		SleepHours:  &item.SleepHours,
		Notes:       item.Notes,
		Tags:        item.Tags,
	})
}
