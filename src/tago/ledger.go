package tago

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/segmentio/ksuid"
)

const (
	ledgerSortKey   = "_WIDGET_EXEC_"
	ledgerRetention = 14 * 24 * time.Hour
)

// Outcome is how a dispatched widget action ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "SUCCEEDED"
	OutcomeSkipped   Outcome = "SKIPPED"
	OutcomeFailed    Outcome = "FAILED"
)

// LedgerEntry is the audit record for one dispatched widget action.
type LedgerEntry struct {
	ID        string
	Action    WidgetAction
	Origin    string
	UserID    string
	Outcome   Outcome
	Error     string
	CreatedAt time.Time
}

// Ledger records dispatched widget actions.
type Ledger interface {
	Record(ctx context.Context, entry *LedgerEntry)
}

// NopLedger drops every entry.
type NopLedger struct{}

func (NopLedger) Record(context.Context, *LedgerEntry) {}

// DynamoLedger writes entries into the single application table.
type DynamoLedger struct {
	db        dynamodbiface.DynamoDBAPI
	tableName string
	logger    *log.Logger
}

// NewLedger returns a DynamoDB ledger, or a NopLedger when no table is configured.
func NewLedger(db dynamodbiface.DynamoDBAPI, tableName string, logger *log.Logger) Ledger {
	if tableName == "" || db == nil {
		return NopLedger{}
	}
	return &DynamoLedger{db: db, tableName: tableName, logger: logger}
}

// LedgerFromConfig returns the ledger for the configured table, backed by the shared DynamoDB client.
func LedgerFromConfig(cfg Config, logger *log.Logger) Ledger {
	if cfg.TableName == "" {
		return NopLedger{}
	}
	return NewLedger(DynamoDB(), cfg.TableName, logger)
}

// NewLedgerEntry starts an entry with a fresh id.
func NewLedgerEntry(action WidgetAction, origin string) *LedgerEntry {
	return &LedgerEntry{
		ID:        fmt.Sprintf("wid:%s", ksuid.New().String()),
		Action:    action,
		Origin:    origin,
		CreatedAt: time.Now(),
	}
}

// DynamoItem returns the DynamoDB AttributeValues for the entry
func (e *LedgerEntry) DynamoItem() map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":        FormatString("widget-exec/%s", e.ID),
		"SK":        {S: aws.String(ledgerSortKey)},
		"Action":    {S: aws.String(string(e.Action))},
		"Outcome":   {S: aws.String(string(e.Outcome))},
		"CreatedAt": DynamoTime(e.CreatedAt),
		"ExpiresAt": DynamoTime(e.CreatedAt.Add(ledgerRetention)),
	}
	if e.Origin != "" {
		item["Origin"] = &dynamodb.AttributeValue{S: aws.String(e.Origin)}
	}
	if e.UserID != "" {
		item["UserID"] = &dynamodb.AttributeValue{S: aws.String(e.UserID)}
		item["GSI1PK"] = FormatString("user/%s", e.UserID)
		item["GSI1SK"] = FormatString("widget-exec/%s", e.ID)
	}
	if e.Error != "" {
		item["Error"] = &dynamodb.AttributeValue{S: aws.String(e.Error)}
	}
	return item
}

// Record makes a best effort to store the entry.
func (l *DynamoLedger) Record(ctx context.Context, entry *LedgerEntry) {
	_, err := l.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.tableName),
		Item:      entry.DynamoItem(),
	})
	if err != nil {
		l.logger.Printf("[ERROR] - failed to record widget execution %s: %v", entry.ID, err)
	}
}

// EntriesForUser returns the most recent entries recorded against a user.
func (l *DynamoLedger) EntriesForUser(ctx context.Context, userID string) ([]*LedgerEntry, error) {
	output, err := l.db.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.tableName),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND begins_with(GSI1SK, :sk)"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pk": FormatString("user/%s", userID),
			":sk": {S: aws.String("widget-exec/")},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int64(25),
	})
	if err != nil {
		return []*LedgerEntry{}, err
	}

	entries := make([]*LedgerEntry, 0, len(output.Items))
	for _, item := range output.Items {
		entries = append(entries, &LedgerEntry{
			ID:        strings.TrimPrefix(stringFromDynamo(item["PK"]), "widget-exec/"),
			Action:    WidgetAction(stringFromDynamo(item["Action"])),
			Origin:    stringFromDynamo(item["Origin"]),
			UserID:    stringFromDynamo(item["UserID"]),
			Outcome:   Outcome(stringFromDynamo(item["Outcome"])),
			Error:     stringFromDynamo(item["Error"]),
			CreatedAt: TimeFromDynamo(item["CreatedAt"]),
		})
	}
	return entries, nil
}
