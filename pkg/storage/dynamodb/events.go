package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
)

// GetEvent retrieves an event from DynamoDB by its ID.
func (s *Store) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.EventsTableName),
		Key:       idKey(eventID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrEventNotFound)
	}

	var event models.Event
	if err := attributevalue.UnmarshalMap(result.Item, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

// CreateEvent stores a new event.
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.EventsTableName),
		Item:                eventAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event in DynamoDB: %w", err)
	}

	return event, nil
}

// UpdateEvent replaces an existing event.
func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.EventsTableName),
		Item:                eventAV,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("event %s: %w", event.Id, storage.ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to update event in DynamoDB: %w", err)
	}

	return event, nil
}

// DeleteEvent removes an event from the catalog.
func (s *Store) DeleteEvent(ctx context.Context, eventID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.EventsTableName),
		Key:                 idKey(eventID),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("event %s: %w", eventID, storage.ErrEventNotFound)
		}
		return fmt.Errorf("failed to delete event from DynamoDB: %w", err)
	}

	return nil
}

// ListEvents scans the catalog, applies the filter and returns the requested page ordered by date.
func (s *Store) ListEvents(ctx context.Context, filter storage.EventFilter, page storage.Page) ([]models.Event, int, error) {
	items, err := s.scanAll(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.EventsTableName),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan events table: %w", err)
	}

	var events []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &events); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	matched := make([]models.Event, 0, len(events))
	for i := range events {
		if filter.Match(&events[i]) {
			matched = append(matched, events[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	return storage.Slice(matched, page), len(matched), nil
}
