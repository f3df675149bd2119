package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
)

const (
	wagerAccountIndex = "account_id-created_at-index"
	wagerEventIndex   = "event_id-created_at-index"
	wagerStatusIndex  = "status-created_at-index"
)

// Position of each item in the placement transaction, used to map cancellation reasons.
const (
	placeEventCheck = iota
	placeAccountDebit
	placeWagerPut
	placeLedgerPut
)

// PlaceWager atomically debits the stake, creates the wager and appends the bet_placed ledger entry.
func (s *Store) PlaceWager(ctx context.Context, wager *models.Wager, entry *models.Transaction) (*models.Account, error) {
	wagerAV, err := attributevalue.MarshalMap(wager)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wager: %w", err)
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}
	stakeAV, err := attributevalue.Marshal(wager.Stake)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stake: %w", err)
	}
	nowAV, err := attributevalue.Marshal(wager.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			placeEventCheck: {
				// The event must still accept bets when the debit commits.
				ConditionCheck: &types.ConditionCheck{
					TableName:           aws.String(s.EventsTableName),
					Key:                 idKey(wager.EventId),
					ConditionExpression: aws.String("#status IN (:upcoming, :live)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":upcoming": &types.AttributeValueMemberS{Value: string(models.EventUpcoming)},
						":live":     &types.AttributeValueMemberS{Value: string(models.EventLive)},
					},
				},
			},
			placeAccountDebit: {
				Update: &types.Update{
					TableName:           aws.String(s.AccountsTableName),
					Key:                 idKey(wager.AccountId),
					UpdateExpression:    aws.String("SET #wallet.#balance = #wallet.#balance - :stake, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("#wallet.#balance >= :stake"),
					ExpressionAttributeNames: map[string]string{
						"#wallet":  "wallet",
						"#balance": "balance",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":stake": stakeAV,
						":inc":   &types.AttributeValueMemberN{Value: "1"},
						":now":   nowAV,
					},
				},
			},
			placeWagerPut: {
				Put: &types.Put{
					TableName:           aws.String(s.WagersTableName),
					Item:                wagerAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			placeLedgerPut: {
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		switch failedConditionIndex(err) {
		case placeEventCheck:
			return nil, fmt.Errorf("event %s: %w", wager.EventId, storage.ErrEventClosed)
		case placeAccountDebit:
			return nil, fmt.Errorf("account %s: %w", wager.AccountId, storage.ErrInsufficientFunds)
		}
		return nil, fmt.Errorf("failed to execute placement transaction: %w", err)
	}

	return s.GetAccount(ctx, wager.AccountId)
}

// GetWager retrieves a wager from DynamoDB by its ID.
func (s *Store) GetWager(ctx context.Context, wagerID string) (*models.Wager, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.WagersTableName),
		Key:            idKey(wagerID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wager from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("wager %s: %w", wagerID, storage.ErrWagerNotFound)
	}

	var wager models.Wager
	if err := attributevalue.UnmarshalMap(result.Item, &wager); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wager: %w", err)
	}

	return &wager, nil
}

// ListWagers picks the narrowest index for the filter, then pages the newest-first matches.
func (s *Store) ListWagers(ctx context.Context, filter storage.WagerFilter, page storage.Page) ([]models.Wager, int, error) {
	var (
		items []map[string]types.AttributeValue
		err   error
	)

	switch {
	case filter.AccountID != "":
		items, err = s.queryAll(ctx, wagerIndexQuery(s.WagersTableName, wagerAccountIndex, "account_id", filter.AccountID))
	case filter.EventID != "":
		items, err = s.queryAll(ctx, wagerIndexQuery(s.WagersTableName, wagerEventIndex, "event_id", filter.EventID))
	case filter.Status != "":
		items, err = s.queryAll(ctx, wagerIndexQuery(s.WagersTableName, wagerStatusIndex, "status", string(filter.Status)))
	default:
		items, err = s.scanAll(ctx, &dynamodb.ScanInput{TableName: aws.String(s.WagersTableName)})
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query for wagers: %w", err)
	}

	var wagers []models.Wager
	if err := attributevalue.UnmarshalListOfMaps(items, &wagers); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal wagers: %w", err)
	}

	matched := make([]models.Wager, 0, len(wagers))
	for i := range wagers {
		if filter.Match(&wagers[i]) {
			matched = append(matched, wagers[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return storage.Slice(matched, page), len(matched), nil
}

// ListPendingWagersByEvent retrieves every pending wager placed on an event.
func (s *Store) ListPendingWagersByEvent(ctx context.Context, eventID string) ([]models.Wager, error) {
	input := wagerIndexQuery(s.WagersTableName, wagerEventIndex, "event_id", eventID)
	input.FilterExpression = aws.String("#status = :pending")
	input.ExpressionAttributeNames["#status"] = "status"
	input.ExpressionAttributeValues[":pending"] = &types.AttributeValueMemberS{Value: string(models.WagerPending)}
	input.ScanIndexForward = aws.Bool(true)

	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for pending wagers by event: %w", err)
	}

	var wagers []models.Wager
	if err := attributevalue.UnmarshalListOfMaps(items, &wagers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wagers: %w", err)
	}

	return wagers, nil
}

// GetStalePendingWagers retrieves wagers that have been pending for longer than maxAge.
func (s *Store) GetStalePendingWagers(ctx context.Context, maxAge time.Duration) ([]models.Wager, error) {
	cutoffTime := time.Now().UTC().Add(-maxAge)
	cutoffTimeStr, err := cutoffTime.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.WagersTableName),
		IndexName:              aws.String(wagerStatusIndex),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.WagerPending)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffTimeStr)},
		},
	}

	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stale wagers: %w", err)
	}

	var wagers []models.Wager
	if err := attributevalue.UnmarshalListOfMaps(items, &wagers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stale wagers: %w", err)
	}

	return wagers, nil
}

func wagerIndexQuery(table, index, attr, value string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(false), // Newest first
	}
}
