package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
)

const transactionAccountIndex = "account_id-created_at-index"

// ListTransactions retrieves one page of an account's ledger entries, newest first.
func (s *Store) ListTransactions(ctx context.Context, filter storage.TransactionFilter, page storage.Page) ([]models.Transaction, int, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(transactionAccountIndex),
		KeyConditionExpression: aws.String("account_id = :accountID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accountID": &types.AttributeValueMemberS{Value: filter.AccountID},
		},
		ScanIndexForward: aws.Bool(false), // Sort by created_at in descending order
	}

	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query for transactions by account ID: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(items, &transactions); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	matched := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		if filter.Match(&transactions[i]) {
			matched = append(matched, transactions[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return storage.Slice(matched, page), len(matched), nil
}
