package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
)

// SettleWager performs the final atomic settlement of a wager.
func (s *Store) SettleWager(ctx context.Context, settlement *models.Settlement) (*models.Wager, error) {
	wager := settlement.Wager

	// 1. Prepare common values.
	amountAV, err := attributevalue.Marshal(settlement.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settled amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(settlement.SettledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for settlement: %w", err)
	}
	entryAV, err := attributevalue.MarshalMap(settlement.Transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	// 2. Construct the TransactWriteItems input.
	items := []types.TransactWriteItem{
		{
			// Operation 1: Move the wager out of pending. Fails if another settlement got there first.
			Update: &types.Update{
				TableName:           aws.String(s.WagersTableName),
				Key:                 idKey(wager.Id),
				UpdateExpression:    aws.String("SET #status = :status, #result = :result, settled_amount = :amount, settled_at = :now, updated_at = :now"),
				ConditionExpression: aws.String("#status = :pending"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
					"#result": "result",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":status":  &types.AttributeValueMemberS{Value: string(settlement.Status)},
					":result":  &types.AttributeValueMemberS{Value: string(settlement.Result)},
					":pending": &types.AttributeValueMemberS{Value: string(models.WagerPending)},
					":amount":  amountAV,
					":now":     nowAV,
				},
			},
		},
		{
			// Operation 2: Append the settlement ledger entry.
			Put: &types.Put{
				TableName:           aws.String(s.TransactionsTableName),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	if settlement.Amount.IsPositive() {
		// Operation 3: Credit the account.
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.AccountsTableName),
				Key:                 idKey(wager.AccountId),
				UpdateExpression:    aws.String("SET #wallet.#balance = #wallet.#balance + :amount, version = version + :inc, updated_at = :now"),
				ConditionExpression: aws.String("attribute_exists(id)"),
				ExpressionAttributeNames: map[string]string{
					"#wallet":  "wallet",
					"#balance": "balance",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount": amountAV,
					":inc":    &types.AttributeValueMemberN{Value: "1"},
					":now":    nowAV,
				},
			},
		})
	}

	// 3. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		switch failedConditionIndex(err) {
		case 0:
			return nil, fmt.Errorf("wager %s: %w", wager.Id, storage.ErrAlreadySettled)
		case 2:
			return nil, fmt.Errorf("account %s: %w", wager.AccountId, storage.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	settled := *wager
	settled.Status = settlement.Status
	settled.Result = settlement.Result
	settled.SettledAmount = settlement.Amount
	settledAt := settlement.SettledAt
	settled.SettledAt = &settledAt
	settled.UpdatedAt = settlement.SettledAt

	return &settled, nil
}
