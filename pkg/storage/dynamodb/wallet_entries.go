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

// ApplyWalletEntry atomically adjusts an account balance by entry.Amount and appends the entry to the ledger.
func (s *Store) ApplyWalletEntry(ctx context.Context, accountID string, entry *models.Transaction) (*models.Account, error) {
	// 1. Make sure the account exists so a failed condition can only mean missing funds.
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	amountAV, err := attributevalue.Marshal(entry.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	values := map[string]types.AttributeValue{
		":amount": amountAV,
		":inc":    &types.AttributeValueMemberN{Value: "1"},
		":now":    nowAV,
	}
	condition := "attribute_exists(id)"
	debit := entry.Amount.IsNegative()
	if debit {
		debitAV, err := attributevalue.Marshal(entry.Amount.Negated())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal debit amount: %w", err)
		}
		values[":debit"] = debitAV
		condition += " AND #wallet.#balance >= :debit"
	}

	// 2. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Update the balance.
				Update: &types.Update{
					TableName:           aws.String(s.AccountsTableName),
					Key:                 idKey(accountID),
					UpdateExpression:    aws.String("SET #wallet.#balance = #wallet.#balance + :amount, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String(condition),
					ExpressionAttributeNames: map[string]string{
						"#wallet":  "wallet",
						"#balance": "balance",
					},
					ExpressionAttributeValues: values,
				},
			},
			{
				// Operation 2: Append the ledger entry.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 3. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if failedConditionIndex(err) == 0 {
			if debit {
				return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrInsufficientFunds)
			}
			return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to execute wallet transaction: %w", err)
	}

	// 4. Get the updated account to return to the caller.
	return s.GetAccount(ctx, accountID)
}
