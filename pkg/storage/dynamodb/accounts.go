package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
)

// CreateAccount creates a new account record in DynamoDB.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Item:                accountAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"), // Prevent overwriting existing accounts.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("account %s: %w", account.Id, storage.ErrAccountExists)
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// DeleteAccount deletes an account record from DynamoDB.
func (s *Store) DeleteAccount(ctx context.Context, accountID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Key:                 idKey(accountID),
		ConditionExpression: aws.String("attribute_exists(id)"), // Ensure the account exists before deleting.
	}

	_, err := s.Client.DeleteItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
		}
		return fmt.Errorf("failed to delete account from DynamoDB: %w", err)
	}

	return nil
}

// GetAccount retrieves an account from DynamoDB by its ID.
func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.AccountsTableName),
		Key:            idKey(accountID),
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// ListAccounts retrieves all accounts from DynamoDB, newest first.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	items, err := s.scanAll(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.AccountsTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts table: %w", err)
	}

	var accounts []models.Account
	if err := attributevalue.UnmarshalListOfMaps(items, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})

	return accounts, nil
}

// UpdateAccount sets the operator-editable fields of an account in place. The wallet
// and its version are not touched.
func (s *Store) UpdateAccount(ctx context.Context, accountID string, update storage.AccountUpdate) (*models.Account, error) {
	nowAV, err := attributevalue.Marshal(update.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	sets := []string{"updated_at = :now"}
	names := map[string]string{}
	values := map[string]types.AttributeValue{":now": nowAV}
	if update.Role != nil {
		// role is a reserved word.
		sets = append(sets, "#role = :role")
		names["#role"] = "role"
		values[":role"] = &types.AttributeValueMemberS{Value: string(*update.Role)}
	}
	if update.IsVerified != nil {
		sets = append(sets, "is_verified = :verified")
		values[":verified"] = &types.AttributeValueMemberBOOL{Value: *update.IsVerified}
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.AccountsTableName),
		Key:                       idKey(accountID),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to update account in DynamoDB: %w", err)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Attributes, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}
