package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAccount(id string, balance int64) *models.Account {
	return &models.Account{
		Id:        id,
		Username:  id,
		Role:      models.RoleUser,
		Wallet:    models.Wallet{Balance: models.MoneyFromInt(balance), Currency: models.DefaultCurrency},
		Version:   1,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateAccount(t *testing.T) {
	account := testAccount("user-1", 0)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			return *in.TableName == "accounts" && *in.ConditionExpression == "attribute_not_exists(id)"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		result, err := store.CreateAccount(context.Background(), account)

		assert.NoError(t, err)
		assert.Equal(t, account, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CreateAccount(context.Background(), account)

		assert.ErrorIs(t, err, storage.ErrAccountExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed"))

		_, err := store.CreateAccount(context.Background(), account)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create account in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestGetAccount(t *testing.T) {
	account := testAccount("user-1", 500)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, err := attributevalue.MarshalMap(account)
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		result, err := store.GetAccount(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, account.Id, result.Id)
		assert.True(t, account.Wallet.Balance.Equal(result.Wallet.Balance.Decimal))
		assert.Equal(t, models.DefaultCurrency, result.Wallet.Currency)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetAccount(context.Background(), "user-1")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		_, err := store.GetAccount(context.Background(), "user-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get account from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(&dynamodb.DeleteItemOutput{}, nil)

		assert.NoError(t, store.DeleteAccount(context.Background(), "user-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.DeleteAccount(context.Background(), "user-1")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestListAccounts(t *testing.T) {
	older := testAccount("user-1", 10)
	newer := testAccount("user-2", 20)
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	t.Run("Success Across Pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		olderAV, err := attributevalue.MarshalMap(older)
		require.NoError(t, err)
		newerAV, err := attributevalue.MarshalMap(newer)
		require.NoError(t, err)

		mockClient.On("Scan", mock.Anything, mock.Anything).Once().Return(&dynamodb.ScanOutput{
			Items:            []map[string]types.AttributeValue{olderAV},
			LastEvaluatedKey: idKey("user-1"),
		}, nil)
		mockClient.On("Scan", mock.Anything, mock.Anything).Once().Return(&dynamodb.ScanOutput{
			Items: []map[string]types.AttributeValue{newerAV},
		}, nil)

		result, err := store.ListAccounts(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "user-2", result[0].Id)
		assert.Equal(t, "user-1", result[1].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed"))

		_, err := store.ListAccounts(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan accounts table")
		mockClient.AssertExpectations(t)
	})
}

func TestUpdateAccount(t *testing.T) {
	admin := models.RoleAdmin
	verified := true
	update := storage.AccountUpdate{Role: &admin, IsVerified: &verified, UpdatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		updated := testAccount("user-1", 75)
		updated.Role = models.RoleAdmin
		updated.IsVerified = true
		updatedAV, err := attributevalue.MarshalMap(updated)
		require.NoError(t, err)

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.TableName == "accounts" &&
				*in.UpdateExpression == "SET updated_at = :now, #role = :role, is_verified = :verified" &&
				*in.ConditionExpression == "attribute_exists(id)" &&
				in.ExpressionAttributeNames["#role"] == "role"
		})).Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil)

		result, err := store.UpdateAccount(context.Background(), "user-1", update)

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, result.Role)
		assert.True(t, result.IsVerified)
		assert.Equal(t, "75", result.Wallet.Balance.String())
		mockClient.AssertExpectations(t)
	})

	t.Run("Verification Only", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, err := attributevalue.MarshalMap(testAccount("user-1", 0))
		require.NoError(t, err)
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return *in.UpdateExpression == "SET updated_at = :now, is_verified = :verified" && in.ExpressionAttributeNames == nil
		})).Return(&dynamodb.UpdateItemOutput{Attributes: accountAV}, nil)

		_, err = store.UpdateAccount(context.Background(), "user-1", storage.AccountUpdate{IsVerified: &verified})

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.UpdateAccount(context.Background(), "ghost", update)

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertExpectations(t)
	})
}
