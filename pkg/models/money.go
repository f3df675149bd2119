package models

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It is stored as a DynamoDB number so that
// update expressions like "balance - :amount" operate on it directly.
type Money struct {
	decimal.Decimal
}

// ZeroMoney is the zero amount.
var ZeroMoney = Money{decimal.Zero}

// NewMoney wraps a decimal.
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// MoneyFromInt returns a whole amount.
func MoneyFromInt(v int64) Money {
	return Money{decimal.NewFromInt(v)}
}

// ParseMoney parses a decimal string such as "12.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d}, nil
}

// Plus returns m + o.
func (m Money) Plus(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Minus returns m - o.
func (m Money) Minus(o Money) Money {
	return Money{m.Decimal.Sub(o.Decimal)}
}

// Negated returns -m.
func (m Money) Negated() Money {
	return Money{m.Decimal.Neg()}
}

// MarshalDynamoDBAttributeValue implements attributevalue.Marshaler.
func (m Money) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: m.Decimal.String()}, nil
}

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler.
func (m *Money) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw string
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
	case *types.AttributeValueMemberNULL:
		m.Decimal = decimal.Zero
		return nil
	default:
		return fmt.Errorf("unsupported attribute type %T for money", av)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("failed to parse money attribute %q: %w", raw, err)
	}
	m.Decimal = d
	return nil
}
