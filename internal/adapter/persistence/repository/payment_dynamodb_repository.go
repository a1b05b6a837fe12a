package repository

import (
	"context"
	"sort"
	"strconv"

	"labtracker/internal/domain/entities"
	"labtracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsQuoteIDIndex     = "quote_id-index"
)

type quotePaymentRow struct {
	ID                 string                 `dynamodbav:"id"`
	QuoteID            string                 `dynamodbav:"quote_id"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	Amount             string                 `dynamodbav:"amount"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// QuotePaymentDynamoRepository persists QuotePayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)

type QuotePaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuotePaymentRepository = (*QuotePaymentDynamoRepository)(nil)

func NewQuotePaymentDynamoRepository(ddb DynamoAPI, tableName string) *QuotePaymentDynamoRepository {
	return &QuotePaymentDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultPaymentsTableName)}
}

func (r *QuotePaymentDynamoRepository) Create(ctx context.Context, p entities.QuotePayment) (entities.QuotePayment, error) {
	av, err := attributevalue.MarshalMap(toQuotePaymentRow(p))
	if err != nil {
		return entities.QuotePayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.QuotePayment{}, err
	}
	return p, nil
}

func (r *QuotePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuotePayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuotePayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuotePayment{}, nil
	}

	var row quotePaymentRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.QuotePayment{}, err
	}
	return fromQuotePaymentRow(row), nil
}

// ListByQuoteID returns the quote's payments, oldest first.
func (r *QuotePaymentDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuotePayment, error) {
	rows, err := queryAll[quotePaymentRow](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}

	payments := make([]entities.QuotePayment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, fromQuotePaymentRow(row))
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })
	return payments, nil
}

func toQuotePaymentRow(p entities.QuotePayment) quotePaymentRow {
	return quotePaymentRow{
		ID:                 p.ID,
		QuoteID:            p.QuoteID,
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		Amount:             floatToString(p.Amount),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromQuotePaymentRow(row quotePaymentRow) entities.QuotePayment {
	amount, _ := strconv.ParseFloat(row.Amount, 64)
	return entities.QuotePayment{
		ID:                 row.ID,
		QuoteID:            row.QuoteID,
		Date:               parseTime(row.Date),
		Status:             entities.PaymentStatus(row.Status),
		Amount:             amount,
		ProviderPayload:    row.ProviderPayload,
		ProviderPayloadRaw: []byte(row.ProviderPayloadRaw),
	}
}
