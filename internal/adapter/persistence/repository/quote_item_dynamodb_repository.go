package repository

import (
	"context"

	"labtracker/internal/domain/entities"
	"labtracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuoteItemsTableName = "quote_items"
	quoteItemsQuoteIDIndex     = "quote_id-index"
)

type quoteItemRow struct {
	ID                      string  `dynamodbav:"id"`
	QuoteID                 string  `dynamodbav:"quote_id"`
	ProductID               string  `dynamodbav:"product_id"`
	AdditionalSamples       *int    `dynamodbav:"additional_samples,omitempty"`
	AdditionalReportHeaders *int    `dynamodbav:"additional_report_headers,omitempty"`
	Price                   *string `dynamodbav:"price,omitempty"`
	AdditionalSamplesPrice  *string `dynamodbav:"additional_samples_price,omitempty"`
	AdditionalHeadersPrice  *string `dynamodbav:"additional_headers_price,omitempty"`
}

// QuoteItemDynamoRepository persists QuoteItem rows.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
//
// Price overrides are stored as entered; an absent attribute means no override.

type QuoteItemDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteItemRepository = (*QuoteItemDynamoRepository)(nil)

func NewQuoteItemDynamoRepository(ddb DynamoAPI, tableName string) *QuoteItemDynamoRepository {
	return &QuoteItemDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultQuoteItemsTableName)}
}

func (r *QuoteItemDynamoRepository) CreateBatch(ctx context.Context, items []entities.QuoteItem) error {
	reqs := make([]types.WriteRequest, 0, len(items))
	for _, it := range items {
		av, err := attributevalue.MarshalMap(quoteItemRow(it))
		if err != nil {
			return err
		}
		reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}
	return batchWrite(ctx, r.ddb, r.tableName, reqs)
}

func (r *QuoteItemDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteItem, error) {
	rows, err := queryAll[quoteItemRow](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quoteItemsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}
	items := make([]entities.QuoteItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.QuoteItem(row))
	}
	return items, nil
}

// Update replaces an existing item. A missing row yields a zero item; callers
// report it as not found.
func (r *QuoteItemDynamoRepository) Update(ctx context.Context, item entities.QuoteItem) (entities.QuoteItem, error) {
	av, err := attributevalue.MarshalMap(quoteItemRow(item))
	if err != nil {
		return entities.QuoteItem{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.QuoteItem{}, nil
		}
		return entities.QuoteItem{}, err
	}
	return item, nil
}

func (r *QuoteItemDynamoRepository) DeleteByQuoteID(ctx context.Context, quoteID string) error {
	items, err := r.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return err
	}
	reqs := make([]types.WriteRequest, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: stringKey("id", it.ID)}})
	}
	return batchWrite(ctx, r.ddb, r.tableName, reqs)
}
