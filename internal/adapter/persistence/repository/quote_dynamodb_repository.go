package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesUserIDIndex      = "user_id-index"
	quotesLabIDIndex       = "lab_id-index"
)

type quoteRow struct {
	ID             string `dynamodbav:"id"`
	QuoteNumber    string `dynamodbav:"quote_number"`
	Status         string `dynamodbav:"status"`
	UserID         string `dynamodbav:"user_id"`
	LabID          string `dynamodbav:"lab_id"`
	TrackingNumber string `dynamodbav:"tracking_number,omitempty"`
	Notes          string `dynamodbav:"notes,omitempty"`
	ShippedDate    string `dynamodbav:"shipped_date,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote rows in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//   - GSI: lab_id-index (PK: lab_id)
//
// Items live in their own table; see QuoteItemDynamoRepository.

type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableOr(tableName, defaultQuotesTableName),
		now:       time.Now,
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteRow(q))
	if err != nil {
		return entities.Quote{}, err
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
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var row quoteRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteRow(row), nil
}

// List returns the quotes visible to scope, newest first. A scope carrying
// both a user and a lab returns the union of both indexes.
func (r *QuoteDynamoRepository) List(ctx context.Context, scope entities.QuoteScope) ([]entities.Quote, error) {
	var rows []quoteRow
	if scope.All {
		all, err := scanAll[quoteRow](ctx, r.ddb, r.tableName)
		if err != nil {
			return nil, err
		}
		rows = all
	} else {
		if scope.UserID != "" {
			byUser, err := r.queryIndex(ctx, quotesUserIDIndex, "user_id", scope.UserID)
			if err != nil {
				return nil, err
			}
			rows = append(rows, byUser...)
		}
		if scope.LabID != "" {
			byLab, err := r.queryIndex(ctx, quotesLabIDIndex, "lab_id", scope.LabID)
			if err != nil {
				return nil, err
			}
			rows = append(rows, byLab...)
		}
	}

	seen := make(map[string]struct{}, len(rows))
	quotes := make([]entities.Quote, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.ID]; dup {
			continue
		}
		seen[row.ID] = struct{}{}
		quotes = append(quotes, fromQuoteRow(row))
	}
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].CreatedAt.After(quotes[j].CreatedAt) })
	return quotes, nil
}

func (r *QuoteDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]quoteRow, error) {
	return queryAll[quoteRow](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// TransitionStatus moves the quote to status "to" only while it is still in
// "from". A quote in any other status, or a missing one, yields a zero quote.
func (r *QuoteDynamoRepository) TransitionStatus(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id, "#status = :from", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// Update writes the fields present in patch.
func (r *QuoteDynamoRepository) Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error) {
	return r.update(ctx, id, "", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		sets := []string{"#updated_at = :updated_at"}
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{"#updated_at": "updated_at"}

		set := func(attr, value string) {
			sets = append(sets, "#"+attr+" = :"+attr)
			names["#"+attr] = attr
			vals[":"+attr] = &types.AttributeValueMemberS{Value: value}
		}
		if patch.Status != nil {
			set("status", string(*patch.Status))
		}
		if patch.LabID != nil {
			set("lab_id", strings.TrimSpace(*patch.LabID))
		}
		if patch.TrackingNumber != nil {
			set("tracking_number", *patch.TrackingNumber)
		}
		if patch.Notes != nil {
			set("notes", *patch.Notes)
		}
		if patch.ShippedDate != nil {
			set("shipped_date", formatTime(*patch.ShippedDate))
		}
		return "SET " + strings.Join(sets, ", "), vals, names
	})
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", id),
	})
	return err
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	extraCond string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	updateExpr, values, names := build(formatTime(r.now()))
	cond := "attribute_exists(#id)"
	if extraCond != "" {
		cond += " AND " + extraCond
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var row quoteRow
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteRow(row), nil
}

func toQuoteRow(q entities.Quote) quoteRow {
	row := quoteRow{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		Status:         string(q.Status),
		UserID:         q.UserID,
		LabID:          q.LabID,
		TrackingNumber: q.TrackingNumber,
		Notes:          q.Notes,
		CreatedAt:      formatTime(q.CreatedAt),
		UpdatedAt:      formatTime(q.UpdatedAt),
	}
	if q.ShippedDate != nil {
		row.ShippedDate = formatTime(*q.ShippedDate)
	}
	return row
}

func fromQuoteRow(row quoteRow) entities.Quote {
	q := entities.Quote{
		ID:             row.ID,
		QuoteNumber:    row.QuoteNumber,
		Status:         entities.QuoteStatus(row.Status),
		UserID:         row.UserID,
		LabID:          row.LabID,
		TrackingNumber: row.TrackingNumber,
		Notes:          row.Notes,
		CreatedAt:      parseTime(row.CreatedAt),
		UpdatedAt:      parseTime(row.UpdatedAt),
	}
	if row.ShippedDate != "" {
		d := parseTime(row.ShippedDate)
		q.ShippedDate = &d
	}
	return q
}
