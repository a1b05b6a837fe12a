package repository

import (
	"context"
	"strconv"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSubscriptionsTableName = "subscriptions"
	defaultUsageTableName         = "usage_tracking"
)

type subscriptionRow struct {
	UserID             string `dynamodbav:"user_id"`
	Tier               string `dynamodbav:"tier"`
	MonthlyItemLimit   int    `dynamodbav:"monthly_item_limit"`
	IsActive           bool   `dynamodbav:"is_active"`
	CurrentPeriodStart string `dynamodbav:"current_period_start"`
	CurrentPeriodEnd   string `dynamodbav:"current_period_end"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

type usageRow struct {
	UserID             string `dynamodbav:"user_id"`
	PeriodStart        string `dynamodbav:"period_start"`
	PeriodEnd          string `dynamodbav:"period_end"`
	ItemsSentThisMonth int    `dynamodbav:"items_sent_this_month"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

// SubscriptionDynamoRepository persists one subscription per user.
//
// Table requirements:
//   - PK: user_id (string)

type SubscriptionDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ISubscriptionRepository = (*SubscriptionDynamoRepository)(nil)

func NewSubscriptionDynamoRepository(ddb DynamoAPI, tableName string) *SubscriptionDynamoRepository {
	return &SubscriptionDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultSubscriptionsTableName)}
}

// GetByUserID returns nil when the user has no subscription.
func (r *SubscriptionDynamoRepository) GetByUserID(ctx context.Context, userID string) (*entities.Subscription, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("user_id", userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var row subscriptionRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, err
	}
	s := entities.Subscription{
		UserID:             row.UserID,
		Tier:               entities.SubscriptionTier(row.Tier),
		MonthlyItemLimit:   row.MonthlyItemLimit,
		IsActive:           row.IsActive,
		CurrentPeriodStart: parseTime(row.CurrentPeriodStart),
		CurrentPeriodEnd:   parseTime(row.CurrentPeriodEnd),
		UpdatedAt:          parseTime(row.UpdatedAt),
	}
	return &s, nil
}

func (r *SubscriptionDynamoRepository) Put(ctx context.Context, s entities.Subscription) (entities.Subscription, error) {
	av, err := attributevalue.MarshalMap(subscriptionRow{
		UserID:             s.UserID,
		Tier:               string(s.Tier),
		MonthlyItemLimit:   s.MonthlyItemLimit,
		IsActive:           s.IsActive,
		CurrentPeriodStart: formatTime(s.CurrentPeriodStart),
		CurrentPeriodEnd:   formatTime(s.CurrentPeriodEnd),
		UpdatedAt:          formatTime(s.UpdatedAt),
	})
	if err != nil {
		return entities.Subscription{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av}); err != nil {
		return entities.Subscription{}, err
	}
	return s, nil
}

// UsageDynamoRepository stores one counter per user and calendar month.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: period_start (string, RFC3339)
//
// Counters only move through ADD so concurrent writers never lose updates.

type UsageDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IUsageRepository = (*UsageDynamoRepository)(nil)

func NewUsageDynamoRepository(ddb DynamoAPI, tableName string) *UsageDynamoRepository {
	return &UsageDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultUsageTableName), now: time.Now}
}

func usageKey(userID string, periodStart time.Time) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id":      &types.AttributeValueMemberS{Value: userID},
		"period_start": &types.AttributeValueMemberS{Value: formatTime(periodStart)},
	}
}

// GetForPeriod returns nil when nothing was recorded for the period.
func (r *UsageDynamoRepository) GetForPeriod(ctx context.Context, userID string, periodStart time.Time) (*entities.UsageTracking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            usageKey(userID, periodStart),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var row usageRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, err
	}
	u := fromUsageRow(row)
	return &u, nil
}

func (r *UsageDynamoRepository) Increment(ctx context.Context, userID string, periodStart, periodEnd time.Time, n int) (entities.UsageTracking, error) {
	u, _, err := r.add(ctx, userID, periodStart, periodEnd, n, nil)
	return u, err
}

func (r *UsageDynamoRepository) IncrementWithinLimit(ctx context.Context, userID string, periodStart, periodEnd time.Time, n, limit int) (entities.UsageTracking, bool, error) {
	maxBefore := limit - n
	if maxBefore < 0 {
		return entities.UsageTracking{}, false, nil
	}
	return r.add(ctx, userID, periodStart, periodEnd, n, &maxBefore)
}

func (r *UsageDynamoRepository) add(ctx context.Context, userID string, periodStart, periodEnd time.Time, n int, maxBefore *int) (entities.UsageTracking, bool, error) {
	in := &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              usageKey(userID, periodStart),
		UpdateExpression: aws.String("SET #period_end = if_not_exists(#period_end, :period_end), #updated_at = :now ADD #items :n"),
		ExpressionAttributeNames: map[string]string{
			"#period_end": "period_end",
			"#updated_at": "updated_at",
			"#items":      "items_sent_this_month",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":period_end": &types.AttributeValueMemberS{Value: formatTime(periodEnd)},
			":now":        &types.AttributeValueMemberS{Value: formatTime(r.now())},
			":n":          &types.AttributeValueMemberN{Value: strconv.Itoa(n)},
		},
		ReturnValues: types.ReturnValueAllNew,
	}
	if maxBefore != nil {
		in.ConditionExpression = aws.String("attribute_not_exists(#items) OR #items <= :max")
		in.ExpressionAttributeValues[":max"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*maxBefore)}
	}

	out, err := r.ddb.UpdateItem(ctx, in)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.UsageTracking{}, false, nil
		}
		return entities.UsageTracking{}, false, err
	}
	var row usageRow
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return entities.UsageTracking{}, false, err
	}
	return fromUsageRow(row), true, nil
}

func fromUsageRow(row usageRow) entities.UsageTracking {
	return entities.UsageTracking{
		UserID:             row.UserID,
		ItemsSentThisMonth: row.ItemsSentThisMonth,
		PeriodStart:        parseTime(row.PeriodStart),
		PeriodEnd:          parseTime(row.PeriodEnd),
		UpdatedAt:          parseTime(row.UpdatedAt),
	}
}
