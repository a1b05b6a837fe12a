package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"labtracker/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteItems(t *testing.T, rows ...quoteRow) []map[string]types.AttributeValue {
	t.Helper()
	out := make([]map[string]types.AttributeValue, 0, len(rows))
	for _, row := range rows {
		av, err := attributevalue.MarshalMap(row)
		require.NoError(t, err)
		out = append(out, av)
	}
	return out
}

func putRequests(n int) []types.WriteRequest {
	reqs := make([]types.WriteRequest, 0, n)
	for i := 0; i < n; i++ {
		reqs = append(reqs, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: stringKey("id", fmt.Sprintf("i-%d", i))}})
	}
	return reqs
}

func TestQuoteRepository_ListUnionsIndexes(t *testing.T) {
	byIndex := map[string][]quoteRow{
		quotesUserIDIndex: {
			{ID: "q-1", UserID: "u-1", LabID: "lab-1", Status: "draft", CreatedAt: "2025-05-01T10:00:00Z"},
			{ID: "q-2", UserID: "u-1", LabID: "lab-2", Status: "paid", CreatedAt: "2025-05-03T10:00:00Z"},
		},
		quotesLabIDIndex: {
			{ID: "q-1", UserID: "u-1", LabID: "lab-1", Status: "draft", CreatedAt: "2025-05-01T10:00:00Z"},
			{ID: "q-3", UserID: "u-9", LabID: "lab-1", Status: "shipped", CreatedAt: "2025-05-02T10:00:00Z"},
		},
	}
	var queried []string
	ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		index := aws.ToString(in.IndexName)
		queried = append(queried, index)
		return &dynamodb.QueryOutput{Items: quoteItems(t, byIndex[index]...)}, nil
	}}
	repo := NewQuoteDynamoRepository(ddb, "")

	got, err := repo.List(context.Background(), entities.QuoteScope{UserID: "u-1", LabID: "lab-1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{quotesUserIDIndex, quotesLabIDIndex}, queried)

	ids := make([]string, 0, len(got))
	for _, q := range got {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"q-2", "q-3", "q-1"}, ids, "deduplicated, newest first")
	assert.Equal(t, entities.QuoteStatusShipped, got[1].Status)
}

func TestQuoteRepository_ListQueryError(t *testing.T) {
	boom := errors.New("throttled")
	ddb := &fakeDynamo{query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) { return nil, boom }}
	repo := NewQuoteDynamoRepository(ddb, "")

	_, err := repo.List(context.Background(), entities.QuoteScope{LabID: "lab-1"})
	assert.ErrorIs(t, err, boom)
}

func TestQuoteRepository_TransitionStatus(t *testing.T) {
	t.Run("condition pins the current status", func(t *testing.T) {
		ddb := &fakeDynamo{update: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			row := quoteItems(t, quoteRow{ID: "q-1", Status: "sent_to_vendor"})[0]
			return &dynamodb.UpdateItemOutput{Attributes: row}, nil
		}}
		repo := NewQuoteDynamoRepository(ddb, "")

		got, err := repo.TransitionStatus(context.Background(), "q-1", entities.QuoteStatusDraft, entities.QuoteStatusSentToVendor)
		require.NoError(t, err)
		assert.Equal(t, entities.QuoteStatusSentToVendor, got.Status)

		in := ddb.updates[0]
		assert.Equal(t, "attribute_exists(#id) AND #status = :from", aws.ToString(in.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "draft"}, in.ExpressionAttributeValues[":from"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "sent_to_vendor"}, in.ExpressionAttributeValues[":status"])
	})

	t.Run("other status yields zero quote", func(t *testing.T) {
		ddb := &fakeDynamo{update: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		repo := NewQuoteDynamoRepository(ddb, "")

		got, err := repo.TransitionStatus(context.Background(), "q-1", entities.QuoteStatusDraft, entities.QuoteStatusSentToVendor)
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})
}

func TestBatchWrite(t *testing.T) {
	t.Run("chunks at the batch limit", func(t *testing.T) {
		ddb := &fakeDynamo{batchWrite: func(*dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			return &dynamodb.BatchWriteItemOutput{}, nil
		}}

		require.NoError(t, batchWrite(context.Background(), ddb, "quote_items", putRequests(60)))
		assert.Equal(t, []int{25, 25, 10}, ddb.batchSizes)
	})

	t.Run("resubmits unprocessed items", func(t *testing.T) {
		calls := 0
		ddb := &fakeDynamo{batchWrite: func(in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{
					"quote_items": in.RequestItems["quote_items"][:2],
				}}, nil
			}
			return &dynamodb.BatchWriteItemOutput{}, nil
		}}

		require.NoError(t, batchWrite(context.Background(), ddb, "quote_items", putRequests(5)))
		assert.Equal(t, []int{5, 2}, ddb.batchSizes)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		ddb := &fakeDynamo{batchWrite: func(in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			return &dynamodb.BatchWriteItemOutput{UnprocessedItems: in.RequestItems}, nil
		}}

		err := batchWrite(context.Background(), ddb, "quote_items", putRequests(3))
		require.Error(t, err)
		assert.Len(t, ddb.batchSizes, batchRetryAttempts)
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		ddb := &fakeDynamo{}
		require.NoError(t, batchWrite(context.Background(), ddb, "quote_items", nil))
		assert.Empty(t, ddb.batchSizes)
	})
}
