package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labtracker/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TableAdmin is the subset of *dynamodb.Client used to provision tables.
type TableAdmin interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ TableAdmin = (*dynamodb.Client)(nil)

type gsi struct {
	name string
	hash string
}

type tableSpec struct {
	name    string
	hash    string
	rangeBy string
	indexes []gsi
}

// TableDefinitions describes every table the service reads or writes.
func TableDefinitions(t config.TableConfig) []*dynamodb.CreateTableInput {
	specs := []tableSpec{
		{name: tableOr(t.Quotes, defaultQuotesTableName), hash: "id", indexes: []gsi{{quotesUserIDIndex, "user_id"}, {quotesLabIDIndex, "lab_id"}}},
		{name: tableOr(t.QuoteItems, defaultQuoteItemsTableName), hash: "id", indexes: []gsi{{quoteItemsQuoteIDIndex, "quote_id"}}},
		{name: tableOr(t.Products, defaultProductsTableName), hash: "id"},
		{name: tableOr(t.Labs, defaultLabsTableName), hash: "id"},
		{name: tableOr(t.Profiles, defaultProfilesTableName), hash: "id"},
		{name: tableOr(t.UserRoles, defaultUserRolesTableName), hash: "user_id"},
		{name: tableOr(t.Subscriptions, defaultSubscriptionsTableName), hash: "user_id"},
		{name: tableOr(t.UsageTracking, defaultUsageTableName), hash: "user_id", rangeBy: "period_start"},
		{name: tableOr(t.LabUsers, defaultLabUsersTableName), hash: "lab_id", rangeBy: "user_id", indexes: []gsi{{labUsersUserIDIndex, "user_id"}}},
		{name: tableOr(t.Payments, defaultPaymentsTableName), hash: "id", indexes: []gsi{{paymentsQuoteIDIndex, "quote_id"}}},
	}

	out := make([]*dynamodb.CreateTableInput, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.input())
	}
	return out
}

func (s tableSpec) input() *dynamodb.CreateTableInput {
	attrs := map[string]struct{}{}
	var defs []types.AttributeDefinition
	define := func(name string) {
		if _, ok := attrs[name]; ok {
			return
		}
		attrs[name] = struct{}{}
		defs = append(defs, types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS})
	}

	define(s.hash)
	keys := []types.KeySchemaElement{{AttributeName: aws.String(s.hash), KeyType: types.KeyTypeHash}}
	if s.rangeBy != "" {
		define(s.rangeBy)
		keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(s.rangeBy), KeyType: types.KeyTypeRange})
	}

	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(s.name),
		KeySchema:   keys,
		BillingMode: types.BillingModePayPerRequest,
	}
	for _, idx := range s.indexes {
		define(idx.hash)
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(idx.hash), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	in.AttributeDefinitions = defs
	return in
}

// EnsureTables creates missing tables and waits until they are active.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, api TableAdmin, t config.TableConfig, log *zap.Logger) error {
	waiter := dynamodb.NewTableExistsWaiter(api)
	for _, in := range TableDefinitions(t) {
		name := aws.ToString(in.TableName)
		if _, err := api.CreateTable(ctx, in); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				log.Info("table exists", zap.String("table", name))
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, 2*time.Minute); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
		log.Info("table created", zap.String("table", name))
	}
	return nil
}
