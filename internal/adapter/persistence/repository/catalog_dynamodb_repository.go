package repository

import (
	"context"
	"errors"
	"sort"

	"labtracker/internal/domain/entities"
	"labtracker/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProductsTableName = "products"
	defaultLabsTableName     = "labs"
)

type productRow struct {
	ID           string  `dynamodbav:"id"`
	Name         string  `dynamodbav:"name"`
	Compound     string  `dynamodbav:"compound"`
	DefaultPrice float64 `dynamodbav:"default_price"`
}

type labRow struct {
	ID           string `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	ContactEmail string `dynamodbav:"contact_email,omitempty"`
}

// CatalogDynamoRepository reads the products and labs tables (PK: id).

type CatalogDynamoRepository struct {
	ddb           DynamoAPI
	productsTable string
	labsTable     string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb DynamoAPI, productsTable, labsTable string) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:           ddb,
		productsTable: tableOr(productsTable, defaultProductsTableName),
		labsTable:     tableOr(labsTable, defaultLabsTableName),
	}
}

// GetProducts resolves ids in batches; unknown ids are absent from the result.
func (r *CatalogDynamoRepository) GetProducts(ctx context.Context, ids []string) (map[string]entities.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	out := make(map[string]entities.Product, len(unique))
	for start := 0; start < len(unique); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(unique) {
			end = len(unique)
		}
		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range unique[start:end] {
			keys = append(keys, stringKey("id", id))
		}

		pending := map[string]types.KeysAndAttributes{r.productsTable: {Keys: keys}}
		for attempt := 0; len(pending[r.productsTable].Keys) > 0; attempt++ {
			if attempt == batchRetryAttempts {
				return nil, errors.New("batch get: unprocessed keys after retries")
			}
			resp, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				return nil, err
			}
			var rows []productRow
			if err := attributevalue.UnmarshalListOfMaps(resp.Responses[r.productsTable], &rows); err != nil {
				return nil, err
			}
			for _, row := range rows {
				out[row.ID] = entities.Product(row)
			}
			pending = resp.UnprocessedKeys
		}
	}
	return out, nil
}

func (r *CatalogDynamoRepository) GetLab(ctx context.Context, id string) (entities.Lab, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.labsTable),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return entities.Lab{}, err
	}
	if len(out.Item) == 0 {
		return entities.Lab{}, nil
	}
	var row labRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Lab{}, err
	}
	return entities.Lab(row), nil
}

func (r *CatalogDynamoRepository) ListLabs(ctx context.Context) ([]entities.Lab, error) {
	rows, err := scanAll[labRow](ctx, r.ddb, r.labsTable)
	if err != nil {
		return nil, err
	}
	labs := make([]entities.Lab, 0, len(rows))
	for _, row := range rows {
		labs = append(labs, entities.Lab(row))
	}
	sort.Slice(labs, func(i, j int) bool { return labs[i].Name < labs[j].Name })
	return labs, nil
}
