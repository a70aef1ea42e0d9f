package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/swnshop/microservices/services/basket-service/models"
)

// DynamoDBAPI is the slice of the DynamoDB client the repository uses.
// Keeping it narrow lets tests substitute a fake for the SDK client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// BasketRepository stores baskets in a DynamoDB table keyed by userName.
type BasketRepository struct {
	client DynamoDBAPI
	table  string
}

func NewBasketRepository(client DynamoDBAPI, table string) *BasketRepository {
	return &BasketRepository{client: client, table: table}
}

// GetBasket returns the basket for the user, or nil when no record exists.
func (r *BasketRepository) GetBasket(ctx context.Context, userName string) (*models.Basket, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"userName": userName})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &r.table, Key: key})
	if err != nil {
		return nil, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var basket models.Basket
	if err := attributevalue.UnmarshalMap(out.Item, &basket); err != nil {
		return nil, fmt.Errorf("unmarshal basket: %w", err)
	}
	return &basket, nil
}

// SaveBasket overwrites the user's basket.
func (r *BasketRepository) SaveBasket(ctx context.Context, basket *models.Basket) error {
	item, err := attributevalue.MarshalMap(basket)
	if err != nil {
		return fmt.Errorf("marshal basket: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &r.table, Item: item})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

// DeleteBasket removes the user's basket. Deleting an absent key is a
// no-op success in DynamoDB, which is exactly what concurrent checkouts
// racing on the same basket rely on.
func (r *BasketRepository) DeleteBasket(ctx context.Context, userName string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"userName": userName})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &r.table, Key: key})
	if err != nil {
		return fmt.Errorf("dynamodb DeleteItem failed: %w", err)
	}
	return nil
}

// ListBaskets scans the whole table. Fine at this table's scale; there is
// no pagination contract on the endpoint that uses it.
func (r *BasketRepository) ListBaskets(ctx context.Context) ([]models.Basket, error) {
	baskets := []models.Basket{}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{TableName: &r.table})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb Scan failed: %w", err)
		}
		for _, item := range page.Items {
			var basket models.Basket
			if err := attributevalue.UnmarshalMap(item, &basket); err != nil {
				return nil, fmt.Errorf("unmarshal basket: %w", err)
			}
			baskets = append(baskets, basket)
		}
	}
	return baskets, nil
}
