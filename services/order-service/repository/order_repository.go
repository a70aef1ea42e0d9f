package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/swnshop/microservices/services/order-service/models"
)

// DynamoDBAPI is the slice of the DynamoDB client the repository uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// OrderRepository stores orders in a DynamoDB table keyed by userName
// with orderDate as the sort key.
type OrderRepository struct {
	client DynamoDBAPI
	table  string
}

func NewOrderRepository(client DynamoDBAPI, table string) *OrderRepository {
	return &OrderRepository{client: client, table: table}
}

// CreateOrder writes the order record. Records are write-once; the
// composite key (userName, orderDate) makes collisions effectively
// impossible across distinct ingestions.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &r.table, Item: item})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

// GetOrdersByUser returns the user's orders sorted by orderDate.
func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userName string) ([]models.Order, error) {
	keyValue, err := attributevalue.Marshal(userName)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &r.table,
		KeyConditionExpression: strPtr("userName = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": keyValue,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb Query failed: %w", err)
	}

	orders := []models.Order{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	return orders, nil
}

// ExistsByCheckoutID reports whether an order for this user already
// carries the given checkout ID. Used by the consumer to drop redelivered
// events. The filtered query is acceptable at this table's scale.
func (r *OrderRepository) ExistsByCheckoutID(ctx context.Context, userName, checkoutID string) (bool, error) {
	userValue, err := attributevalue.Marshal(userName)
	if err != nil {
		return false, fmt.Errorf("marshal key: %w", err)
	}
	checkoutValue, err := attributevalue.Marshal(checkoutID)
	if err != nil {
		return false, fmt.Errorf("marshal checkout id: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &r.table,
		KeyConditionExpression: strPtr("userName = :u"),
		FilterExpression:       strPtr("checkoutId = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": userValue,
			":c": checkoutValue,
		},
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb Query failed: %w", err)
	}
	return len(out.Items) > 0, nil
}

// ListOrders scans the whole table.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{TableName: &r.table})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb Scan failed: %w", err)
		}
		var pageOrders []models.Order
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageOrders); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
		orders = append(orders, pageOrders...)
	}
	return orders, nil
}

func strPtr(s string) *string { return &s }
