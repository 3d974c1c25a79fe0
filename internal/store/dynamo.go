package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	dynamoUsersTable         = "hushplay_users"
	dynamoChannelsTable      = "hushplay_channels"
	dynamoVideosTable        = "hushplay_videos"
	dynamoCommentsTable      = "hushplay_comments"
	dynamoSubscriptionsTable = "hushplay_subscriptions"
	dynamoLikedVideosTable   = "hushplay_liked_videos"
	dynamoVideoHistoryTable  = "hushplay_video_history"
	dynamoSiteSettingsTable  = "hushplay_site_settings"
)

var dynamoTables = []string{
	dynamoUsersTable,
	dynamoChannelsTable,
	dynamoVideosTable,
	dynamoCommentsTable,
	dynamoSubscriptionsTable,
	dynamoLikedVideosTable,
	dynamoVideoHistoryTable,
	dynamoSiteSettingsTable,
}

// DynamoStorage is the document-store backend. Every table is keyed by a
// numeric Id attribute.
//
// Id assignment scans for the current max id and adds one; two concurrent
// writers can observe the same max and produce duplicate ids. This is a known
// limitation of the scan-based strategy.
type DynamoStorage struct {
	client *dynamodb.Client
	logger *log.Logger
}

func NewDynamoStorage(logger *log.Logger) (*DynamoStorage, error) {
	region := os.Getenv("DYNAMO_REGION")
	endpoint := os.Getenv("DYNAMO_ENDPOINT")
	accessKey := os.Getenv("DYNAMO_ACCESS_KEY")
	secretKey := os.Getenv("DYNAMO_SECRET_KEY")

	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	ds := &DynamoStorage{client: client, logger: logger}
	ds.ensureTables()
	return ds, nil
}

// ensureTables creates any missing table. Table creation is capped at a few
// seconds; on timeout we continue without confirming, matching the
// best-effort initialization contract.
func (d *DynamoStorage) ensureTables() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing := map[string]bool{}
	list, err := d.client.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		d.logger.Println("Could not list dynamo tables, continuing:", err)
		return
	}
	for _, name := range list.TableNames {
		existing[name] = true
	}

	for _, table := range dynamoTables {
		if existing[table] {
			continue
		}
		_, err := d.client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName:   aws.String(table),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("Id"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("Id"), KeyType: types.KeyTypeHash},
			},
		})
		if err != nil {
			d.logger.Printf("Could not create dynamo table %s, continuing: %v", table, err)
		}
	}
}

func dynamoIDKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"Id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

// getItem unmarshals the row with the given id into out. The bool reports
// whether the row existed.
func (d *DynamoStorage) getItem(table string, id int64, out any) (bool, error) {
	res, err := d.client.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       dynamoIDKey(id),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item from %s: %w", table, err)
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item from %s: %w", table, err)
	}
	return true, nil
}

func (d *DynamoStorage) putItem(table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item for %s: %w", table, err)
	}
	_, err = d.client.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item into %s: %w", table, err)
	}
	return nil
}

func (d *DynamoStorage) deleteItem(table string, id int64) error {
	_, err := d.client.DeleteItem(context.Background(), &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       dynamoIDKey(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from %s: %w", table, err)
	}
	return nil
}

// scanAll pages through the whole table. The document-store contract has no
// secondary indexes; every list operation filters scan output client-side.
func (d *DynamoStorage) scanAll(table string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		res, err := d.client.Scan(context.Background(), &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		items = append(items, res.Items...)
		if res.LastEvaluatedKey == nil {
			break
		}
		startKey = res.LastEvaluatedKey
	}
	return items, nil
}

// nextID finds max(Id)+1 by scanning the table. Racy under concurrent
// writers; see the DynamoStorage doc comment.
func (d *DynamoStorage) nextID(table string) (int64, error) {
	var max int64
	var startKey map[string]types.AttributeValue

	for {
		res, err := d.client.Scan(context.Background(), &dynamodb.ScanInput{
			TableName:            aws.String(table),
			ProjectionExpression: aws.String("Id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to scan %s for max id: %w", table, err)
		}
		for _, item := range res.Items {
			n, ok := item["Id"].(*types.AttributeValueMemberN)
			if !ok {
				continue
			}
			id, err := strconv.ParseInt(n.Value, 10, 64)
			if err != nil {
				continue
			}
			if id > max {
				max = id
			}
		}
		if res.LastEvaluatedKey == nil {
			break
		}
		startKey = res.LastEvaluatedKey
	}
	return max + 1, nil
}
