package dynamodb

import (
	"context"
	"fmt"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
	pkgerrors "threadline-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// SnippetRepository implements the SnippetRepository port using DynamoDB
type SnippetRepository struct {
	store *Store
}

// NewSnippetRepository creates a new SnippetRepository
func NewSnippetRepository(store *Store) ports.SnippetRepository {
	return &SnippetRepository{store: store}
}

// Save persists a snippet to DynamoDB
func (r *SnippetRepository) Save(ctx context.Context, snippet *entities.Snippet) error {
	item := newSnippetItem(snippet)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal snippet: %w", err)
	}

	_, err = r.store.execute("snippet.save", func() (interface{}, error) {
		return r.store.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.store.tableName),
			Item:      av,
		})
	})
	if err != nil {
		return err
	}

	r.store.logger.Debug("Snippet saved",
		zap.String("snippetID", snippet.ID().String()),
		zap.String("userID", snippet.UserID()),
	)
	return nil
}

// GetByID retrieves a snippet by its ID via the snippet index
func (r *SnippetRepository) GetByID(ctx context.Context, userID string, id valueobjects.SnippetID) (*entities.Snippet, error) {
	item, err := r.getItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, pkgerrors.NewNotFoundError("snippet")
	}
	return reconstructFromItem(item)
}

// GetByUserID retrieves the user's snippets, newest-first
func (r *SnippetRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*entities.Snippet, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.store.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND SK BETWEEN :lo AND :hi"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: userPK(userID)},
			":lo": &types.AttributeValueMemberS{Value: snippetSKPrefixLow},
			":hi": &types.AttributeValueMemberS{Value: snippetSKPrefixHigh},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	}

	result, err := r.store.execute("snippet.list", func() (interface{}, error) {
		return r.store.client.Query(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	return unmarshalSnippets(result.(*dynamodb.QueryOutput).Items)
}

// Delete removes a snippet
func (r *SnippetRepository) Delete(ctx context.Context, userID string, id valueobjects.SnippetID) error {
	item, err := r.getItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return pkgerrors.NewNotFoundError("snippet")
	}

	_, err = r.store.execute("snippet.delete", func() (interface{}, error) {
		return r.store.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.store.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: item.PK},
				"SK": &types.AttributeValueMemberS{Value: item.SK},
			},
		})
	})
	return err
}

// getItemByID looks up the raw item through the snippet index
func (r *SnippetRepository) getItemByID(ctx context.Context, id valueobjects.SnippetID) (*snippetItem, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.store.tableName),
		IndexName:              aws.String(r.store.snipIndex),
		KeyConditionExpression: aws.String("GSI2PK = :pk AND GSI2SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: snippetGSI2PK(id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.store.execute("snippet.get", func() (interface{}, error) {
		return r.store.client.Query(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	out := result.(*dynamodb.QueryOutput)
	if len(out.Items) == 0 {
		return nil, nil
	}

	var item snippetItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snippet: %w", err)
	}
	return &item, nil
}

// newSnippetItem maps a snippet entity to its item representation
func newSnippetItem(snippet *entities.Snippet) snippetItem {
	nanos := snippet.CreatedAt().UnixNano()
	sk := snippetSK(nanos, snippet.ID().String())

	item := snippetItem{
		PK:             userPK(snippet.UserID()),
		SK:             sk,
		GSI2PK:         snippetGSI2PK(snippet.ID().String()),
		GSI2SK:         "METADATA",
		EntityType:     "SNIPPET",
		SnippetID:      snippet.ID().String(),
		UserID:         snippet.UserID(),
		Content:        snippet.Content(),
		SnippetType:    string(snippet.Type()),
		ClusterLabel:   snippet.ClusterLabel(),
		CreatedAt:      snippet.CreatedAt().Format(time.RFC3339Nano),
		CreatedAtNanos: nanos,
	}

	if snippet.HasClusterLabel() {
		item.GSI1PK = labelGSI1PK(snippet.UserID(), snippet.ClusterLabel())
		item.GSI1SK = sk
	}

	return item
}

// reconstructFromItem maps an item back to a snippet entity
func reconstructFromItem(item *snippetItem) (*entities.Snippet, error) {
	id, err := valueobjects.NewSnippetIDFromString(item.SnippetID)
	if err != nil {
		return nil, fmt.Errorf("corrupt snippet item %q: %w", item.SK, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt snippet timestamp %q: %w", item.CreatedAt, err)
	}

	return entities.ReconstructSnippet(
		id,
		item.UserID,
		item.Content,
		entities.SnippetType(item.SnippetType),
		item.ClusterLabel,
		createdAt,
	)
}

// unmarshalSnippets converts query output items into entities
func unmarshalSnippets(items []map[string]types.AttributeValue) ([]*entities.Snippet, error) {
	snippets := make([]*entities.Snippet, 0, len(items))
	for _, raw := range items {
		var item snippetItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snippet: %w", err)
		}
		snippet, err := reconstructFromItem(&item)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}
