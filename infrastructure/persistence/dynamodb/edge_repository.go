package dynamodb

import (
	"context"
	"fmt"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// EdgeRepository implements the EdgeRepository port using DynamoDB. Each
// edge is stored once per endpoint so the edges touching a snippet are a
// single begins_with query.
type EdgeRepository struct {
	store *Store
}

// NewEdgeRepository creates a new EdgeRepository
func NewEdgeRepository(store *Store) ports.EdgeRepository {
	return &EdgeRepository{store: store}
}

// Save persists both endpoint views of an edge
func (r *EdgeRepository) Save(ctx context.Context, userID string, edge *entities.Edge) error {
	pairs := [][2]valueobjects.SnippetID{
		{edge.SourceID, edge.TargetID},
		{edge.TargetID, edge.SourceID},
	}

	for _, pair := range pairs {
		item := edgeItem{
			PK:         userPK(userID),
			SK:         edgeSK(pair[0].String(), pair[1].String()),
			EntityType: "EDGE",
			EdgeID:     edge.ID,
			SourceID:   edge.SourceID.String(),
			TargetID:   edge.TargetID.String(),
			OwnerID:    pair[0].String(),
			PeerID:     pair[1].String(),
			CreatedAt:  edge.CreatedAt.Format(time.RFC3339Nano),
		}

		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("failed to marshal edge: %w", err)
		}

		if _, err := r.store.execute("edge.save", func() (interface{}, error) {
			return r.store.client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName: aws.String(r.store.tableName),
				Item:      av,
			})
		}); err != nil {
			return err
		}
	}

	r.store.logger.Debug("Edge saved",
		zap.String("edgeID", edge.ID),
		zap.String("sourceID", edge.SourceID.String()),
		zap.String("targetID", edge.TargetID.String()),
	)
	return nil
}

// GetBySnippetID retrieves all edges touching a snippet
func (r *EdgeRepository) GetBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) ([]*entities.Edge, error) {
	items, err := r.queryEdgeItems(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	edges := make([]*entities.Edge, 0, len(items))
	for _, item := range items {
		edge, err := reconstructEdge(item)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// Delete removes both endpoint views of an edge
func (r *EdgeRepository) Delete(ctx context.Context, userID string, sourceID, targetID valueobjects.SnippetID) error {
	keys := []string{
		edgeSK(sourceID.String(), targetID.String()),
		edgeSK(targetID.String(), sourceID.String()),
	}
	return r.deleteKeys(ctx, userID, keys)
}

// DeleteBySnippetID removes all edges touching a snippet, on both sides
func (r *EdgeRepository) DeleteBySnippetID(ctx context.Context, userID string, id valueobjects.SnippetID) error {
	items, err := r.queryEdgeItems(ctx, userID, id)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(items)*2)
	for _, item := range items {
		keys = append(keys,
			edgeSK(item.OwnerID, item.PeerID),
			edgeSK(item.PeerID, item.OwnerID),
		)
	}
	return r.deleteKeys(ctx, userID, keys)
}

func (r *EdgeRepository) queryEdgeItems(ctx context.Context, userID string, id valueobjects.SnippetID) ([]edgeItem, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.store.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: userPK(userID)},
			":prefix": &types.AttributeValueMemberS{Value: edgeSKPrefix(id.String())},
		},
	}

	var items []edgeItem
	for {
		result, err := r.store.execute("edge.query", func() (interface{}, error) {
			return r.store.client.Query(ctx, input)
		})
		if err != nil {
			return nil, err
		}

		out := result.(*dynamodb.QueryOutput)
		for _, raw := range out.Items {
			var item edgeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal edge: %w", err)
			}
			items = append(items, item)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return items, nil
}

func (r *EdgeRepository) deleteKeys(ctx context.Context, userID string, sortKeys []string) error {
	for _, sk := range sortKeys {
		if _, err := r.store.execute("edge.delete", func() (interface{}, error) {
			return r.store.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(r.store.tableName),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
					"SK": &types.AttributeValueMemberS{Value: sk},
				},
			})
		}); err != nil {
			return err
		}
	}
	return nil
}

func reconstructEdge(item edgeItem) (*entities.Edge, error) {
	sourceID, err := valueobjects.NewSnippetIDFromString(item.SourceID)
	if err != nil {
		return nil, fmt.Errorf("corrupt edge item %q: %w", item.SK, err)
	}
	targetID, err := valueobjects.NewSnippetIDFromString(item.TargetID)
	if err != nil {
		return nil, fmt.Errorf("corrupt edge item %q: %w", item.SK, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt edge timestamp %q: %w", item.CreatedAt, err)
	}

	return &entities.Edge{
		ID:        item.EdgeID,
		SourceID:  sourceID,
		TargetID:  targetID,
		CreatedAt: createdAt,
	}, nil
}
