package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"threadline-backend/application/ports"
	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GraphStore implements the read-only thread context query surface over the
// single-table layout. Temporal predicates ride the sort key; type and
// cluster predicates use filter expressions or the label index.
type GraphStore struct {
	store    *Store
	snippets *SnippetRepository
	edges    *EdgeRepository
}

// NewGraphStore creates a GraphStore over the shared Store
func NewGraphStore(store *Store) ports.GraphStore {
	return &GraphStore{
		store:    store,
		snippets: &SnippetRepository{store: store},
		edges:    &EdgeRepository{store: store},
	}
}

// QueryConnected returns edge-joined snippets on one side of the pivot.
// Edge fan-out per snippet is small, so peers are resolved individually
// through the snippet index and ordered client-side.
func (g *GraphStore) QueryConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection, limit int) ([]*entities.Snippet, error) {
	peers, err := g.connectedPeers(ctx, userID, focusID, pivot, dir)
	if err != nil {
		return nil, err
	}
	if len(peers) > limit {
		peers = peers[:limit]
	}
	return peers, nil
}

// CountConnected counts edge-joined snippets on one side of the pivot
func (g *GraphStore) CountConnected(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) (int, error) {
	peers, err := g.connectedPeers(ctx, userID, focusID, pivot, dir)
	if err != nil {
		return 0, err
	}
	return len(peers), nil
}

// connectedPeers resolves, filters and orders the snippets joined to the
// focus by an edge
func (g *GraphStore) connectedPeers(ctx context.Context, userID string, focusID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) ([]*entities.Snippet, error) {
	items, err := g.edges.queryEdgeItems(ctx, userID, focusID)
	if err != nil {
		return nil, err
	}

	pivotNanos := pivot.UnixNano()
	peers := make([]*entities.Snippet, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if _, dup := seen[item.PeerID]; dup {
			continue
		}
		seen[item.PeerID] = struct{}{}

		peerID, err := valueobjects.NewSnippetIDFromString(item.PeerID)
		if err != nil {
			return nil, fmt.Errorf("corrupt edge item %q: %w", item.SK, err)
		}

		peerItem, err := g.snippets.getItemByID(ctx, peerID)
		if err != nil {
			return nil, err
		}
		if peerItem == nil || peerItem.UserID != userID {
			// Dangling edge: the peer was deleted out from under it
			continue
		}

		if dir == ports.Before && peerItem.CreatedAtNanos >= pivotNanos {
			continue
		}
		if dir == ports.After && peerItem.CreatedAtNanos <= pivotNanos {
			continue
		}

		peer, err := reconstructFromItem(peerItem)
		if err != nil {
			return nil, err
		}
		peers = append(peers, peer)
	}

	sort.Slice(peers, func(i, j int) bool {
		if dir == ports.Before {
			return peers[i].CreatedAt().After(peers[j].CreatedAt())
		}
		return peers[i].CreatedAt().Before(peers[j].CreatedAt())
	})
	return peers, nil
}

// QueryByTimestamp is the pure temporal scan: every snippet on one side of
// the pivot, no edge requirement
func (g *GraphStore) QueryByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection, limit int) ([]*entities.Snippet, error) {
	input := g.temporalQueryInput(userID, excludeID, pivot, dir)
	return g.collectSnippets(ctx, "snippet.by_timestamp", input, limit)
}

// CountByTimestamp counts every snippet on one side of the pivot
func (g *GraphStore) CountByTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) (int, error) {
	input := g.temporalQueryInput(userID, excludeID, pivot, dir)
	return g.countItems(ctx, "snippet.count_by_timestamp", input)
}

// QueryByTypeAndTimestamp returns snippets of one type strictly newer than
// the pivot, oldest-first
func (g *GraphStore) QueryByTypeAndTimestamp(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, after time.Time, limit int) ([]*entities.Snippet, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").Between(
			expression.Value(snippetSKBound(after.UnixNano()+1)),
			expression.Value(snippetSKPrefixHigh),
		))
	filter := expression.Name("SnippetType").Equal(expression.Value(string(snippetType))).
		And(expression.Name("SnippetID").NotEqual(expression.Value(excludeID.String())))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(g.store.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
	}
	return g.collectSnippets(ctx, "snippet.by_type_and_timestamp", input, limit)
}

// QueryByClusterLabel returns snippets sharing a cluster label through the
// label index, newest-first
func (g *GraphStore) QueryByClusterLabel(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, limit int) ([]*entities.Snippet, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(labelGSI1PK(userID, label)))
	filter := expression.Name("SnippetID").NotEqual(expression.Value(excludeID.String()))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(g.store.tableName),
		IndexName:                 aws.String(g.store.labelIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}
	return g.collectSnippets(ctx, "snippet.by_cluster_label", input, limit)
}

// QueryByType returns snippets sharing a type, newest-first
func (g *GraphStore) QueryByType(ctx context.Context, userID string, excludeID valueobjects.SnippetID, snippetType entities.SnippetType, limit int) ([]*entities.Snippet, error) {
	keyCond := snippetRangeKeyCond(userID)
	filter := expression.Name("SnippetType").Equal(expression.Value(string(snippetType))).
		And(expression.Name("SnippetID").NotEqual(expression.Value(excludeID.String())))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(g.store.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}
	return g.collectSnippets(ctx, "snippet.by_type", input, limit)
}

// CountSimilar counts the cluster-label OR type union used by the lateral
// truncation flag
func (g *GraphStore) CountSimilar(ctx context.Context, userID string, excludeID valueobjects.SnippetID, label string, snippetType entities.SnippetType) (int, error) {
	typeMatch := expression.Name("SnippetType").Equal(expression.Value(string(snippetType)))

	similar := typeMatch
	if label != "" {
		similar = typeMatch.Or(expression.Name("ClusterLabel").Equal(expression.Value(label)))
	}
	filter := similar.And(expression.Name("SnippetID").NotEqual(expression.Value(excludeID.String())))

	expr, err := expression.NewBuilder().WithKeyCondition(snippetRangeKeyCond(userID)).WithFilter(filter).Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(g.store.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	return g.countItems(ctx, "snippet.count_similar", input)
}

// temporalQueryInput builds the key-condition query for one side of a pivot
func (g *GraphStore) temporalQueryInput(userID string, excludeID valueobjects.SnippetID, pivot time.Time, dir ports.TemporalDirection) *dynamodb.QueryInput {
	lo := snippetSKPrefixLow
	hi := snippetSKBound(pivot.UnixNano())
	forward := false
	if dir == ports.After {
		lo = snippetSKBound(pivot.UnixNano() + 1)
		hi = snippetSKPrefixHigh
		forward = true
	}

	return &dynamodb.QueryInput{
		TableName:              aws.String(g.store.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND SK BETWEEN :lo AND :hi"),
		FilterExpression:       aws.String("SnippetID <> :exclude"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":      &types.AttributeValueMemberS{Value: userPK(userID)},
			":lo":      &types.AttributeValueMemberS{Value: lo},
			":hi":      &types.AttributeValueMemberS{Value: hi},
			":exclude": &types.AttributeValueMemberS{Value: excludeID.String()},
		},
		ScanIndexForward: aws.Bool(forward),
	}
}

// collectSnippets pages through a query until the limit is met. The limit
// is applied client-side because DynamoDB applies Limit before filter
// expressions.
func (g *GraphStore) collectSnippets(ctx context.Context, operation string, input *dynamodb.QueryInput, limit int) ([]*entities.Snippet, error) {
	snippets := make([]*entities.Snippet, 0, limit)
	for {
		result, err := g.store.execute(operation, func() (interface{}, error) {
			return g.store.client.Query(ctx, input)
		})
		if err != nil {
			return nil, err
		}

		out := result.(*dynamodb.QueryOutput)
		for _, raw := range out.Items {
			var item snippetItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal snippet: %w", err)
			}
			snippet, err := reconstructFromItem(&item)
			if err != nil {
				return nil, err
			}
			snippets = append(snippets, snippet)
			if len(snippets) >= limit {
				return snippets, nil
			}
		}

		if out.LastEvaluatedKey == nil {
			return snippets, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// countItems pages through a COUNT query summing matches
func (g *GraphStore) countItems(ctx context.Context, operation string, input *dynamodb.QueryInput) (int, error) {
	input.Select = types.SelectCount
	total := 0
	for {
		result, err := g.store.execute(operation, func() (interface{}, error) {
			return g.store.client.Query(ctx, input)
		})
		if err != nil {
			return 0, err
		}

		out := result.(*dynamodb.QueryOutput)
		total += int(out.Count)

		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// snippetRangeKeyCond matches every snippet item in a user partition
func snippetRangeKeyCond(userID string) expression.KeyConditionBuilder {
	return expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").Between(
			expression.Value(snippetSKPrefixLow),
			expression.Value(snippetSKPrefixHigh),
		))
}
