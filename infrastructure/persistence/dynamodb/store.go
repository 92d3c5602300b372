package dynamodb

import (
	"errors"
	"fmt"
	"time"

	pkgerrors "threadline-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Single-table layout:
//
//	snippet  PK=USER#<userID>              SK=SNIP#<nanos:020d>#<snippetID>
//	edge     PK=USER#<userID>              SK=EDGE#<ownerID>#<peerID>   (stored once per endpoint)
//	GSI1     GSI1PK=USER#<userID>#LABEL#<label>  GSI1SK=<snippet SK>    (cluster-label lookups)
//	GSI2     GSI2PK=SNIPID#<snippetID>     GSI2SK=METADATA              (direct ID lookups)
//
// The snippet sort key embeds the capture timestamp, so temporal range
// queries are key-condition queries rather than scans.

// Store wraps the DynamoDB client with the table layout and a circuit
// breaker. Availability policy lives here, at the store boundary; callers
// never retry.
type Store struct {
	client     *dynamodb.Client
	tableName  string
	labelIndex string
	snipIndex  string
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewStore creates a Store over the given client and table
func NewStore(client *dynamodb.Client, tableName, labelIndex, snipIndex string, logger *zap.Logger) *Store {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dynamodb",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Store{
		client:     client,
		tableName:  tableName,
		labelIndex: labelIndex,
		snipIndex:  snipIndex,
		breaker:    breaker,
		logger:     logger,
	}
}

// execute runs one store operation through the circuit breaker and maps
// breaker rejections to the store-unavailable error type
func (s *Store) execute(operation string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, pkgerrors.NewStoreUnavailableError(err)
		}
		return nil, pkgerrors.NewQueryFailedError(operation, err)
	}
	return result, nil
}

// Key helpers

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func snippetSK(nanos int64, snippetID string) string {
	return fmt.Sprintf("SNIP#%020d#%s", nanos, snippetID)
}

// snippetSKBound returns the exclusive sort-key bound for a timestamp: every
// snippet item with a strictly smaller timestamp sorts below it, and every
// item with the same or larger timestamp sorts at or above it
func snippetSKBound(nanos int64) string {
	return fmt.Sprintf("SNIP#%020d", nanos)
}

const (
	snippetSKPrefixLow  = "SNIP#"
	snippetSKPrefixHigh = "SNIP#~" // '~' sorts above every zero-padded digit
)

func edgeSK(ownerID, peerID string) string {
	return fmt.Sprintf("EDGE#%s#%s", ownerID, peerID)
}

func edgeSKPrefix(ownerID string) string {
	return fmt.Sprintf("EDGE#%s#", ownerID)
}

func snippetGSI2PK(snippetID string) string {
	return fmt.Sprintf("SNIPID#%s", snippetID)
}

func labelGSI1PK(userID, label string) string {
	return fmt.Sprintf("USER#%s#LABEL#%s", userID, label)
}

// snippetItem is the DynamoDB item structure for a snippet
type snippetItem struct {
	PK             string `dynamodbav:"PK"`
	SK             string `dynamodbav:"SK"`
	GSI1PK         string `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK         string `dynamodbav:"GSI1SK,omitempty"`
	GSI2PK         string `dynamodbav:"GSI2PK"`
	GSI2SK         string `dynamodbav:"GSI2SK"`
	EntityType     string `dynamodbav:"EntityType"`
	SnippetID      string `dynamodbav:"SnippetID"`
	UserID         string `dynamodbav:"UserID"`
	Content        string `dynamodbav:"Content"`
	SnippetType    string `dynamodbav:"SnippetType"`
	ClusterLabel   string `dynamodbav:"ClusterLabel,omitempty"`
	CreatedAt      string `dynamodbav:"CreatedAt"`
	CreatedAtNanos int64  `dynamodbav:"CreatedAtNanos"`
}

// edgeItem is the DynamoDB item structure for one endpoint's view of an edge
type edgeItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	EdgeID     string `dynamodbav:"EdgeID"`
	SourceID   string `dynamodbav:"SourceID"`
	TargetID   string `dynamodbav:"TargetID"`
	OwnerID    string `dynamodbav:"OwnerID"`
	PeerID     string `dynamodbav:"PeerID"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}
