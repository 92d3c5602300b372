package di

import (
	"context"
	"fmt"

	"threadline-backend/application/commands"
	"threadline-backend/application/commands/bus"
	commandhandlers "threadline-backend/application/commands/handlers"
	"threadline-backend/application/ports"
	"threadline-backend/application/queries"
	querybus "threadline-backend/application/queries/bus"
	queryhandlers "threadline-backend/application/queries/handlers"
	"threadline-backend/application/services"
	"threadline-backend/infrastructure/config"
	"threadline-backend/infrastructure/messaging/eventbridge"
	"threadline-backend/infrastructure/messaging/noop"
	"threadline-backend/infrastructure/persistence/dynamodb"
	"threadline-backend/infrastructure/persistence/memory"
	"threadline-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	SnippetRepo ports.SnippetRepository
	EdgeRepo    ports.EdgeRepository
	GraphStore  ports.GraphStore
	Publisher   ports.EventPublisher
	Assembler   *services.ThreadAssembler
	Metrics     *observability.Collector
	CommandBus  *bus.CommandBus
	QueryBus    *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCollector creates the Prometheus collector. Returns nil when
// metrics are disabled; every recording method tolerates a nil receiver.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("threadline")
}

// ProvideDynamoStore creates the DynamoDB-backed store
func ProvideDynamoStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamodb.Store {
	return dynamodb.NewStore(client, cfg.DynamoDBTable, cfg.LabelIndex, cfg.SnippetIndex, logger)
}

// ProvideMemoryStore creates the in-memory store
func ProvideMemoryStore() *memory.Store {
	return memory.NewStore()
}

// ProvideSnippetRepository selects the snippet repository by storage driver
func ProvideSnippetRepository(cfg *config.Config, dynamoStore *dynamodb.Store, memStore *memory.Store) ports.SnippetRepository {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewSnippetRepository(memStore)
	}
	return dynamodb.NewSnippetRepository(dynamoStore)
}

// ProvideEdgeRepository selects the edge repository by storage driver
func ProvideEdgeRepository(cfg *config.Config, dynamoStore *dynamodb.Store, memStore *memory.Store) ports.EdgeRepository {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewEdgeRepository(memStore)
	}
	return dynamodb.NewEdgeRepository(dynamoStore)
}

// ProvideGraphStore selects the graph store by storage driver
func ProvideGraphStore(cfg *config.Config, dynamoStore *dynamodb.Store, memStore *memory.Store) ports.GraphStore {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewGraphStore(memStore)
	}
	return dynamodb.NewGraphStore(dynamoStore)
}

// ProvideEventPublisher selects the event publisher. The in-memory driver
// has no clustering pipeline behind it, so events are dropped.
func ProvideEventPublisher(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventPublisher {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return noop.NewPublisher(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideThreadAssembler creates the thread context assembler
func ProvideThreadAssembler(
	store ports.GraphStore,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.ThreadAssembler {
	return services.NewThreadAssembler(store, cfg.MotionBudget(), metrics, logger)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	snippetRepo ports.SnippetRepository,
	edgeRepo ports.EdgeRepository,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	createHandler := commandhandlers.NewCreateSnippetHandler(snippetRepo, publisher, metrics, logger)
	commandBus.Register(commands.CreateSnippetCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateSnippetCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createHandler.Handle(ctx, createCmd)
			return err
		},
	})

	linkHandler := commandhandlers.NewLinkSnippetsHandler(snippetRepo, edgeRepo, publisher, metrics, logger)
	commandBus.Register(commands.LinkSnippetsCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			linkCmd, ok := cmd.(commands.LinkSnippetsCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return linkHandler.Handle(ctx, linkCmd)
		},
	})

	deleteHandler := commandhandlers.NewDeleteSnippetHandler(snippetRepo, edgeRepo, publisher, logger)
	commandBus.Register(commands.DeleteSnippetCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteSnippetCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteHandler.Handle(ctx, deleteCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	snippetRepo ports.SnippetRepository,
	assembler *services.ThreadAssembler,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	threadHandler := queryhandlers.NewGetThreadContextHandler(snippetRepo, assembler, logger)
	queryBus.Register(queries.GetThreadContextQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			threadQuery, ok := query.(queries.GetThreadContextQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return threadHandler.Handle(ctx, threadQuery)
		},
	})

	getHandler := queryhandlers.NewGetSnippetHandler(snippetRepo, logger)
	queryBus.Register(queries.GetSnippetQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetSnippetQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getHandler.Handle(ctx, getQuery)
		},
	})

	listHandler := queryhandlers.NewListSnippetsHandler(snippetRepo, logger)
	queryBus.Register(queries.ListSnippetsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListSnippetsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listHandler.Handle(ctx, listQuery)
		},
	})

	return queryBus
}
