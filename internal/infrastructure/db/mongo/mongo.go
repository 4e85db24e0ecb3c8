package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Conn is an open connection bound to one database.
type Conn struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Connect dials MongoDB and verifies connectivity with a ping. A default
// timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo connect: empty URI")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("marketplace-stubapi").
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Conn{client: client, DB: client.Database(cfg.Database)}, nil
}

// Ping runs the ping command against the bound database. Used by the
// readiness probe.
func (c *Conn) Ping(ctx context.Context) error {
	return c.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close disconnects the underlying client.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
