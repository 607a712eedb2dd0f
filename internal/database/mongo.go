package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tntzzxwife/my-order-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchSize = 1000

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Connected to MongoDB at %s", uri)

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) ListCollections() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	names, err := m.Database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// MirrorOrders replaces the documents of collectionName with orders, in
// collection order, and returns how many were inserted.
func (m *MongoDB) MirrorOrders(collectionName string, orders models.OrderCollection) (int, error) {
	collection := m.Database.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := collection.Drop(ctx)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("failed to drop collection %s: %w", collectionName, err)
	}

	documents := make([]interface{}, 0, batchSize)
	inserted := 0
	for i, order := range orders {
		doc, err := OrderDocument(order)
		if err != nil {
			return inserted, fmt.Errorf("order %d (%s/%s): %w", i+1, order.Account, order.Product, err)
		}
		documents = append(documents, doc)

		if len(documents) >= batchSize {
			if err := m.insertBatch(collection, documents); err != nil {
				return inserted, err
			}
			inserted += len(documents)
			documents = documents[:0]
		}
	}

	if len(documents) > 0 {
		if err := m.insertBatch(collection, documents); err != nil {
			return inserted, err
		}
		inserted += len(documents)
	}

	log.Printf("Mirror completed: %d orders in collection '%s'", inserted, collectionName)
	return inserted, nil
}

// OrderDocument maps an order to its MongoDB document. Decimal fields are
// stored as Decimal128.
func OrderDocument(o models.OrderRecord) (bson.D, error) {
	rate, err := primitive.ParseDecimal128(o.ExchangeRate.String())
	if err != nil {
		return nil, fmt.Errorf("invalid exchange rate: %w", err)
	}
	cost, err := primitive.ParseDecimal128(o.CostForeign.String())
	if err != nil {
		return nil, fmt.Errorf("invalid foreign cost: %w", err)
	}

	return bson.D{
		{Key: "registered_at", Value: o.RegisteredAt},
		{Key: "account", Value: o.Account},
		{Key: "product", Value: o.Product},
		{Key: "source", Value: o.Source},
		{Key: "exchange_rate", Value: rate},
		{Key: "cost_foreign", Value: cost},
		{Key: "cost_local", Value: o.CostLocal},
		{Key: "price_local", Value: o.PriceLocal},
		{Key: "profit_local", Value: o.ProfitLocal},
		{Key: "status", Value: o.Status.String()},
		{Key: "note", Value: o.Note},
	}, nil
}

func (m *MongoDB) insertBatch(collection *mongo.Collection, documents []interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := collection.InsertMany(ctx, documents)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	log.Printf("Inserted batch of %d documents", len(documents))
	return nil
}
