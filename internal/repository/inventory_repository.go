package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type inventoryRepository struct {
	collection *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) InventoryRepository {
	return &inventoryRepository{
		collection: db.Collection("inventory"),
	}
}

func (m *inventoryRepository) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return m.find(ctx, bson.M{}, opts)
}

func (m *inventoryRepository) GetItems(ctx context.Context, ids []string) ([]domain.InventoryItem, error) {
	if len(ids) == 0 {
		return []domain.InventoryItem{}, nil
	}
	return m.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (m *inventoryRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.InventoryItem, error) {
	cursor, err := m.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer cursor.Close(ctx)

	items := []domain.InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return items, nil
}

func (m *inventoryRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (m *inventoryRepository) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (m *inventoryRepository) ReplaceItem(ctx context.Context, item *domain.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()

	res, err := m.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

func (m *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

func (m *inventoryRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create inventory indexes: %w", err)
	}
	return nil
}
