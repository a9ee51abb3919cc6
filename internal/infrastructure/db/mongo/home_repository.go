package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

const collectionHomes = "homes"

type HomeRepository struct {
	col *mongo.Collection
}

func NewHomeRepository(db *mongo.Database) *HomeRepository {
	return &HomeRepository{col: db.Collection(collectionHomes)}
}

// mongoHome is the storage shape; the ObjectID primary key is rendered as a
// hex string on the domain type.
type mongoHome struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	Address      string              `bson:"address"`
	City         string              `bson:"city"`
	Price        float64             `bson:"price"`
	LandSizeSqm  float64             `bson:"land_size_sqm"`
	Bedrooms     int                 `bson:"bedrooms"`
	Bathrooms    int                 `bson:"bathrooms"`
	PropertyType domain.PropertyType `bson:"property_type"`
	Images       []domain.Image      `bson:"images"`
	RealtorID    int64               `bson:"realtor_id"`
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

func (m *mongoHome) toDomain() *domain.Home {
	return &domain.Home{
		ID:           m.ID.Hex(),
		Address:      m.Address,
		City:         m.City,
		Price:        m.Price,
		LandSizeSqm:  m.LandSizeSqm,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		PropertyType: m.PropertyType,
		Images:       m.Images,
		RealtorID:    m.RealtorID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainHome(h *domain.Home) *mongoHome {
	return &mongoHome{
		Address:      h.Address,
		City:         h.City,
		Price:        h.Price,
		LandSizeSqm:  h.LandSizeSqm,
		Bedrooms:     h.Bedrooms,
		Bathrooms:    h.Bathrooms,
		PropertyType: h.PropertyType,
		Images:       h.Images,
		RealtorID:    h.RealtorID,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// Create inserts a new home document and returns it with its assigned id.
func (r *HomeRepository) Create(ctx context.Context, h *domain.Home) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainHome(h)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert home: %w", err)
	}

	created := *h
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID retrieves a home by its hex id.
func (r *HomeRepository) FindByID(ctx context.Context, id string) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHomeNotFound
	}

	var m mongoHome
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("find home: %w", err)
	}
	return m.toDomain(), nil
}

// Find retrieves homes matching the filter, newest first.
func (r *HomeRepository) Find(ctx context.Context, filter ports.HomeFilter) ([]domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find homes: %w", err)
	}
	defer cursor.Close(ctx)

	var homes []domain.Home
	for cursor.Next(ctx) {
		var m mongoHome
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode home: %w", err)
		}
		homes = append(homes, *m.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate homes: %w", err)
	}
	return homes, nil
}

// Update replaces the mutable fields of an existing home.
func (r *HomeRepository) Update(ctx context.Context, h *domain.Home) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(h.ID)
	if err != nil {
		return domain.ErrHomeNotFound
	}

	update := bson.M{"$set": bson.M{
		"address":       h.Address,
		"city":          h.City,
		"price":         h.Price,
		"land_size_sqm": h.LandSizeSqm,
		"bedrooms":      h.Bedrooms,
		"bathrooms":     h.Bathrooms,
		"property_type": h.PropertyType,
		"images":        h.Images,
		"updated_at":    h.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update home: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}

// Delete removes a home by id.
func (r *HomeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHomeNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the homes collection.
func (r *HomeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "property_type", Value: 1}}},
		{Keys: bson.D{{Key: "realtor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
