package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

const collectionInquiries = "inquiries"

type InquiryRepository struct {
	col *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{col: db.Collection(collectionInquiries)}
}

type mongoInquiry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	HomeID     string             `bson:"home_id"`
	BuyerID    int64              `bson:"buyer_id"`
	RealtorID  int64              `bson:"realtor_id"`
	Message    string             `bson:"message"`
	Notified   bool               `bson:"notified"`
	NotifiedAt time.Time          `bson:"notified_at,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (m *mongoInquiry) toDomain() *domain.Inquiry {
	return &domain.Inquiry{
		ID:         m.ID.Hex(),
		HomeID:     m.HomeID,
		BuyerID:    m.BuyerID,
		RealtorID:  m.RealtorID,
		Message:    m.Message,
		Notified:   m.Notified,
		NotifiedAt: m.NotifiedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// Create inserts a new inquiry and returns it with its assigned id.
func (r *InquiryRepository) Create(ctx context.Context, i *domain.Inquiry) (*domain.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := &mongoInquiry{
		HomeID:    i.HomeID,
		BuyerID:   i.BuyerID,
		RealtorID: i.RealtorID,
		Message:   i.Message,
		CreatedAt: i.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}

	created := *i
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByHome retrieves all inquiries for a listing, newest first.
func (r *InquiryRepository) FindByHome(ctx context.Context, homeID string) ([]domain.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"home_id": homeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var inquiries []domain.Inquiry
	for cursor.Next(ctx) {
		var m mongoInquiry
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode inquiry: %w", err)
		}
		inquiries = append(inquiries, *m.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return inquiries, nil
}

// MarkNotified records that the realtor notification for an inquiry was delivered.
func (r *InquiryRepository) MarkNotified(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInquiryNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"notified": true, "notified_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark inquiry notified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the inquiries collection.
func (r *InquiryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "home_id", Value: 1}}},
		{Keys: bson.D{{Key: "realtor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
