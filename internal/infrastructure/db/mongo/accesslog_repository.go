package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

const collectionAccessLogs = "access_logs"

// AccessLogRepository persists login/logout events. Append-only.
type AccessLogRepository struct {
	col *mongo.Collection
}

func NewAccessLogRepository(db *mongo.Database) *AccessLogRepository {
	return &AccessLogRepository{col: db.Collection(collectionAccessLogs)}
}

type mongoAccessLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      bool               `bson:"type"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *AccessLogRepository) Create(ctx context.Context, entry *domain.AccessLog) (*domain.AccessLog, error) {
	owner, err := primitive.ObjectIDFromHex(entry.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccessLog{
		Type:      entry.Type,
		UserID:    owner,
		CreatedAt: entry.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert access log: %w", err)
	}

	created := *entry
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AccessLogRepository) ListAll(ctx context.Context) ([]*domain.AccessLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list access logs: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.AccessLog
	for cur.Next(ctx) {
		var ml mongoAccessLog
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode access log: %w", err)
		}
		entries = append(entries, &domain.AccessLog{
			ID:        ml.ID.Hex(),
			Type:      ml.Type,
			UserID:    ml.UserID.Hex(),
			CreatedAt: ml.CreatedAt,
		})
	}
	return entries, cur.Err()
}

// EnsureIndexes creates the owner index used by per-user audits.
func (r *AccessLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
