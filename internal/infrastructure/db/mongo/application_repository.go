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

	"github.com/creditdesk/loan-system/internal/core/domain"
)

const collectionApplications = "applications"

// ApplicationRepository persists loan applications.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type mongoApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Credit    float64            `bson:"credit"`
	Period    int                `bson:"period"`
	Salary    float64            `bson:"salary"`
	Expenses  float64            `bson:"expenses"`
	Purpose   string             `bson:"purpose"`
	Percent   float64            `bson:"percent"`
	Payment   float64            `bson:"payment"`
	StartDate string             `bson:"start_date"`
	EndDate   string             `bson:"end_date"`
	Status    int                `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toDomainApplication(ma mongoApplication) *domain.Application {
	return &domain.Application{
		ID:        ma.ID.Hex(),
		UserID:    ma.UserID.Hex(),
		Credit:    ma.Credit,
		Period:    ma.Period,
		Salary:    ma.Salary,
		Expenses:  ma.Expenses,
		Purpose:   ma.Purpose,
		Percent:   ma.Percent,
		Payment:   ma.Payment,
		StartDate: ma.StartDate,
		EndDate:   ma.EndDate,
		Status:    domain.ApplicationStatus(ma.Status),
		CreatedAt: ma.CreatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	owner, err := primitive.ObjectIDFromHex(app.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		UserID:    owner,
		Credit:    app.Credit,
		Period:    app.Period,
		Salary:    app.Salary,
		Expenses:  app.Expenses,
		Purpose:   app.Purpose,
		Percent:   app.Percent,
		Payment:   app.Payment,
		StartDate: app.StartDate,
		EndDate:   app.EndDate,
		Status:    int(app.Status),
		CreatedAt: app.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	created := *app
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Application, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.list(ctx, bson.M{"user_id": owner})
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{})
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var apps []*domain.Application
	for cur.Next(ctx) {
		var ma mongoApplication
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode application: %w", err)
		}
		apps = append(apps, toDomainApplication(ma))
	}
	return apps, cur.Err()
}

// DeleteNewestPending removes the most recently created pending
// application of userID. The sort breaks ties when more than one pending
// application exists.
func (r *ApplicationRepository) DeleteNewestPending(ctx context.Context, userID string) error {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": owner, "status": int(domain.StatusPending)}
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err = r.col.FindOneAndDelete(ctx, filter, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrApplicationNotFound
		}
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

// UpdateStatusByUser moves every application of userID in status from to
// status to. One UpdateMany statement: per-document atomic, no
// cross-document transaction.
func (r *ApplicationRepository) UpdateStatusByUser(ctx context.Context, userID string, from, to domain.ApplicationStatus) (int64, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": owner, "status": int(from)}
	update := bson.M{"$set": bson.M{"status": int(to)}}

	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("update application status: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the indexes backing owner and lifecycle queries.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
